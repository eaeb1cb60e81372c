//go:build darwin

package surface

import "golang.design/x/hotkey"

func init() {
	extraModifiers["cmd"] = hotkey.ModCmd
	extraModifiers["option"] = hotkey.ModOption
	extraModifiers["alt"] = hotkey.ModOption
}
