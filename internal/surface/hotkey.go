package surface

import (
	"fmt"
	"strings"

	"golang.design/x/hotkey"
)

var baseModifiers = map[string]hotkey.Modifier{
	"ctrl":  hotkey.ModCtrl,
	"shift": hotkey.ModShift,
}

// extraModifiers is extended per platform (cmd and option on darwin).
var extraModifiers = map[string]hotkey.Modifier{}

var keyNames = map[string]hotkey.Key{
	"a": hotkey.KeyA, "b": hotkey.KeyB, "c": hotkey.KeyC, "d": hotkey.KeyD,
	"e": hotkey.KeyE, "f": hotkey.KeyF, "g": hotkey.KeyG, "h": hotkey.KeyH,
	"i": hotkey.KeyI, "j": hotkey.KeyJ, "k": hotkey.KeyK, "l": hotkey.KeyL,
	"m": hotkey.KeyM, "n": hotkey.KeyN, "o": hotkey.KeyO, "p": hotkey.KeyP,
	"q": hotkey.KeyQ, "r": hotkey.KeyR, "s": hotkey.KeyS, "t": hotkey.KeyT,
	"u": hotkey.KeyU, "v": hotkey.KeyV, "w": hotkey.KeyW, "x": hotkey.KeyX,
	"y": hotkey.KeyY, "z": hotkey.KeyZ,
	"0": hotkey.Key0, "1": hotkey.Key1, "2": hotkey.Key2, "3": hotkey.Key3,
	"4": hotkey.Key4, "5": hotkey.Key5, "6": hotkey.Key6, "7": hotkey.Key7,
	"8": hotkey.Key8, "9": hotkey.Key9,
	"space":  hotkey.KeySpace,
	"return": hotkey.KeyReturn,
	"escape": hotkey.KeyEscape,
	"tab":    hotkey.KeyTab,
}

// parseHotkey turns a spec like "ctrl+m" or "ctrl+shift+s" into the
// modifier set and key used for registration. The last component is the
// key, everything before it a modifier.
func parseHotkey(spec string) ([]hotkey.Modifier, hotkey.Key, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(spec)), "+")
	if len(parts) < 2 {
		return nil, 0, fmt.Errorf("hotkey %q needs at least one modifier and a key", spec)
	}

	var mods []hotkey.Modifier
	for _, name := range parts[:len(parts)-1] {
		name = strings.TrimSpace(name)
		mod, ok := baseModifiers[name]
		if !ok {
			mod, ok = extraModifiers[name]
		}
		if !ok {
			return nil, 0, fmt.Errorf("hotkey %q: unknown modifier %q", spec, name)
		}
		mods = append(mods, mod)
	}

	keyName := strings.TrimSpace(parts[len(parts)-1])
	key, ok := keyNames[keyName]
	if !ok {
		return nil, 0, fmt.Errorf("hotkey %q: unknown key %q", spec, keyName)
	}
	return mods, key, nil
}
