//go:build darwin && cgo

package darwin

import (
	"fmt"
	"os"

	"github.com/mj1618/screenpilot/internal/platform"
)

func init() {
	platform.NewProviderFunc = func() (*platform.Provider, error) {
		return &platform.Provider{
			Capturer: NewCapturer(),
			Pointer:  NewPointer(),
		}, nil
	}
	platform.RequestPermissionsFunc = func() {
		if err := CheckScreenRecordingPermission(); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}
}
