// Package platform defines the OS collaborator interfaces the automation
// core depends on. Concrete backends register themselves via init(); see
// internal/platform/darwin for the macOS implementation.
package platform

import (
	"fmt"
	"image"
	"runtime"
)

// Capturer captures the primary display.
type Capturer interface {
	// CaptureScreen returns the full primary-display frame at call time.
	CaptureScreen() (*image.RGBA, error)
}

// Pointer drives the mouse cursor.
type Pointer interface {
	// DisplaySize returns the primary display dimensions in pixels.
	DisplaySize() (width, height int, err error)

	// MousePosition returns the current cursor position.
	MousePosition() (x, y int, err error)

	// MoveMouse warps the cursor to (x, y) immediately.
	MoveMouse(x, y int) error

	// Click presses and releases the given button at (x, y). count selects
	// single (1) or double (2) click.
	Click(x, y int, button MouseButton, count int) error
}

// Provider bundles all platform backends for the current OS.
type Provider struct {
	Capturer Capturer
	Pointer  Pointer
}

// ErrUnsupported is returned on unsupported platforms.
var ErrUnsupported = fmt.Errorf("screenpilot is not supported on %s/%s; supported: darwin/amd64, darwin/arm64", runtime.GOOS, runtime.GOARCH)

// RequestPermissionsFunc is set by backends that need OS permission prompts
// (screen recording on macOS) triggered before first use.
var RequestPermissionsFunc func()

// NewProviderFunc is set by platform-specific packages via init().
// See internal/platform/darwin/init.go for the macOS registration.
var NewProviderFunc func() (*Provider, error)

// NewProvider returns a Provider for the current OS.
func NewProvider() (*Provider, error) {
	if NewProviderFunc == nil {
		return nil, ErrUnsupported
	}
	return NewProviderFunc()
}
