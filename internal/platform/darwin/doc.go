// Package darwin provides the macOS backend using CoreGraphics display and
// CGEvent APIs. All functionality requires CGo. When CGo is disabled or the
// target OS is not macOS, the package compiles as a no-op stub and no
// backend registers, so platform.NewProvider reports ErrUnsupported.
package darwin
