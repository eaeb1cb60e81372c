//go:build darwin && cgo

package darwin

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework CoreGraphics -framework CoreFoundation
#include <CoreGraphics/CoreGraphics.h>
#include <stdlib.h>
#include <string.h>

static int cg_check_screen_recording(void) {
    if (@available(macOS 10.15, *)) {
        return CGPreflightScreenCaptureAccess() ? 1 : 0;
    }
    return 1;
}

// Capture the main display. On success *out holds a malloc'd BGRA buffer the
// caller must free.
static int cg_capture_display(unsigned char **out, int *out_w, int *out_h, int *out_stride) {
    CGImageRef image = CGDisplayCreateImage(CGMainDisplayID());
    if (!image) return -1;

    size_t w = CGImageGetWidth(image);
    size_t h = CGImageGetHeight(image);
    size_t stride = CGImageGetBytesPerRow(image);

    CGDataProviderRef provider = CGImageGetDataProvider(image);
    CFDataRef data = CGDataProviderCopyData(provider);
    if (!data) {
        CGImageRelease(image);
        return -1;
    }

    size_t len = (size_t)CFDataGetLength(data);
    unsigned char *buf = malloc(len);
    if (!buf) {
        CFRelease(data);
        CGImageRelease(image);
        return -1;
    }
    memcpy(buf, CFDataGetBytePtr(data), len);

    *out = buf;
    *out_w = (int)w;
    *out_h = (int)h;
    *out_stride = (int)stride;

    CFRelease(data);
    CGImageRelease(image);
    return 0;
}
*/
import "C"

import (
	"fmt"
	"image"
	"unsafe"
)

// CheckScreenRecordingPermission checks if the process has macOS screen recording permission.
func CheckScreenRecordingPermission() error {
	if C.cg_check_screen_recording() == 0 {
		return fmt.Errorf(
			"screen recording permission required\n\n" +
				"Grant permission at: System Settings > Privacy & Security > Screen Recording\n" +
				"Add your terminal app (e.g. Terminal.app, iTerm2, or the IDE running this command).\n" +
				"Then restart the terminal and try again.")
	}
	return nil
}

// DarwinCapturer implements platform.Capturer for macOS.
type DarwinCapturer struct{}

// NewCapturer creates a new macOS screen capturer.
func NewCapturer() *DarwinCapturer {
	return &DarwinCapturer{}
}

// CaptureScreen captures the full primary display.
func (c *DarwinCapturer) CaptureScreen() (*image.RGBA, error) {
	if err := CheckScreenRecordingPermission(); err != nil {
		return nil, err
	}

	var buf *C.uchar
	var w, h, stride C.int
	if C.cg_capture_display(&buf, &w, &h, &stride) != 0 {
		return nil, fmt.Errorf("display capture failed (check Screen Recording permission in System Settings > Privacy & Security)")
	}
	defer C.free(unsafe.Pointer(buf))

	width, height, rowBytes := int(w), int(h), int(stride)
	src := unsafe.Slice((*byte)(buf), height*rowBytes)

	// CGDisplayCreateImage yields BGRA; swizzle into RGBA row by row.
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		srcRow := src[y*rowBytes:]
		dstRow := img.Pix[y*img.Stride:]
		for x := 0; x < width; x++ {
			si, di := x*4, x*4
			dstRow[di+0] = srcRow[si+2]
			dstRow[di+1] = srcRow[si+1]
			dstRow[di+2] = srcRow[si+0]
			dstRow[di+3] = srcRow[si+3]
		}
	}
	return img, nil
}
