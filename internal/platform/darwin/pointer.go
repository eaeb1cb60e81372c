//go:build darwin && cgo

package darwin

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework CoreGraphics -framework ApplicationServices -framework Foundation
#include <CoreGraphics/CoreGraphics.h>

// Click at screen coordinates with specified button and click count.
// button: 0=left, 1=right, 2=middle (maps to kCGMouseButton*)
// count: 1=single, 2=double
static int cg_click(float x, float y, int button, int count) {
    CGPoint point = CGPointMake(x, y);

    CGEventType downType, upType;
    CGMouseButton cgButton;

    switch (button) {
        case 1:  // right
            cgButton = kCGMouseButtonRight;
            downType = kCGEventRightMouseDown;
            upType = kCGEventRightMouseUp;
            break;
        case 2:  // middle
            cgButton = kCGMouseButtonCenter;
            downType = kCGEventOtherMouseDown;
            upType = kCGEventOtherMouseUp;
            break;
        default:  // left (0)
            cgButton = kCGMouseButtonLeft;
            downType = kCGEventLeftMouseDown;
            upType = kCGEventLeftMouseUp;
            break;
    }

    for (int i = 0; i < count; i++) {
        CGEventRef down = CGEventCreateMouseEvent(NULL, downType, point, cgButton);
        CGEventRef up = CGEventCreateMouseEvent(NULL, upType, point, cgButton);
        if (!down || !up) {
            if (down) CFRelease(down);
            if (up) CFRelease(up);
            return -1;
        }
        // Set click count for multi-click events
        CGEventSetIntegerValueField(down, kCGMouseEventClickState, i + 1);
        CGEventSetIntegerValueField(up, kCGMouseEventClickState, i + 1);
        CGEventPost(kCGHIDEventTap, down);
        CGEventPost(kCGHIDEventTap, up);
        CFRelease(down);
        CFRelease(up);
    }
    return 0;
}

static int cg_move_mouse(float x, float y) {
    CGPoint point = CGPointMake(x, y);
    CGEventRef move = CGEventCreateMouseEvent(NULL, kCGEventMouseMoved, point, kCGMouseButtonLeft);
    if (!move) return -1;
    CGEventPost(kCGHIDEventTap, move);
    CFRelease(move);
    return 0;
}

static int cg_mouse_position(float *x, float *y) {
    CGEventRef event = CGEventCreate(NULL);
    if (!event) return -1;
    CGPoint point = CGEventGetLocation(event);
    CFRelease(event);
    *x = (float)point.x;
    *y = (float)point.y;
    return 0;
}

static void cg_display_size(int *w, int *h) {
    CGDirectDisplayID display = CGMainDisplayID();
    *w = (int)CGDisplayPixelsWide(display);
    *h = (int)CGDisplayPixelsHigh(display);
}
*/
import "C"

import (
	"fmt"

	"github.com/mj1618/screenpilot/internal/platform"
)

// DarwinPointer implements platform.Pointer using CGEvent synthesis.
type DarwinPointer struct{}

// NewPointer creates a new macOS pointer driver.
func NewPointer() *DarwinPointer {
	return &DarwinPointer{}
}

func (p *DarwinPointer) DisplaySize() (int, int, error) {
	var w, h C.int
	C.cg_display_size(&w, &h)
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("failed to query display size")
	}
	return int(w), int(h), nil
}

func (p *DarwinPointer) MousePosition() (int, int, error) {
	var x, y C.float
	if C.cg_mouse_position(&x, &y) != 0 {
		return 0, 0, fmt.Errorf("failed to query mouse position")
	}
	return int(x), int(y), nil
}

func (p *DarwinPointer) MoveMouse(x, y int) error {
	if C.cg_move_mouse(C.float(x), C.float(y)) != 0 {
		return fmt.Errorf("failed to move mouse to (%d, %d)", x, y)
	}
	return nil
}

func (p *DarwinPointer) Click(x, y int, button platform.MouseButton, count int) error {
	if count < 1 {
		count = 1
	}
	cButton := C.int(0)
	switch button {
	case platform.MouseRight:
		cButton = 1
	case platform.MouseMiddle:
		cButton = 2
	}
	if C.cg_click(C.float(x), C.float(y), cButton, C.int(count)) != 0 {
		return fmt.Errorf("failed to click at (%d, %d)", x, y)
	}
	return nil
}
