//go:build darwin

package input

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework CoreGraphics -framework CoreFoundation -framework ApplicationServices

#include <CoreGraphics/CoreGraphics.h>
#include <CoreFoundation/CoreFoundation.h>
#include <ApplicationServices/ApplicationServices.h>

// Check if we have accessibility permissions
bool hasAccessibilityPermissions() {
    return AXIsProcessTrusted();
}

CGPoint getCurrentMousePosition() {
    CGEventRef event = CGEventCreate(NULL);
    CGPoint cursor = CGEventGetLocation(event);
    CFRelease(event);
    return cursor;
}

void injectMouseMove(CGFloat dx, CGFloat dy) {
    CGPoint currentPos = getCurrentMousePosition();
    CGPoint newPos = CGPointMake(currentPos.x + dx, currentPos.y + dy);
    CGEventRef event = CGEventCreateMouseEvent(NULL, kCGEventMouseMoved, newPos, kCGMouseButtonLeft);
    CGEventPost(kCGSessionEventTap, event);
    CFRelease(event);
}

void injectMouseButton(int right, bool pressed) {
    CGMouseButton cgButton = right ? kCGMouseButtonRight : kCGMouseButtonLeft;
    CGEventType eventType;
    if (right) {
        eventType = pressed ? kCGEventRightMouseDown : kCGEventRightMouseUp;
    } else {
        eventType = pressed ? kCGEventLeftMouseDown : kCGEventLeftMouseUp;
    }
    CGPoint currentPos = getCurrentMousePosition();
    CGEventRef event = CGEventCreateMouseEvent(NULL, eventType, currentPos, cgButton);
    CGEventPost(kCGSessionEventTap, event);
    CFRelease(event);
}

void injectScroll(int32_t vertical, int32_t horizontal) {
    CGEventRef event = CGEventCreateScrollWheelEvent(NULL, kCGScrollEventUnitPixel, 2, vertical, horizontal);
    CGEventPost(kCGSessionEventTap, event);
    CFRelease(event);
}

void injectKey(CGKeyCode keyCode, bool pressed) {
    CGEventRef event = CGEventCreateKeyboardEvent(NULL, keyCode, pressed);
    CGEventPost(kCGSessionEventTap, event);
    CFRelease(event);
}

void injectUnicode(UniChar *chars, int length) {
    CGEventRef down = CGEventCreateKeyboardEvent(NULL, 0, true);
    CGEventKeyboardSetUnicodeString(down, length, chars);
    CGEventPost(kCGSessionEventTap, down);
    CFRelease(down);

    CGEventRef up = CGEventCreateKeyboardEvent(NULL, 0, false);
    CGEventKeyboardSetUnicodeString(up, length, chars);
    CGEventPost(kCGSessionEventTap, up);
    CFRelease(up);
}
*/
import "C"
import (
	"fmt"
	"unicode/utf16"
	"unsafe"

	"astra/internal/action"
	"astra/internal/keys"
)

// macOS implementation of input injection using CoreGraphics

// Windows VK code to macOS CGKeyCode mapping
// Reference: https://developer.apple.com/documentation/coregraphics/cgkeycode
var windowsToMacKeyMap = map[uint16]uint16{
	// Letters A-Z (Windows VK_A = 0x41, macOS kVK_ANSI_A = 0x00)
	0x41: 0x00, 0x42: 0x0B, 0x43: 0x08, 0x44: 0x02, 0x45: 0x0E, 0x46: 0x03,
	0x47: 0x05, 0x48: 0x04, 0x49: 0x22, 0x4A: 0x26, 0x4B: 0x28, 0x4C: 0x25,
	0x4D: 0x2E, 0x4E: 0x2D, 0x4F: 0x1F, 0x50: 0x23, 0x51: 0x0C, 0x52: 0x0F,
	0x53: 0x01, 0x54: 0x11, 0x55: 0x20, 0x56: 0x09, 0x57: 0x0D, 0x58: 0x07,
	0x59: 0x10, 0x5A: 0x06,

	// Numbers 0-9 (Windows VK_0 = 0x30, macOS kVK_ANSI_0 = 0x1D)
	0x30: 0x1D, 0x31: 0x12, 0x32: 0x13, 0x33: 0x14, 0x34: 0x15,
	0x35: 0x17, 0x36: 0x16, 0x37: 0x1A, 0x38: 0x1C, 0x39: 0x19,

	// Function keys (Windows VK_F1 = 0x70, macOS kVK_F1 = 0x7A)
	0x70: 0x7A, 0x71: 0x78, 0x72: 0x63, 0x73: 0x76, 0x74: 0x60, 0x75: 0x61,
	0x76: 0x62, 0x77: 0x64, 0x78: 0x65, 0x79: 0x6D, 0x7A: 0x67, 0x7B: 0x6F,

	// Special keys
	0x08: 0x33, // Backspace -> Delete
	0x09: 0x30, // Tab
	0x0D: 0x24, // Enter/Return
	0x10: 0x38, // Shift
	0x11: 0x3B, // Control
	0x12: 0x3A, // Alt -> Option
	0x14: 0x39, // Caps Lock
	0x1B: 0x35, // Escape
	0x20: 0x31, // Space

	// Arrow keys
	0x25: 0x7B, 0x26: 0x7E, 0x27: 0x7C, 0x28: 0x7D,

	// Navigation keys
	0x21: 0x74, // Page Up
	0x22: 0x79, // Page Down
	0x23: 0x77, // End
	0x24: 0x73, // Home
	0x2E: 0x75, // Delete -> Forward Delete

	0x5B: 0x37, // Left Windows -> Left Command

	// Volume keys (kVK_VolumeUp/Down/Mute)
	0xAF: 0x48, 0xAE: 0x49, 0xAD: 0x4A,
}

// Injector represents a macOS input injector
type Injector struct{}

func newPlatformDevice() (Device, error) {
	if !bool(C.hasAccessibilityPermissions()) {
		return nil, fmt.Errorf("accessibility permission not granted to this process")
	}
	return &Injector{}, nil
}

func macKeyCode(k keys.KeyID) (C.CGKeyCode, error) {
	vk, ok := vkCodes[k]
	if !ok {
		return 0, fmt.Errorf("key %s has no key code", k)
	}
	code, ok := windowsToMacKeyMap[vk]
	if !ok {
		return 0, fmt.Errorf("key %s has no macOS key code", k)
	}
	return C.CGKeyCode(code), nil
}

func (i *Injector) MoveRelative(dx, dy int) error {
	C.injectMouseMove(C.CGFloat(dx), C.CGFloat(dy))
	return nil
}

func (i *Injector) Click(b Button) error {
	right := C.int(0)
	if b == ButtonRight {
		right = 1
	}
	C.injectMouseButton(right, C.bool(true))
	C.injectMouseButton(right, C.bool(false))
	return nil
}

func (i *Injector) Scroll(axis action.Axis, amount int) error {
	if axis == action.Horizontal {
		C.injectScroll(0, C.int32_t(amount))
	} else {
		C.injectScroll(C.int32_t(amount), 0)
	}
	return nil
}

func (i *Injector) KeyDown(k keys.KeyID) error {
	code, err := macKeyCode(k)
	if err != nil {
		return err
	}
	C.injectKey(code, C.bool(true))
	return nil
}

func (i *Injector) KeyUp(k keys.KeyID) error {
	code, err := macKeyCode(k)
	if err != nil {
		return err
	}
	C.injectKey(code, C.bool(false))
	return nil
}

func (i *Injector) KeyTap(k keys.KeyID) error {
	if err := i.KeyDown(k); err != nil {
		return err
	}
	return i.KeyUp(k)
}

func (i *Injector) TypeText(s string) error {
	for _, r := range s {
		units := utf16.Encode([]rune{r})
		C.injectUnicode((*C.UniChar)(unsafe.Pointer(&units[0])), C.int(len(units)))
	}
	return nil
}
