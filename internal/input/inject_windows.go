//go:build windows

package input

import (
	"fmt"
	"unicode/utf16"
	"unsafe"

	"astra/internal/action"
	"astra/internal/keys"

	"golang.org/x/sys/windows"
)

// Windows implementation of input injection using SendInput

const (
	inputMouse    = 0
	inputKeyboard = 1

	mouseeventfMove      = 0x0001
	mouseeventfLeftDown  = 0x0002
	mouseeventfLeftUp    = 0x0004
	mouseeventfRightDown = 0x0008
	mouseeventfRightUp   = 0x0010
	mouseeventfWheel     = 0x0800
	mouseeventfHWheel    = 0x1000

	keyeventfExtendedKey = 0x0001
	keyeventfKeyUp       = 0x0002
	keyeventfUnicode     = 0x0004

	// One request scroll unit is a tenth of a wheel notch (WHEEL_DELTA = 120).
	wheelUnit = 12
)

var (
	user32        = windows.NewLazySystemDLL("user32.dll")
	procSendInput = user32.NewProc("SendInput")
)

type mouseInput struct {
	dx        int32
	dy        int32
	mouseData uint32
	flags     uint32
	time      uint32
	extraInfo uintptr
}

type keybdInput struct {
	vk        uint16
	scan      uint16
	flags     uint32
	time      uint32
	extraInfo uintptr
}

// INPUT is a tagged union; mouseInput is its largest member so both Go
// layouts are padded to the same size.
type mouseINPUT struct {
	typ uint32
	mi  mouseInput
}

type keybdINPUT struct {
	typ     uint32
	ki      keybdInput
	padding [unsafe.Sizeof(mouseInput{}) - unsafe.Sizeof(keybdInput{})]byte
}

// SendInputDevice injects input through user32 SendInput.
type SendInputDevice struct{}

func newPlatformDevice() (Device, error) {
	if err := procSendInput.Find(); err != nil {
		return nil, err
	}
	return &SendInputDevice{}, nil
}

func sendMouse(events ...mouseInput) error {
	inputs := make([]mouseINPUT, len(events))
	for i, e := range events {
		inputs[i] = mouseINPUT{typ: inputMouse, mi: e}
	}
	return send(unsafe.Pointer(&inputs[0]), len(inputs), unsafe.Sizeof(inputs[0]))
}

func sendKeys(events ...keybdInput) error {
	inputs := make([]keybdINPUT, len(events))
	for i, e := range events {
		inputs[i] = keybdINPUT{typ: inputKeyboard, ki: e}
	}
	return send(unsafe.Pointer(&inputs[0]), len(inputs), unsafe.Sizeof(inputs[0]))
}

func send(ptr unsafe.Pointer, n int, size uintptr) error {
	ret, _, err := procSendInput.Call(uintptr(n), uintptr(ptr), size)
	if int(ret) != n {
		return fmt.Errorf("SendInput injected %d of %d events: %v", ret, n, err)
	}
	return nil
}

func (d *SendInputDevice) MoveRelative(dx, dy int) error {
	return sendMouse(mouseInput{dx: int32(dx), dy: int32(dy), flags: mouseeventfMove})
}

func (d *SendInputDevice) Click(b Button) error {
	down, up := uint32(mouseeventfLeftDown), uint32(mouseeventfLeftUp)
	if b == ButtonRight {
		down, up = mouseeventfRightDown, mouseeventfRightUp
	}
	return sendMouse(mouseInput{flags: down}, mouseInput{flags: up})
}

func (d *SendInputDevice) Scroll(axis action.Axis, amount int) error {
	flags := uint32(mouseeventfWheel)
	if axis == action.Horizontal {
		flags = mouseeventfHWheel
	}
	return sendMouse(mouseInput{mouseData: uint32(int32(amount * wheelUnit)), flags: flags})
}

func keyEvent(k keys.KeyID, up bool) (keybdInput, error) {
	vk, ok := vkCodes[k]
	if !ok {
		return keybdInput{}, fmt.Errorf("key %s has no virtual-key code", k)
	}
	ev := keybdInput{vk: vk}
	if extendedVK[vk] {
		ev.flags |= keyeventfExtendedKey
	}
	if up {
		ev.flags |= keyeventfKeyUp
	}
	return ev, nil
}

func (d *SendInputDevice) KeyDown(k keys.KeyID) error {
	ev, err := keyEvent(k, false)
	if err != nil {
		return err
	}
	return sendKeys(ev)
}

func (d *SendInputDevice) KeyUp(k keys.KeyID) error {
	ev, err := keyEvent(k, true)
	if err != nil {
		return err
	}
	return sendKeys(ev)
}

func (d *SendInputDevice) KeyTap(k keys.KeyID) error {
	down, err := keyEvent(k, false)
	if err != nil {
		return err
	}
	up, _ := keyEvent(k, true)
	return sendKeys(down, up)
}

func (d *SendInputDevice) TypeText(s string) error {
	units := utf16.Encode([]rune(s))
	if len(units) == 0 {
		return nil
	}
	events := make([]keybdInput, 0, len(units)*2)
	for _, u := range units {
		events = append(events,
			keybdInput{scan: u, flags: keyeventfUnicode},
			keybdInput{scan: u, flags: keyeventfUnicode | keyeventfKeyUp},
		)
	}
	return sendKeys(events...)
}
