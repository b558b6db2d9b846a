package input

import (
	"fmt"
	"log"
	"runtime"

	"astra/internal/action"
	"astra/internal/keys"
)

// Backend names accepted by NewDevice
const (
	BackendAuto    = "auto"
	BackendXdotool = "xdotool"
	BackendNoop    = "noop"
)

// NewDevice opens the named injection backend. "auto" picks the native
// backend for the running platform.
func NewDevice(backend string) (Device, error) {
	switch backend {
	case "", BackendAuto:
		dev, err := newPlatformDevice()
		if err != nil {
			return nil, fmt.Errorf("no native input backend on %s: %w", runtime.GOOS, err)
		}
		return dev, nil
	case BackendXdotool:
		return NewXdotool()
	case BackendNoop:
		return NoopDevice{}, nil
	}
	return nil, fmt.Errorf("unknown input backend %q", backend)
}

// NoopDevice logs actions instead of injecting them. Used for dry runs.
type NoopDevice struct{}

func (NoopDevice) MoveRelative(dx, dy int) error {
	log.Printf("Input(noop): move %d,%d", dx, dy)
	return nil
}

func (NoopDevice) Click(b Button) error {
	log.Printf("Input(noop): click %s", b)
	return nil
}

func (NoopDevice) Scroll(axis action.Axis, amount int) error {
	log.Printf("Input(noop): scroll %s %d", axis, amount)
	return nil
}

func (NoopDevice) KeyDown(k keys.KeyID) error {
	log.Printf("Input(noop): key down %s", k)
	return nil
}

func (NoopDevice) KeyUp(k keys.KeyID) error {
	log.Printf("Input(noop): key up %s", k)
	return nil
}

func (NoopDevice) KeyTap(k keys.KeyID) error {
	log.Printf("Input(noop): key tap %s", k)
	return nil
}

func (NoopDevice) TypeText(s string) error {
	log.Printf("Input(noop): type %q", s)
	return nil
}
