package input

import (
	"bytes"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"astra/internal/action"
	"astra/internal/keys"
)

// xdotool key names for each KeyID. Digits and letters use their own name.
var xdotoolNames = map[keys.KeyID]string{
	keys.Control:    "ctrl",
	keys.Alt:        "alt",
	keys.Shift:      "shift",
	keys.Meta:       "super",
	keys.Return:     "Return",
	keys.Escape:     "Escape",
	keys.Backspace:  "BackSpace",
	keys.Delete:     "Delete",
	keys.Tab:        "Tab",
	keys.Space:      "space",
	keys.CapsLock:   "Caps_Lock",
	keys.Home:       "Home",
	keys.End:        "End",
	keys.PageUp:     "Prior",
	keys.PageDown:   "Next",
	keys.UpArrow:    "Up",
	keys.DownArrow:  "Down",
	keys.LeftArrow:  "Left",
	keys.RightArrow: "Right",
	keys.F1:         "F1",
	keys.F2:         "F2",
	keys.F3:         "F3",
	keys.F4:         "F4",
	keys.F5:         "F5",
	keys.F6:         "F6",
	keys.F7:         "F7",
	keys.F8:         "F8",
	keys.F9:         "F9",
	keys.F10:        "F10",
	keys.F11:        "F11",
	keys.F12:        "F12",
	keys.VolumeUp:   "XF86AudioRaiseVolume",
	keys.VolumeDown: "XF86AudioLowerVolume",
	keys.VolumeMute: "XF86AudioMute",
}

// X11 wheel buttons
const (
	wheelUp    = "4"
	wheelDown  = "5"
	wheelLeft  = "6"
	wheelRight = "7"
)

// Xdotool injects input on X11 by running the xdotool binary.
type Xdotool struct {
	run func(args ...string) error
}

// NewXdotool checks that xdotool is installed
func NewXdotool() (*Xdotool, error) {
	path, err := exec.LookPath("xdotool")
	if err != nil {
		return nil, fmt.Errorf("xdotool not found - please install: sudo apt-get install xdotool")
	}
	return &Xdotool{run: func(args ...string) error {
		var stderr bytes.Buffer
		cmd := exec.Command(path, args...)
		cmd.Stderr = &stderr
		if err := cmd.Run(); err != nil {
			if msg := strings.TrimSpace(stderr.String()); msg != "" {
				return fmt.Errorf("xdotool %s: %w: %s", args[0], err, msg)
			}
			return fmt.Errorf("xdotool %s: %w", args[0], err)
		}
		return nil
	}}, nil
}

func xdotoolKey(k keys.KeyID) (string, error) {
	if name, ok := xdotoolNames[k]; ok {
		return name, nil
	}
	if k.IsDigit() || k.IsLetter() {
		return k.String(), nil
	}
	return "", fmt.Errorf("key %s has no xdotool name", k)
}

func (x *Xdotool) MoveRelative(dx, dy int) error {
	return x.run("mousemove_relative", "--", strconv.Itoa(dx), strconv.Itoa(dy))
}

func (x *Xdotool) Click(b Button) error {
	button := "1"
	if b == ButtonRight {
		button = "3"
	}
	return x.run("click", button)
}

func (x *Xdotool) Scroll(axis action.Axis, amount int) error {
	if amount == 0 {
		return nil
	}
	var button string
	switch {
	case axis == action.Vertical && amount > 0:
		button = wheelUp
	case axis == action.Vertical:
		button = wheelDown
	case amount > 0:
		button = wheelRight
	default:
		button = wheelLeft
	}
	if amount < 0 {
		amount = -amount
	}
	return x.run("click", "--repeat", strconv.Itoa(amount), "--delay", "0", button)
}

func (x *Xdotool) KeyDown(k keys.KeyID) error {
	name, err := xdotoolKey(k)
	if err != nil {
		return err
	}
	return x.run("keydown", name)
}

func (x *Xdotool) KeyUp(k keys.KeyID) error {
	name, err := xdotoolKey(k)
	if err != nil {
		return err
	}
	return x.run("keyup", name)
}

func (x *Xdotool) KeyTap(k keys.KeyID) error {
	name, err := xdotoolKey(k)
	if err != nil {
		return err
	}
	return x.run("key", name)
}

func (x *Xdotool) TypeText(s string) error {
	if s == "" {
		return nil
	}
	return x.run("type", "--", s)
}
