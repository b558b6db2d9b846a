// Package input provides the host input-injection capability and the actuator
// that serializes access to it.
package input

import (
	"astra/internal/action"
	"astra/internal/keys"
)

// Button identifies a mouse button
type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
)

func (b Button) String() string {
	if b == ButtonRight {
		return "right"
	}
	return "left"
}

// Device is the OS input-injection capability. Implementations are not
// required to be safe for concurrent use; the Actuator serializes calls.
type Device interface {
	// MoveRelative displaces the pointer by dx, dy pixels.
	MoveRelative(dx, dy int) error
	// Click presses and releases a button.
	Click(b Button) error
	// Scroll turns the wheel. Positive amounts scroll up on the vertical
	// axis and right on the horizontal axis.
	Scroll(axis action.Axis, amount int) error
	KeyDown(k keys.KeyID) error
	KeyUp(k keys.KeyID) error
	KeyTap(k keys.KeyID) error
	// TypeText injects s character by character with no key semantics.
	TypeText(s string) error
}
