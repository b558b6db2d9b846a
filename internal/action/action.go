// Package action defines the canonical input actions applied to the host.
package action

import (
	"fmt"
	"strings"

	"astra/internal/keys"
)

// Action is one canonical input operation. The set of implementations is closed.
type Action interface {
	isAction()
	fmt.Stringer
}

// ClickKind selects which click to perform
type ClickKind int

const (
	ClickLeft ClickKind = iota
	ClickRight
	ClickDouble
)

func (k ClickKind) String() string {
	switch k {
	case ClickLeft:
		return "left"
	case ClickRight:
		return "right"
	case ClickDouble:
		return "double"
	}
	return "unknown"
}

// Axis is the scroll axis
type Axis int

const (
	Vertical Axis = iota
	Horizontal
)

func (a Axis) String() string {
	if a == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// MouseMove displaces the pointer relative to its current position.
type MouseMove struct {
	DX int
	DY int
}

// Click presses and releases a mouse button.
type Click struct {
	Kind ClickKind
}

// Scroll turns the wheel by an already-scaled amount.
type Scroll struct {
	Axis   Axis
	Amount int
}

// KeyPress clicks one key while holding Modifiers, pressed in slice order.
// Unresolved is set when the key name did not resolve; Literal is then typed
// verbatim instead of clicking Key, and may be empty.
type KeyPress struct {
	Key        keys.KeyID
	Literal    string
	Unresolved bool
	Modifiers  []keys.KeyID
}

// TypeText injects a character sequence with no key semantics.
type TypeText struct {
	Text string
}

// OpenApp asks the platform default handler to open an application or URI.
type OpenApp struct {
	Name string
}

func (MouseMove) isAction() {}
func (Click) isAction()     {}
func (Scroll) isAction()    {}
func (KeyPress) isAction()  {}
func (TypeText) isAction()  {}
func (OpenApp) isAction()   {}

func (m MouseMove) String() string { return fmt.Sprintf("mouse_move(%d,%d)", m.DX, m.DY) }
func (c Click) String() string     { return fmt.Sprintf("click(%s)", c.Kind) }
func (s Scroll) String() string    { return fmt.Sprintf("scroll(%s,%d)", s.Axis, s.Amount) }
func (t TypeText) String() string  { return fmt.Sprintf("type(%q)", t.Text) }
func (o OpenApp) String() string   { return fmt.Sprintf("open(%q)", o.Name) }

func (k KeyPress) String() string {
	var b strings.Builder
	b.WriteString("key(")
	for _, m := range k.Modifiers {
		b.WriteString(m.String())
		b.WriteByte('+')
	}
	if k.Unresolved {
		fmt.Fprintf(&b, "%q", k.Literal)
	} else {
		b.WriteString(k.Key.String())
	}
	b.WriteByte(')')
	return b.String()
}
