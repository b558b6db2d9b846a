// Package keys maps human-readable key names to platform-neutral key identifiers.
package keys

import (
	"sort"
	"strings"
)

// KeyID is a platform-neutral key identifier. Backends translate it to
// their own codes (X11 keysym names, Windows virtual-key codes).
type KeyID int

const (
	Unknown KeyID = iota

	// Modifiers
	Control
	Alt
	Shift
	Meta

	// Editing and navigation
	Return
	Escape
	Backspace
	Delete
	Tab
	Space
	CapsLock
	Home
	End
	PageUp
	PageDown
	UpArrow
	DownArrow
	LeftArrow
	RightArrow

	// Function keys
	F1
	F2
	F3
	F4
	F5
	F6
	F7
	F8
	F9
	F10
	F11
	F12

	// Media
	VolumeUp
	VolumeDown
	VolumeMute

	// Digits 0-9 follow in order, then letters a-z.
	Digit0
	Digit1
	Digit2
	Digit3
	Digit4
	Digit5
	Digit6
	Digit7
	Digit8
	Digit9
	LetterA
	LetterB
	LetterC
	LetterD
	LetterE
	LetterF
	LetterG
	LetterH
	LetterI
	LetterJ
	LetterK
	LetterL
	LetterM
	LetterN
	LetterO
	LetterP
	LetterQ
	LetterR
	LetterS
	LetterT
	LetterU
	LetterV
	LetterW
	LetterX
	LetterY
	LetterZ
)

var canonical = map[KeyID]string{
	Control:    "ctrl",
	Alt:        "alt",
	Shift:      "shift",
	Meta:       "meta",
	Return:     "enter",
	Escape:     "escape",
	Backspace:  "backspace",
	Delete:     "delete",
	Tab:        "tab",
	Space:      "space",
	CapsLock:   "capslock",
	Home:       "home",
	End:        "end",
	PageUp:     "pageup",
	PageDown:   "pagedown",
	UpArrow:    "up",
	DownArrow:  "down",
	LeftArrow:  "left",
	RightArrow: "right",
	F1:         "f1",
	F2:         "f2",
	F3:         "f3",
	F4:         "f4",
	F5:         "f5",
	F6:         "f6",
	F7:         "f7",
	F8:         "f8",
	F9:         "f9",
	F10:        "f10",
	F11:        "f11",
	F12:        "f12",
	VolumeUp:   "volumeup",
	VolumeDown: "volumedown",
	VolumeMute: "volumemute",
}

// names is the lookup table. Keys are lower-case; it is never written after init.
var names = map[string]KeyID{
	"ctrl":    Control,
	"control": Control,
	"alt":     Alt,
	"shift":   Shift,
	"win":     Meta,
	"super":   Meta,
	"meta":    Meta,

	"enter":     Return,
	"return":    Return,
	"escape":    Escape,
	"esc":       Escape,
	"backspace": Backspace,
	"back":      Backspace,
	"delete":    Delete,
	"del":       Delete,
	"tab":       Tab,
	"space":     Space,
	"capslock":  CapsLock,
	"home":      Home,
	"end":       End,
	"pageup":    PageUp,
	"page_up":   PageUp,
	"pagedown":  PageDown,
	"page_down": PageDown,

	"up":         UpArrow,
	"uparrow":    UpArrow,
	"down":       DownArrow,
	"downarrow":  DownArrow,
	"left":       LeftArrow,
	"leftarrow":  LeftArrow,
	"right":      RightArrow,
	"rightarrow": RightArrow,

	"f1":  F1,
	"f2":  F2,
	"f3":  F3,
	"f4":  F4,
	"f5":  F5,
	"f6":  F6,
	"f7":  F7,
	"f8":  F8,
	"f9":  F9,
	"f10": F10,
	"f11": F11,
	"f12": F12,
}

func init() {
	for i := 0; i < 10; i++ {
		id := Digit0 + KeyID(i)
		name := string(rune('0' + i))
		names[name] = id
		canonical[id] = name
	}
	for i := 0; i < 26; i++ {
		id := LetterA + KeyID(i)
		name := string(rune('a' + i))
		names[name] = id
		canonical[id] = name
	}
}

// Resolve looks up a key by name. Matching is case-insensitive and exact.
// A false result means the caller should fall back to typing the name literally.
func Resolve(name string) (KeyID, bool) {
	id, ok := names[strings.ToLower(name)]
	return id, ok
}

// Names returns every resolvable name in sorted order.
func Names() []string {
	out := make([]string, 0, len(names))
	for n := range names {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// String returns the canonical name of the key.
func (k KeyID) String() string {
	if s, ok := canonical[k]; ok {
		return s
	}
	return "unknown"
}

// IsModifier reports whether k is one of the chord modifiers.
func (k KeyID) IsModifier() bool {
	return k >= Control && k <= Meta
}

// IsDigit reports whether k is one of Digit0..Digit9.
func (k KeyID) IsDigit() bool {
	return k >= Digit0 && k <= Digit9
}

// IsLetter reports whether k is one of LetterA..LetterZ.
func (k KeyID) IsLetter() bool {
	return k >= LetterA && k <= LetterZ
}
