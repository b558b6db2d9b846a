package input

import "astra/internal/keys"

// Windows virtual-key codes. The Windows backend sends them directly and the
// macOS backend translates them to CGKeyCodes.
// Reference: https://docs.microsoft.com/en-us/windows/win32/inputdev/virtual-key-codes
var vkCodes = map[keys.KeyID]uint16{
	keys.Control:    0x11,
	keys.Alt:        0x12,
	keys.Shift:      0x10,
	keys.Meta:       0x5B, // Left Windows
	keys.Return:     0x0D,
	keys.Escape:     0x1B,
	keys.Backspace:  0x08,
	keys.Delete:     0x2E,
	keys.Tab:        0x09,
	keys.Space:      0x20,
	keys.CapsLock:   0x14,
	keys.Home:       0x24,
	keys.End:        0x23,
	keys.PageUp:     0x21,
	keys.PageDown:   0x22,
	keys.UpArrow:    0x26,
	keys.DownArrow:  0x28,
	keys.LeftArrow:  0x25,
	keys.RightArrow: 0x27,
	keys.VolumeMute: 0xAD,
	keys.VolumeDown: 0xAE,
	keys.VolumeUp:   0xAF,
}

func init() {
	for i := keys.KeyID(0); i < 12; i++ {
		vkCodes[keys.F1+i] = 0x70 + uint16(i)
	}
	for i := keys.KeyID(0); i < 10; i++ {
		vkCodes[keys.Digit0+i] = 0x30 + uint16(i)
	}
	for i := keys.KeyID(0); i < 26; i++ {
		vkCodes[keys.LetterA+i] = 0x41 + uint16(i)
	}
}

// extendedVK are keys that need KEYEVENTF_EXTENDEDKEY on Windows.
var extendedVK = map[uint16]bool{
	0x21: true, 0x22: true, 0x23: true, 0x24: true,
	0x25: true, 0x26: true, 0x27: true, 0x28: true,
	0x2E: true, 0x5B: true,
}
