// Package keycode translates between raw key events, the human-readable key
// notation ("<C-x>", "<S-Tab>", "<F1>") and the internal byte stream consumed
// by the key resolver.
//
// A logical keystroke is either a single byte (control code, printable ASCII
// or a byte of a UTF-8 sequence) or a three-byte special form: the CSI marker
// followed by a two-byte termcap pair naming the key. Special forms are
// never split.
package keycode

import (
	"strings"
)

// CSI marks the start of a three-byte special key form.
const CSI byte = 0x80

// Fixed single-byte key codes.
const (
	KeyTab byte = 0x09
	KeyNL  byte = 0x0a
	KeyCR  byte = 0x0a // carriage return is normalized to newline
	KeyEsc byte = 0x1b
	KeyBS  byte = 0x08
)

// Combined key identifiers for the special keys, as produced by
// TermcapToKey from the two bytes following the CSI marker.
const (
	KeyShiftTab = int('k') | int('B')<<8
	KeyUp       = int('k') | int('u')<<8
	KeyDown     = int('k') | int('d')<<8
	KeyLeft     = int('k') | int('l')<<8
	KeyRight    = int('k') | int('r')<<8
	KeyF1       = int('k') | int('1')<<8
	KeyF2       = int('k') | int('2')<<8
	KeyF3       = int('k') | int('3')<<8
	KeyF4       = int('k') | int('4')<<8
	KeyF5       = int('k') | int('5')<<8
	KeyF6       = int('k') | int('6')<<8
	KeyF7       = int('k') | int('7')<<8
	KeyF8       = int('k') | int('8')<<8
	KeyF9       = int('k') | int('9')<<8
	KeyF10      = int('k') | int(';')<<8
	KeyF11      = int('F') | int('1')<<8
	KeyF12      = int('F') | int('2')<<8
)

// TermcapToKey combines the two discriminator bytes of a special form into
// a single key identifier.
func TermcapToKey(one, two byte) int {
	return int(one) | int(two)<<8
}

// termcapNames maps combined special key identifiers to their notation label.
var termcapNames = map[int]string{
	KeyShiftTab: "<S-Tab>",
	KeyUp:       "<Up>",
	KeyDown:     "<Down>",
	KeyLeft:     "<Left>",
	KeyRight:    "<Right>",
	KeyF1:       "<F1>",
	KeyF2:       "<F2>",
	KeyF3:       "<F3>",
	KeyF4:       "<F4>",
	KeyF5:       "<F5>",
	KeyF6:       "<F6>",
	KeyF7:       "<F7>",
	KeyF8:       "<F8>",
	KeyF9:       "<F9>",
	KeyF10:      "<F10>",
	KeyF11:      "<F11>",
	KeyF12:      "<F12>",
}

// ToString renders a raw key sequence readably: special forms as their
// notation label, control bytes caret-escaped, everything else literally.
// Used for the pending-keys display.
func ToString(keys []byte) string {
	var b strings.Builder
	for i := 0; i < len(keys); i++ {
		c := keys[i]
		switch {
		case c == CSI && i+2 < len(keys):
			key := TermcapToKey(keys[i+1], keys[i+2])
			if name, ok := termcapNames[key]; ok {
				b.WriteString(name)
			}
			i += 2
		case c < 0x20:
			b.WriteByte('^')
			b.WriteByte(c + 0x40)
		case c == 0x7f:
			b.WriteString("^?")
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
