package keycode

import (
	"github.com/gdamore/tcell/v2"
)

// specialKeys is the single source of truth for which named keys get the
// three-byte special form. It is consulted only when the primary
// translation produced nothing or a single ambiguous byte. A zero mods
// field matches any modifier state.
var specialKeys = []struct {
	mods     tcell.ModMask
	key      tcell.Key
	one, two byte
}{
	{tcell.ModShift, tcell.KeyTab, 'k', 'B'},
	{0, tcell.KeyBacktab, 'k', 'B'},
	{0, tcell.KeyUp, 'k', 'u'},
	{0, tcell.KeyDown, 'k', 'd'},
	{0, tcell.KeyLeft, 'k', 'l'},
	{0, tcell.KeyRight, 'k', 'r'},
	{0, tcell.KeyF1, 'k', '1'},
	{0, tcell.KeyF2, 'k', '2'},
	{0, tcell.KeyF3, 'k', '3'},
	{0, tcell.KeyF4, 'k', '4'},
	{0, tcell.KeyF5, 'k', '5'},
	{0, tcell.KeyF6, 'k', '6'},
	{0, tcell.KeyF7, 'k', '7'},
	{0, tcell.KeyF8, 'k', '8'},
	{0, tcell.KeyF9, 'k', '9'},
	{0, tcell.KeyF10, 'k', ';'},
	{0, tcell.KeyF11, 'F', '1'},
	{0, tcell.KeyF12, 'F', '2'},
}

// EventToKeys translates a key event into the internal byte form.
// The boolean result is false when the event carries no translatable key,
// so the caller can leave it to the toolkit's default handling.
func EventToKeys(ev *tcell.EventKey) ([]byte, bool) {
	buf := primaryBytes(ev)

	// a short ambiguous result may still name a special key
	if len(buf) <= 1 {
		mods := ev.Modifiers()
		for _, sk := range specialKeys {
			if sk.key == ev.Key() && (sk.mods == 0 || mods&sk.mods != 0) {
				buf = []byte{CSI, sk.one, sk.two}
				break
			}
		}
	}

	if len(buf) == 0 {
		return nil, false
	}
	return buf, true
}

// primaryBytes performs the first translation stage: named keys map to
// fixed control bytes, control-modified printable runes to control bytes,
// any other rune to its UTF-8 form.
func primaryBytes(ev *tcell.EventKey) []byte {
	switch key := ev.Key(); key {
	case tcell.KeyTab:
		return []byte{KeyTab}
	case tcell.KeyEnter:
		return []byte{KeyCR}
	case tcell.KeyEsc:
		return []byte{KeyEsc}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return []byte{KeyBS}
	case tcell.KeyRune:
		r := ev.Rune()
		if ev.Modifiers()&tcell.ModCtrl != 0 && r >= 0x20 && r < 0x80 {
			switch {
			case r >= '@':
				return []byte{byte(r) & 0x1f}
			case r == '8':
				// terminals send C-8 as backspace
				return []byte{KeyBS}
			default:
				return []byte{byte(r)}
			}
		}
		return EncodeRune(r)
	default:
		// control keys the terminal already collapsed to their byte value
		if key < ' ' {
			return []byte{byte(key)}
		}
		return nil
	}
}
