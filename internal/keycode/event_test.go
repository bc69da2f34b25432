package keycode

import (
	"bytes"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestEventToKeysNamedKeys(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want []byte
	}{
		{"tab", tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone), []byte{KeyTab}},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), []byte{KeyCR}},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), []byte{KeyEsc}},
		{"backspace", tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), []byte{KeyBS}},
		{"shift tab", tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModShift), []byte{CSI, 'k', 'B'}},
		{"backtab", tcell.NewEventKey(tcell.KeyBacktab, 0, tcell.ModNone), []byte{CSI, 'k', 'B'}},
		{"up", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), []byte{CSI, 'k', 'u'}},
		{"down", tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), []byte{CSI, 'k', 'd'}},
		{"f1", tcell.NewEventKey(tcell.KeyF1, 0, tcell.ModNone), []byte{CSI, 'k', '1'}},
		{"f10", tcell.NewEventKey(tcell.KeyF10, 0, tcell.ModNone), []byte{CSI, 'k', ';'}},
		{"f11", tcell.NewEventKey(tcell.KeyF11, 0, tcell.ModNone), []byte{CSI, 'F', '1'}},
		{"f12", tcell.NewEventKey(tcell.KeyF12, 0, tcell.ModNone), []byte{CSI, 'F', '2'}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := EventToKeys(tt.ev)
			if !ok {
				t.Fatalf("EventToKeys() reported unhandled")
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("EventToKeys() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestEventToKeysRunes(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want []byte
	}{
		{"ascii rune", tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone), []byte{'a'}},
		{"two byte rune", tcell.NewEventKey(tcell.KeyRune, '¢', tcell.ModNone), []byte{0xc2, 0xa2}},
		{"three byte rune", tcell.NewEventKey(tcell.KeyRune, '€', tcell.ModNone), []byte{0xe2, 0x82, 0xac}},
		{"ctrl letter", tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModCtrl), []byte{0x01}},
		{"ctrl upper letter", tcell.NewEventKey(tcell.KeyRune, 'G', tcell.ModCtrl), []byte{0x07}},
		{"ctrl eight is backspace", tcell.NewEventKey(tcell.KeyRune, '8', tcell.ModCtrl), []byte{KeyBS}},
		{"ctrl below at stays literal", tcell.NewEventKey(tcell.KeyRune, '1', tcell.ModCtrl), []byte{'1'}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := EventToKeys(tt.ev)
			if !ok {
				t.Fatalf("EventToKeys() reported unhandled")
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("EventToKeys() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestEventToKeysUnhandled(t *testing.T) {
	// keys without an internal representation must be reported unhandled so
	// the toolkit can apply its default behavior
	if keys, ok := EventToKeys(tcell.NewEventKey(tcell.KeyF13, 0, tcell.ModNone)); ok {
		t.Errorf("EventToKeys(F13) = %#v, want unhandled", keys)
	}
}
