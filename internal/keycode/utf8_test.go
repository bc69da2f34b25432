package keycode

import (
	"bytes"
	"testing"
)

func TestEncodeRune(t *testing.T) {
	tests := []struct {
		name string
		in   rune
		want []byte
	}{
		{"dollar", 0x24, []byte{0x24}},
		{"cent", 0xa2, []byte{0xc2, 0xa2}},
		{"euro", 0x20ac, []byte{0xe2, 0x82, 0xac}},
		{"gothic hwair", 0x10348, []byte{0xf0, 0x90, 0x8d, 0x88}},
		{"ascii boundary", 0x7f, []byte{0x7f}},
		{"two byte boundary", 0x80, []byte{0xc2, 0x80}},
		{"three byte boundary", 0x800, []byte{0xe0, 0xa0, 0x80}},
		{"four byte boundary", 0x10000, []byte{0xf0, 0x90, 0x80, 0x80}},
		{"five byte boundary", 0x200000, []byte{0xf8, 0x88, 0x80, 0x80, 0x80}},
		{"six byte boundary", 0x4000000, []byte{0xfc, 0x84, 0x80, 0x80, 0x80, 0x80}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EncodeRune(tt.in)
			if !bytes.Equal(got, tt.want) {
				t.Errorf("EncodeRune(%#x) = %#v, want %#v", tt.in, got, tt.want)
			}
		})
	}
}
