package keycode

// EncodeRune encodes a codepoint using the full 1..6 byte UTF-8 rule.
// Unlike the stdlib encoder this covers the historic 5 and 6 byte forms so
// any 31-bit codepoint can be buffered literally.
func EncodeRune(c rune) []byte {
	u := uint32(c)
	switch {
	case u < 0x80:
		return []byte{byte(u)}
	case u < 0x800:
		return []byte{
			0xc0 + byte(u>>6),
			0x80 + byte(u&0x3f),
		}
	case u < 0x10000:
		return []byte{
			0xe0 + byte(u>>12),
			0x80 + byte((u>>6)&0x3f),
			0x80 + byte(u&0x3f),
		}
	case u < 0x200000:
		return []byte{
			0xf0 + byte(u>>18),
			0x80 + byte((u>>12)&0x3f),
			0x80 + byte((u>>6)&0x3f),
			0x80 + byte(u&0x3f),
		}
	case u < 0x4000000:
		return []byte{
			0xf8 + byte(u>>24),
			0x80 + byte((u>>18)&0x3f),
			0x80 + byte((u>>12)&0x3f),
			0x80 + byte((u>>6)&0x3f),
			0x80 + byte(u&0x3f),
		}
	}
	return []byte{
		0xfc + byte(u>>30),
		0x80 + byte((u>>24)&0x3f),
		0x80 + byte((u>>18)&0x3f),
		0x80 + byte((u>>12)&0x3f),
		0x80 + byte((u>>6)&0x3f),
		0x80 + byte(u&0x3f),
	}
}
