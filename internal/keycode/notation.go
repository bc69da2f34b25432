package keycode

// labelKeys maps the bracketed key labels to their raw byte form.
var labelKeys = map[string][]byte{
	"<CR>":    {KeyCR},
	"<Tab>":   {KeyTab},
	"<S-Tab>": {CSI, 'k', 'B'},
	"<Esc>":   {KeyEsc},
	"<Up>":    {CSI, 'k', 'u'},
	"<Down>":  {CSI, 'k', 'd'},
	"<Left>":  {CSI, 'k', 'l'},
	"<Right>": {CSI, 'k', 'r'},
	"<F1>":    {CSI, 'k', '1'},
	"<F2>":    {CSI, 'k', '2'},
	"<F3>":    {CSI, 'k', '3'},
	"<F4>":    {CSI, 'k', '4'},
	"<F5>":    {CSI, 'k', '5'},
	"<F6>":    {CSI, 'k', '6'},
	"<F7>":    {CSI, 'k', '7'},
	"<F8>":    {CSI, 'k', '8'},
	"<F9>":    {CSI, 'k', '9'},
	"<F10>":   {CSI, 'k', ';'},
	"<F11>":   {CSI, 'F', '1'},
	"<F12>":   {CSI, 'F', '2'},
}

// FromNotation converts a key sequence in human notation into the internal
// raw byte form. Characters outside bracketed labels are copied literally.
// A bracketed span that matches no known label is preserved byte for byte,
// angle brackets included. A scan that reaches the end of the string, an
// unescaped '<' or a space before the closing '>' rejects the span the same
// way.
func FromNotation(in string) []byte {
	out := make([]byte, 0, len(in))
	for p := 0; p < len(in); p++ {
		if in[p] != '<' {
			out = append(out, in[p])
			continue
		}

		// search matching > of the symbolic name
		symlen := 1
		for p+symlen < len(in) && in[p+symlen] != '<' && in[p+symlen] != ' ' {
			ch := in[p+symlen]
			symlen++
			if ch == '>' {
				break
			}
		}

		var raw []byte
		if in[p+symlen-1] == '>' {
			// <C-X> control notation produces the control byte directly
			if symlen == 5 && in[p+2] == '-' && in[p+1] == 'C' {
				switch c := in[p+3]; {
				case c >= 0x41 && c <= 0x5d:
					raw = []byte{c - 0x40}
				case c >= 0x61 && c <= 0x7a:
					raw = []byte{c - 0x60}
				}
			}
			if raw == nil {
				raw = labelKeys[in[p:p+symlen]]
			}
		}

		// no known label, use the scanned chars literally
		if raw == nil {
			raw = []byte(in[p : p+symlen])
		}

		out = append(out, raw...)
		p += symlen - 1
	}
	return out
}
