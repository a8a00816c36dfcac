package structview

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Text decodes the byte range [start,end) of the live window under a named
// encoding; an end of 0 means the end of the window. Supported names:
// utf-8, ascii, latin1, utf-16le, hex, base64.
// ascii masks each byte to 7 bits; latin1 and utf-16le go through the
// golang.org/x/text decoders.
func (v *View) Text(encoding string, start, end int) (string, error) {
	w := v.Bytes()
	if end == 0 {
		end = len(w)
	}
	if start < 0 || end > len(w) || start > end {
		return "", fmt.Errorf("%w: range [%d:%d) outside %d bytes", ErrShortBuffer, start, end, len(w))
	}
	b := w[start:end]
	switch encoding {
	case "utf-8", "utf8":
		return string(b), nil
	case "ascii":
		out := make([]byte, len(b))
		for i, c := range b {
			out[i] = c & 0x7F
		}
		return string(out), nil
	case "latin1", "iso-8859-1":
		s, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
		if err != nil {
			return "", err
		}
		return string(s), nil
	case "utf-16le", "utf16le":
		dec := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
		s, err := dec.Bytes(b)
		if err != nil {
			return "", err
		}
		return string(s), nil
	case "hex":
		return hex.EncodeToString(b), nil
	case "base64":
		return base64.StdEncoding.EncodeToString(b), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownEncoding, encoding)
	}
}
