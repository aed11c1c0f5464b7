package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"unicode/utf16"
	"unicode/utf8"
)

// marshalJSON encodes v without HTML escaping so messages such as
// "Usage: enclose <file_path> ..." keep their angle brackets.
func marshalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(v); err != nil {
		return nil, err
	}

	return EscapeNonASCII(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

// EscapeNonASCII rewrites every non-ASCII rune of encoded JSON as a \uXXXX
// escape, using surrogate pairs above U+FFFF. Non-ASCII bytes only occur
// inside JSON strings, so the document stays valid.
func EscapeNonASCII(data []byte) []byte {
	if !hasNonASCII(data) {
		return data
	}

	out := make([]byte, 0, len(data)+len(data)/2)

	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		data = data[size:]

		switch {
		case r < utf8.RuneSelf:
			out = append(out, byte(r))
		case r > 0xFFFF:
			hi, lo := utf16.EncodeRune(r)
			out = fmt.Appendf(out, `\u%04x\u%04x`, hi, lo)
		default:
			out = fmt.Appendf(out, `\u%04x`, r)
		}
	}

	return out
}

func hasNonASCII(data []byte) bool {
	for _, b := range data {
		if b >= utf8.RuneSelf {
			return true
		}
	}

	return false
}
