package service

import (
	"bytes"
	"errors"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// decodeText turns raw upload bytes into a string. Detection first (UTF-8 with
// or without BOM, UTF-16 via BOM), then a fixed fallback chain of the legacy
// encodings spreadsheets commonly ship in.
func decodeText(raw []byte) (string, error) {
	raw = bytes.TrimPrefix(raw, utf8BOM)
	if utf8.Valid(raw) {
		return string(raw), nil
	}

	if len(raw) >= 2 && ((raw[0] == 0xFF && raw[1] == 0xFE) || (raw[0] == 0xFE && raw[1] == 0xFF)) {
		dec := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
		if out, err := dec.Bytes(raw); err == nil && utf8.Valid(out) {
			return string(out), nil
		}
	}

	for _, enc := range []encoding.Encoding{charmap.Windows1252, charmap.ISO8859_1} {
		if out, err := enc.NewDecoder().Bytes(raw); err == nil && utf8.Valid(out) {
			return string(out), nil
		}
	}

	return "", errors.New("file is not readable in any supported text encoding")
}
