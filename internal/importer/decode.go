package importer

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16BE = []byte{0xFE, 0xFF}
	bomUTF16LE = []byte{0xFF, 0xFE}
)

// fallbackEncodings are tried in order when the input is not valid UTF-8.
var fallbackEncodings = []struct {
	name string
	enc  encoding.Encoding
}{
	{"windows-1252", charmap.Windows1252},
	{"iso-8859-1", charmap.ISO8859_1},
}

// DecodeText converts an imported file to a string and reports the encoding
// that produced it. UTF-8 (BOM stripped) and BOM-marked UTF-16 are detected
// directly; anything else is tried against the single-byte fallbacks until
// one yields non-empty text.
func DecodeText(buf []byte) (string, string) {
	switch {
	case bytes.HasPrefix(buf, bomUTF8):
		return string(buf[len(bomUTF8):]), "utf-8"
	case bytes.HasPrefix(buf, bomUTF16BE):
		if s, ok := decodeWith(unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM), buf); ok {
			return s, "utf-16be"
		}
	case bytes.HasPrefix(buf, bomUTF16LE):
		if s, ok := decodeWith(unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM), buf); ok {
			return s, "utf-16le"
		}
	}

	if utf8.Valid(buf) {
		return string(buf), "utf-8"
	}
	for _, fb := range fallbackEncodings {
		if s, ok := decodeWith(fb.enc, buf); ok {
			return s, fb.name
		}
	}
	return strings.ToValidUTF8(string(buf), "�"), "utf-8"
}

func decodeWith(enc encoding.Encoding, buf []byte) (string, bool) {
	out, err := enc.NewDecoder().Bytes(buf)
	if err != nil || len(bytes.TrimSpace(out)) == 0 {
		return "", false
	}
	return string(out), true
}
