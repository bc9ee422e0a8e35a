package importer

import "testing"

func TestDecodeText(t *testing.T) {
	tests := []struct {
		name    string
		in      []byte
		want    string
		wantEnc string
	}{
		{"plain utf-8", []byte("héllo"), "héllo", "utf-8"},
		{"utf-8 bom", append([]byte{0xEF, 0xBB, 0xBF}, "abc"...), "abc", "utf-8"},
		{"utf-16le bom", []byte{0xFF, 0xFE, 'h', 0, 0xE9, 0, 'y', 0}, "héy", "utf-16le"},
		{"utf-16be bom", []byte{0xFE, 0xFF, 0, 'h', 0, 0xE9, 0, 'y'}, "héy", "utf-16be"},
		{"latin-1", []byte("caf\xe9"), "café", "windows-1252"},
		{"windows-1252 quotes", []byte("\x93quoted\x94"), "“quoted”", "windows-1252"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, enc := DecodeText(tt.in)
			if got != tt.want || enc != tt.wantEnc {
				t.Errorf("DecodeText() = %q (%s), want %q (%s)", got, enc, tt.want, tt.wantEnc)
			}
		})
	}
}
