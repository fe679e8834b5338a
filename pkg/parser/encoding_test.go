package parser

import "testing"

func TestDetectAndDecode(t *testing.T) {
	cases := []struct {
		name     string
		in       []byte
		want     string
		encoding string
	}{
		{"empty", nil, "", "utf-8"},
		{"plain utf-8", []byte("Novák"), "Novák", "utf-8"},
		{"utf-8 bom", append([]byte{0xEF, 0xBB, 0xBF}, "Jméno"...), "Jméno", "utf-8-bom"},
		{"utf-16le bom", []byte{0xFF, 0xFE, 'A', 0x00, 'b', 0x00}, "Ab", "utf-16le"},
		{"utf-16be bom odd tail", []byte{0xFE, 0xFF, 0x00, 'A', 0x00, 'b', 0x00}, "Ab", "utf-16be"},
		{"windows-1250", []byte("Nov\xe1k \x9aef"), "Novák šef", "windows-1250"},
	}
	for _, c := range cases {
		got, enc, err := DetectAndDecode(c.in)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", c.name, err)
		}
		if string(got) != c.want || enc != c.encoding {
			t.Fatalf("%s: got (%q, %s), want (%q, %s)", c.name, got, enc, c.want, c.encoding)
		}
	}
}
