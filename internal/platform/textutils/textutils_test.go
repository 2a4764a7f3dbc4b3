package textutils

import (
	"errors"
	"testing"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

func TestDecode(t *testing.T) {
	utf16le, _, err := transform.Bytes(
		unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder(),
		[]byte("hello world"),
	)
	if err != nil {
		t.Fatalf("encode fixture: %v", err)
	}

	tests := []struct {
		name    string
		raw     []byte
		want    string
		wantErr bool
	}{
		{name: "plain utf8", raw: []byte("hello"), want: "hello"},
		{name: "utf8 with bom", raw: []byte{0xEF, 0xBB, 0xBF, 'h', 'i'}, want: "hi"},
		{name: "utf16 le with bom", raw: utf16le, want: "hello world"},
		{name: "empty", raw: nil, want: ""},
		{name: "invalid bytes", raw: []byte{0xFF, 0xFF, 0x80}, wantErr: true},
		{name: "truncated multibyte", raw: []byte{'o', 'k', 0xE2, 0x82}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.raw)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidEncoding) {
					t.Fatalf("Decode() error = %v, want ErrInvalidEncoding", err)
				}

				return
			}

			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}

			if got != tt.want {
				t.Errorf("Decode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		text string
		want []string
	}{
		{"Hello World", []string{"hello", "world"}},
		{"a I at", []string{"at"}},
		{"don't stop", []string{"don", "stop"}},
		{"", nil},
	}

	for _, tt := range tests {
		got := Tokenize(tt.text)
		if len(got) != len(tt.want) {
			t.Fatalf("Tokenize(%q) = %v, want %v", tt.text, got, tt.want)
		}

		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("Tokenize(%q)[%d] = %q, want %q", tt.text, i, got[i], tt.want[i])
			}
		}
	}
}

func TestStripNames(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		names []string
		want  string
	}{
		{"removes whole word", "alice said hi", []string{"Alice"}, " said hi"},
		{"case insensitive", "Bob and BOB", []string{"bob"}, " and "},
		{"keeps substrings", "alicette spoke", []string{"alice"}, "alicette spoke"},
		{"no names", "unchanged", nil, "unchanged"},
		{"blank names ignored", "unchanged", []string{"  ", ""}, "unchanged"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripNames(tt.text, tt.names); got != tt.want {
				t.Errorf("StripNames() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCollapseSpaces(t *testing.T) {
	if got := CollapseSpaces("  a \t b\n\nc "); got != "a b c" {
		t.Errorf("CollapseSpaces() = %q", got)
	}
}
