package res

import (
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
)

// EncodingByName maps a user-facing encoding name to its codec. Supported
// names cover the encodings seen in shipped archives: "windows-1252" (the
// default), "shift-jis" for Japanese-named legacy archives, and "utf-8".
func EncodingByName(name string) (encoding.Encoding, error) {
	switch name {
	case "", "windows-1252", "cp1252":
		return charmap.Windows1252, nil
	case "shift-jis", "sjis":
		return japanese.ShiftJIS, nil
	case "utf-8", "utf8":
		return unicode.UTF8, nil
	default:
		return nil, fmt.Errorf("res: unsupported encoding %q", name)
	}
}
