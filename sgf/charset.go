package sgf

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
)

// DecodeRecord converts raw record bytes to UTF-8 text using the charset the
// record declares in CA. Records without CA are taken as UTF-8 when they are
// valid UTF-8 and as ISO-8859-1 (the FF[4] default) otherwise. It returns the
// text and the name of the charset that was applied.
func DecodeRecord(data []byte) (string, string) {
	name := strings.TrimSpace(rootProperties(data)["CA"])
	if name == "" {
		if utf8.Valid(data) {
			return string(data), "utf-8"
		}
		text, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return string(data), "utf-8"
		}
		return string(text), "iso-8859-1"
	}

	enc, err := htmlindex.Get(name)
	if err != nil {
		// Unknown charset: leave the bytes alone, the parser rejects
		// values that are not UTF-8.
		return string(data), "utf-8"
	}
	canonical, _ := htmlindex.Name(enc)
	if canonical == "utf-8" {
		return string(data), canonical
	}
	text, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return string(data), "utf-8"
	}
	return string(text), canonical
}

// rootProperties extracts KEY[value] pairs from the root node of the first
// record, without full parsing. Only the first value of each property is
// kept. Identifiers and delimiters are ASCII in every charset SGF allows, so
// this works on undecoded bytes.
func rootProperties(data []byte) map[string]string {
	props := make(map[string]string)

	i := 0
	for i < len(data) && data[i] != '(' {
		i++
	}
	for i < len(data) && data[i] != ';' {
		i++
	}
	i++ // skip ";"

	for i < len(data) {
		c := data[i]
		switch {
		case c == ';' || c == '(' || c == ')':
			return props
		case c >= 'A' && c <= 'Z':
			keyStart := i
			for i < len(data) && data[i] >= 'A' && data[i] <= 'Z' {
				i++
			}
			key := string(data[keyStart:i])
			for i < len(data) && isSpace(data[i]) {
				i++
			}
			// Read all property values (e.g., AB[aa][bb][cc])
			for i < len(data) && data[i] == '[' {
				i++ // skip '['
				valStart := i
				for i < len(data) && data[i] != ']' {
					if data[i] == '\\' && i+1 < len(data) {
						i++ // skip escaped char
					}
					i++
				}
				if _, seen := props[key]; !seen {
					props[key] = string(data[valStart:i])
				}
				if i < len(data) {
					i++ // skip ']'
				}
				for i < len(data) && isSpace(data[i]) {
					i++
				}
			}
		default:
			i++
		}
	}
	return props
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\n' || c == '\r' || c == '\t'
}
