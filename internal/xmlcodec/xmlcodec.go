// Package xmlcodec decodes the BoardGameGeek XML dialect: value-wrapped
// scalars, sentinel strings for absent values, and repeated tags whose
// meaning depends on a discriminant attribute.
package xmlcodec

import (
	"bytes"
	"encoding/xml"
	"fmt"
)

// extraEntities maps named entities the service emits that XML itself
// does not predefine.
var extraEntities = map[string]string{
	"mdash": "—",
}

// Unmarshal decodes doc into v. Bare ampersands are escaped first and the
// service's non-standard named entities are honoured. CDATA sections fold
// into character data and comments are skipped by the decoder itself.
func Unmarshal(doc []byte, v any) error {
	d := xml.NewDecoder(bytes.NewReader(EscapeAmpersands(doc)))
	d.Entity = extraEntities
	if err := d.Decode(v); err != nil {
		return fmt.Errorf("decoding xml: %w", err)
	}
	return nil
}

// EscapeAmpersands rewrites bare "&" bytes as "&amp;". The service emits
// unescaped ampersands inside text content, which a conforming parser
// rejects. Well-formed entity and character references are left alone.
func EscapeAmpersands(doc []byte) []byte {
	var out bytes.Buffer
	out.Grow(len(doc))

	for i := 0; i < len(doc); i++ {
		c := doc[i]
		if c != '&' {
			out.WriteByte(c)
			continue
		}
		if isReference(doc[i+1:]) {
			out.WriteByte(c)
			continue
		}
		out.WriteString("&amp;")
	}
	return out.Bytes()
}

// isReference reports whether rest begins with the tail of a well-formed
// entity reference (name or character number) up to its closing semicolon.
func isReference(rest []byte) bool {
	if len(rest) == 0 {
		return false
	}

	i := 0
	switch {
	case rest[0] == '#':
		i = 1
		hex := false
		if i < len(rest) && (rest[i] == 'x' || rest[i] == 'X') {
			hex = true
			i++
		}
		start := i
		for i < len(rest) && isDigitRef(rest[i], hex) {
			i++
		}
		if i == start {
			return false
		}
	case isNameStart(rest[0]):
		i = 1
		for i < len(rest) && isNameChar(rest[i]) {
			i++
		}
	default:
		return false
	}

	return i < len(rest) && rest[i] == ';'
}

func isDigitRef(c byte, hex bool) bool {
	if c >= '0' && c <= '9' {
		return true
	}
	return hex && ((c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F'))
}

func isNameStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isNameChar(c byte) bool {
	return isNameStart(c) || (c >= '0' && c <= '9') || c == '-' || c == '.'
}
