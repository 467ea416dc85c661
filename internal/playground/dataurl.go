package playground

import "strings"

const upperhex = "0123456789ABCDEF"

// EncodeURIComponent escapes s the way browsers do for URI components:
// ASCII letters, digits and -_.!~*'() are kept, every other byte of the
// UTF-8 encoding becomes %XX.
func EncodeURIComponent(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if keepUnescaped(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&15])
	}
	return b.String()
}

func keepUnescaped(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}

// DataURL wraps a document in a text/html data URL.
func DataURL(doc string) string {
	return "data:text/html;charset=utf-8," + EncodeURIComponent(doc)
}
