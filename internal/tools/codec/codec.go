// Package codec encodes and decodes text as Base64, URL components and
// HTML entities.
package codec

import (
	"encoding/base64"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/AnyUserName/stylo-cli/internal/apperr"
	"golang.org/x/net/html"
)

// Base64Encode encodes s (as UTF-8) with the standard padded alphabet.
func Base64Encode(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}

// Base64Decode accepts padded or unpadded input and ignores whitespace.
// The decoded bytes must be valid UTF-8.
func Base64Decode(s string) (string, error) {
	s = strings.Join(strings.Fields(s), "")
	enc := base64.StdEncoding
	if !strings.HasSuffix(s, "=") && len(s)%4 != 0 {
		enc = base64.RawStdEncoding
	}
	raw, err := enc.DecodeString(s)
	if err != nil {
		return "", apperr.Validation(err, "Invalid Base64 input.")
	}
	if !utf8.Valid(raw) {
		return "", apperr.Validationf("Decoded data is not UTF-8 text.")
	}
	return string(raw), nil
}

// DataURL renders data as a data: URL of the given media type.
func DataURL(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// URLEncode percent-encodes s as a URI component: everything except
// A-Z a-z 0-9 and - _ . ! ~ * ' ( ) is escaped.
func URLEncode(s string) string {
	const hexDigits = "0123456789ABCDEF"
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if unreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hexDigits[c>>4])
		b.WriteByte(hexDigits[c&0x0f])
	}
	return b.String()
}

func unreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}

// URLDecode reverses URLEncode. A '+' stays a '+'.
func URLDecode(s string) (string, error) {
	out, err := url.PathUnescape(s)
	if err != nil {
		return "", apperr.Validation(err, "Invalid URL-encoded input.")
	}
	return out, nil
}

var entityEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", "\n", "<br>")

// HTMLEncode escapes the characters markup would interpret, turning line
// breaks into <br>.
func HTMLEncode(s string) string {
	return entityEscaper.Replace(s)
}

// HTMLDecode resolves named and numeric character references.
func HTMLDecode(s string) string {
	return html.UnescapeString(s)
}
