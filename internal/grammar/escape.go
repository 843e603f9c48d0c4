// Package grammar implements the RFC 3986 character classes and the
// percent-encoding codec shared by the public value packages.
package grammar

import (
	"bytes"

	"github.com/binsoul/net/internal/constraints"
)

// Unescape unescapes s by converting each 3-byte encoded substring of the form "% HEXDIG HEXDIG" into the hex-decoded byte.
func Unescape[T constraints.Byteseq](s T) T {
	if len(s) == 0 {
		return s
	}

	var b bytes.Buffer
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && i+2 < len(s) && ishex(s[i+1]) && ishex(s[i+2]) {
			b.WriteByte(unhex(s[i+1])<<4 | unhex(s[i+2]))
			i += 2
		} else {
			b.WriteByte(s[i])
		}
	}
	return T(b.Bytes())
}

// Escape escapes s by replacing each char matched by shouldEscape callback to the hex form "% HEXDIG HEXDIG".
// A '%' that already opens a valid two-hex-digit escape is copied through untouched,
// which keeps the transform idempotent on its own output.
func Escape[T constraints.Byteseq](s T, shouldEscape func(c byte) bool) T {
	if len(s) == 0 {
		return s
	}

	if shouldEscape == nil {
		shouldEscape = func(c byte) bool { return !IsUnreservedChar(c) }
	}

	var b bytes.Buffer
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] == '%' && i+2 < len(s) && ishex(s[i+1]) && ishex(s[i+2]):
			b.WriteByte(s[i])
			b.WriteByte(s[i+1])
			b.WriteByte(s[i+2])
			i += 2
		case shouldEscape(s[i]):
			b.WriteByte('%')
			b.WriteByte(upperhex[s[i]>>4])
			b.WriteByte(upperhex[s[i]&15])
		default:
			b.WriteByte(s[i])
		}
	}
	return T(b.Bytes())
}

const upperhex = "0123456789ABCDEF"

func ishex(c byte) bool {
	switch {
	case '0' <= c && c <= '9':
		return true
	case 'a' <= c && c <= 'f':
		return true
	case 'A' <= c && c <= 'F':
		return true
	}
	return false
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10
	}
	return 0
}

// IsHexChar checks HEXDIG rule.
func IsHexChar(c byte) bool { return ishex(c) }

// IsAlphaChar checks ALPHA rule.
func IsAlphaChar(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

// IsDigitChar checks DIGIT rule.
func IsDigitChar(c byte) bool { return '0' <= c && c <= '9' }

// IsAlphanumChar checks ALPHA / DIGIT.
func IsAlphanumChar(c byte) bool { return IsAlphaChar(c) || IsDigitChar(c) }

var unreservedChars = map[byte]bool{
	'-': true,
	'.': true,
	'_': true,
	'~': true,
}

// IsUnreservedChar checks on unreserved rule.
func IsUnreservedChar(c byte) bool {
	return unreservedChars[c] || IsAlphanumChar(c)
}

var subDelimChars = map[byte]bool{
	'!':  true,
	'$':  true,
	'&':  true,
	'\'': true,
	'(':  true,
	')':  true,
	'*':  true,
	'+':  true,
	',':  true,
	';':  true,
	'=':  true,
}

// IsSubDelimChar checks on sub-delims rule.
func IsSubDelimChar(c byte) bool { return subDelimChars[c] }

// IsUserInfoChar reports whether c may stay unescaped inside the userinfo component.
func IsUserInfoChar(c byte) bool {
	return IsUnreservedChar(c) || IsSubDelimChar(c)
}

var hostExtraChars = map[byte]bool{
	':': true,
	'[': true,
	']': true,
}

// IsHostChar reports whether c may stay unescaped inside the host component.
// The extra set keeps IPv6 literals with their brackets intact.
func IsHostChar(c byte) bool {
	return hostExtraChars[c] || IsUserInfoChar(c)
}

var pathExtraChars = map[byte]bool{
	':': true,
	'@': true,
	'/': true,
}

// IsPathChar reports whether c may stay unescaped inside the path component.
func IsPathChar(c byte) bool {
	return pathExtraChars[c] || IsUserInfoChar(c)
}

var queryExtraChars = map[byte]bool{
	':': true,
	'@': true,
	'/': true,
	'[': true,
	']': true,
	'?': true,
}

// IsQueryChar reports whether c may stay unescaped inside the query and fragment components.
func IsQueryChar(c byte) bool {
	return queryExtraChars[c] || IsUserInfoChar(c)
}

// IsSchemeChar checks the scheme rule tail: ALPHA / DIGIT / "+" / "-" / ".".
func IsSchemeChar(c byte) bool {
	return IsAlphanumChar(c) || c == '+' || c == '-' || c == '.'
}
