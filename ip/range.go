package ip

//go:generate go tool errtrace -w .

import (
	"encoding/hex"
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/binsoul/net/internal/errorutil"
	"github.com/binsoul/net/internal/util"
)

// InRange reports whether the address lies within the given range expression.
//
// Three syntaxes are accepted:
//   - "addr-addr"  explicit lower and upper bound
//   - "addr/bits"  CIDR block; an IPv4 base may omit trailing octets
//   - "addr"       exact match
//
// Malformed expressions fail with [ErrInvalidRange].
func (a Addr) InRange(rangeText string) (bool, error) {
	if !a.addr.IsValid() {
		return false, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidRange, "zero address"))
	}

	text := util.LCase(util.TrimSP(rangeText))
	switch {
	case strings.Contains(text, "-"):
		return errtrace.Wrap2(a.inBoundedRange(text))
	case strings.Contains(text, "/"):
		return errtrace.Wrap2(a.inCIDRBlock(text))
	default:
		other, err := Parse(text)
		if err != nil {
			return false, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidRange, err))
		}
		return a.Equal(other), nil
	}
}

// hexForm returns the fixed-width lowercase hex form of the binary address:
// 8 digits for v4, 32 digits for v6. Lexicographic comparison of two such
// strings of equal width is unsigned big-endian numeric comparison.
func (a Addr) hexForm() string {
	if a.Family() == V4 {
		b := a.addr.As4()
		return hex.EncodeToString(b[:])
	}
	b := a.addr.As16()
	return hex.EncodeToString(b[:])
}

func (a Addr) inBoundedRange(text string) (bool, error) {
	parts := strings.Split(text, "-")
	if len(parts) != 2 {
		return false, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidRange, "expected exactly two bounds in %q", text))
	}
	lower, err := Parse(parts[0])
	if err != nil {
		return false, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidRange, err))
	}
	upper, err := Parse(parts[1])
	if err != nil {
		return false, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidRange, err))
	}

	self := a.hexForm()
	return lower.hexForm() <= self && self <= upper.hexForm(), nil
}

func (a Addr) inCIDRBlock(text string) (bool, error) {
	parts := strings.Split(text, "/")
	if len(parts) != 2 {
		return false, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidRange, "expected base/prefix in %q", text))
	}
	prefixLen, err := strconv.Atoi(parts[1])
	if err != nil || prefixLen < 0 {
		return false, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidRange, "prefix length %q", parts[1]))
	}

	base := parts[0]
	width := 128
	if strings.Contains(base, ".") {
		// IPv4 bases may omit trailing octets: "128.128/16" means "128.128.0.0".
		for strings.Count(base, ".") < 3 {
			base += ".0"
		}
		width = 32
	}
	first, err := Parse(base)
	if err != nil {
		return false, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidRange, err))
	}

	firstHex := first.hexForm()
	lastHex := lastHexInBlock(firstHex, width-prefixLen)
	self := a.hexForm()
	return firstHex <= self && self <= lastHex, nil
}

// lastHexInBlock derives the upper bound of a block by OR-ing the variable
// bits into firstHex nibble by nibble from the least-significant end.
// Prefix lengths that are not a multiple of 4 round the bound up to the next
// nibble boundary; callers depend on that coarse bound, so it must not be
// tightened to an exact bitmask.
func lastHexInBlock(firstHex string, variableBits int) string {
	last := []byte(firstHex)
	for i := len(last) - 1; i >= 0 && variableBits > 0; i-- {
		bits := min(4, variableBits)
		last[i] = hexdigits[unhexDigit(last[i])|byte(1<<bits-1)]
		variableBits -= bits
	}
	return string(last)
}

func unhexDigit(c byte) byte {
	if c >= 'a' {
		return c - 'a' + 10
	}
	return c - '0'
}
