package ip

//go:generate go tool errtrace -w .

import (
	"fmt"
	"net/netip"
	"strconv"
	"strings"

	"braces.dev/errtrace"
	"github.com/cespare/xxhash/v2"

	"github.com/binsoul/net/internal/constraints"
	"github.com/binsoul/net/internal/errorutil"
	"github.com/binsoul/net/internal/util"
)

const (
	// ErrInvalidIP is returned when an input does not parse as an IPv4 or IPv6 address.
	ErrInvalidIP errorutil.Error = "invalid ip address"
	// ErrInvalidRange is returned when a range expression is malformed.
	ErrInvalidRange errorutil.Error = "invalid ip range"
)

// Addr is an immutable IP address.
//
// The literal is kept lowercased exactly as supplied, never auto-expanded
// or auto-compacted. Equality and hashing operate on the expanded form, so
// "2001::1" and its fully expanded spelling are the same logical address.
type Addr struct {
	literal string
	addr    netip.Addr
}

// Parse parses an IPv4 or IPv6 address from the given input s (string or []byte).
// The input is validated eagerly and stored lowercased.
func Parse[T constraints.Byteseq](s T) (Addr, error) {
	lit := util.LCase(string(s))
	a, err := parseLiteral(lit)
	if err != nil {
		return Addr{}, errtrace.Wrap(err)
	}
	return Addr{literal: lit, addr: a}, nil
}

// MustParse parses an address and panics on failure.
// It is intended for static literals in tests and tables.
func MustParse[T constraints.Byteseq](s T) Addr {
	a, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return a
}

// IsValid reports whether s parses as an IPv4 or IPv6 address.
func IsValid[T constraints.Byteseq](s T) bool {
	_, err := parseLiteral(util.LCase(string(s)))
	return err == nil
}

func parseLiteral(lit string) (netip.Addr, error) {
	if lit == "" {
		return netip.Addr{}, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidIP, "empty input"))
	}
	// Zone identifiers never take part in equality or range semantics,
	// so they are rejected instead of silently dropped.
	if strings.Contains(lit, "%") {
		return netip.Addr{}, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidIP, "zone identifier in %q", lit))
	}
	a, err := netip.ParseAddr(lit)
	if err != nil {
		return netip.Addr{}, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidIP, err))
	}
	return a, nil
}

// Family returns the protocol family derived from the textual form:
// any literal containing a colon is V6, everything else V4.
func (a Addr) Family() Family {
	switch {
	case !a.addr.IsValid():
		return FamilyUnknown
	case strings.Contains(a.literal, ":"):
		return V6
	default:
		return V4
	}
}

// String returns the literal as supplied during construction, lowercased.
func (a Addr) String() string { return a.literal }

// IsZero reports whether the address is the zero value.
func (a Addr) IsZero() bool { return a.literal == "" && !a.addr.IsValid() }

const hexdigits = "0123456789abcdef"

// Expand returns a copy rewritten to the fully expanded form: for IPv6
// exactly 8 groups of 4 lowercase hex digits without compression, for IPv4
// an equal copy unchanged.
func (a Addr) Expand() Addr {
	if a.Family() != V6 {
		return a
	}

	b := a.addr.As16()
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	for i := 0; i < len(b); i += 2 {
		if i > 0 {
			sb.WriteByte(':')
		}
		sb.WriteByte(hexdigits[b[i]>>4])
		sb.WriteByte(hexdigits[b[i]&15])
		sb.WriteByte(hexdigits[b[i+1]>>4])
		sb.WriteByte(hexdigits[b[i+1]&15])
	}
	return Addr{literal: sb.String(), addr: a.addr}
}

// Compact returns a copy rewritten to the canonical RFC 5952 compressed
// form for IPv6; IPv4 addresses are returned unchanged.
func (a Addr) Compact() Addr {
	if a.Family() != V6 {
		return a
	}
	return Addr{literal: a.addr.String(), addr: a.addr}
}

// Hash returns a hash of the expanded canonical form, so any two equal
// addresses hash identically regardless of their input spelling.
func (a Addr) Hash() string {
	return strconv.FormatUint(xxhash.Sum64String(a.Expand().literal), 16)
}

// Equal compares this address with another for equality on the expanded
// canonical form, accepting Addr and *Addr.
func (a Addr) Equal(val any) bool {
	var other Addr
	switch v := val.(type) {
	case Addr:
		other = v
	case *Addr:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}

	if !a.addr.IsValid() || !other.addr.IsValid() {
		return a.addr == other.addr && a.literal == other.literal
	}
	return a.Expand().literal == other.Expand().literal
}

// Format implements fmt.Formatter to support custom formatting verbs for Addr values.
func (a Addr) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		fmt.Fprint(f, a.String())
		return
	case 'q':
		fmt.Fprint(f, strconv.Quote(a.String()))
		return
	default:
		if !f.Flag('+') && !f.Flag('#') {
			fmt.Fprint(f, a.String())
			return
		}

		type hideMethods Addr
		type Addr hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), Addr(a))
		return
	}
}

// MarshalText implements [encoding.TextMarshaler].
func (a Addr) MarshalText() ([]byte, error) {
	return []byte(a.literal), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (a *Addr) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*a = Addr{}
		return nil
	}
	a1, err := Parse(text)
	if err != nil {
		*a = Addr{}
		return errtrace.Wrap(err)
	}
	*a = a1
	return nil
}
