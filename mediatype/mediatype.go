// Package mediatype provides an immutable media type tag of the form
// "type/subtype" with optional parameters. Registry lookups and content
// sniffing are out of scope.
package mediatype

//go:generate go tool errtrace -w .

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/binsoul/net/internal/constraints"
	"github.com/binsoul/net/internal/errorutil"
	"github.com/binsoul/net/internal/util"
)

// ErrInvalidMediaType is returned when an input does not parse as a media type.
const ErrInvalidMediaType errorutil.Error = "invalid media type"

// MediaType holds media type information.
type MediaType struct {
	Type    string
	Subtype string
	Params  map[string]string
}

// Parse parses a media type tag like "text/html; charset=utf-8" from the
// given input s (string or []byte). Type, subtype and parameter keys are
// lowercased; quoted parameter values are unquoted.
func Parse[T constraints.Byteseq](s T) (MediaType, error) {
	fields := strings.Split(string(s), ";")

	mtype, subtype, ok := strings.Cut(util.TrimSP(fields[0]), "/")
	if !ok {
		return MediaType{}, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidMediaType, "missing subtype in %q", string(s)))
	}
	mt := MediaType{
		Type:    util.LCase(mtype),
		Subtype: util.LCase(subtype),
	}
	if !isRestrictedName(mt.Type) || !isRestrictedName(mt.Subtype) {
		return MediaType{}, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidMediaType, "%q", string(s)))
	}

	for _, field := range fields[1:] {
		field = util.TrimSP(field)
		if field == "" {
			continue
		}
		k, v, ok := strings.Cut(field, "=")
		if !ok || k == "" {
			return MediaType{}, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidMediaType, "parameter %q", field))
		}
		if len(v) >= 2 && v[0] == '"' && v[len(v)-1] == '"' {
			v = v[1 : len(v)-1]
		}
		if mt.Params == nil {
			mt.Params = make(map[string]string)
		}
		mt.Params[util.LCase(k)] = v
	}
	return mt, nil
}

// isRestrictedName checks the RFC 6838 restricted-name rule, with "*"
// admitted for wildcard ranges.
func isRestrictedName(s string) bool {
	if s == "*" {
		return true
	}
	if s == "" || !isAlphanum(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isRestrictedNameChar(s[i]) {
			return false
		}
	}
	return true
}

func isAlphanum(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9'
}

func isRestrictedNameChar(c byte) bool {
	switch c {
	case '!', '#', '$', '&', '-', '^', '_', '.', '+':
		return true
	}
	return isAlphanum(c)
}

// String renders the tag with parameters sorted by key.
func (mt MediaType) String() string {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)

	fmt.Fprint(sb, mt.Type, "/", mt.Subtype)
	for _, k := range slices.Sorted(maps.Keys(mt.Params)) {
		fmt.Fprint(sb, ";", k, "=", mt.Params[k])
	}
	return sb.String()
}

// IsWildcard reports whether type or subtype is "*".
func (mt MediaType) IsWildcard() bool {
	return mt.Type == "*" || mt.Subtype == "*"
}

// IsZero checks whether the media type is empty.
func (mt MediaType) IsZero() bool {
	return mt.Type == "" && mt.Subtype == "" && len(mt.Params) == 0
}

// Clone returns a deep copy of the media type.
func (mt MediaType) Clone() MediaType {
	mt.Params = maps.Clone(mt.Params)
	return mt
}

// Equal compares this media type with another for equality, accepting
// MediaType and *MediaType. Type and subtype compare case-insensitively;
// parameters must match exactly by key.
func (mt MediaType) Equal(val any) bool {
	var other MediaType
	switch v := val.(type) {
	case MediaType:
		other = v
	case *MediaType:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}

	return util.EqFold(mt.Type, other.Type) &&
		util.EqFold(mt.Subtype, other.Subtype) &&
		maps.Equal(mt.Params, other.Params)
}

// Format implements fmt.Formatter for custom formatting of the media type.
func (mt MediaType) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		fmt.Fprint(f, mt.String())
		return
	case 'q':
		fmt.Fprint(f, strconv.Quote(mt.String()))
		return
	default:
		if !f.Flag('+') && !f.Flag('#') {
			fmt.Fprint(f, mt.String())
			return
		}

		type hideMethods MediaType
		type MediaType hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), MediaType(mt))
		return
	}
}

// MarshalText implements [encoding.TextMarshaler].
func (mt MediaType) MarshalText() ([]byte, error) {
	return []byte(mt.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (mt *MediaType) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*mt = MediaType{}
		return nil
	}
	mt1, err := Parse(text)
	if err != nil {
		*mt = MediaType{}
		return errtrace.Wrap(err)
	}
	*mt = mt1
	return nil
}
