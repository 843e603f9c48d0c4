package uri

//go:generate go tool errtrace -w .

import (
	"fmt"
	"strconv"

	"braces.dev/errtrace"
	"github.com/cespare/xxhash/v2"

	"github.com/binsoul/net/internal/errorutil"
	"github.com/binsoul/net/internal/util"
)

const (
	// ErrInvalidScheme is returned when a scheme does not match the scheme grammar.
	ErrInvalidScheme errorutil.Error = "invalid uri scheme"
	// ErrInvalidPort is returned when a port value is negative.
	ErrInvalidPort errorutil.Error = "invalid uri port"
	// ErrMissingScheme is returned when an input has no scheme delimiter.
	ErrMissingScheme errorutil.Error = "missing uri scheme"
	// ErrMissingHierarchicalPart is returned when an input consists of a scheme only.
	ErrMissingHierarchicalPart errorutil.Error = "missing uri hierarchical part"
	// ErrMalformedURI is returned when an input cannot be decomposed into URI parts.
	ErrMalformedURI errorutil.Error = "malformed uri"
)

// Well-known ports per scheme. An explicit port equal to its scheme default
// is never stored and never rendered.
var defaultPorts = map[string]int{
	"http":   80,
	"https":  443,
	"ftp":    21,
	"ssh":    22,
	"telnet": 23,
}

// URI is an immutable URI reference.
//
// Every stored component is already in canonical percent-encoded form, so
// re-filtering a component yields the same value and rendering never
// escapes twice. All mutators return a fresh instance.
type URI struct {
	scheme   string
	user     string // encoded "user[:password]"
	host     string
	port     int
	hasPort  bool
	path     string
	query    string
	fragment string
}

// Parts carries the raw components accepted by [New].
// Zero values stand for absent components; Port is only honored when
// HasPort is set.
type Parts struct {
	Scheme   string
	Host     string
	Path     string
	Query    string
	Fragment string
	User     string
	Password string
	Port     int
	HasPort  bool
}

// New builds a URI from raw components, passing each non-empty component
// through its RFC 3986 filter.
func New(parts Parts) (*URI, error) {
	u := &URI{
		user:     filterUserInfo(parts.User, parts.Password),
		host:     filterHost(parts.Host),
		path:     filterPath(parts.Path),
		query:    filterQuery(parts.Query),
		fragment: filterFragment(parts.Fragment),
	}
	if parts.Scheme != "" {
		s, err := filterScheme(parts.Scheme)
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		u.scheme = s
	}
	if parts.HasPort {
		if parts.Port < 0 {
			return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidPort, "negative port %d", parts.Port))
		}
		u.setPort(parts.Port)
	}
	return u, nil
}

func (u *URI) setPort(port int) {
	if def, ok := defaultPorts[u.scheme]; ok && def == port {
		u.port, u.hasPort = 0, false
		return
	}
	u.port, u.hasPort = port, true
}

// Scheme returns the lowercased scheme, or an empty string when absent.
func (u *URI) Scheme() string { return u.scheme }

// UserInfo returns the encoded "user[:password]" component.
func (u *URI) UserInfo() string { return u.user }

// Host returns the encoded host component.
func (u *URI) Host() string { return u.host }

// Path returns the encoded path component.
func (u *URI) Path() string { return u.path }

// Query returns the encoded query component without a leading "?".
func (u *URI) Query() string { return u.query }

// Fragment returns the encoded fragment component without a leading "#".
func (u *URI) Fragment() string { return u.fragment }

// Port returns the stored port and a flag indicating whether it is set.
// A port equal to the scheme default is suppressed, mirroring the
// suppression applied at storage time.
func (u *URI) Port() (int, bool) {
	if !u.hasPort {
		return 0, false
	}
	if def, ok := defaultPorts[u.scheme]; ok && def == u.port {
		return 0, false
	}
	return u.port, true
}

// Authority returns "[user@]host[:port]", or an empty string when the host
// is empty. The port is omitted when it equals the scheme default.
func (u *URI) Authority() string {
	if u.host == "" {
		return ""
	}

	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	if u.user != "" {
		sb.WriteString(u.user)
		sb.WriteByte('@')
	}
	sb.WriteString(u.host)
	if port, ok := u.Port(); ok {
		sb.WriteByte(':')
		sb.WriteString(strconv.Itoa(port))
	}
	return sb.String()
}

// String reassembles the URI from its components.
func (u *URI) String() string {
	if u == nil {
		return ""
	}

	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	if u.scheme != "" {
		sb.WriteString(u.scheme)
		sb.WriteByte(':')
	}
	authority := u.Authority()
	if authority != "" {
		sb.WriteString("//")
		sb.WriteString(authority)
	}
	if u.path != "" {
		if authority != "" && u.path[0] != '/' {
			sb.WriteByte('/')
		}
		sb.WriteString(u.path)
	}
	if u.query != "" {
		sb.WriteByte('?')
		sb.WriteString(u.query)
	}
	if u.fragment != "" {
		sb.WriteByte('#')
		sb.WriteString(u.fragment)
	}
	return sb.String()
}

// Hash returns a hash of the rendered URI.
func (u *URI) Hash() string {
	return strconv.FormatUint(xxhash.Sum64String(u.String()), 16)
}

// Equal compares this URI with another for equality on the rendered form,
// accepting URI and *URI.
func (u *URI) Equal(val any) bool {
	var other *URI
	switch v := val.(type) {
	case URI:
		other = &v
	case *URI:
		other = v
	default:
		return false
	}

	if u == other {
		return true
	} else if u == nil || other == nil {
		return false
	}
	return u.String() == other.String()
}

// Format implements fmt.Formatter for custom formatting of the URI.
func (u *URI) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		fmt.Fprint(f, u.String())
		return
	case 'q':
		fmt.Fprint(f, strconv.Quote(u.String()))
		return
	default:
		type hideMethods URI
		type URI hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), (*URI)(u))
		return
	}
}

// MarshalText implements [encoding.TextMarshaler].
func (u *URI) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (u *URI) UnmarshalText(text []byte) error {
	u1, err := Parse(text)
	if err != nil {
		*u = URI{}
		return errtrace.Wrap(err)
	}
	*u = *u1
	return nil
}
