package uri

//go:generate go tool errtrace -w .

import (
	"braces.dev/errtrace"

	"github.com/binsoul/net/internal/errorutil"
)

func (u *URI) clone() *URI {
	u2 := *u
	return &u2
}

// WithScheme returns a copy of the URI with the scheme replaced.
// A trailing ":" or "://" on the input is stripped before validation.
func (u *URI) WithScheme(scheme string) (*URI, error) {
	s, err := filterScheme(scheme)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	u2 := u.clone()
	u2.scheme = s
	return u2, nil
}

// WithUserInfo returns a copy of the URI with the userinfo replaced.
// An empty user clears the component.
func (u *URI) WithUserInfo(user, password string) *URI {
	u2 := u.clone()
	u2.user = filterUserInfo(user, password)
	return u2
}

// WithHost returns a copy of the URI with the host replaced.
func (u *URI) WithHost(host string) *URI {
	u2 := u.clone()
	u2.host = filterHost(host)
	return u2
}

// WithPort returns a copy of the URI with the port replaced.
// A port equal to the scheme default is dropped at storage time.
func (u *URI) WithPort(port int) (*URI, error) {
	if port < 0 {
		return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidPort, "negative port %d", port))
	}
	u2 := u.clone()
	u2.setPort(port)
	return u2, nil
}

// WithoutPort returns a copy of the URI with the port cleared.
func (u *URI) WithoutPort() *URI {
	u2 := u.clone()
	u2.port, u2.hasPort = 0, false
	return u2
}

// WithPath returns a copy of the URI with the path replaced.
func (u *URI) WithPath(path string) *URI {
	u2 := u.clone()
	u2.path = filterPath(path)
	return u2
}

// WithQuery returns a copy of the URI with the query replaced.
// A single leading "?" on the input is stripped.
func (u *URI) WithQuery(query string) *URI {
	u2 := u.clone()
	u2.query = filterQuery(query)
	return u2
}

// WithFragment returns a copy of the URI with the fragment replaced.
// A single leading "#" on the input is stripped.
func (u *URI) WithFragment(fragment string) *URI {
	u2 := u.clone()
	u2.fragment = filterFragment(fragment)
	return u2
}
