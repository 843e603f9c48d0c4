package uri

//go:generate go tool errtrace -w .

import (
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/binsoul/net/internal/constraints"
	"github.com/binsoul/net/internal/errorutil"
	"github.com/binsoul/net/internal/grammar"
)

// Parse parses a URI reference from the given input s (string or []byte).
//
// An empty input yields the all-empty URI. Inputs without a scheme
// delimiter fail with [ErrMissingScheme], a bare scheme like "http:" fails
// with [ErrMissingHierarchicalPart], and inputs whose structure cannot be
// decomposed fail with [ErrMalformedURI]. Each extracted component is run
// through the same filter applied by [New].
func Parse[T constraints.Byteseq](s T) (*URI, error) {
	raw := string(s)
	if raw == "" {
		return &URI{}, nil
	}

	parts, err := split(raw)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return errtrace.Wrap2(New(parts))
}

// split decomposes raw into URI parts by generic URI grammar rules without
// decoding anything; the component filters take care of canonical encoding.
func split(raw string) (Parts, error) {
	var parts Parts

	scheme, rest, err := splitScheme(raw)
	if err != nil {
		return Parts{}, errtrace.Wrap(err)
	}
	parts.Scheme = scheme
	if rest == "" {
		return Parts{}, errtrace.Wrap(errorutil.NewWrapperError(ErrMissingHierarchicalPart, "%q", raw))
	}

	rest, parts.Fragment, _ = strings.Cut(rest, "#")
	rest, parts.Query, _ = strings.Cut(rest, "?")

	if after, ok := strings.CutPrefix(rest, "//"); ok {
		authority := after
		rest = ""
		if i := strings.IndexByte(authority, '/'); i >= 0 {
			authority, rest = authority[:i], authority[i:]
		}
		if err := splitAuthority(authority, &parts); err != nil {
			return Parts{}, errtrace.Wrap(err)
		}
	}
	parts.Path = rest
	return parts, nil
}

// splitScheme cuts the scheme off the input. The scheme must be present,
// non-empty and made of scheme characters only.
func splitScheme(raw string) (scheme, rest string, err error) {
	for i := 0; i < len(raw); i++ {
		switch c := raw[i]; {
		case c == ':':
			if i == 0 {
				return "", "", errtrace.Wrap(errorutil.NewWrapperError(ErrMalformedURI, "empty scheme in %q", raw))
			}
			return raw[:i], raw[i+1:], nil
		case c == '/', c == '?':
			return "", "", errtrace.Wrap(errorutil.NewWrapperError(ErrMissingScheme, "%q", raw))
		case i == 0 && !grammar.IsAlphaChar(c), i > 0 && !grammar.IsSchemeChar(c):
			return "", "", errtrace.Wrap(errorutil.NewWrapperError(ErrMalformedURI, "invalid character before scheme delimiter in %q", raw))
		}
	}
	return "", "", errtrace.Wrap(errorutil.NewWrapperError(ErrMissingScheme, "%q", raw))
}

// splitAuthority decomposes "[user[:password]@]host[:port]".
func splitAuthority(authority string, parts *Parts) error {
	hostport := authority
	if i := strings.LastIndexByte(authority, '@'); i >= 0 {
		userinfo := authority[:i]
		hostport = authority[i+1:]
		parts.User, parts.Password, _ = strings.Cut(userinfo, ":")
	}

	host := hostport
	if strings.HasPrefix(host, "[") {
		// IPv6 literal; brackets stay part of the host.
		end := strings.LastIndexByte(host, ']')
		if end < 0 {
			return errtrace.Wrap(errorutil.NewWrapperError(ErrMalformedURI, "missing ']' in %q", authority))
		}
		rest := host[end+1:]
		host = host[:end+1]
		if rest != "" {
			portStr, ok := strings.CutPrefix(rest, ":")
			if !ok {
				return errtrace.Wrap(errorutil.NewWrapperError(ErrMalformedURI, "unexpected characters after ']' in %q", authority))
			}
			if err := parsePort(portStr, parts); err != nil {
				return errtrace.Wrap(err)
			}
		}
	} else if i := strings.LastIndexByte(host, ':'); i >= 0 {
		portStr := host[i+1:]
		host = host[:i]
		if strings.Contains(host, ":") {
			return errtrace.Wrap(errorutil.NewWrapperError(ErrMalformedURI, "ambiguous colons in %q", authority))
		}
		if err := parsePort(portStr, parts); err != nil {
			return errtrace.Wrap(err)
		}
	}

	parts.Host = host
	return nil
}

func parsePort(portStr string, parts *Parts) error {
	if portStr == "" {
		return errtrace.Wrap(errorutil.NewWrapperError(ErrMalformedURI, "empty port"))
	}
	for i := 0; i < len(portStr); i++ {
		if !grammar.IsDigitChar(portStr[i]) {
			return errtrace.Wrap(errorutil.NewWrapperError(ErrMalformedURI, "port %q", portStr))
		}
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return errtrace.Wrap(errorutil.NewWrapperError(ErrMalformedURI, "port %q", portStr))
	}
	parts.Port, parts.HasPort = port, true
	return nil
}
