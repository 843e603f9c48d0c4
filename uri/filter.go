package uri

//go:generate go tool errtrace -w .

import (
	"strings"

	"braces.dev/errtrace"

	"github.com/binsoul/net/internal/errorutil"
	"github.com/binsoul/net/internal/grammar"
	"github.com/binsoul/net/internal/util"
)

func shouldEscapeUserInfoChar(c byte) bool { return !grammar.IsUserInfoChar(c) }

func shouldEscapeHostChar(c byte) bool { return !grammar.IsHostChar(c) }

func shouldEscapePathChar(c byte) bool { return !grammar.IsPathChar(c) }

func shouldEscapeQueryChar(c byte) bool { return !grammar.IsQueryChar(c) }

// filterScheme lowercases the scheme and validates it against the scheme
// grammar. Known scheme names pass as-is; anything else may carry a
// trailing ":" or "://" which is stripped before validation.
func filterScheme(scheme string) (string, error) {
	s := util.LCase(util.TrimSP(scheme))
	if _, ok := defaultPorts[s]; ok {
		return s, nil
	}

	s = strings.TrimSuffix(s, "//")
	s = strings.TrimSuffix(s, ":")
	if s == "" || !grammar.IsAlphaChar(s[0]) {
		return "", errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidScheme, "%q", scheme))
	}
	for i := 1; i < len(s); i++ {
		if !grammar.IsSchemeChar(s[i]) {
			return "", errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidScheme, "%q", scheme))
		}
	}
	return s, nil
}

// filterUserInfo encodes user and password separately and joins them with
// ":". The stored component is never re-filtered as a whole, so the colon
// survives round trips.
func filterUserInfo(user, password string) string {
	if user == "" {
		return ""
	}
	ui := grammar.Escape(user, shouldEscapeUserInfoChar)
	if password != "" {
		ui += ":" + grammar.Escape(password, shouldEscapeUserInfoChar)
	}
	return ui
}

func filterHost(host string) string {
	return grammar.Escape(host, shouldEscapeHostChar)
}

// filterPath collapses a run of leading slashes to a single one and leaves
// relative paths untouched, so scheme-relative values like mailto local
// parts keep their shape.
func filterPath(path string) string {
	if path == "" {
		return ""
	}
	p := grammar.Escape(path, shouldEscapePathChar)
	if p[0] == '/' {
		p = "/" + strings.TrimLeft(p, "/")
	}
	return p
}

// filterQuery strips one leading "?" and encodes keys and values
// independently, keeping the "&" and "=" separators intact.
func filterQuery(query string) string {
	if query == "" {
		return ""
	}
	q := strings.TrimPrefix(query, "?")
	if q == "" {
		return ""
	}

	pairs := strings.Split(q, "&")
	for i, pair := range pairs {
		if k, v, ok := strings.Cut(pair, "="); ok {
			pairs[i] = grammar.Escape(k, shouldEscapeQueryChar) + "=" + grammar.Escape(v, shouldEscapeQueryChar)
		} else {
			pairs[i] = grammar.Escape(pair, shouldEscapeQueryChar)
		}
	}
	return strings.Join(pairs, "&")
}

// filterFragment strips one leading "#" and encodes the remainder.
func filterFragment(fragment string) string {
	if fragment == "" {
		return ""
	}
	return grammar.Escape(strings.TrimPrefix(fragment, "#"), shouldEscapeQueryChar)
}
