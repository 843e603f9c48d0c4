// Package uri provides an immutable RFC 3986 URI reference value type.
//
// A URI is built either from explicit components or by parsing a string.
// Every component is stored in its canonical percent-encoded form and every
// mutation returns a new instance, so values can be shared freely between
// goroutines.
package uri
