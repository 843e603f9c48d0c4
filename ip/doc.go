// Package ip provides an immutable IP address value type with
// canonicalization (expand/compact), private-range classification and
// textual range matching across IPv4 and IPv6.
package ip
