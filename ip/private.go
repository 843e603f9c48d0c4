package ip

import (
	"encoding/binary"
	"net/netip"

	"go4.org/netipx"
)

// Blocks carved out of the globally routable space by IANA that the
// netip classification methods do not already cover.
var reservedBlocks = func() *netipx.IPSet {
	var b netipx.IPSetBuilder
	for _, p := range []string{
		"0.0.0.0/8",       // "this network"
		"100.64.0.0/10",   // shared address space, RFC 6598
		"192.0.0.0/24",    // IETF protocol assignments
		"192.0.2.0/24",    // TEST-NET-1
		"198.18.0.0/15",   // benchmarking, RFC 2544
		"198.51.100.0/24", // TEST-NET-2
		"203.0.113.0/24",  // TEST-NET-3
		"240.0.0.0/4",     // class E
		"2001:2::/48",     // benchmarking, RFC 5180
		"2001:db8::/32",   // documentation
		"fec0::/10",       // deprecated site-local
	} {
		b.AddPrefix(netip.MustParsePrefix(p))
	}
	s, err := b.IPSet()
	if err != nil {
		panic(err)
	}
	return s
}()

// IsPrivate reports whether the address is a loopback address or falls
// outside the set of globally routable addresses, i.e. belongs to a
// private-use, link-local or reserved block.
func (a Addr) IsPrivate() bool {
	if !a.addr.IsValid() {
		return false
	}
	if a.isLoopback() {
		return true
	}
	u := a.addr.Unmap()
	return u.IsPrivate() ||
		reservedBlocks.Contains(u) ||
		!u.IsGlobalUnicast()
}

// isLoopback checks 127.0.0.0/8 via a bitmask on the 32-bit value and the
// IPv6 loopback via its compacted form.
func (a Addr) isLoopback() bool {
	if a.Family() == V4 {
		b := a.addr.As4()
		return binary.BigEndian.Uint32(b[:])&0xff000000 == 0x7f000000
	}
	return a.Compact().literal == "::1"
}
