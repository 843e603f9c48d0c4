package ip_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/binsoul/net/ip"
)

func TestInRange(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		addr      string
		rangeText string
		want      bool
		wantErr   error
	}{
		{"exact match", "10.0.0.1", "10.0.0.1", true, nil},
		{"exact mismatch", "10.0.0.1", "10.0.0.2", false, nil},
		{"exact v6 spelling", "2001:db8::1", "2001:0db8:0000:0000:0000:0000:0000:0001", true, nil},

		{"bounded inside", "10.0.0.5", "10.0.0.1-10.0.0.10", true, nil},
		{"bounded lower bound", "10.0.0.1", "10.0.0.1-10.0.0.10", true, nil},
		{"bounded upper bound", "10.0.0.10", "10.0.0.1-10.0.0.10", true, nil},
		{"bounded below", "10.0.0.0", "10.0.0.1-10.0.0.10", false, nil},
		{"bounded above", "10.0.0.11", "10.0.0.1-10.0.0.10", false, nil},
		{"bounded v6", "2001:db8::5", "2001:db8::1-2001:db8::10", true, nil},
		{"bounded other family", "::1", "10.0.0.0-10.255.255.255", false, nil},

		{"cidr inside", "128.128.129.129", "128.128.129.0/24", true, nil},
		{"cidr outside", "1.1.1.1", "128.128.129.0/24", false, nil},
		{"cidr short v4 base", "128.128.1.1", "128.128/16", true, nil},
		{"cidr short v4 base outside", "128.129.0.0", "128.128/16", false, nil},
		{"cidr v6", "2001:db8:1234:000:0000:0000:0000:0002", "2001:db8:1234::/64", true, nil},
		{"cidr v6 last address", "2001:db8:1234:0:ffff:ffff:ffff:ffff", "2001:db8:1234::/64", true, nil},
		{"cidr v6 outside", "2001:db8:1235::1", "2001:db8:1234::/64", false, nil},
		{"cidr uppercase base", "2001:db8::1", "2001:DB8::/32", true, nil},
		{"cidr surrounding space", "10.0.0.1", " 10.0.0.0/8 ", true, nil},

		{"cidr odd prefix last address", "128.128.131.255", "128.128.128.0/22", true, nil},
		{"cidr odd prefix past end", "128.128.132.0", "128.128.128.0/22", false, nil},
		{"cidr base is lower bound", "10.0.0.0", "10.0.0.1/30", false, nil},

		{"zero address", "", "10.0.0.0/8", false, ip.ErrInvalidRange},
		{"empty range", "10.0.0.1", "", false, ip.ErrInvalidRange},
		{"garbage range", "10.0.0.1", "example.com", false, ip.ErrInvalidRange},
		{"garbage cidr base", "10.0.0.1", "abc/24", false, ip.ErrInvalidRange},
		{"non-numeric prefix", "10.0.0.1", "10.0.0.0/x", false, ip.ErrInvalidRange},
		{"negative prefix", "10.0.0.1", "10.0.0.0/-1", false, ip.ErrInvalidRange},
		{"too many bounds", "10.0.0.1", "10.0.0.1-10.0.0.2-10.0.0.3", false, ip.ErrInvalidRange},
		{"invalid lower bound", "10.0.0.1", "1.2.3.355-10.0.0.10", false, ip.ErrInvalidRange},
		{"invalid upper bound", "10.0.0.1", "10.0.0.1-1.2.3.355", false, ip.ErrInvalidRange},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			var a ip.Addr
			if c.addr != "" {
				a = ip.MustParse(c.addr)
			}
			got, gotErr := a.InRange(c.rangeText)
			if diff := cmp.Diff(gotErr, c.wantErr, cmpopts.EquateErrors()); diff != "" {
				t.Fatalf("InRange(%q) error = %v, want %v\ndiff (-got +want):\n%v", c.rangeText, gotErr, c.wantErr, diff)
			}
			if got != c.want {
				t.Errorf("ip.MustParse(%q).InRange(%q) = %v, want %v", c.addr, c.rangeText, got, c.want)
			}
		})
	}
}
