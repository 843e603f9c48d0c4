package ip

// Family identifies the protocol family of an address literal.
type Family int

const (
	FamilyUnknown Family = iota
	V4
	V6
)

// String returns the family name.
func (f Family) String() string {
	switch f {
	case V4:
		return "v4"
	case V6:
		return "v6"
	default:
		return "unknown"
	}
}
