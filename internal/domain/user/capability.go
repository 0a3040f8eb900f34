package user

import "strings"

// Capability is a set of actions an account may perform.
type Capability uint16

const (
	CapSubmitProject Capability = 1 << iota
	CapRequestWithdrawal
	CapContribute
	CapSubmitOnBehalf
	CapRepresent
	CapModerate
)

var roleCapabilities = map[Role]Capability{
	RoleEntrepreneur:  CapSubmitProject | CapRequestWithdrawal,
	RoleInvestisseur:  CapContribute,
	RoleIntermediaire: CapSubmitOnBehalf | CapRepresent,
}

// Capabilities resolves the set for a role; staff accounts also moderate.
func Capabilities(r Role, staff bool) Capability {
	c := roleCapabilities[r]
	if staff {
		c |= CapModerate
	}
	return c
}

func (c Capability) Has(want Capability) bool { return want != 0 && c&want == want }

func (c Capability) String() string {
	names := []struct {
		c Capability
		n string
	}{
		{CapSubmitProject, "submit_project"},
		{CapRequestWithdrawal, "request_withdrawal"},
		{CapContribute, "contribute"},
		{CapSubmitOnBehalf, "submit_on_behalf"},
		{CapRepresent, "represent"},
		{CapModerate, "moderate"},
	}
	var out []string
	for _, x := range names {
		if c&x.c != 0 {
			out = append(out, x.n)
		}
	}
	return strings.Join(out, ",")
}

// Principal is the authenticated caller as carried by an access token.
type Principal struct {
	UserID  string
	Role    Role
	IsStaff bool
}

func (p Principal) Can(c Capability) bool { return Capabilities(p.Role, p.IsStaff).Has(c) }
