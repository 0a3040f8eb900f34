package user

import (
	"testing"
	"time"
)

func TestCapabilities(t *testing.T) {
	tests := []struct {
		role  Role
		staff bool
		want  Capability
		deny  Capability
	}{
		{RoleEntrepreneur, false, CapSubmitProject | CapRequestWithdrawal, CapContribute},
		{RoleInvestisseur, false, CapContribute, CapSubmitProject},
		{RoleIntermediaire, false, CapSubmitOnBehalf | CapRepresent, CapRequestWithdrawal},
		{RoleInvestisseur, true, CapContribute | CapModerate, CapRepresent},
		{"", true, CapModerate, CapContribute},
	}
	for _, tt := range tests {
		got := Capabilities(tt.role, tt.staff)
		if !got.Has(tt.want) {
			t.Fatalf("%s staff=%v: %s lacks %s", tt.role, tt.staff, got, tt.want)
		}
		if got.Has(tt.deny) {
			t.Fatalf("%s staff=%v: %s must not have %s", tt.role, tt.staff, got, tt.deny)
		}
	}
}

func TestCapability_HasZero(t *testing.T) {
	if Capabilities(RoleEntrepreneur, true).Has(0) {
		t.Fatal("empty capability must never match")
	}
}

func TestCapability_String(t *testing.T) {
	if got := (CapContribute | CapModerate).String(); got != "contribute,moderate" {
		t.Fatalf("String() = %q", got)
	}
}

func TestRole_Valid(t *testing.T) {
	for _, r := range []Role{RoleEntrepreneur, RoleInvestisseur, RoleIntermediaire} {
		if !r.Valid() {
			t.Fatalf("%s should be valid", r)
		}
	}
	if Role("admin").Valid() {
		t.Fatal("admin is not a role")
	}
}

func TestUser_MarkDeleted(t *testing.T) {
	u := &User{IsActive: true}
	now := time.Date(2025, 9, 6, 10, 0, 0, 0, time.UTC)
	u.MarkDeleted(now)
	if u.IsActive || !u.IsDeleted || u.DeletedAt == nil || !u.DeletedAt.Equal(now) {
		t.Fatalf("unexpected state: %+v", u)
	}
}

func TestPrincipal_Can(t *testing.T) {
	p := Principal{UserID: "u", Role: RoleInvestisseur}
	if !p.Can(CapContribute) || p.Can(CapModerate) {
		t.Fatalf("unexpected capabilities for %+v", p)
	}
}
