package contribution

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func ptr(v uint64) *uint64 { return &v }

func TestContribution_Validate(t *testing.T) {
	ok := decimal.NewFromInt(100)
	tests := []struct {
		name    string
		c       Contribution
		wantErr error
	}{
		{"donation ok", Contribution{CampaignID: ptr(1), Type: TypeDonation, Amount: ok, PaymentMethod: MethodMTN}, nil},
		{"loan ok", Contribution{LoanCampaignID: ptr(1), Type: TypeLoan, Amount: ok, PaymentMethod: MethodStripe}, nil},
		{"both set", Contribution{CampaignID: ptr(1), LoanCampaignID: ptr(2), Type: TypeDonation, Amount: ok, PaymentMethod: MethodPaypal}, ErrBothCampaigns},
		{"neither set", Contribution{Type: TypeDonation, Amount: ok, PaymentMethod: MethodPaypal}, ErrNoCampaign},
		{"campaign with loan type", Contribution{CampaignID: ptr(1), Type: TypeLoan, Amount: ok, PaymentMethod: MethodPaypal}, ErrTypeMismatch},
		{"loan campaign with donation type", Contribution{LoanCampaignID: ptr(1), Type: TypeDonation, Amount: ok, PaymentMethod: MethodPaypal}, ErrTypeMismatch},
		{"zero amount", Contribution{CampaignID: ptr(1), Type: TypeDonation, Amount: decimal.Zero, PaymentMethod: MethodPaypal}, ErrInvalidAmount},
		{"negative amount", Contribution{CampaignID: ptr(1), Type: TypeDonation, Amount: decimal.NewFromInt(-5), PaymentMethod: MethodPaypal}, ErrInvalidAmount},
		{"bad method", Contribution{CampaignID: ptr(1), Type: TypeDonation, Amount: ok, PaymentMethod: "cash"}, ErrInvalidMethod},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.c.Validate()
			if tt.wantErr == nil && err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("want err=%v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestCanTransition(t *testing.T) {
	all := []PaymentStatus{StatusPending, StatusCompleted, StatusFailed}
	for _, from := range all {
		for _, to := range all {
			want := from == StatusPending && to != StatusPending
			if got := CanTransition(from, to); got != want {
				t.Fatalf("%s -> %s = %v, want %v", from, to, got, want)
			}
		}
	}
}

func TestInvestorStats_Add(t *testing.T) {
	var s InvestorStats
	s.Add(&Contribution{Type: TypeDonation, Amount: decimal.NewFromInt(300), PaymentStatus: StatusCompleted})
	s.Add(&Contribution{Type: TypeLoan, Amount: decimal.NewFromInt(200), PaymentStatus: StatusCompleted})
	s.Add(&Contribution{Type: TypeLoan, Amount: decimal.NewFromInt(999), PaymentStatus: StatusPending})

	if s.Count != 3 || s.CompletedCount != 2 {
		t.Fatalf("counts: %+v", s)
	}
	if !s.TotalDonated.Equal(decimal.NewFromInt(300)) || !s.TotalLent.Equal(decimal.NewFromInt(200)) || !s.TotalInvested.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("totals: %+v", s)
	}
}
