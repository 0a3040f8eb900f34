package contributionmock

import (
	"context"
	"errors"
	"testing"

	domain "igia-backend/internal/domain/contribution"

	"github.com/shopspring/decimal"
)

func TestRepo_Create(t *testing.T) {
	ctx := context.Background()
	c := &domain.Contribution{ContributionID: "C-1"}

	// Uses provided func
	called := false
	wantErr := errors.New("boom")
	m := &Repo{
		CreateFn: func(gotCtx context.Context, got *domain.Contribution) error {
			called = true
			if gotCtx != ctx {
				t.Fatalf("Create ctx mismatch")
			}
			if got != c {
				t.Fatalf("Create arg mismatch")
			}
			return wantErr
		},
	}
	if err := m.Create(ctx, c); !errors.Is(err, wantErr) {
		t.Fatalf("Create: want %v, got %v", wantErr, err)
	}
	if !called {
		t.Fatalf("CreateFn not called")
	}

	// Default (nil func) → no-op, nil error
	m = &Repo{}
	if err := m.Create(ctx, c); err != nil {
		t.Fatalf("Create default: want nil, got %v", err)
	}
}

func TestRepo_GetDefaults(t *testing.T) {
	m := &Repo{}
	if _, err := m.GetByContributionID(context.Background(), "x"); !errors.Is(err, context.Canceled) {
		t.Fatalf("default getter: want context.Canceled, got %v", err)
	}
	if got, err := m.SumCompletedByCampaign(context.Background(), 1); err != nil || !got.IsZero() {
		t.Fatalf("default sum: %s, %v", got, err)
	}
}

func TestRepo_SumCompletedByCampaign(t *testing.T) {
	m := &Repo{
		SumCompletedByCampaignFn: func(_ context.Context, id uint64) (decimal.Decimal, error) {
			if id != 7 {
				t.Fatalf("id = %d", id)
			}
			return decimal.NewFromInt(500), nil
		},
	}
	got, err := m.SumCompletedByCampaign(context.Background(), 7)
	if err != nil || !got.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("got %s, %v", got, err)
	}
}
