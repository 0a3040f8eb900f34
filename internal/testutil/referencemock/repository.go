package referencemock

import (
	"context"

	domain "igia-backend/internal/domain/reference"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateCurrencyFn   func(ctx context.Context, c *domain.Currency) error
	CreateRegionFn     func(ctx context.Context, r *domain.Region) error
	CreateCountryFn    func(ctx context.Context, c *domain.Country) error
	GetCountryByIDFn   func(ctx context.Context, id uint64) (*domain.Country, error)
	GetCountryByCodeFn func(ctx context.Context, code string) (*domain.Country, error)
	ListCountriesFn    func(ctx context.Context) ([]domain.Country, error)
}

func (m *Repo) CreateCurrency(ctx context.Context, c *domain.Currency) error {
	if m.CreateCurrencyFn != nil {
		return m.CreateCurrencyFn(ctx, c)
	}
	return nil
}

func (m *Repo) CreateRegion(ctx context.Context, r *domain.Region) error {
	if m.CreateRegionFn != nil {
		return m.CreateRegionFn(ctx, r)
	}
	return nil
}

func (m *Repo) CreateCountry(ctx context.Context, c *domain.Country) error {
	if m.CreateCountryFn != nil {
		return m.CreateCountryFn(ctx, c)
	}
	return nil
}

func (m *Repo) GetCountryByID(ctx context.Context, id uint64) (*domain.Country, error) {
	if m.GetCountryByIDFn != nil {
		return m.GetCountryByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) GetCountryByCode(ctx context.Context, code string) (*domain.Country, error) {
	if m.GetCountryByCodeFn != nil {
		return m.GetCountryByCodeFn(ctx, code)
	}
	return nil, context.Canceled
}

func (m *Repo) ListCountries(ctx context.Context) ([]domain.Country, error) {
	if m.ListCountriesFn != nil {
		return m.ListCountriesFn(ctx)
	}
	return nil, nil
}
