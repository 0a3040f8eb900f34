package reference

import "context"

type Repository interface {
	CreateCurrency(ctx context.Context, c *Currency) error
	CreateRegion(ctx context.Context, r *Region) error
	CreateCountry(ctx context.Context, c *Country) error

	GetCountryByID(ctx context.Context, id uint64) (*Country, error)
	GetCountryByCode(ctx context.Context, code string) (*Country, error)
	// ListCountries returns active countries ordered by name, with their currency.
	ListCountries(ctx context.Context) ([]Country, error)
}
