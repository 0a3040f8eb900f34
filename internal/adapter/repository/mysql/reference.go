package mysql

import (
	"context"

	"igia-backend/internal/domain/reference"

	"gorm.io/gorm"
)

type ReferenceRepository struct{ db *gorm.DB }

func NewReferenceRepository(db *gorm.DB) *ReferenceRepository { return &ReferenceRepository{db: db} }

func (r *ReferenceRepository) CreateCurrency(ctx context.Context, c *reference.Currency) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *ReferenceRepository) CreateRegion(ctx context.Context, rg *reference.Region) error {
	return r.db.WithContext(ctx).Create(rg).Error
}

func (r *ReferenceRepository) CreateCountry(ctx context.Context, c *reference.Country) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *ReferenceRepository) GetCountryByID(ctx context.Context, id uint64) (*reference.Country, error) {
	return first[reference.Country](r.db.WithContext(ctx).Preload("Currency").Where("id = ?", id))
}

func (r *ReferenceRepository) GetCountryByCode(ctx context.Context, code string) (*reference.Country, error) {
	return first[reference.Country](r.db.WithContext(ctx).Preload("Currency").Where("code = ?", code))
}

func (r *ReferenceRepository) ListCountries(ctx context.Context) ([]reference.Country, error) {
	var out []reference.Country
	err := r.db.WithContext(ctx).Preload("Currency").
		Where("active = ?", true).
		Order("name ASC").
		Find(&out).Error
	return out, err
}
