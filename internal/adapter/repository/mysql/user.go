package mysql

import (
	"context"

	"igia-backend/internal/domain/user"

	"gorm.io/gorm"
)

type UserRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) *UserRepository { return &UserRepository{db: db} }

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *UserRepository) Save(ctx context.Context, u *user.User) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *UserRepository) GetByID(ctx context.Context, id uint64) (*user.User, error) {
	return first[user.User](r.db.WithContext(ctx).Where("id = ?", id))
}

func (r *UserRepository) GetByUserID(ctx context.Context, userID string) (*user.User, error) {
	return first[user.User](r.db.WithContext(ctx).Where("user_id = ?", userID))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return first[user.User](r.db.WithContext(ctx).Where("email = ?", email))
}

func (r *UserRepository) FirstStaff(ctx context.Context) (*user.User, error) {
	return first[user.User](r.db.WithContext(ctx).
		Where("is_staff = ? AND is_active = ?", true, true).
		Order("id ASC"))
}

func (r *UserRepository) ListInactiveEntrepreneurs(ctx context.Context) ([]user.User, error) {
	var out []user.User
	err := r.db.WithContext(ctx).
		Where("role = ? AND is_active = ?", user.RoleEntrepreneur, false).
		Order("id ASC").
		Find(&out).Error
	return out, err
}

type ProfileRepository struct{ db *gorm.DB }

func NewProfileRepository(db *gorm.DB) *ProfileRepository { return &ProfileRepository{db: db} }

func (r *ProfileRepository) CreateEntrepreneur(ctx context.Context, p *user.EntrepreneurProfile) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ProfileRepository) CreateInvestisseur(ctx context.Context, p *user.InvestisseurProfile) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ProfileRepository) CreateIntermediaire(ctx context.Context, p *user.IntermediaireProfile) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ProfileRepository) GetIntermediaire(ctx context.Context, userID uint64) (*user.IntermediaireProfile, error) {
	return first[user.IntermediaireProfile](r.db.WithContext(ctx).Where("user_id = ?", userID))
}

func (r *ProfileRepository) SaveIntermediaire(ctx context.Context, p *user.IntermediaireProfile) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *ProfileRepository) AddRepresentation(ctx context.Context, intermediaireID, entrepreneurID uint64) error {
	return r.db.WithContext(ctx).Create(&user.Representation{
		IntermediaireID: intermediaireID,
		EntrepreneurID:  entrepreneurID,
	}).Error
}

func (r *ProfileRepository) RemoveRepresentation(ctx context.Context, intermediaireID, entrepreneurID uint64) error {
	return r.db.WithContext(ctx).
		Where("intermediaire_id = ? AND entrepreneur_id = ?", intermediaireID, entrepreneurID).
		Delete(&user.Representation{}).Error
}

func (r *ProfileRepository) IsRepresented(ctx context.Context, intermediaireID, entrepreneurID uint64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&user.Representation{}).
		Where("intermediaire_id = ? AND entrepreneur_id = ?", intermediaireID, entrepreneurID).
		Count(&n).Error
	return n > 0, err
}

func (r *ProfileRepository) ListRepresented(ctx context.Context, intermediaireID uint64) ([]user.User, error) {
	var out []user.User
	err := r.db.WithContext(ctx).
		Joins("JOIN intermediaire_representations ir ON ir.entrepreneur_id = users.id").
		Where("ir.intermediaire_id = ?", intermediaireID).
		Order("users.id ASC").
		Find(&out).Error
	return out, err
}
