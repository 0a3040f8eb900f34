package usermock

import (
	"context"

	domain "igia-backend/internal/domain/user"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn                    func(ctx context.Context, u *domain.User) error
	SaveFn                      func(ctx context.Context, u *domain.User) error
	GetByIDFn                   func(ctx context.Context, id uint64) (*domain.User, error)
	GetByUserIDFn               func(ctx context.Context, userID string) (*domain.User, error)
	GetByEmailFn                func(ctx context.Context, email string) (*domain.User, error)
	FirstStaffFn                func(ctx context.Context) (*domain.User, error)
	ListInactiveEntrepreneursFn func(ctx context.Context) ([]domain.User, error)
}

func (m *Repo) Create(ctx context.Context, u *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, u)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, u *domain.User) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, u)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByUserID(ctx context.Context, userID string) (*domain.User, error) {
	if m.GetByUserIDFn != nil {
		return m.GetByUserIDFn(ctx, userID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}
	return nil, context.Canceled
}

func (m *Repo) FirstStaff(ctx context.Context) (*domain.User, error) {
	if m.FirstStaffFn != nil {
		return m.FirstStaffFn(ctx)
	}
	return nil, context.Canceled
}

func (m *Repo) ListInactiveEntrepreneurs(ctx context.Context) ([]domain.User, error) {
	if m.ListInactiveEntrepreneursFn != nil {
		return m.ListInactiveEntrepreneursFn(ctx)
	}
	return nil, nil
}

var _ domain.ProfileRepository = (*ProfileRepo)(nil)

// ProfileRepo is a function-backed mock that satisfies domain.ProfileRepository.
type ProfileRepo struct {
	CreateEntrepreneurFn   func(ctx context.Context, p *domain.EntrepreneurProfile) error
	CreateInvestisseurFn   func(ctx context.Context, p *domain.InvestisseurProfile) error
	CreateIntermediaireFn  func(ctx context.Context, p *domain.IntermediaireProfile) error
	GetIntermediaireFn     func(ctx context.Context, userID uint64) (*domain.IntermediaireProfile, error)
	SaveIntermediaireFn    func(ctx context.Context, p *domain.IntermediaireProfile) error
	AddRepresentationFn    func(ctx context.Context, intermediaireID, entrepreneurID uint64) error
	RemoveRepresentationFn func(ctx context.Context, intermediaireID, entrepreneurID uint64) error
	IsRepresentedFn        func(ctx context.Context, intermediaireID, entrepreneurID uint64) (bool, error)
	ListRepresentedFn      func(ctx context.Context, intermediaireID uint64) ([]domain.User, error)
}

func (m *ProfileRepo) CreateEntrepreneur(ctx context.Context, p *domain.EntrepreneurProfile) error {
	if m.CreateEntrepreneurFn != nil {
		return m.CreateEntrepreneurFn(ctx, p)
	}
	return nil
}

func (m *ProfileRepo) CreateInvestisseur(ctx context.Context, p *domain.InvestisseurProfile) error {
	if m.CreateInvestisseurFn != nil {
		return m.CreateInvestisseurFn(ctx, p)
	}
	return nil
}

func (m *ProfileRepo) CreateIntermediaire(ctx context.Context, p *domain.IntermediaireProfile) error {
	if m.CreateIntermediaireFn != nil {
		return m.CreateIntermediaireFn(ctx, p)
	}
	return nil
}

func (m *ProfileRepo) GetIntermediaire(ctx context.Context, userID uint64) (*domain.IntermediaireProfile, error) {
	if m.GetIntermediaireFn != nil {
		return m.GetIntermediaireFn(ctx, userID)
	}
	return nil, context.Canceled
}

func (m *ProfileRepo) SaveIntermediaire(ctx context.Context, p *domain.IntermediaireProfile) error {
	if m.SaveIntermediaireFn != nil {
		return m.SaveIntermediaireFn(ctx, p)
	}
	return nil
}

func (m *ProfileRepo) AddRepresentation(ctx context.Context, intermediaireID, entrepreneurID uint64) error {
	if m.AddRepresentationFn != nil {
		return m.AddRepresentationFn(ctx, intermediaireID, entrepreneurID)
	}
	return nil
}

func (m *ProfileRepo) RemoveRepresentation(ctx context.Context, intermediaireID, entrepreneurID uint64) error {
	if m.RemoveRepresentationFn != nil {
		return m.RemoveRepresentationFn(ctx, intermediaireID, entrepreneurID)
	}
	return nil
}

func (m *ProfileRepo) IsRepresented(ctx context.Context, intermediaireID, entrepreneurID uint64) (bool, error) {
	if m.IsRepresentedFn != nil {
		return m.IsRepresentedFn(ctx, intermediaireID, entrepreneurID)
	}
	return false, nil
}

func (m *ProfileRepo) ListRepresented(ctx context.Context, intermediaireID uint64) ([]domain.User, error) {
	if m.ListRepresentedFn != nil {
		return m.ListRepresentedFn(ctx, intermediaireID)
	}
	return nil, nil
}
