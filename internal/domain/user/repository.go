package user

import "context"

type Repository interface {
	Create(ctx context.Context, u *User) error
	Save(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uint64) (*User, error)
	GetByUserID(ctx context.Context, userID string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	// FirstStaff returns the oldest staff account; messages to "the team" go there.
	FirstStaff(ctx context.Context) (*User, error)
	ListInactiveEntrepreneurs(ctx context.Context) ([]User, error)
}

type ProfileRepository interface {
	CreateEntrepreneur(ctx context.Context, p *EntrepreneurProfile) error
	CreateInvestisseur(ctx context.Context, p *InvestisseurProfile) error
	CreateIntermediaire(ctx context.Context, p *IntermediaireProfile) error

	GetIntermediaire(ctx context.Context, userID uint64) (*IntermediaireProfile, error)
	SaveIntermediaire(ctx context.Context, p *IntermediaireProfile) error

	AddRepresentation(ctx context.Context, intermediaireID, entrepreneurID uint64) error
	RemoveRepresentation(ctx context.Context, intermediaireID, entrepreneurID uint64) error
	IsRepresented(ctx context.Context, intermediaireID, entrepreneurID uint64) (bool, error)
	ListRepresented(ctx context.Context, intermediaireID uint64) ([]User, error)
}
