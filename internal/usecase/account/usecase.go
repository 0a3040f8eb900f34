package account

import (
	"context"
	"errors"
	"strings"
	"time"

	domainNotification "igia-backend/internal/domain/notification"
	"igia-backend/internal/domain/reference"
	"igia-backend/internal/domain/uow"
	"igia-backend/internal/domain/user"
	"igia-backend/internal/usecase/access"
	"igia-backend/internal/usecase/notification"
	"igia-backend/pkg/id"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// maxPasswordBytes is the most bcrypt will hash.
const maxPasswordBytes = 72

// TokenIssuer signs access tokens for an authenticated principal.
type TokenIssuer interface {
	Issue(p user.Principal) (string, time.Time, error)
}

type Usecase struct {
	uow        uow.UnitOfWork
	users      user.Repository
	profiles   user.ProfileRepository
	reference  reference.Repository
	tokens     TokenIssuer
	bcryptCost int
	now        func() time.Time
}

func NewUsecase(tx uow.UnitOfWork, users user.Repository, profiles user.ProfileRepository, ref reference.Repository, tokens TokenIssuer) *Usecase {
	return &Usecase{
		uow:        tx,
		users:      users,
		profiles:   profiles,
		reference:  ref,
		tokens:     tokens,
		bcryptCost: bcrypt.DefaultCost,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Register creates the account and its role profile in one transaction.
func (u *Usecase) Register(ctx context.Context, in RegisterInput) (*UserDTO, error) {
	role := user.Role(in.Role)
	if !role.Valid() {
		return nil, user.ErrInvalidRole
	}
	if len(in.Password) > maxPasswordBytes {
		return nil, user.ErrPasswordTooLong
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), u.bcryptCost)
	if err != nil {
		return nil, err
	}

	var out *UserDTO
	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		acc := &user.User{
			UserID:       id.NewID32(),
			Email:        email,
			PasswordHash: string(hash),
			FullName:     in.FullName,
			Phone:        in.Phone,
			City:         in.City,
			Role:         role,
			IsActive:     true,
		}
		if err := openAccount(ctx, r, acc, in.CountryCode); err != nil {
			return err
		}
		if err := createProfile(ctx, r.Profiles, acc, in); err != nil {
			return err
		}
		dto := toUserDTO(acc)
		out = &dto
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// openAccount stores acc once its e-mail is known to be free.
func openAccount(ctx context.Context, r uow.Repos, acc *user.User, countryCode string) error {
	switch _, err := r.Users.GetByEmail(ctx, acc.Email); {
	case err == nil:
		return user.ErrEmailTaken
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return err
	}
	if countryCode != "" {
		c, err := r.Reference.GetCountryByCode(ctx, strings.ToUpper(countryCode))
		if err != nil {
			return access.NotFound(err, reference.ErrCountryNotFound)
		}
		acc.CountryID = &c.ID
	}
	return r.Users.Create(ctx, acc)
}

func createProfile(ctx context.Context, profiles user.ProfileRepository, acc *user.User, in RegisterInput) error {
	switch acc.Role {
	case user.RoleEntrepreneur:
		return profiles.CreateEntrepreneur(ctx, &user.EntrepreneurProfile{UserID: acc.ID, CompanyName: in.CompanyName, Experience: in.Experience})
	case user.RoleInvestisseur:
		return profiles.CreateInvestisseur(ctx, &user.InvestisseurProfile{UserID: acc.ID, Company: in.Company, CapitalAvailable: in.CapitalAvailable})
	case user.RoleIntermediaire:
		return profiles.CreateIntermediaire(ctx, &user.IntermediaireProfile{UserID: acc.ID, Organization: in.Organization})
	}
	return user.ErrInvalidRole
}

// Login checks the password and returns a signed access token.
func (u *Usecase) Login(ctx context.Context, in LoginInput) (*TokenDTO, error) {
	acc, err := u.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		return nil, access.NotFound(err, user.ErrInvalidCredentials)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(in.Password)); err != nil {
		return nil, user.ErrInvalidCredentials
	}
	if !acc.IsActive {
		return nil, user.ErrInactive
	}

	now := u.now()
	acc.LastLogin = &now
	if err := u.users.Save(ctx, acc); err != nil {
		return nil, err
	}

	token, exp, err := u.tokens.Issue(user.Principal{UserID: acc.UserID, Role: acc.Role, IsStaff: acc.IsStaff})
	if err != nil {
		return nil, err
	}
	return &TokenDTO{AccessToken: token, TokenType: "Bearer", ExpiresAt: exp, User: toUserDTO(acc)}, nil
}

func (u *Usecase) Me(ctx context.Context, actorID string) (*UserDTO, error) {
	acc, err := access.Actor(ctx, u.users, actorID)
	if err != nil {
		return nil, err
	}
	dto := toUserDTO(acc)
	return &dto, nil
}

// Deactivate soft-deletes an account; users may close their own, staff any.
func (u *Usecase) Deactivate(ctx context.Context, actorID, targetID string) error {
	actor, err := access.Actor(ctx, u.users, actorID)
	if err != nil {
		return err
	}
	target := actor
	if targetID != "" && targetID != actor.UserID {
		if !actor.Can(user.CapModerate) {
			return user.ErrForbidden
		}
		if target, err = u.users.GetByUserID(ctx, targetID); err != nil {
			return access.NotFound(err, user.ErrNotFound)
		}
	}
	target.MarkDeleted(u.now())
	return u.users.Save(ctx, target)
}

// Represent lets a subscribed intermediaire act for an entrepreneur.
func (u *Usecase) Represent(ctx context.Context, actorID, entrepreneurID string) error {
	actor, ent, err := u.representationParties(ctx, actorID, entrepreneurID)
	if err != nil {
		return err
	}
	return u.profiles.AddRepresentation(ctx, actor.ID, ent.ID)
}

// CreateRepresented opens an entrepreneur account with its profile for a verified
// intermediaire and links the two. The password is random: the intermediaire acts
// for the entrepreneur, who does not sign in with it.
func (u *Usecase) CreateRepresented(ctx context.Context, actorID string, in RepresentedInput) (*UserDTO, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(id.NewID32()), u.bcryptCost)
	if err != nil {
		return nil, err
	}

	var out *UserDTO
	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		actor, err := access.ActorWith(ctx, r.Users, actorID, user.CapRepresent)
		if err != nil {
			return err
		}
		profile, err := r.Profiles.GetIntermediaire(ctx, actor.ID)
		if err != nil {
			return access.NotFound(err, user.ErrNotVerified)
		}
		if !profile.Verified {
			return user.ErrNotVerified
		}

		acc := &user.User{
			UserID:       id.NewID32(),
			Email:        strings.ToLower(strings.TrimSpace(in.Email)),
			PasswordHash: string(hash),
			FullName:     in.FullName,
			Phone:        in.Phone,
			City:         in.City,
			Role:         user.RoleEntrepreneur,
			IsActive:     true,
		}
		if err := openAccount(ctx, r, acc, in.CountryCode); err != nil {
			return err
		}
		if err := r.Profiles.CreateEntrepreneur(ctx, &user.EntrepreneurProfile{UserID: acc.ID, CompanyName: in.CompanyName, Experience: in.Experience}); err != nil {
			return err
		}
		if err := r.Profiles.AddRepresentation(ctx, actor.ID, acc.ID); err != nil {
			return err
		}
		dto := toUserDTO(acc)
		out = &dto
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// VerifyIntermediaire marks an intermediaire as verified (staff only).
func (u *Usecase) VerifyIntermediaire(ctx context.Context, actorID, intermediaireID string) error {
	return u.uow.WithinTx(ctx, func(r uow.Repos) error {
		actor, err := access.ActorWith(ctx, r.Users, actorID, user.CapModerate)
		if err != nil {
			return err
		}
		target, err := r.Users.GetByUserID(ctx, intermediaireID)
		if err != nil {
			return access.NotFound(err, user.ErrNotFound)
		}
		if target.Role != user.RoleIntermediaire {
			return user.ErrInvalidRole
		}
		p, err := r.Profiles.GetIntermediaire(ctx, target.ID)
		if err != nil {
			return access.NotFound(err, user.ErrNotFound)
		}
		if p.Verified {
			return nil
		}
		p.Verified = true
		if err := r.Profiles.SaveIntermediaire(ctx, p); err != nil {
			return err
		}
		return notification.Send(ctx, r.Notifications, target.ID, domainNotification.TypeGeneral, "Compte vérifié",
			"Votre compte intermédiaire a été vérifié. Vous pouvez maintenant enregistrer des entrepreneurs.",
			domainNotification.WithSender(actor.ID), domainNotification.WithIcon("fa-user-check", "bg-success"))
	})
}

func (u *Usecase) Unrepresent(ctx context.Context, actorID, entrepreneurID string) error {
	actor, ent, err := u.representationParties(ctx, actorID, entrepreneurID)
	if err != nil {
		return err
	}
	ok, err := u.profiles.IsRepresented(ctx, actor.ID, ent.ID)
	if err != nil {
		return err
	}
	if !ok {
		return user.ErrNotRepresented
	}
	return u.profiles.RemoveRepresentation(ctx, actor.ID, ent.ID)
}

func (u *Usecase) ListRepresented(ctx context.Context, actorID string) ([]UserDTO, error) {
	actor, err := access.ActorWith(ctx, u.users, actorID, user.CapRepresent)
	if err != nil {
		return nil, err
	}
	if err := access.RequireSubscription(ctx, u.profiles, actor); err != nil {
		return nil, err
	}
	list, err := u.profiles.ListRepresented(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	out := make([]UserDTO, 0, len(list))
	for i := range list {
		out = append(out, toUserDTO(&list[i]))
	}
	return out, nil
}

func (u *Usecase) representationParties(ctx context.Context, actorID, entrepreneurID string) (*user.User, *user.User, error) {
	actor, err := access.ActorWith(ctx, u.users, actorID, user.CapRepresent)
	if err != nil {
		return nil, nil, err
	}
	if err := access.RequireSubscription(ctx, u.profiles, actor); err != nil {
		return nil, nil, err
	}
	ent, err := u.users.GetByUserID(ctx, entrepreneurID)
	if err != nil {
		return nil, nil, access.NotFound(err, user.ErrNotFound)
	}
	if ent.Role != user.RoleEntrepreneur {
		return nil, nil, user.ErrInvalidRole
	}
	return actor, ent, nil
}

func (u *Usecase) Countries(ctx context.Context) ([]CountryDTO, error) {
	list, err := u.reference.ListCountries(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]CountryDTO, 0, len(list))
	for _, c := range list {
		dto := CountryDTO{
			Code:                 c.Code,
			Name:                 c.Name,
			ProjectSubmissionFee: c.ProjectSubmissionFee,
			IntermediaireFee:     c.IntermediaireFee,
			CommissionRate:       c.CommissionRate,
		}
		if c.Currency != nil {
			dto.Currency = c.Currency.Code
		}
		out = append(out, dto)
	}
	return out, nil
}

func toUserDTO(u *user.User) UserDTO {
	return UserDTO{
		UserID:       u.UserID,
		Email:        u.Email,
		FullName:     u.FullName,
		Phone:        u.Phone,
		City:         u.City,
		Role:         string(u.Role),
		IsStaff:      u.IsStaff,
		IsActive:     u.IsActive,
		Capabilities: user.Capabilities(u.Role, u.IsStaff).String(),
		LastLogin:    u.LastLogin,
		CreatedAt:    u.CreatedAt,
	}
}
