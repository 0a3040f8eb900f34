package account

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"igia-backend/internal/domain/notification"
	"igia-backend/internal/domain/reference"
	"igia-backend/internal/domain/uow"
	"igia-backend/internal/domain/user"
	"igia-backend/internal/testutil/notificationmock"
	"igia-backend/internal/testutil/referencemock"
	"igia-backend/internal/testutil/uowmock"
	"igia-backend/internal/testutil/usermock"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeTokens struct{ issued []user.Principal }

func (f *fakeTokens) Issue(p user.Principal) (string, time.Time, error) {
	f.issued = append(f.issued, p)
	return "tok-" + p.UserID, time.Date(2025, 9, 7, 0, 0, 0, 0, time.UTC), nil
}

func newTestUsecase(users *usermock.Repo, profiles *usermock.ProfileRepo, ref *referencemock.Repo, tokens TokenIssuer) *Usecase {
	repos := uow.Repos{Users: users, Profiles: profiles, Reference: ref}
	uc := NewUsecase(uowmock.Passthrough(repos), users, profiles, ref, tokens)
	uc.bcryptCost = bcrypt.MinCost
	uc.now = func() time.Time { return time.Date(2025, 9, 6, 10, 0, 0, 0, time.UTC) }
	return uc
}

func TestUsecase_Register(t *testing.T) {
	country := &reference.Country{ID: 4, Code: "CM"}
	tests := []struct {
		name        string
		in          RegisterInput
		emailExists bool
		wantErr     error
		wantProfile string
	}{
		{"entrepreneur", RegisterInput{Email: "E@Example.com ", Password: "pw", Role: "entrepreneur", CountryCode: "cm", CompanyName: "Agro"}, false, nil, "entrepreneur"},
		{"investisseur", RegisterInput{Email: "i@example.com", Password: "pw", Role: "investisseur"}, false, nil, "investisseur"},
		{"intermediaire", RegisterInput{Email: "m@example.com", Password: "pw", Role: "intermediaire", Organization: "ONG"}, false, nil, "intermediaire"},
		{"bad role", RegisterInput{Email: "x@example.com", Password: "pw", Role: "admin"}, false, user.ErrInvalidRole, ""},
		{"email taken", RegisterInput{Email: "e@example.com", Password: "pw", Role: "entrepreneur"}, true, user.ErrEmailTaken, ""},
		{"unknown country", RegisterInput{Email: "z@example.com", Password: "pw", Role: "entrepreneur", CountryCode: "XX"}, false, reference.ErrCountryNotFound, ""},
		// 40 runes pass the request validator but take 80 bytes
		{"password over 72 bytes", RegisterInput{Email: "l@example.com", Password: strings.Repeat("é", 40), Role: "investisseur"}, false, user.ErrPasswordTooLong, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var created *user.User
			profile := ""
			users := &usermock.Repo{
				GetByEmailFn: func(context.Context, string) (*user.User, error) {
					if tt.emailExists {
						return &user.User{ID: 1}, nil
					}
					return nil, gorm.ErrRecordNotFound
				},
				CreateFn: func(_ context.Context, u *user.User) error {
					u.ID = 77
					created = u
					return nil
				},
			}
			profiles := &usermock.ProfileRepo{
				CreateEntrepreneurFn: func(_ context.Context, p *user.EntrepreneurProfile) error {
					profile = "entrepreneur"
					if p.UserID != 77 || p.CompanyName != "Agro" {
						t.Fatalf("profile = %+v", p)
					}
					return nil
				},
				CreateInvestisseurFn: func(context.Context, *user.InvestisseurProfile) error {
					profile = "investisseur"
					return nil
				},
				CreateIntermediaireFn: func(context.Context, *user.IntermediaireProfile) error {
					profile = "intermediaire"
					return nil
				},
			}
			ref := &referencemock.Repo{GetCountryByCodeFn: func(_ context.Context, code string) (*reference.Country, error) {
				if code == "CM" {
					return country, nil
				}
				return nil, gorm.ErrRecordNotFound
			}}

			dto, err := newTestUsecase(users, profiles, ref, &fakeTokens{}).Register(context.Background(), tt.in)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("want err=%v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if profile != tt.wantProfile {
				t.Fatalf("profile = %q, want %q", profile, tt.wantProfile)
			}
			if len(dto.UserID) != 32 || !created.IsActive {
				t.Fatalf("unexpected user: %+v", created)
			}
			if bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("pw")) != nil {
				t.Fatal("password not hashed with bcrypt")
			}
			if tt.name == "entrepreneur" && (created.Email != "e@example.com" || created.CountryID == nil || *created.CountryID != 4) {
				t.Fatalf("email/country not normalised: %+v", created)
			}
		})
	}
}

func TestUsecase_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	accounts := map[string]*user.User{
		"a@example.com":    {UserID: "uid-a", Email: "a@example.com", PasswordHash: string(hash), Role: user.RoleInvestisseur, IsActive: true},
		"gone@example.com": {UserID: "uid-g", Email: "gone@example.com", PasswordHash: string(hash), Role: user.RoleInvestisseur},
	}
	saved := 0
	users := &usermock.Repo{
		GetByEmailFn: func(_ context.Context, email string) (*user.User, error) {
			if u, ok := accounts[email]; ok {
				return u, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
		SaveFn: func(_ context.Context, u *user.User) error {
			saved++
			if u.LastLogin == nil {
				t.Fatal("last login not set")
			}
			return nil
		},
	}
	tokens := &fakeTokens{}
	uc := newTestUsecase(users, &usermock.ProfileRepo{}, &referencemock.Repo{}, tokens)

	tests := []struct {
		name    string
		in      LoginInput
		wantErr error
	}{
		{"ok", LoginInput{Email: "A@example.com", Password: "secret"}, nil},
		{"wrong password", LoginInput{Email: "a@example.com", Password: "nope"}, user.ErrInvalidCredentials},
		{"unknown email", LoginInput{Email: "b@example.com", Password: "secret"}, user.ErrInvalidCredentials},
		{"inactive", LoginInput{Email: "gone@example.com", Password: "secret"}, user.ErrInactive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dto, err := uc.Login(context.Background(), tt.in)
			if tt.wantErr == nil && err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("want err=%v, got %v", tt.wantErr, err)
			}
			if err == nil && (dto.AccessToken != "tok-uid-a" || dto.TokenType != "Bearer") {
				t.Fatalf("unexpected token: %+v", dto)
			}
		})
	}
	if saved != 1 || len(tokens.issued) != 1 || tokens.issued[0].Role != user.RoleInvestisseur {
		t.Fatalf("saved=%d issued=%+v", saved, tokens.issued)
	}
}

func TestUsecase_Deactivate(t *testing.T) {
	store := map[string]*user.User{
		"self":  {ID: 1, UserID: "self", Role: user.RoleEntrepreneur, IsActive: true},
		"other": {ID: 2, UserID: "other", Role: user.RoleInvestisseur, IsActive: true},
		"staff": {ID: 3, UserID: "staff", Role: user.RoleEntrepreneur, IsStaff: true, IsActive: true},
	}
	users := &usermock.Repo{GetByUserIDFn: func(_ context.Context, id string) (*user.User, error) {
		if u, ok := store[id]; ok {
			return u, nil
		}
		return nil, gorm.ErrRecordNotFound
	}}
	uc := newTestUsecase(users, &usermock.ProfileRepo{}, &referencemock.Repo{}, &fakeTokens{})
	ctx := context.Background()

	if err := uc.Deactivate(ctx, "self", "other"); !errors.Is(err, user.ErrForbidden) {
		t.Fatalf("non-staff deactivating another user: %v", err)
	}
	if err := uc.Deactivate(ctx, "staff", "nobody"); !errors.Is(err, user.ErrNotFound) {
		t.Fatalf("missing target: %v", err)
	}
	if err := uc.Deactivate(ctx, "staff", "other"); err != nil {
		t.Fatalf("staff deactivate: %v", err)
	}
	if store["other"].IsActive || !store["other"].IsDeleted || store["other"].DeletedAt == nil {
		t.Fatalf("other not deactivated: %+v", store["other"])
	}
	if err := uc.Deactivate(ctx, "self", ""); err != nil || store["self"].IsActive {
		t.Fatalf("self deactivate: err=%v user=%+v", err, store["self"])
	}
	if err := uc.Deactivate(ctx, "self", ""); !errors.Is(err, user.ErrInactive) {
		t.Fatalf("deactivated account must be rejected: %v", err)
	}
}

func TestUsecase_Represent(t *testing.T) {
	store := map[string]*user.User{
		"im":   {ID: 5, UserID: "im", Role: user.RoleIntermediaire, IsActive: true},
		"ent":  {ID: 6, UserID: "ent", Role: user.RoleEntrepreneur, IsActive: true},
		"inv":  {ID: 7, UserID: "inv", Role: user.RoleInvestisseur, IsActive: true},
		"ent2": {ID: 8, UserID: "ent2", Role: user.RoleEntrepreneur, IsActive: true},
	}
	users := &usermock.Repo{GetByUserIDFn: func(_ context.Context, id string) (*user.User, error) {
		if u, ok := store[id]; ok {
			return u, nil
		}
		return nil, gorm.ErrRecordNotFound
	}}
	paid := true
	links := map[uint64]bool{}
	profiles := &usermock.ProfileRepo{
		GetIntermediaireFn: func(context.Context, uint64) (*user.IntermediaireProfile, error) {
			return &user.IntermediaireProfile{SubscriptionPaid: paid}, nil
		},
		AddRepresentationFn: func(_ context.Context, _, ent uint64) error {
			links[ent] = true
			return nil
		},
		IsRepresentedFn: func(_ context.Context, _, ent uint64) (bool, error) { return links[ent], nil },
		RemoveRepresentationFn: func(_ context.Context, _, ent uint64) error {
			delete(links, ent)
			return nil
		},
	}
	uc := newTestUsecase(users, profiles, &referencemock.Repo{}, &fakeTokens{})
	ctx := context.Background()

	if err := uc.Represent(ctx, "ent", "ent2"); !errors.Is(err, user.ErrForbidden) {
		t.Fatalf("entrepreneur cannot represent: %v", err)
	}
	if err := uc.Represent(ctx, "im", "inv"); !errors.Is(err, user.ErrInvalidRole) {
		t.Fatalf("only entrepreneurs may be represented: %v", err)
	}
	if err := uc.Represent(ctx, "im", "ent"); err != nil || !links[6] {
		t.Fatalf("represent: %v links=%v", err, links)
	}
	if err := uc.Unrepresent(ctx, "im", "ent2"); !errors.Is(err, user.ErrNotRepresented) {
		t.Fatalf("unrepresent unknown link: %v", err)
	}
	if err := uc.Unrepresent(ctx, "im", "ent"); err != nil || links[6] {
		t.Fatalf("unrepresent: %v links=%v", err, links)
	}

	paid = false
	if err := uc.Represent(ctx, "im", "ent"); !errors.Is(err, user.ErrSubscriptionRequired) {
		t.Fatalf("unpaid subscription: %v", err)
	}
	if _, err := uc.ListRepresented(ctx, "im"); !errors.Is(err, user.ErrSubscriptionRequired) {
		t.Fatalf("list with unpaid subscription: %v", err)
	}
}

func TestUsecase_CreateRepresented(t *testing.T) {
	store := map[string]*user.User{
		"im":  {ID: 5, UserID: "im", Role: user.RoleIntermediaire, IsActive: true},
		"ent": {ID: 6, UserID: "ent", Role: user.RoleEntrepreneur, IsActive: true},
	}
	in := RepresentedInput{Email: " Fatou@Example.com", FullName: "Fatou", Phone: "+237600", CountryCode: "cm", CompanyName: "Karité SA"}
	tests := []struct {
		name        string
		actor       string
		profile     *user.IntermediaireProfile
		emailExists bool
		wantErr     error
	}{
		{"verified", "im", &user.IntermediaireProfile{UserID: 5, Verified: true}, false, nil},
		{"not verified", "im", &user.IntermediaireProfile{UserID: 5, SubscriptionPaid: true}, false, user.ErrNotVerified},
		{"no profile", "im", nil, false, user.ErrNotVerified},
		{"not an intermediaire", "ent", &user.IntermediaireProfile{Verified: true}, false, user.ErrForbidden},
		{"email taken", "im", &user.IntermediaireProfile{UserID: 5, Verified: true}, true, user.ErrEmailTaken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var (
				created *user.User
				profile *user.EntrepreneurProfile
				linked  [2]uint64
			)
			users := &usermock.Repo{
				GetByUserIDFn: func(_ context.Context, id string) (*user.User, error) {
					if u, ok := store[id]; ok {
						return u, nil
					}
					return nil, gorm.ErrRecordNotFound
				},
				GetByEmailFn: func(context.Context, string) (*user.User, error) {
					if tt.emailExists {
						return &user.User{ID: 9}, nil
					}
					return nil, gorm.ErrRecordNotFound
				},
				CreateFn: func(_ context.Context, u *user.User) error {
					u.ID = 77
					created = u
					return nil
				},
			}
			profiles := &usermock.ProfileRepo{
				GetIntermediaireFn: func(context.Context, uint64) (*user.IntermediaireProfile, error) {
					if tt.profile == nil {
						return nil, gorm.ErrRecordNotFound
					}
					return tt.profile, nil
				},
				CreateEntrepreneurFn: func(_ context.Context, p *user.EntrepreneurProfile) error {
					profile = p
					return nil
				},
				AddRepresentationFn: func(_ context.Context, im, ent uint64) error {
					linked = [2]uint64{im, ent}
					return nil
				},
			}
			ref := &referencemock.Repo{GetCountryByCodeFn: func(context.Context, string) (*reference.Country, error) {
				return &reference.Country{ID: 4, Code: "CM"}, nil
			}}

			dto, err := newTestUsecase(users, profiles, ref, &fakeTokens{}).CreateRepresented(context.Background(), tt.actor, in)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("want err=%v, got %v", tt.wantErr, err)
				}
				if profile != nil || linked != [2]uint64{} {
					t.Fatalf("nothing may be created: profile=%+v linked=%v", profile, linked)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if dto.Role != "entrepreneur" || created.Email != "fatou@example.com" || created.CountryID == nil || *created.CountryID != 4 {
				t.Fatalf("unexpected account: %+v", created)
			}
			if created.PasswordHash == "" || !created.IsActive {
				t.Fatalf("account not usable: %+v", created)
			}
			if profile == nil || profile.UserID != 77 || profile.CompanyName != "Karité SA" {
				t.Fatalf("profile = %+v", profile)
			}
			if linked != [2]uint64{5, 77} {
				t.Fatalf("linked = %v, want [5 77]", linked)
			}
		})
	}
}

func TestUsecase_VerifyIntermediaire(t *testing.T) {
	store := map[string]*user.User{
		"staff": {ID: 1, UserID: "staff", Role: user.RoleEntrepreneur, IsStaff: true, IsActive: true},
		"im":    {ID: 5, UserID: "im", Role: user.RoleIntermediaire, IsActive: true},
		"ent":   {ID: 6, UserID: "ent", Role: user.RoleEntrepreneur, IsActive: true},
	}
	users := &usermock.Repo{GetByUserIDFn: func(_ context.Context, id string) (*user.User, error) {
		if u, ok := store[id]; ok {
			return u, nil
		}
		return nil, gorm.ErrRecordNotFound
	}}
	p := &user.IntermediaireProfile{UserID: 5}
	saved := 0
	profiles := &usermock.ProfileRepo{
		GetIntermediaireFn: func(context.Context, uint64) (*user.IntermediaireProfile, error) { return p, nil },
		SaveIntermediaireFn: func(context.Context, *user.IntermediaireProfile) error {
			saved++
			return nil
		},
	}
	var notified []*notification.Notification
	repos := uow.Repos{Users: users, Profiles: profiles, Notifications: &notificationmock.Repo{
		CreateFn: func(_ context.Context, n *notification.Notification) error {
			notified = append(notified, n)
			return nil
		},
	}}
	uc := NewUsecase(uowmock.Passthrough(repos), users, profiles, &referencemock.Repo{}, &fakeTokens{})
	ctx := context.Background()

	if err := uc.VerifyIntermediaire(ctx, "im", "im"); !errors.Is(err, user.ErrForbidden) {
		t.Fatalf("self verification: %v", err)
	}
	if err := uc.VerifyIntermediaire(ctx, "staff", "ent"); !errors.Is(err, user.ErrInvalidRole) {
		t.Fatalf("entrepreneur target: %v", err)
	}
	if err := uc.VerifyIntermediaire(ctx, "staff", "nobody"); !errors.Is(err, user.ErrNotFound) {
		t.Fatalf("unknown target: %v", err)
	}
	if err := uc.VerifyIntermediaire(ctx, "staff", "im"); err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !p.Verified || saved != 1 || len(notified) != 1 || notified[0].RecipientID != 5 {
		t.Fatalf("verified=%v saved=%d notified=%d", p.Verified, saved, len(notified))
	}
	if err := uc.VerifyIntermediaire(ctx, "staff", "im"); err != nil || saved != 1 {
		t.Fatalf("second verify must be a no-op: err=%v saved=%d", err, saved)
	}
}

func TestUsecase_Countries(t *testing.T) {
	ref := &referencemock.Repo{ListCountriesFn: func(context.Context) ([]reference.Country, error) {
		return []reference.Country{{Code: "CM", Name: "Cameroun", Currency: &reference.Currency{Code: "XAF"}}, {Code: "SN", Name: "Sénégal"}}, nil
	}}
	out, err := newTestUsecase(&usermock.Repo{}, &usermock.ProfileRepo{}, ref, &fakeTokens{}).Countries(context.Background())
	if err != nil {
		t.Fatalf("Countries err: %v", err)
	}
	if len(out) != 2 || out[0].Currency != "XAF" || out[1].Currency != "" {
		t.Fatalf("unexpected countries: %+v", out)
	}
}
