package project

import (
	"context"
	"errors"
	"strings"
	"testing"

	"igia-backend/internal/domain/notification"
	"igia-backend/internal/domain/payment"
	domain "igia-backend/internal/domain/project"
	"igia-backend/internal/domain/reference"
	"igia-backend/internal/domain/uow"
	"igia-backend/internal/domain/user"
	"igia-backend/internal/testutil/campaignmock"
	"igia-backend/internal/testutil/notificationmock"
	"igia-backend/internal/testutil/paymentmock"
	"igia-backend/internal/testutil/projectmock"
	"igia-backend/internal/testutil/referencemock"
	"igia-backend/internal/testutil/uowmock"
	"igia-backend/internal/testutil/usermock"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var cameroon = uint64(4)

var accounts = map[string]*user.User{
	"ent":     {ID: 1, UserID: "ent", Role: user.RoleEntrepreneur, CountryID: &cameroon, IsActive: true},
	"ent2":    {ID: 2, UserID: "ent2", Role: user.RoleEntrepreneur, IsActive: true},
	"im":      {ID: 3, UserID: "im", FullName: "ONG Espoir", Role: user.RoleIntermediaire, CountryID: &cameroon, IsActive: true},
	"inv":     {ID: 4, UserID: "inv", Role: user.RoleInvestisseur, CountryID: &cameroon, IsActive: true},
	"staff":   {ID: 5, UserID: "staff", Role: user.RoleEntrepreneur, IsStaff: true, IsActive: true},
	"nocntry": {ID: 6, UserID: "nocntry", Role: user.RoleEntrepreneur, IsActive: true},
}

type world struct {
	repos    uow.Repos
	projects map[string]*domain.Project
	payments []*payment.Payment
	notified []*notification.Notification
	deleted  []uint64
}

func newWorld() *world {
	w := &world{projects: map[string]*domain.Project{}}
	find := func(id string) (*domain.Project, error) {
		if p, ok := w.projects[id]; ok {
			cp := *p
			return &cp, nil
		}
		return nil, gorm.ErrRecordNotFound
	}
	w.repos = uow.Repos{
		Users: &usermock.Repo{GetByUserIDFn: func(_ context.Context, id string) (*user.User, error) {
			if u, ok := accounts[id]; ok {
				cp := *u
				return &cp, nil
			}
			return nil, gorm.ErrRecordNotFound
		}},
		Profiles: &usermock.ProfileRepo{
			GetIntermediaireFn: func(context.Context, uint64) (*user.IntermediaireProfile, error) {
				return &user.IntermediaireProfile{SubscriptionPaid: true}, nil
			},
			IsRepresentedFn: func(_ context.Context, _, ent uint64) (bool, error) { return ent == 1, nil },
		},
		Reference: &referencemock.Repo{GetCountryByIDFn: func(context.Context, uint64) (*reference.Country, error) {
			return &reference.Country{ID: 4, CurrencyID: 2, ProjectSubmissionFee: decimal.NewFromInt(5000)}, nil
		}},
		Projects: &projectmock.Repo{
			CreateFn: func(_ context.Context, p *domain.Project) error {
				p.ID = uint64(len(w.projects) + 100)
				w.projects[p.ProjectID] = p
				return nil
			},
			SaveFn: func(_ context.Context, p *domain.Project) error {
				w.projects[p.ProjectID] = p
				return nil
			},
			DeleteFn: func(_ context.Context, id uint64) error {
				w.deleted = append(w.deleted, id)
				return nil
			},
			GetByProjectIDFn:          func(_ context.Context, id string) (*domain.Project, error) { return find(id) },
			GetByProjectIDForUpdateFn: func(_ context.Context, id string) (*domain.Project, error) { return find(id) },
		},
		Campaigns: &campaignmock.Repo{SumCollectedByProjectFn: func(context.Context, uint64) (decimal.Decimal, error) {
			return decimal.NewFromInt(300), nil
		}},
		LoanCampaigns: &campaignmock.LoanRepo{SumCollectedByProjectFn: func(context.Context, uint64) (decimal.Decimal, error) {
			return decimal.NewFromInt(200), nil
		}},
		Payments: &paymentmock.Repo{CreateFn: func(_ context.Context, p *payment.Payment) error {
			w.payments = append(w.payments, p)
			return nil
		}},
		Notifications: &notificationmock.Repo{CreateFn: func(_ context.Context, n *notification.Notification) error {
			w.notified = append(w.notified, n)
			return nil
		}},
	}
	return w
}

func (w *world) seed(projectID string, status domain.Status, submittedBy *uint64) {
	w.projects[projectID] = &domain.Project{
		ID:             9,
		ProjectID:      projectID,
		EntrepreneurID: 1,
		SubmittedByID:  submittedBy,
		Title:          "Moulin",
		TargetAmount:   decimal.NewFromInt(1000),
		Status:         status,
	}
}

func newUC(w *world) *Usecase { return NewUsecase(uowmock.Passthrough(w.repos)) }

func TestUsecase_Submit(t *testing.T) {
	target := decimal.NewFromInt(1000)
	tests := []struct {
		name          string
		actor         string
		in            SubmitInput
		wantErr       error
		wantOwner     uint64
		wantSubmitter bool
	}{
		{"entrepreneur for self", "ent", SubmitInput{Title: "Moulin", TargetAmount: target}, nil, 1, false},
		{"intermediaire on behalf", "im", SubmitInput{EntrepreneurID: "ent", Title: "Moulin", TargetAmount: target}, nil, 1, true},
		{"intermediaire not representing", "im", SubmitInput{EntrepreneurID: "ent2", Title: "Moulin", TargetAmount: target}, user.ErrNotRepresented, 0, false},
		{"investor forbidden", "inv", SubmitInput{Title: "Moulin", TargetAmount: target}, user.ErrForbidden, 0, false},
		{"no country", "nocntry", SubmitInput{Title: "Moulin", TargetAmount: target}, domain.ErrCountryRequired, 0, false},
		{"zero target", "ent", SubmitInput{Title: "Moulin"}, domain.ErrInvalidTarget, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newWorld()
			dto, err := newUC(w).Submit(context.Background(), tt.actor, tt.in)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("want err=%v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			p := w.projects[dto.Project.ProjectID]
			if p.Status != domain.StatusPendingPayment || p.EntrepreneurID != tt.wantOwner || (p.SubmittedByID != nil) != tt.wantSubmitter {
				t.Fatalf("unexpected project: %+v", p)
			}
			if len(w.payments) != 1 || !w.payments[0].Amount.Equal(decimal.NewFromInt(5000)) || w.payments[0].IsSuccessful || w.payments[0].Type != payment.TypeProjectSubmission {
				t.Fatalf("unexpected payment: %+v", w.payments)
			}
			if dto.Payment.PaymentID != w.payments[0].PaymentID {
				t.Fatalf("payment id mismatch")
			}
			wantNotes := 0
			if tt.wantSubmitter {
				wantNotes = 1
			}
			if len(w.notified) != wantNotes {
				t.Fatalf("notifications = %d, want %d", len(w.notified), wantNotes)
			}
			if wantNotes == 1 && (w.notified[0].Type != notification.TypeIntermediarySubmit || w.notified[0].RecipientID != 1) {
				t.Fatalf("unexpected notification: %+v", w.notified[0])
			}
		})
	}
}

func TestUsecase_Moderate(t *testing.T) {
	tests := []struct {
		name     string
		actor    string
		from     domain.Status
		reject   bool
		wantErr  error
		wantType notification.Type
	}{
		{"approve pending", "staff", domain.StatusPending, false, nil, notification.TypeProjectValidated},
		{"reject pending", "staff", domain.StatusPending, true, nil, notification.TypeProjectRejected},
		{"approve unpaid", "staff", domain.StatusPendingPayment, false, domain.ErrInvalidTransition, ""},
		{"approve twice", "staff", domain.StatusApproved, false, domain.ErrInvalidTransition, ""},
		{"not staff", "ent", domain.StatusPending, false, user.ErrForbidden, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newWorld()
			w.seed("p1", tt.from, nil)
			uc := newUC(w)
			var err error
			if tt.reject {
				_, err = uc.Reject(context.Background(), tt.actor, "p1", "dossier incomplet")
			} else {
				_, err = uc.Approve(context.Background(), tt.actor, "p1")
			}
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("want err=%v, got %v", tt.wantErr, err)
				}
				if len(w.notified) != 0 {
					t.Fatal("no notification on failure")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if len(w.notified) != 1 || w.notified[0].Type != tt.wantType || w.notified[0].RecipientID != 1 || w.notified[0].RelatedProjectID == nil {
				t.Fatalf("unexpected notifications: %+v", w.notified)
			}
			if tt.reject && !strings.Contains(w.notified[0].Message, "dossier incomplet") {
				t.Fatalf("reason missing: %q", w.notified[0].Message)
			}
		})
	}

	w := newWorld()
	if _, err := newUC(w).Approve(context.Background(), "staff", "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("missing project: %v", err)
	}
}

func TestUsecase_Get(t *testing.T) {
	w := newWorld()
	w.seed("review", domain.StatusPending, nil)
	w.seed("open", domain.StatusApproved, nil)
	uc := newUC(w)

	dto, err := uc.Get(context.Background(), "inv", "open")
	if err != nil {
		t.Fatalf("public project: %v", err)
	}
	if !dto.CollectedAmount.Equal(decimal.NewFromInt(500)) || !dto.Progress.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("derived total = %s progress = %s", dto.CollectedAmount, dto.Progress)
	}
	if _, err := uc.Get(context.Background(), "inv", "review"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("project under review must be hidden: %v", err)
	}
	if _, err := uc.Get(context.Background(), "ent", "review"); err != nil {
		t.Fatalf("owner view: %v", err)
	}
	if _, err := uc.Get(context.Background(), "staff", "review"); err != nil {
		t.Fatalf("staff view: %v", err)
	}
}

func TestUsecase_Complete(t *testing.T) {
	im := uint64(3)
	w := newWorld()
	w.seed("p1", domain.StatusApproved, &im)
	uc := newUC(w)

	if _, err := uc.Complete(context.Background(), "inv", "p1"); !errors.Is(err, user.ErrForbidden) {
		t.Fatalf("investor complete: %v", err)
	}
	dto, err := uc.Complete(context.Background(), "im", "p1")
	if err != nil || dto.Status != "completed" {
		t.Fatalf("submitter complete: %+v %v", dto, err)
	}
	if _, err := uc.Complete(context.Background(), "staff", "p1"); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("complete twice: %v", err)
	}
}

func TestUsecase_UpdateDelete(t *testing.T) {
	w := newWorld()
	w.seed("p1", domain.StatusPending, nil)
	w.seed("p2", domain.StatusApproved, nil)
	uc := newUC(w)
	title := "Moulin solaire"

	dto, err := uc.Update(context.Background(), "ent", "p1", UpdateInput{Title: &title})
	if err != nil || dto.Title != title {
		t.Fatalf("update: %+v %v", dto, err)
	}
	if w.notified[0].Type != notification.TypeProjectUpdate {
		t.Fatalf("want update notification, got %s", w.notified[0].Type)
	}
	if _, err := uc.Update(context.Background(), "ent", "p2", UpdateInput{Title: &title}); !errors.Is(err, domain.ErrNotEditable) {
		t.Fatalf("approved project update: %v", err)
	}
	if _, err := uc.Update(context.Background(), "ent2", "p1", UpdateInput{Title: &title}); !errors.Is(err, domain.ErrNotOwner) {
		t.Fatalf("foreign update: %v", err)
	}
	zero := decimal.Zero
	if _, err := uc.Update(context.Background(), "ent", "p1", UpdateInput{TargetAmount: &zero}); !errors.Is(err, domain.ErrInvalidTarget) {
		t.Fatalf("zero target: %v", err)
	}

	if err := uc.Delete(context.Background(), "ent", "p2"); !errors.Is(err, domain.ErrNotEditable) {
		t.Fatalf("delete approved: %v", err)
	}
	if err := uc.Delete(context.Background(), "staff", "p2"); err != nil {
		t.Fatalf("staff delete: %v", err)
	}
	if err := uc.Delete(context.Background(), "ent", "gone"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("delete missing: %v", err)
	}
	last := w.notified[len(w.notified)-1]
	if len(w.deleted) != 1 || last.Type != notification.TypeProjectDeleted {
		t.Fatalf("deleted=%v last=%+v", w.deleted, last)
	}
}

func TestUsecase_StatsAndLists(t *testing.T) {
	w := newWorld()
	w.repos.Projects = &projectmock.Repo{
		ListByEntrepreneurFn: func(context.Context, uint64) ([]domain.Project, error) {
			return []domain.Project{
				{ProjectID: "a", Status: domain.StatusApproved, TargetAmount: decimal.NewFromInt(1000), CollectedAmount: decimal.NewFromInt(250)},
				{ProjectID: "b", Status: domain.StatusPending, TargetAmount: decimal.NewFromInt(1000)},
			}, nil
		},
		ListByStatusFn: func(context.Context, domain.Status) ([]domain.Project, error) {
			return []domain.Project{{ProjectID: "a", Status: domain.StatusApproved}}, nil
		},
	}
	uc := newUC(w)

	s, err := uc.Stats(context.Background(), "ent")
	if err != nil {
		t.Fatalf("Stats err: %v", err)
	}
	if s.Total != 2 || s.Approved != 1 || s.Pending != 1 || !s.Progress.Equal(decimal.RequireFromString("12.5")) {
		t.Fatalf("unexpected stats: %+v", s)
	}
	if _, err := uc.Stats(context.Background(), "inv"); !errors.Is(err, user.ErrForbidden) {
		t.Fatalf("investor stats: %v", err)
	}

	mine, err := uc.ListMine(context.Background(), "ent")
	if err != nil || len(mine) != 2 {
		t.Fatalf("ListMine: %v %v", mine, err)
	}
	if _, err := uc.ListByStatus(context.Background(), "inv", "approved"); err != nil {
		t.Fatalf("public list: %v", err)
	}
	if _, err := uc.ListByStatus(context.Background(), "inv", "pending"); !errors.Is(err, user.ErrForbidden) {
		t.Fatalf("review queue must be staff only: %v", err)
	}
}
