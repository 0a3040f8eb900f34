package contribution

import (
	"context"
	"testing"
	"time"

	"igia-backend/internal/adapter/repository/mysql"
	"igia-backend/internal/domain/campaign"
	domain "igia-backend/internal/domain/contribution"
	"igia-backend/internal/domain/project"
	"igia-backend/internal/domain/user"
	"igia-backend/pkg/id"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openScenarioDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err := mysql.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func createUser(t *testing.T, db *gorm.DB, email string, role user.Role, staff bool) *user.User {
	t.Helper()
	u := &user.User{UserID: id.NewID32(), Email: email, PasswordHash: "x", Role: role, IsStaff: staff, IsActive: true}
	if err := mysql.NewUserRepository(db).Create(context.Background(), u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

// Goal 1000, two completed contributions of 300 and 200 entered by staff: collected 500, progress 50.
// Deleting a completed contribution afterwards leaves the cached total untouched.
func TestScenario_CollectedAmountTracksCompletedContributions(t *testing.T) {
	ctx := context.Background()
	db := openScenarioDB(t)

	owner := createUser(t, db, "owner@example.com", user.RoleEntrepreneur, false)
	investor := createUser(t, db, "investor@example.com", user.RoleInvestisseur, false)
	staff := createUser(t, db, "staff@example.com", user.RoleInvestisseur, true)

	p := &project.Project{ProjectID: id.NewID32(), EntrepreneurID: owner.ID, Title: "Moulin", Description: "Moulin à mil", TargetAmount: decimal.NewFromInt(1000), Status: project.StatusApproved}
	if err := mysql.NewProjectRepository(db).Create(ctx, p); err != nil {
		t.Fatalf("create project: %v", err)
	}
	k := &campaign.Campaign{CampaignID: id.NewID32(), ProjectID: p.ID, Title: "Moulin", GoalAmount: decimal.NewFromInt(1000), Status: campaign.StatusActive, StartDate: time.Now().UTC().Add(-time.Hour)}
	campaigns := mysql.NewCampaignRepository(db)
	if err := campaigns.Create(ctx, k); err != nil {
		t.Fatalf("create campaign: %v", err)
	}

	uc := NewUsecase(mysql.NewGormUoW(db))
	var first string
	for _, amt := range []int64{300, 200} {
		res, err := uc.Create(ctx, staff.UserID, CreateInput{
			CampaignID:    k.CampaignID,
			Amount:        decimal.NewFromInt(amt),
			PaymentMethod: string(domain.MethodMTN),
			PaymentStatus: string(domain.StatusCompleted),
		})
		if err != nil {
			t.Fatalf("create %d: %v", amt, err)
		}
		if first == "" {
			first = res.Contribution.ContributionID
		}
	}

	// an investor's pledge stays pending, and out of the total, whatever status it claims
	pending, err := uc.Create(ctx, investor.UserID, CreateInput{CampaignID: k.CampaignID, Amount: decimal.NewFromInt(50), PaymentMethod: "paypal", PaymentStatus: "completed"})
	if err != nil {
		t.Fatalf("create pending: %v", err)
	}
	if pending.Contribution.PaymentStatus != string(domain.StatusPending) || pending.Totals != nil {
		t.Fatalf("investor pledge = %+v, want pending without totals", pending.Contribution)
	}

	got, err := campaigns.GetByCampaignID(ctx, k.CampaignID)
	if err != nil {
		t.Fatalf("reload campaign: %v", err)
	}
	if !got.CollectedAmount.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("collected = %s, want 500", got.CollectedAmount)
	}
	if !got.Progress().Equal(decimal.NewFromInt(50)) {
		t.Fatalf("progress = %s, want 50", got.Progress())
	}
	gotP, err := mysql.NewProjectRepository(db).GetByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("reload project: %v", err)
	}
	if !gotP.CollectedAmount.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("project collected = %s, want 500", gotP.CollectedAmount)
	}

	res, err := uc.UpdateStatus(ctx, staff.UserID, pending.Contribution.ContributionID, "completed")
	if err != nil {
		t.Fatalf("complete pending: %v", err)
	}
	if !res.Totals.CollectedAmount.Equal(decimal.NewFromInt(550)) {
		t.Fatalf("after completion collected = %s, want 550", res.Totals.CollectedAmount)
	}

	if err := uc.Delete(ctx, staff.UserID, first); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got, err = campaigns.GetByCampaignID(ctx, k.CampaignID)
	if err != nil {
		t.Fatalf("reload campaign: %v", err)
	}
	if !got.CollectedAmount.Equal(decimal.NewFromInt(550)) {
		t.Fatalf("delete must not decrement: collected = %s, want 550", got.CollectedAmount)
	}

	unread, err := mysql.NewNotificationRepository(db).CountUnread(ctx, owner.ID)
	if err != nil {
		t.Fatalf("count notifications: %v", err)
	}
	if unread != 3 {
		t.Fatalf("owner notifications = %d, want 3", unread)
	}
}
