package mysql

import (
	"context"
	"testing"
	"time"

	"igia-backend/internal/domain/campaign"
	"igia-backend/internal/domain/project"
	"igia-backend/internal/domain/user"
	"igia-backend/pkg/id"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB creates an in-memory sqlite DB with the full schema.
// One connection only: every pooled connection would otherwise get its own empty database.
func openTestDB(t *testing.T) *gorm.DB {
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

	if err := Migrate(db); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func money(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func seedUser(t *testing.T, db *gorm.DB, email string, role user.Role) *user.User {
	t.Helper()
	u := &user.User{
		UserID:       id.NewID32(),
		Email:        email,
		PasswordHash: "x",
		Role:         role,
		IsActive:     true,
	}
	if err := NewUserRepository(db).Create(context.Background(), u); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func seedProject(t *testing.T, db *gorm.DB, owner *user.User, target string, status project.Status) *project.Project {
	t.Helper()
	p := &project.Project{
		ProjectID:      id.NewID32(),
		EntrepreneurID: owner.ID,
		Title:          "Ferme avicole",
		Description:    "Élevage de poulets",
		TargetAmount:   money(target),
		Status:         status,
	}
	if err := NewProjectRepository(db).Create(context.Background(), p); err != nil {
		t.Fatalf("seed project: %v", err)
	}
	return p
}

func seedCampaign(t *testing.T, db *gorm.DB, p *project.Project, goal string, status campaign.Status) *campaign.Campaign {
	t.Helper()
	c := &campaign.Campaign{
		CampaignID: id.NewID32(),
		ProjectID:  p.ID,
		Title:      "Campagne",
		GoalAmount: money(goal),
		Status:     status,
		StartDate:  time.Now().UTC().Add(-time.Hour),
	}
	if err := NewCampaignRepository(db).Create(context.Background(), c); err != nil {
		t.Fatalf("seed campaign: %v", err)
	}
	return c
}

func seedLoanCampaign(t *testing.T, db *gorm.DB, p *project.Project, goal string, status campaign.Status) *campaign.LoanCampaign {
	t.Helper()
	l := &campaign.LoanCampaign{
		LoanCampaignID:    id.NewID32(),
		ProjectID:         p.ID,
		Title:             "Prêt",
		GoalAmount:        money(goal),
		InterestRate:      money("5"),
		RepaymentDuration: 12,
		Status:            status,
		StartDate:         time.Now().UTC().Add(-time.Hour),
	}
	if err := NewLoanCampaignRepository(db).Create(context.Background(), l); err != nil {
		t.Fatalf("seed loan campaign: %v", err)
	}
	return l
}
