package mysql

import (
	"igia-backend/internal/domain/campaign"
	"igia-backend/internal/domain/contribution"
	"igia-backend/internal/domain/message"
	"igia-backend/internal/domain/notification"
	"igia-backend/internal/domain/payment"
	"igia-backend/internal/domain/project"
	"igia-backend/internal/domain/reference"
	"igia-backend/internal/domain/user"
	"igia-backend/internal/domain/withdrawal"

	"gorm.io/gorm"
)

// Models lists every table in dependency order.
func Models() []any {
	return []any{
		&reference.Currency{},
		&reference.Region{},
		&reference.Country{},
		&user.User{},
		&user.EntrepreneurProfile{},
		&user.InvestisseurProfile{},
		&user.IntermediaireProfile{},
		&user.Representation{},
		&project.Project{},
		&campaign.Campaign{},
		&campaign.LoanCampaign{},
		&contribution.Contribution{},
		&notification.Notification{},
		&message.Message{},
		&payment.Payment{},
		&payment.IntermediairePayment{},
		&withdrawal.Request{},
	}
}

func Migrate(db *gorm.DB) error { return db.AutoMigrate(Models()...) }
