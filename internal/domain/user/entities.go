package user

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound             = errors.New("user not found")
	ErrEmailTaken           = errors.New("email already registered")
	ErrInvalidRole          = errors.New("invalid role")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrInactive             = errors.New("account is deactivated")
	ErrForbidden            = errors.New("operation not allowed for this account")
	ErrSubscriptionRequired = errors.New("intermediaire subscription not paid")
	ErrNotRepresented       = errors.New("entrepreneur is not represented by this intermediaire")
	ErrNotVerified          = errors.New("intermediaire account not verified")
	ErrPasswordTooLong      = errors.New("password longer than 72 bytes")
)

type Role string

const (
	RoleEntrepreneur  Role = "entrepreneur"
	RoleInvestisseur  Role = "investisseur"
	RoleIntermediaire Role = "intermediaire"
)

func (r Role) Valid() bool {
	_, ok := roleCapabilities[r]
	return ok
}

type User struct {
	ID           uint64     `gorm:"primaryKey;column:id" json:"-"`
	UserID       string     `gorm:"column:user_id;type:char(32);uniqueIndex;not null" json:"user_id"`
	Email        string     `gorm:"column:email;size:254;uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"column:password_hash;size:100;not null" json:"-"`
	FullName     string     `gorm:"column:full_name;size:150" json:"full_name"`
	Phone        string     `gorm:"column:phone;size:20" json:"phone"`
	City         string     `gorm:"column:city;size:100" json:"city"`
	Bio          string     `gorm:"column:bio;type:text" json:"bio"`
	Role         Role       `gorm:"column:role;size:20;index" json:"role"`
	CountryID    *uint64    `gorm:"column:country_id" json:"-"`
	IsStaff      bool       `gorm:"column:is_staff;not null" json:"is_staff"`
	IsActive     bool       `gorm:"column:is_active;not null;index" json:"is_active"`
	IsDeleted    bool       `gorm:"column:is_deleted;not null" json:"is_deleted"`
	DeletedAt    *time.Time `gorm:"column:deleted_at" json:"deleted_at,omitempty"`
	LastLogin    *time.Time `gorm:"column:last_login" json:"last_login,omitempty"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

func (User) TableName() string { return "users" }

// DisplayName falls back to the e-mail when no full name is set.
func (u *User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Email
}

func (u *User) Can(c Capability) bool { return Capabilities(u.Role, u.IsStaff).Has(c) }

// MarkDeleted deactivates the account without removing the row.
func (u *User) MarkDeleted(now time.Time) {
	u.IsActive = false
	u.IsDeleted = true
	t := now.UTC()
	u.DeletedAt = &t
}

type EntrepreneurProfile struct {
	ID          uint64    `gorm:"primaryKey;column:id" json:"-"`
	UserID      uint64    `gorm:"column:user_id;uniqueIndex;not null" json:"-"`
	CompanyName string    `gorm:"column:company_name;size:255" json:"company_name"`
	Experience  string    `gorm:"column:experience;type:text" json:"experience"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"-"`
}

func (EntrepreneurProfile) TableName() string { return "entrepreneur_profiles" }

type InvestisseurProfile struct {
	ID               uint64          `gorm:"primaryKey;column:id" json:"-"`
	UserID           uint64          `gorm:"column:user_id;uniqueIndex;not null" json:"-"`
	Company          string          `gorm:"column:company;size:255" json:"company"`
	CapitalAvailable decimal.Decimal `gorm:"column:capital_available;type:decimal(12,2);not null" json:"capital_available"`
	CreatedAt        time.Time       `gorm:"column:created_at;autoCreateTime" json:"-"`
}

func (InvestisseurProfile) TableName() string { return "investisseur_profiles" }

type IntermediaireProfile struct {
	ID               uint64     `gorm:"primaryKey;column:id" json:"-"`
	UserID           uint64     `gorm:"column:user_id;uniqueIndex;not null" json:"-"`
	Organization     string     `gorm:"column:organization;size:255" json:"organization"`
	Verified         bool       `gorm:"column:verified;not null" json:"verified"`
	SubscriptionPaid bool       `gorm:"column:subscription_paid;not null" json:"subscription_paid"`
	SubscriptionDate *time.Time `gorm:"column:subscription_date" json:"subscription_date,omitempty"`
	CreatedAt        time.Time  `gorm:"column:created_at;autoCreateTime" json:"-"`
}

func (IntermediaireProfile) TableName() string { return "intermediaire_profiles" }

// Representation links an intermediaire user to an entrepreneur user they act for.
type Representation struct {
	IntermediaireID uint64    `gorm:"primaryKey;column:intermediaire_id"`
	EntrepreneurID  uint64    `gorm:"primaryKey;column:entrepreneur_id"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Representation) TableName() string { return "intermediaire_representations" }
