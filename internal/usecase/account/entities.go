package account

import (
	"time"

	"github.com/shopspring/decimal"
)

type RegisterInput struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	FullName    string `json:"full_name"`
	Phone       string `json:"phone"`
	City        string `json:"city"`
	Role        string `json:"role"`
	CountryCode string `json:"country_code"`

	// role profile fields; only the one matching Role is used
	CompanyName      string          `json:"company_name"`
	Experience       string          `json:"experience"`
	Company          string          `json:"company"`
	CapitalAvailable decimal.Decimal `json:"capital_available"`
	Organization     string          `json:"organization"`
}

// RepresentedInput is the entrepreneur an intermediaire registers on someone's behalf.
type RepresentedInput struct {
	Email       string `json:"email"`
	FullName    string `json:"full_name"`
	Phone       string `json:"phone"`
	City        string `json:"city"`
	CountryCode string `json:"country_code"`
	CompanyName string `json:"company_name"`
	Experience  string `json:"experience"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserDTO struct {
	UserID       string     `json:"user_id"`
	Email        string     `json:"email"`
	FullName     string     `json:"full_name"`
	Phone        string     `json:"phone"`
	City         string     `json:"city"`
	Role         string     `json:"role"`
	IsStaff      bool       `json:"is_staff"`
	IsActive     bool       `json:"is_active"`
	Capabilities string     `json:"capabilities"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

type TokenDTO struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
	User        UserDTO   `json:"user"`
}

type CountryDTO struct {
	Code                 string          `json:"code"`
	Name                 string          `json:"name"`
	Currency             string          `json:"currency,omitempty"`
	ProjectSubmissionFee decimal.Decimal `json:"project_submission_fee"`
	IntermediaireFee     decimal.Decimal `json:"intermediaire_fee"`
	CommissionRate       decimal.Decimal `json:"commission_rate"`
}
