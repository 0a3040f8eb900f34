package http

import (
	"math"
	"reflect"

	"igia-backend/pkg/id"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Reusable error payload
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
type ErrorResponse struct {
	Error   string       `json:"error"`
	Details []FieldError `json:"details,omitempty"`
}

// maxMoney is the largest value a decimal(12,2) column holds.
const maxMoney = 9_999_999_999.99

type CustomValidator struct{ v *validator.Validate }

func NewValidator() *CustomValidator {
	v := validator.New()

	// decimals are validated through their float value
	v.RegisterCustomTypeFunc(func(f reflect.Value) any {
		d, ok := f.Interface().(decimal.Decimal)
		if !ok {
			return nil
		}
		out, _ := d.Float64()
		return out
	}, decimal.Decimal{})

	// public ids = 32-char lowercase hex
	_ = v.RegisterValidation("hex32", func(fl validator.FieldLevel) bool {
		return id.Valid(fl.Field().String())
	})
	// max 2 decimal places
	_ = v.RegisterValidation("dec2", func(fl validator.FieldLevel) bool {
		return dec2(fl.Field().Float())
	})
	// positive amount that fits decimal(12,2)
	_ = v.RegisterValidation("money", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return f > 0 && f <= maxMoney && dec2(f)
	})

	return &CustomValidator{v: v}
}

func dec2(f float64) bool { return math.Abs(f-(math.Round(f*100)/100)) < 1e-9 }

func (cv *CustomValidator) Validate(i any) error { return cv.v.Struct(i) }

// Map validator.ValidationErrors → []FieldError with readable messages.
func ToFieldErrors(err error) []FieldError {
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "_", Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(ve))
	for _, e := range ve {
		field := e.Field()
		switch e.Tag() {
		case "required":
			out = append(out, FieldError{Field: field, Message: "is required"})
		case "hex32":
			out = append(out, FieldError{Field: field, Message: "must be 32-char lowercase hex"})
		case "dec2":
			out = append(out, FieldError{Field: field, Message: "must have at most 2 decimal places"})
		case "money":
			out = append(out, FieldError{Field: field, Message: "must be a positive amount with at most 2 decimal places"})
		case "email":
			out = append(out, FieldError{Field: field, Message: "must be a valid e-mail address"})
		case "url":
			out = append(out, FieldError{Field: field, Message: "must be a valid URL"})
		case "oneof":
			out = append(out, FieldError{Field: field, Message: "must be one of: " + e.Param()})
		case "min":
			out = append(out, FieldError{Field: field, Message: "must be at least " + e.Param() + " long"})
		case "max":
			out = append(out, FieldError{Field: field, Message: "must be at most " + e.Param() + " long"})
		case "gte":
			out = append(out, FieldError{Field: field, Message: "must be greater than or equal to " + e.Param()})
		case "lte":
			out = append(out, FieldError{Field: field, Message: "must be less than or equal to " + e.Param()})
		default:
			out = append(out, FieldError{Field: field, Message: e.Tag() + " validation failed"})
		}
	}
	return out
}
