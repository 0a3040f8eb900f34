package http

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestHex32Validation(t *testing.T) {
	type P struct {
		UserID string `validate:"hex32"`
	}
	cv := NewValidator()

	// valid: 32-char lowercase hex
	ok := P{UserID: strings.Repeat("a", 32)}
	if err := cv.Validate(ok); err != nil {
		t.Fatalf("expected valid hex32, got err: %v", err)
	}

	// invalid samples
	for _, s := range []string{
		"",                                  // empty
		strings.Repeat("A", 32),             // uppercase
		"deadbeef",                          // too short
		strings.Repeat("g", 32),             // non-hex char
		"3f9a6a1b3d544fbe8b3a6b3e8d6b2c8",   // 31 chars
		"3f9a6a1b3d544fbe8b3a6b3e8d6b2c88x", // 33 with extra
	} {
		bad := P{UserID: s}
		err := cv.Validate(bad)
		if err == nil {
			t.Fatalf("expected error for %q", s)
		}
		fe := ToFieldErrors(err)
		found := false
		for _, e := range fe {
			if e.Field == "UserID" && strings.Contains(e.Message, "32-char lowercase hex") {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("expected hex32 message for %q, got: %+v", s, fe)
		}
	}
}

func TestMoneyValidation(t *testing.T) {
	type P struct {
		Amount decimal.Decimal `validate:"money"`
	}
	cv := NewValidator()

	for _, v := range []string{"0.01", "300", "1500.50", "9999999999.99"} {
		if err := cv.Validate(P{Amount: decimal.RequireFromString(v)}); err != nil {
			t.Fatalf("expected money OK for %s, got %v", v, err)
		}
	}
	for _, v := range []string{"0", "-5", "10.001", "10000000000"} {
		err := cv.Validate(P{Amount: decimal.RequireFromString(v)})
		if err == nil {
			t.Fatalf("expected money error for %s", v)
		}
		if fe := ToFieldErrors(err); !containsFieldMsg(fe, "Amount", "positive amount") {
			t.Fatalf("expected money message for %s, got %+v", v, fe)
		}
	}
}

func TestMoneyValidation_OptionalPointer(t *testing.T) {
	type P struct {
		Target *decimal.Decimal `validate:"omitempty,money"`
	}
	cv := NewValidator()

	if err := cv.Validate(P{}); err != nil {
		t.Fatalf("nil pointer should be skipped, got %v", err)
	}
	bad := decimal.RequireFromString("-1")
	if err := cv.Validate(P{Target: &bad}); err == nil {
		t.Fatal("expected error for negative target")
	}
}

func TestDec2Validation(t *testing.T) {
	type P struct {
		Rate decimal.Decimal `validate:"dec2"`
	}
	cv := NewValidator()

	for _, v := range []string{"1.29", "2.00", "0.9", "12"} {
		if err := cv.Validate(P{Rate: decimal.RequireFromString(v)}); err != nil {
			t.Fatalf("expected dec2 OK for %v, got %v", v, err)
		}
	}
	for _, v := range []string{"1.234", "2.9999"} {
		err := cv.Validate(P{Rate: decimal.RequireFromString(v)})
		if err == nil {
			t.Fatalf("expected dec2 error for %v", v)
		}
		fe := ToFieldErrors(err)
		if !containsFieldMsg(fe, "Rate", "at most 2 decimal places") {
			t.Fatalf("expected 'at most 2 decimal places' for %v, got %+v", v, fe)
		}
	}
}

func TestRequiredAndBoundsMapping(t *testing.T) {
	type P struct {
		Name string  `validate:"required"`
		Min  int     `validate:"gte=10"`
		Max  int     `validate:"lte=5"`
		Rate float64 `validate:"dec2,gte=0,lte=100"`
	}
	cv := NewValidator()

	// Intentionally violate all
	err := cv.Validate(P{
		Name: "",    // required
		Min:  9,     // gte=10
		Max:  6,     // lte=5
		Rate: 1.333, // dec2 triggers before the bounds
	})
	if err == nil {
		t.Fatalf("expected validation errors")
	}
	fe := ToFieldErrors(err)

	// required
	if !containsFieldMsg(fe, "Name", "is required") {
		t.Fatalf("missing 'is required' for Name: %+v", fe)
	}
	// gte
	if !containsFieldMsg(fe, "Min", "greater than or equal to 10") {
		t.Fatalf("missing gte message for Min: %+v", fe)
	}
	// lte
	if !containsFieldMsg(fe, "Max", "less than or equal to 5") {
		t.Fatalf("missing lte message for Max: %+v", fe)
	}
	// dec2 mapping should show for Rate
	if !containsFieldMsg(fe, "Rate", "at most 2 decimal places") {
		t.Fatalf("missing dec2 message for Rate: %+v", fe)
	}
}

func TestToFieldErrors_NonValidation(t *testing.T) {
	err := errors.New("boom")
	fe := ToFieldErrors(err)
	if len(fe) != 1 {
		t.Fatalf("expected 1 field error, got %d", len(fe))
	}
	if fe[0].Field != "_" || fe[0].Message != "boom" {
		t.Fatalf("unexpected mapping: %+v", fe[0])
	}
}
