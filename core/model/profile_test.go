package model

import (
	"errors"
	"testing"
)

func flat(v float64) []float64 {
	s := make([]float64, HoursPerDay)
	for i := range s {
		s[i] = v
	}
	return s
}

func TestProfileValidate(t *testing.T) {
	if err := PriceProfile(flat(0.3)).Validate(); err != nil {
		t.Fatalf("valid profile rejected: %v", err)
	}
	if err := LoadProfile(flat(2)).Validate(); err != nil {
		t.Fatalf("valid profile rejected: %v", err)
	}
}

func TestProfileValidateWrongLength(t *testing.T) {
	err := PriceProfile(flat(0.3)[:23]).Validate()
	if !errors.Is(err, ErrInvalidProfile) {
		t.Fatalf("expected ErrInvalidProfile, got %v", err)
	}
}

func TestProfileValidateNegativeValue(t *testing.T) {
	s := flat(2)
	s[7] = -0.1
	err := LoadProfile(s).Validate()
	if !errors.Is(err, ErrInvalidProfile) {
		t.Fatalf("expected ErrInvalidProfile, got %v", err)
	}
}
