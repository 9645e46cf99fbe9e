package common

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ValidateUUID validates UUID path and payload parameters.
func ValidateUUID(idStr string, fieldName string) (uuid.UUID, error) {
	idStr = strings.TrimSpace(idStr)
	if idStr == "" {
		return uuid.Nil, fmt.Errorf("%w: %s is required", ErrInvalidArgument, fieldName)
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s has invalid UUID format", ErrInvalidArgument, fieldName)
	}

	return id, nil
}

// ValidateRequiredString validates required string fields
func ValidateRequiredString(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s is required", ErrInvalidArgument, fieldName)
	}
	return nil
}

// ValidateEmail validates email address fields
func ValidateEmail(value, fieldName string) error {
	if err := ValidateRequiredString(value, fieldName); err != nil {
		return err
	}
	if _, err := mail.ParseAddress(value); err != nil {
		return fmt.Errorf("%w: %s is not a valid email address", ErrInvalidArgument, fieldName)
	}
	return nil
}

// ValidateNonNegativeFloat validates fuel level and payment amounts.
func ValidateNonNegativeFloat(value float64, fieldName string) error {
	if value < 0 {
		return fmt.Errorf("%w: %s cannot be negative", ErrInvalidArgument, fieldName)
	}
	return nil
}

// ValidateDateRange validates a rental period.
func ValidateDateRange(start, end time.Time, fieldName string) error {
	if end.Before(start) {
		return fmt.Errorf("%w: %s end date cannot be before start date", ErrInvalidArgument, fieldName)
	}
	return nil
}

// ValidatePaginationParams validates pagination parameters
func ValidatePaginationParams(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 50 // Default
	}
	if limit > 1000 {
		limit = 1000 // Maximum
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// SafeString safely handles string pointer operations
func SafeString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// SafeFloat64 safely handles float64 pointer operations
func SafeFloat64(f *float64) float64 {
	if f == nil {
		return 0.0
	}
	return *f
}
