// Package validation holds the field checks an account application must pass
// before anything is written. Each check returns nil or an error naming the
// reason, so callers can report it per field.
package validation

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

const (
	MinHolderAge  = 17
	EarliestBirth = 1900
)

var (
	ErrEmailFormat    = errors.New("invalid email format")
	ErrPhoneFormat    = errors.New("must start with 05 and have 10 digits")
	ErrBirthInFuture  = errors.New("birth date is in the future")
	ErrBirthTooEarly  = errors.New("birth date is before 1900")
	ErrHolderTooYoung = errors.New("holder must be at least 17 years old")
	ErrRequired       = errors.New("required")
)

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phonePattern = regexp.MustCompile(`^05\d{8}$`)
)

func Email(s string) error {
	if !emailPattern.MatchString(s) {
		return ErrEmailFormat
	}
	return nil
}

// Phone accepts local mobile numbers: the "05" prefix followed by eight digits.
func Phone(s string) error {
	if !phonePattern.MatchString(s) {
		return ErrPhoneFormat
	}
	return nil
}

// BirthDate checks plausibility as of now: not in the future, not before
// 1900, and old enough to hold an account.
func BirthDate(birth, now time.Time) error {
	if birth.After(now) {
		return ErrBirthInFuture
	}
	if birth.Year() < EarliestBirth {
		return ErrBirthTooEarly
	}
	if age(birth, now) < MinHolderAge {
		return ErrHolderTooYoung
	}
	return nil
}

func NonEmpty(s string) error {
	if strings.TrimSpace(s) == "" {
		return ErrRequired
	}
	return nil
}

func age(birth, now time.Time) int {
	years := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		years--
	}
	return years
}
