package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/josh-kwaku/pin-ledger/internal/domain"
	"github.com/josh-kwaku/pin-ledger/internal/logging"
	"github.com/josh-kwaku/pin-ledger/internal/validation"
)

type OpenAccountRequest struct {
	HolderName  string
	Email       string
	Address     string
	PhoneNumber string
	BirthDate   time.Time
}

// Validate checks every field and returns one entry per failed field.
func (r OpenAccountRequest) Validate(now time.Time) []domain.FieldError {
	checks := []struct {
		field string
		err   error
	}{
		{"holder_name", validation.NonEmpty(r.HolderName)},
		{"email", validation.Email(r.Email)},
		{"address", validation.NonEmpty(r.Address)},
		{"phone_number", validation.Phone(r.PhoneNumber)},
		{"birth_date", validation.BirthDate(r.BirthDate, now)},
	}

	var errs []domain.FieldError
	for _, c := range checks {
		if c.err != nil {
			errs = append(errs, domain.FieldError{Field: c.field, Message: c.err.Error()})
		}
	}
	return errs
}

type AccountService struct {
	accounts accountCreator
	numbers  numberAllocator
	ledger   initialRecorder
	now      func() time.Time
	pins     func() (int, error)
}

func NewAccountService(accounts accountCreator, numbers numberAllocator, ledger initialRecorder) *AccountService {
	return &AccountService{
		accounts: accounts,
		numbers:  numbers,
		ledger:   ledger,
		now:      func() time.Time { return time.Now().UTC() },
		pins:     func() (int, error) { return randomInRange(domain.MinPinCode, domain.MaxPinCode) },
	}
}

// OpenAccount validates the application, then claims an account number,
// assigns a PIN, stores the account and records its zero opening balance.
// Nothing is written when validation fails.
func (s *AccountService) OpenAccount(ctx context.Context, req OpenAccountRequest) (*domain.Account, error) {
	log := logging.FromContext(ctx)

	if fields := req.Validate(s.now()); len(fields) > 0 {
		return nil, fmt.Errorf("OpenAccount: %w", &domain.ValidationError{Fields: fields})
	}

	number, err := s.numbers.Allocate(ctx)
	if err != nil {
		return nil, fmt.Errorf("OpenAccount: %w", err)
	}

	pin, err := s.pins()
	if err != nil {
		return nil, fmt.Errorf("OpenAccount: %w", err)
	}

	account := &domain.Account{
		AccountNumber: number,
		PinCode:       pin,
		HolderName:    strings.TrimSpace(req.HolderName),
		Email:         req.Email,
		Address:       strings.TrimSpace(req.Address),
		PhoneNumber:   req.PhoneNumber,
		BirthDate:     req.BirthDate,
	}

	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("OpenAccount: %w", err)
	}

	if err := s.ledger.RecordInitial(ctx, number); err != nil {
		return nil, fmt.Errorf("OpenAccount: %w", err)
	}

	log.Info("account opened", "account_number", number)

	return account, nil
}
