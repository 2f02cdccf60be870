package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josh-kwaku/pin-ledger/internal/domain"
)

type mockAccountCreator struct {
	created []*domain.Account
	err     error
}

func (m *mockAccountCreator) Create(_ context.Context, a *domain.Account) error {
	if m.err != nil {
		return m.err
	}
	m.created = append(m.created, a)
	return nil
}

type mockAllocator struct {
	number int
	err    error
	calls  int
}

func (m *mockAllocator) Allocate(context.Context) (int, error) {
	m.calls++
	return m.number, m.err
}

type mockRecorder struct {
	recorded []int
	err      error
}

func (m *mockRecorder) RecordInitial(_ context.Context, n int) error {
	if m.err != nil {
		return m.err
	}
	m.recorded = append(m.recorded, n)
	return nil
}

var fixedNow = time.Date(2026, time.March, 15, 9, 30, 0, 0, time.UTC)

func validRequest() OpenAccountRequest {
	return OpenAccountRequest{
		HolderName:  "Dana Levi",
		Email:       "dana@example.com",
		Address:     "12 Rothschild Blvd, Tel Aviv",
		PhoneNumber: "0521234567",
		BirthDate:   time.Date(1991, time.July, 4, 0, 0, 0, 0, time.UTC),
	}
}

func newTestAccountService(accounts *mockAccountCreator, numbers *mockAllocator, ledger *mockRecorder) *AccountService {
	svc := NewAccountService(accounts, numbers, ledger)
	svc.now = func() time.Time { return fixedNow }
	svc.pins = func() (int, error) { return 4242, nil }
	return svc
}

func TestOpenAccount_HappyPath(t *testing.T) {
	accounts := &mockAccountCreator{}
	numbers := &mockAllocator{number: 4821}
	ledger := &mockRecorder{}
	svc := newTestAccountService(accounts, numbers, ledger)

	req := validRequest()
	req.HolderName = "  Dana Levi "

	acct, err := svc.OpenAccount(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 4821, acct.AccountNumber)
	assert.Equal(t, 4242, acct.PinCode)
	assert.Equal(t, "Dana Levi", acct.HolderName)
	require.Len(t, accounts.created, 1)
	assert.Same(t, acct, accounts.created[0])
	assert.Equal(t, []int{4821}, ledger.recorded)
}

func TestOpenAccount_ValidationFailsBeforeAnyWrite(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*OpenAccountRequest)
		wantFields []string
	}{
		{name: "empty holder name", mutate: func(r *OpenAccountRequest) { r.HolderName = " " }, wantFields: []string{"holder_name"}},
		{name: "bad email", mutate: func(r *OpenAccountRequest) { r.Email = "dana.example.com" }, wantFields: []string{"email"}},
		{name: "empty address", mutate: func(r *OpenAccountRequest) { r.Address = "" }, wantFields: []string{"address"}},
		{name: "bad phone", mutate: func(r *OpenAccountRequest) { r.PhoneNumber = "0721234567" }, wantFields: []string{"phone_number"}},
		{name: "too young", mutate: func(r *OpenAccountRequest) { r.BirthDate = fixedNow.AddDate(-16, 0, 0) }, wantFields: []string{"birth_date"}},
		{
			name: "several fields",
			mutate: func(r *OpenAccountRequest) {
				r.Email = ""
				r.PhoneNumber = "12345"
				r.BirthDate = fixedNow.AddDate(1, 0, 0)
			},
			wantFields: []string{"email", "phone_number", "birth_date"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accounts := &mockAccountCreator{}
			numbers := &mockAllocator{number: 4821}
			ledger := &mockRecorder{}
			svc := newTestAccountService(accounts, numbers, ledger)

			req := validRequest()
			tt.mutate(&req)

			_, err := svc.OpenAccount(context.Background(), req)
			require.ErrorIs(t, err, domain.ErrValidation)

			var verr *domain.ValidationError
			require.True(t, errors.As(err, &verr))
			var fields []string
			for _, f := range verr.Fields {
				fields = append(fields, f.Field)
			}
			assert.Equal(t, tt.wantFields, fields)

			assert.Zero(t, numbers.calls, "no account number may be claimed")
			assert.Empty(t, accounts.created)
			assert.Empty(t, ledger.recorded)
		})
	}
}

func TestOpenAccount_AllocatorFailure(t *testing.T) {
	accounts := &mockAccountCreator{}
	numbers := &mockAllocator{err: domain.ErrAccountNumbersExhausted}
	ledger := &mockRecorder{}
	svc := newTestAccountService(accounts, numbers, ledger)

	_, err := svc.OpenAccount(context.Background(), validRequest())
	require.ErrorIs(t, err, domain.ErrAccountNumbersExhausted)
	assert.Empty(t, accounts.created)
	assert.Empty(t, ledger.recorded)
}

func TestOpenAccount_CreateFailureSkipsInitialBalance(t *testing.T) {
	boom := errors.New("disk full")
	accounts := &mockAccountCreator{err: boom}
	ledger := &mockRecorder{}
	svc := newTestAccountService(accounts, &mockAllocator{number: 4821}, ledger)

	_, err := svc.OpenAccount(context.Background(), validRequest())
	require.ErrorIs(t, err, boom)
	assert.Empty(t, ledger.recorded)
}

func TestNewAccountService_ClockIsUTC(t *testing.T) {
	svc := NewAccountService(&mockAccountCreator{}, &mockAllocator{}, &mockRecorder{})
	assert.Equal(t, time.UTC, svc.now().Location())
}
