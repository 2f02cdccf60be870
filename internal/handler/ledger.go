package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/pin-ledger/internal/domain"
	"github.com/josh-kwaku/pin-ledger/internal/logging"
)

type ledgerService interface {
	CurrentBalance(ctx context.Context, creds domain.Credentials) (decimal.Decimal, error)
	Deposit(ctx context.Context, creds domain.Credentials, amount decimal.Decimal) (bool, error)
	Withdraw(ctx context.Context, creds domain.Credentials, amount decimal.Decimal) (bool, error)
	Delete(ctx context.Context, creds domain.Credentials) (bool, error)
	History(ctx context.Context, creds domain.Credentials) ([]domain.Transaction, error)
	TransactionTypes(ctx context.Context) ([]domain.TransactionTypeInfo, error)
}

type LedgerHandler struct {
	ledger ledgerService
}

func NewLedgerHandler(ledger ledgerService) *LedgerHandler {
	return &LedgerHandler{ledger: ledger}
}

// pinField accepts the PIN as a JSON string or a JSON number and keeps the raw
// text so that non-integer input fails credential parsing instead of decoding.
type pinField string

func (p *pinField) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*p = pinField(s)
		return nil
	}
	*p = pinField(b)
	return nil
}

type credentialsRequest struct {
	PinCode pinField `json:"pin_code"`
}

type postingRequest struct {
	PinCode pinField        `json:"pin_code"`
	Amount  decimal.Decimal `json:"amount"`
}

type postingResponse struct {
	AccountNumber int             `json:"account_number"`
	Amount        decimal.Decimal `json:"amount"`
}

type balanceResponse struct {
	AccountNumber int             `json:"account_number"`
	Balance       decimal.Decimal `json:"balance"`
}

type deleteResponse struct {
	AccountNumber int  `json:"account_number"`
	Deleted       bool `json:"deleted"`
}

type transactionDTO struct {
	ID          int64           `json:"transaction_id"`
	Type        int16           `json:"transaction_type"`
	Description string          `json:"description"`
	Date        time.Time       `json:"transaction_date"`
	Balance     decimal.Decimal `json:"account_balance"`
}

type historyResponse struct {
	AccountNumber int              `json:"account_number"`
	Transactions  []transactionDTO `json:"transactions"`
}

type transactionTypeDTO struct {
	Type        int16  `json:"transaction_type"`
	Description string `json:"description"`
}

// credentials decodes the request body into dst and pairs the path account
// number with its pin_code. A false return means a response was written.
func credentials(w http.ResponseWriter, r *http.Request, dst any, pin func() pinField) (domain.Credentials, bool) {
	if err := decodeBody(w, r, dst); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return domain.Credentials{}, false
	}

	creds, err := domain.ParseCredentials(r.PathValue("number"), string(pin()))
	if err != nil {
		RespondDomainError(w, err)
		return domain.Credentials{}, false
	}
	return creds, true
}

func (h *LedgerHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	h.post(w, r, "deposit", h.ledger.Deposit)
}

func (h *LedgerHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	h.post(w, r, "withdraw", h.ledger.Withdraw)
}

func (h *LedgerHandler) post(
	w http.ResponseWriter,
	r *http.Request,
	op string,
	fn func(context.Context, domain.Credentials, decimal.Decimal) (bool, error),
) {
	var req postingRequest
	creds, ok := credentials(w, r, &req, func() pinField { return req.PinCode })
	if !ok {
		return
	}

	done, err := fn(r.Context(), creds, req.Amount)
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to post "+op, "error", err, "account_number", creds.AccountNumber)
		RespondDomainError(w, err)
		return
	}
	if !done {
		RespondAppError(w, ErrActionNotCompleted, nil)
		return
	}

	RespondSuccess(w, http.StatusOK, postingResponse{AccountNumber: creds.AccountNumber, Amount: req.Amount})
}

func (h *LedgerHandler) Balance(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	creds, ok := credentials(w, r, &req, func() pinField { return req.PinCode })
	if !ok {
		return
	}

	balance, err := h.ledger.CurrentBalance(r.Context(), creds)
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to read balance", "error", err, "account_number", creds.AccountNumber)
		RespondDomainError(w, err)
		return
	}
	if balance.Equal(domain.NoAccessBalance) {
		RespondAppError(w, ErrActionNotCompleted, nil)
		return
	}

	RespondSuccess(w, http.StatusOK, balanceResponse{AccountNumber: creds.AccountNumber, Balance: balance})
}

func (h *LedgerHandler) History(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	creds, ok := credentials(w, r, &req, func() pinField { return req.PinCode })
	if !ok {
		return
	}

	entries, err := h.ledger.History(r.Context(), creds)
	if err != nil {
		RespondDomainError(w, err)
		return
	}

	dtos := make([]transactionDTO, len(entries))
	for i, e := range entries {
		dtos[i] = transactionDTO{
			ID:          e.ID,
			Type:        int16(e.Type),
			Description: e.Type.String(),
			Date:        e.Date,
			Balance:     e.Balance,
		}
	}

	RespondSuccess(w, http.StatusOK, historyResponse{AccountNumber: creds.AccountNumber, Transactions: dtos})
}

func (h *LedgerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	creds, ok := credentials(w, r, &req, func() pinField { return req.PinCode })
	if !ok {
		return
	}

	deleted, err := h.ledger.Delete(r.Context(), creds)
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to delete account", "error", err, "account_number", creds.AccountNumber)
		RespondDomainError(w, err)
		return
	}
	if !deleted {
		RespondAppError(w, ErrActionNotCompleted, nil)
		return
	}

	RespondSuccess(w, http.StatusOK, deleteResponse{AccountNumber: creds.AccountNumber, Deleted: true})
}

func (h *LedgerHandler) TransactionTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.ledger.TransactionTypes(r.Context())
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to list transaction types", "error", err)
		RespondDomainError(w, err)
		return
	}

	dtos := make([]transactionTypeDTO, len(types))
	for i, t := range types {
		dtos[i] = transactionTypeDTO{Type: int16(t.Type), Description: t.Description}
	}

	RespondSuccess(w, http.StatusOK, dtos)
}
