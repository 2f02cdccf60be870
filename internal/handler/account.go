package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/josh-kwaku/pin-ledger/internal/domain"
	"github.com/josh-kwaku/pin-ledger/internal/logging"
	"github.com/josh-kwaku/pin-ledger/internal/service"
)

const birthDateLayout = "2006-01-02"

type accountOpener interface {
	OpenAccount(ctx context.Context, req service.OpenAccountRequest) (*domain.Account, error)
}

type AccountHandler struct {
	accounts accountOpener
}

func NewAccountHandler(accounts accountOpener) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

type openAccountRequest struct {
	HolderName  string `json:"holder_name"`
	Email       string `json:"email"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phone_number"`
	BirthDate   string `json:"birth_date"`
}

// toService parses birth_date. The remaining fields are checked by the service.
func (r openAccountRequest) toService() (service.OpenAccountRequest, []FieldError) {
	req := service.OpenAccountRequest{
		HolderName:  r.HolderName,
		Email:       r.Email,
		Address:     r.Address,
		PhoneNumber: r.PhoneNumber,
	}

	if strings.TrimSpace(r.BirthDate) == "" {
		return req, []FieldError{{Field: "birth_date", Message: "required"}}
	}
	birth, err := time.Parse(birthDateLayout, r.BirthDate)
	if err != nil {
		return req, []FieldError{{Field: "birth_date", Message: "must be a date in YYYY-MM-DD format"}}
	}
	req.BirthDate = birth
	return req, nil
}

type openAccountResponse struct {
	AccountNumber int `json:"account_number"`
	PinCode       int `json:"pin_code"`
}

func (h *AccountHandler) Open(w http.ResponseWriter, r *http.Request) {
	var body openAccountRequest
	if err := decodeBody(w, r, &body); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}

	req, fields := body.toService()
	if len(fields) > 0 {
		RespondValidationError(w, fields)
		return
	}

	account, err := h.accounts.OpenAccount(r.Context(), req)
	if err != nil {
		logging.FromContext(r.Context()).Warn("failed to open account", "error", err)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusCreated, openAccountResponse{
		AccountNumber: account.AccountNumber,
		PinCode:       account.PinCode,
	})
}
