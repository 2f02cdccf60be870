package domain

import "time"

const (
	MinAccountNumber = 1000
	MaxAccountNumber = 9999

	MinPinCode = 1000
	MaxPinCode = 9999
)

type Account struct {
	AccountNumber int
	PinCode       int
	HolderName    string
	Email         string
	Address       string
	PhoneNumber   string
	BirthDate     time.Time
}

func (a *Account) Credentials() Credentials {
	return Credentials{AccountNumber: a.AccountNumber, PinCode: a.PinCode}
}
