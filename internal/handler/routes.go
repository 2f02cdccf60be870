package handler

import "net/http"

func Register(mux *http.ServeMux, accounts *AccountHandler, ledger *LedgerHandler, health *HealthHandler) {
	mux.HandleFunc("GET /health", health.Liveness)
	mux.HandleFunc("GET /health/ready", health.Readiness)

	mux.HandleFunc("POST /api/v1/accounts", accounts.Open)
	mux.HandleFunc("POST /api/v1/accounts/{number}/deposit", ledger.Deposit)
	mux.HandleFunc("POST /api/v1/accounts/{number}/withdraw", ledger.Withdraw)
	mux.HandleFunc("POST /api/v1/accounts/{number}/balance", ledger.Balance)
	mux.HandleFunc("POST /api/v1/accounts/{number}/history", ledger.History)
	mux.HandleFunc("DELETE /api/v1/accounts/{number}", ledger.Delete)
	mux.HandleFunc("GET /api/v1/transaction-types", ledger.TransactionTypes)
}
