package handler

import "net/http"

func RegisterRoutes(mux *http.ServeMux, accounts *AccountHandler, transactions *TransactionHandler, health *HealthHandler) {
	mux.HandleFunc("GET /health/live", health.Liveness)
	mux.HandleFunc("GET /health/ready", health.Readiness)

	mux.HandleFunc("GET /api/v1/accounts", accounts.List)
	mux.HandleFunc("POST /api/v1/accounts", accounts.Create)
	mux.HandleFunc("GET /api/v1/accounts/{id}", accounts.Get)
	mux.HandleFunc("PUT /api/v1/accounts/{id}", accounts.Update)
	mux.HandleFunc("DELETE /api/v1/accounts/{id}", accounts.Delete)
	mux.HandleFunc("POST /api/v1/accounts/{id}/deposit", accounts.Deposit)
	mux.HandleFunc("POST /api/v1/accounts/{id}/withdraw", accounts.Withdraw)
	mux.HandleFunc("POST /api/v1/accounts/{id}/transfer", accounts.Transfer)

	mux.HandleFunc("GET /api/v1/accounts/{id}/transactions", transactions.List)
	mux.HandleFunc("POST /api/v1/accounts/{id}/transactions", transactions.Record)
	mux.HandleFunc("DELETE /api/v1/accounts/{id}/transactions/{transaction_id}", transactions.Delete)
}
