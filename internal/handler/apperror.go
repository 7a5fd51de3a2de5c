package handler

import "net/http"

type AppError struct {
	Status  int
	Code    string
	Message string
}

func (e *AppError) Error() string { return e.Message }

var (
	ErrInvalidRequest   = &AppError{http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body"}
	ErrValidationFailed = &AppError{http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed"}
	ErrResourceNotFound = &AppError{http.StatusNotFound, "RESOURCE_NOT_FOUND", "Resource not found"}
	ErrInternalError    = &AppError{http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred"}

	ErrInsufficientFunds = &AppError{http.StatusUnprocessableEntity, "INSUFFICIENT_FUNDS", "Insufficient funds"}
	ErrInvalidAmount     = &AppError{http.StatusBadRequest, "INVALID_AMOUNT", "Amount must be greater than zero"}
	ErrNegativeBalance   = &AppError{http.StatusBadRequest, "NEGATIVE_BALANCE", "Balance cannot be negative"}
	ErrInvalidOwner      = &AppError{http.StatusBadRequest, "INVALID_OWNER", "Owner is required"}
	ErrInvalidTxType     = &AppError{http.StatusBadRequest, "INVALID_TRANSACTION_TYPE", "Type must be deposit, withdrawal, or transfer"}
	ErrSelfTransfer      = &AppError{http.StatusBadRequest, "SELF_TRANSFER_NOT_ALLOWED", "Cannot transfer to the same account"}
	ErrAccountBusy       = &AppError{http.StatusConflict, "ACCOUNT_BUSY", "Account is locked by another operation, please retry"}
	ErrVersionConflict   = &AppError{http.StatusConflict, "VERSION_CONFLICT", "Resource was modified concurrently, please retry"}
)
