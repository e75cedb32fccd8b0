package handlers

import (
	"errors"
	"net/http"

	"payment_gateway/internal/domain/entities"
	"payment_gateway/internal/infrastructure/lock"
	"payment_gateway/internal/usecase"
	"payment_gateway/pkg"
)

var (
	errInvalidChargePayload      = pkg.NewDomainErrorSimple("INVALID_CHARGE_INPUT", "Invalid charge payload", http.StatusBadRequest)
	errInvalidTransactionPayload = pkg.NewDomainErrorSimple("INVALID_TRANSACTION_INPUT", "Invalid transaction payload", http.StatusBadRequest)
)

// mapPaymentError translates use case errors into the HTTP error contract.
// Gateway rejections keep the gateway error body in the details.
func mapPaymentError(err error) *pkg.AppError {
	var notRecorded *usecase.ChargeNotRecordedError
	if errors.As(err, &notRecorded) {
		return pkg.NewDomainError("CHARGE_NOT_RECORDED", "Charge succeeded but was not recorded", err, http.StatusInternalServerError).
			WithDetail("transaction_id", notRecorded.TransactionID).
			WithDetail("gateway_transaction_id", notRecorded.GatewayTransactionID)
	}
	var chargeErr *entities.ChargeError
	if errors.As(err, &chargeErr) {
		return pkg.NewDomainError("PAYMENT_DECLINED", "Payment rejected by gateway", err, http.StatusPaymentRequired).
			WithDetail("gateway_type", chargeErr.GatewayType()).
			WithDetail("gateway_response", chargeErr.Response)
	}
	if gwErr, ok := entities.AsGatewayError(err); ok {
		return pkg.NewDomainError("PAYMENT_PROVIDER_ERROR", "Payment provider error", err, http.StatusBadGateway).
			WithDetail("gateway_type", gwErr.Type).
			WithDetail("gateway_response", gwErr.Raw)
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidChargeRequest):
		return pkg.NewDomainError("INVALID_CHARGE_INPUT", "Invalid charge payload", err, http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidTransactionID),
		errors.Is(err, usecase.ErrInvalidTransactionAmount),
		errors.Is(err, usecase.ErrInvalidCurrency):
		return pkg.NewDomainError("INVALID_TRANSACTION_INPUT", "Invalid transaction payload", err, http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayNotDefined):
		return pkg.NewDomainError("PAYMENT_GATEWAY_NOT_CONFIGURED", "Payment gateway not configured", err, http.StatusServiceUnavailable)
	case errors.Is(err, usecase.ErrTransactionNotFound):
		return pkg.NewDomainError("TRANSACTION_NOT_FOUND", "Transaction not found", err, http.StatusNotFound)
	case errors.Is(err, usecase.ErrPayAccountNotFound):
		return pkg.NewDomainError("PAY_ACCOUNT_NOT_FOUND", "Pay account not found", err, http.StatusNotFound)
	case errors.Is(err, usecase.ErrPayAccountNotApproved):
		return pkg.NewDomainError("PAY_ACCOUNT_NOT_APPROVED", "Pay account not approved", err, http.StatusConflict)
	case errors.Is(err, usecase.ErrTransactionAlreadyCharged):
		return pkg.NewDomainError("TRANSACTION_ALREADY_CHARGED", "Transaction already charged", err, http.StatusConflict)
	case errors.Is(err, usecase.ErrTransactionChargeInProgress):
		return pkg.NewDomainError("TRANSACTION_CHARGE_IN_PROGRESS", "Transaction charge in progress", err, http.StatusConflict)
	case errors.Is(err, lock.ErrLockTimeout):
		return pkg.NewDomainError("PAY_ACCOUNT_BUSY", "Another pay account link is in progress for this user", err, http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_SERVER_ERROR", "Internal server error", err, http.StatusInternalServerError)
	}
}
