package response

import (
	"encoding/json"
	"time"

	"payment_gateway/internal/domain/entities"
)

type TransactionResponse struct {
	ID                   string          `json:"id"`
	TransactionID        string          `json:"transaction_id"`
	Amount               float64         `json:"amount"`
	Currency             string          `json:"currency"`
	Description          string          `json:"description,omitempty"`
	Status               string          `json:"status"`
	PayAccountID         string          `json:"pay_account_id,omitempty"`
	GatewayTransactionID string          `json:"gateway_transaction_id,omitempty"`
	GatewayCustomerID    string          `json:"gateway_customer_id,omitempty"`
	GatewaySourceID      string          `json:"gateway_source_id,omitempty"`
	ChargeRequest        map[string]any  `json:"charge_request,omitempty"`
	ChargeResponse       json.RawMessage `json:"charge_response,omitempty"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

func FromTransaction(t entities.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:                   t.ID,
		TransactionID:        t.ID,
		Amount:               t.Amount,
		Currency:             t.Currency,
		Description:          t.Description,
		Status:               string(t.Status),
		PayAccountID:         t.PayAccountID,
		GatewayTransactionID: t.GatewayTransactionID,
		GatewayCustomerID:    t.GatewayCustomerID,
		GatewaySourceID:      t.GatewaySourceID,
		ChargeRequest:        t.ChargeRequest,
		ChargeResponse:       t.ChargeResponse,
		CreatedAt:            t.CreatedAt,
		UpdatedAt:            t.UpdatedAt,
	}
}
