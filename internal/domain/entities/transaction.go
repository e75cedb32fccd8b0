package entities

import (
	"encoding/json"
	"time"
)

// TransactionStatus represents the charge state of a caller-owned transaction.
type TransactionStatus string

const (
	TransactionStatusPending    TransactionStatus = "pending"
	// TransactionStatusProcessing is held by the one request charging the
	// transaction. Only a pending or failed transaction can be claimed.
	TransactionStatusProcessing TransactionStatus = "processing"
	TransactionStatusCharged    TransactionStatus = "charged"
	TransactionStatusFailed     TransactionStatus = "failed"
)

// Transaction is the caller-side record a charge is reconciled into.
//
// Storage model (DynamoDB):
//   - PK: id
//
// Gateway fields are only written when the charge produced them, so a charge
// without a customer never stores an empty gateway_customer_id.
type Transaction struct {
	ID          string            `json:"id"`
	Amount      float64           `json:"amount"`
	Currency    string            `json:"currency"`
	Description string            `json:"description,omitempty"`
	Status      TransactionStatus `json:"status"`

	// ChargeAttempts counts claims; the current attempt owns the outcome write.
	ChargeAttempts int `json:"charge_attempts,omitempty"`

	PayAccountID         string `json:"pay_account_id,omitempty"`
	GatewayTransactionID string `json:"gateway_transaction_id,omitempty"`
	GatewayCustomerID    string `json:"gateway_customer_id,omitempty"`
	GatewaySourceID      string `json:"gateway_source_id,omitempty"`

	ChargeRequest  map[string]any  `json:"charge_request,omitempty"`
	ChargeResponse json.RawMessage `json:"charge_response,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
