package entities

import (
	"encoding/json"
	"fmt"
)

// ChargePath identifies which of the three charge strategies handled a request.
type ChargePath string

const (
	// ChargePathLinkedAccount charges the customer and source of an existing pay account.
	ChargePathLinkedAccount ChargePath = "linked_account"
	// ChargePathOneTime charges a token directly, without creating a customer.
	ChargePathOneTime ChargePath = "one_time"
	// ChargePathStoreAccount links the token to a pay account first, then charges it.
	ChargePathStoreAccount ChargePath = "store_account"
)

type ChargeTransaction struct {
	ID          string
	Amount      float64
	Currency    string
	Description string
	// Paid marks a transaction already linked to ExistingAccount.
	Paid bool
}

type ChargeUser struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
}

// ChargeRequest is the gateway-agnostic charge input.
//
// CapturedRequest is an optional caller buffer; when it is empty it receives
// the outbound gateway payload, otherwise it is left untouched.
type ChargeRequest struct {
	Transaction          ChargeTransaction
	Token                string
	StatementDescription string
	StoreAsAccount       bool
	User                 *ChargeUser
	ExistingAccount      *PayAccount
	CapturedRequest      map[string]any
	// IdempotencyKey, when set, makes a replayed charge return the first result.
	IdempotencyKey       string
}

// LinkedData is the subset of a charge the caller persists on its transaction.
type LinkedData struct {
	GatewayCustomerID string `json:"gateway_customer_id,omitempty"`
	GatewaySourceID   string `json:"gateway_source_id,omitempty"`
}

type ChargeResult struct {
	Path                 ChargePath      `json:"path"`
	Request              map[string]any  `json:"request"`
	Response             json.RawMessage `json:"response"`
	GatewayTransactionID string          `json:"gateway_transaction_id"`
	LinkedData           LinkedData      `json:"linked_data"`
}

// ChargeError is returned when the gateway rejected a call with a structured
// error. Local failures are never wrapped in it.
type ChargeError struct {
	Request  map[string]any
	Response json.RawMessage
	Err      error
}

func (e *ChargeError) Error() string {
	return fmt.Sprintf("gateway rejected charge: %v", e.Err)
}

func (e *ChargeError) Unwrap() error {
	return e.Err
}

// GatewayType returns the gateway error type carried by the wrapped error.
func (e *ChargeError) GatewayType() string {
	if gwErr, ok := AsGatewayError(e.Err); ok {
		return gwErr.Type
	}
	return ""
}

type Balance struct {
	Amount   float64 `json:"amount,omitempty"`
	Currency string  `json:"currency,omitempty"`
}

// BalanceResult carries the first available balance and the raw gateway body.
// Balance is zero-valued when the gateway reported no available funds.
type BalanceResult struct {
	Balance  Balance         `json:"balance"`
	Response json.RawMessage `json:"response"`
}

type EchoResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
