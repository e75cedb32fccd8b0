package entities

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Gateway payloads are kept provider-neutral so the use cases never import a
// gateway SDK. The Stripe adapter translates them.

type GatewayCustomerRequest struct {
	Description string            `json:"description,omitempty"`
	Email       string            `json:"email,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

type GatewayCustomer struct {
	ID  string
	Raw json.RawMessage
}

type GatewaySourceRequest struct {
	Source   string            `json:"source"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

type GatewaySource struct {
	ID                 string
	Object             string
	Brand              string
	Country            string
	Last4              string
	ExpMonth           int64
	ExpYear            int64
	TokenizationMethod string
	Raw                json.RawMessage
}

type GatewayChargeRequest struct {
	Amount              int64             `json:"amount"`
	Currency            string            `json:"currency"`
	Customer            *string           `json:"customer,omitempty"`
	Source              string            `json:"source"`
	Description         *string           `json:"description,omitempty"`
	StatementDescriptor *string           `json:"statement_descriptor,omitempty"`
	Metadata            map[string]string `json:"metadata"`
	// IdempotencyKey is sent as a header, never as part of the payload.
	IdempotencyKey      string            `json:"-"`
}

type GatewayCharge struct {
	ID       string
	SourceID string
	Raw      json.RawMessage
}

type GatewayBalanceAmount struct {
	Amount   int64
	Currency string
}

type GatewayBalance struct {
	Available []GatewayBalanceAmount
	Raw       json.RawMessage
}

// GatewayError is a structured rejection returned by the gateway API.
// Type holds the gateway error type (card_error, invalid_request_error, ...)
// and Raw the error body exactly as received.
type GatewayError struct {
	Type string
	Raw  json.RawMessage
	Err  error
}

func (e *GatewayError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("gateway %s: %v", e.Type, e.Err)
	}
	return "gateway " + e.Type
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// AsGatewayError finds a GatewayError in err's chain. Errors without a type
// are not considered structured.
func AsGatewayError(err error) (*GatewayError, bool) {
	var gwErr *GatewayError
	if errors.As(err, &gwErr) && gwErr.Type != "" {
		return gwErr, true
	}
	return nil, false
}
