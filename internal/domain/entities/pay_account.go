package entities

import (
	"encoding/json"
	"time"
)

// PayAccountStatus represents the lifecycle of a linked payment method.
//
// A pay account is created pending, then becomes approved once the gateway
// source is attached or rejected when any step fails. Rejected records are
// kept as an audit trail.

type PayAccountStatus string

const (
	PayAccountStatusPending  PayAccountStatus = "pending"
	PayAccountStatusApproved PayAccountStatus = "approved"
	PayAccountStatusRejected PayAccountStatus = "rejected"
)

// PayAccountServiceStripe is the service name stored on every pay account
// created by this service.
const PayAccountServiceStripe = "stripe"

// WalletMethod is the wallet a card was tokenized through.
type WalletMethod string

const (
	WalletMethodNone      WalletMethod = ""
	WalletMethodApplePay  WalletMethod = "applePay"
	WalletMethodGooglePay WalletMethod = "googlePay"
	WalletMethodUnknown   WalletMethod = "unknown"
)

var walletMethodsByTokenization = map[string]WalletMethod{
	"":            WalletMethodNone,
	"apple_pay":   WalletMethodApplePay,
	"android_pay": WalletMethodGooglePay,
}

// WalletMethodFromTokenization maps the gateway's tokenization_method code.
// Codes outside the table resolve to WalletMethodUnknown.
func WalletMethodFromTokenization(code string) WalletMethod {
	if m, ok := walletMethodsByTokenization[code]; ok {
		return m
	}
	return WalletMethodUnknown
}

// CardMetadata is the display subset of the attached payment source.
type CardMetadata struct {
	Type         string       `json:"type,omitempty"`
	Brand        string       `json:"brand,omitempty"`
	Country      string       `json:"country,omitempty"`
	Last4        string       `json:"last4,omitempty"`
	Expiry       string       `json:"expiry,omitempty"`
	WalletMethod WalletMethod `json:"wallet_method,omitempty"`
}

// PayAccount links a local user to a gateway customer and payment source.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (user_id-index): user_id
//
// OriginalRequest keeps the source-creation request and OriginalResponse the
// raw gateway error body (or local error) of a rejected attempt.

type PayAccount struct {
	ID                string           `json:"id"`
	UserID            string           `json:"user_id"`
	ServiceName       string           `json:"service_name"`
	Status            PayAccountStatus `json:"status"`
	GatewayCustomerID string           `json:"gateway_customer_id,omitempty"`
	GatewaySourceID   string           `json:"gateway_source_id,omitempty"`
	CardMetadata      CardMetadata     `json:"card_metadata"`

	OriginalRequest  map[string]any  `json:"original_request,omitempty"`
	OriginalResponse json.RawMessage `json:"original_response,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a PayAccount) IsApproved() bool {
	return a.Status == PayAccountStatusApproved
}
