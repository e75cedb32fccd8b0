package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"payment_gateway/internal/domain/entities"
	"payment_gateway/internal/usecase/interfaces"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Tokens the mock gateway rejects, mirroring Stripe's test tokens.
var mockDeclines = map[string]mockDecline{
	"tok_chargeDeclined":                  {code: "card_declined", message: "Your card was declined."},
	"tok_chargeDeclinedInsufficientFunds": {code: "card_declined", decline: "insufficient_funds", message: "Your card has insufficient funds."},
	"tok_chargeDeclinedExpiredCard":       {code: "expired_card", message: "Your card has expired."},
	"tok_chargeDeclinedIncorrectCvc":      {code: "incorrect_cvc", message: "Your card's security code is incorrect."},
}

type mockDecline struct {
	code    string
	decline string
	message string
}

// MockGateway is an in-process gateway used when PAYMENT_GATEWAY_MOCK is on.
// Every call succeeds except for the decline tokens above.
type MockGateway struct {
	l *zap.Logger

	mu      sync.Mutex
	charges map[string]chargeReplay
}

// chargeReplay is what a repeated idempotency key returns.
type chargeReplay struct {
	charge entities.GatewayCharge
	err    error
}

var _ interfaces.IPaymentGateway = (*MockGateway)(nil)

func NewMockGateway() *MockGateway {
	l := zap.L().Named("payment.gateway")
	l.Info("mock mode enabled")
	return &MockGateway{l: l, charges: map[string]chargeReplay{}}
}

func (g *MockGateway) RetrieveBalance(_ context.Context) (entities.GatewayBalance, error) {
	body := map[string]any{
		"object":    "balance",
		"livemode":  false,
		"available": []map[string]any{{"amount": 0, "currency": "usd"}},
		"pending":   []map[string]any{{"amount": 0, "currency": "usd"}},
	}
	return entities.GatewayBalance{
		Available: []entities.GatewayBalanceAmount{{Amount: 0, Currency: "usd"}},
		Raw:       mustJSON(body),
	}, nil
}

func (g *MockGateway) CreateCustomer(_ context.Context, req entities.GatewayCustomerRequest) (entities.GatewayCustomer, error) {
	id := mockID("cus")
	g.l.Debug("mock customer created", zap.String("customer_id", id))
	return entities.GatewayCustomer{
		ID: id,
		Raw: mustJSON(map[string]any{
			"id":          id,
			"object":      "customer",
			"description": req.Description,
			"email":       req.Email,
			"metadata":    req.Metadata,
		}),
	}, nil
}

func (g *MockGateway) CreateCustomerSource(_ context.Context, customerID string, req entities.GatewaySourceRequest) (entities.GatewaySource, error) {
	if err := declineFor(req.Source, ""); err != nil {
		return entities.GatewaySource{}, err
	}

	src := entities.GatewaySource{
		ID:       mockID("card"),
		Object:   "card",
		Brand:    "Visa",
		Country:  "US",
		Last4:    "4242",
		ExpMonth: 12,
		ExpYear:  2034,
	}
	switch {
	case strings.Contains(req.Source, "ApplePay"):
		src.TokenizationMethod = "apple_pay"
	case strings.Contains(req.Source, "GooglePay"):
		src.TokenizationMethod = "android_pay"
	}
	src.Raw = mustJSON(map[string]any{
		"id":                  src.ID,
		"object":              src.Object,
		"brand":               src.Brand,
		"country":             src.Country,
		"last4":               src.Last4,
		"exp_month":           src.ExpMonth,
		"exp_year":            src.ExpYear,
		"customer":            customerID,
		"tokenization_method": nullable(src.TokenizationMethod),
		"metadata":            req.Metadata,
	})
	return src, nil
}

func (g *MockGateway) CreateCharge(_ context.Context, req entities.GatewayChargeRequest) (entities.GatewayCharge, error) {
	if req.IdempotencyKey == "" {
		return g.createCharge(req)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if prev, ok := g.charges[req.IdempotencyKey]; ok {
		g.l.Debug("mock charge replayed", zap.String("idempotency_key", req.IdempotencyKey))
		return prev.charge, prev.err
	}
	ch, err := g.createCharge(req)
	g.charges[req.IdempotencyKey] = chargeReplay{charge: ch, err: err}
	return ch, err
}

func (g *MockGateway) createCharge(req entities.GatewayChargeRequest) (entities.GatewayCharge, error) {
	id := mockID("ch")
	if err := declineFor(req.Source, id); err != nil {
		g.l.Debug("mock charge declined", zap.String("source", req.Source))
		return entities.GatewayCharge{}, err
	}

	sourceID := req.Source
	if strings.HasPrefix(sourceID, "tok_") {
		sourceID = mockID("card")
	}
	body := map[string]any{
		"id":       id,
		"object":   "charge",
		"amount":   req.Amount,
		"currency": req.Currency,
		"paid":     true,
		"status":   "succeeded",
		"source":   map[string]any{"id": sourceID, "object": "card"},
		"metadata": req.Metadata,
	}
	if req.Customer != nil {
		body["customer"] = *req.Customer
	}
	if req.Description != nil {
		body["description"] = *req.Description
	}
	if req.StatementDescriptor != nil {
		body["statement_descriptor"] = *req.StatementDescriptor
	}
	return entities.GatewayCharge{ID: id, SourceID: sourceID, Raw: mustJSON(body)}, nil
}

func declineFor(source, chargeID string) error {
	d, ok := mockDeclines[source]
	if !ok {
		return nil
	}
	body := map[string]any{
		"type":    "card_error",
		"code":    d.code,
		"message": d.message,
	}
	if d.decline != "" {
		body["decline_code"] = d.decline
	}
	if chargeID != "" {
		body["charge"] = chargeID
	}
	return &entities.GatewayError{
		Type: "card_error",
		Raw:  mustJSON(map[string]any{"error": body}),
		Err:  fmt.Errorf("%s: %s", d.code, d.message),
	}
}

func mockID(prefix string) string {
	return prefix + "_mock_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:14]
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func mustJSON(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}
