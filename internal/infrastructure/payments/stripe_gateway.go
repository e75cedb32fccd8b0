package payments

import (
	"context"
	"encoding/json"
	"errors"

	"payment_gateway/internal/domain/entities"
	"payment_gateway/internal/usecase/interfaces"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"go.uber.org/zap"
)

var ErrMissingStripeSecretKey = errors.New("missing STRIPE_SECRET_KEY")

// StripeGateway talks to the Stripe API through a per-instance client, so the
// process-wide stripe.Key is never touched.
type StripeGateway struct {
	sc *client.API
	l  *zap.Logger
}

var _ interfaces.IPaymentGateway = (*StripeGateway)(nil)

func NewStripeGateway(secretKey string) (*StripeGateway, error) {
	return newStripeGateway(secretKey, nil)
}

func newStripeGateway(secretKey string, backends *stripe.Backends) (*StripeGateway, error) {
	if secretKey == "" {
		return nil, ErrMissingStripeSecretKey
	}
	l := zap.L().Named("payment.gateway")
	l.Info("stripe client initialized")
	return &StripeGateway{sc: client.New(secretKey, backends), l: l}, nil
}

func (g *StripeGateway) RetrieveBalance(ctx context.Context) (entities.GatewayBalance, error) {
	params := &stripe.BalanceParams{}
	params.Context = ctx

	b, err := g.sc.Balance.Get(params)
	if err != nil {
		g.l.Warn("retrieve balance failed", zap.Error(err))
		return entities.GatewayBalance{}, toGatewayError(err)
	}

	out := entities.GatewayBalance{Raw: rawBody(b.LastResponse, b)}
	for _, a := range b.Available {
		if a == nil {
			continue
		}
		out.Available = append(out.Available, entities.GatewayBalanceAmount{
			Amount:   a.Amount,
			Currency: string(a.Currency),
		})
	}
	return out, nil
}

func (g *StripeGateway) CreateCustomer(ctx context.Context, req entities.GatewayCustomerRequest) (entities.GatewayCustomer, error) {
	params := &stripe.CustomerParams{}
	params.Context = ctx
	if req.Description != "" {
		params.Description = stripe.String(req.Description)
	}
	if req.Email != "" {
		params.Email = stripe.String(req.Email)
	}
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	c, err := g.sc.Customers.New(params)
	if err != nil {
		g.l.Warn("create customer failed", zap.String("email", req.Email), zap.Error(err))
		return entities.GatewayCustomer{}, toGatewayError(err)
	}
	g.l.Debug("customer created", zap.String("customer_id", c.ID))
	return entities.GatewayCustomer{ID: c.ID, Raw: rawBody(c.LastResponse, c)}, nil
}

func (g *StripeGateway) CreateCustomerSource(ctx context.Context, customerID string, req entities.GatewaySourceRequest) (entities.GatewaySource, error) {
	params := &stripe.PaymentSourceParams{
		Customer: stripe.String(customerID),
		Source:   &stripe.PaymentSourceSourceParams{Token: stripe.String(req.Source)},
	}
	params.Context = ctx
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	ps, err := g.sc.PaymentSources.New(params)
	if err != nil {
		g.l.Warn("create customer source failed", zap.String("customer_id", customerID), zap.Error(err))
		return entities.GatewaySource{}, toGatewayError(err)
	}

	out := entities.GatewaySource{
		ID:     ps.ID,
		Object: string(ps.Type),
		Raw:    rawBody(ps.LastResponse, ps),
	}
	if card := ps.Card; card != nil {
		out.Brand = string(card.Brand)
		out.Country = card.Country
		out.Last4 = card.Last4
		out.ExpMonth = card.ExpMonth
		out.ExpYear = card.ExpYear
		out.TokenizationMethod = string(card.TokenizationMethod)
	}
	return out, nil
}

func (g *StripeGateway) CreateCharge(ctx context.Context, req entities.GatewayChargeRequest) (entities.GatewayCharge, error) {
	params := &stripe.ChargeParams{
		Amount:              stripe.Int64(req.Amount),
		Currency:            stripe.String(req.Currency),
		Customer:            req.Customer,
		Description:         req.Description,
		StatementDescriptor: req.StatementDescriptor,
		Source:              &stripe.PaymentSourceSourceParams{Token: stripe.String(req.Source)},
	}
	params.Context = ctx
	if req.IdempotencyKey != "" {
		params.SetIdempotencyKey(req.IdempotencyKey)
	}
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	ch, err := g.sc.Charges.New(params)
	if err != nil {
		g.l.Warn("create charge failed", zap.Int64("amount", req.Amount), zap.String("currency", req.Currency), zap.Error(err))
		return entities.GatewayCharge{}, toGatewayError(err)
	}

	out := entities.GatewayCharge{ID: ch.ID, Raw: rawBody(ch.LastResponse, ch)}
	if ch.Source != nil {
		out.SourceID = ch.Source.ID
	}
	return out, nil
}

// toGatewayError lifts a *stripe.Error into a GatewayError carrying the
// response body. Transport and client-side failures pass through.
func toGatewayError(err error) error {
	var stripeErr *stripe.Error
	if !errors.As(err, &stripeErr) || stripeErr.Type == "" {
		return err
	}
	var raw json.RawMessage
	if stripeErr.LastResponse != nil && len(stripeErr.LastResponse.RawJSON) > 0 {
		raw = stripeErr.LastResponse.RawJSON
	} else if b, mErr := json.Marshal(map[string]any{"error": stripeErr}); mErr == nil {
		raw = b
	}
	return &entities.GatewayError{Type: string(stripeErr.Type), Raw: raw, Err: err}
}

func rawBody(resp *stripe.APIResponse, v any) json.RawMessage {
	if resp != nil && len(resp.RawJSON) > 0 {
		return resp.RawJSON
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return b
}
