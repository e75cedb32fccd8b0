package payments

import (
	"context"
	"strings"
	"testing"

	"payment_gateway/internal/domain/entities"
	appconfig "payment_gateway/internal/infrastructure/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockGateway_HappyPath(t *testing.T) {
	g := NewMockGateway()
	ctx := context.Background()

	bal, err := g.RetrieveBalance(ctx)
	require.NoError(t, err)
	require.Len(t, bal.Available, 1)
	assert.Equal(t, "usd", bal.Available[0].Currency)

	c, err := g.CreateCustomer(ctx, entities.GatewayCustomerRequest{Email: "ada@test.com"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(c.ID, "cus_mock_"))

	src, err := g.CreateCustomerSource(ctx, c.ID, entities.GatewaySourceRequest{Source: "tok_visa_ApplePay"})
	require.NoError(t, err)
	assert.Equal(t, "card", src.Object)
	assert.Equal(t, "apple_pay", src.TokenizationMethod)

	ch, err := g.CreateCharge(ctx, entities.GatewayChargeRequest{Amount: 1000, Currency: "usd", Customer: &c.ID, Source: src.ID})
	require.NoError(t, err)
	assert.Equal(t, src.ID, ch.SourceID)
	assert.Contains(t, string(ch.Raw), `"amount":1000`)
}

func TestMockGateway_Declines(t *testing.T) {
	g := NewMockGateway()

	_, err := g.CreateCharge(context.Background(), entities.GatewayChargeRequest{Amount: 1000, Currency: "usd", Source: "tok_chargeDeclinedInsufficientFunds"})
	gwErr, ok := entities.AsGatewayError(err)
	require.True(t, ok)
	assert.Equal(t, "card_error", gwErr.Type)
	assert.Contains(t, string(gwErr.Raw), "insufficient_funds")

	_, err = g.CreateCustomerSource(context.Background(), "cus_1", entities.GatewaySourceRequest{Source: "tok_chargeDeclined"})
	_, ok = entities.AsGatewayError(err)
	assert.True(t, ok)
}

func TestMockGateway_IdempotentCharge(t *testing.T) {
	g := NewMockGateway()
	ctx := context.Background()
	req := entities.GatewayChargeRequest{Amount: 1000, Currency: "usd", Source: "tok_visa", IdempotencyKey: "tx-1-1"}

	first, err := g.CreateCharge(ctx, req)
	require.NoError(t, err)
	again, err := g.CreateCharge(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)

	req.IdempotencyKey = "tx-1-2"
	other, err := g.CreateCharge(ctx, req)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, other.ID)

	declined := entities.GatewayChargeRequest{Amount: 1000, Currency: "usd", Source: "tok_chargeDeclined", IdempotencyKey: "tx-2-1"}
	_, err1 := g.CreateCharge(ctx, declined)
	_, err2 := g.CreateCharge(ctx, declined)
	require.Error(t, err1)
	assert.Same(t, err1, err2)
}

func TestNewGateway(t *testing.T) {
	g, err := NewGateway(appconfig.PaymentConfig{MockMode: true})
	require.NoError(t, err)
	assert.IsType(t, &MockGateway{}, g)

	g, err = NewGateway(appconfig.PaymentConfig{StripeSecretKey: "sk_test_123"})
	require.NoError(t, err)
	assert.IsType(t, &StripeGateway{}, g)

	g, err = NewGateway(appconfig.PaymentConfig{})
	assert.ErrorIs(t, err, ErrMissingStripeSecretKey)
	assert.Nil(t, g)
}
