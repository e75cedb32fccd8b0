package payments

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"payment_gateway/internal/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76"
)

type capturedCall struct {
	method         string
	path           string
	form           url.Values
	idempotencyKey string
}

func newTestStripeGateway(t *testing.T, handler func(w http.ResponseWriter, call capturedCall)) (*StripeGateway, *[]capturedCall) {
	t.Helper()
	calls := &[]capturedCall{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		form, _ := url.ParseQuery(string(body))
		call := capturedCall{method: r.Method, path: r.URL.Path, form: form, idempotencyKey: r.Header.Get("Idempotency-Key")}
		*calls = append(*calls, call)
		w.Header().Set("Content-Type", "application/json")
		handler(w, call)
	}))
	t.Cleanup(srv.Close)

	backends := &stripe.Backends{
		API: stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
			URL:               stripe.String(srv.URL),
			MaxNetworkRetries: stripe.Int64(0),
			LeveledLogger:     &stripe.LeveledLogger{Level: stripe.LevelNull},
		}),
	}
	g, err := newStripeGateway("sk_test_123", backends)
	require.NoError(t, err)
	return g, calls
}

func TestNewStripeGateway_MissingKey(t *testing.T) {
	_, err := NewStripeGateway("")
	assert.ErrorIs(t, err, ErrMissingStripeSecretKey)
}

func TestStripeGateway_RetrieveBalance(t *testing.T) {
	body := `{"object":"balance","available":[{"amount":2550,"currency":"usd"}],"pending":[]}`
	g, calls := newTestStripeGateway(t, func(w http.ResponseWriter, _ capturedCall) {
		io.WriteString(w, body)
	})

	bal, err := g.RetrieveBalance(context.Background())
	require.NoError(t, err)
	require.Len(t, bal.Available, 1)
	assert.Equal(t, int64(2550), bal.Available[0].Amount)
	assert.Equal(t, "usd", bal.Available[0].Currency)
	assert.JSONEq(t, body, string(bal.Raw))
	assert.Equal(t, "/v1/balance", (*calls)[0].path)
}

func TestStripeGateway_CreateCustomer(t *testing.T) {
	g, calls := newTestStripeGateway(t, func(w http.ResponseWriter, _ capturedCall) {
		io.WriteString(w, `{"id":"cus_1","object":"customer"}`)
	})

	c, err := g.CreateCustomer(context.Background(), entities.GatewayCustomerRequest{
		Description: "Ada Lovelace",
		Email:       "ada@test.com",
		Metadata:    map[string]string{"user_id": "u1"},
	})
	require.NoError(t, err)
	assert.Equal(t, "cus_1", c.ID)

	call := (*calls)[0]
	assert.Equal(t, http.MethodPost, call.method)
	assert.Equal(t, "/v1/customers", call.path)
	assert.Equal(t, "Ada Lovelace", call.form.Get("description"))
	assert.Equal(t, "ada@test.com", call.form.Get("email"))
	assert.Equal(t, "u1", call.form.Get("metadata[user_id]"))
}

func TestStripeGateway_CreateCustomerSource(t *testing.T) {
	g, calls := newTestStripeGateway(t, func(w http.ResponseWriter, _ capturedCall) {
		io.WriteString(w, `{"id":"card_1","object":"card","brand":"Visa","country":"us","last4":"4242","exp_month":4,"exp_year":2031,"tokenization_method":"apple_pay"}`)
	})

	src, err := g.CreateCustomerSource(context.Background(), "cus_1", entities.GatewaySourceRequest{
		Source:   "tok_visa",
		Metadata: map[string]string{"account_ref": "pa-1"},
	})
	require.NoError(t, err)
	assert.Equal(t, entities.GatewaySource{
		ID:                 "card_1",
		Object:             "card",
		Brand:              "Visa",
		Country:            "us",
		Last4:              "4242",
		ExpMonth:           4,
		ExpYear:            2031,
		TokenizationMethod: "apple_pay",
		Raw:                src.Raw,
	}, src)

	call := (*calls)[0]
	assert.Equal(t, "/v1/customers/cus_1/sources", call.path)
	assert.Equal(t, "tok_visa", call.form.Get("source"))
	assert.Equal(t, "pa-1", call.form.Get("metadata[account_ref]"))
}

func TestStripeGateway_CreateCharge(t *testing.T) {
	g, calls := newTestStripeGateway(t, func(w http.ResponseWriter, _ capturedCall) {
		io.WriteString(w, `{"id":"ch_1","object":"charge","paid":true,"source":{"id":"card_1","object":"card"}}`)
	})

	customer := "cus_1"
	desc := "Order 42"
	ch, err := g.CreateCharge(context.Background(), entities.GatewayChargeRequest{
		Amount:         1000,
		Currency:       "usd",
		Customer:       &customer,
		Source:         "card_1",
		Description:    &desc,
		Metadata:       map[string]string{"transaction_ref": "tx-1"},
		IdempotencyKey: "tx-1-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "ch_1", ch.ID)
	assert.Equal(t, "card_1", ch.SourceID)
	assert.Contains(t, string(ch.Raw), `"ch_1"`)

	call := (*calls)[0]
	assert.Equal(t, "/v1/charges", call.path)
	assert.Equal(t, "1000", call.form.Get("amount"))
	assert.Equal(t, "usd", call.form.Get("currency"))
	assert.Equal(t, "cus_1", call.form.Get("customer"))
	assert.Equal(t, "card_1", call.form.Get("source"))
	assert.Equal(t, "Order 42", call.form.Get("description"))
	assert.Equal(t, "tx-1", call.form.Get("metadata[transaction_ref]"))
	assert.False(t, call.form.Has("statement_descriptor"))
	assert.Equal(t, "tx-1-1", call.idempotencyKey)
	assert.False(t, call.form.Has("idempotency_key"))
}

func TestStripeGateway_CreateCharge_SourceNotReturned(t *testing.T) {
	g, _ := newTestStripeGateway(t, func(w http.ResponseWriter, _ capturedCall) {
		io.WriteString(w, `{"id":"ch_2","object":"charge","paid":true,"payment_method":"card_2"}`)
	})

	ch, err := g.CreateCharge(context.Background(), entities.GatewayChargeRequest{Amount: 1000, Currency: "usd", Source: "tok_visa"})
	require.NoError(t, err)
	assert.Equal(t, "ch_2", ch.ID)
	assert.Equal(t, "", ch.SourceID)
}

func TestStripeGateway_CreateCharge_Declined(t *testing.T) {
	body := `{"error":{"type":"card_error","code":"card_declined","message":"Your card was declined."}}`
	g, _ := newTestStripeGateway(t, func(w http.ResponseWriter, _ capturedCall) {
		w.WriteHeader(http.StatusPaymentRequired)
		io.WriteString(w, body)
	})

	_, err := g.CreateCharge(context.Background(), entities.GatewayChargeRequest{Amount: 1000, Currency: "usd", Source: "tok_chargeDeclined"})
	require.Error(t, err)

	gwErr, ok := entities.AsGatewayError(err)
	require.True(t, ok)
	assert.Equal(t, "card_error", gwErr.Type)
	assert.JSONEq(t, body, string(gwErr.Raw))

	var stripeErr *stripe.Error
	assert.True(t, errors.As(err, &stripeErr))
}

func TestToGatewayError(t *testing.T) {
	plain := errors.New("dial tcp: connection refused")
	assert.Same(t, plain, toGatewayError(plain))

	stripeErr := &stripe.Error{Type: stripe.ErrorTypeInvalidRequest, Msg: "No such token"}
	gwErr, ok := entities.AsGatewayError(toGatewayError(stripeErr))
	require.True(t, ok)
	assert.Equal(t, "invalid_request_error", gwErr.Type)
	assert.Contains(t, string(gwErr.Raw), "No such token")
}
