package payments

import (
	appconfig "payment_gateway/internal/infrastructure/config"
	"payment_gateway/internal/usecase/interfaces"
)

// NewGateway returns the mock gateway in mock mode, otherwise the Stripe one.
func NewGateway(cfg appconfig.PaymentConfig) (interfaces.IPaymentGateway, error) {
	if cfg.MockMode {
		return NewMockGateway(), nil
	}
	g, err := NewStripeGateway(cfg.StripeSecretKey)
	if err != nil {
		return nil, err
	}
	return g, nil
}
