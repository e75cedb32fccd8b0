package interfaces

import (
	"context"

	"payment_gateway/internal/domain/entities"
)

// IPaymentGateway abstracts the card-processing API (Stripe).
//
// Failures the gateway reports in a structured way are returned as
// *entities.GatewayError so callers can attach the raw body to their result.
type IPaymentGateway interface {
	RetrieveBalance(ctx context.Context) (entities.GatewayBalance, error)
	CreateCustomer(ctx context.Context, req entities.GatewayCustomerRequest) (entities.GatewayCustomer, error)
	CreateCustomerSource(ctx context.Context, customerID string, req entities.GatewaySourceRequest) (entities.GatewaySource, error)
	CreateCharge(ctx context.Context, req entities.GatewayChargeRequest) (entities.GatewayCharge, error)
}
