package interfaces

import (
	"context"
	"time"

	"payment_gateway/internal/domain/entities"
)

// ITransactionRepository abstracts DynamoDB persistence for Transaction.
//
// The service must be able to:
//   - register a transaction before it is charged
//   - claim it so only one request charges it at a time
//   - reconcile the charge outcome (status, gateway ids, request/response) onto it
type ITransactionRepository interface {
	Create(ctx context.Context, t entities.Transaction) (entities.Transaction, error)
	GetByID(ctx context.Context, id string) (entities.Transaction, error)
	ClaimForCharge(ctx context.Context, id string, staleBefore time.Time) (entities.Transaction, error)
	SaveChargeOutcome(ctx context.Context, t entities.Transaction) (entities.Transaction, error)
}
