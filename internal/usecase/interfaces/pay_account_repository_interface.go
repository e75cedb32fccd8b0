package interfaces

import (
	"context"

	"payment_gateway/internal/domain/entities"
)

// IPayAccountRepository abstracts DynamoDB persistence for PayAccount.
//
// Lookups return a zero PayAccount (empty ID) when nothing matches.

type IPayAccountRepository interface {
	FindApproved(ctx context.Context, userID, serviceName string) (entities.PayAccount, error)
	GetByID(ctx context.Context, id string) (entities.PayAccount, error)
	Save(ctx context.Context, a entities.PayAccount) (entities.PayAccount, error)
}
