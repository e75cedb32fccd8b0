package request

import (
	"strings"

	"payment_gateway/internal/usecase"
)

type CreateTransactionRequest struct {
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Currency    string  `json:"currency" binding:"required"`
	Description string  `json:"description"`
}

// ChargeTransactionRequest charges a stored transaction. pay_account_id
// selects a linked account; otherwise token is charged.
type ChargeTransactionRequest struct {
	Token                string             `json:"token"`
	StatementDescription string             `json:"statement_description"`
	StoreAsAccount       bool               `json:"store_as_account"`
	PayAccountID         string             `json:"pay_account_id"`
	User                 *ChargeUserRequest `json:"user"`
}

func (r ChargeTransactionRequest) ToInput() usecase.ChargeTransactionInput {
	return usecase.ChargeTransactionInput{
		Token:                strings.TrimSpace(r.Token),
		StatementDescription: r.StatementDescription,
		StoreAsAccount:       r.StoreAsAccount,
		User:                 r.User.ToEntity(),
		PayAccountID:         strings.TrimSpace(r.PayAccountID),
	}
}
