package request

import (
	"strings"

	"payment_gateway/internal/domain/entities"
)

type ChargeUserRequest struct {
	ID        string `json:"id" binding:"required"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

func (u *ChargeUserRequest) ToEntity() *entities.ChargeUser {
	if u == nil {
		return nil
	}
	return &entities.ChargeUser{
		ID:        strings.TrimSpace(u.ID),
		FirstName: strings.TrimSpace(u.FirstName),
		LastName:  strings.TrimSpace(u.LastName),
		Email:     strings.TrimSpace(u.Email),
	}
}

// ChargeRequest charges a token once or, with store_as_account, links it to
// a pay account of user first.
type ChargeRequest struct {
	TransactionID        string             `json:"transaction_id" binding:"required"`
	Amount               float64            `json:"amount" binding:"required,gt=0"`
	Currency             string             `json:"currency" binding:"required,len=3"`
	Description          string             `json:"description"`
	Token                string             `json:"token" binding:"required"`
	StatementDescription string             `json:"statement_description"`
	StoreAsAccount       bool               `json:"store_as_account"`
	User                 *ChargeUserRequest `json:"user"`
}

func (r ChargeRequest) ToEntity() entities.ChargeRequest {
	return entities.ChargeRequest{
		Transaction: entities.ChargeTransaction{
			ID:          strings.TrimSpace(r.TransactionID),
			Amount:      r.Amount,
			Currency:    strings.TrimSpace(r.Currency),
			Description: strings.TrimSpace(r.Description),
		},
		Token:                strings.TrimSpace(r.Token),
		StatementDescription: r.StatementDescription,
		StoreAsAccount:       r.StoreAsAccount,
		User:                 r.User.ToEntity(),
		CapturedRequest:      map[string]any{},
	}
}
