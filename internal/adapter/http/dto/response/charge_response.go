package response

import (
	"encoding/json"

	"payment_gateway/internal/domain/entities"
)

type EchoResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type BalanceResponse struct {
	Amount   float64         `json:"amount"`
	Currency string          `json:"currency,omitempty"`
	Response json.RawMessage `json:"response,omitempty"`
}

type LinkedDataResponse struct {
	GatewayCustomerID string `json:"gateway_customer_id,omitempty"`
	GatewaySourceID   string `json:"gateway_source_id,omitempty"`
}

type ChargeResponse struct {
	Path                 string             `json:"path"`
	GatewayTransactionID string             `json:"gateway_transaction_id"`
	LinkedData           LinkedDataResponse `json:"linked_data"`
	Request              map[string]any     `json:"request,omitempty"`
	Response             json.RawMessage    `json:"response,omitempty"`
}

func FromEcho(e entities.EchoResult) EchoResponse {
	return EchoResponse{Success: e.Success, Message: e.Message}
}

func FromBalance(b entities.BalanceResult) BalanceResponse {
	return BalanceResponse{
		Amount:   b.Balance.Amount,
		Currency: b.Balance.Currency,
		Response: b.Response,
	}
}

func FromChargeResult(r entities.ChargeResult) ChargeResponse {
	return ChargeResponse{
		Path:                 string(r.Path),
		GatewayTransactionID: r.GatewayTransactionID,
		LinkedData: LinkedDataResponse{
			GatewayCustomerID: r.LinkedData.GatewayCustomerID,
			GatewaySourceID:   r.LinkedData.GatewaySourceID,
		},
		Request:  r.Request,
		Response: r.Response,
	}
}
