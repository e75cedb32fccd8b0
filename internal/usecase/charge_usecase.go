package usecase

import (
	"context"
	"errors"
	"strings"

	"payment_gateway/internal/domain/entities"
	"payment_gateway/internal/domain/money"
	"payment_gateway/internal/infrastructure/metrics"
	"payment_gateway/internal/usecase/interfaces"

	"go.uber.org/zap"
)

const statementDescriptorMaxLen = 22

var (
	ErrInvalidChargeRequest     = errors.New("invalid charge request")
	ErrPaymentGatewayNotDefined = errors.New("payment gateway not configured")
)

// IChargeUseCase is the caller-facing surface of the gateway adapter.
//
// Charge selects one of three paths:
//   - linked account: the transaction is already linked, charge ExistingAccount
//   - one time: charge Token directly, nothing is stored
//   - store account: link Token to a pay account first, then charge it
type IChargeUseCase interface {
	Echo(ctx context.Context) entities.EchoResult
	GetBalance(ctx context.Context) (entities.BalanceResult, error)
	Charge(ctx context.Context, req entities.ChargeRequest) (entities.ChargeResult, error)
}

type ChargeUseCase struct {
	gateway interfaces.IPaymentGateway
	linker  IAccountLinker
	l       *zap.Logger
}

var _ IChargeUseCase = (*ChargeUseCase)(nil)

func NewChargeUseCase(gateway interfaces.IPaymentGateway, linker IAccountLinker) *ChargeUseCase {
	return &ChargeUseCase{
		gateway: gateway,
		linker:  linker,
		l:       zap.L().Named("payment.usecase"),
	}
}

func (u *ChargeUseCase) Echo(_ context.Context) entities.EchoResult {
	return entities.EchoResult{Success: true, Message: "ok"}
}

// GetBalance reports the first available balance entry, converted from the
// gateway's minor units.
func (u *ChargeUseCase) GetBalance(ctx context.Context) (entities.BalanceResult, error) {
	if u.gateway == nil {
		return entities.BalanceResult{}, ErrPaymentGatewayNotDefined
	}

	bal, err := u.gateway.RetrieveBalance(ctx)
	if err != nil {
		u.l.Warn("retrieve balance failed", zap.Error(err))
		return entities.BalanceResult{}, err
	}

	res := entities.BalanceResult{Response: bal.Raw}
	if len(bal.Available) > 0 {
		first := bal.Available[0]
		res.Balance = entities.Balance{
			Amount:   money.FromGatewayAmount(first.Amount, first.Currency),
			Currency: strings.ToUpper(first.Currency),
		}
	}
	return res, nil
}

// Charge performs exactly one charge attempt.
//
// A structured gateway rejection is returned as *entities.ChargeError carrying
// the captured request and the gateway's raw error body. Every other failure
// (validation, persistence, locking) is returned unchanged.
func (u *ChargeUseCase) Charge(ctx context.Context, req entities.ChargeRequest) (entities.ChargeResult, error) {
	log := u.l.With(zap.String("transaction_id", req.Transaction.ID))

	path, err := selectChargePath(req)
	if err != nil {
		log.Warn("invalid charge request", zap.Error(err))
		metrics.ObserveCharge("", metrics.OutcomeInvalidRequest)
		return entities.ChargeResult{}, err
	}
	if u.gateway == nil {
		return entities.ChargeResult{}, ErrPaymentGatewayNotDefined
	}
	log = log.With(zap.String("path", string(path)))
	log.Info("charge start", zap.Float64("amount", req.Transaction.Amount), zap.String("currency", req.Transaction.Currency))

	var customerID, sourceID string
	switch path {
	case entities.ChargePathLinkedAccount:
		customerID = req.ExistingAccount.GatewayCustomerID
		sourceID = req.ExistingAccount.GatewaySourceID
	case entities.ChargePathOneTime:
		sourceID = req.Token
	case entities.ChargePathStoreAccount:
		if u.linker == nil {
			return entities.ChargeResult{}, errors.New("account linker not configured")
		}
		account, err := u.linker.EnsureAccount(ctx, *req.User, req.Token)
		if err != nil {
			log.Warn("ensure pay account failed", zap.Error(err))
			return entities.ChargeResult{}, u.normalizeError(path, nil, err)
		}
		customerID = account.GatewayCustomerID
		sourceID = account.GatewaySourceID
	}

	payload := buildChargePayload(req, customerID, sourceID)
	captured := req.CapturedRequest
	if captured == nil {
		captured = map[string]any{}
	}
	if err := CaptureRequest(captured, payload); err != nil {
		log.Warn("capture charge request failed", zap.Error(err))
	}

	charge, err := u.gateway.CreateCharge(ctx, payload)
	if err != nil {
		log.Warn("gateway charge failed", zap.Error(err))
		return entities.ChargeResult{}, u.normalizeError(path, captured, err)
	}

	res := entities.ChargeResult{
		Path:                 path,
		Request:              captured,
		Response:             charge.Raw,
		GatewayTransactionID: charge.ID,
		LinkedData: entities.LinkedData{
			GatewayCustomerID: customerID,
			GatewaySourceID:   charge.SourceID,
		},
	}
	metrics.ObserveCharge(string(path), metrics.OutcomeSuccess)
	log.Info("charge success", zap.String("gateway_transaction_id", charge.ID))
	return res, nil
}

func (u *ChargeUseCase) normalizeError(path entities.ChargePath, request map[string]any, err error) error {
	gwErr, ok := entities.AsGatewayError(err)
	if !ok {
		metrics.ObserveCharge(string(path), metrics.OutcomeInternalError)
		return err
	}
	metrics.ObserveCharge(string(path), metrics.OutcomeGatewayError)
	return &entities.ChargeError{
		Request:  request,
		Response: gwErr.Raw,
		Err:      err,
	}
}

func selectChargePath(req entities.ChargeRequest) (entities.ChargePath, error) {
	if req.Transaction.Paid {
		if req.ExistingAccount == nil {
			return "", ErrInvalidChargeRequest
		}
		return entities.ChargePathLinkedAccount, nil
	}
	if req.Token == "" {
		return "", ErrInvalidChargeRequest
	}
	if !req.StoreAsAccount {
		return entities.ChargePathOneTime, nil
	}
	if req.User == nil || req.User.ID == "" {
		return "", ErrInvalidChargeRequest
	}
	return entities.ChargePathStoreAccount, nil
}

func buildChargePayload(req entities.ChargeRequest, customerID, sourceID string) entities.GatewayChargeRequest {
	payload := entities.GatewayChargeRequest{
		Amount:   money.ToGatewayAmount(req.Transaction.Amount, req.Transaction.Currency),
		Currency: strings.ToLower(req.Transaction.Currency),
		Source:   sourceID,
		Metadata: map[string]string{"transaction_ref": req.Transaction.ID},
	}
	payload.IdempotencyKey = req.IdempotencyKey
	if customerID != "" {
		payload.Customer = &customerID
	}
	if req.Transaction.Description != "" {
		desc := req.Transaction.Description
		payload.Description = &desc
	}
	if sd := truncateRunes(req.StatementDescription, statementDescriptorMaxLen); sd != "" {
		payload.StatementDescriptor = &sd
	}
	return payload
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
