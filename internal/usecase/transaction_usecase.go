package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"payment_gateway/internal/domain/entities"
	"payment_gateway/internal/usecase/interfaces"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// chargeClaimTTL is how long a processing claim is honored before another
// request may take the transaction over.
const chargeClaimTTL = 10 * time.Minute

var (
	ErrTransactionNotFound         = errors.New("transaction not found")
	ErrTransactionAlreadyCharged   = errors.New("transaction already charged")
	ErrTransactionChargeInProgress = errors.New("transaction charge in progress")
	ErrInvalidTransactionID        = errors.New("invalid transaction id")
	ErrInvalidTransactionAmount    = errors.New("invalid transaction amount")
	ErrInvalidCurrency             = errors.New("invalid currency")
	ErrPayAccountNotFound          = errors.New("pay account not found")
	ErrPayAccountNotApproved       = errors.New("pay account not approved")
	ErrChargeClaimLost             = errors.New("transaction claim lost before outcome was saved")
)

// ChargeNotRecordedError reports a charge the gateway accepted that could not
// be written back onto its transaction. The card has been charged.
type ChargeNotRecordedError struct {
	TransactionID        string
	GatewayTransactionID string
	Err                  error
}

func (e *ChargeNotRecordedError) Error() string {
	return fmt.Sprintf("charge %s for transaction %s not recorded: %v", e.GatewayTransactionID, e.TransactionID, e.Err)
}

func (e *ChargeNotRecordedError) Unwrap() error {
	return e.Err
}

// ChargeTransactionInput selects how a stored transaction is charged.
// PayAccountID charges a previously linked pay account of User; otherwise
// Token is charged once or, with StoreAsAccount, linked to a new pay account
// first.
type ChargeTransactionInput struct {
	Token                string
	StatementDescription string
	StoreAsAccount       bool
	User                 *entities.ChargeUser
	PayAccountID         string
}

// ITransactionUseCase owns the caller-side transaction record and reconciles
// charge outcomes into it.
type ITransactionUseCase interface {
	CreateTransaction(ctx context.Context, amount float64, currency, description string) (entities.Transaction, error)
	GetByID(ctx context.Context, id string) (entities.Transaction, error)
	ChargeTransaction(ctx context.Context, id string, in ChargeTransactionInput) (entities.Transaction, error)
}

type TransactionUseCase struct {
	repo           interfaces.ITransactionRepository
	payAccountRepo interfaces.IPayAccountRepository
	charges        IChargeUseCase
	l              *zap.Logger
}

var _ ITransactionUseCase = (*TransactionUseCase)(nil)

func NewTransactionUseCase(repo interfaces.ITransactionRepository, payAccountRepo interfaces.IPayAccountRepository, charges IChargeUseCase) *TransactionUseCase {
	return &TransactionUseCase{
		repo:           repo,
		payAccountRepo: payAccountRepo,
		charges:        charges,
		l:              zap.L().Named("payment.transactions"),
	}
}

func (u *TransactionUseCase) CreateTransaction(ctx context.Context, amount float64, currency, description string) (entities.Transaction, error) {
	if amount <= 0 {
		return entities.Transaction{}, ErrInvalidTransactionAmount
	}
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if len(currency) != 3 {
		return entities.Transaction{}, ErrInvalidCurrency
	}

	now := time.Now().UTC()
	t := entities.Transaction{
		ID:          uuid.NewString(),
		Amount:      amount,
		Currency:    currency,
		Description: strings.TrimSpace(description),
		Status:      entities.TransactionStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return u.repo.Create(ctx, t)
}

func (u *TransactionUseCase) GetByID(ctx context.Context, id string) (entities.Transaction, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Transaction{}, ErrInvalidTransactionID
	}

	t, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Transaction{}, err
	}
	if t.ID == "" {
		return entities.Transaction{}, ErrTransactionNotFound
	}
	return t, nil
}

// ChargeTransaction charges a stored transaction and writes the outcome back
// onto it.
//
// The transaction is claimed before the gateway is called, so concurrent
// requests cannot both charge it, and each claim charges under its own
// idempotency key. A rejected charge leaves the transaction failed with the
// gateway error body; the charge error is returned either way. A successful
// charge that cannot be recorded is reported as *ChargeNotRecordedError.
func (u *TransactionUseCase) ChargeTransaction(ctx context.Context, id string, in ChargeTransactionInput) (entities.Transaction, error) {
	t, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Transaction{}, err
	}
	if t.Status == entities.TransactionStatusCharged {
		return entities.Transaction{}, ErrTransactionAlreadyCharged
	}
	log := u.l.With(zap.String("transaction_id", t.ID))

	req := entities.ChargeRequest{
		Transaction: entities.ChargeTransaction{
			ID:          t.ID,
			Amount:      t.Amount,
			Currency:    t.Currency,
			Description: t.Description,
		},
		Token:                strings.TrimSpace(in.Token),
		StatementDescription: in.StatementDescription,
		StoreAsAccount:       in.StoreAsAccount,
		User:                 in.User,
		CapturedRequest:      map[string]any{},
	}

	if payAccountID := strings.TrimSpace(in.PayAccountID); payAccountID != "" {
		if in.User == nil || strings.TrimSpace(in.User.ID) == "" {
			return entities.Transaction{}, fmt.Errorf("%w: pay account charge requires a user", ErrInvalidChargeRequest)
		}
		account, err := u.loadChargeableAccount(ctx, payAccountID, strings.TrimSpace(in.User.ID))
		if err != nil {
			return entities.Transaction{}, err
		}
		req.Transaction.Paid = true
		req.ExistingAccount = &account
		t.PayAccountID = account.ID
	}
	if _, err := selectChargePath(req); err != nil {
		return entities.Transaction{}, err
	}

	claimed, err := u.repo.ClaimForCharge(ctx, t.ID, time.Now().UTC().Add(-chargeClaimTTL))
	if err != nil {
		return entities.Transaction{}, err
	}
	if claimed.ID == "" {
		log.Info("transaction claim refused", zap.String("status", string(t.Status)))
		return entities.Transaction{}, ErrTransactionChargeInProgress
	}
	t.ChargeAttempts = claimed.ChargeAttempts
	req.IdempotencyKey = fmt.Sprintf("%s-%d", t.ID, t.ChargeAttempts)
	log = log.With(zap.Int("attempt", t.ChargeAttempts))

	res, err := u.charges.Charge(ctx, req)
	if err != nil {
		t.Status = entities.TransactionStatusFailed
		t.ChargeRequest = req.CapturedRequest
		var chargeErr *entities.ChargeError
		if errors.As(err, &chargeErr) {
			t.ChargeResponse = chargeErr.Response
		}
		t.UpdatedAt = time.Now().UTC()
		saved, saveErr := u.repo.SaveChargeOutcome(ctx, t)
		switch {
		case saveErr != nil:
			log.Warn("save failed charge outcome failed", zap.NamedError("cause", err), zap.Error(saveErr))
		case saved.ID == "":
			log.Warn("failed charge outcome dropped, claim lost", zap.NamedError("cause", err))
		}
		return entities.Transaction{}, err
	}

	t.Status = entities.TransactionStatusCharged
	t.GatewayTransactionID = res.GatewayTransactionID
	t.GatewayCustomerID = res.LinkedData.GatewayCustomerID
	t.GatewaySourceID = res.LinkedData.GatewaySourceID
	t.ChargeRequest = res.Request
	t.ChargeResponse = res.Response
	t.UpdatedAt = time.Now().UTC()

	saved, err := u.repo.SaveChargeOutcome(ctx, t)
	if err == nil && saved.ID == "" {
		err = ErrChargeClaimLost
	}
	if err != nil {
		log.Error("charge succeeded but outcome was not saved",
			zap.String("gateway_transaction_id", res.GatewayTransactionID),
			zap.Error(err),
		)
		return entities.Transaction{}, &ChargeNotRecordedError{
			TransactionID:        t.ID,
			GatewayTransactionID: res.GatewayTransactionID,
			Err:                  err,
		}
	}
	return saved, nil
}

func (u *TransactionUseCase) loadChargeableAccount(ctx context.Context, id, userID string) (entities.PayAccount, error) {
	account, err := u.payAccountRepo.GetByID(ctx, id)
	if err != nil {
		return entities.PayAccount{}, err
	}
	if account.ID == "" || account.UserID != userID {
		return entities.PayAccount{}, ErrPayAccountNotFound
	}
	if !account.IsApproved() {
		return entities.PayAccount{}, ErrPayAccountNotApproved
	}
	return account, nil
}
