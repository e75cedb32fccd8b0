package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"payment_gateway/internal/domain/entities"
	"payment_gateway/internal/infrastructure/metrics"
	"payment_gateway/internal/usecase/interfaces"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// IAccountLinker provisions the gateway customer + source pair behind a pay account.
type IAccountLinker interface {
	EnsureAccount(ctx context.Context, user entities.ChargeUser, token string) (entities.PayAccount, error)
	RejectAccount(ctx context.Context, account entities.PayAccount, cause error) entities.PayAccount
}

type AccountLinker struct {
	repo    interfaces.IPayAccountRepository
	gateway interfaces.IPaymentGateway
	locker  interfaces.IUserLocker

	newID func() string
	now   func() time.Time
	l     *zap.Logger
}

var _ IAccountLinker = (*AccountLinker)(nil)

// NewAccountLinker wires the linker. locker may be nil, in which case
// concurrent calls for the same user are not serialized.
func NewAccountLinker(repo interfaces.IPayAccountRepository, gateway interfaces.IPaymentGateway, locker interfaces.IUserLocker) *AccountLinker {
	return &AccountLinker{
		repo:    repo,
		gateway: gateway,
		locker:  locker,
		newID:   uuid.NewString,
		now:     func() time.Time { return time.Now().UTC() },
		l:       zap.L().Named("payment.account_linker"),
	}
}

// EnsureAccount attaches token as a new source on the user's gateway customer,
// creating the customer when the user has no approved pay account yet, and
// records the outcome as a pay account.
//
// The pending record and the gateway source are written concurrently. If
// either fails, the record is compensated by RejectAccount and the original
// error is returned.
func (l *AccountLinker) EnsureAccount(ctx context.Context, user entities.ChargeUser, token string) (entities.PayAccount, error) {
	log := l.l.With(zap.String("user_id", user.ID))

	if l.locker != nil {
		unlock, err := l.locker.Lock(ctx, user.ID)
		if err != nil {
			log.Warn("acquire user lock failed", zap.Error(err))
			return entities.PayAccount{}, err
		}
		defer unlock()
	}

	customerID, err := l.resolveCustomerID(ctx, user)
	if err != nil {
		return entities.PayAccount{}, err
	}

	now := l.now()
	account := entities.PayAccount{
		ID:              l.newID(),
		UserID:          user.ID,
		ServiceName:     entities.PayAccountServiceStripe,
		Status:          entities.PayAccountStatusPending,
		OriginalRequest: map[string]any{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	sourceReq := entities.GatewaySourceRequest{
		Source:   token,
		Metadata: map[string]string{"account_ref": account.ID},
	}
	if err := CaptureRequest(account.OriginalRequest, sourceReq); err != nil {
		log.Warn("capture source request failed", zap.String("account_id", account.ID), zap.Error(err))
	}

	var source entities.GatewaySource
	pending := account
	var g errgroup.Group
	g.Go(func() error {
		_, err := l.repo.Save(ctx, pending)
		return err
	})
	g.Go(func() error {
		var err error
		source, err = l.gateway.CreateCustomerSource(ctx, customerID, sourceReq)
		return err
	})
	if err := g.Wait(); err != nil {
		log.Warn("link pay account failed", zap.String("account_id", account.ID), zap.String("customer_id", customerID), zap.Error(err))
		// A source that did get created stays on the rejected record for cleanup.
		if source.ID != "" {
			account.GatewayCustomerID = customerID
			account.GatewaySourceID = source.ID
		}
		l.RejectAccount(ctx, account, err)
		return entities.PayAccount{}, err
	}

	approveAccount(&account, customerID, source)
	account.UpdatedAt = l.now()
	saved, err := l.repo.Save(ctx, account)
	if err != nil {
		log.Warn("save approved pay account failed", zap.String("account_id", account.ID), zap.Error(err))
		l.RejectAccount(ctx, account, err)
		return entities.PayAccount{}, err
	}

	metrics.ObservePayAccount(string(entities.PayAccountStatusApproved))
	log.Info("pay account approved",
		zap.String("account_id", saved.ID),
		zap.String("customer_id", saved.GatewayCustomerID),
		zap.String("source_id", saved.GatewaySourceID),
	)
	return saved, nil
}

// RejectAccount is the compensation step of EnsureAccount. It marks account
// rejected with whatever diagnostic cause carries and persists it. The gateway
// side is left as is. A failing save is logged and swallowed so cause stays
// the error the caller sees.
func (l *AccountLinker) RejectAccount(ctx context.Context, account entities.PayAccount, cause error) entities.PayAccount {
	account.Status = entities.PayAccountStatusRejected
	account.OriginalResponse = errorBody(cause)
	account.UpdatedAt = l.now()

	metrics.ObservePayAccount(string(entities.PayAccountStatusRejected))
	saved, err := l.repo.Save(ctx, account)
	if err != nil {
		l.l.Warn("save rejected pay account failed",
			zap.String("account_id", account.ID),
			zap.String("user_id", account.UserID),
			zap.NamedError("cause", cause),
			zap.Error(err),
		)
		return account
	}
	return saved
}

func (l *AccountLinker) resolveCustomerID(ctx context.Context, user entities.ChargeUser) (string, error) {
	existing, err := l.repo.FindApproved(ctx, user.ID, entities.PayAccountServiceStripe)
	if err != nil {
		l.l.Warn("find approved pay account failed", zap.String("user_id", user.ID), zap.Error(err))
		return "", err
	}
	if existing.ID != "" && existing.GatewayCustomerID != "" {
		return existing.GatewayCustomerID, nil
	}

	customer, err := l.gateway.CreateCustomer(ctx, entities.GatewayCustomerRequest{
		Description: strings.TrimSpace(user.FirstName + " " + user.LastName),
		Email:       user.Email,
		Metadata:    map[string]string{"user_id": user.ID},
	})
	if err != nil {
		l.l.Warn("create gateway customer failed", zap.String("user_id", user.ID), zap.Error(err))
		return "", err
	}
	return customer.ID, nil
}

func approveAccount(account *entities.PayAccount, customerID string, source entities.GatewaySource) {
	account.Status = entities.PayAccountStatusApproved
	account.GatewayCustomerID = customerID
	account.GatewaySourceID = source.ID
	account.CardMetadata = entities.CardMetadata{
		Type:         source.Object,
		Brand:        source.Brand,
		Country:      strings.ToUpper(source.Country),
		Last4:        source.Last4,
		Expiry:       formatExpiry(source.ExpMonth, source.ExpYear),
		WalletMethod: entities.WalletMethodFromTokenization(source.TokenizationMethod),
	}
}

// formatExpiry renders MMYY, or "" unless both parts are known.
func formatExpiry(month, year int64) string {
	if month <= 0 || year <= 0 {
		return ""
	}
	return fmt.Sprintf("%02d%02d", month, year%100)
}

func errorBody(err error) json.RawMessage {
	if gwErr, ok := entities.AsGatewayError(err); ok && len(gwErr.Raw) > 0 {
		return gwErr.Raw
	}
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	b, _ := json.Marshal(map[string]string{"error": msg})
	return b
}
