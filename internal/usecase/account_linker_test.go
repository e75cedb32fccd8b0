package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"payment_gateway/internal/domain/entities"
	mock_interfaces "payment_gateway/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

var testUser = entities.ChargeUser{ID: "u1", FirstName: "Ada", LastName: "Lovelace", Email: "ada@test.com"}

type savedAccounts struct {
	mu    sync.Mutex
	items []entities.PayAccount
}

func (s *savedAccounts) record(failOn map[int]error) func(context.Context, entities.PayAccount) (entities.PayAccount, error) {
	return func(_ context.Context, a entities.PayAccount) (entities.PayAccount, error) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.items = append(s.items, a)
		if err, ok := failOn[len(s.items)]; ok {
			return entities.PayAccount{}, err
		}
		return a, nil
	}
}

func (s *savedAccounts) statuses() []entities.PayAccountStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entities.PayAccountStatus, 0, len(s.items))
	for _, a := range s.items {
		out = append(out, a.Status)
	}
	return out
}

func (s *savedAccounts) last() entities.PayAccount {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items[len(s.items)-1]
}

func newTestLinker(repo *mock_interfaces.MockIPayAccountRepository, gateway *mock_interfaces.MockIPaymentGateway, locker *mock_interfaces.MockIUserLocker) *AccountLinker {
	var l *AccountLinker
	if locker != nil {
		l = NewAccountLinker(repo, gateway, locker)
	} else {
		l = NewAccountLinker(repo, gateway, nil)
	}
	l.newID = func() string { return "pa-1" }
	l.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	return l
}

func visaSource() entities.GatewaySource {
	return entities.GatewaySource{
		ID:                 "card_1",
		Object:             "card",
		Brand:              "Visa",
		Country:            "us",
		Last4:              "4242",
		ExpMonth:           4,
		ExpYear:            2031,
		TokenizationMethod: "apple_pay",
	}
}

func TestAccountLinker_EnsureAccount_Success(t *testing.T) {
	t.Run("reuses customer of approved account", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPayAccountRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		linker := newTestLinker(repo, gateway, nil)
		saved := &savedAccounts{}

		repo.EXPECT().FindApproved(gomock.Any(), "u1", entities.PayAccountServiceStripe).
			Return(entities.PayAccount{ID: "pa-old", GatewayCustomerID: "cus_1", Status: entities.PayAccountStatusApproved}, nil)
		repo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(saved.record(nil)).Times(2)
		gateway.EXPECT().CreateCustomerSource(gomock.Any(), "cus_1", entities.GatewaySourceRequest{
			Source:   "tok_visa",
			Metadata: map[string]string{"account_ref": "pa-1"},
		}).Return(visaSource(), nil)

		account, err := linker.EnsureAccount(context.Background(), testUser, "tok_visa")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if account.ID != "pa-1" || account.UserID != "u1" || account.ServiceName != "stripe" {
			t.Fatalf("unexpected account identity: %+v", account)
		}
		if account.Status != entities.PayAccountStatusApproved {
			t.Fatalf("expected approved, got %s", account.Status)
		}
		if account.GatewayCustomerID != "cus_1" || account.GatewaySourceID != "card_1" {
			t.Fatalf("unexpected gateway ids: %+v", account)
		}
		want := entities.CardMetadata{Type: "card", Brand: "Visa", Country: "US", Last4: "4242", Expiry: "0431", WalletMethod: entities.WalletMethodApplePay}
		if account.CardMetadata != want {
			t.Fatalf("expected %+v, got %+v", want, account.CardMetadata)
		}
		if account.OriginalRequest["source"] != "tok_visa" {
			t.Fatalf("expected captured source request, got %+v", account.OriginalRequest)
		}
		got := saved.statuses()
		if len(got) != 2 || got[0] != entities.PayAccountStatusPending || got[1] != entities.PayAccountStatusApproved {
			t.Fatalf("expected pending then approved saves, got %v", got)
		}
	})

	t.Run("creates customer without source when none approved", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPayAccountRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		linker := newTestLinker(repo, gateway, nil)
		saved := &savedAccounts{}

		repo.EXPECT().FindApproved(gomock.Any(), "u1", entities.PayAccountServiceStripe).Return(entities.PayAccount{}, nil)
		gateway.EXPECT().CreateCustomer(gomock.Any(), entities.GatewayCustomerRequest{
			Description: "Ada Lovelace",
			Email:       "ada@test.com",
			Metadata:    map[string]string{"user_id": "u1"},
		}).Return(entities.GatewayCustomer{ID: "cus_new"}, nil)
		repo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(saved.record(nil)).Times(2)
		gateway.EXPECT().CreateCustomerSource(gomock.Any(), "cus_new", gomock.Any()).
			Return(entities.GatewaySource{ID: "card_2", Object: "card"}, nil)

		account, err := linker.EnsureAccount(context.Background(), testUser, "tok_visa")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if account.GatewayCustomerID != "cus_new" || account.GatewaySourceID != "card_2" {
			t.Fatalf("unexpected gateway ids: %+v", account)
		}
		if account.CardMetadata.Expiry != "" || account.CardMetadata.Country != "" || account.CardMetadata.WalletMethod != entities.WalletMethodNone {
			t.Fatalf("absent source fields should stay empty: %+v", account.CardMetadata)
		}
	})

	t.Run("runs under user lock", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPayAccountRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		locker := mock_interfaces.NewMockIUserLocker(ctrl)
		linker := newTestLinker(repo, gateway, locker)
		saved := &savedAccounts{}

		unlocked := false
		locker.EXPECT().Lock(gomock.Any(), "u1").Return(func() { unlocked = true }, nil)
		repo.EXPECT().FindApproved(gomock.Any(), "u1", gomock.Any()).Return(entities.PayAccount{ID: "pa-old", GatewayCustomerID: "cus_1"}, nil)
		repo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(saved.record(nil)).Times(2)
		gateway.EXPECT().CreateCustomerSource(gomock.Any(), "cus_1", gomock.Any()).Return(visaSource(), nil)

		if _, err := linker.EnsureAccount(context.Background(), testUser, "tok_visa"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !unlocked {
			t.Fatalf("expected lock to be released")
		}
	})
}

func TestAccountLinker_EnsureAccount_Failures(t *testing.T) {
	t.Run("source creation rejected by gateway", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPayAccountRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		linker := newTestLinker(repo, gateway, nil)
		saved := &savedAccounts{}

		gwErr := &entities.GatewayError{Type: "card_error", Raw: json.RawMessage(`{"type":"card_error","code":"card_declined"}`), Err: errors.New("declined")}
		repo.EXPECT().FindApproved(gomock.Any(), "u1", gomock.Any()).Return(entities.PayAccount{ID: "pa-old", GatewayCustomerID: "cus_1"}, nil)
		repo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(saved.record(nil)).Times(2)
		gateway.EXPECT().CreateCustomerSource(gomock.Any(), "cus_1", gomock.Any()).Return(entities.GatewaySource{}, gwErr)

		_, err := linker.EnsureAccount(context.Background(), testUser, "tok_bad")
		if err != gwErr {
			t.Fatalf("expected original gateway error, got %v", err)
		}
		rejected := saved.last()
		if rejected.Status != entities.PayAccountStatusRejected {
			t.Fatalf("expected rejected, got %s", rejected.Status)
		}
		if string(rejected.OriginalResponse) != `{"type":"card_error","code":"card_declined"}` {
			t.Fatalf("expected raw gateway body, got %s", rejected.OriginalResponse)
		}
		if rejected.OriginalRequest["source"] != "tok_bad" {
			t.Fatalf("expected captured request, got %+v", rejected.OriginalRequest)
		}
		if rejected.GatewaySourceID != "" {
			t.Fatalf("rejected account must not carry a source id: %+v", rejected)
		}
	})

	t.Run("pending save fails", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPayAccountRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		linker := newTestLinker(repo, gateway, nil)
		saved := &savedAccounts{}
		dbErr := errors.New("db down")

		repo.EXPECT().FindApproved(gomock.Any(), "u1", gomock.Any()).Return(entities.PayAccount{ID: "pa-old", GatewayCustomerID: "cus_1"}, nil)
		repo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(saved.record(map[int]error{1: dbErr})).Times(2)
		gateway.EXPECT().CreateCustomerSource(gomock.Any(), "cus_1", gomock.Any()).Return(visaSource(), nil)

		_, err := linker.EnsureAccount(context.Background(), testUser, "tok_visa")
		if !errors.Is(err, dbErr) {
			t.Fatalf("expected db error, got %v", err)
		}
		rejected := saved.last()
		if rejected.Status != entities.PayAccountStatusRejected {
			t.Fatalf("expected rejected, got %s", rejected.Status)
		}
		if string(rejected.OriginalResponse) != `{"error":"db down"}` {
			t.Fatalf("expected local error body, got %s", rejected.OriginalResponse)
		}
		if rejected.GatewayCustomerID != "cus_1" || rejected.GatewaySourceID != "card_1" {
			t.Fatalf("expected created source kept on rejected account: %+v", rejected)
		}
	})

	t.Run("approved save fails", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPayAccountRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		linker := newTestLinker(repo, gateway, nil)
		saved := &savedAccounts{}
		dbErr := errors.New("throttled")

		repo.EXPECT().FindApproved(gomock.Any(), "u1", gomock.Any()).Return(entities.PayAccount{ID: "pa-old", GatewayCustomerID: "cus_1"}, nil)
		repo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(saved.record(map[int]error{2: dbErr})).Times(3)
		gateway.EXPECT().CreateCustomerSource(gomock.Any(), "cus_1", gomock.Any()).Return(visaSource(), nil)

		_, err := linker.EnsureAccount(context.Background(), testUser, "tok_visa")
		if !errors.Is(err, dbErr) {
			t.Fatalf("expected throttled error, got %v", err)
		}
		got := saved.statuses()
		if len(got) != 3 || got[2] != entities.PayAccountStatusRejected {
			t.Fatalf("expected final rejected save, got %v", got)
		}
	})

	t.Run("rejected save failure is swallowed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPayAccountRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		linker := newTestLinker(repo, gateway, nil)
		saved := &savedAccounts{}
		srcErr := errors.New("network")

		repo.EXPECT().FindApproved(gomock.Any(), "u1", gomock.Any()).Return(entities.PayAccount{ID: "pa-old", GatewayCustomerID: "cus_1"}, nil)
		repo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(saved.record(map[int]error{2: errors.New("db")})).Times(2)
		gateway.EXPECT().CreateCustomerSource(gomock.Any(), "cus_1", gomock.Any()).Return(entities.GatewaySource{}, srcErr)

		_, err := linker.EnsureAccount(context.Background(), testUser, "tok_visa")
		if err != srcErr {
			t.Fatalf("expected source error, got %v", err)
		}
	})

	t.Run("lookup error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPayAccountRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		linker := newTestLinker(repo, gateway, nil)

		repo.EXPECT().FindApproved(gomock.Any(), "u1", gomock.Any()).Return(entities.PayAccount{}, errors.New("db"))

		_, err := linker.EnsureAccount(context.Background(), testUser, "tok_visa")
		if err == nil || err.Error() != "db" {
			t.Fatalf("expected db error, got %v", err)
		}
	})

	t.Run("customer creation error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPayAccountRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		linker := newTestLinker(repo, gateway, nil)
		gwErr := &entities.GatewayError{Type: "invalid_request_error", Raw: json.RawMessage(`{"type":"invalid_request_error"}`)}

		repo.EXPECT().FindApproved(gomock.Any(), "u1", gomock.Any()).Return(entities.PayAccount{}, nil)
		gateway.EXPECT().CreateCustomer(gomock.Any(), gomock.Any()).Return(entities.GatewayCustomer{}, gwErr)

		_, err := linker.EnsureAccount(context.Background(), testUser, "tok_visa")
		if err != gwErr {
			t.Fatalf("expected gateway error, got %v", err)
		}
	})

	t.Run("lock error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIPayAccountRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		locker := mock_interfaces.NewMockIUserLocker(ctrl)
		linker := newTestLinker(repo, gateway, locker)

		locker.EXPECT().Lock(gomock.Any(), "u1").Return(nil, errors.New("lock timeout"))

		_, err := linker.EnsureAccount(context.Background(), testUser, "tok_visa")
		if err == nil || err.Error() != "lock timeout" {
			t.Fatalf("expected lock timeout, got %v", err)
		}
	})
}

func TestAccountLinker_RejectAccount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mock_interfaces.NewMockIPayAccountRepository(ctrl)
	linker := newTestLinker(repo, nil, nil)

	repo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, a entities.PayAccount) (entities.PayAccount, error) { return a, nil },
	)

	out := linker.RejectAccount(context.Background(), entities.PayAccount{ID: "pa-9", Status: entities.PayAccountStatusPending}, errors.New("boom"))
	if out.Status != entities.PayAccountStatusRejected {
		t.Fatalf("expected rejected, got %s", out.Status)
	}
	if string(out.OriginalResponse) != `{"error":"boom"}` {
		t.Fatalf("unexpected original response: %s", out.OriginalResponse)
	}
}

func TestAccountLinker_Helpers(t *testing.T) {
	cases := []struct {
		month, year int64
		want        string
	}{
		{month: 4, year: 2031, want: "0431"},
		{month: 12, year: 2029, want: "1229"},
		{month: 1, year: 2100, want: "0100"},
		{month: 0, year: 2030, want: ""},
		{month: 5, year: 0, want: ""},
	}
	for _, tc := range cases {
		if got := formatExpiry(tc.month, tc.year); got != tc.want {
			t.Fatalf("formatExpiry(%d, %d): expected %q, got %q", tc.month, tc.year, tc.want, got)
		}
	}

	if string(errorBody(nil)) != `{"error":"unknown error"}` {
		t.Fatalf("unexpected nil error body: %s", errorBody(nil))
	}
	untyped := &entities.GatewayError{Raw: json.RawMessage(`{"x":1}`), Err: errors.New("raw")}
	if string(errorBody(untyped)) == `{"x":1}` {
		t.Fatalf("gateway error without type must not be treated as structured")
	}
}
