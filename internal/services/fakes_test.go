package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/romansmolin/love-connect-vibe-coded-sub000/internal/models/db_models"
)

// In-memory repository fakes. They reproduce the guard semantics of the gorm
// implementations (conditional updates, atomic increments) so the services
// can be exercised without a database.

type fakeTokenRepo struct {
	mu     sync.Mutex
	tokens map[uuid.UUID]db_models.PaymentToken
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: make(map[uuid.UUID]db_models.PaymentToken)}
}

func (r *fakeTokenRepo) Create(_ context.Context, token *db_models.PaymentToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if token.ID == uuid.Nil {
		token.ID = uuid.New()
	}
	r.tokens[token.ID] = *token
	return nil
}

func (r *fakeTokenRepo) GetByID(_ context.Context, id uuid.UUID) (*db_models.PaymentToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.tokens[id]; ok {
		copy := t
		return &copy, nil
	}
	return nil, nil
}

func (r *fakeTokenRepo) GetByToken(_ context.Context, token string) (*db_models.PaymentToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tokens {
		if t.Token == token {
			copy := t
			return &copy, nil
		}
	}
	return nil, nil
}

func (r *fakeTokenRepo) GetByGatewayUID(_ context.Context, gatewayUID string) (*db_models.PaymentToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tokens {
		if t.GatewayUID != nil && *t.GatewayUID == gatewayUID {
			copy := t
			return &copy, nil
		}
	}
	return nil, nil
}

func (r *fakeTokenRepo) MarkCheckoutCreated(_ context.Context, id uuid.UUID, gatewayUID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tokens[id]
	if !ok || t.Status != db_models.PaymentStatusCreated {
		return nil
	}
	t.Status = db_models.PaymentStatusPending
	t.GatewayUID = &gatewayUID
	r.tokens[id] = t
	return nil
}

func (r *fakeTokenRepo) MarkFailed(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tokens[id]
	if !ok || t.Status == db_models.PaymentStatusSuccessful {
		return nil
	}
	t.Status = db_models.PaymentStatusFailed
	r.tokens[id] = t
	return nil
}

func (r *fakeTokenRepo) ApplyGatewayUpdate(_ context.Context, id uuid.UUID, status db_models.PaymentStatus, gatewayUID *string, rawPayload []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tokens[id]
	if !ok || t.Status == db_models.PaymentStatusSuccessful {
		return nil
	}
	t.Status = status
	if gatewayUID != nil && *gatewayUID != "" {
		t.GatewayUID = gatewayUID
	}
	if rawPayload != nil {
		t.RawPayload = rawPayload
	}
	r.tokens[id] = t
	return nil
}

type fakeGiftRepo struct {
	mu    sync.Mutex
	gifts map[uuid.UUID]db_models.Gift
	txns  map[uuid.UUID]db_models.GiftTransaction
}

func newFakeGiftRepo() *fakeGiftRepo {
	return &fakeGiftRepo{
		gifts: make(map[uuid.UUID]db_models.Gift),
		txns:  make(map[uuid.UUID]db_models.GiftTransaction),
	}
}

func (r *fakeGiftRepo) addGift(gift db_models.Gift) db_models.Gift {
	r.mu.Lock()
	defer r.mu.Unlock()
	if gift.ID == uuid.Nil {
		gift.ID = uuid.New()
	}
	r.gifts[gift.ID] = gift
	return gift
}

func (r *fakeGiftRepo) GetActiveGift(_ context.Context, giftID uuid.UUID) (*db_models.Gift, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if g, ok := r.gifts[giftID]; ok && g.IsActive {
		copy := g
		return &copy, nil
	}
	return nil, nil
}

func (r *fakeGiftRepo) ListActiveGifts(_ context.Context) ([]db_models.Gift, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []db_models.Gift
	for _, g := range r.gifts {
		if g.IsActive {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r *fakeGiftRepo) CreateTransaction(_ context.Context, txn *db_models.GiftTransaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if txn.ID == uuid.Nil {
		txn.ID = uuid.New()
	}
	r.txns[txn.ID] = *txn
	return nil
}

func (r *fakeGiftRepo) GetTransactionByID(_ context.Context, id uuid.UUID) (*db_models.GiftTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.txns[id]; ok {
		copy := t
		return &copy, nil
	}
	return nil, nil
}

func (r *fakeGiftRepo) GetTransactionByPaymentTokenID(_ context.Context, paymentTokenID uuid.UUID) (*db_models.GiftTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.txns {
		if t.PaymentTokenID == paymentTokenID {
			copy := t
			return &copy, nil
		}
	}
	return nil, nil
}

func (r *fakeGiftRepo) ListTransactionsBySender(_ context.Context, senderID string) ([]db_models.GiftTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []db_models.GiftTransaction
	for _, t := range r.txns {
		if t.SenderID == senderID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeGiftRepo) UpdateTransactionStatus(_ context.Context, id uuid.UUID, status db_models.GiftTransactionStatus, deliveredAt *int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.txns[id]
	if !ok || t.Status == db_models.GiftTxnStatusDelivered {
		return nil
	}
	t.Status = status
	if deliveredAt != nil {
		t.DeliveredAt = deliveredAt
	}
	r.txns[id] = t
	return nil
}

func (r *fakeGiftRepo) MarkDelivered(_ context.Context, id uuid.UUID, recipientID string, matchID string, deliveredAt int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.txns[id]
	if !ok || t.Status != db_models.GiftTxnStatusAvailable {
		return false, nil
	}
	t.Status = db_models.GiftTxnStatusDelivered
	t.RecipientID = &recipientID
	t.MatchID = &matchID
	t.DeliveredAt = &deliveredAt
	r.txns[id] = t
	return true, nil
}

type fakeCreditRepo struct {
	mu      sync.Mutex
	wallets map[string]db_models.CreditWallet
	txns    map[uuid.UUID]db_models.CreditTransaction
}

func newFakeCreditRepo() *fakeCreditRepo {
	return &fakeCreditRepo{
		wallets: make(map[string]db_models.CreditWallet),
		txns:    make(map[uuid.UUID]db_models.CreditTransaction),
	}
}

func (r *fakeCreditRepo) GetOrCreateWallet(_ context.Context, userID string, currency string) (*db_models.CreditWallet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if w, ok := r.wallets[userID]; ok {
		copy := w
		return &copy, nil
	}
	w := db_models.CreditWallet{UserID: userID, Currency: currency}
	w.ID = uuid.New()
	r.wallets[userID] = w
	copy := w
	return &copy, nil
}

func (r *fakeCreditRepo) GetWalletByID(_ context.Context, id uuid.UUID) (*db_models.CreditWallet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, w := range r.wallets {
		if w.ID == id {
			copy := w
			return &copy, nil
		}
	}
	return nil, nil
}

func (r *fakeCreditRepo) CreateTransaction(_ context.Context, txn *db_models.CreditTransaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if txn.ID == uuid.Nil {
		txn.ID = uuid.New()
	}
	r.txns[txn.ID] = *txn
	return nil
}

func (r *fakeCreditRepo) GetTransactionByPaymentTokenID(_ context.Context, paymentTokenID uuid.UUID) (*db_models.CreditTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.txns {
		if t.PaymentTokenID != nil && *t.PaymentTokenID == paymentTokenID {
			copy := t
			return &copy, nil
		}
	}
	return nil, nil
}

func (r *fakeCreditRepo) ListTransactionsByUser(_ context.Context, userID string) ([]db_models.CreditTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []db_models.CreditTransaction
	for _, t := range r.txns {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeCreditRepo) UpdateTransactionStatus(_ context.Context, id uuid.UUID, status db_models.CreditTransactionStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.txns[id]
	if !ok || t.Status == db_models.CreditTxnStatusSuccessful {
		return nil
	}
	t.Status = status
	r.txns[id] = t
	return nil
}

func (r *fakeCreditRepo) SettlePurchase(_ context.Context, txnID uuid.UUID, walletID uuid.UUID, credits int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.txns[txnID]
	if !ok || t.Status == db_models.CreditTxnStatusSuccessful {
		return false, nil
	}
	t.Status = db_models.CreditTxnStatusSuccessful
	r.txns[txnID] = t

	for userID, w := range r.wallets {
		if w.ID == walletID {
			w.Balance += credits
			r.wallets[userID] = w
			break
		}
	}
	return true, nil
}

func (r *fakeCreditRepo) SpendFromWallet(_ context.Context, walletID uuid.UUID, txn *db_models.CreditTransaction) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for userID, w := range r.wallets {
		if w.ID == walletID {
			if w.Balance < txn.Credits {
				return false, nil
			}
			w.Balance -= txn.Credits
			r.wallets[userID] = w
			if txn.ID == uuid.Nil {
				txn.ID = uuid.New()
			}
			r.txns[txn.ID] = *txn
			return true, nil
		}
	}
	return false, nil
}

type fakeGateway struct {
	mu    sync.Mutex
	fail  bool
	calls int
}

func (g *fakeGateway) CreateToken(_ context.Context, req CheckoutRequest) (*CheckoutResponse, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	if g.fail {
		return nil, errors.New("secure processor unreachable")
	}
	return &CheckoutResponse{
		CheckoutToken: fmt.Sprintf("chk-%d-%s", g.calls, req.PaymentTokenID),
		Status:        "pending",
	}, nil
}

type fakeSocial struct {
	matches []Match
	members map[string]*Member
	err     error
}

func (s *fakeSocial) GetMatches(_ context.Context, _ Session) ([]Match, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.matches, nil
}

func (s *fakeSocial) GetMember(_ context.Context, _ Session, memberID string) (*Member, error) {
	if s.err != nil {
		return nil, s.err
	}
	if m, ok := s.members[memberID]; ok {
		return m, nil
	}
	return &Member{ID: memberID}, nil
}
