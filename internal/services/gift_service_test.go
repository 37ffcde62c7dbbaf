package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/romansmolin/love-connect-vibe-coded-sub000/internal/models/db_models"
	"github.com/romansmolin/love-connect-vibe-coded-sub000/pkg/utils"
)

type giftFixture struct {
	tokens  *fakeTokenRepo
	gifts   *fakeGiftRepo
	social  *fakeSocial
	payment PaymentService
	service GiftServiceInterface
	gift    db_models.Gift
}

func newGiftFixture(t *testing.T) *giftFixture {
	t.Helper()

	tokens := newFakeTokenRepo()
	gifts := newFakeGiftRepo()
	social := &fakeSocial{}
	payment := newTestPaymentService(t, tokens, &fakeGateway{}, "")

	service := NewGiftService(gifts, tokens, payment, social)
	payment.RegisterFulfillmentHandler(service)

	gift := gifts.addGift(db_models.Gift{
		Name:        "Rose",
		AmountCents: 499,
		Currency:    "EUR",
		IsActive:    true,
	})

	return &giftFixture{
		tokens:  tokens,
		gifts:   gifts,
		social:  social,
		payment: payment,
		service: service,
		gift:    gift,
	}
}

// purchase creates a gift purchase and drives the payment token to rawStatus
// through the webhook path.
func (f *giftFixture) purchase(t *testing.T, senderID string, rawStatus string) *db_models.GiftTransaction {
	t.Helper()

	resp, err := f.service.CreatePurchase(context.Background(), senderID, f.gift.ID.String())
	require.NoError(t, err)

	txnID := uuid.MustParse(resp.TransactionID)
	txn, err := f.gifts.GetTransactionByID(context.Background(), txnID)
	require.NoError(t, err)
	require.NotNil(t, txn)

	if rawStatus != "" {
		require.NoError(t, f.payment.ProcessWebhook(context.Background(),
			webhookBody(t, txn.PaymentTokenID.String(), rawStatus, "uid-1"), ""))
		txn, err = f.gifts.GetTransactionByID(context.Background(), txnID)
		require.NoError(t, err)
	}
	return txn
}

func TestCreatePurchase(t *testing.T) {
	f := newGiftFixture(t)

	txn := f.purchase(t, "user-1", "")
	assert.Equal(t, db_models.GiftTxnStatusPaymentPending, txn.Status)
	assert.Equal(t, "user-1", txn.SenderID)
	assert.Nil(t, txn.RecipientID)

	token, err := f.tokens.GetByID(context.Background(), txn.PaymentTokenID)
	require.NoError(t, err)
	require.NotNil(t, token)
	assert.Equal(t, db_models.PaymentStatusPending, token.Status)
	assert.Equal(t, int64(499), token.AmountCents)
}

func TestCreatePurchaseUnknownGift(t *testing.T) {
	f := newGiftFixture(t)

	_, err := f.service.CreatePurchase(context.Background(), "user-1", uuid.NewString())
	assert.ErrorIs(t, err, utils.ErrGiftNotFound)
}

func TestCreatePurchaseInactiveGift(t *testing.T) {
	f := newGiftFixture(t)
	inactive := f.gifts.addGift(db_models.Gift{Name: "Retired", AmountCents: 100, Currency: "EUR", IsActive: false})

	_, err := f.service.CreatePurchase(context.Background(), "user-1", inactive.ID.String())
	assert.ErrorIs(t, err, utils.ErrGiftNotFound)
}

func TestFulfillNoGiftTransaction(t *testing.T) {
	f := newGiftFixture(t)

	// A payment that wasn't for a gift must be a silent no-op.
	assert.NoError(t, f.service.FulfillPaymentToken(context.Background(), uuid.New()))
}

func TestFulfillSuccessfulPaymentMakesGiftAvailable(t *testing.T) {
	f := newGiftFixture(t)

	txn := f.purchase(t, "user-1", "successful")
	assert.Equal(t, db_models.GiftTxnStatusAvailable, txn.Status)
	assert.Nil(t, txn.RecipientID)
	assert.Nil(t, txn.DeliveredAt)

	// Second delivery of the same callback leaves the state untouched.
	require.NoError(t, f.service.FulfillPaymentToken(context.Background(), txn.PaymentTokenID))
	again, err := f.gifts.GetTransactionByID(context.Background(), txn.ID)
	require.NoError(t, err)
	assert.Equal(t, *txn, *again)
}

func TestFulfillFailedPayment(t *testing.T) {
	for _, raw := range []string{"failed", "declined", "expired", "error"} {
		f := newGiftFixture(t)
		txn := f.purchase(t, "user-1", raw)
		assert.Equal(t, db_models.GiftTxnStatusPaymentFailed, txn.Status, "gateway status %q", raw)
	}
}

func TestFulfillUnknownStatusKeepsPending(t *testing.T) {
	f := newGiftFixture(t)

	txn := f.purchase(t, "user-1", "weird_unknown_value")
	assert.Equal(t, db_models.GiftTxnStatusPaymentPending, txn.Status)
}

func TestSendGift(t *testing.T) {
	f := newGiftFixture(t)
	f.social.matches = []Match{{MatchID: "m-1", MemberID: "user-2"}}

	txn := f.purchase(t, "user-1", "successful")

	resp, err := f.service.SendGift(context.Background(), Session{SessionID: "s", UserID: "user-1"}, "user-1", txn.ID.String(), "user-2")
	require.NoError(t, err)
	assert.Equal(t, string(db_models.GiftTxnStatusDelivered), resp.Status)

	delivered, err := f.gifts.GetTransactionByID(context.Background(), txn.ID)
	require.NoError(t, err)
	assert.Equal(t, db_models.GiftTxnStatusDelivered, delivered.Status)
	require.NotNil(t, delivered.RecipientID)
	assert.Equal(t, "user-2", *delivered.RecipientID)
	require.NotNil(t, delivered.MatchID)
	assert.Equal(t, "m-1", *delivered.MatchID)
	assert.NotNil(t, delivered.DeliveredAt)
}

func TestSendGiftToNonMatch(t *testing.T) {
	f := newGiftFixture(t)
	f.social.matches = []Match{{MatchID: "m-1", MemberID: "user-3"}}

	txn := f.purchase(t, "user-1", "successful")

	_, err := f.service.SendGift(context.Background(), Session{UserID: "user-1"}, "user-1", txn.ID.String(), "user-2")
	assert.ErrorIs(t, err, utils.ErrNotAMatch)

	// The transaction must stay AVAILABLE with no recipient bound.
	after, err := f.gifts.GetTransactionByID(context.Background(), txn.ID)
	require.NoError(t, err)
	assert.Equal(t, db_models.GiftTxnStatusAvailable, after.Status)
	assert.Nil(t, after.RecipientID)
}

func TestSendGiftOwnership(t *testing.T) {
	f := newGiftFixture(t)
	f.social.matches = []Match{{MatchID: "m-1", MemberID: "user-2"}}

	txn := f.purchase(t, "user-1", "successful")

	_, err := f.service.SendGift(context.Background(), Session{UserID: "user-9"}, "user-9", txn.ID.String(), "user-2")
	assert.ErrorIs(t, err, utils.ErrNotOwner)
}

func TestSendGiftNotPaid(t *testing.T) {
	f := newGiftFixture(t)
	f.social.matches = []Match{{MatchID: "m-1", MemberID: "user-2"}}

	txn := f.purchase(t, "user-1", "")

	_, err := f.service.SendGift(context.Background(), Session{UserID: "user-1"}, "user-1", txn.ID.String(), "user-2")
	assert.ErrorIs(t, err, utils.ErrGiftNotAvailable)
}

func TestDeliveredGiftIsTerminal(t *testing.T) {
	f := newGiftFixture(t)
	f.social.matches = []Match{{MatchID: "m-1", MemberID: "user-2"}}

	txn := f.purchase(t, "user-1", "successful")
	_, err := f.service.SendGift(context.Background(), Session{UserID: "user-1"}, "user-1", txn.ID.String(), "user-2")
	require.NoError(t, err)

	delivered, err := f.gifts.GetTransactionByID(context.Background(), txn.ID)
	require.NoError(t, err)

	// A replayed failure callback must not touch a delivered gift. The
	// payment token itself also refuses the downgrade, so exercise the
	// handler directly with the transaction already DELIVERED.
	require.NoError(t, f.service.FulfillPaymentToken(context.Background(), txn.PaymentTokenID))
	after, err := f.gifts.GetTransactionByID(context.Background(), txn.ID)
	require.NoError(t, err)
	assert.Equal(t, *delivered, *after)

	// And a second send cannot rebind the recipient.
	_, err = f.service.SendGift(context.Background(), Session{UserID: "user-1"}, "user-1", txn.ID.String(), "user-2")
	assert.ErrorIs(t, err, utils.ErrGiftNotAvailable)
}

func TestSendGiftUpstreamFailure(t *testing.T) {
	f := newGiftFixture(t)
	f.social.err = utils.ErrUpstreamFailure

	txn := f.purchase(t, "user-1", "successful")

	_, err := f.service.SendGift(context.Background(), Session{UserID: "user-1"}, "user-1", txn.ID.String(), "user-2")
	assert.ErrorIs(t, err, utils.ErrUpstreamFailure)
}

func TestListTransactions(t *testing.T) {
	f := newGiftFixture(t)

	f.purchase(t, "user-1", "successful")
	f.purchase(t, "user-1", "failed")
	f.purchase(t, "someone-else", "successful")

	txns, err := f.service.ListTransactions(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Len(t, txns, 2)
}
