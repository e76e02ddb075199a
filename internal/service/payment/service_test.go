package payment_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"wedding-liaison/internal/domain"
	"wedding-liaison/internal/recordstore"
	"wedding-liaison/internal/service/booking"
	"wedding-liaison/internal/service/notification"
	"wedding-liaison/internal/service/payment"
)

type fixture struct {
	payments payment.Service
	bookings booking.Store
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	records := recordstore.NewMemoryStore()

	bookings := booking.NewStore(booking.NewLocalSource(records), nil, false)
	assert.NoError(t, bookings.Load(context.Background()))

	notifications := notification.NewService(records, nil)
	return &fixture{
		payments: payment.NewService(records, bookings, notifications, nil),
		bookings: bookings,
	}
}

func validCard() *domain.CardDetails {
	return &domain.CardDetails{
		CardNumber:     "4111111111111111",
		CardholderName: "Demo Client",
		ExpiryDate:     "12/26",
		CVV:            "123",
	}
}

func TestPaymentService_Process(t *testing.T) {
	ctx := context.Background()

	t.Run("Credit Card Success", func(t *testing.T) {
		f := newFixture(t)

		result, err := f.payments.Process(ctx, domain.PaymentRequest{
			BookingID: "booking1",
			UserID:    "user1",
			VendorID:  "vendor1",
			Amount:    2500,
			Method:    domain.MethodCreditCard,
			Card:      validCard(),
		})

		assert.NoError(t, err)
		assert.Equal(t, domain.PaymentCompleted, result.Status)
		assert.Contains(t, result.TransactionID, "txn_")
		assert.NotEqual(t, "txn_failed", result.TransactionID)
		assert.Equal(t, "USD", result.Currency)
	})

	t.Run("Credit Card Without Card Fails", func(t *testing.T) {
		f := newFixture(t)

		result, err := f.payments.Process(ctx, domain.PaymentRequest{
			BookingID: "booking1",
			UserID:    "user1",
			Amount:    2500,
			Method:    domain.MethodCreditCard,
		})

		assert.NoError(t, err)
		assert.Equal(t, domain.PaymentFailed, result.Status)
		assert.Equal(t, "txn_failed", result.TransactionID)
	})

	t.Run("Credit Card Number Too Short Fails", func(t *testing.T) {
		f := newFixture(t)
		card := validCard()
		card.CardNumber = "4111"

		result, err := f.payments.Process(ctx, domain.PaymentRequest{
			BookingID: "booking1",
			UserID:    "user1",
			Amount:    2500,
			Method:    domain.MethodCreditCard,
			Card:      card,
		})

		assert.NoError(t, err)
		assert.Equal(t, domain.PaymentFailed, result.Status)
	})

	t.Run("PayPal Always Completes", func(t *testing.T) {
		f := newFixture(t)

		result, err := f.payments.Process(ctx, domain.PaymentRequest{
			BookingID: "booking1",
			UserID:    "user1",
			Amount:    2500,
			Method:    domain.MethodPayPal,
		})

		assert.NoError(t, err)
		assert.Equal(t, domain.PaymentCompleted, result.Status)
		assert.Contains(t, result.TransactionID, "pp_")
	})

	t.Run("Unknown Method Fails", func(t *testing.T) {
		f := newFixture(t)

		result, err := f.payments.Process(ctx, domain.PaymentRequest{
			BookingID: "booking1",
			UserID:    "user1",
			Amount:    2500,
			Method:    "wire_transfer",
		})

		assert.NoError(t, err)
		assert.Equal(t, domain.PaymentFailed, result.Status)
	})

	t.Run("Missing Fields Rejected", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.payments.Process(ctx, domain.PaymentRequest{
			UserID: "user1",
			Amount: 2500,
			Method: domain.MethodPayPal,
		})
		assert.ErrorIs(t, err, payment.ErrInvalidRequest)

		_, err = f.payments.Process(ctx, domain.PaymentRequest{
			BookingID: "booking1",
			UserID:    "user1",
			Amount:    0,
			Method:    domain.MethodPayPal,
		})
		assert.ErrorIs(t, err, payment.ErrInvalidRequest)
	})

	t.Run("Normalizes Vendor ID", func(t *testing.T) {
		f := newFixture(t)

		result, err := f.payments.Process(ctx, domain.PaymentRequest{
			BookingID: "booking1",
			UserID:    "user1",
			VendorID:  "1",
			Amount:    2500,
			Method:    domain.MethodPayPal,
		})

		assert.NoError(t, err)
		assert.Equal(t, "vendor1", result.VendorID)
	})

	t.Run("Successful Payment Settles Booking", func(t *testing.T) {
		f := newFixture(t)

		created, err := f.bookings.AddBooking(ctx, domain.BookingDraft{
			UserID:      "user1",
			VendorID:    "vendor1",
			ServiceName: "Photos",
			ServiceDate: "2024-06-01",
			Amount:      500,
		})
		assert.NoError(t, err)

		_, err = f.payments.Process(ctx, domain.PaymentRequest{
			BookingID: created.ID,
			UserID:    "user1",
			VendorID:  "vendor1",
			Amount:    500,
			Method:    domain.MethodPayPal,
		})
		assert.NoError(t, err)

		settled, err := f.bookings.GetBookingByID(created.ID)
		assert.NoError(t, err)
		assert.Equal(t, domain.BookingConfirmed, settled.Status)
		assert.Equal(t, domain.PaymentPaid, settled.PaymentStatus)
	})

	t.Run("Failed Payment Leaves Booking Untouched", func(t *testing.T) {
		f := newFixture(t)

		created, err := f.bookings.AddBooking(ctx, domain.BookingDraft{
			UserID:      "user1",
			VendorID:    "vendor1",
			ServiceName: "Photos",
			ServiceDate: "2024-06-01",
			Amount:      500,
		})
		assert.NoError(t, err)

		_, err = f.payments.Process(ctx, domain.PaymentRequest{
			BookingID: created.ID,
			UserID:    "user1",
			Amount:    500,
			Method:    domain.MethodCreditCard,
		})
		assert.NoError(t, err)

		untouched, err := f.bookings.GetBookingByID(created.ID)
		assert.NoError(t, err)
		assert.Equal(t, domain.BookingPending, untouched.Status)
		assert.Equal(t, domain.PaymentPending, untouched.PaymentStatus)
	})
}

func TestPaymentService_Lookups(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	first, err := f.payments.Process(ctx, domain.PaymentRequest{
		BookingID: "booking1",
		UserID:    "user1",
		Amount:    2500,
		Method:    domain.MethodPayPal,
	})
	assert.NoError(t, err)

	_, err = f.payments.Process(ctx, domain.PaymentRequest{
		BookingID: "booking3",
		UserID:    "user2",
		Amount:    900,
		Method:    domain.MethodPayPal,
	})
	assert.NoError(t, err)

	t.Run("By ID", func(t *testing.T) {
		found, err := f.payments.GetByID(ctx, first.ID)
		assert.NoError(t, err)
		assert.Equal(t, first.ID, found.ID)

		_, err = f.payments.GetByID(ctx, "missing")
		assert.ErrorIs(t, err, payment.ErrNotFound)
	})

	t.Run("By Booking ID", func(t *testing.T) {
		found, err := f.payments.GetByBookingID(ctx, "booking1")
		assert.NoError(t, err)
		assert.Equal(t, first.ID, found.ID)

		_, err = f.payments.GetByBookingID(ctx, "booking2")
		assert.ErrorIs(t, err, payment.ErrNotFound)
	})

	t.Run("By User", func(t *testing.T) {
		mine, err := f.payments.ListByUser(ctx, "user1")
		assert.NoError(t, err)
		assert.Len(t, mine, 1)

		none, err := f.payments.ListByUser(ctx, "nobody")
		assert.NoError(t, err)
		assert.Empty(t, none)
	})
}
