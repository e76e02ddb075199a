// Package payment simulates the marketplace payment gateway and records every
// attempt. In backend mode the request is forwarded to the external service
// instead.
package payment

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"wedding-liaison/internal/domain"
	"wedding-liaison/internal/recordstore"
	"wedding-liaison/internal/service/booking"
	"wedding-liaison/internal/service/notification"
)

const paymentsRecord = "wedding_app_payments"

var (
	ErrNotFound       = errors.New("payment not found")
	ErrInvalidRequest = errors.New("invalid payment request")
)

// Gateway forwards payment requests to the external backend.
type Gateway interface {
	ProcessPayment(ctx context.Context, req domain.PaymentRequest) (*domain.Payment, error)
}

type Service interface {
	Process(ctx context.Context, req domain.PaymentRequest) (*domain.Payment, error)
	GetByID(ctx context.Context, id string) (*domain.Payment, error)
	GetByBookingID(ctx context.Context, bookingID string) (*domain.Payment, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Payment, error)
}

type service struct {
	records  recordstore.Store
	bookings booking.Store
	notifSvc notification.Service
	gateway  Gateway
}

func NewService(records recordstore.Store, bookings booking.Store, notifSvc notification.Service, gateway Gateway) Service {
	return &service{
		records:  records,
		bookings: bookings,
		notifSvc: notifSvc,
		gateway:  gateway,
	}
}

func (s *service) Process(ctx context.Context, req domain.PaymentRequest) (*domain.Payment, error) {
	if req.BookingID == "" || req.UserID == "" || req.Amount <= 0 {
		return nil, ErrInvalidRequest
	}
	req.VendorID = domain.NormalizeVendorID(req.VendorID)

	var payment *domain.Payment
	if s.gateway != nil && s.bookings.BackendMode() {
		remote, err := s.gateway.ProcessPayment(ctx, req)
		if err != nil {
			return nil, err
		}
		payment = remote
	} else {
		payment = simulate(req)
	}

	if err := s.append(ctx, *payment); err != nil {
		return nil, err
	}

	if payment.Status == domain.PaymentCompleted {
		s.settleBooking(ctx, payment)
	}

	return payment, nil
}

// simulate applies the demo gateway rules: credit cards need a plausible
// number, PayPal always succeeds, anything else fails.
func simulate(req domain.PaymentRequest) *domain.Payment {
	now := time.Now().UTC()
	payment := &domain.Payment{
		ID:        "payment" + uuid.New().String()[:8],
		BookingID: req.BookingID,
		UserID:    req.UserID,
		VendorID:  req.VendorID,
		Amount:    req.Amount,
		Currency:  req.Currency,
		Method:    req.Method,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if payment.Currency == "" {
		payment.Currency = "USD"
	}

	switch req.Method {
	case domain.MethodCreditCard:
		if req.Card == nil || len(req.Card.CardNumber) < 13 || len(req.Card.CardNumber) > 19 {
			payment.Status = domain.PaymentFailed
			payment.TransactionID = "txn_failed"
		} else {
			payment.Status = domain.PaymentCompleted
			payment.TransactionID = "txn_" + uuid.New().String()[:8]
		}
	case domain.MethodPayPal:
		payment.Status = domain.PaymentCompleted
		payment.TransactionID = "pp_" + uuid.New().String()[:8]
	default:
		payment.Status = domain.PaymentFailed
		payment.TransactionID = "txn_failed"
	}

	return payment
}

// settleBooking marks the paid booking confirmed and tells the customer.
// Failures here degrade to a notice; the payment itself already succeeded.
func (s *service) settleBooking(ctx context.Context, payment *domain.Payment) {
	paid := domain.PaymentPaid
	confirmed := domain.BookingConfirmed
	_ = s.bookings.UpdateBooking(ctx, payment.BookingID, domain.BookingUpdate{
		Status:        &confirmed,
		PaymentStatus: &paid,
	})

	if s.notifSvc != nil {
		s.notifSvc.NotifyPaymentReceived(ctx, payment.UserID, *payment)
	}
}

func (s *service) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	payments, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range payments {
		if p.ID == id {
			payment := p
			return &payment, nil
		}
	}
	return nil, ErrNotFound
}

func (s *service) GetByBookingID(ctx context.Context, bookingID string) (*domain.Payment, error) {
	payments, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range payments {
		if p.BookingID == bookingID {
			payment := p
			return &payment, nil
		}
	}
	return nil, ErrNotFound
}

func (s *service) ListByUser(ctx context.Context, userID string) ([]domain.Payment, error) {
	payments, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	matches := []domain.Payment{}
	for _, p := range payments {
		if p.UserID == userID {
			matches = append(matches, p)
		}
	}
	return matches, nil
}

func (s *service) load(ctx context.Context) ([]domain.Payment, error) {
	data, err := s.records.Get(ctx, paymentsRecord)
	if err == recordstore.ErrNotFound {
		return []domain.Payment{}, nil
	}
	if err != nil {
		return nil, err
	}
	var payments []domain.Payment
	if err := json.Unmarshal(data, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

func (s *service) append(ctx context.Context, payment domain.Payment) error {
	payments, err := s.load(ctx)
	if err != nil {
		return err
	}
	payments = append(payments, payment)
	data, err := json.Marshal(payments)
	if err != nil {
		return err
	}
	return s.records.Put(ctx, paymentsRecord, data)
}
