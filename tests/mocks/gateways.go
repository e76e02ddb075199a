package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"wedding-liaison/internal/domain"
)

type VendorGateway struct {
	mock.Mock
}

func (m *VendorGateway) ListVendors(ctx context.Context, filter domain.VendorFilter) ([]domain.Vendor, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Vendor), args.Error(1)
}

type PaymentGateway struct {
	mock.Mock
}

func (m *PaymentGateway) ProcessPayment(ctx context.Context, req domain.PaymentRequest) (*domain.Payment, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

type Mailer struct {
	mock.Mock
}

func (m *Mailer) SendBookingConfirmation(ctx context.Context, toEmail, name, serviceName, vendorName string) error {
	args := m.Called(ctx, toEmail, name, serviceName, vendorName)
	return args.Error(0)
}
