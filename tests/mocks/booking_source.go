package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"wedding-liaison/internal/domain"
)

type BookingSource struct {
	mock.Mock
}

func (m *BookingSource) Load(ctx context.Context) ([]domain.Booking, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *BookingSource) Create(ctx context.Context, booking domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *BookingSource) Update(ctx context.Context, id string, changes domain.BookingUpdate) error {
	args := m.Called(ctx, id, changes)
	return args.Error(0)
}
