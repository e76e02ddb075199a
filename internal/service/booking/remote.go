package booking

import (
	"context"

	"wedding-liaison/internal/domain"
)

// RemoteGateway is the slice of the backend client the store needs.
type RemoteGateway interface {
	ListBookings(ctx context.Context) ([]domain.Booking, error)
	CreateBooking(ctx context.Context, booking domain.Booking) (*domain.Booking, error)
	UpdateBooking(ctx context.Context, id string, changes domain.BookingUpdate) (*domain.Booking, error)
}

type remoteSource struct {
	gateway RemoteGateway
}

func NewRemoteSource(gateway RemoteGateway) Source {
	return &remoteSource{gateway: gateway}
}

func (s *remoteSource) Load(ctx context.Context) ([]domain.Booking, error) {
	return s.gateway.ListBookings(ctx)
}

func (s *remoteSource) Create(ctx context.Context, booking domain.Booking) error {
	_, err := s.gateway.CreateBooking(ctx, booking)
	return err
}

func (s *remoteSource) Update(ctx context.Context, id string, changes domain.BookingUpdate) error {
	_, err := s.gateway.UpdateBooking(ctx, id, changes)
	return err
}
