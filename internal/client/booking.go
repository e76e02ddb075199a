package client

import (
	"context"
	"net/http"

	"wedding-liaison/internal/domain"
)

func (c *Client) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	var bookings []domain.Booking
	if err := c.do(ctx, http.MethodGet, "/bookings", nil, &bookings); err != nil {
		return nil, err
	}
	return normalizeAll(bookings), nil
}

func (c *Client) ListBookingsByUser(ctx context.Context, userID string) ([]domain.Booking, error) {
	var bookings []domain.Booking
	if err := c.do(ctx, http.MethodGet, "/bookings/user/"+userID, nil, &bookings); err != nil {
		return nil, err
	}
	return normalizeAll(bookings), nil
}

func (c *Client) ListBookingsByVendor(ctx context.Context, vendorID string) ([]domain.Booking, error) {
	var bookings []domain.Booking
	path := "/bookings/vendor/" + domain.NormalizeVendorID(vendorID)
	if err := c.do(ctx, http.MethodGet, path, nil, &bookings); err != nil {
		return nil, err
	}
	return normalizeAll(bookings), nil
}

func (c *Client) CreateBooking(ctx context.Context, booking domain.Booking) (*domain.Booking, error) {
	booking.VendorID = domain.NormalizeVendorID(booking.VendorID)
	var created domain.Booking
	if err := c.do(ctx, http.MethodPost, "/bookings", booking, &created); err != nil {
		return nil, err
	}
	created.VendorID = domain.NormalizeVendorID(created.VendorID)
	return &created, nil
}

func (c *Client) UpdateBooking(ctx context.Context, id string, changes domain.BookingUpdate) (*domain.Booking, error) {
	if changes.VendorID != nil {
		normalized := domain.NormalizeVendorID(*changes.VendorID)
		changes.VendorID = &normalized
	}
	var updated domain.Booking
	if err := c.do(ctx, http.MethodPut, "/bookings/"+id, changes, &updated); err != nil {
		return nil, err
	}
	updated.VendorID = domain.NormalizeVendorID(updated.VendorID)
	return &updated, nil
}

func (c *Client) DeleteBooking(ctx context.Context, id string) error {
	var env envelope
	return c.do(ctx, http.MethodDelete, "/bookings/"+id, nil, &env)
}

// Historical backend records are inconsistent about the vendor prefix, so
// every booking leaving the gateway is normalized.
func normalizeAll(bookings []domain.Booking) []domain.Booking {
	for i := range bookings {
		bookings[i].VendorID = domain.NormalizeVendorID(bookings[i].VendorID)
	}
	return bookings
}
