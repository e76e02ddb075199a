package booking

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"wedding-liaison/internal/domain"
	"wedding-liaison/internal/recordstore"
)

const bookingsRecord = "wedding_app_bookings"

// Source is the persistence strategy behind the store: the durable local
// record store, or the remote backend gateway. Switching sources never
// migrates data between them.
type Source interface {
	Load(ctx context.Context) ([]domain.Booking, error)
	Create(ctx context.Context, booking domain.Booking) error
	Update(ctx context.Context, id string, changes domain.BookingUpdate) error
}

type localSource struct {
	records recordstore.Store
}

func NewLocalSource(records recordstore.Store) Source {
	return &localSource{records: records}
}

// Load reads the booking record, normalizing vendor identifiers left behind
// by older producers. When anything changed, or when the record is absent and
// the demo seed is used, the result is persisted immediately so subsequent
// loads are stable.
func (s *localSource) Load(ctx context.Context) ([]domain.Booking, error) {
	data, err := s.records.Get(ctx, bookingsRecord)
	if err == recordstore.ErrNotFound {
		seed := seedBookings()
		if err := s.save(ctx, seed); err != nil {
			return nil, err
		}
		return seed, nil
	}
	if err != nil {
		return nil, err
	}

	var bookings []domain.Booking
	if err := json.Unmarshal(data, &bookings); err != nil {
		log.Printf("Discarding unreadable booking record: %v", err)
		seed := seedBookings()
		if err := s.save(ctx, seed); err != nil {
			return nil, err
		}
		return seed, nil
	}

	changed := false
	for i := range bookings {
		normalized := domain.NormalizeVendorID(bookings[i].VendorID)
		if normalized != bookings[i].VendorID {
			bookings[i].VendorID = normalized
			changed = true
		}
	}
	if changed {
		if err := s.save(ctx, bookings); err != nil {
			return nil, err
		}
	}
	return bookings, nil
}

func (s *localSource) Create(ctx context.Context, booking domain.Booking) error {
	bookings, err := s.Load(ctx)
	if err != nil {
		return err
	}
	bookings = append(bookings, booking)
	return s.save(ctx, bookings)
}

func (s *localSource) Update(ctx context.Context, id string, changes domain.BookingUpdate) error {
	bookings, err := s.Load(ctx)
	if err != nil {
		return err
	}
	for i := range bookings {
		if bookings[i].ID == id {
			applyUpdate(&bookings[i], changes, time.Now().UTC())
			break
		}
	}
	// An unknown id leaves the record unchanged; that is not an error.
	return s.save(ctx, bookings)
}

func (s *localSource) save(ctx context.Context, bookings []domain.Booking) error {
	data, err := json.Marshal(bookings)
	if err != nil {
		return err
	}
	return s.records.Put(ctx, bookingsRecord, data)
}

func mustTime(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}
	return t
}

// seedBookings is the fixed demo dataset used on first load.
func seedBookings() []domain.Booking {
	return []domain.Booking{
		{
			ID:            "booking1",
			UserID:        "user1",
			UserName:      "Demo Client",
			VendorID:      "vendor1",
			VendorName:    "Elegant Moments Photography",
			ServiceName:   "Premium Wedding Photography",
			EventType:     "Wedding",
			ServiceDate:   "2023-10-15",
			Amount:        2500,
			Status:        domain.BookingConfirmed,
			PaymentStatus: domain.PaymentPaid,
			Notes:         "Looking forward to capturing your special day!",
			CreatedAt:     mustTime("2023-08-20T14:30:00.000Z"),
			UpdatedAt:     mustTime("2023-08-20T14:30:00.000Z"),
		},
		{
			ID:            "booking2",
			UserID:        "user1",
			UserName:      "Demo Client",
			VendorID:      "vendor2",
			VendorName:    "Royal Garden Venue",
			ServiceName:   "Full Day Venue Rental",
			EventType:     "Wedding",
			ServiceDate:   "2023-10-15",
			Amount:        8000,
			Status:        domain.BookingConfirmed,
			PaymentStatus: domain.PaymentPaid,
			CreatedAt:     mustTime("2023-08-18T10:15:00.000Z"),
			UpdatedAt:     mustTime("2023-08-18T10:15:00.000Z"),
		},
		{
			ID:            "booking3",
			UserID:        "user2",
			UserName:      "Jane Smith",
			VendorID:      "vendor1",
			VendorName:    "Elegant Moments Photography",
			ServiceName:   "Engagement Photoshoot",
			EventType:     "Engagement",
			ServiceDate:   "2023-09-10",
			Amount:        900,
			Status:        domain.BookingCompleted,
			PaymentStatus: domain.PaymentPaid,
			Notes:         "Beautiful photos delivered on time!",
			CreatedAt:     mustTime("2023-07-25T09:45:00.000Z"),
			UpdatedAt:     mustTime("2023-09-11T16:20:00.000Z"),
		},
	}
}
