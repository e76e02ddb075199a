package booking_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"wedding-liaison/internal/domain"
	"wedding-liaison/internal/recordstore"
	"wedding-liaison/internal/service/booking"
	"wedding-liaison/tests/mocks"
)

func newLocalStore(t *testing.T) booking.Store {
	t.Helper()
	store := booking.NewStore(booking.NewLocalSource(recordstore.NewMemoryStore()), nil, false)
	assert.NoError(t, store.Load(context.Background()))
	return store
}

func TestStore_SeedsOnFirstLoad(t *testing.T) {
	store := newLocalStore(t)

	all := store.All()
	assert.Len(t, all, 3)
	assert.Equal(t, "booking1", all[0].ID)
	assert.Equal(t, "vendor1", all[0].VendorID)
	assert.Equal(t, domain.BookingConfirmed, all[0].Status)
	assert.Equal(t, domain.PaymentPaid, all[0].PaymentStatus)
	assert.Equal(t, float64(2500), all[0].Amount)
}

func TestStore_SeedIsStableAcrossLoads(t *testing.T) {
	records := recordstore.NewMemoryStore()
	ctx := context.Background()

	first := booking.NewStore(booking.NewLocalSource(records), nil, false)
	assert.NoError(t, first.Load(ctx))
	_, err := first.AddBooking(ctx, domain.BookingDraft{
		UserID:      "user3",
		VendorID:    "vendor3",
		ServiceName: "Catering",
		ServiceDate: "2024-06-01",
		Amount:      1200,
	})
	assert.NoError(t, err)

	second := booking.NewStore(booking.NewLocalSource(records), nil, false)
	assert.NoError(t, second.Load(ctx))
	assert.Len(t, second.All(), 4)
}

func TestStore_AddBooking(t *testing.T) {
	store := newLocalStore(t)
	ctx := context.Background()

	t.Run("Stamps Identity And Status", func(t *testing.T) {
		created, err := store.AddBooking(ctx, domain.BookingDraft{
			UserID:      "user1",
			UserName:    "Demo Client",
			VendorID:    "vendor3",
			ServiceName: "Catering",
			ServiceDate: "2024-06-01",
			Amount:      1500,
		})

		assert.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, domain.BookingPending, created.Status)
		assert.Equal(t, domain.PaymentPending, created.PaymentStatus)
		assert.False(t, created.CreatedAt.IsZero())
	})

	t.Run("Normalizes Vendor ID", func(t *testing.T) {
		created, err := store.AddBooking(ctx, domain.BookingDraft{
			UserID:      "user1",
			VendorID:    "7",
			ServiceName: "Flowers",
			ServiceDate: "2024-06-01",
			Amount:      300,
		})

		assert.NoError(t, err)
		assert.Equal(t, "vendor7", created.VendorID)
	})

	t.Run("Visible To Next Read", func(t *testing.T) {
		created, err := store.AddBooking(ctx, domain.BookingDraft{
			UserID:      "user9",
			VendorID:    "vendor1",
			ServiceName: "Band",
			ServiceDate: "2024-07-01",
			Amount:      600,
		})
		assert.NoError(t, err)

		found, err := store.GetBookingByID(created.ID)
		assert.NoError(t, err)
		assert.Equal(t, created.ID, found.ID)
	})

	t.Run("Unique IDs", func(t *testing.T) {
		seen := map[string]bool{}
		for i := 0; i < 10; i++ {
			created, err := store.AddBooking(ctx, domain.BookingDraft{
				UserID:      "user1",
				VendorID:    "vendor1",
				ServiceName: "Service",
				ServiceDate: "2024-08-01",
				Amount:      100,
			})
			assert.NoError(t, err)
			assert.False(t, seen[created.ID])
			seen[created.ID] = true
		}
	})
}

func TestStore_UpdateBooking(t *testing.T) {
	store := newLocalStore(t)
	ctx := context.Background()

	t.Run("Applies Partial Changes", func(t *testing.T) {
		confirmed := domain.BookingConfirmed
		err := store.UpdateBooking(ctx, "booking1", domain.BookingUpdate{Status: &confirmed})
		assert.NoError(t, err)

		updated, err := store.GetBookingByID("booking1")
		assert.NoError(t, err)
		assert.Equal(t, domain.BookingConfirmed, updated.Status)
		assert.Equal(t, "Premium Wedding Photography", updated.ServiceName)
	})

	t.Run("Unknown ID Is A No-Op", func(t *testing.T) {
		before := store.All()

		cancelled := domain.BookingCancelled
		err := store.UpdateBooking(ctx, "booking999", domain.BookingUpdate{Status: &cancelled})

		assert.NoError(t, err)
		assert.Equal(t, before, store.All())
	})

	t.Run("Normalizes Updated Vendor ID", func(t *testing.T) {
		newVendor := "5"
		err := store.UpdateBooking(ctx, "booking2", domain.BookingUpdate{VendorID: &newVendor})
		assert.NoError(t, err)

		updated, err := store.GetBookingByID("booking2")
		assert.NoError(t, err)
		assert.Equal(t, "vendor5", updated.VendorID)
	})
}

func TestStore_Queries(t *testing.T) {
	store := newLocalStore(t)

	t.Run("By User", func(t *testing.T) {
		assert.Len(t, store.GetBookingsByUserID("user1"), 2)
		assert.Len(t, store.GetBookingsByUserID("user2"), 1)
		assert.Empty(t, store.GetBookingsByUserID("nobody"))
	})

	t.Run("By Vendor Accepts Bare And Prefixed IDs", func(t *testing.T) {
		prefixed := store.GetBookingsByVendorID("vendor1")
		bare := store.GetBookingsByVendorID("1")

		assert.Len(t, prefixed, 2)
		assert.Equal(t, prefixed, bare)
	})

	t.Run("By ID Not Found", func(t *testing.T) {
		_, err := store.GetBookingByID("missing")
		assert.ErrorIs(t, err, booking.ErrNotFound)
	})
}

func TestStore_NormalizesLegacyRecords(t *testing.T) {
	records := recordstore.NewMemoryStore()
	ctx := context.Background()

	legacy := []byte(`[{"id":"booking1","userId":"user1","vendorId":"1","serviceName":"Photos","status":"pending","paymentStatus":"pending"}]`)
	assert.NoError(t, records.Put(ctx, "wedding_app_bookings", legacy))

	store := booking.NewStore(booking.NewLocalSource(records), nil, false)
	assert.NoError(t, store.Load(ctx))

	all := store.All()
	assert.Len(t, all, 1)
	assert.Equal(t, "vendor1", all[0].VendorID)
}

func TestStore_ReseedsUnreadableRecord(t *testing.T) {
	records := recordstore.NewMemoryStore()
	ctx := context.Background()

	assert.NoError(t, records.Put(ctx, "wedding_app_bookings", []byte("not json")))

	store := booking.NewStore(booking.NewLocalSource(records), nil, false)
	assert.NoError(t, store.Load(ctx))
	assert.Len(t, store.All(), 3)
}

func TestStore_BackendMode(t *testing.T) {
	t.Run("Toggle Without Remote Stays Local", func(t *testing.T) {
		store := newLocalStore(t)
		assert.False(t, store.BackendMode())
		assert.False(t, store.ToggleBackendMode())
		assert.False(t, store.BackendMode())
	})

	t.Run("Toggle With Remote Switches", func(t *testing.T) {
		remote := new(mocks.BookingSource)
		store := booking.NewStore(booking.NewLocalSource(recordstore.NewMemoryStore()), remote, false)

		assert.True(t, store.ToggleBackendMode())
		assert.True(t, store.BackendMode())
		assert.False(t, store.ToggleBackendMode())
	})

	t.Run("Remote Mode Loads From Remote", func(t *testing.T) {
		remote := new(mocks.BookingSource)
		remote.On("Load", mock.Anything).Return([]domain.Booking{
			{ID: "bookingR1", UserID: "user1", VendorID: "vendor1"},
		}, nil).Once()

		store := booking.NewStore(booking.NewLocalSource(recordstore.NewMemoryStore()), remote, true)
		assert.NoError(t, store.Load(context.Background()))

		all := store.All()
		assert.Len(t, all, 1)
		assert.Equal(t, "bookingR1", all[0].ID)
		remote.AssertExpectations(t)
	})

	t.Run("Remote Load Failure Surfaces", func(t *testing.T) {
		remote := new(mocks.BookingSource)
		remote.On("Load", mock.Anything).Return(nil, errors.New("backend down")).Once()

		store := booking.NewStore(booking.NewLocalSource(recordstore.NewMemoryStore()), remote, true)
		assert.Error(t, store.Load(context.Background()))
	})
}

// fakeRemote is a backend that can be healed mid-test. It records every
// booking that actually arrives, so tests can assert what the backend ended
// up with rather than what was attempted.
type fakeRemote struct {
	mu       sync.Mutex
	failing  bool
	creates  int
	bookings []domain.Booking
}

func (f *fakeRemote) setFailing(failing bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failing = failing
}

func (f *fakeRemote) createAttempts() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.creates
}

func (f *fakeRemote) booking(id string) (domain.Booking, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.bookings {
		if b.ID == id {
			return b, true
		}
	}
	return domain.Booking{}, false
}

func (f *fakeRemote) Load(ctx context.Context) ([]domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return nil, errors.New("backend down")
	}
	out := make([]domain.Booking, len(f.bookings))
	copy(out, f.bookings)
	return out, nil
}

func (f *fakeRemote) Create(ctx context.Context, booking domain.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates++
	if f.failing {
		return errors.New("backend down")
	}
	f.bookings = append(f.bookings, booking)
	return nil
}

func (f *fakeRemote) Update(ctx context.Context, id string, changes domain.BookingUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return errors.New("backend down")
	}
	for i := range f.bookings {
		if f.bookings[i].ID == id {
			if changes.Status != nil {
				f.bookings[i].Status = *changes.Status
			}
			if changes.Notes != nil {
				f.bookings[i].Notes = *changes.Notes
			}
			break
		}
	}
	return nil
}

func TestStore_OptimisticRemoteWrites(t *testing.T) {
	ctx := context.Background()

	draft := domain.BookingDraft{
		UserID:      "user1",
		UserName:    "Demo Client",
		VendorID:    "vendor1",
		ServiceName: "Premium Wedding Photography",
		ServiceDate: "2024-06-01",
		Amount:      2500,
	}

	t.Run("Healthy Backend Receives Create", func(t *testing.T) {
		remote := &fakeRemote{}
		store := booking.NewStore(booking.NewLocalSource(recordstore.NewMemoryStore()), remote, true)

		created, err := store.AddBooking(ctx, draft)
		assert.NoError(t, err)

		assert.Eventually(t, func() bool {
			_, ok := remote.booking(created.ID)
			return ok
		}, 2*time.Second, 20*time.Millisecond)
	})

	t.Run("Failed Create Is Visible Locally And Retried On Refresh", func(t *testing.T) {
		remote := &fakeRemote{failing: true}
		store := booking.NewStore(booking.NewLocalSource(recordstore.NewMemoryStore()), remote, true)

		created, err := store.AddBooking(ctx, draft)
		assert.NoError(t, err)

		// Optimistic: the caller sees the booking before the backend does.
		found, err := store.GetBookingByID(created.ID)
		assert.NoError(t, err)
		assert.Equal(t, created.ID, found.ID)

		assert.Eventually(t, func() bool {
			return remote.createAttempts() >= 1
		}, 2*time.Second, 20*time.Millisecond)
		_, delivered := remote.booking(created.ID)
		assert.False(t, delivered)

		remote.setFailing(false)
		assert.Eventually(t, func() bool {
			assert.NoError(t, store.Refresh(ctx))
			_, ok := remote.booking(created.ID)
			return ok
		}, 2*time.Second, 50*time.Millisecond)

		// Refresh reloads from the now-consistent backend.
		reloaded, err := store.GetBookingByID(created.ID)
		assert.NoError(t, err)
		assert.Equal(t, created.ID, reloaded.ID)
	})

	t.Run("Update While Create Is Queued Survives Retry", func(t *testing.T) {
		remote := &fakeRemote{failing: true}
		store := booking.NewStore(booking.NewLocalSource(recordstore.NewMemoryStore()), remote, true)

		created, err := store.AddBooking(ctx, draft)
		assert.NoError(t, err)
		assert.Eventually(t, func() bool {
			return remote.createAttempts() >= 1
		}, 2*time.Second, 20*time.Millisecond)

		notes := "Bring the drone for aerial shots"
		assert.NoError(t, store.UpdateBooking(ctx, created.ID, domain.BookingUpdate{Notes: &notes}))

		remote.setFailing(false)
		assert.Eventually(t, func() bool {
			assert.NoError(t, store.Refresh(ctx))
			delivered, ok := remote.booking(created.ID)
			return ok && delivered.Notes == notes
		}, 2*time.Second, 50*time.Millisecond)
	})

	t.Run("Failed Update On Existing Booking Is Retried", func(t *testing.T) {
		remote := &fakeRemote{bookings: []domain.Booking{
			{ID: "booking1", UserID: "user1", VendorID: "vendor1", Status: domain.BookingPending},
		}}
		store := booking.NewStore(booking.NewLocalSource(recordstore.NewMemoryStore()), remote, true)
		assert.NoError(t, store.Load(ctx))

		remote.setFailing(true)
		confirmed := domain.BookingConfirmed
		assert.NoError(t, store.UpdateBooking(ctx, "booking1", domain.BookingUpdate{Status: &confirmed}))

		// Applied locally right away.
		updated, err := store.GetBookingByID("booking1")
		assert.NoError(t, err)
		assert.Equal(t, domain.BookingConfirmed, updated.Status)

		remote.setFailing(false)
		assert.Eventually(t, func() bool {
			assert.NoError(t, store.Refresh(ctx))
			delivered, ok := remote.booking("booking1")
			return ok && delivered.Status == domain.BookingConfirmed
		}, 2*time.Second, 50*time.Millisecond)
	})
}
