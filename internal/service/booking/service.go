// Package booking owns the authoritative booking collection. Queries are
// served from memory; mutations go through the active Source (durable local
// record or remote backend). Within one store instance a write is visible to
// the next read.
package booking

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"wedding-liaison/internal/domain"
)

var ErrNotFound = errors.New("booking not found")

type Store interface {
	Load(ctx context.Context) error
	AddBooking(ctx context.Context, draft domain.BookingDraft) (*domain.Booking, error)
	UpdateBooking(ctx context.Context, id string, changes domain.BookingUpdate) error
	GetBookingsByUserID(userID string) []domain.Booking
	GetBookingsByVendorID(vendorID string) []domain.Booking
	GetBookingByID(id string) (*domain.Booking, error)
	All() []domain.Booking
	Refresh(ctx context.Context) error
	ToggleBackendMode() bool
	BackendMode() bool
}

type pendingKind int

const (
	pendingCreate pendingKind = iota
	pendingUpdate
)

// pendingOp is a remote submission that failed. It stays queued until a later
// mutation or refresh pushes it through, so optimistic local state never
// silently diverges from the backend.
type pendingOp struct {
	kind    pendingKind
	booking domain.Booking
	changes domain.BookingUpdate
}

type store struct {
	mu       sync.RWMutex
	bookings []domain.Booking

	local      Source
	remote     Source
	remoteMode bool

	pendingMu sync.Mutex
	pending   map[string]pendingOp
}

func NewStore(local, remote Source, remoteMode bool) Store {
	return &store{
		local:      local,
		remote:     remote,
		remoteMode: remoteMode && remote != nil,
		pending:    make(map[string]pendingOp),
	}
}

func (s *store) source() Source {
	if s.remoteMode {
		return s.remote
	}
	return s.local
}

func (s *store) Load(ctx context.Context) error {
	s.mu.Lock()
	src := s.source()
	s.mu.Unlock()

	bookings, err := src.Load(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.bookings = bookings
	s.mu.Unlock()
	return nil
}

func (s *store) AddBooking(ctx context.Context, draft domain.BookingDraft) (*domain.Booking, error) {
	now := time.Now().UTC()
	booking := domain.Booking{
		ID:            "booking" + uuid.New().String()[:8],
		UserID:        draft.UserID,
		UserName:      draft.UserName,
		VendorID:      domain.NormalizeVendorID(draft.VendorID),
		VendorName:    draft.VendorName,
		ServiceName:   draft.ServiceName,
		ServiceDate:   draft.ServiceDate,
		EventType:     draft.EventType,
		Amount:        draft.Amount,
		Status:        domain.BookingPending,
		PaymentStatus: domain.PaymentPending,
		Notes:         draft.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	s.mu.Lock()
	s.bookings = append(s.bookings, booking)
	remoteMode := s.remoteMode
	s.mu.Unlock()

	if remoteMode {
		// Optimistic: the stamped copy is returned immediately; the network
		// submit completes independently.
		go s.submitCreate(booking)
	} else {
		if err := s.local.Create(ctx, booking); err != nil {
			return nil, err
		}
	}

	// Queued remote submissions ride along off the request path.
	go s.retryPending(context.Background())
	return &booking, nil
}

func (s *store) UpdateBooking(ctx context.Context, id string, changes domain.BookingUpdate) error {
	now := time.Now().UTC()

	s.mu.Lock()
	matched := false
	for i := range s.bookings {
		if s.bookings[i].ID == id {
			applyUpdate(&s.bookings[i], changes, now)
			matched = true
			break
		}
	}
	remoteMode := s.remoteMode
	s.mu.Unlock()

	// Unknown id: the collection is untouched and the call still succeeds.
	if !matched {
		return nil
	}

	if remoteMode {
		go s.submitUpdate(id, changes)
	} else {
		if err := s.local.Update(ctx, id, changes); err != nil {
			return err
		}
	}

	go s.retryPending(context.Background())
	return nil
}

func (s *store) GetBookingsByUserID(userID string) []domain.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := []domain.Booking{}
	for _, b := range s.bookings {
		if b.UserID == userID {
			matches = append(matches, b)
		}
	}
	return matches
}

func (s *store) GetBookingsByVendorID(vendorID string) []domain.Booking {
	lookupID := domain.NormalizeVendorID(vendorID)

	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := []domain.Booking{}
	for _, b := range s.bookings {
		if domain.NormalizeVendorID(b.VendorID) == lookupID {
			matches = append(matches, b)
		}
	}
	return matches
}

func (s *store) GetBookingByID(id string) (*domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, b := range s.bookings {
		if b.ID == id {
			booking := b
			return &booking, nil
		}
	}
	return nil, ErrNotFound
}

func (s *store) All() []domain.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Booking, len(s.bookings))
	copy(out, s.bookings)
	return out
}

// Refresh forces a reload from the active source, bypassing the in-memory
// collection, and retries any queued remote submissions first.
func (s *store) Refresh(ctx context.Context) error {
	s.retryPending(ctx)
	return s.Load(ctx)
}

// ToggleBackendMode switches persistence strategies without migrating data.
// Demonstration use only.
func (s *store) ToggleBackendMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.remote == nil {
		return false
	}
	s.remoteMode = !s.remoteMode
	return s.remoteMode
}

func (s *store) BackendMode() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.remoteMode
}

func (s *store) submitCreate(booking domain.Booking) {
	if err := s.remote.Create(context.Background(), booking); err != nil {
		log.Printf("Remote create for %s failed, queued for retry: %v", booking.ID, err)
		s.pendingMu.Lock()
		s.pending[booking.ID] = pendingOp{kind: pendingCreate, booking: booking}
		s.pendingMu.Unlock()
	}
}

func (s *store) submitUpdate(id string, changes domain.BookingUpdate) {
	// A queued create means the backend has never seen this id; an update
	// would be rejected, and the create resends current local state anyway.
	s.pendingMu.Lock()
	if op, ok := s.pending[id]; ok && op.kind == pendingCreate {
		s.pendingMu.Unlock()
		return
	}
	s.pendingMu.Unlock()

	if err := s.remote.Update(context.Background(), id, changes); err != nil {
		log.Printf("Remote update for %s failed, queued for retry: %v", id, err)
		s.pendingMu.Lock()
		if op, ok := s.pending[id]; ok && op.kind == pendingCreate {
			// A create failure queued concurrently; it wins, and carries the
			// updated state when retried.
		} else if ok && op.kind == pendingUpdate {
			s.pending[id] = pendingOp{kind: pendingUpdate, changes: mergeChanges(op.changes, changes)}
		} else {
			s.pending[id] = pendingOp{kind: pendingUpdate, changes: changes}
		}
		s.pendingMu.Unlock()
	}
}

func (s *store) retryPending(ctx context.Context) {
	s.pendingMu.Lock()
	defer s.pendingMu.Unlock()

	for id, op := range s.pending {
		var err error
		switch op.kind {
		case pendingCreate:
			// Resend current local state so updates made while the create was
			// queued are not lost.
			payload := op.booking
			if current, lookErr := s.GetBookingByID(id); lookErr == nil {
				payload = *current
			}
			err = s.remote.Create(ctx, payload)
		case pendingUpdate:
			err = s.remote.Update(ctx, id, op.changes)
		}
		if err == nil {
			delete(s.pending, id)
		}
	}
}

// mergeChanges folds an older queued partial update into a newer one; the
// newer value wins field by field.
func mergeChanges(older, newer domain.BookingUpdate) domain.BookingUpdate {
	if newer.VendorID == nil {
		newer.VendorID = older.VendorID
	}
	if newer.VendorName == nil {
		newer.VendorName = older.VendorName
	}
	if newer.ServiceName == nil {
		newer.ServiceName = older.ServiceName
	}
	if newer.ServiceDate == nil {
		newer.ServiceDate = older.ServiceDate
	}
	if newer.EventType == nil {
		newer.EventType = older.EventType
	}
	if newer.Amount == nil {
		newer.Amount = older.Amount
	}
	if newer.Status == nil {
		newer.Status = older.Status
	}
	if newer.PaymentStatus == nil {
		newer.PaymentStatus = older.PaymentStatus
	}
	if newer.Notes == nil {
		newer.Notes = older.Notes
	}
	return newer
}

func applyUpdate(b *domain.Booking, changes domain.BookingUpdate, now time.Time) {
	if changes.VendorID != nil {
		b.VendorID = domain.NormalizeVendorID(*changes.VendorID)
	}
	if changes.VendorName != nil {
		b.VendorName = *changes.VendorName
	}
	if changes.ServiceName != nil {
		b.ServiceName = *changes.ServiceName
	}
	if changes.ServiceDate != nil {
		b.ServiceDate = *changes.ServiceDate
	}
	if changes.EventType != nil {
		b.EventType = *changes.EventType
	}
	if changes.Amount != nil {
		b.Amount = *changes.Amount
	}
	if changes.Status != nil {
		b.Status = *changes.Status
	}
	if changes.PaymentStatus != nil {
		b.PaymentStatus = *changes.PaymentStatus
	}
	if changes.Notes != nil {
		b.Notes = *changes.Notes
	}
	b.UpdatedAt = now
}
