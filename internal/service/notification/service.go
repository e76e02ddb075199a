// Package notification keeps a per-user inbox in the record store, one named
// record per user.
package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"wedding-liaison/internal/domain"
	"wedding-liaison/internal/recordstore"
)

func recordName(userID string) string {
	return "notifications_" + userID
}

// Mailer is the slice of the email service the inbox needs.
type Mailer interface {
	SendBookingConfirmation(ctx context.Context, toEmail, name, serviceName, vendorName string) error
}

type Service interface {
	List(ctx context.Context, userID string) ([]domain.Notification, error)
	UnreadCount(ctx context.Context, userID string) (int, error)
	MarkAsRead(ctx context.Context, userID, id string) error
	MarkAllAsRead(ctx context.Context, userID string) error

	NotifyBookingCreated(ctx context.Context, userID string, booking domain.Booking)
	NotifyBookingConfirmed(ctx context.Context, userID, email, name string, booking domain.Booking)
	NotifyPaymentReceived(ctx context.Context, userID string, payment domain.Payment)
}

type service struct {
	records recordstore.Store
	mailer  Mailer
}

func NewService(records recordstore.Store, mailer Mailer) Service {
	return &service{records: records, mailer: mailer}
}

// List seeds a fresh inbox with the demo entries on first access and persists
// the seed immediately, matching the booking store's first-load behavior.
func (s *service) List(ctx context.Context, userID string) ([]domain.Notification, error) {
	notifications, err := s.load(ctx, userID)
	if err == recordstore.ErrNotFound {
		notifications = seedInbox(userID)
		if err := s.save(ctx, userID, notifications); err != nil {
			return nil, err
		}
		return notifications, nil
	}
	return notifications, err
}

func (s *service) UnreadCount(ctx context.Context, userID string) (int, error) {
	notifications, err := s.List(ctx, userID)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, n := range notifications {
		if !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (s *service) MarkAsRead(ctx context.Context, userID, id string) error {
	notifications, err := s.List(ctx, userID)
	if err != nil {
		return err
	}
	for i := range notifications {
		if notifications[i].ID == id {
			notifications[i].IsRead = true
			break
		}
	}
	return s.save(ctx, userID, notifications)
}

func (s *service) MarkAllAsRead(ctx context.Context, userID string) error {
	notifications, err := s.List(ctx, userID)
	if err != nil {
		return err
	}
	for i := range notifications {
		notifications[i].IsRead = true
	}
	return s.save(ctx, userID, notifications)
}

func (s *service) NotifyBookingCreated(ctx context.Context, userID string, booking domain.Booking) {
	s.push(ctx, domain.Notification{
		UserID:  userID,
		Title:   "Booking Created",
		Message: fmt.Sprintf("Booking for %s has been created.", booking.ServiceName),
		Type:    domain.NotifInfo,
		Link:    "/user/bookings",
	})
}

func (s *service) NotifyBookingConfirmed(ctx context.Context, userID, email, name string, booking domain.Booking) {
	s.push(ctx, domain.Notification{
		UserID:  userID,
		Title:   "Booking Confirmed",
		Message: fmt.Sprintf("Your booking with %s has been confirmed.", booking.VendorName),
		Type:    domain.NotifSuccess,
		Link:    "/user/bookings",
	})

	if s.mailer != nil && email != "" {
		go func() {
			if err := s.mailer.SendBookingConfirmation(context.Background(), email, name, booking.ServiceName, booking.VendorName); err != nil {
				fmt.Printf("Failed to send booking confirmation email: %v\n", err)
			}
		}()
	}
}

func (s *service) NotifyPaymentReceived(ctx context.Context, userID string, payment domain.Payment) {
	s.push(ctx, domain.Notification{
		UserID:  userID,
		Title:   "Payment Received",
		Message: fmt.Sprintf("Your payment of $%.2f was processed successfully.", payment.Amount),
		Type:    domain.NotifSuccess,
		Link:    "/user/bookings",
	})
}

// push appends to the inbox; inbox failures are logged by callers' stdout and
// never block the triggering operation.
func (s *service) push(ctx context.Context, n domain.Notification) {
	notifications, err := s.List(ctx, n.UserID)
	if err != nil {
		fmt.Printf("Failed to load inbox for %s: %v\n", n.UserID, err)
		return
	}

	n.ID = "n" + uuid.New().String()[:8]
	n.Timestamp = time.Now().UTC()
	notifications = append(notifications, n)

	if err := s.save(ctx, n.UserID, notifications); err != nil {
		fmt.Printf("Failed to persist inbox for %s: %v\n", n.UserID, err)
	}
}

func (s *service) load(ctx context.Context, userID string) ([]domain.Notification, error) {
	data, err := s.records.Get(ctx, recordName(userID))
	if err != nil {
		return nil, err
	}
	var notifications []domain.Notification
	if err := json.Unmarshal(data, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

func (s *service) save(ctx context.Context, userID string, notifications []domain.Notification) error {
	data, err := json.Marshal(notifications)
	if err != nil {
		return err
	}
	return s.records.Put(ctx, recordName(userID), data)
}

func seedInbox(userID string) []domain.Notification {
	now := time.Now().UTC()
	return []domain.Notification{
		{
			ID:        "n1",
			UserID:    userID,
			Title:     "Welcome!",
			Message:   "Welcome to Wedding Liaison. Start planning your perfect day!",
			Type:      domain.NotifInfo,
			Timestamp: now,
			Link:      "/user",
		},
		{
			ID:        "n2",
			UserID:    userID,
			Title:     "Booking Confirmed",
			Message:   "Your booking with Elegant Moments Photography has been confirmed.",
			Type:      domain.NotifSuccess,
			Timestamp: now.Add(-time.Hour),
			Link:      "/user/bookings",
		},
	}
}
