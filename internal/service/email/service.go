package email

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v3"

	"wedding-liaison/internal/config"
)

type Service interface {
	SendWelcomeEmail(ctx context.Context, toEmail, name string) error
	SendBookingConfirmation(ctx context.Context, toEmail, name, serviceName, vendorName string) error
	SendPaymentReceipt(ctx context.Context, toEmail, name string, amount float64, transactionID string) error
}

type service struct {
	client *resend.Client
	config *config.Config
}

func NewService(cfg *config.Config) Service {
	client := resend.NewClient(cfg.ResendAPIKey)
	return &service{
		client: client,
		config: cfg,
	}
}

func (s *service) sendEmail(toEmail, subject, html string) error {
	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("Wedding Liaison <%s>", s.config.FromEmail),
		To:      []string{toEmail},
		Html:    html,
		Subject: subject,
	}

	_, err := s.client.Emails.Send(params)
	return err
}

func (s *service) SendWelcomeEmail(ctx context.Context, toEmail, name string) error {
	html := fmt.Sprintf(
		`<p>Hi %s,</p><p>Welcome to Wedding Liaison! Browse our vendors and start planning your perfect day.</p><p><a href="http://%s/user">Get started</a></p>`,
		name, s.config.Domain)
	return s.sendEmail(toEmail, "Welcome to Wedding Liaison!", html)
}

func (s *service) SendBookingConfirmation(ctx context.Context, toEmail, name, serviceName, vendorName string) error {
	html := fmt.Sprintf(
		`<p>Hi %s,</p><p>Your booking for <strong>%s</strong> with %s has been confirmed.</p><p><a href="http://%s/user/bookings">View your bookings</a></p>`,
		name, serviceName, vendorName, s.config.Domain)
	return s.sendEmail(toEmail, "Booking Confirmed - Wedding Liaison", html)
}

func (s *service) SendPaymentReceipt(ctx context.Context, toEmail, name string, amount float64, transactionID string) error {
	html := fmt.Sprintf(
		`<p>Hi %s,</p><p>We received your payment of <strong>$%.2f</strong>.</p><p>Transaction reference: %s</p>`,
		name, amount, transactionID)
	return s.sendEmail(toEmail, "Payment Receipt - Wedding Liaison", html)
}
