package handler

import "wedding-liaison/internal/service"

type Handlers struct {
	Auth         *AuthHandler
	Booking      *BookingHandler
	Vendor       *VendorHandler
	Payment      *PaymentHandler
	Notification *NotificationHandler
	Message      *MessageHandler
	Pricing      *PricingHandler
	Media        *MediaHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Auth:         NewAuthHandler(services.Session, services.Email),
		Booking:      NewBookingHandler(services.Booking, services.Notification),
		Vendor:       NewVendorHandler(services.Vendor),
		Payment:      NewPaymentHandler(services.Payment, services.Booking, services.Email),
		Notification: NewNotificationHandler(services.Notification),
		Message:      NewMessageHandler(services.Message),
		Pricing:      NewPricingHandler(services.Pricing),
		Media:        NewMediaHandler(services.Media),
	}
}
