package service

import (
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"

	"wedding-liaison/internal/client"
	"wedding-liaison/internal/config"
	"wedding-liaison/internal/recordstore"
	"wedding-liaison/internal/service/booking"
	"wedding-liaison/internal/service/email"
	"wedding-liaison/internal/service/media"
	"wedding-liaison/internal/service/message"
	"wedding-liaison/internal/service/notification"
	"wedding-liaison/internal/service/payment"
	"wedding-liaison/internal/service/pricing"
	"wedding-liaison/internal/service/session"
	"wedding-liaison/internal/service/vendor"
)

type Services struct {
	Session      session.Service
	Booking      booking.Store
	Vendor       vendor.Service
	Payment      payment.Service
	Notification notification.Service
	Message      message.Service
	Pricing      pricing.Service
	Media        media.Service
	Email        email.Service
}

func NewServices(records recordstore.Store, gateway *client.Client, redisClient *redis.Client, minioClient *minio.Client, cfg *config.Config) (*Services, error) {
	emailService := email.NewService(cfg)

	var authProvider session.AuthProvider
	if cfg.BackendMode {
		authProvider = gateway
	} else {
		local, err := session.NewLocalProvider(records)
		if err != nil {
			return nil, err
		}
		authProvider = local
	}
	sessionService := session.NewService(authProvider, cfg)

	var remoteSource booking.Source
	var vendorGateway vendor.Gateway
	var paymentGateway payment.Gateway
	if gateway != nil {
		remoteSource = booking.NewRemoteSource(gateway)
		vendorGateway = gateway
		paymentGateway = gateway
	}
	bookingStore := booking.NewStore(booking.NewLocalSource(records), remoteSource, cfg.BackendMode)

	notificationService := notification.NewService(records, emailService)
	vendorService := vendor.NewService(vendorGateway, redisClient, cfg.VendorCacheTTL)
	paymentService := payment.NewService(records, bookingStore, notificationService, paymentGateway)
	messageService := message.NewService(records)
	pricingService := pricing.NewService()
	mediaService := media.NewService(records, minioClient, cfg)

	return &Services{
		Session:      sessionService,
		Booking:      bookingStore,
		Vendor:       vendorService,
		Payment:      paymentService,
		Notification: notificationService,
		Message:      messageService,
		Pricing:      pricingService,
		Media:        mediaService,
		Email:        emailService,
	}, nil
}
