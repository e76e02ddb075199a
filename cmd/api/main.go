package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"wedding-liaison/internal/client"
	"wedding-liaison/internal/config"
	"wedding-liaison/internal/domain"
	"wedding-liaison/internal/handler"
	"wedding-liaison/internal/middleware"
	"wedding-liaison/internal/recordstore"
	"wedding-liaison/internal/service"
	"wedding-liaison/internal/service/session"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	var records recordstore.Store
	if cfg.DatabaseURL != "" {
		db, err := config.NewPostgresDB(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()
		if err := recordstore.EnsureSchema(context.Background(), db); err != nil {
			log.Fatalf("Failed to prepare record table: %v", err)
		}
		records = recordstore.NewPostgresStore(db)
	} else {
		log.Println("DATABASE_URL not set, using in-memory record store")
		records = recordstore.NewMemoryStore()
	}

	redisClient, err := config.NewRedisClient(cfg)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v (vendor caching disabled)", err)
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	minioClient, err := config.NewMinIOClient(cfg)
	if err != nil {
		log.Printf("Warning: Failed to connect to MinIO: %v (media upload will not work)", err)
	}

	gateway := client.New(cfg.BackendBaseURL, cfg.BackendTimeout)

	services, err := service.NewServices(records, gateway, redisClient, minioClient, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize services: %v", err)
	}
	handlers := handler.NewHandlers(services)

	ctx := context.Background()
	services.Session.Recover(ctx)
	if err := services.Booking.Load(ctx); err != nil {
		log.Printf("Warning: Failed to load bookings: %v", err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	setupRoutes(app, handlers, services.Session)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRoutes(app *fiber.App, h *handler.Handlers, sessions session.Service) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.Post("/register", h.Auth.Register)
	auth.Post("/login", h.Auth.Login)
	auth.Get("/status", h.Auth.Status)

	vendors := v1.Group("/vendors")
	vendors.Get("/", h.Vendor.List)
	vendors.Get("/:id", h.Vendor.GetByID)
	vendors.Get("/:vendorId/portfolio", h.Media.ListByVendor)

	protected := v1.Group("", middleware.AuthRequired(sessions))

	protected.Post("/auth/logout", h.Auth.Logout)

	bookings := protected.Group("/bookings")
	bookings.Get("/", middleware.RequireRole(domain.RoleAdmin), h.Booking.List)
	bookings.Post("/", h.Booking.Create)
	bookings.Post("/refresh", middleware.RequireRole(domain.RoleAdmin), h.Booking.Refresh)
	bookings.Post("/toggle-mode", middleware.RequireRole(domain.RoleAdmin), h.Booking.ToggleMode)
	bookings.Get("/user/:userId", h.Booking.ListByUser)
	bookings.Get("/vendor/:vendorId", h.Booking.ListByVendor)
	bookings.Get("/:id", h.Booking.GetByID)
	bookings.Put("/:id", h.Booking.Update)

	protected.Post("/vendors/refresh", middleware.RequireRole(domain.RoleAdmin), h.Vendor.Refresh)

	payments := protected.Group("/payments")
	payments.Post("/", h.Payment.Process)
	payments.Get("/user/:userId", h.Payment.ListByUser)
	payments.Get("/booking/:bookingId", h.Payment.GetByBookingID)
	payments.Get("/:id", h.Payment.GetByID)

	notifications := protected.Group("/notifications")
	notifications.Get("/", h.Notification.List)
	notifications.Get("/unread-count", h.Notification.UnreadCount)
	notifications.Patch("/:id/read", h.Notification.MarkAsRead)
	notifications.Post("/mark-all-read", h.Notification.MarkAllAsRead)

	messages := protected.Group("/messages")
	messages.Get("/:conversationId", h.Message.History)
	messages.Post("/:conversationId", h.Message.Send)

	protected.Post("/pricing/quote", middleware.RequireRole(domain.RoleAdmin), h.Pricing.Quote)

	portfolio := protected.Group("/vendors/:vendorId/portfolio", middleware.RequireAnyRole(domain.RoleVendor, domain.RoleAdmin))
	portfolio.Post("/", h.Media.Upload)
	portfolio.Delete("/:itemId", h.Media.Delete)
}
