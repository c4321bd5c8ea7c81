package main

import (
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/vikashchaurasiya2005/cab-booking-portal/internal/database"
	"github.com/vikashchaurasiya2005/cab-booking-portal/internal/handlers"
	"github.com/vikashchaurasiya2005/cab-booking-portal/internal/middleware"
	"github.com/vikashchaurasiya2005/cab-booking-portal/internal/openmarket"
	"github.com/vikashchaurasiya2005/cab-booking-portal/internal/repository"
	"github.com/vikashchaurasiya2005/cab-booking-portal/internal/services"
	"github.com/vikashchaurasiya2005/cab-booking-portal/pkg/logger"
)

func main() {
	log := logger.New("booking-portal")

	if err := godotenv.Load(); err != nil {
		log.Warning("no .env file loaded", logger.Error(err))
	}

	db, err := database.InitDB()
	if err != nil {
		log.Error("failed to initialize database", logger.Error(err))
		os.Exit(1)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Error("failed to get database instance", logger.Error(err))
		os.Exit(1)
	}

	// Configure connection pool
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	// Redis is a lookup cache only; a missing instance costs latency, not
	// correctness.
	var vendorCache *services.VendorCache
	if redisClient, err := services.InitRedis(); err != nil {
		log.Warning("redis unavailable, whitelist lookups go to the database", logger.Error(err))
	} else {
		vendorCache = services.NewVendorCache(redisClient)
	}

	if err := services.InitStorage(); err != nil {
		log.Error("failed to initialize storage", logger.Error(err))
		os.Exit(1)
	}

	hub := services.NewHub(logger.New("fanout"))
	go hub.Run()

	marketSvc := openmarket.New(
		repository.NewBookingRepo(db),
		repository.NewVendorRepo(db, vendorCache),
		hub,
		logger.New("openmarket"),
	)

	r := gin.Default()

	config := cors.DefaultConfig()
	config.AllowOrigins = []string{"*"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	r.Use(cors.New(config))

	r.Static("/uploads", "/app/uploads")

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.Register(db))
			auth.POST("/login", handlers.Login(db))
		}

		// Real-time connection; token is optional at handshake time.
		api.GET("/ws", handlers.WebSocketHandler(hub))

		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware())
		{
			bookings := protected.Group("/bookings")
			bookings.Use(middleware.RequireRoles("vendor", "admin"))
			{
				bookings.POST("", handlers.CreateBooking(db, hub))
				bookings.GET("", handlers.GetBookings(db))
				bookings.GET("/:id", handlers.GetBooking(db))
				bookings.PUT("/:id", handlers.UpdateBooking(db, hub))
			}
			protected.DELETE("/bookings/:id", middleware.RequireRoles("admin"), handlers.DeleteBooking(db, hub))

			market := protected.Group("/open-market")
			market.Use(middleware.RequireRoles("vendor", "admin"))
			{
				market.POST("/:id/push", handlers.PushToOpenMarket(marketSvc))
				market.GET("", handlers.GetOpenMarketBookings(marketSvc))
			}

			drivers := protected.Group("/drivers")
			drivers.Use(middleware.RequireRoles("vendor", "admin"))
			{
				drivers.POST("", handlers.CreateDriver(db, hub))
				drivers.GET("", handlers.GetDrivers(db))
				drivers.GET("/:id", handlers.GetDriver(db))
				drivers.PUT("/:id", handlers.UpdateDriver(db, hub))
				drivers.DELETE("/:id", handlers.DeleteDriver(db))
			}

			vehicles := protected.Group("/vehicles")
			vehicles.Use(middleware.RequireRoles("vendor", "admin"))
			{
				vehicles.POST("", handlers.CreateVehicle(db, hub))
				vehicles.GET("", handlers.GetVehicles(db))
				vehicles.GET("/:id", handlers.GetVehicle(db))
				vehicles.PUT("/:id", handlers.UpdateVehicle(db, hub))
				vehicles.DELETE("/:id", handlers.DeleteVehicle(db))
			}

			invoices := protected.Group("/invoices")
			invoices.Use(middleware.RequireRoles("vendor", "admin"))
			{
				invoices.POST("", handlers.CreateInvoice(db, hub))
				invoices.GET("", handlers.GetInvoices(db))
				invoices.GET("/:id", handlers.GetInvoice(db))
				invoices.PUT("/:id", handlers.UpdateInvoice(db, hub))
				invoices.DELETE("/:id", handlers.DeleteInvoice(db))
				invoices.POST("/:id/document", handlers.UploadInvoiceDocument(db, hub))
			}
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		log.Error("failed to start server", logger.Error(err))
		os.Exit(1)
	}
}
