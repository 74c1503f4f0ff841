package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Pravinkumar0908/trip-bus-sub002/internal/cache"
	"github.com/Pravinkumar0908/trip-bus-sub002/internal/config"
	"github.com/Pravinkumar0908/trip-bus-sub002/internal/database"
	"github.com/Pravinkumar0908/trip-bus-sub002/internal/handlers"
	"github.com/Pravinkumar0908/trip-bus-sub002/internal/middleware"
	"github.com/Pravinkumar0908/trip-bus-sub002/internal/services"
	"github.com/Pravinkumar0908/trip-bus-sub002/internal/utils"
	"github.com/Pravinkumar0908/trip-bus-sub002/pkg/session"
)

var (
	version   = "1.0.0"
	buildTime = "unknown"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	logger.Info("Starting TripBus Operator Backend")
	logger.Infof("Version: %s, Build Time: %s", version, buildTime)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	// Set log level
	logLevel, err := logrus.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		logger.Warn("Invalid log level, using INFO")
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Set Gin mode
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// Initialize database connection
	logger.Info("Connecting to database...")
	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	logger.Info("Database connection established")

	// Initialize Redis (session identity cache)
	logger.Info("Connecting to Redis...")
	redisClient, err := cache.NewRedisClient(context.Background(), cfg.Redis)
	if err != nil {
		logger.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	identityCache := cache.NewIdentityCache(redisClient, cfg.Redis.RefTTL)
	logger.Info("Redis connection established")

	// Initialize repositories
	operatorRepo := database.NewOperatorRepository(db)
	busRepo := database.NewBusRepository(db)
	seatRepo := database.NewSeatConfigRepository(db)
	bookingRepo := database.NewBookingRepository(db)
	passengerRepo := database.NewPassengerRepository(db)
	driverRepo := database.NewDriverRepository(db)

	// Initialize services
	logger.Info("Initializing services...")
	sessionService := session.NewService(cfg.Session.Secret)
	resolver := services.NewIdentityResolver(operatorRepo, identityCache, logger)
	seatService := services.NewSeatService(cfg.Fleet)
	fleetService := services.NewFleetService(busRepo, seatRepo, driverRepo, seatService, logger)
	bookingService := services.NewBookingService(bookingRepo, passengerRepo, logger, cfg.Fleet.AggregateWorkers)
	logger.Info("Services initialized")

	// Initialize handlers
	operatorHandler := handlers.NewOperatorHandler(resolver, identityCache)
	fleetHandler := handlers.NewFleetHandler(fleetService, resolver, identityCache)
	driverHandler := handlers.NewDriverHandler(fleetService, resolver, identityCache)
	bookingHandler := handlers.NewBookingHandler(bookingService, resolver, identityCache)

	// Initialize Gin router
	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(requestLogger(logger))

	// CORS configuration
	corsConfig := cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", healthCheckHandler(db))

	// API v1 routes (all protected by the external auth session token)
	v1 := router.Group("/api/v1")
	v1.Use(middleware.SessionMiddleware(sessionService))
	{
		operator := v1.Group("/operator")
		{
			operator.GET("/profile", operatorHandler.GetProfile)
			operator.PUT("/profile", operatorHandler.UpdateProfile)
		}

		buses := v1.Group("/buses")
		{
			buses.GET("", fleetHandler.GetBuses)
			buses.POST("", fleetHandler.CreateBus)
			buses.PUT("/:id", fleetHandler.UpdateBus)
			buses.DELETE("/:id", fleetHandler.DeleteBus)
		}

		drivers := v1.Group("/drivers")
		{
			drivers.GET("", driverHandler.GetDrivers)
			drivers.POST("", driverHandler.CreateDriver)
			drivers.PUT("/:id", driverHandler.UpdateDriver)
			drivers.DELETE("/:id", driverHandler.DeleteDriver)
		}

		bookings := v1.Group("/bookings")
		{
			bookings.GET("", bookingHandler.GetBookings)
			bookings.GET("/stats", bookingHandler.GetStats)
			bookings.POST("/:id/cancel", bookingHandler.CancelBooking)
		}
	}

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		logger.Infof("Server listening on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited")
}

// requestLogger logs each request with latency and a severity matching
// the response status class
func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)

		fields := logrus.Fields{
			"status":     c.Writer.Status(),
			"method":     c.Request.Method,
			"path":       path,
			"query":      query,
			"ip":         utils.ClientIP(c),
			"latency_ms": latency.Milliseconds(),
			"user_agent": c.Request.UserAgent(),
		}

		entry := logger.WithFields(fields)

		status := c.Writer.Status()
		switch {
		case status >= 500:
			entry.Error("Request completed with server error")
		case status >= 400:
			entry.Warn("Request completed with client error")
		default:
			entry.Info("Request completed successfully")
		}
	}
}

// healthCheckHandler returns a health check endpoint
func healthCheckHandler(db database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"database": "unhealthy",
				"error":    err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"database":  "healthy",
			"version":   version,
			"timestamp": time.Now().Unix(),
		})
	}
}
