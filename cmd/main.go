package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/joho/godotenv"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/random"

	"fleetrent/internal/caching"
	"fleetrent/internal/changes"
	"fleetrent/internal/config"
	"fleetrent/internal/handlers"
	"fleetrent/internal/mailer"
	"fleetrent/internal/middleware"
	"fleetrent/internal/models"
	"fleetrent/internal/reports"
	"fleetrent/internal/repositories"
	"fleetrent/internal/services"
	"fleetrent/pkg/database"
)

const (
	accessTokenTTLSeconds  = 15 * 60
	refreshTokenTTLSeconds = 7 * 24 * 60 * 60
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = random.String(32)
		log.Println("WARNING: JWT_SECRET not set, using a generated development secret")
	}

	pool, err := database.NewPool(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	storageSvc, err := services.NewMinioStorage(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL)
	if err != nil {
		log.Fatalf("Failed to initialize object storage: %v", err)
	}
	if err := storageSvc.EnsureBucketExists(context.Background()); err != nil {
		log.Printf("WARNING: could not ensure storage bucket exists: %v", err)
	}

	redisClient := caching.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	cacheSvc := caching.NewRedisCacheService(redisClient)
	broker := changes.NewRedisBroker(redisClient)
	mail := mailer.NewHTTPMailer(cfg.StatusEmailURL, cfg.ConfirmationEmailURL, cfg.EmailServiceToken)

	// Repositories
	tenantRepo := repositories.NewTenantRepo(pool)
	userRepo := repositories.NewAppUserRepo(pool)
	vehicleRepo := repositories.NewVehicleRepo(pool)
	variantRepo := repositories.NewVariantRepo(pool)
	bookingRepo := repositories.NewBookingRepo(pool)
	carOwnerRepo := repositories.NewCarOwnerRepo(pool)
	notificationRepo := repositories.NewNotificationRepo(pool)
	websiteRepo := repositories.NewWebsiteRepo(pool)
	galleryRepo := repositories.NewGalleryRepo(pool)
	settingsRepo := repositories.NewSettingsRepo(pool)

	// Services
	authSvc := services.NewAuthService(userRepo, cacheSvc, cfg.JWTSecret, accessTokenTTLSeconds, refreshTokenTTLSeconds)
	appUserSvc := services.NewAppUserService(userRepo, tenantRepo, cacheSvc, broker)
	tenantSvc := services.NewTenantService(tenantRepo, broker)
	vehicleSvc := services.NewVehicleService(vehicleRepo, storageSvc, cacheSvc, broker)
	variantSvc := services.NewVariantService(variantRepo, vehicleRepo, broker)
	settingsSvc := services.NewSettingsService(settingsRepo, cacheSvc, broker)
	bookingSvc := services.NewBookingService(bookingRepo, variantRepo, vehicleRepo, userRepo, notificationRepo, settingsSvc, mail, cacheSvc, broker)
	carOwnerSvc := services.NewCarOwnerService(carOwnerRepo, storageSvc, broker)
	websiteSvc := services.NewWebsiteService(websiteRepo, galleryRepo, storageSvc, broker)
	notificationSvc := services.NewNotificationService(notificationRepo, broker)
	reportSvc := reports.NewService(bookingRepo, cacheSvc)

	// Handlers
	authHandlers := handlers.NewAuthHandlers(authSvc, appUserSvc)
	vehicleHandlers := handlers.NewVehicleHandlers(vehicleSvc, variantSvc)
	variantHandlers := handlers.NewVariantHandlers(variantSvc)
	bookingHandlers := handlers.NewBookingHandlers(bookingSvc, vehicleSvc)
	appUserHandlers := handlers.NewAppUserHandlers(appUserSvc)
	tenantHandlers := handlers.NewTenantHandlers(tenantSvc)
	carOwnerHandlers := handlers.NewCarOwnerHandlers(carOwnerSvc)
	settingsHandlers := handlers.NewSettingsHandlers(settingsSvc)
	websiteHandlers := handlers.NewWebsiteHandlers(websiteSvc)
	notificationHandlers := handlers.NewNotificationHandlers(notificationSvc)
	reportHandlers := handlers.NewReportHandlers(reportSvc)
	changesHandlers := handlers.NewChangesHandlers(broker)
	publicHandlers := handlers.NewPublicHandlers(cfg.PinnedOwnerID, vehicleSvc, variantSvc, websiteSvc, bookingSvc, mail)
	healthHandlers := handlers.NewHealthHandlers(pool)

	e := echo.New()
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Pre(echoMiddleware.RemoveTrailingSlash())

	// Health
	e.GET("/health", healthHandlers.Health)
	e.GET("/health/ready", healthHandlers.Ready)

	// Public customer site, pinned to one tenant by OWNER_ID
	public := e.Group("/public")
	public.GET("/vehicles", publicHandlers.ListVehicles)
	public.GET("/vehicles/:id", publicHandlers.GetVehicle)
	public.GET("/content", publicHandlers.GetContent)
	public.GET("/gallery", publicHandlers.ListGallery)
	public.POST("/bookings", publicHandlers.CreateBooking)

	vm := middleware.NewVersionMiddleware()
	v1 := vm.VersionRoute(e, "v1")

	// Auth routes that run without a session
	auth := v1.Group("/auth")
	auth.POST("/login", authHandlers.Login)
	auth.POST("/register", authHandlers.RegisterOwner)
	auth.POST("/refresh", authHandlers.Refresh)
	auth.POST("/password/reset", authHandlers.RequestPasswordReset)
	auth.POST("/password/reset/confirm", authHandlers.ResetPassword)

	jwtConfig := echojwt.Config{
		SigningKey: []byte(cfg.JWTSecret),
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
		},
	}
	sessionMW := middleware.SessionMiddleware(userRepo, cacheSvc, cfg.JWTSecret)
	staff := middleware.RequireRole(models.RoleOwner, models.RoleAdmin)
	ownerOnly := middleware.RequireRole(models.RoleOwner)
	anyStaff := middleware.RequireRole(models.RoleOwner, models.RoleAdmin, models.RoleDriver)

	protected := v1.Group("", echojwt.WithConfig(jwtConfig), sessionMW)
	protected.GET("/me", authHandlers.Me, anyStaff)
	protected.POST("/auth/logout", authHandlers.Logout, anyStaff)
	protected.POST("/auth/password/update", authHandlers.UpdatePassword, anyStaff)

	// Vehicles
	protected.GET("/vehicles", vehicleHandlers.ListVehicles, anyStaff)
	protected.POST("/vehicles", vehicleHandlers.CreateVehicle, staff)
	protected.GET("/vehicles/:id", vehicleHandlers.GetVehicle, anyStaff)
	protected.PUT("/vehicles/:id", vehicleHandlers.UpdateVehicle, staff)
	protected.DELETE("/vehicles/:id", vehicleHandlers.DeleteVehicle, staff)
	protected.POST("/vehicles/:id/images", vehicleHandlers.UploadVehicleImage, staff)
	protected.GET("/vehicles/:id/variants", vehicleHandlers.ListVariants, anyStaff)

	// Variants
	protected.POST("/variants", variantHandlers.CreateVariant, staff)
	protected.GET("/variants/:id", variantHandlers.GetVariant, anyStaff)
	protected.PUT("/variants/:id", variantHandlers.UpdateVariant, staff)
	protected.DELETE("/variants/:id", variantHandlers.DeleteVariant, staff)
	protected.POST("/variants/:id/adjust", variantHandlers.AdjustQuantity, staff)

	// Bookings
	protected.GET("/bookings", bookingHandlers.ListBookings, anyStaff)
	protected.POST("/bookings", bookingHandlers.CreateBooking, staff)
	protected.GET("/bookings/:id", bookingHandlers.GetBooking, anyStaff)
	protected.PUT("/bookings/:id", bookingHandlers.UpdateBooking, staff)
	protected.DELETE("/bookings/:id", bookingHandlers.DeleteBooking, staff)
	protected.POST("/bookings/:id/confirm", bookingHandlers.ConfirmBooking, staff)
	protected.POST("/bookings/:id/decline", bookingHandlers.DeclineBooking, staff)
	protected.POST("/bookings/:id/cancel", bookingHandlers.CancelBooking, staff)
	protected.POST("/bookings/:id/assign-driver", bookingHandlers.AssignDriver, staff)
	protected.POST("/bookings/:id/start-trip", bookingHandlers.StartTrip, anyStaff)
	protected.POST("/bookings/:id/complete-trip", bookingHandlers.CompleteTrip, anyStaff)
	protected.GET("/bookings/:id/receipt", bookingHandlers.SettlementReceipt, anyStaff)

	// App users (owner only)
	protected.GET("/users", appUserHandlers.ListAppUsers, staff)
	protected.POST("/users", appUserHandlers.CreateAppUser, ownerOnly)
	protected.GET("/users/:id", appUserHandlers.GetAppUser, staff)
	protected.PUT("/users/:id", appUserHandlers.UpdateAppUser, ownerOnly)
	protected.DELETE("/users/:id", appUserHandlers.DeleteAppUser, ownerOnly)

	// Tenant business profile
	protected.GET("/tenant", tenantHandlers.GetTenant, staff)
	protected.PUT("/tenant", tenantHandlers.UpdateTenant, ownerOnly)

	// Car owners
	protected.GET("/car-owners", carOwnerHandlers.ListCarOwners, staff)
	protected.POST("/car-owners", carOwnerHandlers.CreateCarOwner, staff)
	protected.GET("/car-owners/:id", carOwnerHandlers.GetCarOwner, staff)
	protected.PUT("/car-owners/:id", carOwnerHandlers.UpdateCarOwner, staff)
	protected.DELETE("/car-owners/:id", carOwnerHandlers.DeleteCarOwner, staff)
	protected.POST("/car-owners/:id/government-id", carOwnerHandlers.UploadGovernmentID, staff)

	// Website content and gallery
	protected.GET("/website/content", websiteHandlers.GetContent, staff)
	protected.PUT("/website/content", websiteHandlers.UpdateContent, staff)
	protected.GET("/website/gallery", websiteHandlers.ListGallery, staff)
	protected.POST("/website/gallery", websiteHandlers.AddGalleryImage, staff)
	protected.DELETE("/website/gallery/:id", websiteHandlers.DeleteGalleryImage, staff)

	// System settings (owner write)
	protected.GET("/settings", settingsHandlers.GetSettings, staff)
	protected.PUT("/settings", settingsHandlers.UpdateSettings, ownerOnly)

	// Notifications
	protected.GET("/notifications", notificationHandlers.ListNotifications, staff)
	protected.POST("/notifications/:id/read", notificationHandlers.MarkRead, staff)
	protected.POST("/notifications/:id/dismiss", notificationHandlers.Dismiss, staff)

	// Reports
	protected.GET("/reports/balance", reportHandlers.NetBalance, anyStaff)

	// Live change feed (SSE)
	protected.GET("/changes", changesHandlers.Stream, anyStaff)

	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Printf("Starting server on %s", addr)
	e.Logger.Fatal(e.Start(addr))
}
