package main

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/tanjilh136/mealprep/internal/admin"
	"github.com/tanjilh136/mealprep/internal/address"
	"github.com/tanjilh136/mealprep/internal/auth"
	"github.com/tanjilh136/mealprep/internal/booking"
	"github.com/tanjilh136/mealprep/internal/calendar"
	"github.com/tanjilh136/mealprep/internal/config"
	"github.com/tanjilh136/mealprep/internal/db"
	"github.com/tanjilh136/mealprep/internal/export"
	"github.com/tanjilh136/mealprep/internal/kitchen"
	"github.com/tanjilh136/mealprep/internal/menu"
	"github.com/tanjilh136/mealprep/internal/middleware"
	"github.com/tanjilh136/mealprep/internal/onboarding"
	"github.com/tanjilh136/mealprep/internal/region"
	"github.com/tanjilh136/mealprep/internal/storage"
)

func main() {

	// ───────────────────────── ENV ─────────────────────────
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	required := []string{
		"JWT_SECRET",
		"DATABASE_URL",
	}

	for _, k := range required {
		if os.Getenv(k) == "" {
			log.Fatalf("❌ Missing env var: %s", k)
		}
	}

	if err := config.Validate(); err != nil {
		log.Fatal("❌ Invalid pricing configuration:", err)
	}

	// ───────────────────────── DB ─────────────────────────
	pgDB := db.ConnectPostgres()
	defer pgDB.Close()

	// ───────────────────────── GIN ─────────────────────────
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// ───────────────────────── STORAGE (optional) ─────────────────────────
	var uploader export.Uploader
	r2Client, err := storage.NewR2Client(context.Background())
	switch {
	case err == nil:
		uploader = r2Client
	case errors.Is(err, storage.ErrNotConfigured):
		log.Println("Object storage not configured, exports stream only")
	default:
		log.Fatal("❌ R2 init failed:", err)
	}

	// ───────────────────────── CORE REPOS ─────────────────────────
	userRepo := auth.NewPostgresUserRepository(pgDB)
	regionRepo := region.NewPostgresRepository(pgDB)
	addressRepo := address.NewPostgresRepository(pgDB)
	menuRepo := menu.NewPostgresRepository(pgDB)
	bookingRepo := booking.NewPostgresRepository(pgDB)
	onboardingRepo := onboarding.NewPostgresRepository(pgDB)

	// ───────────────────────── SERVICES (ORDER MATTERS) ─────────────────────────
	slots := calendar.NewSlotCatalog()

	menuService := menu.NewService(menuRepo)
	regionService := region.NewService(regionRepo)
	addressService := address.NewService(addressRepo)
	bookingService := booking.NewService(bookingRepo, addressService, slots)
	onboardingService := onboarding.NewService(onboardingRepo, menuService)
	authService := auth.NewService(userRepo, onboardingRepo)
	kitchenService := kitchen.NewService(bookingRepo, userRepo, addressRepo, menuService)
	adminService := admin.NewService(bookingRepo, userRepo, menuService)
	exportService := export.NewService(bookingRepo, userRepo, addressRepo, menuService, uploader)

	// ───────────────────────── HANDLERS ─────────────────────────
	authHandler := auth.NewHandler(authService)
	menuHandler := menu.NewHandler(menuService)
	adminMenuHandler := menu.NewAdminHandler(menuService)
	regionHandler := region.NewHandler(regionService)
	addressHandler := address.NewHandler(addressService)
	bookingHandler := booking.NewHandler(bookingService)
	onboardingHandler := onboarding.NewHandler(onboardingService, bookingService)
	kitchenHandler := kitchen.NewHandler(kitchenService)
	adminHandler := admin.NewHandler(adminService, authService)
	exportHandler := export.NewHandler(exportService)

	// ───────────────────────── PUBLIC ROUTES ─────────────────────────
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/reset-password", authHandler.ResetPassword)
	}

	r.GET("/menu/week", menuHandler.PublicWeek)
	r.GET("/bookings/slots", bookingHandler.ListSlots)

	// Pre-account onboarding: no auth until registration links the draft.
	onboardingGroup := r.Group("/onboarding")
	{
		onboardingGroup.POST("/first-week", onboardingHandler.FirstWeek)
		onboardingGroup.POST("/client-type", onboardingHandler.SetClientType)
		onboardingGroup.GET("/explain", onboardingHandler.Explain)
		onboardingGroup.POST("/iban", onboardingHandler.SetIBAN)
	}

	// ───────────────────────── CLIENT ROUTES ─────────────────────────
	protected := r.Group("/")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.GET("/users/me", authHandler.Me)

		protected.GET("/addresses", addressHandler.List)
		protected.POST("/addresses", addressHandler.Create)
		protected.PUT("/addresses/:id", addressHandler.Update)
		protected.DELETE("/addresses/:id", addressHandler.Delete)

		protected.POST("/bookings", bookingHandler.Create)
		protected.GET("/bookings", bookingHandler.ListMine)
		protected.PUT("/bookings/:id", bookingHandler.Update)
		protected.POST("/bookings/:id/cancel", bookingHandler.Cancel)
		protected.GET("/bookings/week-pricing", bookingHandler.WeekPricing)

		protected.POST("/onboarding/ensure-week", onboardingHandler.EnsureWeek)
	}

	// ───────────────────────── KITCHEN ROUTES ─────────────────────────
	kitchenGroup := r.Group("/kitchen")
	kitchenGroup.Use(middleware.AuthMiddleware(), middleware.RequireRole(auth.RoleKitchen, auth.RoleAdmin))
	{
		kitchenGroup.GET("/day", kitchenHandler.Day)
		kitchenGroup.GET("/export/today", exportHandler.Today)
	}

	// ───────────────────────── ADMIN ROUTES ─────────────────────────
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.AuthMiddleware(), middleware.RequireRole(auth.RoleAdmin))
	{
		adminGroup.POST("/menu/days", adminMenuHandler.UpsertDay)
		adminGroup.GET("/menu/days", adminMenuHandler.List)
		adminGroup.GET("/menu/days/:day_number", adminMenuHandler.GetDay)

		adminGroup.GET("/regions", regionHandler.List)
		adminGroup.POST("/regions", regionHandler.Create)
		adminGroup.PUT("/regions/:id", regionHandler.Update)
		adminGroup.DELETE("/regions/:id", regionHandler.Delete)

		adminGroup.GET("/bookings", adminHandler.ListBookings)
		adminGroup.GET("/summary", adminHandler.WeekSummary)
		adminGroup.GET("/users", adminHandler.ListUsers)
		adminGroup.PATCH("/users/:id/role", adminHandler.SetUserRole)

		adminGroup.GET("/export/week", exportHandler.Week)
	}

	// ───────────────────────── START ─────────────────────────
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Println("🚀 Server running on port", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
