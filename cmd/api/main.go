package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"
	"github.com/joho/godotenv"

	"github.com/aryanpatel3011/localseva_be/internal/catalog"
	"github.com/aryanpatel3011/localseva_be/internal/config"
	"github.com/aryanpatel3011/localseva_be/internal/db"
	"github.com/aryanpatel3011/localseva_be/internal/handlers"
	"github.com/aryanpatel3011/localseva_be/internal/middleware"
	"github.com/aryanpatel3011/localseva_be/internal/models"
	"github.com/aryanpatel3011/localseva_be/internal/realtime"
	"github.com/aryanpatel3011/localseva_be/internal/services/cloudinary"
	"github.com/aryanpatel3011/localseva_be/internal/services/geocode"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	gdb, err := db.Connect(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	rdb := realtime.NewRedis()
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Redis not reachable:", err)
	}

	hub := realtime.NewHub()
	go hub.Run()

	if err := gdb.AutoMigrate(
		&models.User{},
		&models.Service{},
		&models.Review{},
		&models.Message{},
		&models.Notification{},
	); err != nil {
		log.Fatal(err)
	}

	var geo *geocode.Client
	if cfg.LocationIQKey != "" {
		geo = geocode.NewClient(cfg.LocationIQKey, cfg.GeoCountryCode)
	} else {
		log.Println("LOCATIONIQ_KEY not set, geocoding disabled")
	}

	cat := catalog.NewStore(gdb, geoOrNil(geo))
	if err := cat.Reload(); err != nil {
		log.Fatal("Failed to load catalog:", err)
	}

	uploader := cloudinary.NewClient(cfg.CloudinaryCloud)

	authH := &handlers.AuthHandler{
		DB:         gdb,
		JWTSecret:  cfg.JWTSecret,
		Expires:    cfg.JWTExpiresMin,
		AdminEmail: cfg.AdminEmail,
	}
	googleH := &handlers.GoogleOAuthHandler{
		DB:              gdb,
		JWTSecret:       cfg.JWTSecret,
		Expires:         cfg.JWTExpiresMin,
		AdminEmail:      cfg.AdminEmail,
		GoogleClientID:  cfg.GoogleClientID,
		GoogleSecret:    cfg.GoogleSecret,
		GoogleRedirect:  cfg.GoogleRedirect,
		FrontendBaseURL: cfg.FrontendBaseURL,
	}
	serviceH := handlers.NewServiceHandler(gdb, cat)
	reviewH := handlers.NewReviewHandler(gdb, cat)
	chatH := handlers.NewChatHandler(gdb, hub, rdb)
	profileH := handlers.NewProfileHandler(gdb, uploader, cfg.CloudinaryProfile, cfg.CloudinaryResume)
	adminH := handlers.NewAdminHandler(gdb, hub, rdb)
	notifH := handlers.NewNotificationHandler(gdb)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://127.0.0.1:3000, http://localhost:3000",
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		ExposeHeaders:    "Content-Length",
		AllowCredentials: true,
	}))

	app.Options("/*", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	api := app.Group("/api")

	// public
	api.Post("/auth/register", authH.Register)
	api.Post("/auth/login", authH.Login)
	api.Post("/auth/logout", authH.Logout)
	api.Get("/auth/google/start", googleH.GoogleStart)
	api.Get("/auth/google/callback", googleH.GoogleCallback)
	api.Get("/categories", serviceH.GetCategories)
	api.Get("/services", serviceH.ListPublic)
	api.Get("/services/:id", serviceH.GetDetail)
	api.Get("/services/:id/reviews", reviewH.ListForService)

	if geo != nil {
		geoH := handlers.NewGeoHandler(geo)
		api.Get("/geo/search", geoH.Search)
		api.Get("/geo/autocomplete", geoH.Autocomplete)
		api.Get("/geo/reverse", geoH.Reverse)
	}

	// protected (JWT from cookie)
	protected := api.Group("/",
		middleware.JWTFromCookie(cfg.JWTSecret),
		middleware.AttachJWTLocals(),
	)

	protected.Get("/me", profileH.Me)
	protected.Get("/profile", profileH.Get)
	protected.Patch("/profile", profileH.Update)
	protected.Patch("/profile/provider", profileH.UpdateProviderInfo)
	protected.Post("/profile/photo", profileH.UploadPhoto)
	protected.Post("/profile/resume", profileH.UploadResume)
	protected.Delete("/account", profileH.DeleteAccount)

	// provider only
	provider := protected.Group("/provider", middleware.RequireProvider(gdb))
	provider.Get("/services", serviceH.ListMine)
	provider.Post("/services", serviceH.Create)
	provider.Put("/services/:id", serviceH.Update)
	provider.Delete("/services/:id", serviceH.Delete)

	// reviews
	protected.Post("/services/:id/reviews", reviewH.Create)
	protected.Put("/reviews/:id", reviewH.Update)
	protected.Delete("/reviews/:id", reviewH.Delete)
	protected.Get("/my-reviews", reviewH.MyReviews)

	// chat
	chatGroup := protected.Group("/chat")
	chatGroup.Get("/conversations", chatH.GetConversations)
	chatGroup.Get("/messages", chatH.GetTranscript)
	chatGroup.Post("/messages", chatH.SendMessage)

	// notifications
	protected.Get("/notifications", notifH.ListMine)
	protected.Patch("/notifications/:id/read", notifH.MarkRead)

	// admin only
	admin := protected.Group("/admin", middleware.RequireRoles("admin"))
	admin.Get("/stats", adminH.GetStats)
	admin.Get("/users", adminH.ListUsers)
	admin.Patch("/providers/:id/verify", adminH.SetProviderVerification)

	// WebSocket endpoint (auth via query param)
	app.Get("/ws/chat", websocket.New(chatH.WebSocketHandler))

	log.Fatal(app.Listen(":" + cfg.AppPort))
}

// geoOrNil keeps the catalog's Geocoder interface nil when geocoding is
// disabled; a typed nil pointer would not compare equal to nil.
func geoOrNil(geo *geocode.Client) catalog.Geocoder {
	if geo == nil {
		return nil
	}
	return geo
}
