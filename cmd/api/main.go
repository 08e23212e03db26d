package main

import (
	"log"
	"os"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"suggestion-box/internal/config"
	"suggestion-box/internal/events"
	"suggestion-box/internal/handler"
	"suggestion-box/internal/middleware"
	"suggestion-box/internal/repository"
	"suggestion-box/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	redis, err := config.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redis.Close()

	minioClient, err := config.NewMinIOClient(cfg)
	if err != nil {
		log.Printf("Warning: Failed to connect to MinIO: %v (attachments will not work)", err)
	}

	hub := events.NewHub()
	defer hub.Close()

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, redis, minioClient, hub, cfg)
	handlers := handler.NewHandlers(services, hub)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
		// Headroom above the 25MB attachment cap for the rest of the form.
		BodyLimit: 30 * 1024 * 1024,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, Idempotency-Key",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	setupRoutes(app, handlers, services.Auth)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	log.Printf("Server starting on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRoutes(app *fiber.App, h *handler.Handlers, authService service.AuthService) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api/v1")

	public := v1.Group("/public")
	public.Get("/suggestions", h.Public.ListRecent)

	auth := v1.Group("/auth")
	auth.Post("/session", h.Auth.CreateSession)
	auth.Post("/login", h.Auth.Login)
	auth.Post("/refresh", h.Auth.Refresh)

	protected := v1.Group("", middleware.AuthRequired(authService))

	suggestions := protected.Group("/suggestions")
	suggestions.Post("/", h.Suggestion.Submit)
	suggestions.Get("/mine", h.Suggestion.ListMine)
	suggestions.Post("/:suggestionId/vote", h.Suggestion.ToggleVote)

	admin := protected.Group("/admin", middleware.RequireRole("admin"))
	admin.Get("/suggestions", h.Admin.List)
	admin.Patch("/suggestions/:suggestionId/status", h.Admin.SetStatus)
	admin.Delete("/suggestions/:suggestionId", h.Admin.Delete)
	admin.Get("/stats", h.Admin.Stats)
	admin.Get("/audit/recent", h.Audit.Recent)

	ws := app.Group("/ws", middleware.StreamAuth(authService), func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	ws.Get("/suggestions", websocket.New(h.Stream.Serve))
}
