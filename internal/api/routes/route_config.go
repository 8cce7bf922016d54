package routes

import (
	"Produce-Scan-Backend/internal/api/handlers"
	"Produce-Scan-Backend/internal/middleware"
	"Produce-Scan-Backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App         *fiber.App
	UserHandler handlers.UserHandler
	ScanHandler handlers.ScanHandler
	Middleware  middleware.Middleware
	JWTService  jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.Auth()
	c.Scan()
	c.GuestRoute()
}

func (c *Config) Auth() {
	auth := c.App.Group("/api/auth")
	{
		auth.Post("/register", c.UserHandler.Register)
		auth.Post("/login", c.UserHandler.Login)
		auth.Post("/logout", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Logout)
		auth.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
	}
}

func (c *Config) Scan() {
	scan := c.App.Group("/api/scan")

	// Public endpoints
	scan.Post("/storage-tips", c.ScanHandler.StorageTips)
	scan.Get("/health", c.ScanHandler.Health)

	// Protected endpoints
	protected := scan.Use(c.Middleware.AuthMiddleware(c.JWTService))
	protected.Post("/start-session", c.ScanHandler.StartSession)
	protected.Post("/single", c.ScanHandler.ScanSingle)
	protected.Post("/batch", c.ScanHandler.ScanBatch)
	protected.Get("/session/:session_id", c.ScanHandler.GetSessionResults)
	protected.Get("/recent", c.ScanHandler.GetRecent)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Food Scanning API with Authentication",
			"version": "1.0.0",
			"auth_endpoints": fiber.Map{
				"register": "POST /api/auth/register",
				"login":    "POST /api/auth/login",
				"logout":   "POST /api/auth/logout",
				"me":       "GET /api/auth/me",
			},
			"scan_endpoints": fiber.Map{
				"start_session": "POST /api/scan/start-session",
				"scan_single":   "POST /api/scan/single",
				"scan_batch":    "POST /api/scan/batch",
				"get_session":   "GET /api/scan/session/<session_id>",
				"get_recent":    "GET /api/scan/recent",
				"storage_tips":  "POST /api/scan/storage-tips",
				"health":        "GET /api/scan/health",
			},
		})
	})
}
