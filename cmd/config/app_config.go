package config

import (
	"Produce-Scan-Backend/internal/api/handlers"
	"Produce-Scan-Backend/internal/api/routes"
	"Produce-Scan-Backend/internal/middleware"
	"Produce-Scan-Backend/internal/utils"
	"Produce-Scan-Backend/internal/utils/storage"
	"Produce-Scan-Backend/pkg/jwt"
	"Produce-Scan-Backend/pkg/scan"
	"Produce-Scan-Backend/pkg/user"
	"Produce-Scan-Backend/pkg/vision"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
		// Base64 image payloads are large; oversized bodies get 413 here
		BodyLimit: 50 * 1024 * 1024,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()
	visionClient := vision.NewClient(
		utils.GetConfig("OPENROUTER_API_KEY"),
		utils.GetConfig("OPENROUTER_MODEL"),
		utils.GetConfig("OPENROUTER_BASE_URL"),
		utils.GetConfig("TRUST_MODEL_FLAGS") == "true",
	)

	// Repository
	userRepository := user.NewUserRepository(db)
	scanRepository := scan.NewScanRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, jwtService)
	scanService := scan.NewScanService(scanRepository, visionClient, s3)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	scanHandler := handlers.NewScanHandler(scanService, validator)

	// routes
	routesConfig := routes.Config{
		App:         app,
		UserHandler: userHandler,
		ScanHandler: scanHandler,
		Middleware:  middlewares,
		JWTService:  jwtService,
	}
	routesConfig.Setup()
	return app, nil
}

// NewScanService exposes the wired orchestration service for background jobs
// that run outside the request path (retention cleanup).
func NewScanService(db *gorm.DB) scan.ScanService {
	visionClient := vision.NewClient(
		utils.GetConfig("OPENROUTER_API_KEY"),
		utils.GetConfig("OPENROUTER_MODEL"),
		utils.GetConfig("OPENROUTER_BASE_URL"),
		utils.GetConfig("TRUST_MODEL_FLAGS") == "true",
	)
	return scan.NewScanService(scan.NewScanRepository(db), visionClient, storage.NewAwsS3())
}
