package main

import (
	"Produce-Scan-Backend/cmd/config"
	migration "Produce-Scan-Backend/cmd/database/migrate"
	"Produce-Scan-Backend/internal/utils"
	"context"
	"log"
	"time"
)

func main() {
	utils.LoadConfig()

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	if err := migration.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	app, err := config.NewApp(db)
	if err != nil {
		log.Fatalf("failed to configure app: %v", err)
	}

	// Retention cleanup: old sessions and their scans are purged daily
	if days := utils.GetRetentionDays(); days > 0 {
		scanService := config.NewScanService(db)
		go func() {
			ticker := time.NewTicker(24 * time.Hour)
			defer ticker.Stop()
			for range ticker.C {
				if err := scanService.PurgeOldSessions(context.Background(), days); err != nil {
					log.Printf("retention cleanup failed: %v", err)
				}
			}
		}()
	}

	port := utils.GetConfig("APP_PORT")
	if port == "" {
		port = "8080"
	}

	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
