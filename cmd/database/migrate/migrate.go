package migration

import (
	"Produce-Scan-Backend/entities"
	"fmt"
	"log"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")

	if err := db.AutoMigrate(&entities.User{}); err != nil {
		log.Fatalf("Error migrating user database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.ScanSession{}); err != nil {
		log.Fatalf("Error migrating scan session database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.ProduceScan{}); err != nil {
		log.Fatalf("Error migrating produce scan database: %v", err)
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}
