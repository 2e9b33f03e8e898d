package Models

import (
	"log"
	"os"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Connect() {
	path := os.Getenv("DB_PATH")
	if path == "" {
		path = "database.db"
	}

	connection, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	DB = connection

	// 1. Tenant roots and profiles first
	if err := DB.AutoMigrate(
		&Organization{},
		&User{},
		&Subscription{},
	); err != nil {
		log.Printf("Migration error (tenant tables): %v", err)
	}

	// 2. Templates and their satellite scheduling records
	if err := DB.AutoMigrate(
		&ChecklistTemplate{},
		&TemplateExclusion{},
		&TemplateAssignment{},
		&Holiday{},
		&StaffUnavailability{},
		&BusinessHours{},
	); err != nil {
		log.Printf("Migration error (template tables): %v", err)
	}

	// 3. Instances, reports and notifications depend on everything above
	if err := DB.AutoMigrate(
		&DailyChecklist{},
		&SubmittedReport{},
		&Notification{},
	); err != nil {
		log.Printf("Migration error (instance tables): %v", err)
	}
}
