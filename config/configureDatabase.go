package config

import (
	"fmt"
	"log"
	"time"

	"kpi-tracker-backend/db/models"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// allModels defines all models that should be migrated.
// This is the only place you need to add new models.
var allModels = []interface{}{
	&models.User{},
	&models.KpiRecord{},
	&models.BulkUploadErrorKpi{},
	&models.EmailLog{},
}

// ConfigureDatabase opens the configured database and runs migrations.
// DB_DRIVER=sqlite uses the pure-Go SQLite driver (the original deployment
// ran on a single kpi.db file); anything else connects to Postgres.
func ConfigureDatabase() *gorm.DB {
	var db *gorm.DB
	var err error

	driver := GetEnvOrDefault("DB_DRIVER", "postgres")
	switch driver {
	case "sqlite":
		dbPath := GetEnvOrDefault("DB_PATH", "kpi.db")
		db, err = gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
		if err != nil {
			log.Fatalf("[DB-CONNECT] Failed to open sqlite database %s: %v", dbPath, err)
		}
	default:
		host := GetEnv("DB_HOST")
		user := GetEnv("POSTGRES_USER")
		password := GetEnv("POSTGRES_PASSWORD")
		dbname := GetEnv("POSTGRES_DB")
		port := GetEnv("DB_PORT")
		timezone := GetEnvOrDefault("DB_TIMEZONE", "Asia/Kolkata")

		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=%s",
			host, user, password, dbname, port, timezone,
		)

		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err != nil {
			log.Fatalf("[DB-CONNECT] Failed to connect to database: %v", err)
		}
	}

	// Auto-migrate all models using the allModels slice
	err = db.AutoMigrate(allModels...)
	if err != nil {
		log.Fatalf("failed to migrate tables: %v", err)
	} else {
		log.Println("Tables migrated successfully")
	}

	// Connection pool configuration
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("[DB-POOL] Failed to get underlying DB connection: %v", err)
	}
	sqlDB.SetMaxOpenConns(30)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(1 * time.Hour)

	log.Println("[DB-POOL] Connection pool configured")
	log.Println("[DB-STATUS] Database setup complete")
	return db
}
