package infra

import (
	"github.com/abdobody2040/PharmStockHub/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx. Schema setup is a
// separate step — call RunMigrations at boot (see cmd/server).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	return db, nil
}

// RunMigrations applies the schema via AutoMigrate. Ordering matters: lookup
// tables first so FK references resolve. Also used by the integration tests.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Specialty{},
		&model.Category{},
		&model.User{},
		&model.StockItem{},
		&model.StockAllocation{},
		&model.StockMovement{},
	)
}
