package infra

import (
	"fmt"

	"trastienda/internal/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open establishes the process-wide GORM handle on the SQLite file at path
// (":memory:" for tests) and runs AutoMigrate. The pool is capped at a single
// connection: SQLite allows one writer at a time anyway, and the cap is the
// serialization point that keeps concurrent callers from interleaving atomic
// units.
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&model.Product{},
		&model.Variant{},
		&model.Provider{},
		&model.Purchase{},
		&model.PurchaseItem{},
		&model.Customer{},
		&model.CustomerAccount{},
		&model.AccountMovement{},
		&model.Sale{},
		&model.SaleItem{},
		&model.RegisterSession{},
		&model.CashMovement{},
		&model.AuditEntry{},
		&model.User{},
	); err != nil {
		return nil, fmt.Errorf("AutoMigrate: %w", err)
	}

	return db, nil
}

// Close releases the underlying connection.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
