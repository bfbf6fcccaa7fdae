package service

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// nowISO returns the current wall-clock time in the ISO-8601 form persisted
// on every ledger row. The core never parses these back.
func nowISO() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// snapshot marshals v into the JSON form stored in audit before/after columns.
func snapshot(v any) (*string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	s := string(b)
	return &s, nil
}

func strPtr(s string) *string { return &s }
