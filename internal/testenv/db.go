// Package testenv provides fixtures shared by package tests.
package testenv

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/juju/clock/testclock"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/monocle-dev/opsdesk/db"
)

// Epoch is the time the test clock starts at.
var Epoch = time.Date(2024, 11, 5, 9, 30, 0, 0, time.UTC)

// NewDB opens a migrated in-memory SQLite database private to t, stamped by
// a test clock starting at Epoch.
func NewDB(t *testing.T) (*gorm.DB, *testclock.Clock) {
	t.Helper()

	clk := testclock.NewClock(Epoch)
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())

	gdb, err := db.Open(sqlite.Open(dsn), clk)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("database handle: %v", err)
	}
	// One connection keeps the in-memory database alive and serialises access.
	sqlDB.SetMaxOpenConns(1)

	if err := db.MigrateDatabase(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	t.Cleanup(func() {
		if err := db.Close(gdb); err != nil {
			t.Errorf("close database: %v", err)
		}
	})

	return gdb, clk
}
