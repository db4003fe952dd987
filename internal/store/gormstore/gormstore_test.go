package gormstore

import (
	"testing"

	"github.com/zulandar/portfolio/internal/db"
	"github.com/zulandar/portfolio/internal/store"
	"github.com/zulandar/portfolio/internal/store/storetest"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(gdb); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return gdb
}

func TestStore_Contract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Repository {
		s, err := New(testDB(t))
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		return s
	})
}

func TestNew_NilDB(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Fatal("expected error for nil db")
	}
}
