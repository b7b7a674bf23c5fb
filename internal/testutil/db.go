// Package testutil opens throwaway SQLite databases for package tests.
package testutil

import (
	"fmt"
	"io"
	"strings"
	"testing"

	"hotelreservation/internal/domain"
	"hotelreservation/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

// NewStore migrates a fresh in-memory database named after the test. The
// pool is capped at one connection so SQLite serialises transactions the way
// row locks do on Postgres.
func NewStore(t *testing.T) *repository.Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.New(sqlite.Config{DriverName: "sqlite", DSN: dsn}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(repository.Models()...); err != nil {
		t.Fatalf("failed to migrate db: %v", err)
	}
	return repository.NewStore(db)
}

func Logger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// SeedRoom inserts an active AVAILABLE room.
func SeedRoom(t *testing.T, s *repository.Store, number string, capacity int, rate float64) *domain.Room {
	t.Helper()
	room := &domain.Room{
		RoomNumber:    number,
		RoomType:      domain.RoomDouble,
		Status:        domain.RoomAvailable,
		PricePerNight: rate,
		Capacity:      capacity,
		IsActive:      true,
	}
	if err := s.Rooms.Create(t.Context(), room); err != nil {
		t.Fatalf("seed room %s: %v", number, err)
	}
	return room
}

func Range(t *testing.T, in, out string) domain.DateRange {
	t.Helper()
	r, err := domain.ParseDateRange(in, out)
	if err != nil {
		t.Fatalf("range %s..%s: %v", in, out, err)
	}
	return r
}
