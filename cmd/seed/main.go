package main

import (
	"os"

	"hotelreservation/internal/config"
	"hotelreservation/internal/database"
	"hotelreservation/internal/domain"
	"hotelreservation/internal/modules/auth"
	"hotelreservation/internal/pkg/logger"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type demoRoom struct {
	number   string
	kind     domain.RoomType
	capacity int
	rate     float64
}

var demoRooms = []demoRoom{
	{"101", domain.RoomSingle, 1, 100},
	{"102", domain.RoomDouble, 2, 150},
	{"201", domain.RoomSuite, 4, 300},
}

// Seed is idempotent: every row is matched on its natural key first.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}
	log, closer, err := logger.New(logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err != nil {
		logrus.WithError(err).Fatal("logger setup failed")
	}
	defer closer.Close()

	db, err := database.Connect(cfg.DatabaseURL, log)
	if err != nil {
		log.WithError(err).Fatal("database connection failed")
	}
	if err := database.Migrate(db); err != nil {
		log.WithError(err).Fatal("migration failed")
	}

	if err := seed(db, log); err != nil {
		log.WithError(err).Fatal("seed failed")
	}
	log.Info("seed completed")
}

func seed(db *gorm.DB, log logrus.FieldLogger) error {
	return db.Transaction(func(tx *gorm.DB) error {
		adminEmail := getEnv("SEED_ADMIN_EMAIL", "admin@hotel.local")
		hash, err := auth.HashPassword(getEnv("SEED_ADMIN_PASSWORD", "admin12345"))
		if err != nil {
			return err
		}
		admin := domain.User{}
		if err := tx.Where(domain.User{Email: adminEmail}).
			Attrs(domain.User{PasswordHash: hash, Role: domain.RoleAdmin, Name: "Administrator"}).
			FirstOrCreate(&admin).Error; err != nil {
			return err
		}
		log.WithField("email", admin.Email).Info("admin ready")

		hotel := domain.Hotel{}
		if err := tx.Where(domain.Hotel{Name: "Grand Hotel"}).
			Attrs(domain.Hotel{Address: "1 Main Street", City: "Springfield"}).
			FirstOrCreate(&hotel).Error; err != nil {
			return err
		}

		for _, r := range demoRooms {
			room := domain.Room{}
			err := tx.Where(domain.Room{RoomNumber: r.number}).
				Attrs(domain.Room{
					HotelID:       &hotel.ID,
					RoomType:      r.kind,
					Status:        domain.RoomAvailable,
					PricePerNight: r.rate,
					Capacity:      r.capacity,
					IsActive:      true,
				}).
				FirstOrCreate(&room).Error
			if err != nil {
				return err
			}
			log.WithFields(logrus.Fields{"room": room.RoomNumber, "type": room.RoomType}).Info("room ready")
		}
		return nil
	})
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
