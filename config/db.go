package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"hotel-munich-backend/models"

	mysqldrv "github.com/go-sql-driver/mysql"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

// buildDSN assembles a driver DSN with the charset/parseTime defaults the
// schema needs.
func buildDSN(user, pass, host, port, dbName string) string {
	cfg := mysqldrv.NewConfig()
	cfg.User = user
	cfg.Passwd = pass
	cfg.Net = "tcp"
	cfg.Addr = host + ":" + port
	cfg.DBName = dbName
	cfg.ParseTime = true
	// Dates are stored and compared as UTC midnights; reading them back in
	// any other zone would shift day boundaries.
	cfg.Loc = time.UTC
	cfg.Params = map[string]string{"charset": "utf8mb4"}
	return cfg.FormatDSN()
}

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	pass, _ := u.User.Password()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	return buildDSN(u.User.Username(), pass, u.Hostname(), port, dbName), nil
}

func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	return buildDSN(
		envOrDefault("DB_USER", "root"),
		envOrDefault("DB_PASS", ""),
		envOrDefault("DB_HOST", "127.0.0.1"),
		envOrDefault("DB_PORT", "3306"),
		envOrDefault("DB_NAME", "hotel_munich"),
	), nil
}

// Migrate applies the schema to any GORM handle (production MySQL or the
// in-memory database the tests use).
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Room{},
		&models.Reservation{},
		&models.CheckIn{},
		&models.Sequence{},
	)
}

// SeedDatabase ensures the fixed room roster, a default desk user and the
// reservation-number sequence exist. Idempotent, safe to run at every boot.
func SeedDatabase(db *gorm.DB) {
	// ---------------- Rooms ----------------
	var roomCount int64
	db.Model(&models.Room{}).Count(&roomCount)
	if roomCount == 0 {
		rooms := make([]models.Room, 0, len(models.RoomIDs))
		for _, id := range models.RoomIDs {
			rooms = append(rooms, models.Room{ID: id, Type: "Standard", Status: "Active"})
		}
		if err := db.Create(&rooms).Error; err != nil {
			log.Printf("warning: failed to seed rooms: %v", err)
		} else {
			log.Printf("Rooms seeded (%d)", len(rooms))
		}
	}

	// ---------------- Default user ----------------
	var userCount int64
	db.Model(&models.User{}).Count(&userCount)
	if userCount == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte(envOrDefault("ADMIN_PASSWORD", "admin123")), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("warning: failed to hash default password: %v", err)
		} else {
			admin := models.User{
				Username: "admin",
				Password: string(hash),
				Role:     "admin",
				RealName: "Administrador",
			}
			if err := db.Create(&admin).Error; err != nil {
				log.Printf("warning: failed to create default user: %v", err)
			} else {
				log.Println("Default user seeded")
			}
		}
	}

	// ---------------- Reservation sequence ----------------
	// Seed the counter from the highest imported reservation number so the
	// allocator continues the legacy numbering.
	var seqCount int64
	db.Model(&models.Sequence{}).Where("name = ?", models.SeqReservationID).Count(&seqCount)
	if seqCount == 0 {
		seed := int64(1254)
		var last models.Reservation
		if err := db.Order("id DESC").First(&last).Error; err == nil {
			if v, pErr := strconv.ParseInt(strings.TrimSpace(last.ID), 10, 64); pErr == nil && v > seed {
				seed = v
			}
		}
		if err := db.Create(&models.Sequence{Name: models.SeqReservationID, Value: seed}).Error; err != nil {
			log.Printf("warning: failed to seed reservation sequence: %v", err)
		} else {
			log.Printf("Reservation sequence seeded at %d", seed)
		}
	}
}

// ConnectDatabase opens the MySQL connection, migrates, imports any legacy
// workbooks sitting next to the binary, and seeds defaults.
func ConnectDatabase() error {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return err
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: newLogger})
	if err != nil {
		return err
	}

	DB = db

	if err := Migrate(DB); err != nil {
		return err
	}

	ImportLegacyWorkbooks(DB)
	SeedDatabase(DB)
	return nil
}
