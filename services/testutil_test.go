package services

import (
	"testing"
	"time"

	"hotel-munich-backend/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Room{},
		&models.Reservation{},
		&models.CheckIn{},
		&models.Sequence{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test schema: %v", err)
	}
	return db
}

// seedRooms inserts the fixed 14-room roster.
func seedRooms(t *testing.T, db *gorm.DB) {
	t.Helper()
	for _, id := range models.RoomIDs {
		room := models.Room{ID: id, Type: "Doble", Status: "Active"}
		if err := db.Create(&room).Error; err != nil {
			t.Fatalf("failed to seed room %s: %v", id, err)
		}
	}
}

func testDay(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// mustReserve books one room through the service and returns the issued ID.
func mustReserve(t *testing.T, svc *ReservationService, roomID string, checkIn time.Time, stayDays int, guest string) string {
	t.Helper()
	ids, err := svc.CreateReservations(ReservationInput{
		CheckInDate: checkIn,
		StayDays:    stayDays,
		GuestName:   guest,
		RoomIDs:     []string{roomID},
		RoomType:    "Doble",
		Price:       150,
		ReceivedBy:  "recepcion",
	})
	if err != nil {
		t.Fatalf("failed to create reservation for room %s: %v", roomID, err)
	}
	if len(ids) != 1 {
		t.Fatalf("expected 1 reservation id, got %d", len(ids))
	}
	return ids[0]
}
