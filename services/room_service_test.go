package services

import (
	"testing"

	"hotel-munich-backend/models"
)

func TestGetAllFallsBackToFixedRoster(t *testing.T) {
	db := newTestDB(t) // rooms table empty
	svc := NewRoomService(db)

	rooms, err := svc.GetAll()
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(rooms) != len(models.RoomIDs) {
		t.Fatalf("got %d rooms, want %d", len(rooms), len(models.RoomIDs))
	}
	for i := 1; i < len(rooms); i++ {
		if rooms[i-1].ID >= rooms[i].ID {
			t.Fatalf("roster not sorted: %q before %q", rooms[i-1].ID, rooms[i].ID)
		}
	}
}

func TestGetAllPrefersSeededRooms(t *testing.T) {
	db := newTestDB(t)
	seedRooms(t, db)
	svc := NewRoomService(db)

	rooms, err := svc.GetAll()
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(rooms) != len(models.RoomIDs) {
		t.Fatalf("got %d rooms, want %d", len(rooms), len(models.RoomIDs))
	}
	if rooms[0].Type != "Doble" {
		t.Fatalf("seeded type lost, got %q", rooms[0].Type)
	}
}

func TestGetByID(t *testing.T) {
	db := newTestDB(t) // unseeded: exercises the roster fallback
	svc := NewRoomService(db)

	room, err := svc.GetByID("31")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if room == nil || room.ID != "31" {
		t.Fatalf("room = %+v, want fallback room 31", room)
	}

	room, err = svc.GetByID("99")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if room != nil {
		t.Fatalf("expected nil for unknown room, got %+v", room)
	}
}
