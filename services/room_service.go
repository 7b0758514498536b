package services

import (
	"errors"
	"fmt"
	"sort"

	"hotel-munich-backend/models"

	"gorm.io/gorm"
)

// RoomService reads the room roster. When the table has not been seeded yet
// it falls back to the fixed 14-room roster so the UI always has something
// to render.
type RoomService struct {
	DB *gorm.DB
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{DB: db}
}

func (s *RoomService) GetAll() ([]models.Room, error) {
	var rooms []models.Room
	if err := s.DB.Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to load rooms: %w", err)
	}

	if len(rooms) == 0 {
		for _, id := range models.RoomIDs {
			rooms = append(rooms, models.Room{ID: id, Type: "Standard", Status: "Active"})
		}
	}

	sort.Slice(rooms, func(i, j int) bool { return rooms[i].ID < rooms[j].ID })
	return rooms, nil
}

func (s *RoomService) GetByID(id string) (*models.Room, error) {
	var room models.Room
	if err := s.DB.Where("id = ?", id).First(&room).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			for _, known := range models.RoomIDs {
				if known == id {
					return &models.Room{ID: id, Type: "Standard", Status: "Active"}, nil
				}
			}
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load room %s: %w", id, err)
	}
	return &room, nil
}
