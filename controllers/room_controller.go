package controllers

import (
	"net/http"

	"hotel-munich-backend/services"
	"hotel-munich-backend/utils"

	"github.com/gin-gonic/gin"
)

type RoomController struct {
	Rooms *services.RoomService
	Occ   *services.OccupancyService
}

func NewRoomController(rooms *services.RoomService, occ *services.OccupancyService) *RoomController {
	return &RoomController{Rooms: rooms, Occ: occ}
}

func (ctl *RoomController) ListRooms(c *gin.Context) {
	rooms, err := ctl.Rooms.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load rooms", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rooms)
}

// RoomsStatus returns the Libre/OCUPADA board for ?target_date (default
// today).
func (ctl *RoomController) RoomsStatus(c *gin.Context) {
	day := utils.Today()
	if raw := c.Query("target_date"); raw != "" {
		parsed, err := utils.ParseDate(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		day = parsed
	}

	statuses, err := ctl.Occ.DailyStatus(day)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load room status", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, statuses)
}

func (ctl *RoomController) GetRoom(c *gin.Context) {
	id := c.Param("id")

	room, err := ctl.Rooms.GetByID(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load room", "details": err.Error()})
		return
	}
	if room == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "room " + id + " not found"})
		return
	}
	c.JSON(http.StatusOK, room)
}
