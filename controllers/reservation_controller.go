package controllers

import (
	"errors"
	"net/http"
	"regexp"
	"strings"

	"hotel-munich-backend/services"
	"hotel-munich-backend/utils"

	"github.com/gin-gonic/gin"
)

// ---------------------------
// Payload / DTOs
// ---------------------------

type ReservationPayload struct {
	CheckInDate  string   `json:"check_in_date" binding:"required"`
	StayDays     int      `json:"stay_days"`
	GuestName    string   `json:"guest_name" binding:"required"`
	RoomIDs      []string `json:"room_ids" binding:"required"`
	RoomType     string   `json:"room_type"`
	Price        float64  `json:"price"`
	ArrivalTime  *string  `json:"arrival_time"`
	ReservedBy   string   `json:"reserved_by"`
	ContactPhone string   `json:"contact_phone"`
	ReceivedBy   string   `json:"received_by"`
}

type CancelReservationPayload struct {
	Reason      string `json:"reason"`
	CancelledBy string `json:"cancelled_by" binding:"required"`
}

var phoneCleaner = regexp.MustCompile(`[^\d+]`)

// toInput validates the payload before it reaches the engine (the engine
// assumes pre-validated input) and normalizes it.
func (p *ReservationPayload) toInput() (services.ReservationInput, error) {
	checkIn, err := utils.ParseDate(p.CheckInDate)
	if err != nil {
		return services.ReservationInput{}, err
	}

	if p.StayDays == 0 {
		p.StayDays = 1
	}
	if p.StayDays < 1 || p.StayDays > 365 {
		return services.ReservationInput{}, errors.New("stay_days must be between 1 and 365")
	}

	guest := strings.TrimSpace(p.GuestName)
	if len(guest) < 2 {
		return services.ReservationInput{}, errors.New("guest_name must have at least 2 characters")
	}

	rooms := make([]string, 0, len(p.RoomIDs))
	for _, r := range p.RoomIDs {
		if r = strings.TrimSpace(r); r != "" {
			rooms = append(rooms, r)
		}
	}
	if len(rooms) == 0 {
		return services.ReservationInput{}, errors.New("at least one room is required")
	}

	if p.Price < 0 {
		return services.ReservationInput{}, errors.New("price cannot be negative")
	}

	return services.ReservationInput{
		CheckInDate:  checkIn,
		StayDays:     p.StayDays,
		GuestName:    guest,
		RoomIDs:      rooms,
		RoomType:     strings.TrimSpace(p.RoomType),
		Price:        p.Price,
		ArrivalTime:  p.ArrivalTime,
		ReservedBy:   strings.TrimSpace(p.ReservedBy),
		ContactPhone: phoneCleaner.ReplaceAllString(p.ContactPhone, ""),
		ReceivedBy:   strings.TrimSpace(p.ReceivedBy),
	}, nil
}

// ---------------------------
// Controller
// ---------------------------

type ReservationController struct {
	Svc *services.ReservationService
	Occ *services.OccupancyService
}

func NewReservationController(svc *services.ReservationService, occ *services.OccupancyService) *ReservationController {
	return &ReservationController{Svc: svc, Occ: occ}
}

// CreateReservation creates one reservation per requested room and returns
// the issued IDs. An allocator collision is retried a couple of times before
// giving up with 409.
func (ctl *ReservationController) CreateReservation(c *gin.Context) {
	var payload ReservationPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload", "details": err.Error()})
		return
	}

	input, err := payload.toInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var ids []string
	for attempt := 0; attempt < 3; attempt++ {
		ids, err = ctl.Svc.CreateReservations(input)
		if !errors.Is(err, services.ErrIDConflict) {
			break
		}
	}
	if errors.Is(err, services.ErrIDConflict) {
		c.JSON(http.StatusConflict, gin.H{"error": "reservation id allocation conflict, please retry"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create reservation", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ids": ids})
}

func (ctl *ReservationController) ListReservations(c *gin.Context) {
	list, err := ctl.Svc.GetAllReservations()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list reservations", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, list)
}

func (ctl *ReservationController) GetReservation(c *gin.Context) {
	id := c.Param("id")

	res, err := ctl.Svc.GetReservation(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load reservation", "details": err.Error()})
		return
	}
	if res == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "reservation " + id + " not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":            res.ID,
		"check_in_date": utils.FormatDate(res.CheckInDate),
		"check_out":     utils.FormatDate(res.CheckOutDate()),
		"stay_days":     res.StayDays,
		"guest_name":    res.GuestName,
		"room_id":       res.RoomID,
		"room_type":     res.RoomType,
		"price":         res.Price,
		"arrival_time":  res.ArrivalTime,
		"reserved_by":   res.ReservedBy,
		"contact_phone": res.ContactPhone,
		"received_by":   res.ReceivedBy,
		"status":        res.Status,
	})
}

func (ctl *ReservationController) UpdateReservation(c *gin.Context) {
	id := c.Param("id")

	var payload ReservationPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload", "details": err.Error()})
		return
	}
	input, err := payload.toInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ok, err := ctl.Svc.UpdateReservation(id, input)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update reservation", "details": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "reservation " + id + " not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "reservation updated", "id": id})
}

func (ctl *ReservationController) CancelReservation(c *gin.Context) {
	id := c.Param("id")

	var payload CancelReservationPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload", "details": err.Error()})
		return
	}

	ok, err := ctl.Svc.CancelReservation(id, payload.Reason, payload.CancelledBy)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to cancel reservation", "details": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "reservation " + id + " not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "reservation cancelled", "id": id})
}

func (ctl *ReservationController) CheckInReservation(c *gin.Context) {
	id := c.Param("id")

	ok, err := ctl.Svc.MarkCheckedIn(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check in reservation", "details": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no confirmed reservation " + id})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "reservation checked in", "id": id})
}

// WeeklyView returns the 7-day occupancy matrix starting at ?start_date
// (default today).
func (ctl *ReservationController) WeeklyView(c *gin.Context) {
	start := utils.Today()
	if raw := c.Query("start_date"); raw != "" {
		parsed, err := utils.ParseDate(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		start = parsed
	}

	matrix, err := ctl.Occ.WeeklyMatrix(start)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build weekly view", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, matrix)
}
