package services

import (
	"fmt"
	"log"
	"math"
	"sort"
	"time"

	"hotel-munich-backend/models"
	"hotel-munich-backend/utils"

	"gorm.io/gorm"
)

// Longest stay the engine considers when windowing candidate reservations.
// Creation validates stay_days <= 365; imported legacy rows are clamped the
// same way.
const maxStayDays = 365

// OccupancyService derives room availability and calendar aggregations from
// the reservation table. All reads are side-effect free and never fail on
// valid dates; Confirmada and Check-In rows count, Cancelada rows never do.
type OccupancyService struct {
	DB *gorm.DB
}

func NewOccupancyService(db *gorm.DB) *OccupancyService {
	return &OccupancyService{DB: db}
}

// RoomStatus is one row of the daily board. The "huesped" wire name matches
// the legacy front desk screens.
type RoomStatus struct {
	RoomID string  `json:"room_id"`
	Type   string  `json:"type"`
	Status string  `json:"status"` // "Libre" or "OCUPADA"
	Guest  string  `json:"huesped"`
	ResID  *string `json:"res_id,omitempty"`
}

// DayOccupancy aggregates one calendar date of the monthly map.
type DayOccupancy struct {
	Count          int      `json:"count"`
	Status         string   `json:"status"` // free | medium | high
	ReservationIDs []string `json:"reservation_ids"`
	GuestNames     []string `json:"guest_names"`
}

// TodaySummary keeps the legacy Spanish wire names.
type TodaySummary struct {
	ArrivalsToday    int     `json:"llegadas_hoy"`
	DeparturesToday  int     `json:"salidas_hoy"`
	Occupied         int     `json:"ocupadas"`
	Free             int     `json:"libres"`
	TotalRooms       int     `json:"total_habitaciones"`
	OccupancyPercent float64 `json:"porcentaje_ocupacion"`
}

// CalendarEvent is FullCalendar-compatible: end is exclusive, which lines up
// with the half-open stay interval.
type CalendarEvent struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Start string `json:"start"`
	End   string `json:"end"`
	Color string `json:"color,omitempty"`
}

// activeOverlapping loads every non-cancelled reservation whose stay could
// intersect [start, end). The query windows by check-in date only (checkout
// is derived, not a column) and the exact half-open filter happens in Go.
func (s *OccupancyService) activeOverlapping(start, end time.Time) ([]models.Reservation, error) {
	var rows []models.Reservation
	err := s.DB.
		Where("status <> ?", models.StatusCancelled).
		Where("check_in_date < ? AND check_in_date >= ?", end, start.AddDate(0, 0, -maxStayDays)).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load reservations for window: %w", err)
	}

	out := rows[:0]
	for _, r := range rows {
		if r.Overlaps(start, end) {
			out = append(out, r)
		}
	}
	return out, nil
}

// DailyStatus reports every room as Libre or OCUPADA for one date, ordered
// by room identifier (string order, matching the fixed roster listing).
func (s *OccupancyService) DailyStatus(day time.Time) ([]RoomStatus, error) {
	day = models.DateOf(day)

	var rooms []models.Room
	if err := s.DB.Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to load rooms: %w", err)
	}

	byRoom := make(map[string]*RoomStatus, len(rooms))
	result := make([]RoomStatus, 0, len(rooms))
	for _, rm := range rooms {
		result = append(result, RoomStatus{RoomID: rm.ID, Type: rm.Type, Status: "Libre", Guest: "-"})
	}
	for i := range result {
		byRoom[result[i].RoomID] = &result[i]
	}

	active, err := s.activeOverlapping(day, day.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	for _, res := range active {
		if !res.IsActiveOn(day) {
			continue
		}
		slot, ok := byRoom[res.RoomID]
		if !ok {
			// Tolerated, but it means a reservation points at a room the
			// roster doesn't know about.
			log.Printf("warning: reservation %s references unknown room %q", res.ID, res.RoomID)
			continue
		}
		id := res.ID
		slot.Status = "OCUPADA"
		slot.Guest = res.GuestName
		slot.ResID = &id
	}

	sort.Slice(result, func(i, j int) bool { return result[i].RoomID < result[j].RoomID })
	return result, nil
}

// WeeklyMatrix returns {room_id: {date: guest}} for the 7 dates starting at
// start. Free room/date cells carry no key at all.
func (s *OccupancyService) WeeklyMatrix(start time.Time) (map[string]map[string]string, error) {
	start = models.DateOf(start)
	end := start.AddDate(0, 0, 7)

	active, err := s.activeOverlapping(start, end)
	if err != nil {
		return nil, err
	}

	matrix := make(map[string]map[string]string)
	for _, res := range active {
		for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
			if !res.IsActiveOn(d) {
				continue
			}
			if matrix[res.RoomID] == nil {
				matrix[res.RoomID] = make(map[string]string)
			}
			matrix[res.RoomID][utils.FormatDate(d)] = res.GuestName
		}
	}
	return matrix, nil
}

// OccupancyMap aggregates every date of a month: how many reservations
// occupy rooms, a traffic-light classification, and who, in encounter order.
func (s *OccupancyService) OccupancyMap(year int, month time.Month) (map[string]DayOccupancy, error) {
	start, end := utils.MonthRange(year, month)

	active, err := s.activeOverlapping(start, end)
	if err != nil {
		return nil, err
	}

	out := make(map[string]DayOccupancy, utils.DaysInMonth(year, month))
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		day := DayOccupancy{ReservationIDs: []string{}, GuestNames: []string{}}
		for _, res := range active {
			if res.IsActiveOn(d) {
				day.Count++
				day.ReservationIDs = append(day.ReservationIDs, res.ID)
				day.GuestNames = append(day.GuestNames, res.GuestName)
			}
		}
		switch {
		case day.Count == 0:
			day.Status = "free"
		case day.Count <= 5:
			day.Status = "medium"
		default:
			day.Status = "high"
		}
		out[utils.FormatDate(d)] = day
	}
	return out, nil
}

// MonthlyEvents renders every reservation touching the month as a calendar
// event (one bar per reservation, exclusive end date).
func (s *OccupancyService) MonthlyEvents(year int, month time.Month) ([]CalendarEvent, error) {
	start, end := utils.MonthRange(year, month)

	active, err := s.activeOverlapping(start, end)
	if err != nil {
		return nil, err
	}

	eventsOut := make([]CalendarEvent, 0, len(active))
	for _, res := range active {
		color := "#3788d8"
		if res.Status == models.StatusCheckedIn {
			color = "#2e7d32"
		}
		eventsOut = append(eventsOut, CalendarEvent{
			ID:    res.ID,
			Title: fmt.Sprintf("%s (Hab. %s)", res.GuestName, res.RoomID),
			Start: utils.FormatDate(models.DateOf(res.CheckInDate)),
			End:   utils.FormatDate(res.CheckOutDate()),
			Color: color,
		})
	}

	sort.Slice(eventsOut, func(i, j int) bool { return eventsOut[i].ID < eventsOut[j].ID })
	return eventsOut, nil
}

// SummaryFor computes the desk summary for an arbitrary date.
// occupied + free == total always; percent is 0.0 with an empty roster.
func (s *OccupancyService) SummaryFor(day time.Time) (TodaySummary, error) {
	day = models.DateOf(day)

	var totalRooms int64
	if err := s.DB.Model(&models.Room{}).Count(&totalRooms).Error; err != nil {
		return TodaySummary{}, fmt.Errorf("failed to count rooms: %w", err)
	}

	// Departures need reservations that ended today, so widen the window by
	// one day on each side of the date itself.
	candidates, err := s.activeOverlapping(day.AddDate(0, 0, -1), day.AddDate(0, 0, 1))
	if err != nil {
		return TodaySummary{}, err
	}

	summary := TodaySummary{TotalRooms: int(totalRooms)}
	for _, res := range candidates {
		if models.DateOf(res.CheckInDate).Equal(day) {
			summary.ArrivalsToday++
		}
		if res.CheckOutDate().Equal(day) {
			summary.DeparturesToday++
		}
		if res.IsActiveOn(day) {
			summary.Occupied++
		}
	}

	summary.Free = summary.TotalRooms - summary.Occupied
	if summary.TotalRooms > 0 {
		pct := float64(summary.Occupied) / float64(summary.TotalRooms) * 100
		summary.OccupancyPercent = math.Round(pct*10) / 10
	}
	return summary, nil
}

// TodaySummary is SummaryFor(today).
func (s *OccupancyService) TodaySummary() (TodaySummary, error) {
	return s.SummaryFor(utils.Today())
}
