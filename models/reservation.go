package models

import (
	"time"
)

// Reservation statuses. The Spanish values are the wire/storage format the
// legacy data already uses, so they are kept verbatim.
const (
	StatusConfirmed = "Confirmada"
	StatusCancelled = "Cancelada"
	StatusCheckedIn = "Check-In"
)

// Reservation is one room for one guest over a contiguous range of nights.
// Multi-room bookings are stored as N sibling rows with consecutive IDs.
type Reservation struct {
	// Zero-padded sequential string, e.g. "0001255". Issued once, never reused.
	ID        string    `gorm:"primaryKey;size:16" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	CheckInDate time.Time `gorm:"index" json:"check_in_date"`
	StayDays    int       `json:"stay_days"`
	GuestName   string    `gorm:"size:255" json:"guest_name"`

	RoomID   string `gorm:"size:10;index" json:"room_id"`
	RoomType string `gorm:"size:64" json:"room_type"`

	Price       float64 `json:"price"`
	ArrivalTime *string `gorm:"size:8" json:"arrival_time,omitempty"` // "HH:MM", optional

	ReservedBy   string `gorm:"size:255" json:"reserved_by"`
	ContactPhone string `gorm:"size:64" json:"contact_phone"`
	ReceivedBy   string `gorm:"size:255" json:"received_by"`

	Status             string `gorm:"size:32;index" json:"status"`
	CancellationReason string `gorm:"size:255" json:"cancellation_reason,omitempty"`
	CancelledBy        string `gorm:"size:255" json:"cancelled_by,omitempty"`

	Room Room `gorm:"foreignKey:RoomID;references:ID" json:"-"`
}

// CheckOutDate is check-in plus the stay length. The checkout day itself is
// not occupied: a reservation covers the half-open range
// [CheckInDate, CheckOutDate).
func (r Reservation) CheckOutDate() time.Time {
	return r.CheckInDate.AddDate(0, 0, r.StayDays)
}

// IsActiveOn reports whether the reservation occupies its room on day d.
// Cancelled reservations never occupy anything.
func (r Reservation) IsActiveOn(d time.Time) bool {
	if r.Status == StatusCancelled {
		return false
	}
	d = DateOf(d)
	start := DateOf(r.CheckInDate)
	return !d.Before(start) && d.Before(start.AddDate(0, 0, r.StayDays))
}

// Overlaps reports whether the reservation's stay intersects the half-open
// range [start, end). Cancelled reservations report false.
func (r Reservation) Overlaps(start, end time.Time) bool {
	if r.Status == StatusCancelled {
		return false
	}
	s := DateOf(r.CheckInDate)
	e := s.AddDate(0, 0, r.StayDays)
	return s.Before(DateOf(end)) && DateOf(start).Before(e)
}

// DateOf truncates t to midnight in its own location.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
