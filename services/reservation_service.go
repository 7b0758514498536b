package services

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"hotel-munich-backend/events"
	"hotel-munich-backend/models"

	"gorm.io/gorm"
)

// Reservation numbers are 7-digit zero-padded strings. When the table is
// empty (fresh install, nothing imported) numbering starts at this baseline,
// matching the legacy paper sequence.
const (
	reservationIDBaseline = 1255
	reservationIDWidth    = 7
)

// ErrIDConflict signals that ID allocation raced another writer and hit an
// existing row. Callers should retry the whole creation.
var ErrIDConflict = errors.New("reservation_id_conflict")

// ReservationService owns reservation lifecycle: creation with atomic ID
// allocation, updates, cancellation and listing. Each call uses its own
// session/transaction on the injected handle; the service keeps no state.
type ReservationService struct {
	DB     *gorm.DB
	Events *events.Publisher
}

func NewReservationService(db *gorm.DB, pub *events.Publisher) *ReservationService {
	return &ReservationService{DB: db, Events: pub}
}

// ReservationInput carries the mutable reservation fields. Input is assumed
// pre-validated by the caller (controller): stay days >= 1, non-empty guest
// name, at least one room, price >= 0.
type ReservationInput struct {
	CheckInDate  time.Time
	StayDays     int
	GuestName    string
	RoomIDs      []string
	RoomType     string
	Price        float64
	ArrivalTime  *string
	ReservedBy   string
	ContactPhone string
	ReceivedBy   string
}

// ReservationSummary is the listing row shape, with the derived checkout.
type ReservationSummary struct {
	ID        string    `json:"id"`
	RoomID    string    `json:"room_id"`
	GuestName string    `json:"guest_name"`
	Status    string    `json:"status"`
	CheckIn   time.Time `json:"check_in"`
	CheckOut  time.Time `json:"check_out"`
}

// CreateReservations opens its own transaction and creates one reservation
// per requested room, all sharing the booking attributes but each with its
// own consecutive ID. Returns the issued IDs in room order.
func (s *ReservationService) CreateReservations(input ReservationInput) ([]string, error) {
	var ids []string
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var txErr error
		ids, txErr = s.CreateReservationsTx(tx, input)
		return txErr
	})
	if err != nil {
		return nil, err
	}

	for i, id := range ids {
		s.Events.Publish(events.ReservationEvent{
			Type:          events.EventReservationCreated,
			ReservationID: id,
			RoomID:        input.RoomIDs[i],
			GuestName:     input.GuestName,
			CheckInDate:   input.CheckInDate.Format("2006-01-02"),
			StayDays:      input.StayDays,
			Actor:         input.ReceivedBy,
		})
	}
	return ids, nil
}

// CreateReservationsTx is the variant that joins a caller-supplied
// transaction. The ID block allocation and the inserts commit or roll back
// together with the rest of the caller's work.
func (s *ReservationService) CreateReservationsTx(tx *gorm.DB, input ReservationInput) ([]string, error) {
	n := len(input.RoomIDs)
	if n == 0 {
		return nil, fmt.Errorf("validation: no room ids provided")
	}

	first, err := nextReservationIDs(tx, n)
	if err != nil {
		return nil, err
	}

	checkIn := models.DateOf(input.CheckInDate)
	created := make([]string, 0, n)
	for i, roomID := range input.RoomIDs {
		res := models.Reservation{
			ID:           fmt.Sprintf("%0*d", reservationIDWidth, first+int64(i)),
			CreatedAt:    time.Now(),
			CheckInDate:  checkIn,
			StayDays:     input.StayDays,
			GuestName:    input.GuestName,
			RoomID:       roomID,
			RoomType:     input.RoomType,
			Price:        input.Price,
			ArrivalTime:  input.ArrivalTime,
			ReservedBy:   input.ReservedBy,
			ContactPhone: input.ContactPhone,
			ReceivedBy:   input.ReceivedBy,
			Status:       models.StatusConfirmed,
		}
		if err := tx.Create(&res).Error; err != nil {
			if isDuplicateKeyErr(err) {
				return nil, ErrIDConflict
			}
			return nil, fmt.Errorf("failed to create reservation %s: %w", res.ID, err)
		}
		created = append(created, res.ID)
	}
	return created, nil
}

// nextReservationIDs reserves a block of n consecutive numbers and returns
// the first one. The counter row is bumped with a single relative UPDATE,
// which the database serializes against concurrent allocations, so two
// simultaneous bookings can never be handed the same block.
func nextReservationIDs(tx *gorm.DB, n int) (int64, error) {
	res := tx.Model(&models.Sequence{}).
		Where("name = ?", models.SeqReservationID).
		Update("value", gorm.Expr("value + ?", n))
	if res.Error != nil {
		return 0, fmt.Errorf("failed to advance reservation sequence: %w", res.Error)
	}

	if res.RowsAffected == 0 {
		// First allocation ever: seed the counter from the highest issued
		// number (imported data) or the baseline, then claim the block.
		seed := maxIssuedReservationID(tx)
		seq := models.Sequence{Name: models.SeqReservationID, Value: seed + int64(n)}
		if err := tx.Create(&seq).Error; err != nil {
			if isDuplicateKeyErr(err) {
				return 0, ErrIDConflict
			}
			return 0, fmt.Errorf("failed to seed reservation sequence: %w", err)
		}
		return seed + 1, nil
	}

	var seq models.Sequence
	if err := tx.Where("name = ?", models.SeqReservationID).First(&seq).Error; err != nil {
		return 0, fmt.Errorf("failed to read reservation sequence: %w", err)
	}
	return seq.Value - int64(n) + 1, nil
}

// maxIssuedReservationID parses the highest existing reservation number.
// Non-numeric or absent IDs fall back to the documented baseline - 1 so the
// next issued number is the baseline itself.
func maxIssuedReservationID(tx *gorm.DB) int64 {
	var last models.Reservation
	if err := tx.Order("id DESC").First(&last).Error; err != nil {
		return reservationIDBaseline - 1
	}
	v, err := strconv.ParseInt(strings.TrimSpace(last.ID), 10, 64)
	if err != nil {
		log.Printf("warning: non-numeric reservation id %q, falling back to baseline", last.ID)
		return reservationIDBaseline - 1
	}
	if v < reservationIDBaseline-1 {
		return reservationIDBaseline - 1
	}
	return v
}

// CancelReservation marks the reservation cancelled and records who and why.
// Returns false (not an error) when the ID does not exist. Cancelling twice
// re-applies the same terminal state and still reports true.
func (s *ReservationService) CancelReservation(resID, reason, user string) (bool, error) {
	res := s.DB.Model(&models.Reservation{}).
		Where("id = ?", resID).
		Updates(map[string]interface{}{
			"status":              models.StatusCancelled,
			"cancellation_reason": reason,
			"cancelled_by":        user,
		})
	if res.Error != nil {
		return false, fmt.Errorf("failed to cancel reservation %s: %w", resID, res.Error)
	}
	if res.RowsAffected == 0 {
		return false, nil
	}

	s.Events.Publish(events.ReservationEvent{
		Type:          events.EventReservationCancelled,
		ReservationID: resID,
		Actor:         user,
	})
	return true, nil
}

// UpdateReservation overwrites the mutable fields in place. The identifier
// and creation timestamp never change. A multi-field input still targets the
// single row: when RoomIDs is non-empty its first entry becomes the room.
func (s *ReservationService) UpdateReservation(resID string, input ReservationInput) (bool, error) {
	updates := map[string]interface{}{
		"check_in_date": models.DateOf(input.CheckInDate),
		"stay_days":     input.StayDays,
		"guest_name":    input.GuestName,
		"room_type":     input.RoomType,
		"price":         input.Price,
		"arrival_time":  input.ArrivalTime,
		"reserved_by":   input.ReservedBy,
		"contact_phone": input.ContactPhone,
		"received_by":   input.ReceivedBy,
	}
	if len(input.RoomIDs) > 0 {
		updates["room_id"] = input.RoomIDs[0]
	}

	res := s.DB.Model(&models.Reservation{}).Where("id = ?", resID).Updates(updates)
	if res.Error != nil {
		return false, fmt.Errorf("failed to update reservation %s: %w", resID, res.Error)
	}
	return res.RowsAffected > 0, nil
}

// MarkCheckedIn transitions a confirmed reservation to Check-In status.
func (s *ReservationService) MarkCheckedIn(resID string) (bool, error) {
	res := s.DB.Model(&models.Reservation{}).
		Where("id = ? AND status = ?", resID, models.StatusConfirmed).
		Update("status", models.StatusCheckedIn)
	if res.Error != nil {
		return false, fmt.Errorf("failed to check in reservation %s: %w", resID, res.Error)
	}
	if res.RowsAffected == 0 {
		return false, nil
	}

	s.Events.Publish(events.ReservationEvent{
		Type:          events.EventReservationCheckedIn,
		ReservationID: resID,
	})
	return true, nil
}

// GetReservation returns the full row, or nil when the ID does not exist.
func (s *ReservationService) GetReservation(resID string) (*models.Reservation, error) {
	var r models.Reservation
	if err := s.DB.Where("id = ?", resID).First(&r).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load reservation %s: %w", resID, err)
	}
	return &r, nil
}

// GetAllReservations lists every reservation, newest first, with the
// derived checkout date.
func (s *ReservationService) GetAllReservations() ([]ReservationSummary, error) {
	var rows []models.Reservation
	if err := s.DB.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}

	out := make([]ReservationSummary, 0, len(rows))
	for _, r := range rows {
		out = append(out, ReservationSummary{
			ID:        r.ID,
			RoomID:    r.RoomID,
			GuestName: r.GuestName,
			Status:    r.Status,
			CheckIn:   r.CheckInDate,
			CheckOut:  r.CheckOutDate(),
		})
	}
	return out, nil
}

// isDuplicateKeyErr recognizes primary/unique key collisions only. MySQL
// says "Duplicate entry", SQLite "UNIQUE constraint failed"; other integrity
// errors (foreign keys, NOT NULL) must not look like an allocator conflict.
func isDuplicateKeyErr(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	lc := strings.ToLower(err.Error())
	return strings.Contains(lc, "duplicate entry") || strings.Contains(lc, "unique constraint")
}
