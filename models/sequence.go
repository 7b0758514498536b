package models

// Sequence is a named atomic counter. Reservation IDs are allocated by
// incrementing the "reservation_id" row inside the creation transaction,
// which serializes concurrent allocations at the database level.
type Sequence struct {
	Name  string `gorm:"primaryKey;size:64"`
	Value int64
}

// SeqReservationID is the sequence backing reservation number allocation.
const SeqReservationID = "reservation_id"
