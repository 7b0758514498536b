package models

import (
	"gorm.io/datatypes"
)

// CheckIn is the guest registration ficha: identity, billing and vehicle
// details captured at the desk. It may reference a room but is independent
// of any Reservation row — it doubles as the guest registry used for search,
// autocomplete and billing-history lookup.
type CheckIn struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	EntryDate datatypes.Date `gorm:"index" json:"entry_date"`

	RoomID      *string `gorm:"size:10;index" json:"room_id,omitempty"`
	CheckInTime *string `gorm:"size:8" json:"check_in_time,omitempty"` // "HH:MM"

	LastName    string          `gorm:"size:255;index" json:"last_name"`
	FirstName   string          `gorm:"size:255;index" json:"first_name"`
	Nationality string          `gorm:"size:128" json:"nationality"`
	BirthDate   *datatypes.Date `json:"birth_date,omitempty"`

	Origin         string `gorm:"size:255" json:"origin"`
	Destination    string `gorm:"size:255" json:"destination"`
	CivilStatus    string `gorm:"size:64" json:"civil_status"`
	DocumentNumber string `gorm:"size:64;index" json:"document_number"`
	Country        string `gorm:"size:128" json:"country"`

	BillingName string `gorm:"size:255" json:"billing_name"`
	BillingRUC  string `gorm:"size:64" json:"billing_ruc"`

	VehicleModel string `gorm:"size:128" json:"vehicle_model"`
	VehiclePlate string `gorm:"size:32" json:"vehicle_plate"`

	// Base64 signature image, or "Pendiente" until the guest signs.
	DigitalSignature string `gorm:"type:text" json:"digital_signature"`
}
