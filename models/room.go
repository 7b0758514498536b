package models

// Room is one of the hotel's 14 physical rooms. The roster is created once
// at seed time and rarely changes.
type Room struct {
	ID     string `gorm:"primaryKey;size:10" json:"id"` // "31", "32", ...
	Type   string `gorm:"size:64" json:"type"`
	Status string `gorm:"size:32;default:Active" json:"status"`
}

// RoomIDs is the fixed roster, in the order the front desk lists rooms.
var RoomIDs = []string{
	"31", "32", "33", "34", "35", "36",
	"21", "22", "23", "24", "25", "26", "27", "28",
}
