package models

type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"uniqueIndex;size:150" json:"username"`
	Password string `gorm:"size:255" json:"-"` // bcrypt hash; legacy rows may still be plaintext
	Role     string `gorm:"size:64" json:"role"`
	RealName string `gorm:"size:255" json:"real_name"`
}
