package services

import (
	"errors"
	"fmt"
	"strings"

	"hotel-munich-backend/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService verifies desk-user credentials. Legacy rows imported from the
// Excel workbook store plaintext passwords; those are verified by direct
// comparison and transparently upgraded to bcrypt on first login.
type AuthService struct {
	DB *gorm.DB
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{DB: db}
}

func isBcryptHash(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}

// Authenticate returns the user on success, nil on bad credentials.
func (s *AuthService) Authenticate(username, password string) (*models.User, error) {
	var user models.User
	if err := s.DB.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up user %s: %w", username, err)
	}

	if isBcryptHash(user.Password) {
		if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
			return nil, nil
		}
		return &user, nil
	}

	// Legacy plaintext row.
	if user.Password != password {
		return nil, nil
	}
	if hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost); err == nil {
		_ = s.DB.Model(&user).Update("password", string(hash)).Error
	}
	return &user, nil
}
