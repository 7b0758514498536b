package services

import (
	"testing"

	"hotel-munich-backend/models"

	"golang.org/x/crypto/bcrypt"
)

func TestAuthenticateBcrypt(t *testing.T) {
	db := newTestDB(t)
	hash, err := bcrypt.GenerateFromPassword([]byte("secreto"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	if err := db.Create(&models.User{Username: "admin", Password: string(hash), Role: "admin"}).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}

	svc := NewAuthService(db)

	user, err := svc.Authenticate("admin", "secreto")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if user == nil || user.Username != "admin" {
		t.Fatalf("user = %+v, want admin", user)
	}

	user, err = svc.Authenticate("admin", "equivocada")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if user != nil {
		t.Fatal("wrong password must return nil user")
	}

	user, err = svc.Authenticate("nadie", "secreto")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if user != nil {
		t.Fatal("unknown user must return nil")
	}
}

func TestAuthenticateUpgradesLegacyPlaintext(t *testing.T) {
	db := newTestDB(t)
	if err := db.Create(&models.User{Username: "recepcion", Password: "clave123", Role: "staff"}).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}

	svc := NewAuthService(db)

	user, err := svc.Authenticate("recepcion", "clave123")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if user == nil {
		t.Fatal("legacy plaintext credentials must still work")
	}

	var stored models.User
	if err := db.Where("username = ?", "recepcion").First(&stored).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if !isBcryptHash(stored.Password) {
		t.Fatalf("password not upgraded to bcrypt: %q", stored.Password)
	}

	// The upgraded hash keeps working.
	user, err = svc.Authenticate("recepcion", "clave123")
	if err != nil || user == nil {
		t.Fatalf("post-upgrade login failed: user=%v err=%v", user, err)
	}
}
