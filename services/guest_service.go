package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"hotel-munich-backend/models"

	"gorm.io/gorm"
)

// GuestService manages the guest registration fichas. The registry is
// independent of reservations: it backs search, billing-history lookup and
// name autocomplete for the desk.
type GuestService struct {
	DB *gorm.DB
}

func NewGuestService(db *gorm.DB) *GuestService {
	return &GuestService{DB: db}
}

// CheckInSearchResult is the compact row shown in search dropdowns.
type CheckInSearchResult struct {
	ID    uint   `json:"id"`
	Label string `json:"label"`
}

// BillingProfile is a distinct billing identity seen on past fichas.
type BillingProfile struct {
	Name string `json:"name"`
	RUC  string `json:"ruc"`
}

// RegisterCheckIn stores a new ficha and fills the generated ID back into
// the pointer. The signature starts as "Pendiente" until the guest signs.
func (s *GuestService) RegisterCheckIn(checkin *models.CheckIn) error {
	if checkin.DigitalSignature == "" {
		checkin.DigitalSignature = "Pendiente"
	}
	if err := s.DB.Create(checkin).Error; err != nil {
		return fmt.Errorf("failed to register check-in: %w", err)
	}
	return nil
}

// GetCheckIn returns the ficha, or nil when the ID does not exist.
func (s *GuestService) GetCheckIn(id uint) (*models.CheckIn, error) {
	var c models.CheckIn
	if err := s.DB.First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load check-in %d: %w", id, err)
	}
	return &c, nil
}

// UpdateCheckIn overwrites the ficha fields in place; false when not found.
func (s *GuestService) UpdateCheckIn(id uint, data *models.CheckIn) (bool, error) {
	updates := map[string]interface{}{
		"room_id":         data.RoomID,
		"check_in_time":   data.CheckInTime,
		"last_name":       data.LastName,
		"first_name":      data.FirstName,
		"nationality":     data.Nationality,
		"birth_date":      data.BirthDate,
		"origin":          data.Origin,
		"destination":     data.Destination,
		"civil_status":    data.CivilStatus,
		"document_number": data.DocumentNumber,
		"country":         data.Country,
		"billing_name":    data.BillingName,
		"billing_ruc":     data.BillingRUC,
		"vehicle_model":   data.VehicleModel,
		"vehicle_plate":   data.VehiclePlate,
	}

	res := s.DB.Model(&models.CheckIn{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return false, fmt.Errorf("failed to update check-in %d: %w", id, res.Error)
	}
	return res.RowsAffected > 0, nil
}

// SearchCheckIns matches name, document or billing name, newest first,
// capped at 20 rows like the legacy desk search.
func (s *GuestService) SearchCheckIns(query string) ([]CheckInSearchResult, error) {
	q := "%" + strings.TrimSpace(query) + "%"

	var rows []models.CheckIn
	err := s.DB.
		Where("last_name LIKE ? OR first_name LIKE ? OR document_number LIKE ? OR billing_name LIKE ?", q, q, q, q).
		Order("entry_date DESC, id DESC").
		Limit(20).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search check-ins: %w", err)
	}

	out := make([]CheckInSearchResult, 0, len(rows))
	for _, c := range rows {
		entry := time.Time(c.EntryDate).Format("2006-01-02")
		out = append(out, CheckInSearchResult{
			ID:    c.ID,
			Label: fmt.Sprintf("%s, %s (%s) - %s", c.LastName, c.FirstName, c.DocumentNumber, entry),
		})
	}
	return out, nil
}

// BillingHistory returns the distinct billing profiles previously used with
// this document number.
func (s *GuestService) BillingHistory(docNumber string) ([]BillingProfile, error) {
	var rows []models.CheckIn
	err := s.DB.
		Select("billing_name", "billing_ruc").
		Where("document_number = ?", docNumber).
		Group("billing_name, billing_ruc").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load billing history for %s: %w", docNumber, err)
	}

	out := make([]BillingProfile, 0, len(rows))
	for _, c := range rows {
		if c.BillingName == "" {
			continue
		}
		out = append(out, BillingProfile{Name: c.BillingName, RUC: c.BillingRUC})
	}
	return out, nil
}

// AllGuestNames returns the sorted distinct "Last, First (doc)" labels used
// by the autocomplete widgets.
func (s *GuestService) AllGuestNames() ([]string, error) {
	var rows []models.CheckIn
	err := s.DB.
		Select("last_name", "first_name", "document_number").
		Distinct().
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load guest names: %w", err)
	}

	seen := make(map[string]struct{}, len(rows))
	names := make([]string, 0, len(rows))
	for _, g := range rows {
		if g.LastName == "" && g.FirstName == "" {
			continue
		}
		full := strings.Trim(fmt.Sprintf("%s, %s", g.LastName, g.FirstName), ", ")
		if g.DocumentNumber != "" {
			full += fmt.Sprintf(" (%s)", g.DocumentNumber)
		}
		if _, dup := seen[full]; dup {
			continue
		}
		seen[full] = struct{}{}
		names = append(names, full)
	}

	sort.Strings(names)
	return names, nil
}

// AllBillingProfiles returns every distinct billing identity, sorted by name.
func (s *GuestService) AllBillingProfiles() ([]BillingProfile, error) {
	var rows []models.CheckIn
	err := s.DB.
		Select("billing_name", "billing_ruc").
		Where("billing_name <> ''").
		Distinct().
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load billing profiles: %w", err)
	}

	type key struct{ name, ruc string }
	seen := make(map[key]struct{}, len(rows))
	out := make([]BillingProfile, 0, len(rows))
	for _, c := range rows {
		if c.BillingName == "" {
			continue
		}
		k := key{c.BillingName, c.BillingRUC}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, BillingProfile{Name: c.BillingName, RUC: c.BillingRUC})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
