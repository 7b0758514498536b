package controllers

import (
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"hotel-munich-backend/models"
	"hotel-munich-backend/services"
	"hotel-munich-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

var (
	documentCleaner = regexp.MustCompile(`[.\s]`)
	rucCleaner      = regexp.MustCompile(`[^\d\-]`)
)

// CheckInPayload mirrors the guest ficha with ISO date strings at the
// boundary.
type CheckInPayload struct {
	EntryDate   string  `json:"entry_date"`
	RoomID      *string `json:"room_id"`
	CheckInTime *string `json:"check_in_time"`

	LastName    string `json:"last_name"`
	FirstName   string `json:"first_name"`
	Nationality string `json:"nationality"`
	BirthDate   string `json:"birth_date"`

	Origin         string `json:"origin"`
	Destination    string `json:"destination"`
	CivilStatus    string `json:"civil_status"`
	DocumentNumber string `json:"document_number"`
	Country        string `json:"country"`

	BillingName string `json:"billing_name"`
	BillingRUC  string `json:"billing_ruc"`

	VehicleModel string `json:"vehicle_model"`
	VehiclePlate string `json:"vehicle_plate"`
}

func (p *CheckInPayload) toModel() (*models.CheckIn, string) {
	entry := utils.Today()
	if p.EntryDate != "" {
		parsed, err := utils.ParseDate(p.EntryDate)
		if err != nil {
			return nil, err.Error()
		}
		entry = parsed
	}

	var birth *datatypes.Date
	if p.BirthDate != "" {
		parsed, err := utils.ParseDate(p.BirthDate)
		if err != nil {
			return nil, err.Error()
		}
		if parsed.After(utils.Today()) {
			return nil, "birth_date cannot be in the future"
		}
		d := datatypes.Date(parsed)
		birth = &d
	}

	doc := documentCleaner.ReplaceAllString(strings.ToUpper(p.DocumentNumber), "")

	return &models.CheckIn{
		EntryDate:      datatypes.Date(entry),
		RoomID:         p.RoomID,
		CheckInTime:    p.CheckInTime,
		LastName:       strings.TrimSpace(p.LastName),
		FirstName:      strings.TrimSpace(p.FirstName),
		Nationality:    strings.TrimSpace(p.Nationality),
		BirthDate:      birth,
		Origin:         strings.TrimSpace(p.Origin),
		Destination:    strings.TrimSpace(p.Destination),
		CivilStatus:    strings.TrimSpace(p.CivilStatus),
		DocumentNumber: doc,
		Country:        strings.TrimSpace(p.Country),
		BillingName:    strings.TrimSpace(p.BillingName),
		BillingRUC:     rucCleaner.ReplaceAllString(p.BillingRUC, ""),
		VehicleModel:   strings.TrimSpace(p.VehicleModel),
		VehiclePlate:   strings.TrimSpace(p.VehiclePlate),
	}, ""
}

type GuestController struct {
	Svc *services.GuestService
}

func NewGuestController(svc *services.GuestService) *GuestController {
	return &GuestController{Svc: svc}
}

func (ctl *GuestController) CreateCheckIn(c *gin.Context) {
	var payload CheckInPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload: "+err.Error())
		return
	}

	checkin, problem := payload.toModel()
	if problem != "" {
		utils.JSONError(c, http.StatusBadRequest, problem)
		return
	}

	if err := ctl.Svc.RegisterCheckIn(checkin); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, gin.H{"id": checkin.ID})
}

func (ctl *GuestController) GetCheckIn(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid check-in id")
		return
	}

	checkin, err := ctl.Svc.GetCheckIn(uint(id))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	if checkin == nil {
		utils.JSONError(c, http.StatusNotFound, "check-in not found")
		return
	}
	c.JSON(http.StatusOK, checkin)
}

func (ctl *GuestController) UpdateCheckIn(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid check-in id")
		return
	}

	var payload CheckInPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload: "+err.Error())
		return
	}
	checkin, problem := payload.toModel()
	if problem != "" {
		utils.JSONError(c, http.StatusBadRequest, problem)
		return
	}

	ok, err := ctl.Svc.UpdateCheckIn(uint(id), checkin)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	if !ok {
		utils.JSONError(c, http.StatusNotFound, "check-in not found")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"id": id})
}

// SearchCheckIns matches ?q= against names, documents and billing names.
func (ctl *GuestController) SearchCheckIns(c *gin.Context) {
	results, err := ctl.Svc.SearchCheckIns(c.Query("q"))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, results)
}

// BillingHistory lists billing profiles previously used with a document.
func (ctl *GuestController) BillingHistory(c *gin.Context) {
	profiles, err := ctl.Svc.BillingHistory(c.Param("doc"))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, profiles)
}

// GuestNames feeds the autocomplete with "Last, First (doc)" labels.
func (ctl *GuestController) GuestNames(c *gin.Context) {
	names, err := ctl.Svc.AllGuestNames()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, names)
}

func (ctl *GuestController) BillingProfiles(c *gin.Context) {
	profiles, err := ctl.Svc.AllBillingProfiles()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, profiles)
}
