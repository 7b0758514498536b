package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"hotel-munich-backend/models"
	"hotel-munich-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func calendarTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&models.Room{}, &models.Reservation{}, &models.Sequence{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	for _, id := range models.RoomIDs {
		if err := db.Create(&models.Room{ID: id, Type: "Doble", Status: "Active"}).Error; err != nil {
			t.Fatalf("failed to seed room %s: %v", id, err)
		}
	}

	ctl := NewCalendarController(services.NewOccupancyService(db))
	r := gin.New()
	r.GET("/api/calendar/events", ctl.Events)
	r.GET("/api/calendar/occupancy", ctl.Occupancy)
	r.GET("/api/calendar/summary", ctl.Summary)
	return r, db
}

func TestSummaryEndpointWireNames(t *testing.T) {
	router, _ := calendarTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/calendar/summary", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var body map[string]json.RawMessage
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	for _, key := range []string{
		"llegadas_hoy", "salidas_hoy", "ocupadas", "libres",
		"total_habitaciones", "porcentaje_ocupacion",
	} {
		if _, ok := body[key]; !ok {
			t.Errorf("summary missing wire field %q: %s", key, w.Body.String())
		}
	}

	var summary services.TodaySummary
	if err := json.Unmarshal(w.Body.Bytes(), &summary); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if summary.TotalRooms != 14 || summary.Free != 14 {
		t.Fatalf("empty hotel summary = %+v", summary)
	}
}

func TestOccupancyEndpointValidatesParams(t *testing.T) {
	router, _ := calendarTestRouter(t)

	cases := []string{
		"/api/calendar/occupancy",                      // missing both
		"/api/calendar/occupancy?year=2019&month=5",    // year too small
		"/api/calendar/occupancy?year=2025&month=13",   // month out of range
		"/api/calendar/occupancy?year=abc&month=5",     // not a number
		"/api/calendar/occupancy?year=2025&month=cero", // not a number
	}
	for _, url := range cases {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, url, nil)
		router.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", url, w.Code)
		}
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/calendar/occupancy?year=2025&month=2", nil)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("valid params: status = %d, body = %s", w.Code, w.Body.String())
	}

	var occ map[string]services.DayOccupancy
	if err := json.Unmarshal(w.Body.Bytes(), &occ); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(occ) != 28 {
		t.Fatalf("occupancy map has %d dates, want 28", len(occ))
	}
}
