package controllers

import (
	"net/http"
	"strconv"
	"time"

	"hotel-munich-backend/services"
	"hotel-munich-backend/utils"

	"github.com/gin-gonic/gin"
)

type CalendarController struct {
	Occ *services.OccupancyService
}

func NewCalendarController(occ *services.OccupancyService) *CalendarController {
	return &CalendarController{Occ: occ}
}

func yearMonthParams(c *gin.Context) (int, time.Month, bool) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 2020 || year > 2100 {
		utils.JSONError(c, http.StatusBadRequest, "year must be between 2020 and 2100")
		return 0, 0, false
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		utils.JSONError(c, http.StatusBadRequest, "month must be between 1 and 12")
		return 0, 0, false
	}
	return year, time.Month(month), true
}

// Events returns FullCalendar-compatible events for a month.
func (ctl *CalendarController) Events(c *gin.Context) {
	year, month, ok := yearMonthParams(c)
	if !ok {
		return
	}

	events, err := ctl.Occ.MonthlyEvents(year, month)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, events)
}

// Occupancy returns the per-date occupancy map for a month.
func (ctl *CalendarController) Occupancy(c *gin.Context) {
	year, month, ok := yearMonthParams(c)
	if !ok {
		return
	}

	occ, err := ctl.Occ.OccupancyMap(year, month)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, occ)
}

// Summary returns today's desk summary.
func (ctl *CalendarController) Summary(c *gin.Context) {
	summary, err := ctl.Occ.TodaySummary()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, summary)
}
