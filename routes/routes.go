package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"hotel-munich-backend/controllers"
	"hotel-munich-backend/middleware"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		if origin := strings.TrimSpace(part); origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// SetupRouter wires the controllers into the API surface. Everything except
// /health and /api/auth requires a bearer token.
func SetupRouter(
	ac *controllers.AuthController,
	rc *controllers.RoomController,
	resc *controllers.ReservationController,
	cc *controllers.CalendarController,
	gc *controllers.GuestController,
	jwtSecret string,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/login", ac.Login)
	}

	protected := api.Group("")
	protected.Use(middleware.RequireAuth(jwtSecret))
	{
		rooms := protected.Group("/rooms")
		{
			rooms.GET("", rc.ListRooms)
			rooms.GET("/status", rc.RoomsStatus) // before /:id
			rooms.GET("/:id", rc.GetRoom)
		}

		reservations := protected.Group("/reservations")
		{
			reservations.GET("", resc.ListReservations)
			reservations.POST("", resc.CreateReservation)
			reservations.GET("/weekly", resc.WeeklyView) // before /:id
			reservations.GET("/:id", resc.GetReservation)
			reservations.PUT("/:id", resc.UpdateReservation)
			reservations.POST("/:id/cancel", resc.CancelReservation)
			reservations.POST("/:id/checkin", resc.CheckInReservation)
		}

		calendar := protected.Group("/calendar")
		{
			calendar.GET("/events", cc.Events)
			calendar.GET("/occupancy", cc.Occupancy)
			calendar.GET("/summary", cc.Summary)
		}

		guests := protected.Group("/guests")
		{
			guests.GET("/search", gc.SearchCheckIns)
			guests.GET("/names", gc.GuestNames)
			guests.GET("/billing-profiles", gc.BillingProfiles)
			guests.GET("/billing/:doc", gc.BillingHistory)
			guests.GET("/:id", gc.GetCheckIn)
			guests.POST("", gc.CreateCheckIn)
			guests.PUT("/:id", gc.UpdateCheckIn)
		}
	}

	return r
}
