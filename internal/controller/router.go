package controller

import (
	"net/http"

	"github.com/camereta/studio-booking/internal/auth"
	"github.com/camereta/studio-booking/internal/booking"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handlers struct {
	reservations *booking.ReservationService
	calendar     *booking.CalendarService
	auth         *auth.Service
	logger       *zap.Logger
}

func NewHandlers(
	reservations *booking.ReservationService,
	calendar *booking.CalendarService,
	authSvc *auth.Service,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		reservations: reservations,
		calendar:     calendar,
		auth:         authSvc,
		logger:       logger,
	}
}

// NewRouter wires the public booking routes and the token-guarded admin
// routes.
func NewRouter(h *Handlers, authSvc *auth.Service, env string) *gin.Engine {
	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(h.logger))
	r.Use(cors.Default())

	api := r.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	api.POST("/auth/login", h.login)
	api.GET("/auth/verify", auth.Middleware(authSvc), h.verify)

	api.GET("/session-types", h.listSessionTypes)
	api.POST("/reservations", h.createReservation)
	api.GET("/availability/:date", h.listSlotsForDate)

	admin := api.Group("", auth.Middleware(authSvc))
	admin.GET("/reservations", h.listReservations)
	admin.PATCH("/reservations/:id/status", h.updateReservationStatus)
	admin.DELETE("/reservations", h.bulkDeleteReservations)
	admin.POST("/availability", h.createSlots)
	admin.DELETE("/availability/:id", h.deleteSlot)
	admin.PATCH("/availability/:id/toggle", h.toggleSlot)

	return r
}
