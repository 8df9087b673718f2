package controller

import (
	"net/http"
	"time"

	"github.com/camereta/studio-booking/internal/booking"
	"github.com/camereta/studio-booking/internal/model"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type createReservationRequest struct {
	Name        string    `json:"name" binding:"required"`
	Email       string    `json:"email" binding:"required,email"`
	Phone       string    `json:"phone" binding:"required"`
	SessionType string    `json:"session_type" binding:"required"`
	StartAt     time.Time `json:"start_at" binding:"required"`
	Comments    *string   `json:"comments"`
}

func (h *Handlers) createReservation(c *gin.Context) {
	var req createReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	res, err := h.reservations.Create(c.Request.Context(), booking.CreateInput{
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		SessionTypeName: req.SessionType,
		StartAt:         req.StartAt,
		Comments:        req.Comments,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "reservation created",
		"reservation": res,
	})
}

func (h *Handlers) listReservations(c *gin.Context) {
	var status *model.ReservationStatus
	if raw := c.Query("status"); raw != "" {
		s := model.ReservationStatus(raw)
		status = &s
	}

	reservations, err := h.reservations.ListAll(c.Request.Context(), status)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, reservations)
}

type updateStatusRequest struct {
	Status model.ReservationStatus `json:"status" binding:"required"`
}

func (h *Handlers) updateReservationStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, err)
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	res, err := h.reservations.SetStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "status updated",
		"reservation": res,
	})
}

type bulkDeleteRequest struct {
	IDs []uuid.UUID `json:"ids" binding:"required,min=1"`
}

func (h *Handlers) bulkDeleteReservations(c *gin.Context) {
	var req bulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	count, err := h.reservations.BulkDelete(c.Request.Context(), req.IDs)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "reservations deleted",
		"count":   count,
	})
}

func (h *Handlers) listSessionTypes(c *gin.Context) {
	types, err := h.reservations.SessionTypes(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, types)
}
