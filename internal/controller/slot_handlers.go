package controller

import (
	"net/http"

	"github.com/camereta/studio-booking/internal/model"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (h *Handlers) listSlotsForDate(c *gin.Context) {
	slots, err := h.calendar.ListForDate(c.Request.Context(), c.Param("date"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, slots)
}

type createSlotsRequest struct {
	Date    string             `json:"date" binding:"required"`
	Windows []model.SlotWindow `json:"windows" binding:"required,min=1,dive"`
}

func (h *Handlers) createSlots(c *gin.Context) {
	var req createSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	slots, err := h.calendar.CreateSlots(c.Request.Context(), req.Date, req.Windows)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "slots created",
		"slots":   slots,
	})
}

func (h *Handlers) deleteSlot(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, err)
		return
	}

	if err := h.calendar.DeleteSlot(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "slot deleted"})
}

func (h *Handlers) toggleSlot(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, err)
		return
	}

	slot, err := h.calendar.ToggleBlocked(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "slot updated",
		"slot":    slot,
	})
}
