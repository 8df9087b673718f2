package controller

import (
	"errors"
	"net/http"

	"github.com/camereta/studio-booking/internal/booking"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError maps the booking error taxonomy onto the three user-facing
// tiers: bad input, slot no longer available, and server fault. Admission
// rejections are expected traffic and are not logged as errors.
func (h *Handlers) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, booking.ErrValidation),
		errors.Is(err, booking.ErrInvalidStatus),
		errors.Is(err, booking.ErrSessionTypeNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})

	case errors.Is(err, booking.ErrReservationNotFound),
		errors.Is(err, booking.ErrSlotNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})

	case errors.Is(err, booking.ErrSlotUnavailable):
		c.JSON(http.StatusConflict, gin.H{
			"message": "this time is no longer available, please pick another",
		})

	case errors.Is(err, booking.ErrSlotClaimed):
		c.JSON(http.StatusConflict, gin.H{"message": err.Error()})

	default:
		h.logger.Error("Request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "something went wrong, try again",
		})
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
}
