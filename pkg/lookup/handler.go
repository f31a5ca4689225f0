package lookup

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/labchat/labchat-server/internal/handler"
	"github.com/labchat/labchat-server/pkg/model"
)

func NewHandler(lookupService lookupService) Handler {
	return Handler{
		lookupService: lookupService,
	}
}

type Handler struct {
	lookupService lookupService
}

type lookupService interface {
	EventTypes(ctx context.Context, labID uint) ([]model.EventType, error)
	EventStatuses(ctx context.Context, labID uint) ([]model.EventStatus, error)
	Instruments(ctx context.Context, labID uint) ([]model.Instrument, error)
}

// EventTypes lookup
func (h Handler) EventTypes(c *gin.Context) {
	// swagger:route GET /labs/{id}/event-types findEventTypes
	//
	// Find event types
	//
	// Find the event types of a lab
	//
	// responses:
	//   200: []EventType
	//   404: Error
	//   415: Error
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	types, err := h.lookupService.EventTypes(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, types)
}

// EventStatuses lookup
func (h Handler) EventStatuses(c *gin.Context) {
	// swagger:route GET /labs/{id}/event-statuses findEventStatuses
	//
	// Find event statuses
	//
	// Find the event statuses of a lab
	//
	// responses:
	//   200: []EventStatus
	//   404: Error
	//   415: Error
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	statuses, err := h.lookupService.EventStatuses(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, statuses)
}

// Instruments lookup
func (h Handler) Instruments(c *gin.Context) {
	// swagger:route GET /labs/{id}/instruments findInstruments
	//
	// Find instruments
	//
	// Find the instruments of a lab
	//
	// responses:
	//   200: []Instrument
	//   404: Error
	//   415: Error
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	instruments, err := h.lookupService.Instruments(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, instruments)
}
