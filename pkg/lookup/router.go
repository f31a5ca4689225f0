package lookup

import (
	"github.com/gin-gonic/gin"
)

func Routes(r *gin.RouterGroup, handler Handler) {
	r.GET("/labs/:id/event-types", handler.EventTypes)
	r.GET("/labs/:id/event-statuses", handler.EventStatuses)
	r.GET("/labs/:id/instruments", handler.Instruments)
}
