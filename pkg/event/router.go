package event

import (
	"github.com/gin-gonic/gin"
)

func Routes(r *gin.RouterGroup, handler Handler) {
	r.POST("/events", handler.Create)
	r.POST("/events/recurring", handler.CreateRecurring)
	r.GET("/events/:id", handler.FindById)
	r.PUT("/events/:id", handler.Update)
	r.PUT("/events/:id/status", handler.UpdateStatus)
	r.DELETE("/events/:id", handler.Delete)
	r.DELETE("/events/series/:uid", handler.DeleteSeries)

	r.GET("/labs/:id/events", handler.FindAll)
	r.GET("/labs/:id/calendar", handler.Calendar)
	r.GET("/labs/:id/calendar.ics", handler.Feed)
}
