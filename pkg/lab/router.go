package lab

import (
	"github.com/gin-gonic/gin"
)

func Routes(r *gin.RouterGroup, handler Handler) {
	r.GET("/labs", handler.FindAll)
	r.GET("/labs/:id", handler.FindById)
	r.GET("/labs/:id/members", handler.FindMembers)
}
