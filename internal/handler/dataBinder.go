package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/labchat/labchat-server/internal/errdef"
)

func DataBinder(c *gin.Context, req interface{}) error {
	if c.ContentType() != "application/json" {
		reason := fmt.Sprintf("%s only accepts content of type application/json", c.FullPath())
		return errdef.NewUnsupportedMediaType(reason)
	}

	if err := c.ShouldBind(req); err != nil {
		return errdef.NewBadRequest("error binding data: %v", err)
	}

	return nil
}
