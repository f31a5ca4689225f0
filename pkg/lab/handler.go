package lab

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/labchat/labchat-server/internal/handler"
	"github.com/labchat/labchat-server/pkg/model"
)

func NewHandler(labService labService) Handler {
	return Handler{
		labService: labService,
	}
}

type Handler struct {
	labService labService
}

type labService interface {
	FindAll(ctx context.Context) ([]*model.Lab, error)
	FindById(ctx context.Context, id uint) (*model.Lab, error)
	FindMembers(ctx context.Context, id uint) ([]model.Member, error)
}

// FindAll labs
func (h Handler) FindAll(c *gin.Context) {
	// swagger:route GET /labs findAllLabs
	//
	// Find labs
	//
	// Find all labs
	//
	// responses:
	//   200: []Lab
	//   415: Error
	labs, err := h.labService.FindAll(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, labs)
}

// FindById lab
func (h Handler) FindById(c *gin.Context) {
	// swagger:route GET /labs/{id} findLabById
	//
	// Find lab
	//
	// Find a lab by its id
	//
	// responses:
	//   200: Lab
	//   404: Error
	//   415: Error
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	lab, err := h.labService.FindById(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, lab)
}

// FindMembers lab
func (h Handler) FindMembers(c *gin.Context) {
	// swagger:route GET /labs/{id}/members findLabMembers
	//
	// Find lab members
	//
	// Find the members of a lab, ordered by display name
	//
	// responses:
	//   200: []Member
	//   404: Error
	//   415: Error
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	members, err := h.labService.FindMembers(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, members)
}
