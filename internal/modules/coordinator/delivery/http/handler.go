package handler

import (
	"net/http"

	"anoa.com/livestockhub/internal/modules/coordinator/dto"
	"anoa.com/livestockhub/internal/modules/coordinator/service"
	"anoa.com/livestockhub/pkg/response"
	"github.com/gin-gonic/gin"
)

type CoordinatorHandler struct {
	coordinatorService service.CoordinatorService
}

func NewCoordinatorHandler(coordinatorService service.CoordinatorService) *CoordinatorHandler {
	return &CoordinatorHandler{coordinatorService: coordinatorService}
}

func (h *CoordinatorHandler) Overview(c *gin.Context) {
	res, err := h.coordinatorService.Overview(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *CoordinatorHandler) Regions(c *gin.Context) {
	var filter dto.RegionFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.ValidationError(c, err)
		return
	}

	rows, err := h.coordinatorService.Regions(c.Request.Context(), filter)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rows})
}
