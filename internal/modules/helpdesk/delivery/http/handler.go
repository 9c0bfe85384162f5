package handler

import (
	"net/http"

	"anoa.com/livestockhub/internal/entity"
	"anoa.com/livestockhub/internal/modules/access"
	"anoa.com/livestockhub/internal/modules/helpdesk/dto"
	"anoa.com/livestockhub/internal/modules/helpdesk/service"
	"anoa.com/livestockhub/pkg/response"
	"github.com/gin-gonic/gin"
)

type HelpdeskHandler struct {
	helpdeskService service.HelpdeskService
}

func NewHelpdeskHandler(helpdeskService service.HelpdeskService) *HelpdeskHandler {
	return &HelpdeskHandler{helpdeskService: helpdeskService}
}

func isStaff(c *gin.Context) bool {
	return access.RolesFromContext(c).Has(entity.RoleAdmin)
}

func (h *HelpdeskHandler) Create(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input dto.CreateTicketInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationError(c, err)
		return
	}

	ticket, err := h.helpdeskService.Create(c.Request.Context(), userID, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ticket)
}

func (h *HelpdeskHandler) ListMine(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var filter dto.TicketFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.ValidationError(c, err)
		return
	}

	res, err := h.helpdeskService.ListMine(c.Request.Context(), userID, filter)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *HelpdeskHandler) Get(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	id, ok := response.BindUUIDParam(c, "id")
	if !ok {
		return
	}

	ticket, err := h.helpdeskService.Get(c.Request.Context(), userID, isStaff(c), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, ticket)
}

func (h *HelpdeskHandler) Respond(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	id, ok := response.BindUUIDParam(c, "id")
	if !ok {
		return
	}

	var input dto.ResponseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationError(c, err)
		return
	}

	resp, err := h.helpdeskService.Respond(c.Request.Context(), userID, isStaff(c), id, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
