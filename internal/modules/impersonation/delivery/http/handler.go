package handler

import (
	"net/http"

	"anoa.com/livestockhub/internal/modules/impersonation/dto"
	"anoa.com/livestockhub/internal/modules/impersonation/service"
	"anoa.com/livestockhub/internal/modules/session"
	"anoa.com/livestockhub/pkg/apperror"
	"anoa.com/livestockhub/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ImpersonationHandler struct {
	impersonationService service.ImpersonationService
}

func NewImpersonationHandler(impersonationService service.ImpersonationService) *ImpersonationHandler {
	return &ImpersonationHandler{impersonationService: impersonationService}
}

func (h *ImpersonationHandler) Start(c *gin.Context) {
	sess, ok := session.FromContext(c)
	if !ok {
		response.ResponseError(c, apperror.ErrUnauthorized)
		return
	}

	var input dto.StartInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationError(c, err)
		return
	}

	res, err := h.impersonationService.Start(c.Request.Context(), sess, uuid.MustParse(input.TargetUserID))
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *ImpersonationHandler) Stop(c *gin.Context) {
	sess, ok := session.FromContext(c)
	if !ok {
		response.ResponseError(c, apperror.ErrUnauthorized)
		return
	}

	res, err := h.impersonationService.Stop(c.Request.Context(), sess)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
