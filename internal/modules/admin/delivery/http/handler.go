package handler

import (
	"context"
	"net/http"

	"anoa.com/livestockhub/internal/entity"
	"anoa.com/livestockhub/internal/modules/admin/dto"
	adminService "anoa.com/livestockhub/internal/modules/admin/service"
	auditDto "anoa.com/livestockhub/internal/modules/audit/dto"
	auditService "anoa.com/livestockhub/internal/modules/audit/service"
	helpdeskDto "anoa.com/livestockhub/internal/modules/helpdesk/dto"
	helpdeskService "anoa.com/livestockhub/internal/modules/helpdesk/service"
	marketplaceDto "anoa.com/livestockhub/internal/modules/marketplace/dto"
	marketplaceService "anoa.com/livestockhub/internal/modules/marketplace/service"
	"anoa.com/livestockhub/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AdminHandler serves the admin console: user roles, listing report
// moderation, the audit log and helpdesk administration.
type AdminHandler struct {
	adminService       adminService.AdminService
	marketplaceService marketplaceService.MarketplaceService
	helpdeskService    helpdeskService.HelpdeskService
	auditService       auditService.AuditService
}

func NewAdminHandler(
	adminService adminService.AdminService,
	marketplaceService marketplaceService.MarketplaceService,
	helpdeskService helpdeskService.HelpdeskService,
	auditService auditService.AuditService,
) *AdminHandler {
	return &AdminHandler{
		adminService:       adminService,
		marketplaceService: marketplaceService,
		helpdeskService:    helpdeskService,
		auditService:       auditService,
	}
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	var filter dto.UserListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.ValidationError(c, err)
		return
	}

	res, err := h.adminService.ListUsers(c.Request.Context(), filter)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *AdminHandler) GrantRole(c *gin.Context) {
	h.changeRole(c, h.adminService.GrantRole)
}

func (h *AdminHandler) RevokeRole(c *gin.Context) {
	h.changeRole(c, h.adminService.RevokeRole)
}

func (h *AdminHandler) changeRole(c *gin.Context, apply func(ctx context.Context, adminID, userID uuid.UUID, role entity.Role) (*dto.RolesResponse, error)) {
	adminID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	userID, ok := response.BindUUIDParam(c, "id")
	if !ok {
		return
	}

	var input dto.RoleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationError(c, err)
		return
	}

	res, err := apply(c.Request.Context(), adminID, userID, input.Role)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *AdminHandler) ListReports(c *gin.Context) {
	var filter marketplaceDto.ReportFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.ValidationError(c, err)
		return
	}

	res, err := h.marketplaceService.ListReports(c.Request.Context(), filter)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *AdminHandler) SetReportStatus(c *gin.Context) {
	adminID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	id, ok := response.BindUUIDParam(c, "id")
	if !ok {
		return
	}

	var input marketplaceDto.ReportStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationError(c, err)
		return
	}

	report, err := h.marketplaceService.SetReportStatus(c.Request.Context(), adminID, id, input.Status)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *AdminHandler) ListAuditLogs(c *gin.Context) {
	var filter auditDto.AuditFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.ValidationError(c, err)
		return
	}

	res, err := h.auditService.List(c.Request.Context(), filter)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *AdminHandler) ListTickets(c *gin.Context) {
	var filter helpdeskDto.TicketFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.ValidationError(c, err)
		return
	}

	res, err := h.helpdeskService.ListAll(c.Request.Context(), filter)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *AdminHandler) SetTicketStatus(c *gin.Context) {
	adminID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	id, ok := response.BindUUIDParam(c, "id")
	if !ok {
		return
	}

	var input helpdeskDto.StatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationError(c, err)
		return
	}

	ticket, err := h.helpdeskService.SetStatus(c.Request.Context(), adminID, id, input.Status)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, ticket)
}
