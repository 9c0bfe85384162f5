package handler

import (
	"net/http"

	"anoa.com/livestockhub/internal/entity"
	"anoa.com/livestockhub/internal/modules/access"
	"anoa.com/livestockhub/internal/modules/content/dto"
	"anoa.com/livestockhub/internal/modules/content/service"
	"anoa.com/livestockhub/pkg/response"
	"github.com/gin-gonic/gin"
)

// ContentHandler serves the content library and schemes. Reads are open to
// every signed-in user; writes are mounted behind the admin feature.
type ContentHandler struct {
	contentService service.ContentService
}

func NewContentHandler(contentService service.ContentService) *ContentHandler {
	return &ContentHandler{contentService: contentService}
}

func isAdmin(c *gin.Context) bool {
	return access.RolesFromContext(c).Has(entity.RoleAdmin)
}

func (h *ContentHandler) ListItems(c *gin.Context) {
	var filter dto.ContentFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.ValidationError(c, err)
		return
	}

	res, err := h.contentService.ListItems(c.Request.Context(), isAdmin(c), filter)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *ContentHandler) GetItem(c *gin.Context) {
	id, ok := response.BindUUIDParam(c, "id")
	if !ok {
		return
	}

	item, err := h.contentService.GetItem(c.Request.Context(), isAdmin(c), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *ContentHandler) CreateItem(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input dto.ContentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationError(c, err)
		return
	}

	item, err := h.contentService.CreateItem(c.Request.Context(), userID, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *ContentHandler) UpdateItem(c *gin.Context) {
	id, ok := response.BindUUIDParam(c, "id")
	if !ok {
		return
	}

	var input dto.UpdateContentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationError(c, err)
		return
	}

	item, err := h.contentService.UpdateItem(c.Request.Context(), id, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *ContentHandler) DeleteItem(c *gin.Context) {
	id, ok := response.BindUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.contentService.DeleteItem(c.Request.Context(), id); err != nil {
		response.ResponseError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ContentHandler) ListSchemes(c *gin.Context) {
	var filter dto.SchemeFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.ValidationError(c, err)
		return
	}

	res, err := h.contentService.ListSchemes(c.Request.Context(), isAdmin(c), filter)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *ContentHandler) GetScheme(c *gin.Context) {
	id, ok := response.BindUUIDParam(c, "id")
	if !ok {
		return
	}

	scheme, err := h.contentService.GetScheme(c.Request.Context(), isAdmin(c), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, scheme)
}

func (h *ContentHandler) CreateScheme(c *gin.Context) {
	var input dto.SchemeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationError(c, err)
		return
	}

	scheme, err := h.contentService.CreateScheme(c.Request.Context(), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, scheme)
}

func (h *ContentHandler) UpdateScheme(c *gin.Context) {
	id, ok := response.BindUUIDParam(c, "id")
	if !ok {
		return
	}

	var input dto.UpdateSchemeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationError(c, err)
		return
	}

	scheme, err := h.contentService.UpdateScheme(c.Request.Context(), id, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, scheme)
}

func (h *ContentHandler) DeleteScheme(c *gin.Context) {
	id, ok := response.BindUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.contentService.DeleteScheme(c.Request.Context(), id); err != nil {
		response.ResponseError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
