package handler

import (
	"net/http"

	"anoa.com/livestockhub/internal/modules/health/dto"
	"anoa.com/livestockhub/internal/modules/health/service"
	"anoa.com/livestockhub/pkg/response"
	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	healthService service.HealthService
}

func NewHealthHandler(healthService service.HealthService) *HealthHandler {
	return &HealthHandler{healthService: healthService}
}

func (h *HealthHandler) ListRecords(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	animalID, ok := response.BindUUIDParam(c, "id")
	if !ok {
		return
	}

	records, err := h.healthService.ListRecords(c.Request.Context(), userID, animalID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": records})
}

func (h *HealthHandler) AddRecord(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	animalID, ok := response.BindUUIDParam(c, "id")
	if !ok {
		return
	}

	var input dto.HealthRecordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationError(c, err)
		return
	}

	record, err := h.healthService.AddRecord(c.Request.Context(), userID, animalID, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

func (h *HealthHandler) ListVaccinations(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	animalID, ok := response.BindUUIDParam(c, "id")
	if !ok {
		return
	}

	vaccinations, err := h.healthService.ListVaccinations(c.Request.Context(), userID, animalID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": vaccinations})
}

func (h *HealthHandler) AddVaccination(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	animalID, ok := response.BindUUIDParam(c, "id")
	if !ok {
		return
	}

	var input dto.VaccinationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationError(c, err)
		return
	}

	v, err := h.healthService.AddVaccination(c.Request.Context(), userID, animalID, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, v)
}

// UpcomingVaccinations lists the caller's doses due in the window.
func (h *HealthHandler) UpcomingVaccinations(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var filter dto.DueFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.ValidationError(c, err)
		return
	}

	due, err := h.healthService.DueVaccinations(c.Request.Context(), &userID, filter)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": due})
}
