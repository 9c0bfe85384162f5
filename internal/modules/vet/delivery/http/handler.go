// Package handler exposes the veterinary officer's views over health data.
// All operations work across farms and reuse the health service.
package handler

import (
	"net/http"

	healthDto "anoa.com/livestockhub/internal/modules/health/dto"
	healthService "anoa.com/livestockhub/internal/modules/health/service"
	"anoa.com/livestockhub/pkg/response"
	"github.com/gin-gonic/gin"
)

type VetHandler struct {
	healthService healthService.HealthService
}

func NewVetHandler(healthService healthService.HealthService) *VetHandler {
	return &VetHandler{healthService: healthService}
}

func (h *VetHandler) ListCases(c *gin.Context) {
	var filter healthDto.CaseFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.ValidationError(c, err)
		return
	}

	res, err := h.healthService.ListCases(c.Request.Context(), filter)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *VetHandler) UpdateCase(c *gin.Context) {
	id, ok := response.BindUUIDParam(c, "id")
	if !ok {
		return
	}

	var input healthDto.CaseStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationError(c, err)
		return
	}

	record, err := h.healthService.UpdateCaseStatus(c.Request.Context(), id, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *VetHandler) DueVaccinations(c *gin.Context) {
	var filter healthDto.DueFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.ValidationError(c, err)
		return
	}

	due, err := h.healthService.DueVaccinations(c.Request.Context(), nil, filter)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": due})
}

func (h *VetHandler) AddRecord(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	animalID, ok := response.BindUUIDParam(c, "id")
	if !ok {
		return
	}

	var input healthDto.HealthRecordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationError(c, err)
		return
	}

	record, err := h.healthService.RecordForAnimal(c.Request.Context(), userID, animalID, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

func (h *VetHandler) AddVaccination(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	animalID, ok := response.BindUUIDParam(c, "id")
	if !ok {
		return
	}

	var input healthDto.VaccinationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationError(c, err)
		return
	}

	vaccination, err := h.healthService.VaccinateAnimal(c.Request.Context(), userID, animalID, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, vaccination)
}
