package handler

import (
	"net/http"
	"strconv"

	"anoa.com/livestockhub/internal/modules/breeding/dto"
	"anoa.com/livestockhub/internal/modules/breeding/service"
	"anoa.com/livestockhub/pkg/response"
	"github.com/gin-gonic/gin"
)

type BreedingHandler struct {
	breedingService service.BreedingService
}

func NewBreedingHandler(breedingService service.BreedingService) *BreedingHandler {
	return &BreedingHandler{breedingService: breedingService}
}

func (h *BreedingHandler) List(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	animalID, ok := response.BindUUIDParam(c, "id")
	if !ok {
		return
	}

	records, err := h.breedingService.List(c.Request.Context(), userID, animalID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": records})
}

func (h *BreedingHandler) Add(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	animalID, ok := response.BindUUIDParam(c, "id")
	if !ok {
		return
	}

	var input dto.BreedingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationError(c, err)
		return
	}

	record, err := h.breedingService.Add(c.Request.Context(), userID, animalID, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

func (h *BreedingHandler) RecordOutcome(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	id, ok := response.BindUUIDParam(c, "id")
	if !ok {
		return
	}

	var input dto.OutcomeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationError(c, err)
		return
	}

	record, err := h.breedingService.RecordOutcome(c.Request.Context(), userID, id, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *BreedingHandler) Upcoming(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))

	records, err := h.breedingService.Upcoming(c.Request.Context(), userID, days)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": records})
}
