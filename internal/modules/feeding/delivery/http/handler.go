package handler

import (
	"net/http"

	"anoa.com/livestockhub/internal/modules/feeding/dto"
	"anoa.com/livestockhub/internal/modules/feeding/service"
	"anoa.com/livestockhub/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type FeedingHandler struct {
	feedingService service.FeedingService
}

func NewFeedingHandler(feedingService service.FeedingService) *FeedingHandler {
	return &FeedingHandler{feedingService: feedingService}
}

func (h *FeedingHandler) ListSchedules(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var animalID *uuid.UUID
	if raw := c.Query("animal_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid animal_id"})
			return
		}
		animalID = &id
	}

	schedules, err := h.feedingService.ListSchedules(c.Request.Context(), userID, animalID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": schedules})
}

func (h *FeedingHandler) CreateSchedule(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input dto.ScheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationError(c, err)
		return
	}

	schedule, err := h.feedingService.CreateSchedule(c.Request.Context(), userID, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, schedule)
}

func (h *FeedingHandler) UpdateSchedule(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	id, ok := response.BindUUIDParam(c, "id")
	if !ok {
		return
	}

	var input dto.UpdateScheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationError(c, err)
		return
	}

	schedule, err := h.feedingService.UpdateSchedule(c.Request.Context(), userID, id, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, schedule)
}

func (h *FeedingHandler) DeleteSchedule(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	id, ok := response.BindUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.feedingService.DeleteSchedule(c.Request.Context(), userID, id); err != nil {
		response.ResponseError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *FeedingHandler) Inventory(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	res, err := h.feedingService.Inventory(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *FeedingHandler) CreateInventory(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input dto.InventoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationError(c, err)
		return
	}

	item, err := h.feedingService.CreateInventory(c.Request.Context(), userID, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *FeedingHandler) UpdateInventory(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	id, ok := response.BindUUIDParam(c, "id")
	if !ok {
		return
	}

	var input dto.UpdateInventoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationError(c, err)
		return
	}

	item, err := h.feedingService.UpdateInventory(c.Request.Context(), userID, id, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *FeedingHandler) DeleteInventory(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	id, ok := response.BindUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.feedingService.DeleteInventory(c.Request.Context(), userID, id); err != nil {
		response.ResponseError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
