package handler

import (
	"net/http"

	"anoa.com/livestockhub/internal/modules/animal/dto"
	"anoa.com/livestockhub/internal/modules/animal/service"
	"anoa.com/livestockhub/pkg/response"
	"github.com/gin-gonic/gin"
)

type AnimalHandler struct {
	animalService service.AnimalService
}

func NewAnimalHandler(animalService service.AnimalService) *AnimalHandler {
	return &AnimalHandler{animalService: animalService}
}

func (h *AnimalHandler) List(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var filter dto.AnimalFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.ValidationError(c, err)
		return
	}

	res, err := h.animalService.List(c.Request.Context(), userID, filter)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *AnimalHandler) Get(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	id, ok := response.BindUUIDParam(c, "id")
	if !ok {
		return
	}

	animal, err := h.animalService.Get(c.Request.Context(), userID, id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, animal)
}

func (h *AnimalHandler) Create(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input dto.CreateAnimalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationError(c, err)
		return
	}

	animal, err := h.animalService.Create(c.Request.Context(), userID, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, animal)
}

func (h *AnimalHandler) Update(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	id, ok := response.BindUUIDParam(c, "id")
	if !ok {
		return
	}

	var input dto.UpdateAnimalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationError(c, err)
		return
	}

	animal, err := h.animalService.Update(c.Request.Context(), userID, id, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, animal)
}

func (h *AnimalHandler) Delete(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	id, ok := response.BindUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.animalService.Delete(c.Request.Context(), userID, id); err != nil {
		response.ResponseError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AnimalHandler) UploadPhoto(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	id, ok := response.BindUUIDParam(c, "id")
	if !ok {
		return
	}

	file, closer, err := response.FormFile(c, "photo")
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	defer closer.Close()

	animal, err := h.animalService.UploadPhoto(c.Request.Context(), userID, id, file)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, animal)
}
