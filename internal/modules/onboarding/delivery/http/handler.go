package handler

import (
	"net/http"

	"anoa.com/livestockhub/internal/modules/onboarding/dto"
	"anoa.com/livestockhub/internal/modules/onboarding/service"
	"anoa.com/livestockhub/pkg/response"
	"github.com/gin-gonic/gin"
)

type OnboardingHandler struct {
	onboardingService service.OnboardingService
}

func NewOnboardingHandler(onboardingService service.OnboardingService) *OnboardingHandler {
	return &OnboardingHandler{onboardingService: onboardingService}
}

func (h *OnboardingHandler) Progress(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	res, err := h.onboardingService.Progress(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *OnboardingHandler) SubmitStep(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	ctx := c.Request.Context()
	var res *dto.ProgressResponse

	switch c.Param("step") {
	case "1":
		var input dto.PersonalStepInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.ValidationError(c, err)
			return
		}
		res, err = h.onboardingService.SubmitPersonal(ctx, userID, input)
	case "2":
		var input dto.LocationStepInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.ValidationError(c, err)
			return
		}
		res, err = h.onboardingService.SubmitLocation(ctx, userID, input)
	case "3":
		var input dto.FarmStepInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.ValidationError(c, err)
			return
		}
		res, err = h.onboardingService.SubmitFarm(ctx, userID, input)
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown onboarding step"})
		return
	}

	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
