package handler

import (
	"net/http"

	"anoa.com/livestockhub/internal/modules/session"
	"anoa.com/livestockhub/internal/modules/user/dto"
	"anoa.com/livestockhub/internal/modules/user/service"
	"anoa.com/livestockhub/pkg/apperror"
	"anoa.com/livestockhub/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const googleStateCookie = "oauth_state"

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) SignUp(c *gin.Context) {
	var input dto.SignUpInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationError(c, err)
		return
	}

	res, err := h.authService.SignUp(c.Request.Context(), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (h *AuthHandler) SignIn(c *gin.Context) {
	var input dto.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationError(c, err)
		return
	}

	res, err := h.authService.SignIn(c.Request.Context(), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var input dto.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationError(c, err)
		return
	}

	res, err := h.authService.AdminLogin(c.Request.Context(), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *AuthHandler) DemoLogin(c *gin.Context) {
	var input dto.DemoLoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationError(c, err)
		return
	}

	res, err := h.authService.DemoLogin(c.Request.Context(), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	state := uuid.NewString()
	url, err := h.authService.GoogleLogin(state)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.SetCookie(googleStateCookie, state, 600, "/", "", false, true)
	c.Redirect(http.StatusTemporaryRedirect, url)
}

func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	var input dto.GoogleCallbackInput
	if err := c.ShouldBindQuery(&input); err != nil {
		response.ValidationError(c, err)
		return
	}

	if expected, err := c.Cookie(googleStateCookie); err != nil || expected != input.State {
		response.ResponseError(c, apperror.BadRequest("invalid oauth state"))
		return
	}

	res, err := h.authService.GoogleCallback(c.Request.Context(), input.Code)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *AuthHandler) SignOut(c *gin.Context) {
	sess, ok := session.FromContext(c)
	if !ok {
		response.ResponseError(c, apperror.ErrUnauthorized)
		return
	}

	if err := h.authService.SignOut(c.Request.Context(), sess); err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "signed out"})
}

func (h *AuthHandler) Session(c *gin.Context) {
	sess, ok := session.FromContext(c)
	if !ok {
		response.ResponseError(c, apperror.ErrUnauthorized)
		return
	}

	res, err := h.authService.Session(c.Request.Context(), sess)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
