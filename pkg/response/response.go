package response

import (
	"io"
	"net/http"

	"anoa.com/livestockhub/pkg/apperror"
	"anoa.com/livestockhub/pkg/dto"
	"anoa.com/livestockhub/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GetUserID retrieves the authenticated user ID from the context
func GetUserID(c *gin.Context) (uuid.UUID, error) {
	userIDStr, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, apperror.ErrUnauthorized
	}

	userID, err := uuid.Parse(userIDStr.(string))
	if err != nil {
		return uuid.Nil, apperror.ErrUnauthorized
	}

	return userID, nil
}

// ResponseError standardized error response
func ResponseError(c *gin.Context, err error) {
	code := apperror.MapErrorToStatus(err)

	// Log server side failures
	if code >= http.StatusInternalServerError {
		zap.L().Error("internal error", zap.String("path", c.FullPath()), zap.Error(err))
	}

	c.JSON(code, gin.H{"error": err.Error()})
}

// ValidationError reports the first violation of a failed binding in
// message and every violation in details.
func ValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "Validation Error",
		"message": validator.FirstValidationMessage(err),
		"details": validator.FormatValidationError(err),
	})
}

// Redirect aborts the request with a redirect hint for the page router.
func Redirect(c *gin.Context, code int, message, location string) {
	c.Header("Location", location)
	c.AbortWithStatusJSON(code, gin.H{"error": message, "redirect": location})
}

// BindUUIDParam parses a path parameter as UUID and writes a 400 when it is malformed.
func BindUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}

// FormFile opens a multipart file field. The caller closes the returned closer.
func FormFile(c *gin.Context, field string) (dto.UploadFile, io.Closer, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return dto.UploadFile{}, nil, apperror.BadRequest(field + " file is required")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return dto.UploadFile{}, nil, apperror.BadRequest("failed to read " + field)
	}
	return dto.UploadFile{Reader: file, FileName: fileHeader.Filename}, file, nil
}
