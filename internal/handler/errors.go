package handler

import (
	"errors"
	"net/http"

	"github.com/TogetherPinz/TogetherPinz-BE/internal/oauth2"
	"github.com/TogetherPinz/TogetherPinz-BE/internal/service"
	"github.com/TogetherPinz/TogetherPinz-BE/internal/token"
	"github.com/gin-gonic/gin"
)

// writeServiceError - 서비스 센티널 에러를 HTTP 상태로 변환
func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrPasswordMismatch),
		errors.Is(err, service.ErrEmailMismatch),
		errors.Is(err, oauth2.ErrUnsupportedProvider),
		errors.Is(err, oauth2.ErrMissingEmail):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidProviderToken),
		errors.Is(err, service.ErrWrongTokenType),
		errors.Is(err, token.ErrTokenInvalid),
		errors.Is(err, token.ErrTokenExpired):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})

	case errors.Is(err, service.ErrNotMember),
		errors.Is(err, service.ErrNotOwner),
		errors.Is(err, service.ErrOwnerCantLeave):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})

	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrPinNotFound),
		errors.Is(err, service.ErrTaskNotFound),
		errors.Is(err, service.ErrNotificationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	case errors.Is(err, service.ErrDuplicateUsername),
		errors.Is(err, service.ErrDuplicateEmail),
		errors.Is(err, service.ErrDuplicatePhone),
		errors.Is(err, service.ErrProviderConflict),
		errors.Is(err, service.ErrAlreadyMember),
		errors.Is(err, service.ErrPinFull):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})

	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
	}
}
