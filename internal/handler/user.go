package handler

import (
	"net/http"

	"github.com/TogetherPinz/TogetherPinz-BE/internal/model"
	"github.com/TogetherPinz/TogetherPinz-BE/internal/service"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	svc *service.UserService
}

func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// Me godoc
// @Summary Get my profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.UserInfo
// @Router /api/users/me [get]
func (h *UserHandler) Me(c *gin.Context) {
	user := GetAuthUser(c)
	info, err := h.svc.GetProfile(c.Request.Context(), user.Username)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

// UpdateMe godoc
// @Summary Update my profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.UserInfo
// @Router /api/users/me [put]
func (h *UserHandler) UpdateMe(c *gin.Context) {
	var req model.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	user := GetAuthUser(c)
	info, err := h.svc.UpdateProfile(c.Request.Context(), user.Username, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

// DeleteMe godoc
// @Summary Delete my account
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} gin.H
// @Router /api/users/me [delete]
func (h *UserHandler) DeleteMe(c *gin.Context) {
	user := GetAuthUser(c)
	if err := h.svc.DeleteProfile(c.Request.Context(), user.Username); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "사용자가 삭제되었습니다."})
}

// FindUsername godoc
// @Summary Find username by phone or email
// @Tags users
// @Accept json
// @Produce json
// @Success 200 {object} model.FindUsernameResponse
// @Router /api/users/find-username [post]
func (h *UserHandler) FindUsername(c *gin.Context) {
	var req model.FindUsernameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if req.Phone == nil && req.Email == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "phone or email is required"})
		return
	}

	resp, err := h.svc.FindUsername(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
