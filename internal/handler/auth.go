package handler

import (
	"net/http"

	"github.com/TogetherPinz/TogetherPinz-BE/internal/model"
	"github.com/TogetherPinz/TogetherPinz-BE/internal/service"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	svc *service.AuthService
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Register godoc
// @Summary Register a new local account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body model.RegisterRequest true "Registration info"
// @Success 201 {object} model.RegisterResponse
// @Router /api/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	resp, err := h.svc.Register(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Login godoc
// @Summary Login with username and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body model.LoginRequest true "Credentials"
// @Success 200 {object} model.LoginResponse
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Logout godoc
// @Summary Logout
// @Description Revokes the refresh token and blacklists the presented access token.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} gin.H
// @Router /api/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	user := GetAuthUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	// 베스트 에포트 - 실패해도 로그아웃은 성공으로 응답
	h.svc.Logout(c.Request.Context(), bearerToken(c), user.Username)
	c.JSON(http.StatusOK, gin.H{"message": "로그아웃이 완료되었습니다."})
}

// Refresh godoc
// @Summary Rotate the refresh token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body model.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} model.TokenResponse
// @Router /api/auth/token [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req model.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	resp, err := h.svc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Verify godoc
// @Summary Verify an access token
// @Description Always returns a structured result; never an error body.
// @Tags auth
// @Produce json
// @Success 200 {object} model.VerifyTokenResponse
// @Router /api/auth/verify [post]
func (h *AuthHandler) Verify(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		c.JSON(http.StatusOK, model.VerifyTokenResponse{Valid: false, Reason: "invalid"})
		return
	}
	c.JSON(http.StatusOK, h.svc.VerifyToken(c.Request.Context(), token))
}

// OAuth2Login godoc
// @Summary Login with an OAuth2 provider token
// @Description provider: google (ID token) | kakao, naver (access token)
// @Tags auth
// @Accept json
// @Produce json
// @Param request body model.OAuth2LoginRequest true "Provider and token"
// @Success 200 {object} model.LoginResponse
// @Router /api/auth/oauth2 [post]
func (h *AuthHandler) OAuth2Login(c *gin.Context) {
	var req model.OAuth2LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	resp, err := h.svc.OAuth2Login(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ResetPassword godoc
// @Summary Reset password after username/email verification
// @Tags auth
// @Accept json
// @Produce json
// @Param request body model.ResetPasswordRequest true "Reset info"
// @Success 200 {object} gin.H
// @Router /api/auth/password [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req model.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if err := h.svc.ResetPassword(c.Request.Context(), req); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "비밀번호가 재설정되었습니다."})
}
