package model

type RegisterRequest struct {
	Username        string  `json:"username" binding:"required,min=4,max=100"`
	Password        string  `json:"password" binding:"required,min=4,max=255"`
	ConfirmPassword string  `json:"confirmPassword" binding:"required"`
	Name            string  `json:"name" binding:"required,min=2,max=30"`
	Phone           *string `json:"phone"`
	Email           *string `json:"email" binding:"omitempty,email"`
}

type RegisterResponse struct {
	Username string `json:"username"`
	Message  string `json:"message"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	AccessToken      string   `json:"accessToken"`
	RefreshToken     string   `json:"refreshToken"`
	ExpiresIn        int64    `json:"expiresIn"`
	RefreshExpiresIn int64    `json:"refreshExpiresIn"`
	UserInfo         UserInfo `json:"userInfo"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type TokenResponse struct {
	AccessToken      string `json:"accessToken"`
	RefreshToken     string `json:"refreshToken"`
	ExpiresIn        int64  `json:"expiresIn"`
	RefreshExpiresIn int64  `json:"refreshExpiresIn"`
}

type OAuth2LoginRequest struct {
	Provider string `json:"provider" binding:"required"`
	Token    string `json:"token" binding:"required"`
}

type ResetPasswordRequest struct {
	Username    string `json:"username" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	NewPassword string `json:"newPassword" binding:"required,min=4,max=255"`
}

// VerifyTokenResponse - 토큰 검증 결과
//
// 검증은 항상 구조화된 결과를 반환한다 (실패해도 에러를 던지지 않음).
// Reason: "revoked" | "invalid" | "expired" | "unavailable"
type VerifyTokenResponse struct {
	Valid    bool   `json:"valid"`
	Username string `json:"username,omitempty"`
	UserID   int64  `json:"userId,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

// AuthUser - 인증 미들웨어가 컨텍스트에 저장하는 사용자 정보
type AuthUser struct {
	ID       int64
	Username string
}
