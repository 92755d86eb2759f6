package model

import "time"

// User - users 테이블 엔티티
//
// provider/provider_id가 모두 null이면 로컬 계정,
// 모두 설정되어 있으면 OAuth2 연동 계정 (kakao, naver, google)
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Name         string
	Phone        *string
	Email        *string
	Provider     *string
	ProviderID   *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsFederated reports whether the account came from an OAuth2 provider.
// Federated accounts never authenticate by password comparison.
func (u *User) IsFederated() bool {
	return u.Provider != nil
}

type UserInfo struct {
	ID       int64   `json:"id"`
	Username string  `json:"username"`
	Name     string  `json:"name"`
	Phone    *string `json:"phone,omitempty"`
	Email    *string `json:"email,omitempty"`
	Provider *string `json:"provider,omitempty"`
}

func UserInfoFromEntity(u *User) UserInfo {
	return UserInfo{
		ID:       u.ID,
		Username: u.Username,
		Name:     u.Name,
		Phone:    u.Phone,
		Email:    u.Email,
		Provider: u.Provider,
	}
}

type UpdateUserRequest struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
	Email *string `json:"email"`
}

type FindUsernameRequest struct {
	Phone *string `json:"phone"`
	Email *string `json:"email"`
}

type FindUsernameResponse struct {
	Username string `json:"username"`
}
