package model

import "time"

// 핀 멤버 역할
const (
	RoleOwner  = "OWNER"
	RoleMember = "MEMBER"
)

// 핀 하나에 참여할 수 있는 최대 인원
const MaxPinMembers = 8

// Member - 사용자와 핀의 멤버십 엔티티
type Member struct {
	ID        int64
	PinID     int64
	UserID    int64
	Role      string
	CreatedAt time.Time
}

type MemberInfo struct {
	ID       int64     `json:"id"`
	PinID    int64     `json:"pinId"`
	UserID   int64     `json:"userId"`
	Username string    `json:"username"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joinedAt"`
}

type AddMemberRequest struct {
	Username string `json:"username" binding:"required"`
}
