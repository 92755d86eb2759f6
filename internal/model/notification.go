package model

import "time"

// 알림 타입
const (
	NotificationTypeLocation = "LOCATION"
	NotificationTypeTask     = "TASK"
	NotificationTypeSystem   = "SYSTEM"
	NotificationTypeGroup    = "GROUP"
)

// Notification - 사용자 알림 엔티티 (전송은 외부 푸시 계층 담당, 여기선 저장만)
type Notification struct {
	ID        int64
	UserID    int64
	PinID     *int64
	TaskID    *int64
	Title     string
	Message   string
	Type      string
	IsRead    bool
	ReadAt    *time.Time
	CreatedAt time.Time
}

type NotificationInfo struct {
	ID        int64      `json:"id"`
	PinID     *int64     `json:"pinId,omitempty"`
	TaskID    *int64     `json:"taskId,omitempty"`
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	Type      string     `json:"type"`
	IsRead    bool       `json:"isRead"`
	ReadAt    *time.Time `json:"readAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

func NotificationInfoFromEntity(n *Notification) NotificationInfo {
	return NotificationInfo{
		ID:        n.ID,
		PinID:     n.PinID,
		TaskID:    n.TaskID,
		Title:     n.Title,
		Message:   n.Message,
		Type:      n.Type,
		IsRead:    n.IsRead,
		ReadAt:    n.ReadAt,
		CreatedAt: n.CreatedAt,
	}
}

type CreateNotificationRequest struct {
	Title   string `json:"title" binding:"required,max=200"`
	Message string `json:"message"`
	Type    string `json:"type" binding:"required,oneof=LOCATION TASK SYSTEM GROUP"`
	PinID   *int64 `json:"pinId"`
	TaskID  *int64 `json:"taskId"`
}

// LocationTriggerRequest - 클라이언트가 현재 좌표를 보고할 때 사용
type LocationTriggerRequest struct {
	Latitude  float64 `json:"latitude" binding:"required"`
	Longitude float64 `json:"longitude" binding:"required"`
}

type UnreadCountResponse struct {
	Count int64 `json:"count"`
}
