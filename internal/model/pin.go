package model

import "time"

const DefaultNotificationRadius = 100

// Pin - 위치 핀 엔티티
type Pin struct {
	ID                 int64
	Title              string
	Address            string
	Latitude           float64
	Longitude          float64
	NotificationRadius int
	MemberCount        int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type PinInfo struct {
	ID                 int64     `json:"id"`
	Title              string    `json:"title"`
	Address            string    `json:"address"`
	Latitude           float64   `json:"latitude"`
	Longitude          float64   `json:"longitude"`
	NotificationRadius int       `json:"notificationRadius"`
	MemberCount        int       `json:"currentMemberCount"`
	CreatedAt          time.Time `json:"createdAt"`
}

func PinInfoFromEntity(p *Pin) PinInfo {
	return PinInfo{
		ID:                 p.ID,
		Title:              p.Title,
		Address:            p.Address,
		Latitude:           p.Latitude,
		Longitude:          p.Longitude,
		NotificationRadius: p.NotificationRadius,
		MemberCount:        p.MemberCount,
		CreatedAt:          p.CreatedAt,
	}
}

type CreatePinRequest struct {
	Title              string  `json:"title" binding:"required,max=100"`
	Address            string  `json:"address" binding:"required,max=255"`
	Latitude           float64 `json:"latitude" binding:"required"`
	Longitude          float64 `json:"longitude" binding:"required"`
	NotificationRadius *int    `json:"notificationRadius"`
}

type UpdatePinRequest struct {
	Title              *string  `json:"title"`
	Address            *string  `json:"address"`
	Latitude           *float64 `json:"latitude"`
	Longitude          *float64 `json:"longitude"`
	NotificationRadius *int     `json:"notificationRadius"`
}
