package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"

	"github.com/TogetherPinz/TogetherPinz-BE/internal/db"
	"github.com/TogetherPinz/TogetherPinz-BE/internal/model"
)

var ErrNotificationNotFound = errors.New("notification not found")

const earthRadiusMeters = 6371000.0

type NotificationRepo interface {
	CreateNotification(ctx context.Context, n *model.Notification) (*model.Notification, error)
	GetNotificationByID(ctx context.Context, id int64) (*model.Notification, error)
	GetNotificationsByUserID(ctx context.Context, userID int64) ([]model.Notification, error)
	CountUnreadNotifications(ctx context.Context, userID int64) (int64, error)
	SetNotificationRead(ctx context.Context, id int64, read bool) (*model.Notification, error)
	DeleteNotification(ctx context.Context, id int64) error
	GetPinsByUserID(ctx context.Context, userID int64) ([]model.Pin, error)
}

// NotificationService - 알림 저장/조회. 실제 푸시 전송은 외부 계층 담당.
type NotificationService struct {
	repo NotificationRepo
}

func NewNotificationService(repo NotificationRepo) *NotificationService {
	return &NotificationService{repo: repo}
}

func (s *NotificationService) Create(ctx context.Context, userID int64, req model.CreateNotificationRequest) (*model.NotificationInfo, error) {
	n, err := s.repo.CreateNotification(ctx, &model.Notification{
		UserID:  userID,
		PinID:   req.PinID,
		TaskID:  req.TaskID,
		Title:   req.Title,
		Message: req.Message,
		Type:    req.Type,
	})
	if err != nil {
		return nil, err
	}
	info := model.NotificationInfoFromEntity(n)
	return &info, nil
}

func (s *NotificationService) List(ctx context.Context, userID int64) ([]model.NotificationInfo, error) {
	notifications, err := s.repo.GetNotificationsByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	infos := make([]model.NotificationInfo, 0, len(notifications))
	for i := range notifications {
		infos = append(infos, model.NotificationInfoFromEntity(&notifications[i]))
	}
	return infos, nil
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID int64) (int64, error) {
	return s.repo.CountUnreadNotifications(ctx, userID)
}

func (s *NotificationService) SetRead(ctx context.Context, userID, notificationID int64, read bool) (*model.NotificationInfo, error) {
	if err := s.requireOwnership(ctx, userID, notificationID); err != nil {
		return nil, err
	}
	n, err := s.repo.SetNotificationRead(ctx, notificationID, read)
	if err != nil {
		return nil, err
	}
	info := model.NotificationInfoFromEntity(n)
	return &info, nil
}

func (s *NotificationService) Delete(ctx context.Context, userID, notificationID int64) error {
	if err := s.requireOwnership(ctx, userID, notificationID); err != nil {
		return err
	}
	return s.repo.DeleteNotification(ctx, notificationID)
}

// LocationTrigger - 보고된 좌표가 알림 반경 안에 들어온 핀마다
// LOCATION 알림을 생성한다.
func (s *NotificationService) LocationTrigger(ctx context.Context, userID int64, req model.LocationTriggerRequest) ([]model.NotificationInfo, error) {
	pins, err := s.repo.GetPinsByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	var created []model.NotificationInfo
	for i := range pins {
		pin := &pins[i]
		distance := haversineMeters(req.Latitude, req.Longitude, pin.Latitude, pin.Longitude)
		if distance > float64(pin.NotificationRadius) {
			continue
		}

		n, err := s.repo.CreateNotification(ctx, &model.Notification{
			UserID:  userID,
			PinID:   &pin.ID,
			Title:   pin.Title,
			Message: fmt.Sprintf("'%s' 핀 근처에 도착했습니다.", pin.Title),
			Type:    model.NotificationTypeLocation,
		})
		if err != nil {
			return nil, err
		}
		log.Printf("location notification created: pinId=%d userId=%d distance=%.0fm", pin.ID, userID, distance)
		created = append(created, model.NotificationInfoFromEntity(n))
	}
	return created, nil
}

func (s *NotificationService) requireOwnership(ctx context.Context, userID, notificationID int64) error {
	n, err := s.repo.GetNotificationByID(ctx, notificationID)
	if err != nil {
		if db.IsNoRows(err) {
			return ErrNotificationNotFound
		}
		return err
	}
	if n.UserID != userID {
		return ErrNotificationNotFound
	}
	return nil
}

// haversineMeters - 두 좌표 사이의 구면 거리(미터)
func haversineMeters(lat1, lon1, lat2, lon2 float64) float64 {
	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }

	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusMeters * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
