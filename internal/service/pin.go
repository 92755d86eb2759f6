package service

import (
	"context"
	"errors"
	"log"

	"github.com/TogetherPinz/TogetherPinz-BE/internal/db"
	"github.com/TogetherPinz/TogetherPinz-BE/internal/model"
)

var (
	ErrPinNotFound = errors.New("pin not found")
	ErrNotMember   = errors.New("not a member of this pin")
	ErrNotOwner    = errors.New("owner permission required")
)

type PinRepo interface {
	CreatePin(ctx context.Context, pin *model.Pin, ownerUserID int64) (*model.Pin, error)
	GetPinByID(ctx context.Context, pinID int64) (*model.Pin, error)
	GetPinsByUserID(ctx context.Context, userID int64) ([]model.Pin, error)
	UpdatePin(ctx context.Context, pin *model.Pin) (*model.Pin, error)
	DeletePin(ctx context.Context, pinID int64) error
	GetMember(ctx context.Context, pinID, userID int64) (*model.Member, error)
}

type PinService struct {
	repo PinRepo
}

func NewPinService(repo PinRepo) *PinService {
	return &PinService{repo: repo}
}

// CreatePin - 생성자는 자동으로 OWNER 멤버가 된다
func (s *PinService) CreatePin(ctx context.Context, userID int64, req model.CreatePinRequest) (*model.PinInfo, error) {
	radius := model.DefaultNotificationRadius
	if req.NotificationRadius != nil {
		radius = *req.NotificationRadius
	}

	pin, err := s.repo.CreatePin(ctx, &model.Pin{
		Title:              req.Title,
		Address:            req.Address,
		Latitude:           req.Latitude,
		Longitude:          req.Longitude,
		NotificationRadius: radius,
	}, userID)
	if err != nil {
		return nil, err
	}

	log.Printf("pin created: pinId=%d userId=%d", pin.ID, userID)
	info := model.PinInfoFromEntity(pin)
	return &info, nil
}

func (s *PinService) GetPin(ctx context.Context, pinID int64) (*model.PinInfo, error) {
	pin, err := s.repo.GetPinByID(ctx, pinID)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrPinNotFound
		}
		return nil, err
	}
	info := model.PinInfoFromEntity(pin)
	return &info, nil
}

func (s *PinService) GetUserPins(ctx context.Context, userID int64) ([]model.PinInfo, error) {
	pins, err := s.repo.GetPinsByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	infos := make([]model.PinInfo, 0, len(pins))
	for i := range pins {
		infos = append(infos, model.PinInfoFromEntity(&pins[i]))
	}
	return infos, nil
}

func (s *PinService) UpdatePin(ctx context.Context, userID, pinID int64, req model.UpdatePinRequest) (*model.PinInfo, error) {
	if err := s.requireOwner(ctx, pinID, userID); err != nil {
		return nil, err
	}

	pin, err := s.repo.GetPinByID(ctx, pinID)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrPinNotFound
		}
		return nil, err
	}

	if req.Title != nil {
		pin.Title = *req.Title
	}
	if req.Address != nil {
		pin.Address = *req.Address
	}
	if req.Latitude != nil {
		pin.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		pin.Longitude = *req.Longitude
	}
	if req.NotificationRadius != nil {
		pin.NotificationRadius = *req.NotificationRadius
	}

	updated, err := s.repo.UpdatePin(ctx, pin)
	if err != nil {
		return nil, err
	}

	log.Printf("pin updated: pinId=%d userId=%d", pinID, userID)
	info := model.PinInfoFromEntity(updated)
	return &info, nil
}

func (s *PinService) DeletePin(ctx context.Context, userID, pinID int64) error {
	if err := s.requireOwner(ctx, pinID, userID); err != nil {
		return err
	}
	if err := s.repo.DeletePin(ctx, pinID); err != nil {
		return err
	}
	log.Printf("pin deleted: pinId=%d userId=%d", pinID, userID)
	return nil
}

func (s *PinService) requireOwner(ctx context.Context, pinID, userID int64) error {
	member, err := s.repo.GetMember(ctx, pinID, userID)
	if err != nil {
		if db.IsNoRows(err) {
			return ErrNotMember
		}
		return err
	}
	if member.Role != model.RoleOwner {
		return ErrNotOwner
	}
	return nil
}
