package service

import (
	"context"
	"log"

	"github.com/TogetherPinz/TogetherPinz-BE/internal/db"
	"github.com/TogetherPinz/TogetherPinz-BE/internal/model"
)

type UserProfileRepo interface {
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByPhone(ctx context.Context, phone string) (*model.User, error)
	UpdateUserProfile(ctx context.Context, user *model.User) (*model.User, error)
	DeleteUser(ctx context.Context, userID int64) error
}

type UserService struct {
	repo UserProfileRepo
}

func NewUserService(repo UserProfileRepo) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) GetProfile(ctx context.Context, username string) (*model.UserInfo, error) {
	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	info := model.UserInfoFromEntity(user)
	return &info, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, username string, req model.UpdateUserRequest) (*model.UserInfo, error) {
	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}
	if req.Email != nil {
		user.Email = req.Email
	}

	updated, err := s.repo.UpdateUserProfile(ctx, user)
	if err != nil {
		return nil, mapDuplicateError(err)
	}

	log.Printf("profile updated: username=%s", updated.Username)
	info := model.UserInfoFromEntity(updated)
	return &info, nil
}

func (s *UserService) DeleteProfile(ctx context.Context, username string) error {
	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if db.IsNoRows(err) {
			return ErrUserNotFound
		}
		return err
	}
	if err := s.repo.DeleteUser(ctx, user.ID); err != nil {
		return err
	}
	log.Printf("user deleted: userId=%d", user.ID)
	return nil
}

// FindUsername - 전화번호 또는 이메일로 아이디 찾기 (전화번호 우선)
func (s *UserService) FindUsername(ctx context.Context, req model.FindUsernameRequest) (*model.FindUsernameResponse, error) {
	var user *model.User

	if req.Phone != nil {
		found, err := s.repo.GetUserByPhone(ctx, *req.Phone)
		if err != nil && !db.IsNoRows(err) {
			return nil, err
		}
		user = found
	}

	if user == nil && req.Email != nil {
		found, err := s.repo.GetUserByEmail(ctx, *req.Email)
		if err != nil && !db.IsNoRows(err) {
			return nil, err
		}
		user = found
	}

	if user == nil {
		return nil, ErrUserNotFound
	}
	return &model.FindUsernameResponse{Username: user.Username}, nil
}
