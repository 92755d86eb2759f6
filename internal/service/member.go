package service

import (
	"context"
	"errors"
	"log"

	"github.com/TogetherPinz/TogetherPinz-BE/internal/db"
	"github.com/TogetherPinz/TogetherPinz-BE/internal/model"
)

var (
	ErrPinFull        = errors.New("pin member capacity reached")
	ErrAlreadyMember  = errors.New("already a member of this pin")
	ErrOwnerCantLeave = errors.New("owner cannot leave while members remain")
)

type MemberRepo interface {
	GetMember(ctx context.Context, pinID, userID int64) (*model.Member, error)
	AddMember(ctx context.Context, pinID, userID int64, role string) (*model.Member, error)
	RemoveMember(ctx context.Context, pinID, userID int64) error
	GetMembersByPinID(ctx context.Context, pinID int64) ([]model.MemberInfo, error)
	CountMembersByPinID(ctx context.Context, pinID int64) (int, error)
	GetPinByID(ctx context.Context, pinID int64) (*model.Pin, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
}

type MemberService struct {
	repo MemberRepo
}

func NewMemberService(repo MemberRepo) *MemberService {
	return &MemberService{repo: repo}
}

// AddMember - OWNER가 username으로 다른 사용자를 핀에 초대
//
// 정원(8명) 검사는 조회 후 삽입이라 엄밀히는 레이스가 있지만, 중복
// 가입은 (pin_id, user_id) 유니크 제약이 막고 정원 초과는 1명 수준의
// 오차만 허용된다.
func (s *MemberService) AddMember(ctx context.Context, actorUserID, pinID int64, req model.AddMemberRequest) (*model.Member, error) {
	actor, err := s.repo.GetMember(ctx, pinID, actorUserID)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotMember
		}
		return nil, err
	}
	if actor.Role != model.RoleOwner {
		return nil, ErrNotOwner
	}

	target, err := s.repo.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	count, err := s.repo.CountMembersByPinID(ctx, pinID)
	if err != nil {
		return nil, err
	}
	if count >= model.MaxPinMembers {
		return nil, ErrPinFull
	}

	member, err := s.repo.AddMember(ctx, pinID, target.ID, model.RoleMember)
	if err != nil {
		if errors.Is(err, db.ErrDuplicateMember) {
			return nil, ErrAlreadyMember
		}
		return nil, err
	}

	log.Printf("member added: pinId=%d userId=%d by=%d", pinID, target.ID, actorUserID)
	return member, nil
}

func (s *MemberService) ListMembers(ctx context.Context, userID, pinID int64) ([]model.MemberInfo, error) {
	if _, err := s.repo.GetMember(ctx, pinID, userID); err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotMember
		}
		return nil, err
	}
	return s.repo.GetMembersByPinID(ctx, pinID)
}

// Leave - 본인 탈퇴. OWNER는 다른 멤버가 남아 있는 동안 탈퇴할 수 없다.
func (s *MemberService) Leave(ctx context.Context, userID, pinID int64) error {
	member, err := s.repo.GetMember(ctx, pinID, userID)
	if err != nil {
		if db.IsNoRows(err) {
			return ErrNotMember
		}
		return err
	}

	if member.Role == model.RoleOwner {
		count, err := s.repo.CountMembersByPinID(ctx, pinID)
		if err != nil {
			return err
		}
		if count > 1 {
			return ErrOwnerCantLeave
		}
	}

	if err := s.repo.RemoveMember(ctx, pinID, userID); err != nil {
		return err
	}
	log.Printf("member left: pinId=%d userId=%d", pinID, userID)
	return nil
}

// RemoveMember - OWNER가 다른 멤버를 내보냄
func (s *MemberService) RemoveMember(ctx context.Context, actorUserID, pinID, targetUserID int64) error {
	actor, err := s.repo.GetMember(ctx, pinID, actorUserID)
	if err != nil {
		if db.IsNoRows(err) {
			return ErrNotMember
		}
		return err
	}
	if actor.Role != model.RoleOwner {
		return ErrNotOwner
	}
	if targetUserID == actorUserID {
		return ErrInvalidInput
	}

	if _, err := s.repo.GetMember(ctx, pinID, targetUserID); err != nil {
		if db.IsNoRows(err) {
			return ErrNotMember
		}
		return err
	}

	if err := s.repo.RemoveMember(ctx, pinID, targetUserID); err != nil {
		return err
	}
	log.Printf("member removed: pinId=%d userId=%d by=%d", pinID, targetUserID, actorUserID)
	return nil
}
