package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/TogetherPinz/TogetherPinz-BE/internal/db"
	"github.com/TogetherPinz/TogetherPinz-BE/internal/model"
	"github.com/jackc/pgx/v5"
)

type fakeMemberRepo struct {
	nextID  int64
	pins    map[int64]*model.Pin
	members map[int64][]*model.Member
	users   map[string]*model.User
}

func newFakeMemberRepo() *fakeMemberRepo {
	return &fakeMemberRepo{
		pins:    map[int64]*model.Pin{},
		members: map[int64][]*model.Member{},
		users:   map[string]*model.User{},
	}
}

func (f *fakeMemberRepo) addUser(id int64, username string) {
	f.users[username] = &model.User{ID: id, Username: username, Name: username}
}

func (f *fakeMemberRepo) addPin(pinID, ownerID int64) {
	f.pins[pinID] = &model.Pin{ID: pinID, Title: "테스트 핀"}
	f.members[pinID] = append(f.members[pinID], &model.Member{
		ID: f.newID(), PinID: pinID, UserID: ownerID, Role: model.RoleOwner,
	})
}

func (f *fakeMemberRepo) newID() int64 {
	f.nextID++
	return f.nextID
}

func (f *fakeMemberRepo) GetMember(ctx context.Context, pinID, userID int64) (*model.Member, error) {
	for _, m := range f.members[pinID] {
		if m.UserID == userID {
			return m, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeMemberRepo) AddMember(ctx context.Context, pinID, userID int64, role string) (*model.Member, error) {
	for _, m := range f.members[pinID] {
		if m.UserID == userID {
			return nil, db.ErrDuplicateMember
		}
	}
	m := &model.Member{ID: f.newID(), PinID: pinID, UserID: userID, Role: role}
	f.members[pinID] = append(f.members[pinID], m)
	return m, nil
}

func (f *fakeMemberRepo) RemoveMember(ctx context.Context, pinID, userID int64) error {
	kept := f.members[pinID][:0]
	for _, m := range f.members[pinID] {
		if m.UserID != userID {
			kept = append(kept, m)
		}
	}
	f.members[pinID] = kept
	return nil
}

func (f *fakeMemberRepo) GetMembersByPinID(ctx context.Context, pinID int64) ([]model.MemberInfo, error) {
	infos := make([]model.MemberInfo, 0, len(f.members[pinID]))
	for _, m := range f.members[pinID] {
		infos = append(infos, model.MemberInfo{
			ID: m.ID, PinID: m.PinID, UserID: m.UserID, Role: m.Role,
		})
	}
	return infos, nil
}

func (f *fakeMemberRepo) CountMembersByPinID(ctx context.Context, pinID int64) (int, error) {
	return len(f.members[pinID]), nil
}

func (f *fakeMemberRepo) GetPinByID(ctx context.Context, pinID int64) (*model.Pin, error) {
	if p, ok := f.pins[pinID]; ok {
		return p, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeMemberRepo) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	if u, ok := f.users[username]; ok {
		return u, nil
	}
	return nil, pgx.ErrNoRows
}

const (
	ownerID = int64(1)
	pinID   = int64(100)
)

func newMemberFixture() (*MemberService, *fakeMemberRepo) {
	repo := newFakeMemberRepo()
	repo.addUser(ownerID, "owner")
	repo.addPin(pinID, ownerID)
	return NewMemberService(repo), repo
}

func TestAddMember(t *testing.T) {
	svc, repo := newMemberFixture()
	repo.addUser(2, "guest")

	member, err := svc.AddMember(context.Background(), ownerID, pinID, model.AddMemberRequest{Username: "guest"})
	if err != nil {
		t.Fatalf("add member failed: %v", err)
	}
	if member.Role != model.RoleMember {
		t.Fatalf("expected MEMBER role, got %q", member.Role)
	}
}

func TestAddMemberRequiresOwner(t *testing.T) {
	svc, repo := newMemberFixture()
	repo.addUser(2, "guest")
	repo.addUser(3, "other")
	if _, err := svc.AddMember(context.Background(), ownerID, pinID, model.AddMemberRequest{Username: "guest"}); err != nil {
		t.Fatalf("setup add failed: %v", err)
	}

	_, err := svc.AddMember(context.Background(), 2, pinID, model.AddMemberRequest{Username: "other"})
	if !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
}

func TestAddMemberCapacity(t *testing.T) {
	svc, repo := newMemberFixture()
	ctx := context.Background()

	// 정원 8명 채우기 (OWNER 포함)
	for i := 2; i <= model.MaxPinMembers; i++ {
		name := fmt.Sprintf("user%d", i)
		repo.addUser(int64(i), name)
		if _, err := svc.AddMember(ctx, ownerID, pinID, model.AddMemberRequest{Username: name}); err != nil {
			t.Fatalf("add %s failed: %v", name, err)
		}
	}

	repo.addUser(99, "ninth")
	_, err := svc.AddMember(ctx, ownerID, pinID, model.AddMemberRequest{Username: "ninth"})
	if !errors.Is(err, ErrPinFull) {
		t.Fatalf("expected ErrPinFull, got %v", err)
	}
}

func TestAddMemberTwice(t *testing.T) {
	svc, repo := newMemberFixture()
	repo.addUser(2, "guest")
	ctx := context.Background()

	if _, err := svc.AddMember(ctx, ownerID, pinID, model.AddMemberRequest{Username: "guest"}); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	_, err := svc.AddMember(ctx, ownerID, pinID, model.AddMemberRequest{Username: "guest"})
	if !errors.Is(err, ErrAlreadyMember) {
		t.Fatalf("expected ErrAlreadyMember, got %v", err)
	}
}

func TestOwnerCannotLeaveWithMembers(t *testing.T) {
	svc, repo := newMemberFixture()
	repo.addUser(2, "guest")
	ctx := context.Background()

	if _, err := svc.AddMember(ctx, ownerID, pinID, model.AddMemberRequest{Username: "guest"}); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	if err := svc.Leave(ctx, ownerID, pinID); !errors.Is(err, ErrOwnerCantLeave) {
		t.Fatalf("expected ErrOwnerCantLeave, got %v", err)
	}

	// 멤버가 나간 뒤에는 OWNER도 나갈 수 있다
	if err := svc.Leave(ctx, 2, pinID); err != nil {
		t.Fatalf("member leave failed: %v", err)
	}
	if err := svc.Leave(ctx, ownerID, pinID); err != nil {
		t.Fatalf("owner leave failed: %v", err)
	}
}

func TestRemoveMemberNotSelf(t *testing.T) {
	svc, _ := newMemberFixture()
	err := svc.RemoveMember(context.Background(), ownerID, pinID, ownerID)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestListMembersRequiresMembership(t *testing.T) {
	svc, _ := newMemberFixture()
	_, err := svc.ListMembers(context.Background(), 42, pinID)
	if !errors.Is(err, ErrNotMember) {
		t.Fatalf("expected ErrNotMember, got %v", err)
	}
}
