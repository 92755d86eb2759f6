package db

import (
	"context"
	"errors"

	"github.com/TogetherPinz/TogetherPinz-BE/internal/model"
	"github.com/jackc/pgx/v5/pgconn"
)

var ErrDuplicateMember = errors.New("already a member of this pin")

const memberColumns = `id, pin_id, user_id, role, created_at`

// AddMember - 멤버 추가와 member_count 증가를 한 트랜잭션으로 처리
//
// 정원 검사는 서비스 레이어에서 하지만, (pin_id, user_id) 중복은
// 유니크 제약이 최종적으로 막는다.
func (db *Postgres) AddMember(ctx context.Context, pinID, userID int64, role string) (*model.Member, error) {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	row := tx.QueryRow(ctx, `
		INSERT INTO members (pin_id, user_id, role, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING `+memberColumns,
		pinID, userID, role,
	)
	member, err := scanMember(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrDuplicateMember
		}
		return nil, err
	}

	if _, err = tx.Exec(ctx, `
		UPDATE pins SET member_count = member_count + 1, updated_at = NOW() WHERE id = $1
	`, pinID); err != nil {
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, err
	}
	return member, nil
}

// RemoveMember deletes a membership and decrements the pin's member count.
func (db *Postgres) RemoveMember(ctx context.Context, pinID, userID int64) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	tag, err := tx.Exec(ctx, `DELETE FROM members WHERE pin_id = $1 AND user_id = $2`, pinID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return nil
	}

	if _, err = tx.Exec(ctx, `
		UPDATE pins SET member_count = GREATEST(member_count - 1, 0), updated_at = NOW() WHERE id = $1
	`, pinID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (db *Postgres) GetMember(ctx context.Context, pinID, userID int64) (*model.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE pin_id = $1 AND user_id = $2`
	return scanMember(db.Pool.QueryRow(ctx, query, pinID, userID))
}

func (db *Postgres) GetMembersByPinID(ctx context.Context, pinID int64) ([]model.MemberInfo, error) {
	query := `
		SELECT m.id, m.pin_id, m.user_id, u.username, m.role, m.created_at
		FROM members m
		JOIN users u ON u.id = m.user_id
		WHERE m.pin_id = $1
		ORDER BY m.created_at
	`
	rows, err := db.Pool.Query(ctx, query, pinID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []model.MemberInfo
	for rows.Next() {
		var info model.MemberInfo
		if err := rows.Scan(&info.ID, &info.PinID, &info.UserID, &info.Username, &info.Role, &info.JoinedAt); err != nil {
			return nil, err
		}
		members = append(members, info)
	}
	return members, rows.Err()
}

func (db *Postgres) CountMembersByPinID(ctx context.Context, pinID int64) (int, error) {
	var count int
	err := db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM members WHERE pin_id = $1`, pinID).Scan(&count)
	return count, err
}

func scanMember(row rowScanner) (*model.Member, error) {
	var m model.Member
	err := row.Scan(&m.ID, &m.PinID, &m.UserID, &m.Role, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
