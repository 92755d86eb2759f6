package db

import (
	"context"

	"github.com/TogetherPinz/TogetherPinz-BE/internal/model"
)

const pinColumns = `id, title, address, latitude, longitude, notification_radius, member_count, created_at, updated_at`

// CreatePin - 핀 생성과 동시에 생성자를 OWNER 멤버로 등록 (한 트랜잭션)
func (db *Postgres) CreatePin(ctx context.Context, pin *model.Pin, ownerUserID int64) (*model.Pin, error) {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	row := tx.QueryRow(ctx, `
		INSERT INTO pins (title, address, latitude, longitude, notification_radius, member_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, 1, NOW(), NOW())
		RETURNING `+pinColumns,
		pin.Title, pin.Address, pin.Latitude, pin.Longitude, pin.NotificationRadius,
	)
	created, err := scanPin(row)
	if err != nil {
		return nil, err
	}

	if _, err = tx.Exec(ctx, `
		INSERT INTO members (pin_id, user_id, role, created_at)
		VALUES ($1, $2, $3, NOW())
	`, created.ID, ownerUserID, model.RoleOwner); err != nil {
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, err
	}
	return created, nil
}

func (db *Postgres) GetPinByID(ctx context.Context, pinID int64) (*model.Pin, error) {
	query := `SELECT ` + pinColumns + ` FROM pins WHERE id = $1`
	return scanPin(db.Pool.QueryRow(ctx, query, pinID))
}

// GetPinsByUserID - 멤버십을 따라 사용자의 핀 목록 조회
func (db *Postgres) GetPinsByUserID(ctx context.Context, userID int64) ([]model.Pin, error) {
	query := `
		SELECT p.id, p.title, p.address, p.latitude, p.longitude, p.notification_radius, p.member_count, p.created_at, p.updated_at
		FROM pins p
		JOIN members m ON m.pin_id = p.id
		WHERE m.user_id = $1
		ORDER BY p.created_at DESC
	`
	rows, err := db.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pins []model.Pin
	for rows.Next() {
		pin, err := scanPin(rows)
		if err != nil {
			return nil, err
		}
		pins = append(pins, *pin)
	}
	return pins, rows.Err()
}

func (db *Postgres) UpdatePin(ctx context.Context, pin *model.Pin) (*model.Pin, error) {
	query := `
		UPDATE pins
		SET title = $2, address = $3, latitude = $4, longitude = $5, notification_radius = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + pinColumns
	row := db.Pool.QueryRow(ctx, query,
		pin.ID, pin.Title, pin.Address, pin.Latitude, pin.Longitude, pin.NotificationRadius,
	)
	return scanPin(row)
}

func (db *Postgres) DeletePin(ctx context.Context, pinID int64) error {
	_, err := db.Pool.Exec(ctx, `DELETE FROM pins WHERE id = $1`, pinID)
	return err
}

func scanPin(row rowScanner) (*model.Pin, error) {
	var pin model.Pin
	err := row.Scan(
		&pin.ID,
		&pin.Title,
		&pin.Address,
		&pin.Latitude,
		&pin.Longitude,
		&pin.NotificationRadius,
		&pin.MemberCount,
		&pin.CreatedAt,
		&pin.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &pin, nil
}
