package db

import (
	"context"
	"errors"

	"github.com/TogetherPinz/TogetherPinz-BE/internal/model"
	"github.com/jackc/pgx/v5/pgconn"
)

// 유니크 제약 위반을 제약 이름으로 구분한 센티널 에러
//
// 계정 생성의 중복 검사는 사전 존재 확인이 아니라 INSERT의 유니크 제약에
// 맡긴다. 동시 요청이 겹쳐도 제약이 최종 심판이 된다.
var (
	ErrDuplicateUsername = errors.New("duplicate username")
	ErrDuplicateEmail    = errors.New("duplicate email")
	ErrDuplicatePhone    = errors.New("duplicate phone")
	ErrDuplicateProvider = errors.New("duplicate provider identity")
)

const userColumns = `id, username, password_hash, name, phone, email, provider, provider_id, created_at, updated_at`

func (db *Postgres) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	query := `
		INSERT INTO users (username, password_hash, name, phone, email, provider, provider_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING ` + userColumns
	row := db.Pool.QueryRow(ctx, query,
		user.Username,
		user.PasswordHash,
		user.Name,
		user.Phone,
		user.Email,
		user.Provider,
		user.ProviderID,
	)
	created, err := scanUser(row)
	if err != nil {
		return nil, mapUniqueViolation(err)
	}
	return created, nil
}

func (db *Postgres) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(db.Pool.QueryRow(ctx, query, id))
}

func (db *Postgres) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	return scanUser(db.Pool.QueryRow(ctx, query, username))
}

func (db *Postgres) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(db.Pool.QueryRow(ctx, query, email))
}

func (db *Postgres) GetUserByPhone(ctx context.Context, phone string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE phone = $1`
	return scanUser(db.Pool.QueryRow(ctx, query, phone))
}

func (db *Postgres) GetUserByProvider(ctx context.Context, provider, providerID string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE provider = $1 AND provider_id = $2`
	return scanUser(db.Pool.QueryRow(ctx, query, provider, providerID))
}

func (db *Postgres) UpdateUserPassword(ctx context.Context, userID int64, passwordHash string) error {
	query := `UPDATE users SET password_hash = $2, updated_at = NOW() WHERE id = $1`
	_, err := db.Pool.Exec(ctx, query, userID, passwordHash)
	return err
}

func (db *Postgres) UpdateUserProfile(ctx context.Context, user *model.User) (*model.User, error) {
	query := `
		UPDATE users
		SET name = $2, phone = $3, email = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userColumns
	row := db.Pool.QueryRow(ctx, query, user.ID, user.Name, user.Phone, user.Email)
	updated, err := scanUser(row)
	if err != nil {
		return nil, mapUniqueViolation(err)
	}
	return updated, nil
}

func (db *Postgres) DeleteUser(ctx context.Context, userID int64) error {
	_, err := db.Pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*model.User, error) {
	var user model.User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.Name,
		&user.Phone,
		&user.Email,
		&user.Provider,
		&user.ProviderID,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return err
	}
	switch pgErr.ConstraintName {
	case "users_username_key":
		return ErrDuplicateUsername
	case "users_email_key":
		return ErrDuplicateEmail
	case "users_phone_key":
		return ErrDuplicatePhone
	case "users_provider_provider_id_key":
		return ErrDuplicateProvider
	}
	return err
}
