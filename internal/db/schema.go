package db

import "context"

// EnsureSchema - 서비스 구동 시 테이블이 없으면 생성
//
// username/email/phone/(provider, provider_id) 유니크 제약의 이름은
// users.go의 23505 매핑과 일치해야 한다.
func (db *Postgres) EnsureSchema(ctx context.Context) error {
	queries := []string{
		`
		CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			username VARCHAR(100) NOT NULL,
			password_hash TEXT NOT NULL,
			name VARCHAR(30) NOT NULL,
			phone VARCHAR(20),
			email VARCHAR(100),
			provider VARCHAR(20),
			provider_id VARCHAR(100),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			CONSTRAINT users_username_key UNIQUE (username),
			CONSTRAINT users_phone_key UNIQUE (phone),
			CONSTRAINT users_email_key UNIQUE (email),
			CONSTRAINT users_provider_provider_id_key UNIQUE (provider, provider_id)
		)
		`,
		`
		CREATE TABLE IF NOT EXISTS pins (
			id BIGSERIAL PRIMARY KEY,
			title VARCHAR(100) NOT NULL,
			address VARCHAR(255) NOT NULL,
			latitude DOUBLE PRECISION NOT NULL,
			longitude DOUBLE PRECISION NOT NULL,
			notification_radius INTEGER NOT NULL DEFAULT 100,
			member_count INTEGER NOT NULL DEFAULT 1,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
		`,
		`
		CREATE TABLE IF NOT EXISTS members (
			id BIGSERIAL PRIMARY KEY,
			pin_id BIGINT NOT NULL REFERENCES pins(id) ON DELETE CASCADE,
			user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			role VARCHAR(10) NOT NULL DEFAULT 'MEMBER',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			CONSTRAINT members_pin_id_user_id_key UNIQUE (pin_id, user_id)
		)
		`,
		`CREATE INDEX IF NOT EXISTS members_user_id_idx ON members(user_id)`,
		`
		CREATE TABLE IF NOT EXISTS tasks (
			id BIGSERIAL PRIMARY KEY,
			pin_id BIGINT NOT NULL REFERENCES pins(id) ON DELETE CASCADE,
			title VARCHAR(200) NOT NULL,
			completed BOOLEAN NOT NULL DEFAULT FALSE,
			completed_at TIMESTAMPTZ,
			start_date_time TIMESTAMPTZ,
			end_date_time TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
		`,
		`CREATE INDEX IF NOT EXISTS tasks_pin_id_idx ON tasks(pin_id)`,
		`
		CREATE TABLE IF NOT EXISTS task_time_infos (
			id BIGSERIAL PRIMARY KEY,
			task_id BIGINT NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
			start_time TIMESTAMPTZ NOT NULL,
			end_time TIMESTAMPTZ NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
		`,
		`
		CREATE TABLE IF NOT EXISTS notifications (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			pin_id BIGINT REFERENCES pins(id) ON DELETE CASCADE,
			task_id BIGINT REFERENCES tasks(id) ON DELETE CASCADE,
			title VARCHAR(200) NOT NULL,
			message TEXT,
			type VARCHAR(50) NOT NULL,
			is_read BOOLEAN NOT NULL DEFAULT FALSE,
			read_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
		`,
		`CREATE INDEX IF NOT EXISTS notifications_user_id_idx ON notifications(user_id)`,
	}

	for _, query := range queries {
		if _, err := db.Pool.Exec(ctx, query); err != nil {
			return err
		}
	}
	return nil
}
