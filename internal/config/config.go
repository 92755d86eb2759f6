package config

import "os"

type Config struct {
	Server   ServerConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Auth     AuthConfig
	OAuth    OAuthConfig
}

type ServerConfig struct {
	Port           string
	AllowedOrigins string
}

type PostgresConfig struct {
	DatabaseURL string
	Host        string
	Port        string
	User        string
	Password    string
	Database    string
	SSLMode     string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       string
}

type AuthConfig struct {
	JWTSecret     string
	JWTAccessTTL  string
	JWTRefreshTTL string
}

// kakao/naver는 제시된 액세스 토큰으로 제공자 userinfo API를 직접
// 호출해 검증하므로 클라이언트 ID가 필요 없다. google만 ID 토큰의
// audience 검증에 클라이언트 ID를 쓴다.
type OAuthConfig struct {
	GoogleClientID string
}

func Load() Config {
	return Config{
		Server: ServerConfig{
			Port:           getenv("PORT", "8080"),
			AllowedOrigins: os.Getenv("ALLOWED_ORIGINS"),
		},
		Postgres: PostgresConfig{
			DatabaseURL: os.Getenv("DATABASE_URL"),
			Host:        getenv("PGHOST", "localhost"),
			Port:        getenv("PGPORT", "5432"),
			User:        os.Getenv("PGUSER"),
			Password:    os.Getenv("PGPASSWORD"),
			Database:    os.Getenv("PGDATABASE"),
			SSLMode:     getenv("PGSSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     getenv("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getenv("REDIS_DB", "0"),
		},
		Auth: AuthConfig{
			JWTSecret:     os.Getenv("JWT_SECRET"),
			JWTAccessTTL:  getenv("JWT_ACCESS_TTL", "1h"),
			JWTRefreshTTL: getenv("JWT_REFRESH_TTL", "168h"),
		},
		OAuth: OAuthConfig{
			GoogleClientID: os.Getenv("GOOGLE_CLIENT_ID"),
		},
	}
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
