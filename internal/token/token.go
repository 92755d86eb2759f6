// JWT 서명/검증 유틸
//
// HS256 대칭키 서명. 상태 없음 - Redis나 DB를 전혀 참조하지 않는다.
// 블랙리스트 확인은 service 레이어(AuthService.VerifyToken)의 책임.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"

	// 서버 간 시계 오차 허용치
	leeway = 5 * time.Second
)

var (
	ErrTokenInvalid = errors.New("token invalid")
	ErrTokenExpired = errors.New("token expired")
)

// Claims - 검증이 끝난 토큰에서 추출한 클레임
type Claims struct {
	Username  string
	UserID    int64
	TokenType string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type jwtClaims struct {
	UserID    int64  `json:"userId"`
	TokenType string `json:"tokenType"`
	jwt.RegisteredClaims
}

// Codec issues and verifies bearer tokens with a process-wide secret.
// Immutable after construction; safe for concurrent use.
type Codec struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewCodec(secret string, accessTTL, refreshTTL time.Duration) *Codec {
	return &Codec{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

func (c *Codec) IssueAccessToken(username string, userID int64) (string, error) {
	return c.issue(TypeAccess, username, userID, c.accessTTL)
}

func (c *Codec) IssueRefreshToken(username string, userID int64) (string, error) {
	return c.issue(TypeRefresh, username, userID, c.refreshTTL)
}

func (c *Codec) issue(kind, username string, userID int64, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwtClaims{
		UserID:    userID,
		TokenType: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			// iat/exp는 초 단위라 jti가 없으면 같은 초에 발급된
			// 토큰이 바이트 단위로 동일해진다
			ID:        uuid.NewString(),
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Parse verifies signature and expiry and returns the claims.
// Fails with ErrTokenExpired when only the expiry is the problem,
// ErrTokenInvalid for anything else (malformed, bad signature, wrong alg).
func (c *Codec) Parse(tokenStr string) (*Claims, error) {
	claims := &jwtClaims{}
	parsed, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return c.secret, nil
	}, jwt.WithLeeway(leeway))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !parsed.Valid || claims.Subject == "" || claims.ExpiresAt == nil {
		return nil, ErrTokenInvalid
	}

	out := &Claims{
		Username:  claims.Subject,
		UserID:    claims.UserID,
		TokenType: claims.TokenType,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	return out, nil
}

func (c *Codec) AccessTTL() time.Duration {
	return c.accessTTL
}

func (c *Codec) RefreshTTL() time.Duration {
	return c.refreshTTL
}
