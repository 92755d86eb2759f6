package token

import (
	"errors"
	"testing"
	"time"
)

func TestIssueAndParseRoundTrip(t *testing.T) {
	codec := NewCodec("test-secret", time.Hour, 24*time.Hour)

	signed, err := codec.IssueAccessToken("alice", 7)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	claims, err := codec.Parse(signed)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if claims.Username != "alice" || claims.UserID != 7 {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.TokenType != TypeAccess {
		t.Fatalf("expected access token type, got %q", claims.TokenType)
	}
	if time.Until(claims.ExpiresAt) <= 0 {
		t.Fatalf("token expired immediately")
	}
}

func TestRefreshTokenType(t *testing.T) {
	codec := NewCodec("test-secret", time.Hour, 24*time.Hour)

	signed, err := codec.IssueRefreshToken("alice", 7)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	claims, err := codec.Parse(signed)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if claims.TokenType != TypeRefresh {
		t.Fatalf("expected refresh token type, got %q", claims.TokenType)
	}
}

func TestIssuedTokensAreUnique(t *testing.T) {
	codec := NewCodec("test-secret", time.Hour, 24*time.Hour)

	// iat/exp는 초 단위이므로 연속 발급은 같은 초에 떨어진다.
	// 로테이션이 의미를 가지려면 그래도 토큰이 서로 달라야 한다.
	first, err := codec.IssueRefreshToken("alice", 7)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	second, err := codec.IssueRefreshToken("alice", 7)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if first == second {
		t.Fatalf("tokens issued back-to-back are identical")
	}
}

func TestParseExpired(t *testing.T) {
	codec := NewCodec("test-secret", -time.Minute, 24*time.Hour)

	signed, err := codec.IssueAccessToken("alice", 7)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if _, err := codec.Parse(signed); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestParseWrongSecret(t *testing.T) {
	codec := NewCodec("test-secret", time.Hour, 24*time.Hour)
	other := NewCodec("other-secret", time.Hour, 24*time.Hour)

	signed, err := codec.IssueAccessToken("alice", 7)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if _, err := other.Parse(signed); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestParseMalformed(t *testing.T) {
	codec := NewCodec("test-secret", time.Hour, 24*time.Hour)

	for _, tokenStr := range []string{"", "not-a-jwt", "a.b.c"} {
		if _, err := codec.Parse(tokenStr); !errors.Is(err, ErrTokenInvalid) {
			t.Fatalf("expected ErrTokenInvalid for %q, got %v", tokenStr, err)
		}
	}
}
