// Google ID Token 검증 클라이언트
//
// 모바일 클라이언트가 Google 로그인으로 받은 ID Token을 그대로 보내면
// 서버가 설정된 client id를 audience로 서명/만료를 검증한다.
//
// 환경변수:
//   - GOOGLE_CLIENT_ID

package client

import (
	"context"
	"fmt"

	"google.golang.org/api/idtoken"
)

type GoogleVerifier struct {
	clientID string
}

func NewGoogleVerifier(clientID string) *GoogleVerifier {
	return &GoogleVerifier{clientID: clientID}
}

// Verify validates the ID token and returns its claim payload.
// The payload carries sub/email/name at the top level, the shape the
// oauth2 resolver expects for the google provider.
func (v *GoogleVerifier) Verify(ctx context.Context, rawToken string) (map[string]any, error) {
	if v.clientID == "" {
		return nil, fmt.Errorf("google client id not configured")
	}
	payload, err := idtoken.Validate(ctx, rawToken, v.clientID)
	if err != nil {
		return nil, fmt.Errorf("google id token validation failed: %w", err)
	}

	attrs := make(map[string]any, len(payload.Claims)+1)
	for k, val := range payload.Claims {
		attrs[k] = val
	}
	attrs["sub"] = payload.Subject
	return attrs, nil
}
