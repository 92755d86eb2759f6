// 카카오 사용자 정보 API 클라이언트
//
// 클라이언트가 보낸 카카오 액세스 토큰으로 /v2/user/me를 호출해
// 토큰 유효성 검증과 사용자 정보 조회를 한 번에 처리한다.
// 응답 본문이 곧 oauth2 리졸버가 기대하는 kakao attributes 형태다.

package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const kakaoUserInfoURL = "https://kapi.kakao.com/v2/user/me"

type KakaoClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewKakaoClient() *KakaoClient {
	return &KakaoClient{
		baseURL: kakaoUserInfoURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *KakaoClient) Verify(ctx context.Context, accessToken string) (map[string]any, error) {
	return fetchUserInfo(ctx, c.httpClient, c.baseURL, accessToken)
}

// fetchUserInfo - Bearer 토큰으로 제공자 userinfo 엔드포인트 호출
//
// 2xx가 아니면 제공자 토큰이 유효하지 않은 것으로 본다.
func fetchUserInfo(ctx context.Context, httpClient *http.Client, url, accessToken string) (map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("provider userinfo request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("provider rejected token: status=%d body=%s", resp.StatusCode, string(body))
	}

	var attrs map[string]any
	if err := json.Unmarshal(body, &attrs); err != nil {
		return nil, fmt.Errorf("failed to decode userinfo response: %w", err)
	}
	return attrs, nil
}
