// 네이버 사용자 정보 API 클라이언트
//
// 카카오와 같은 방식: 액세스 토큰으로 /v1/nid/me를 호출해 검증과 조회를
// 동시에 처리한다. 네이버는 사용자 정보를 response 객체 안에 내려준다.

package client

import (
	"context"
	"net/http"
	"time"
)

const naverUserInfoURL = "https://openapi.naver.com/v1/nid/me"

type NaverClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewNaverClient() *NaverClient {
	return &NaverClient{
		baseURL: naverUserInfoURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *NaverClient) Verify(ctx context.Context, accessToken string) (map[string]any, error) {
	return fetchUserInfo(ctx, c.httpClient, c.baseURL, accessToken)
}
