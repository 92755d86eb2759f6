// OAuth2 제공자별 사용자 정보 정규화
//
// 지원 제공자: google, kakao, naver
// 제공자마다 attributes 구조가 다르다:
//   - google: 최상위 sub / email / name
//   - kakao:  최상위 id + kakao_account.email + kakao_account.profile.nickname
//   - naver:  response 객체 안에 id / email / name
//
// 제공자 추가 = 상수 + normalize 분기 하나 추가.
package oauth2

import (
	"errors"
	"fmt"
	"strconv"
)

const (
	ProviderGoogle = "google"
	ProviderKakao  = "kakao"
	ProviderNaver  = "naver"
)

var (
	ErrUnsupportedProvider = errors.New("unsupported oauth2 provider")
	// 이메일은 계정 연동의 기준이라 필수
	ErrMissingEmail = errors.New("email not present in provider attributes")
)

// UserInfo - 제공자에 무관한 정규화된 신원
type UserInfo struct {
	Provider   string
	ProviderID string
	Email      string
	Name       string
}

// FromAttributes normalizes a provider's raw attribute payload.
func FromAttributes(provider string, attrs map[string]any) (*UserInfo, error) {
	var info *UserInfo
	switch provider {
	case ProviderGoogle:
		info = googleUserInfo(attrs)
	case ProviderKakao:
		info = kakaoUserInfo(attrs)
	case ProviderNaver:
		info = naverUserInfo(attrs)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedProvider, provider)
	}

	if info.ProviderID == "" {
		return nil, fmt.Errorf("%w: provider id missing", ErrUnsupportedProvider)
	}
	if info.Email == "" {
		return nil, ErrMissingEmail
	}
	return info, nil
}

func googleUserInfo(attrs map[string]any) *UserInfo {
	return &UserInfo{
		Provider:   ProviderGoogle,
		ProviderID: stringAttr(attrs, "sub"),
		Email:      stringAttr(attrs, "email"),
		Name:       stringAttr(attrs, "name"),
	}
}

func kakaoUserInfo(attrs map[string]any) *UserInfo {
	info := &UserInfo{
		Provider:   ProviderKakao,
		ProviderID: stringAttr(attrs, "id"),
	}
	account, _ := attrs["kakao_account"].(map[string]any)
	if account != nil {
		info.Email = stringAttr(account, "email")
		if profile, _ := account["profile"].(map[string]any); profile != nil {
			info.Name = stringAttr(profile, "nickname")
		}
	}
	return info
}

func naverUserInfo(attrs map[string]any) *UserInfo {
	info := &UserInfo{Provider: ProviderNaver}
	if response, _ := attrs["response"].(map[string]any); response != nil {
		info.ProviderID = stringAttr(response, "id")
		info.Email = stringAttr(response, "email")
		info.Name = stringAttr(response, "name")
	}
	return info
}

// kakao는 id를 숫자로 내려주므로 숫자도 문자열로 받아준다
func stringAttr(attrs map[string]any, key string) string {
	switch v := attrs[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return ""
	}
}
