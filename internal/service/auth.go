package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/TogetherPinz/TogetherPinz-BE/internal/config"
	"github.com/TogetherPinz/TogetherPinz-BE/internal/db"
	"github.com/TogetherPinz/TogetherPinz-BE/internal/model"
	"github.com/TogetherPinz/TogetherPinz-BE/internal/oauth2"
	"github.com/TogetherPinz/TogetherPinz-BE/internal/token"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	minUsernameLength = 4
	maxUsernameLength = 100
	minPasswordLength = 4
	maxPasswordLength = 255

	// OAuth2 username 충돌 시 접미사 재시도 상한
	maxUsernameAttempts = 10
)

var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrPasswordMismatch     = errors.New("password confirmation does not match")
	ErrDuplicateUsername    = errors.New("username already in use")
	ErrDuplicateEmail       = errors.New("email already in use")
	ErrDuplicatePhone       = errors.New("phone already in use")
	ErrUserNotFound         = errors.New("user not found")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrWrongTokenType       = errors.New("not a refresh token")
	ErrInvalidProviderToken = errors.New("invalid provider token")
	ErrProviderConflict     = errors.New("email already linked to another provider")
	ErrEmailMismatch        = errors.New("email does not match")
	ErrMisconfigured        = errors.New("auth config invalid")
)

// UserRepo - Credential Store 접근 계약
type UserRepo interface {
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByProvider(ctx context.Context, provider, providerID string) (*model.User, error)
	UpdateUserPassword(ctx context.Context, userID int64, passwordHash string) error
}

// SessionStore - 리프레시 토큰/블랙리스트 보관소 계약 (Redis 구현: internal/db)
type SessionStore interface {
	PutRefreshToken(ctx context.Context, username, token string, ttl time.Duration) error
	GetRefreshToken(ctx context.Context, username string) (string, error)
	DeleteRefreshToken(ctx context.Context, username string) error
	Blacklist(ctx context.Context, accessToken string, ttl time.Duration) error
	IsBlacklisted(ctx context.Context, accessToken string) (bool, error)
}

// ProviderVerifier verifies a provider-issued token and returns the raw
// attribute payload for the oauth2 resolver.
type ProviderVerifier interface {
	Verify(ctx context.Context, rawToken string) (map[string]any, error)
}

// AuthService - 세션 수명주기 오케스트레이터
//
// 회원가입/로그인/로그아웃/토큰 갱신/토큰 검증/OAuth2 로그인을 담당한다.
// 요청 간 공유 상태는 서명키와 TTL 같은 불변 설정뿐이고, 나머지 조정은
// 전부 Credential Store와 Session Store를 통해 일어난다.
type AuthService struct {
	repo      UserRepo
	sessions  SessionStore
	codec     *token.Codec
	verifiers map[string]ProviderVerifier
}

func NewAuthService(repo UserRepo, sessions SessionStore, cfg config.AuthConfig, verifiers map[string]ProviderVerifier) (*AuthService, error) {
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("%w: JWT_SECRET is required", ErrMisconfigured)
	}

	accessTTL, err := time.ParseDuration(cfg.JWTAccessTTL)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid JWT_ACCESS_TTL", ErrMisconfigured)
	}

	refreshTTL, err := time.ParseDuration(cfg.JWTRefreshTTL)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid JWT_REFRESH_TTL", ErrMisconfigured)
	}

	return &AuthService{
		repo:      repo,
		sessions:  sessions,
		codec:     token.NewCodec(cfg.JWTSecret, accessTTL, refreshTTL),
		verifiers: verifiers,
	}, nil
}

// Register - 로컬 계정 생성
//
// username은 앞뒤 공백을 잘라낸 형태로 검증하고 저장한다.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (*model.RegisterResponse, error) {
	username := strings.TrimSpace(req.Username)
	if err := validateCredentials(username, req.Password); err != nil {
		return nil, err
	}
	if req.Password != req.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.CreateUser(ctx, &model.User{
		Username:     username,
		PasswordHash: string(hash),
		Name:         req.Name,
		Phone:        req.Phone,
		Email:        req.Email,
	})
	if err != nil {
		return nil, mapDuplicateError(err)
	}

	log.Printf("register succeeded: username=%s", user.Username)
	return &model.RegisterResponse{
		Username: user.Username,
		Message:  "회원가입이 완료되었습니다.",
	}, nil
}

// Login - 로컬 자격증명 검증 후 토큰 쌍 발급
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error) {
	user, err := s.repo.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	// OAuth2 연동 계정은 비밀번호 비교로 인증하지 않는다
	if user.IsFederated() {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	resp, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}
	log.Printf("login succeeded: username=%s", user.Username)
	return resp, nil
}

// Logout - 리프레시 토큰 삭제 + 액세스 토큰 블랙리스트 등록
//
// 베스트 에포트: 실패해도 클라이언트에는 에러를 돌려주지 않는다.
func (s *AuthService) Logout(ctx context.Context, accessToken, username string) {
	if err := s.sessions.DeleteRefreshToken(ctx, username); err != nil {
		log.Printf("logout: failed to delete refresh token: username=%s err=%v", username, err)
	}

	// 이미 만료된 토큰은 블랙리스트에 올릴 필요가 없다
	claims, err := s.codec.Parse(accessToken)
	if err != nil {
		return
	}
	remaining := time.Until(claims.ExpiresAt)
	if err := s.sessions.Blacklist(ctx, accessToken, remaining); err != nil {
		log.Printf("logout: failed to blacklist access token: username=%s err=%v", username, err)
		return
	}
	log.Printf("logout succeeded: username=%s", username)
}

// Refresh - 엄격한 로테이션: 저장된 토큰과 문자열이 정확히 일치해야만
// 새 쌍을 발급한다. 이미 로테이션으로 밀려난 토큰의 재사용은 실패한다.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*model.TokenResponse, error) {
	claims, err := s.codec.Parse(refreshToken)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != token.TypeRefresh {
		return nil, ErrWrongTokenType
	}

	stored, err := s.sessions.GetRefreshToken(ctx, claims.Username)
	if err != nil {
		return nil, err
	}
	if stored == "" || stored != refreshToken {
		return nil, token.ErrTokenInvalid
	}

	newAccess, err := s.codec.IssueAccessToken(claims.Username, claims.UserID)
	if err != nil {
		return nil, err
	}
	newRefresh, err := s.codec.IssueRefreshToken(claims.Username, claims.UserID)
	if err != nil {
		return nil, err
	}

	// 덮어쓰기 = 이전 토큰 무효화. 실패 시 재시도하지 않는다 -
	// 동시 갱신 레이스를 재시도가 가려버리면 안 된다.
	if err := s.sessions.PutRefreshToken(ctx, claims.Username, newRefresh, s.codec.RefreshTTL()); err != nil {
		return nil, err
	}

	log.Printf("token refresh succeeded: username=%s", claims.Username)
	return &model.TokenResponse{
		AccessToken:      newAccess,
		RefreshToken:     newRefresh,
		ExpiresIn:        int64(s.codec.AccessTTL().Seconds()),
		RefreshExpiresIn: int64(s.codec.RefreshTTL().Seconds()),
	}, nil
}

// VerifyToken - 항상 구조화된 결과를 반환한다 (에러를 던지지 않음).
//
// 블랙리스트 조회가 실패하면 토큰을 유효한 것으로 취급하지 않고
// reason="unavailable"로 닫힌 방향으로 실패한다.
func (s *AuthService) VerifyToken(ctx context.Context, accessToken string) model.VerifyTokenResponse {
	blacklisted, err := s.sessions.IsBlacklisted(ctx, accessToken)
	if err != nil {
		log.Printf("verify: blacklist check failed, denying token: err=%v", err)
		return model.VerifyTokenResponse{Valid: false, Reason: "unavailable"}
	}
	if blacklisted {
		return model.VerifyTokenResponse{Valid: false, Reason: "revoked"}
	}

	claims, err := s.codec.Parse(accessToken)
	if err != nil {
		if errors.Is(err, token.ErrTokenExpired) {
			return model.VerifyTokenResponse{Valid: false, Reason: "expired"}
		}
		return model.VerifyTokenResponse{Valid: false, Reason: "invalid"}
	}
	if claims.TokenType != token.TypeAccess {
		return model.VerifyTokenResponse{Valid: false, Reason: "invalid"}
	}

	return model.VerifyTokenResponse{
		Valid:    true,
		Username: claims.Username,
		UserID:   claims.UserID,
	}
}

// OAuth2Login - 제공자 토큰 검증 → 신원 정규화 → 계정 조회/생성 → 토큰 발급
func (s *AuthService) OAuth2Login(ctx context.Context, req model.OAuth2LoginRequest) (*model.LoginResponse, error) {
	provider := strings.ToLower(strings.TrimSpace(req.Provider))
	verifier, ok := s.verifiers[provider]
	if !ok {
		return nil, fmt.Errorf("%w: %s", oauth2.ErrUnsupportedProvider, provider)
	}

	attrs, err := verifier.Verify(ctx, req.Token)
	if err != nil {
		log.Printf("oauth2 login: provider token rejected: provider=%s err=%v", provider, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidProviderToken, err)
	}

	info, err := oauth2.FromAttributes(provider, attrs)
	if err != nil {
		return nil, err
	}

	user, err := s.getOrCreateOAuth2User(ctx, info)
	if err != nil {
		return nil, err
	}

	resp, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}
	log.Printf("oauth2 login succeeded: provider=%s username=%s", provider, user.Username)
	return resp, nil
}

// ResetPassword - 아이디+이메일 확인 후 비밀번호 덮어쓰기
//
// 기존 세션은 무효화하지 않는다. 알려진 한계 - DESIGN.md 참고.
func (s *AuthService) ResetPassword(ctx context.Context, req model.ResetPasswordRequest) error {
	if len(req.NewPassword) < minPasswordLength || len(req.NewPassword) > maxPasswordLength {
		return ErrInvalidInput
	}

	user, err := s.repo.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if db.IsNoRows(err) {
			return ErrUserNotFound
		}
		return err
	}

	if user.Email == nil || *user.Email != req.Email {
		return ErrEmailMismatch
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.repo.UpdateUserPassword(ctx, user.ID, string(hash)); err != nil {
		return err
	}

	log.Printf("password reset succeeded: username=%s", user.Username)
	return nil
}

// getOrCreateOAuth2User - 멱등한 계정 해석
//
//  1. (provider, providerId)로 기존 계정 조회 - 재로그인
//  2. 이메일이 다른 제공자에 이미 연동돼 있으면 거절 (계정 병합 안 함;
//     로컬 전용 계정과 이메일이 겹치는 경우는 새 계정을 만든다)
//  3. 신규 생성 - username 유일성은 INSERT의 유니크 제약이 보장하고,
//     충돌 시 접미사를 바꿔 재시도한다
func (s *AuthService) getOrCreateOAuth2User(ctx context.Context, info *oauth2.UserInfo) (*model.User, error) {
	user, err := s.repo.GetUserByProvider(ctx, info.Provider, info.ProviderID)
	if err == nil {
		return user, nil
	}
	if !db.IsNoRows(err) {
		return nil, err
	}

	existing, err := s.repo.GetUserByEmail(ctx, info.Email)
	if err == nil {
		if existing.Provider != nil && *existing.Provider != info.Provider {
			return nil, ErrProviderConflict
		}
	} else if !db.IsNoRows(err) {
		return nil, err
	}

	// OAuth2 계정의 비밀번호는 로컬 로그인에 절대 쓰이지 않는 자리표시자
	placeholder, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	name := info.Name
	if name == "" {
		name = "사용자"
	}

	base := info.Provider + "_" + info.ProviderID
	username := base
	for attempt := 1; ; attempt++ {
		created, err := s.repo.CreateUser(ctx, &model.User{
			Username:     username,
			PasswordHash: string(placeholder),
			Name:         name,
			Email:        &info.Email,
			Provider:     &info.Provider,
			ProviderID:   &info.ProviderID,
		})
		if err == nil {
			log.Printf("oauth2 account created: provider=%s username=%s", info.Provider, created.Username)
			return created, nil
		}
		if errors.Is(err, db.ErrDuplicateProvider) {
			// 동시 최초 로그인이 먼저 생성을 끝낸 경우
			return s.repo.GetUserByProvider(ctx, info.Provider, info.ProviderID)
		}
		if !errors.Is(err, db.ErrDuplicateUsername) {
			return nil, mapDuplicateError(err)
		}
		if attempt >= maxUsernameAttempts {
			return nil, fmt.Errorf("could not generate unique username for %s", base)
		}
		username = fmt.Sprintf("%s_%d", base, attempt)
	}
}

func (s *AuthService) issueTokens(ctx context.Context, user *model.User) (*model.LoginResponse, error) {
	accessToken, err := s.codec.IssueAccessToken(user.Username, user.ID)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.codec.IssueRefreshToken(user.Username, user.ID)
	if err != nil {
		return nil, err
	}

	// 저장 실패 시 부분 성공을 돌려주지 않는다 - 클라이언트는 처음부터 재시도
	if err := s.sessions.PutRefreshToken(ctx, user.Username, refreshToken, s.codec.RefreshTTL()); err != nil {
		return nil, err
	}

	return &model.LoginResponse{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		ExpiresIn:        int64(s.codec.AccessTTL().Seconds()),
		RefreshExpiresIn: int64(s.codec.RefreshTTL().Seconds()),
		UserInfo:         model.UserInfoFromEntity(user),
	}, nil
}

func validateCredentials(username, password string) error {
	if len(username) < minUsernameLength || len(username) > maxUsernameLength {
		return ErrInvalidInput
	}
	if len(password) < minPasswordLength || len(password) > maxPasswordLength {
		return ErrInvalidInput
	}
	return nil
}

func mapDuplicateError(err error) error {
	switch {
	case errors.Is(err, db.ErrDuplicateUsername):
		return ErrDuplicateUsername
	case errors.Is(err, db.ErrDuplicateEmail):
		return ErrDuplicateEmail
	case errors.Is(err, db.ErrDuplicatePhone):
		return ErrDuplicatePhone
	}
	return err
}
