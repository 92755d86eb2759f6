package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/TogetherPinz/TogetherPinz-BE/internal/config"
	"github.com/TogetherPinz/TogetherPinz-BE/internal/db"
	"github.com/TogetherPinz/TogetherPinz-BE/internal/model"
	"github.com/TogetherPinz/TogetherPinz-BE/internal/oauth2"
	"github.com/TogetherPinz/TogetherPinz-BE/internal/token"
	"github.com/jackc/pgx/v5"
)

// fakeUserRepo - 유니크 제약을 DB와 같은 순서로 흉내내는 인메모리 저장소
type fakeUserRepo struct {
	nextID int64
	users  map[int64]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]*model.User{}}
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	for _, existing := range f.users {
		if existing.Username == user.Username {
			return nil, db.ErrDuplicateUsername
		}
		if user.Phone != nil && existing.Phone != nil && *existing.Phone == *user.Phone {
			return nil, db.ErrDuplicatePhone
		}
		if user.Email != nil && existing.Email != nil && *existing.Email == *user.Email {
			return nil, db.ErrDuplicateEmail
		}
		if user.Provider != nil && existing.Provider != nil &&
			*existing.Provider == *user.Provider && *existing.ProviderID == *user.ProviderID {
			return nil, db.ErrDuplicateProvider
		}
	}
	f.nextID++
	stored := *user
	stored.ID = f.nextID
	stored.CreatedAt = time.Now()
	f.users[stored.ID] = &stored
	return &stored, nil
}

func (f *fakeUserRepo) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email != nil && *u.Email == email {
			return u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) GetUserByProvider(ctx context.Context, provider, providerID string) (*model.User, error) {
	for _, u := range f.users {
		if u.Provider != nil && *u.Provider == provider && *u.ProviderID == providerID {
			return u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) UpdateUserPassword(ctx context.Context, userID int64, passwordHash string) error {
	u, ok := f.users[userID]
	if !ok {
		return pgx.ErrNoRows
	}
	u.PasswordHash = passwordHash
	return nil
}

type fakeSessionStore struct {
	refresh      map[string]string
	blacklisted  map[string]bool
	blacklistErr error
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{refresh: map[string]string{}, blacklisted: map[string]bool{}}
}

func (f *fakeSessionStore) PutRefreshToken(ctx context.Context, username, token string, ttl time.Duration) error {
	f.refresh[username] = token
	return nil
}

func (f *fakeSessionStore) GetRefreshToken(ctx context.Context, username string) (string, error) {
	return f.refresh[username], nil
}

func (f *fakeSessionStore) DeleteRefreshToken(ctx context.Context, username string) error {
	delete(f.refresh, username)
	return nil
}

func (f *fakeSessionStore) Blacklist(ctx context.Context, accessToken string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	f.blacklisted[accessToken] = true
	return nil
}

func (f *fakeSessionStore) IsBlacklisted(ctx context.Context, accessToken string) (bool, error) {
	if f.blacklistErr != nil {
		return false, f.blacklistErr
	}
	return f.blacklisted[accessToken], nil
}

type fakeVerifier struct {
	attrs map[string]any
	err   error
}

func (f *fakeVerifier) Verify(ctx context.Context, rawToken string) (map[string]any, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.attrs, nil
}

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:     "test-secret",
		JWTAccessTTL:  "1h",
		JWTRefreshTTL: "24h",
	}
}

func newTestAuthService(t *testing.T, verifiers map[string]ProviderVerifier) (*AuthService, *fakeUserRepo, *fakeSessionStore) {
	t.Helper()
	repo := newFakeUserRepo()
	sessions := newFakeSessionStore()
	svc, err := NewAuthService(repo, sessions, testAuthConfig(), verifiers)
	if err != nil {
		t.Fatalf("NewAuthService failed: %v", err)
	}
	return svc, repo, sessions
}

func registerUser(t *testing.T, svc *AuthService, username string) {
	t.Helper()
	email := username + "@example.com"
	_, err := svc.Register(context.Background(), model.RegisterRequest{
		Username:        username,
		Password:        "pass1234",
		ConfirmPassword: "pass1234",
		Name:            "테스트",
		Email:           &email,
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
}

func TestRegisterLoginVerifyLogout(t *testing.T) {
	svc, _, _ := newTestAuthService(t, nil)
	ctx := context.Background()
	registerUser(t, svc, "alice")

	resp, err := svc.Login(ctx, model.LoginRequest{Username: "alice", Password: "pass1234"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Fatalf("missing tokens in response")
	}
	if resp.UserInfo.Username != "alice" {
		t.Fatalf("unexpected user info: %+v", resp.UserInfo)
	}

	result := svc.VerifyToken(ctx, resp.AccessToken)
	if !result.Valid || result.Username != "alice" {
		t.Fatalf("expected valid token, got %+v", result)
	}

	svc.Logout(ctx, resp.AccessToken, "alice")

	result = svc.VerifyToken(ctx, resp.AccessToken)
	if result.Valid || result.Reason != "revoked" {
		t.Fatalf("expected revoked after logout, got %+v", result)
	}
}

func TestLogoutRevokesOnlyThatToken(t *testing.T) {
	svc, _, _ := newTestAuthService(t, nil)
	ctx := context.Background()
	registerUser(t, svc, "alice")
	registerUser(t, svc, "bobby")

	aliceResp, err := svc.Login(ctx, model.LoginRequest{Username: "alice", Password: "pass1234"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	bobResp, err := svc.Login(ctx, model.LoginRequest{Username: "bobby", Password: "pass1234"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	svc.Logout(ctx, aliceResp.AccessToken, "alice")

	if result := svc.VerifyToken(ctx, bobResp.AccessToken); !result.Valid {
		t.Fatalf("unrelated token should stay valid, got %+v", result)
	}
}

func TestRegisterPasswordMismatch(t *testing.T) {
	svc, _, _ := newTestAuthService(t, nil)
	_, err := svc.Register(context.Background(), model.RegisterRequest{
		Username:        "alice",
		Password:        "pass1234",
		ConfirmPassword: "other999",
		Name:            "테스트",
	})
	if !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("expected ErrPasswordMismatch, got %v", err)
	}
}

func TestRegisterTrimsUsername(t *testing.T) {
	svc, repo, _ := newTestAuthService(t, nil)
	ctx := context.Background()

	// 공백 패딩으로 길이 검사를 우회할 수 없다
	_, err := svc.Register(ctx, model.RegisterRequest{
		Username:        "  ab  ",
		Password:        "pass1234",
		ConfirmPassword: "pass1234",
		Name:            "테스트",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for padded short username, got %v", err)
	}

	// 유효한 username은 공백이 잘린 형태로 저장된다
	resp, err := svc.Register(ctx, model.RegisterRequest{
		Username:        "  alice  ",
		Password:        "pass1234",
		ConfirmPassword: "pass1234",
		Name:            "테스트",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if resp.Username != "alice" {
		t.Fatalf("expected trimmed username, got %q", resp.Username)
	}
	if _, err := repo.GetUserByUsername(ctx, "alice"); err != nil {
		t.Fatalf("trimmed username not stored: %v", err)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, _, _ := newTestAuthService(t, nil)
	registerUser(t, svc, "alice")

	_, err := svc.Register(context.Background(), model.RegisterRequest{
		Username:        "alice",
		Password:        "pass1234",
		ConfirmPassword: "pass1234",
		Name:            "테스트",
	})
	if !errors.Is(err, ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _ := newTestAuthService(t, nil)
	registerUser(t, svc, "alice")

	_, err := svc.Login(context.Background(), model.LoginRequest{Username: "alice", Password: "wrong999"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginUnknownUser(t *testing.T) {
	svc, _, _ := newTestAuthService(t, nil)
	_, err := svc.Login(context.Background(), model.LoginRequest{Username: "nobody", Password: "pass1234"})
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestRefreshRotationIsSingleUse(t *testing.T) {
	svc, _, _ := newTestAuthService(t, nil)
	ctx := context.Background()
	registerUser(t, svc, "alice")

	loginResp, err := svc.Login(ctx, model.LoginRequest{Username: "alice", Password: "pass1234"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	firstRefresh := loginResp.RefreshToken

	rotated, err := svc.Refresh(ctx, firstRefresh)
	if err != nil {
		t.Fatalf("first refresh failed: %v", err)
	}
	if rotated.RefreshToken == firstRefresh {
		t.Fatalf("refresh token was not rotated")
	}

	// 밀려난 토큰의 재사용은 거절된다
	if _, err := svc.Refresh(ctx, firstRefresh); !errors.Is(err, token.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for stale refresh, got %v", err)
	}

	// 최신 토큰은 계속 쓸 수 있다
	if _, err := svc.Refresh(ctx, rotated.RefreshToken); err != nil {
		t.Fatalf("latest refresh token rejected: %v", err)
	}
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	svc, _, _ := newTestAuthService(t, nil)
	ctx := context.Background()
	registerUser(t, svc, "alice")

	loginResp, err := svc.Login(ctx, model.LoginRequest{Username: "alice", Password: "pass1234"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if _, err := svc.Refresh(ctx, loginResp.AccessToken); !errors.Is(err, ErrWrongTokenType) {
		t.Fatalf("expected ErrWrongTokenType, got %v", err)
	}
}

func TestRefreshMalformedToken(t *testing.T) {
	svc, _, _ := newTestAuthService(t, nil)
	if _, err := svc.Refresh(context.Background(), "not-a-jwt"); !errors.Is(err, token.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestRefreshAfterLogout(t *testing.T) {
	svc, _, _ := newTestAuthService(t, nil)
	ctx := context.Background()
	registerUser(t, svc, "alice")

	loginResp, err := svc.Login(ctx, model.LoginRequest{Username: "alice", Password: "pass1234"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	svc.Logout(ctx, loginResp.AccessToken, "alice")

	if _, err := svc.Refresh(ctx, loginResp.RefreshToken); !errors.Is(err, token.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid after logout, got %v", err)
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	repo := newFakeUserRepo()
	sessions := newFakeSessionStore()
	cfg := testAuthConfig()
	cfg.JWTAccessTTL = "-1m"
	svc, err := NewAuthService(repo, sessions, cfg, nil)
	if err != nil {
		t.Fatalf("NewAuthService failed: %v", err)
	}
	ctx := context.Background()
	registerUser(t, svc, "alice")

	loginResp, err := svc.Login(ctx, model.LoginRequest{Username: "alice", Password: "pass1234"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	result := svc.VerifyToken(ctx, loginResp.AccessToken)
	if result.Valid || result.Reason != "expired" {
		t.Fatalf("expected expired, got %+v", result)
	}
}

func TestVerifyFailsClosedWhenStoreUnavailable(t *testing.T) {
	svc, _, sessions := newTestAuthService(t, nil)
	ctx := context.Background()
	registerUser(t, svc, "alice")

	loginResp, err := svc.Login(ctx, model.LoginRequest{Username: "alice", Password: "pass1234"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	sessions.blacklistErr = errors.New("connection refused")

	result := svc.VerifyToken(ctx, loginResp.AccessToken)
	if result.Valid || result.Reason != "unavailable" {
		t.Fatalf("expected unavailable, got %+v", result)
	}
}

func TestVerifyGarbageToken(t *testing.T) {
	svc, _, _ := newTestAuthService(t, nil)
	result := svc.VerifyToken(context.Background(), "garbage")
	if result.Valid || result.Reason != "invalid" {
		t.Fatalf("expected invalid, got %+v", result)
	}
}

func googleAttrs(sub, email, name string) map[string]any {
	return map[string]any{"sub": sub, "email": email, "name": name}
}

func TestOAuth2LoginCreatesThenReusesAccount(t *testing.T) {
	verifiers := map[string]ProviderVerifier{
		"google": &fakeVerifier{attrs: googleAttrs("123", "alice@gmail.com", "Alice")},
	}
	svc, repo, _ := newTestAuthService(t, verifiers)
	ctx := context.Background()

	first, err := svc.OAuth2Login(ctx, model.OAuth2LoginRequest{Provider: "google", Token: "id-token"})
	if err != nil {
		t.Fatalf("first oauth2 login failed: %v", err)
	}
	if first.UserInfo.Username != "google_123" {
		t.Fatalf("unexpected generated username: %q", first.UserInfo.Username)
	}

	second, err := svc.OAuth2Login(ctx, model.OAuth2LoginRequest{Provider: "google", Token: "id-token"})
	if err != nil {
		t.Fatalf("second oauth2 login failed: %v", err)
	}
	if second.UserInfo.ID != first.UserInfo.ID {
		t.Fatalf("repeat login created a new account: %d vs %d", first.UserInfo.ID, second.UserInfo.ID)
	}
	if len(repo.users) != 1 {
		t.Fatalf("expected 1 account, got %d", len(repo.users))
	}
}

func TestOAuth2UsernameCollisionRetries(t *testing.T) {
	verifiers := map[string]ProviderVerifier{
		"google": &fakeVerifier{attrs: googleAttrs("123", "new@gmail.com", "New")},
	}
	svc, _, _ := newTestAuthService(t, verifiers)
	ctx := context.Background()

	// 생성될 이름을 로컬 계정이 선점한 상태
	registerUser(t, svc, "google_123")

	resp, err := svc.OAuth2Login(ctx, model.OAuth2LoginRequest{Provider: "google", Token: "id-token"})
	if err != nil {
		t.Fatalf("oauth2 login failed: %v", err)
	}
	if resp.UserInfo.Username != "google_123_1" {
		t.Fatalf("expected suffixed username, got %q", resp.UserInfo.Username)
	}
}

func TestOAuth2ProviderConflict(t *testing.T) {
	verifiers := map[string]ProviderVerifier{
		"google": &fakeVerifier{attrs: googleAttrs("123", "shared@example.com", "G")},
		"kakao": &fakeVerifier{attrs: map[string]any{
			"id": float64(777),
			"kakao_account": map[string]any{
				"email":   "shared@example.com",
				"profile": map[string]any{"nickname": "K"},
			},
		}},
	}
	svc, _, _ := newTestAuthService(t, verifiers)
	ctx := context.Background()

	if _, err := svc.OAuth2Login(ctx, model.OAuth2LoginRequest{Provider: "kakao", Token: "t"}); err != nil {
		t.Fatalf("kakao login failed: %v", err)
	}

	_, err := svc.OAuth2Login(ctx, model.OAuth2LoginRequest{Provider: "google", Token: "t"})
	if !errors.Is(err, ErrProviderConflict) {
		t.Fatalf("expected ErrProviderConflict, got %v", err)
	}
}

func TestOAuth2RejectedProviderToken(t *testing.T) {
	verifiers := map[string]ProviderVerifier{
		"google": &fakeVerifier{err: errors.New("token signature mismatch")},
	}
	svc, _, _ := newTestAuthService(t, verifiers)

	_, err := svc.OAuth2Login(context.Background(), model.OAuth2LoginRequest{Provider: "google", Token: "bad"})
	if !errors.Is(err, ErrInvalidProviderToken) {
		t.Fatalf("expected ErrInvalidProviderToken, got %v", err)
	}
}

func TestOAuth2UnsupportedProvider(t *testing.T) {
	svc, _, _ := newTestAuthService(t, nil)
	_, err := svc.OAuth2Login(context.Background(), model.OAuth2LoginRequest{Provider: "github", Token: "t"})
	if !errors.Is(err, oauth2.ErrUnsupportedProvider) {
		t.Fatalf("expected ErrUnsupportedProvider, got %v", err)
	}
}

func TestOAuth2AccountCannotLoginWithPassword(t *testing.T) {
	verifiers := map[string]ProviderVerifier{
		"google": &fakeVerifier{attrs: googleAttrs("123", "alice@gmail.com", "Alice")},
	}
	svc, _, _ := newTestAuthService(t, verifiers)
	ctx := context.Background()

	if _, err := svc.OAuth2Login(ctx, model.OAuth2LoginRequest{Provider: "google", Token: "t"}); err != nil {
		t.Fatalf("oauth2 login failed: %v", err)
	}

	_, err := svc.Login(ctx, model.LoginRequest{Username: "google_123", Password: "anything"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for federated account, got %v", err)
	}
}

func TestResetPassword(t *testing.T) {
	svc, _, _ := newTestAuthService(t, nil)
	ctx := context.Background()
	registerUser(t, svc, "alice")

	err := svc.ResetPassword(ctx, model.ResetPasswordRequest{
		Username:    "alice",
		Email:       "alice@example.com",
		NewPassword: "newpass99",
	})
	if err != nil {
		t.Fatalf("reset failed: %v", err)
	}

	if _, err := svc.Login(ctx, model.LoginRequest{Username: "alice", Password: "pass1234"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("old password should be rejected, got %v", err)
	}
	if _, err := svc.Login(ctx, model.LoginRequest{Username: "alice", Password: "newpass99"}); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}
}

func TestResetPasswordEmailMismatch(t *testing.T) {
	svc, _, _ := newTestAuthService(t, nil)
	registerUser(t, svc, "alice")

	err := svc.ResetPassword(context.Background(), model.ResetPasswordRequest{
		Username:    "alice",
		Email:       "stranger@example.com",
		NewPassword: "newpass99",
	})
	if !errors.Is(err, ErrEmailMismatch) {
		t.Fatalf("expected ErrEmailMismatch, got %v", err)
	}
}
