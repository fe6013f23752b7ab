package service

import (
	"context"
	"testing"

	"github.com/abdobody2040/PharmStockHub/internal/config"
	"github.com/abdobody2040/PharmStockHub/internal/dto"
	"github.com/abdobody2040/PharmStockHub/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthFixture(t *testing.T) (AuthService, *stubUserRepo) {
	t.Helper()
	users := newStubUserRepo()
	cfg := &config.Config{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 1,
		JWTRefreshHours:    24,
	}
	return NewAuthService(users, cfg), users
}

func seedAccount(t *testing.T, users *stubUserRepo, username, password, role string) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := &model.User{
		Username:     username,
		Name:         username,
		PasswordHash: string(hash),
		Role:         role,
		Active:       true,
	}
	require.NoError(t, users.Create(context.Background(), u))
	return u
}

func TestLogin_Success(t *testing.T) {
	svc, users := newAuthFixture(t)
	seedAccount(t, users, "rep1", "hunter22", model.RoleMedicalRep)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Username: "rep1", Password: "hunter22"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 3600, resp.ExpiresIn)
	assert.Equal(t, model.RoleMedicalRep, resp.User.Role)

	// Token must carry the role claim used by the permission middleware
	token, err := jwt.Parse(resp.AccessToken, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, model.RoleMedicalRep, claims["role"])
	assert.Equal(t, "rep1", claims["username"])
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, users := newAuthFixture(t)
	seedAccount(t, users, "rep1", "hunter22", model.RoleMedicalRep)

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "rep1", Password: "wrong"})
	require.Error(t, err)
}

func TestLogin_UnknownOrInactiveUser(t *testing.T) {
	svc, users := newAuthFixture(t)
	u := seedAccount(t, users, "gone", "hunter22", model.RoleAdmin)
	require.NoError(t, users.SoftDelete(context.Background(), u.ID))

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "nobody", Password: "x"})
	require.Error(t, err)
	_, err = svc.Login(context.Background(), dto.LoginRequest{Username: "gone", Password: "hunter22"})
	require.Error(t, err)
}

func TestRefresh_IssuesNewPair(t *testing.T) {
	svc, users := newAuthFixture(t)
	seedAccount(t, users, "mgr", "hunter22", model.RoleStockManager)

	login, err := svc.Login(context.Background(), dto.LoginRequest{Username: "mgr", Password: "hunter22"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, "mgr", refreshed.User.Username)
}

func TestRefresh_RejectsGarbageAndDeactivated(t *testing.T) {
	svc, users := newAuthFixture(t)
	u := seedAccount(t, users, "mgr", "hunter22", model.RoleStockManager)

	_, err := svc.Refresh(context.Background(), "not.a.token")
	require.Error(t, err)

	login, err := svc.Login(context.Background(), dto.LoginRequest{Username: "mgr", Password: "hunter22"})
	require.NoError(t, err)
	require.NoError(t, users.SoftDelete(context.Background(), u.ID))

	_, err = svc.Refresh(context.Background(), login.RefreshToken)
	require.Error(t, err, "deactivated accounts must not refresh")
}

func TestCreateUser_HashesPassword(t *testing.T) {
	svc, users := newAuthFixture(t)

	resp, err := svc.CreateUser(context.Background(), dto.CreateUserRequest{
		Username: "newrep",
		Name:     "New Rep",
		Password: "s3cret99",
		Role:     model.RoleMedicalRep,
	})
	require.NoError(t, err)
	assert.True(t, resp.Active)

	stored, err := users.FindByUsername(context.Background(), "newrep")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret99", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cret99")))
}

func TestDeactivateReactivate(t *testing.T) {
	svc, users := newAuthFixture(t)
	u := seedAccount(t, users, "rep1", "hunter22", model.RoleMedicalRep)

	require.NoError(t, svc.DeactivateUser(context.Background(), u.ID))
	active, err := svc.ListUsers(context.Background(), false)
	require.NoError(t, err)
	assert.Empty(t, active)

	all, err := svc.ListUsers(context.Background(), true)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, svc.ReactivateUser(context.Background(), u.ID))
	active, err = svc.ListUsers(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, active, 1)
}
