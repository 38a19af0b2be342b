package service

import (
	"context"
	"database/sql"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/ssis-api/internal/models"
)

type mockUserRepo struct {
	users     map[string]*models.User
	createErr error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*models.User)}
}

func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	user, ok := m.users[username]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return user, nil
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	user.ID = uuid.NewString()
	m.users[user.Username] = user
	return nil
}

func newTestAuthService(repo *mockUserRepo) *AuthService {
	return NewAuthService(repo, nil, zap.NewNop(), AuthConfig{
		AccessTokenSecret: "secret",
		AccessTokenExpiry: time.Hour,
		Issuer:            "ssis-api",
		BcryptCost:        bcrypt.MinCost,
	})
}

func TestAuthServiceRegisterAndLogin(t *testing.T) {
	repo := newMockUserRepo()
	svc := newTestAuthService(repo)

	registered, err := svc.Register(context.Background(), models.RegisterRequest{Username: "alice", Password: "pw123"})
	require.NoError(t, err)
	assert.Equal(t, "Account created", registered.Message)
	assert.NotEmpty(t, registered.UserID)
	assert.NotEqual(t, "pw123", repo.users["alice"].PasswordHash)

	_, err = svc.Login(context.Background(), models.LoginRequest{Username: "alice", Password: "wrong"})
	requireStatus(t, err, http.StatusUnauthorized, "Invalid username or password")

	res, err := svc.Login(context.Background(), models.LoginRequest{Username: "alice", Password: "pw123"})
	require.NoError(t, err)
	require.NotEmpty(t, res.AccessToken)

	claims, err := svc.ValidateToken(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, registered.UserID, claims.Subject)
	assert.Equal(t, registered.UserID, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
}

func TestAuthServiceRegisterDuplicate(t *testing.T) {
	repo := newMockUserRepo()
	svc := newTestAuthService(repo)

	_, err := svc.Register(context.Background(), models.RegisterRequest{Username: "alice", Password: "pw123"})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), models.RegisterRequest{Username: "alice", Password: "other"})
	requireStatus(t, err, http.StatusBadRequest, "Username already exists")
}

func TestAuthServiceRegisterUniqueViolation(t *testing.T) {
	repo := newMockUserRepo()
	repo.createErr = &pq.Error{Code: "23505", Constraint: "users_username_key"}
	svc := newTestAuthService(repo)

	_, err := svc.Register(context.Background(), models.RegisterRequest{Username: "bob", Password: "pw"})
	requireStatus(t, err, http.StatusBadRequest, "Username already exists")
}

func TestAuthServiceMissingCredentials(t *testing.T) {
	svc := newTestAuthService(newMockUserRepo())

	_, err := svc.Register(context.Background(), models.RegisterRequest{Username: "alice"})
	requireStatus(t, err, http.StatusBadRequest, "Missing username or password")

	_, err = svc.Login(context.Background(), models.LoginRequest{Password: "pw"})
	requireStatus(t, err, http.StatusBadRequest, "Missing username or password")
}

func TestAuthServiceLoginUnknownUser(t *testing.T) {
	svc := newTestAuthService(newMockUserRepo())

	_, err := svc.Login(context.Background(), models.LoginRequest{Username: "ghost", Password: "pw"})
	requireStatus(t, err, http.StatusUnauthorized, "Invalid username or password")
}

func TestAuthServiceValidateTokenRejects(t *testing.T) {
	svc := newTestAuthService(newMockUserRepo())

	_, err := svc.ValidateToken("not-a-token")
	requireStatus(t, err, http.StatusUnauthorized, "invalid token")

	other := jwt.NewWithClaims(jwt.SigningMethodHS256, &models.JWTClaims{
		UserID: "u1",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "ssis-api",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := other.SignedString([]byte("another-secret"))
	require.NoError(t, err)
	_, err = svc.ValidateToken(signed)
	requireStatus(t, err, http.StatusUnauthorized, "invalid token")

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, &models.JWTClaims{
		UserID: "u1",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "ssis-api",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})
	signed, err = expired.SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = svc.ValidateToken(signed)
	requireStatus(t, err, http.StatusUnauthorized, "invalid token")
}
