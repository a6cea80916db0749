package service

import (
	"context"
	"errors"
	"testing"

	"travel_booking/internal/model"
	"travel_booking/internal/repository"
	"travel_booking/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newAuthService(t *testing.T, adminEmail string) (AuthService, *utils.JWTUtil, repository.UserRepository) {
	t.Helper()
	users := repository.NewMemoryStore().Users
	jwtUtil := utils.NewJWTUtil("test-secret", 24)
	return NewAuthService(users, jwtUtil, adminEmail), jwtUtil, users
}

func TestAuthService_SignupCreatesCustomer(t *testing.T) {
	svc, _, users := newAuthService(t, "")
	ctx := context.Background()

	user, err := svc.Signup(ctx, model.SignupRequest{Username: "asha", Email: " asha@example.com ", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, model.RoleCustomer, user.Role)
	assert.Equal(t, "asha@example.com", user.Email)
	assert.NotEqual(t, "pw", user.PasswordHash)
	assert.True(t, utils.CheckPasswordHash("pw", user.PasswordHash))

	stored, err := users.FindByEmail(ctx, "asha@example.com")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, user.ID, stored.ID)
}

func TestAuthService_SignupIgnoresRequestedAdminRole(t *testing.T) {
	svc, _, _ := newAuthService(t, "")

	user, err := svc.Signup(context.Background(), model.SignupRequest{Username: "mallory", Email: "m@example.com", Password: "pw", Role: model.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, model.RoleCustomer, user.Role)
}

func TestAuthService_SignupInitialAdmin(t *testing.T) {
	svc, _, _ := newAuthService(t, "Boss@Example.com")

	user, err := svc.Signup(context.Background(), model.SignupRequest{Username: "boss", Email: "boss@example.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, user.Role)
}

func TestAuthService_SignupDuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthService(t, "")
	ctx := context.Background()
	req := model.SignupRequest{Username: "asha", Email: "asha@example.com", Password: "pw"}

	_, err := svc.Signup(ctx, req)
	require.NoError(t, err)
	_, err = svc.Signup(ctx, req)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

// racingUserRepo reports no existing user but rejects the insert, as a
// concurrent signup would.
type racingUserRepo struct{ repository.UserRepository }

func (racingUserRepo) FindByEmail(context.Context, string) (*model.User, error) { return nil, nil }
func (racingUserRepo) Create(context.Context, *model.User) error {
	return errors.Join(errors.New("insert failed"), repository.ErrDuplicateKey)
}

func TestAuthService_SignupLostRaceIsConflict(t *testing.T) {
	svc := NewAuthService(racingUserRepo{}, utils.NewJWTUtil("s", 1), "")

	_, err := svc.Signup(context.Background(), model.SignupRequest{Username: "a", Email: "a@example.com", Password: "pw"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthService_SignupValidation(t *testing.T) {
	svc, _, _ := newAuthService(t, "")

	_, err := svc.Signup(context.Background(), model.SignupRequest{Username: "  ", Email: "a@example.com", Password: "pw"})
	var vErr *model.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "Username, email, and password are required", vErr.Message)
}

func TestAuthService_Login(t *testing.T) {
	svc, jwtUtil, _ := newAuthService(t, "")
	ctx := context.Background()
	user, err := svc.Signup(ctx, model.SignupRequest{Username: "asha", Email: "asha@example.com", Password: "pw"})
	require.NoError(t, err)

	resp, err := svc.Login(ctx, "asha@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, model.RoleCustomer, resp.Role)
	assert.Equal(t, "asha", resp.Username)
	assert.Equal(t, user.ID.Hex(), resp.UserID)

	claims, err := jwtUtil.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), claims.UserID)
	assert.Equal(t, model.RoleCustomer, claims.Role)
	assert.Equal(t, "asha", claims.Username)
}

func TestAuthService_LoginFailures(t *testing.T) {
	svc, _, _ := newAuthService(t, "")
	ctx := context.Background()
	_, err := svc.Signup(ctx, model.SignupRequest{Username: "asha", Email: "asha@example.com", Password: "pw"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, "ghost@example.com", "pw")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = svc.Login(ctx, "asha@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "", "pw")
	var vErr *model.ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestAuthService_CreateAdmin(t *testing.T) {
	svc, _, _ := newAuthService(t, "")
	ctx := context.Background()

	user, err := svc.CreateAdmin(ctx, "root", "root@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, user.Role)
	assert.NotEqual(t, primitive.NilObjectID, user.ID)

	_, err = svc.CreateAdmin(ctx, "root", "root@example.com", "pw")
	assert.ErrorIs(t, err, ErrEmailTaken)
}
