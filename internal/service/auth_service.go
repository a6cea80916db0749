package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"travel_booking/internal/metrics"
	"travel_booking/internal/model"
	"travel_booking/internal/repository"
	"travel_booking/internal/utils"

	"github.com/rs/zerolog"
)

// AuthService provides authentication related services
type AuthService interface {
	Signup(ctx context.Context, req model.SignupRequest) (*model.User, error)
	Login(ctx context.Context, email, password string) (*model.LoginResponse, error)
	// CreateAdmin registers an admin account directly, bypassing signup.
	CreateAdmin(ctx context.Context, username, email, password string) (*model.User, error)
}

type authService struct {
	userRepo          repository.UserRepository
	jwtUtil           *utils.JWTUtil
	initialAdminEmail string
}

// NewAuthService creates a new AuthService. The account whose email equals
// initialAdminEmail is created as admin; every other signup is a customer.
func NewAuthService(userRepo repository.UserRepository, jwtUtil *utils.JWTUtil, initialAdminEmail string) AuthService {
	return &authService{
		userRepo:          userRepo,
		jwtUtil:           jwtUtil,
		initialAdminEmail: strings.TrimSpace(initialAdminEmail),
	}
}

// Signup creates a new user account
func (s *authService) Signup(ctx context.Context, req model.SignupRequest) (*model.User, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)
	if username == "" || email == "" || req.Password == "" {
		return nil, model.NewValidationError("Username, email, and password are required")
	}

	role := model.RoleCustomer
	if s.initialAdminEmail != "" && strings.EqualFold(email, s.initialAdminEmail) {
		role = model.RoleAdmin
		zerolog.Ctx(ctx).Info().Str("email", email).Msg("registering initial admin account")
	} else if req.Role != "" && req.Role != model.RoleCustomer {
		zerolog.Ctx(ctx).Warn().Str("email", email).Str("requested_role", req.Role).Msg("ignoring role requested at signup")
	}

	return s.register(ctx, username, email, req.Password, role)
}

func (s *authService) CreateAdmin(ctx context.Context, username, email, password string) (*model.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return nil, model.NewValidationError("Username, email, and password are required")
	}
	return s.register(ctx, username, email, password, model.RoleAdmin)
}

func (s *authService) register(ctx context.Context, username, email, password, role string) (*model.User, error) {
	existingUser, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existingUser != nil {
		return nil, ErrEmailTaken
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// Lost a race with a concurrent signup for the same email.
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user in repository: %w", err)
	}

	metrics.ObserveSignup(role)
	return user, nil
}

// Login authenticates a user and returns a signed token with the user's profile
func (s *authService) Login(ctx context.Context, email, password string) (*model.LoginResponse, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, model.NewValidationError("Email and password are required")
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("error finding user by email: %w", err)
	}
	if user == nil {
		metrics.ObserveLogin("unknown_user")
		return nil, ErrUserNotFound
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		metrics.ObserveLogin("bad_password")
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwtUtil.GenerateToken(utils.Identity{
		UserID:   user.ID.Hex(),
		Role:     user.Role,
		Username: user.Username,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	metrics.ObserveLogin("success")
	return &model.LoginResponse{
		Token:    token,
		Role:     user.Role,
		Username: user.Username,
		UserID:   user.ID.Hex(),
	}, nil
}
