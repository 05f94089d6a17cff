package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tradestreet-api/internal/model"
	"tradestreet-api/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// TokenIssuer signs session tokens.
type TokenIssuer interface {
	Issue(userID string, role model.Role) (string, error)
}

// authService implements AuthService.
type authService struct {
	userRepo         repository.UserRepository
	tokens           TokenIssuer
	allowAdminSignup bool
	hashCost         int
	now              func() time.Time
	newID            func() string
	logger           zerolog.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(userRepo repository.UserRepository, tokens TokenIssuer, allowAdminSignup bool, logger zerolog.Logger) AuthService {
	return &authService{
		userRepo:         userRepo,
		tokens:           tokens,
		allowAdminSignup: allowAdminSignup,
		hashCost:         bcrypt.DefaultCost,
		now:              func() time.Time { return time.Now().UTC() },
		newID:            uuid.NewString,
		logger:           logger.With().Str("service", "auth").Logger(),
	}
}

func normaliseEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Signup registers a new user with an empty cart.
func (s *authService) Signup(ctx context.Context, req *model.SignupRequest) (*model.AuthResponse, error) {
	email := normaliseEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, model.ErrCredentialsRequired
	}

	role := req.Role
	switch {
	case role == "":
		role = model.RoleUser
	case !role.Valid():
		return nil, model.ErrInvalidRole
	case role == model.RoleAdmin && !s.allowAdminSignup:
		s.logger.Warn().Str("email", email).Msg("rejected admin signup")
		return nil, model.ErrAdminSignupDisabled
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if existing != nil {
		return nil, model.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:           s.newID(),
		Name:         strings.TrimSpace(req.Username),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Cart:         model.Cart{},
		CreatedAt:    s.now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, model.ErrEmailTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info().
		Str("user_id", user.ID).
		Str("role", string(user.Role)).
		Msg("user signed up")

	return s.respond(user)
}

// Login verifies the email and password pair.
func (s *authService) Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error) {
	email := normaliseEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, model.ErrCredentialsRequired
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, model.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Debug().Str("user_id", user.ID).Msg("password mismatch")
		return nil, model.ErrInvalidCredentials
	}

	return s.respond(user)
}

func (s *authService) respond(user *model.User) (*model.AuthResponse, error) {
	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &model.AuthResponse{Success: true, Token: token, Role: user.Role}, nil
}
