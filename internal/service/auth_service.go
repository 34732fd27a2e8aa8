package service

import (
	"context"
	"fmt"

	"github.com/knowledge-base-api/internal/auth"
	"github.com/knowledge-base-api/internal/models"
	"github.com/knowledge-base-api/internal/repository"
	"github.com/rs/zerolog"
)

// authService is the concrete implementation of AuthService
type authService struct {
	users  repository.UserRepository
	hasher *auth.PasswordHasher
	tokens *auth.TokenManager
	log    zerolog.Logger
}

// newAuthService creates a new AuthService
func newAuthService(users repository.UserRepository, hasher *auth.PasswordHasher, tokens *auth.TokenManager, log zerolog.Logger) *authService {
	return &authService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		log:    log.With().Str("service", "auth").Logger(),
	}
}

// Register creates an account and returns it with a fresh session
// token. The role defaults to user; elevated roles must be granted
// explicitly by an admin afterwards unless supplied at creation by one.
func (s *authService) Register(ctx context.Context, input *models.RegisterInput) (*models.User, string, error) {
	exists, err := s.users.EmailExists(ctx, input.Email)
	if err != nil {
		return nil, "", fmt.Errorf("checking email: %w", err)
	}
	if exists {
		return nil, "", fmt.Errorf("email %s: %w", input.Email, ErrDuplicate)
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, "", err
	}

	role := input.Role
	if role == "" {
		role = models.RoleUser
	}

	user := &models.User{
		Email:        input.Email,
		PasswordHash: hash,
		Name:         input.Name,
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("creating user: %w", err)
	}

	token, err := s.tokens.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, "", err
	}

	s.log.Info().Int64("user_id", user.ID).Str("role", user.Role).Msg("User registered")
	return user, token, nil
}

// Login verifies credentials and returns the user with a session token.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *authService) Login(ctx context.Context, input *models.LoginInput) (*models.User, string, error) {
	user, err := s.users.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, "", fmt.Errorf("looking up user: %w", err)
	}
	if user == nil {
		return nil, "", ErrBadCredentials
	}
	if err := s.hasher.Compare(user.PasswordHash, input.Password); err != nil {
		return nil, "", ErrBadCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, "", err
	}

	s.log.Info().Int64("user_id", user.ID).Msg("User logged in")
	return user, token, nil
}

// Verify parses and validates a session token
func (s *authService) Verify(ctx context.Context, token string) (*auth.Claims, error) {
	return s.tokens.Verify(token)
}
