package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ideaboard/internal/auth"
	apperrors "ideaboard/internal/errors"
	"ideaboard/internal/model"
	"ideaboard/internal/repository"
)

var (
	errNoRefreshToken      = apperrors.Unauthorized("No refresh token")
	errInvalidRefreshToken = apperrors.Unauthorized("Invalid refresh token")
	errRefreshUserMissing  = apperrors.Unauthorized("No user")
)

// AuthResult is what a successful register, login or refresh hands back.
// RefreshToken is empty after a refresh: refresh tokens are not rotated.
type AuthResult struct {
	AccessToken  string
	RefreshToken string
	User         model.Identity
}

// AuthService handles authentication operations.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (*AuthResult, error)
	// Authenticate resolves an access token to the identity of an existing user.
	Authenticate(ctx context.Context, accessToken string) (*model.Identity, error)
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

// Register creates a new user and issues a token pair for it.
func (s *authService) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	email = model.NormalizeEmail(email)

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, apperrors.ErrConflict
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	user := &model.User{
		Name:     name,
		Email:    email,
		Password: password,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		switch {
		case errors.Is(err, gorm.ErrDuplicatedKey):
			return nil, apperrors.ErrConflict
		case errors.Is(err, model.ErrPasswordTooShort):
			return nil, apperrors.Validation("Password must be at least 6 characters")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return s.issuePair(user)
}

// Login authenticates a user by email and password and issues a token pair.
// Unknown email and wrong password fail identically.
func (s *authService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, model.NormalizeEmail(email))
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("find user: %w", err)
		}
		model.BurnPasswordCheck(password)
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.MatchPassword(password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.issuePair(user)
}

// Refresh validates a refresh token and returns a new access token.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	if refreshToken == "" {
		return nil, errNoRefreshToken
	}

	claims, err := s.jwtService.Verify(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidRefreshToken, err)
	}

	user, err := s.lookupClaimedUser(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errRefreshUserMissing
		}
		return nil, err
	}

	accessToken, err := s.jwtService.GenerateAccessToken(user.ID.String())
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	return &AuthResult{
		AccessToken: accessToken,
		User:        user.Identity(),
	}, nil
}

// Authenticate verifies an access token and loads the user it names.
// Every failure is reported as unauthorized.
func (s *authService) Authenticate(ctx context.Context, accessToken string) (*model.Identity, error) {
	claims, err := s.jwtService.Verify(accessToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUnauthorized, err)
	}

	user, err := s.lookupClaimedUser(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUnauthorized, err)
	}

	identity := user.Identity()
	return &identity, nil
}

func (s *authService) lookupClaimedUser(ctx context.Context, userID string) (*model.User, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

func (s *authService) issuePair(user *model.User) (*AuthResult, error) {
	userID := user.ID.String()

	accessToken, err := s.jwtService.GenerateAccessToken(userID)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	refreshToken, err := s.jwtService.GenerateRefreshToken(userID)
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	return &AuthResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user.Identity(),
	}, nil
}
