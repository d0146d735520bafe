package service

import (
	"context"
	"strings"

	"github.com/barberoil/fuelpos/internal/domain/entity"
	"github.com/barberoil/fuelpos/internal/domain/repository"
	"github.com/barberoil/fuelpos/pkg/apperror"
	"github.com/barberoil/fuelpos/pkg/utils"
)

// AuthService handles PIN login
type AuthService struct {
	userRepo   repository.UserRepository
	jwtManager *utils.JWTManager
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, jwtManager *utils.JWTManager) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
	}
}

// LoginInput represents login input
type LoginInput struct {
	UserID string
	PIN    string
}

// LoginOutput represents login output
type LoginOutput struct {
	User        LoginUser `json:"user"`
	AccessToken string    `json:"accessToken"`
	ExpiresIn   int64     `json:"expiresIn"`
}

// LoginUser is a user as offered on the login screen
type LoginUser struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// Login selects the user whose id and PIN both match exactly
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	user, err := s.Authenticate(ctx, input.UserID, input.PIN)
	if err != nil {
		return nil, err
	}

	token, err := s.jwtManager.GenerateSessionToken(user.ID, user.Name, user.Role.String())
	if err != nil {
		return nil, apperror.ErrInternalServer
	}

	return &LoginOutput{
		User:        LoginUser{ID: user.ID, Name: user.Name, Role: user.Role.String()},
		AccessToken: token,
		ExpiresIn:   int64(s.jwtManager.Expiry().Seconds()),
	}, nil
}

// Authenticate returns the user matching (userID, pin), or
// ErrInvalidCredentials
func (s *AuthService) Authenticate(ctx context.Context, userID, pin string) (*entity.User, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" || pin == "" {
		return nil, apperror.ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil || user.PIN != pin {
		return nil, apperror.ErrInvalidCredentials
	}
	return user, nil
}

// ListLoginUsers lists the users that can be selected at login, without PINs
func (s *AuthService) ListLoginUsers(ctx context.Context) ([]LoginUser, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]LoginUser, 0, len(users))
	for _, u := range users {
		result = append(result, LoginUser{ID: u.ID, Name: u.Name, Role: u.Role.String()})
	}
	return result, nil
}
