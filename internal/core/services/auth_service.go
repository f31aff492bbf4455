package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/georgeperezsalinas/siscont-erp-sub002/internal/apperrors"
	portssvc "github.com/georgeperezsalinas/siscont-erp-sub002/internal/core/ports/services"
	"github.com/georgeperezsalinas/siscont-erp-sub002/internal/dto"
	"github.com/georgeperezsalinas/siscont-erp-sub002/internal/middleware"
	"github.com/georgeperezsalinas/siscont-erp-sub002/internal/utils"
)

// AuthConfig carries the token signing parameters.
type AuthConfig struct {
	JWTSecret      string
	JWTIssuer      string
	TokenExpiryMin int
}

// authService provides login and registration.
type authService struct {
	userSvc portssvc.UserSvcFacade
	cfg     AuthConfig
}

// NewAuthService creates a new AuthService.
func NewAuthService(userSvc portssvc.UserSvcFacade, cfg AuthConfig) portssvc.AuthSvcFacade {
	return &authService{userSvc: userSvc, cfg: cfg}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

func (s *authService) issueToken(user dto.UserResponse) (*dto.AuthResponse, error) {
	expiry := time.Duration(s.cfg.TokenExpiryMin) * time.Minute
	token, err := utils.GenerateAccessToken(user.UserID, s.cfg.JWTSecret, s.cfg.JWTIssuer, expiry)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}
	return &dto.AuthResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(expiry.Seconds()),
		User:        user,
	}, nil
}

// Login verifies credentials and issues a signed access token.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userSvc.GetUserByUsername(ctx, req.Username)
	if err != nil {
		// Same error for unknown user and bad password.
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: account is disabled", apperrors.ErrUnauthorized)
	}
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		logger.Warn("failed login attempt", slog.String("username", req.Username))
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	}

	return s.issueToken(dto.ToUserResponse(user))
}

// Register creates a user account and issues a signed access token.
func (s *authService) Register(ctx context.Context, req dto.RegisterUserRequest) (*dto.AuthResponse, error) {
	user, err := s.userSvc.CreateUser(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.issueToken(dto.ToUserResponse(user))
}
