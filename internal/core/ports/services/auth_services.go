package services

import (
	"context"

	"github.com/georgeperezsalinas/siscont-erp-sub002/internal/dto"
)

// AuthSvcFacade defines authentication operations
type AuthSvcFacade interface {
	// Login verifies credentials and issues a signed access token.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error)

	// Register creates a user account and issues a signed access token.
	Register(ctx context.Context, req dto.RegisterUserRequest) (*dto.AuthResponse, error)
}
