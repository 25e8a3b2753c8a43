package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/podocentro/clinic-api/internal/model"
	"github.com/podocentro/clinic-api/internal/repository"
	"github.com/podocentro/clinic-api/pkg/auth"
	apperrors "github.com/podocentro/clinic-api/pkg/errors"
	"github.com/podocentro/clinic-api/pkg/security"
)

type Service struct {
	userRepo repository.UserRepository
	jwt      auth.JWTService
	hasher   security.PasswordHasher
}

func NewService(userRepo repository.UserRepository, jwt auth.JWTService, hasher security.PasswordHasher) *Service {
	return &Service{userRepo: userRepo, jwt: jwt, hasher: hasher}
}

// Login verifies credentials and issues an access/refresh token pair. Wrong
// email and wrong password both come back as the same unauthorized error.
func (s *Service) Login(ctx context.Context, req *model.LoginRequest) (*model.TokenResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.Unauthorized(errors.New("invalid credentials"))
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		return nil, apperrors.Unauthorized(errors.New("invalid credentials"))
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := s.userRepo.Update(ctx, user); err != nil {
		log.Warn().Err(err).Str("user_id", user.ID.String()).Msg("failed to record last login")
	}

	return s.issueTokens(user)
}

// Refresh exchanges a valid refresh token for a fresh pair. The user is
// re-read so revoked accounts stop refreshing immediately.
func (s *Service) Refresh(ctx context.Context, req *model.RefreshTokenRequest) (*model.TokenResponse, error) {
	claims, err := s.jwt.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, apperrors.Unauthorized(err)
	}

	user, err := s.userRepo.Get(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.Unauthorized(errors.New("user no longer exists"))
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	return s.issueTokens(user)
}

// ValidateToken checks an access token and returns its claims.
func (s *Service) ValidateToken(token string) (*model.TokenClaims, error) {
	claims, err := s.jwt.ValidateToken(token)
	if err != nil {
		return nil, apperrors.Unauthorized(err)
	}
	return claims, nil
}

func (s *Service) issueTokens(user *model.User) (*model.TokenResponse, error) {
	access, err := s.jwt.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refresh, err := s.jwt.GenerateRefreshToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return &model.TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         user,
	}, nil
}
