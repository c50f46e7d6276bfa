package auth

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/clinicaustral/clinica-api/pkg/errors"

	"github.com/clinicaustral/clinica-api/internal/model"
	"github.com/clinicaustral/clinica-api/internal/repository"
	"github.com/clinicaustral/clinica-api/pkg/auth"
	"github.com/clinicaustral/clinica-api/pkg/rut"
)

const (
	maxLoginAttempts = 5
	lockoutDuration  = 15 * time.Minute
	bcryptCost       = 12
)

type Service struct {
	usuarioRepo repository.UsuarioRepository
	jwtSvc      auth.JWTService
	tokenExpiry time.Duration
}

func NewService(usuarioRepo repository.UsuarioRepository, jwtSvc auth.JWTService, tokenExpiry time.Duration) *Service {
	return &Service{
		usuarioRepo: usuarioRepo,
		jwtSvc:      jwtSvc,
		tokenExpiry: tokenExpiry,
	}
}

// HashPassword hashes a plaintext password for storage.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Login authenticates by RUT and password. Failed attempts count toward
// a temporary lockout; the caller cannot tell a bad password from an
// unknown RUT.
func (s *Service) Login(ctx context.Context, req *model.LoginRequest) (*model.TokenResponse, error) {
	user, err := s.usuarioRepo.GetByRut(ctx, rut.Normalize(req.Rut))
	if err != nil {
		return nil, apperrors.Unauthorized(fmt.Errorf("credenciales inválidas"))
	}

	if !user.Activo {
		return nil, apperrors.Unauthorized(fmt.Errorf("cuenta desactivada"))
	}

	if user.FailedLoginAttempts >= maxLoginAttempts && user.LastLoginAttempt != nil {
		if time.Since(*user.LastLoginAttempt) < lockoutDuration {
			return nil, apperrors.Unauthorized(fmt.Errorf("cuenta bloqueada, intente más tarde"))
		}
		user.FailedLoginAttempts = 0
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		user.FailedLoginAttempts++
		now := time.Now()
		user.LastLoginAttempt = &now

		if err := s.usuarioRepo.Update(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to update login attempts: %w", err)
		}
		return nil, apperrors.Unauthorized(fmt.Errorf("credenciales inválidas"))
	}

	user.FailedLoginAttempts = 0
	now := time.Now()
	user.LastLoginAt = &now
	if err := s.usuarioRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update login timestamp: %w", err)
	}

	token, err := s.jwtSvc.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &model.TokenResponse{
		AccessToken: token,
		Role:        user.Role,
		ExpiresAt:   now.Add(s.tokenExpiry),
	}, nil
}

// ValidateToken verifies a token and confirms the account is still
// active; a token outlives neither deactivation nor deletion.
func (s *Service) ValidateToken(ctx context.Context, token string) (*auth.Claims, error) {
	claims, err := s.jwtSvc.ValidateToken(token)
	if err != nil {
		return nil, apperrors.Unauthorized(err)
	}

	user, err := s.usuarioRepo.Get(ctx, claims.UserID)
	if err != nil {
		return nil, apperrors.Unauthorized(fmt.Errorf("cuenta no encontrada"))
	}
	if !user.Activo {
		return nil, apperrors.Unauthorized(fmt.Errorf("cuenta desactivada"))
	}

	return claims, nil
}
