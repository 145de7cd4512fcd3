package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Catalogo-api/internal/application/dto"
	"github.com/jhoicas/Catalogo-api/internal/domain"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
	"github.com/jhoicas/Catalogo-api/internal/domain/repository"
	"github.com/jhoicas/Catalogo-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro y login de administradores.
type AuthUseCase struct {
	admins  repository.AdminRepository
	jwtCfg  JWTConfig
	timeout time.Duration
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(admins repository.AdminRepository, jwtCfg JWTConfig, timeout time.Duration) *AuthUseCase {
	return &AuthUseCase{admins: admins, jwtCfg: jwtCfg, timeout: timeout}
}

// Register crea un administrador: hashea password con bcrypt, persiste y devuelve un token.
// Devuelve ErrEmailAlreadyExists si el email ya existe.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: email y password son requeridos", domain.ErrInvalidRequest)
	}
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	existing, err := uc.admins.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	admin := &entity.Admin{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := uc.admins.Create(ctx, admin); err != nil {
		return nil, err
	}
	token, err := uc.token(admin)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{Token: token, Message: "User registered successfully"}, nil
}

// Login verifica email/password y genera el JWT.
// ErrUserNotFound si el email no existe; ErrUnauthorized si el password no coincide.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.AuthResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	admin, err := uc.admins.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := uc.token(admin)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{Token: token, Message: "Login successful"}, nil
}

func (uc *AuthUseCase) token(a *entity.Admin) (string, error) {
	return jwt.Generate(uc.jwtCfg.Secret, a.ID, a.Email, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
}
