package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/camereta/studio-booking/internal/model"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

const tokenTTL = 7 * 24 * time.Hour

type AdminStore interface {
	GetByEmail(ctx context.Context, email string) (*model.AdminUser, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.AdminUser, error)
}

// Service issues and verifies admin bearer tokens. The booking core itself
// never checks authorization; the HTTP layer guards admin routes with this.
type Service struct {
	admins AdminStore
	secret []byte
	logger *zap.Logger
}

func NewService(admins AdminStore, secret []byte, logger *zap.Logger) *Service {
	return &Service{admins: admins, secret: secret, logger: logger}
}

// Login checks the password against the stored bcrypt hash and returns a
// signed token. Unknown email and wrong password are indistinguishable to
// the caller.
func (s *Service) Login(ctx context.Context, email, password string) (string, *model.AdminUser, error) {
	admin, err := s.admins.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, fmt.Errorf("get admin: %w", err)
	}
	if admin == nil {
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	claims := jwt.MapClaims{
		"sub":   admin.ID.String(),
		"email": admin.Email,
		"name":  admin.Name,
		"exp":   time.Now().Add(tokenTTL).Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}

	s.logger.Info("Admin logged in", zap.String("email", admin.Email))

	return token, admin, nil
}

// Verify validates a bearer token and resolves the admin it names.
func (s *Service) Verify(ctx context.Context, tokenString string) (*model.AdminUser, error) {
	parsed, err := jwt.Parse(tokenString, func(_ *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	sub, err := parsed.Claims.GetSubject()
	if err != nil {
		return nil, ErrInvalidToken
	}

	id, err := uuid.Parse(sub)
	if err != nil {
		return nil, ErrInvalidToken
	}

	admin, err := s.admins.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get admin: %w", err)
	}
	if admin == nil {
		return nil, ErrInvalidToken
	}

	return admin, nil
}
