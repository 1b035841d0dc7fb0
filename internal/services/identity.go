package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/civicdesk/complaint-server/internal/models"
	"github.com/civicdesk/complaint-server/internal/repository"
	"github.com/civicdesk/complaint-server/internal/workflow"
)

// IdentityService resolves and manages actor identities: registration,
// login and token minting. New accounts always start as USER; staff roles
// are granted out of band or through the promotion workflow.
type IdentityService struct {
	users      repository.UserRepository
	jwtSecret  []byte
	tokenTTL   time.Duration
	bcryptCost int
	logger     *zap.SugaredLogger
}

// NewIdentityService creates a new identity service.
func NewIdentityService(users repository.UserRepository, jwtSecret string, tokenTTL time.Duration, bcryptCost int, logger *zap.SugaredLogger) *IdentityService {
	return &IdentityService{
		users:      users,
		jwtSecret:  []byte(jwtSecret),
		tokenTTL:   tokenTTL,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// Register creates a USER account and returns it with a fresh token.
func (s *IdentityService) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, workflow.Validationf("a valid email is required")
	}
	if strings.TrimSpace(req.FullName) == "" {
		return nil, workflow.Validationf("full name is required")
	}
	if len(req.Password) < 8 {
		return nil, workflow.Validationf("password must be at least 8 characters")
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, workflow.Validationf("email is already registered")
	} else if !errors.Is(err, workflow.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &models.User{
		ID:           uuid.New(),
		Email:        email,
		FullName:     req.FullName,
		Role:         workflow.RoleUser,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}

	s.logger.Infow("Account registered", "id", u.ID, "email", email)
	return s.respondWithToken(u)
}

// Login authenticates by email and password.
func (s *IdentityService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	u, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, workflow.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", workflow.ErrUnauthorized)
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		return nil, fmt.Errorf("%w: invalid credentials", workflow.ErrUnauthorized)
	}

	s.logger.Infow("Login", "id", u.ID, "role", u.Role)
	return s.respondWithToken(u)
}

func (s *IdentityService) respondWithToken(u *models.User) (*models.AuthResponse, error) {
	claims := jwt.MapClaims{
		"sub":  u.ID.String(),
		"role": string(u.Role),
		"name": u.FullName,
		"exp":  time.Now().Add(s.tokenTTL).Unix(),
		"iat":  time.Now().Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &models.AuthResponse{Token: token, User: *u}, nil
}
