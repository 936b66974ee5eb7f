package authService

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/lribeiro/taskboard/internal/config"
	"github.com/lribeiro/taskboard/internal/logger"
	"github.com/lribeiro/taskboard/internal/models"
	"github.com/lribeiro/taskboard/internal/store"
	"github.com/lribeiro/taskboard/internal/taskerr"
	"github.com/lribeiro/taskboard/pkg/utils"
)

// Service handles registration, login and token issuance.
type Service struct {
	users    store.UserStore
	secret   []byte
	tokenTTL time.Duration
	log      *logger.Logger
}

func NewService(users store.UserStore, cfg config.JWTConfig, log *logger.Logger) *Service {
	return &Service{
		users:    users,
		secret:   []byte(cfg.Secret),
		tokenTTL: cfg.TokenTTL,
		log:      log,
	}
}

type SignupInput struct {
	Email         string `json:"email"`
	Password      string `json:"password"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	ContactNumber string `json:"contact_number"`
}

// Signup registers a new user and returns the user with a fresh token.
func (s *Service) Signup(ctx context.Context, in SignupInput) (models.User, string, error) {
	in.Email = strings.TrimSpace(in.Email)
	if in.Email == "" || in.Password == "" {
		return models.User{}, "", taskerr.Validationf("email and password are required")
	}

	hashedPassword, err := utils.HashPassword(in.Password)
	if err != nil {
		return models.User{}, "", err
	}

	user, err := s.users.Create(ctx, models.User{
		Email:         in.Email,
		FirstName:     in.FirstName,
		LastName:      in.LastName,
		ContactNumber: in.ContactNumber,
	}, hashedPassword)
	if err != nil {
		return models.User{}, "", err
	}

	token, err := s.GenerateToken(user)
	if err != nil {
		return models.User{}, "", err
	}

	s.log.WithContext(ctx).Info("User registered", "user_id", user.UserID)
	return user, token, nil
}

// Login authenticates a user by email and password.
func (s *Service) Login(ctx context.Context, email, password string) (models.User, string, error) {
	if email == "" || password == "" {
		return models.User{}, "", taskerr.Validationf("email and password are required")
	}

	user, hash, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if taskerr.IsNotFound(err) {
			// Same message for unknown email and bad password.
			return models.User{}, "", taskerr.NotAuthenticatedf("invalid email or password")
		}
		return models.User{}, "", err
	}

	if err := utils.CheckPassword(hash, password); err != nil {
		s.log.WithContext(ctx).Warn("Failed login attempt", "user_id", user.UserID)
		return models.User{}, "", taskerr.NotAuthenticatedf("invalid email or password")
	}

	token, err := s.GenerateToken(user)
	if err != nil {
		return models.User{}, "", err
	}
	return user, token, nil
}

// GenerateToken creates a signed JWT for authentication
func (s *Service) GenerateToken(user models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email":   user.Email,
		"user_id": user.UserID,
		"exp":     time.Now().Add(s.tokenTTL).Unix(),
	})
	return token.SignedString(s.secret)
}
