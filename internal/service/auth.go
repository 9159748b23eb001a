package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/eventhub/eventhub-go/internal/crypto"
	"github.com/eventhub/eventhub-go/internal/model"
	"github.com/eventhub/eventhub-go/internal/repository"
)

var (
	ErrEmailTaken = errors.New("email already exists")
	// ErrInvalidCredentials is returned for both an unknown email and a
	// wrong password so login failures carry no enumeration signal.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
)

// UserStore is the persistence surface the auth service needs.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.User, error)
}

// AuthService handles registration, login, and profile lookups.
type AuthService struct {
	users     UserStore
	jwtSecret string
	jwtExpiry time.Duration
	logger    zerolog.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserStore, secret string, expiry time.Duration, logger zerolog.Logger) *AuthService {
	return &AuthService{
		users:     users,
		jwtSecret: secret,
		jwtExpiry: expiry,
		logger:    logger.With().Str("component", "auth").Logger(),
	}
}

// Register creates a new account and returns its safe fields plus a signed
// token. An unrecognized role silently becomes the default user role.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (model.RegisterResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if existing, err := s.users.GetByEmail(ctx, email); err == nil && existing != nil {
		return model.RegisterResponse{}, ErrEmailTaken
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return model.RegisterResponse{}, err
	}

	user := &model.User{
		Name:     strings.TrimSpace(req.Name),
		Email:    email,
		Password: hash,
		Role:     model.NormalizeRole(req.Role),
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return model.RegisterResponse{}, ErrEmailTaken
		}
		return model.RegisterResponse{}, err
	}

	token, err := crypto.GenerateToken(user.ID.Hex(), user.Email, string(user.Role), s.jwtSecret, s.jwtExpiry)
	if err != nil {
		return model.RegisterResponse{}, err
	}

	s.logger.Info().Str("email", user.Email).Str("role", string(user.Role)).Msg("account registered")

	return model.RegisterResponse{
		Data: model.RegisteredUser{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
			Role:  user.Role,
		},
		Token: token,
	}, nil
}

// Login verifies credentials and returns a signed token.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.LoginResponse{}, ErrInvalidCredentials
		}
		return model.LoginResponse{}, err
	}

	if !crypto.CheckPassword(req.Password, user.Password) {
		return model.LoginResponse{}, ErrInvalidCredentials
	}

	token, err := crypto.GenerateToken(user.ID.Hex(), user.Email, string(user.Role), s.jwtSecret, s.jwtExpiry)
	if err != nil {
		return model.LoginResponse{}, err
	}

	return model.LoginResponse{
		Message: "Login successful",
		Token:   token,
	}, nil
}

// Profile returns the caller's account. The password hash never leaves the
// JSON boundary because of the model's field tags.
func (s *AuthService) Profile(ctx context.Context, caller model.AuthUser) (*model.User, error) {
	user, err := s.users.GetByID(ctx, caller.ID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	return user, nil
}
