package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/org/floodgate/internal/storage"
	"github.com/org/floodgate/pkg/models"
	"golang.org/x/crypto/bcrypt"
)

// ErrBadCredentials is returned for an unknown username or a wrong
// password. The two cases are deliberately indistinguishable.
var ErrBadCredentials = errors.New("bad credentials")

// UserService checks login credentials against the user store.
type UserService struct {
	store storage.Backend
}

// NewUserService creates a UserService backed by the given storage.
func NewUserService(store storage.Backend) *UserService {
	return &UserService{store: store}
}

// Create registers a new user with a bcrypt password hash.
func (s *UserService) Create(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, errors.New("username and password are required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}
	u := &models.User{
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.store.CreateUser(ctx, u); err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}
	return u, nil
}

// Authenticate verifies a username/password pair and returns the user.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	u, err := s.store.GetUser(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrBadCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrBadCredentials
	}
	return u, nil
}

// HasUsers reports whether any account exists yet. Registration is only
// open while this is false.
func (s *UserService) HasUsers(ctx context.Context) (bool, error) {
	n, err := s.store.CountUsers(ctx)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
