package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/Zeeshan2106/zeeshan-mean-stack-backend/internal/domain"
	"github.com/Zeeshan2106/zeeshan-mean-stack-backend/internal/repository"
)

// BcryptCost is the cost factor for bcrypt hashing. Deliberately slow.
const BcryptCost = 10

// ErrInvalidCredentials is returned for both an unknown username and a wrong
// password. The message must stay identical for the two cases so a caller
// cannot probe which usernames exist.
var ErrInvalidCredentials = errors.New("invalid username or password")

// UserService defines the interface for user business logic
type UserService interface {
	Register(ctx context.Context, username, password string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
}

type userService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new instance of UserService
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// Register hashes the password and persists the new user. The plaintext never
// reaches the repository and never appears in the returned entity.
func (s *userService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.userRepo.Create(ctx, username, string(hash))
	if err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			return nil, repository.ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Login verifies the credentials against the stored hash.
func (s *userService) Login(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// List returns every user. The repository projection excludes the hash.
func (s *userService) List(ctx context.Context) ([]*domain.User, error) {
	return s.userRepo.List(ctx)
}
