package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"servic/internal/domain"
	"servic/internal/pkg/validator"
	"servic/internal/repository"
)

const minPasswordLength = 6

// dummyHash keeps the cost of a login for an unknown email close to a wrong password.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("servic-dummy-password"), bcrypt.DefaultCost)

// Service contains the authentication business logic.
type Service struct {
	users  UserRepository
	tokens tokenIssuer
}

func NewService(users UserRepository, tokens tokenIssuer) *Service {
	return &Service{users: users, tokens: tokens}
}

func (s *Service) Signup(ctx context.Context, req SignupRequest) (*AuthResult, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if name == "" || email == "" || req.Password == "" {
		return nil, ErrMissingSignupFields
	}
	if !validator.Email(email) {
		return nil, ErrInvalidEmail
	}
	if len(req.Password) < minPasswordLength {
		return nil, ErrWeakPassword
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// lost a race with a concurrent signup; the unique index decides
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return s.issue(user)
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, ErrMissingLoginFields
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(req.Password))
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issue(user)
}

// Me describes the session identity, or nil for anonymous callers.
func (s *Service) Me(actor *domain.Actor) *UserPublic {
	if actor == nil || actor.UserID == 0 {
		return nil
	}
	return &UserPublic{ID: actor.UserID, Name: actor.Name, Email: actor.Email, Role: actor.Role}
}

// IssueFor signs a fresh session token for u, e.g. after a role change.
func (s *Service) IssueFor(u *domain.User) (*AuthResult, error) {
	return s.issue(u)
}

func (s *Service) issue(u *domain.User) (*AuthResult, error) {
	token, err := s.tokens.GenerateToken(u.ID, u.Email, u.Name, string(u.Role))
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &AuthResult{User: toUserPublic(u), Token: token}, nil
}
