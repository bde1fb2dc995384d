package auth

import (
	"context"
	"time"

	"github.com/hospitalms/hospital-api/internal/model"
	"github.com/hospitalms/hospital-api/internal/repository"
	pkgauth "github.com/hospitalms/hospital-api/pkg/auth"
	apperrors "github.com/hospitalms/hospital-api/pkg/errors"
	"github.com/hospitalms/hospital-api/pkg/security"
)

// Servicer is the authentication surface consumed by handlers and the
// auth middleware.
type Servicer interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error)
	Login(ctx context.Context, username, password string) (*model.TokenResponse, error)
	ResolveToken(ctx context.Context, token string) (*model.User, error)
}

type Service struct {
	users    repository.UserRepository
	hasher   security.PasswordHasher
	tokens   pkgauth.TokenService
	tokenTTL time.Duration
}

func NewService(users repository.UserRepository, hasher security.PasswordHasher,
	tokens pkgauth.TokenService, tokenTTL time.Duration) *Service {
	if tokenTTL <= 0 {
		tokenTTL = pkgauth.DefaultTokenTTL
	}
	return &Service{
		users:    users,
		hasher:   hasher,
		tokens:   tokens,
		tokenTTL: tokenTTL,
	}
}

// Register creates a new user with role "user" and an active account.
// Duplicate username/email is reported via the pre-check here and, under
// concurrent registration, re-derived from the store's unique constraint.
func (s *Service) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	if existing, _ := s.users.GetByUsername(ctx, req.Username); existing != nil {
		return nil, apperrors.DuplicateValue("username", nil)
	}
	if existing, _ := s.users.GetByEmail(ctx, req.Email); existing != nil {
		return nil, apperrors.DuplicateValue("email", nil)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperrors.BadRequest("invalid password", err)
	}

	user := &model.User{
		Username:     req.Username,
		Email:        req.Email,
		FullName:     req.FullName,
		PasswordHash: hash,
		Role:         model.RoleUser,
		Active:       true,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies the password and issues an access token carrying the
// username as subject and the role claim. All verification failures
// collapse into a single unauthorized error.
func (s *Service) Login(ctx context.Context, username, password string) (*model.TokenResponse, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, apperrors.Unauthorized("invalid credentials", err)
	}

	ok, err := s.hasher.Compare(user.PasswordHash, password)
	if !ok {
		// A malformed stored hash is treated exactly like a mismatch.
		return nil, apperrors.Unauthorized("invalid credentials", err)
	}

	token, err := s.tokens.Issue(user.Username, user.Role, s.tokenTTL)
	if err != nil {
		return nil, err
	}

	return &model.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	}, nil
}

// ResolveToken verifies the token and loads the live user record for its
// subject. Token failures take precedence over user lookup failures.
func (s *Service) ResolveToken(ctx context.Context, token string) (*model.User, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByUsername(ctx, claims.Subject)
	if err != nil {
		if apperrors.IsCode(err, apperrors.ErrNotFound) {
			return nil, apperrors.UserNotFound(claims.Subject)
		}
		return nil, err
	}

	if !user.Active {
		return nil, apperrors.UserInactive(user.Username)
	}
	return user, nil
}
