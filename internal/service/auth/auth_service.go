package auth

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/rideaway/vehicle-rental/internal/apperr"
	"github.com/rideaway/vehicle-rental/internal/auth"
	"github.com/rideaway/vehicle-rental/internal/domain"
	"github.com/rideaway/vehicle-rental/internal/repository"
)

type AuthUseCase interface {
	SignUp(ctx context.Context, input SignUpInput) (*domain.User, error)
	SignIn(ctx context.Context, input SignInInput) (*SignInResult, error)
}

type SignUpInput struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Phone    string      `json:"phone"`
	Role     domain.Role `json:"role"`
}

type SignInInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignInResult struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

type AuthService struct {
	users      repository.UserRepository
	jwtSecret  string
	tokenTTL   time.Duration
	bcryptCost int
}

func NewAuthService(users repository.UserRepository, jwtSecret string, tokenTTL time.Duration, bcryptCost int) *AuthService {
	return &AuthService{
		users:      users,
		jwtSecret:  jwtSecret,
		tokenTTL:   tokenTTL,
		bcryptCost: bcryptCost,
	}
}

func (s *AuthService) SignUp(ctx context.Context, input SignUpInput) (*domain.User, error) {
	if !input.Role.Valid() {
		return nil, apperr.New(apperr.Validation, "Role must be admin or customer")
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:       uuid.NewString(),
		Name:     input.Name,
		Email:    input.Email,
		Password: hash,
		Phone:    input.Phone,
		Role:     input.Role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) SignIn(ctx context.Context, input SignInInput) (*SignInResult, error) {
	user, err := s.users.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}

	if !auth.CheckPassword(user.Password, input.Password) {
		return nil, apperr.New(apperr.Unauthenticated, "Password incorrect")
	}

	token, err := auth.IssueToken(user, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return nil, err
	}

	return &SignInResult{Token: token, User: user}, nil
}

var _ AuthUseCase = (*AuthService)(nil)
