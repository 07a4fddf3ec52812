package users

import (
	"context"

	"github.com/rideaway/vehicle-rental/internal/apperr"
	"github.com/rideaway/vehicle-rental/internal/auth"
	"github.com/rideaway/vehicle-rental/internal/domain"
	"github.com/rideaway/vehicle-rental/internal/repository"
)

type UserUseCase interface {
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, id string, input UpdateUserInput, requester auth.Principal) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}

type UpdateUserInput struct {
	Name  *string      `json:"name"`
	Email *string      `json:"email"`
	Phone *string      `json:"phone"`
	Role  *domain.Role `json:"role"`
}

type UserService struct {
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.repo.List(ctx)
}

func (s *UserService) Update(ctx context.Context, id string, input UpdateUserInput, requester auth.Principal) (*domain.User, error) {
	owns := requester.ID == id
	if !auth.Allow(requester.Role, auth.ActionUserUpdate, owns) {
		return nil, apperr.New(apperr.Unauthorized, "You have no access to this route")
	}

	// Non-admin callers cannot escalate: a role field in their payload is
	// dropped silently rather than rejected.
	if !requester.IsAdmin() {
		input.Role = nil
	}
	if input.Role != nil && !input.Role.Valid() {
		return nil, apperr.New(apperr.Validation, "Role must be admin or customer")
	}

	return s.repo.Update(ctx, id, repository.UserUpdate{
		Name:  input.Name,
		Email: input.Email,
		Phone: input.Phone,
		Role:  input.Role,
	})
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

var _ UserUseCase = (*UserService)(nil)
