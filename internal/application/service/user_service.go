package service

import (
	"context"
	"strings"

	"github.com/barberoil/fuelpos/internal/domain/entity"
	"github.com/barberoil/fuelpos/internal/domain/enum"
	"github.com/barberoil/fuelpos/internal/domain/repository"
	"github.com/barberoil/fuelpos/pkg/apperror"
	"github.com/barberoil/fuelpos/pkg/utils"
)

// UserService handles user management
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// UserInput represents user create/update input
type UserInput struct {
	ID   string
	Name string
	PIN  string
	Role string
}

// ListUsers lists all users
func (s *UserService) ListUsers(ctx context.Context) ([]entity.User, error) {
	return s.userRepo.List(ctx)
}

// ListDrivers lists users with the driver role
func (s *UserService) ListDrivers(ctx context.Context) ([]entity.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	drivers := make([]entity.User, 0, len(users))
	for _, u := range users {
		if u.Role == enum.UserRoleDriver {
			drivers = append(drivers, u)
		}
	}
	return drivers, nil
}

// GetUser gets a user by id
func (s *UserService) GetUser(ctx context.Context, id string) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}
	return user, nil
}

// CreateUser creates a user. A blank id is derived from the name.
func (s *UserService) CreateUser(ctx context.Context, input *UserInput) (*entity.User, error) {
	id := strings.TrimSpace(input.ID)
	if id == "" {
		id = utils.Slugify(input.Name)
	}

	user := &entity.User{ID: id}
	if err := applyUserInput(user, input); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, apperror.NewFieldValidationError("id", "ID is required")
	}

	existing, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("User " + id + " already exists")
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateUser updates a user's name, PIN and role. The id cannot change.
func (s *UserService) UpdateUser(ctx context.Context, id string, input *UserInput) (*entity.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	wasAdmin := user.IsAdmin()
	if err := applyUserInput(user, input); err != nil {
		return nil, err
	}
	if wasAdmin && !user.IsAdmin() {
		if err := s.ensureAnotherAdmin(ctx, id); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser deletes a user. The last admin cannot be removed.
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return err
	}
	if user.IsAdmin() {
		if err := s.ensureAnotherAdmin(ctx, id); err != nil {
			return err
		}
	}
	return s.userRepo.Delete(ctx, id)
}

func (s *UserService) ensureAnotherAdmin(ctx context.Context, id string) error {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return err
	}
	for _, u := range users {
		if u.ID != id && u.IsAdmin() {
			return nil
		}
	}
	return apperror.NewConflictError("At least one admin user is required")
}

func applyUserInput(user *entity.User, input *UserInput) error {
	var fieldErrors []apperror.FieldError

	name := strings.TrimSpace(input.Name)
	if name == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "name", Message: "Name is required"})
	}
	pin := strings.TrimSpace(input.PIN)
	if pin == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "pin", Message: "PIN is required"})
	}
	role := enum.UserRoleDriver
	if input.Role != "" {
		r, err := enum.ParseUserRole(strings.ToLower(strings.TrimSpace(input.Role)))
		if err != nil {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "role", Message: "Role must be admin or driver"})
		}
		role = r
	}
	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}

	user.Name = name
	user.PIN = pin
	user.Role = role
	return nil
}
