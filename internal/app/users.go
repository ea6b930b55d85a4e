package app

import (
	"context"
	"fmt"
	"strings"

	"hotel_directory/internal/domain"
)

// UserService is the admin-only user management surface.
type UserService struct {
	users domain.UserRepository
}

func NewUserService(users domain.UserRepository) *UserService {
	return &UserService{users: users}
}

func (s *UserService) Get(ctx context.Context, id int64) (domain.User, error) {
	return s.users.GetUser(ctx, id)
}

func (s *UserService) Create(ctx context.Context, in UserInput) (domain.User, error) {
	if err := check(in); err != nil {
		return domain.User{}, err
	}
	if in.Password == "" {
		return domain.User{}, fmt.Errorf("%w: please add a password", domain.ErrValidation)
	}
	hash, err := hashPassword(in.Password)
	if err != nil {
		return domain.User{}, err
	}
	u := domain.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		Role:         roleOrDefault(in.Role),
		PasswordHash: hash,
	}
	if err := s.users.CreateUser(ctx, &u); err != nil {
		return domain.User{}, err
	}
	return u, nil
}

// Update replaces name, email and role; a non-empty password is re-hashed.
func (s *UserService) Update(ctx context.Context, id int64, in UserInput) (domain.User, error) {
	if err := check(in); err != nil {
		return domain.User{}, err
	}
	u, err := s.users.GetUser(ctx, id)
	if err != nil {
		return domain.User{}, err
	}
	u.Name = strings.TrimSpace(in.Name)
	u.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Role != "" {
		u.Role = in.Role
	}
	if err := s.users.UpdateUser(ctx, u); err != nil {
		return domain.User{}, err
	}
	if in.Password != "" {
		hash, err := hashPassword(in.Password)
		if err != nil {
			return domain.User{}, err
		}
		if err := s.users.UpdatePassword(ctx, id, hash); err != nil {
			return domain.User{}, err
		}
	}
	return u, nil
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	return s.users.DeleteUser(ctx, id)
}

func roleOrDefault(r string) string {
	if r == "" {
		return domain.RoleUser
	}
	return r
}
