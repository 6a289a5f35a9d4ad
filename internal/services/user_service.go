package services

import (
	"context"
	"errors"
	"fmt"

	"catalog/internal/apperrors"
	"catalog/internal/cache"
	"catalog/internal/dto"
	"catalog/internal/events"
	"catalog/internal/models"
	"catalog/internal/query"
	"catalog/internal/repositories"
)

// UserService handles business logic related to users.
type UserService struct {
	base
	repo repositories.UserRepository
}

func NewUserService(repo repositories.UserRepository, bus events.Bus, opts ...Option) *UserService {
	return &UserService{
		base: newBase("User", bus, opts),
		repo: repo,
	}
}

// Create stores a new user. Emails are unique, ignoring case.
func (s *UserService) Create(ctx context.Context, in dto.CreateUserInput) (*models.User, error) {
	in.Normalize()
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if err := s.ensureEmailFree(ctx, in.Email, 0); err != nil {
		return nil, err
	}

	user := in.ToModel()
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, s.fail(ctx, "create", nil, err)
	}

	s.publish(ctx, events.UserCreated, userSnapshot(user))
	return user, nil
}

func (s *UserService) Get(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if s.cached(ctx, cache.UserKey(id), &user) {
		return &user, nil
	}

	found, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.fail(ctx, "get", id, err)
	}
	s.remember(ctx, cache.UserKey(id), found)
	return found, nil
}

func (s *UserService) List(ctx context.Context, raw dto.UserListQuery) (*models.PaginatedResult[models.User], error) {
	raw.Normalize()
	if err := dto.Validate(raw); err != nil {
		return nil, err
	}

	result, err := s.repo.FindWithFilters(ctx, query.BuildUserOptions(raw))
	if err != nil {
		return nil, s.fail(ctx, "list", nil, err)
	}
	return result, nil
}

// Update replaces the given fields. At least one must be present.
func (s *UserService) Update(ctx context.Context, id uint, in dto.UpdateUserInput) (*models.User, error) {
	in.Normalize()
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if !in.HasChanges() {
		return nil, noChanges()
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.fail(ctx, "update", id, err)
	}
	if in.Email != nil && *in.Email != user.Email {
		if err := s.ensureEmailFree(ctx, *in.Email, id); err != nil {
			return nil, err
		}
	}

	in.Apply(user)
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, s.fail(ctx, "update", id, err)
	}

	s.forget(ctx, cache.UserKey(id))
	s.publish(ctx, events.UserUpdated, userSnapshot(user))
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.fail(ctx, "delete", id, err)
	}

	s.forget(ctx, cache.UserKey(id))
	s.publish(ctx, events.UserDeleted, models.UserDeleted{ID: id})
	return nil
}

// Search matches q against the email address.
func (s *UserService) Search(ctx context.Context, q string, fields []string) ([]models.User, error) {
	term, err := searchTerm(q)
	if err != nil {
		return nil, err
	}
	users, err := s.repo.Search(ctx, term, fields)
	if err != nil {
		return nil, s.fail(ctx, "search", nil, err)
	}
	return users, nil
}

func (s *UserService) ensureEmailFree(ctx context.Context, email string, selfID uint) error {
	existing, err := s.repo.GetByEmail(ctx, email)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil
	}
	if err != nil {
		return s.fail(ctx, "check email", nil, err)
	}
	if existing.ID == selfID {
		return nil
	}
	return apperrors.Duplicate("email", email, fmt.Sprintf("User with email '%s' already exists", email))
}

func userSnapshot(u *models.User) *models.User {
	cp := *u
	return &cp
}
