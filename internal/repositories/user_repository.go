package repositories

import (
	"context"

	"catalog/internal/models"
)

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error

	FindWithFilters(ctx context.Context, opts models.UserQueryOptions) (*models.PaginatedResult[models.User], error)
	Search(ctx context.Context, query string, fields []string) ([]models.User, error)
	CountTotal(ctx context.Context, filters models.UserFilters) (int64, error)
}
