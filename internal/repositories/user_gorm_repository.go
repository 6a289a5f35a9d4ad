package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"catalog/internal/models"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

var (
	userSortColumns = map[string]string{
		"id":        "id",
		"email":     "email",
		"createdAt": "created_at",
		"updatedAt": "updated_at",
	}
	userSearchColumns        = map[string]string{"email": "email"}
	defaultUserSearchColumns = []string{"email"}
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// Create creates a new user in the database.
func (r *GORMUserRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByID retrieves a user by their ID from the database.
func (r *GORMUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user with ID %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by ID %d: %w", id, err)
	}
	return &user, nil
}

// GetByEmail retrieves a user by their email from the database.
func (r *GORMUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "email = ?", strings.ToLower(email)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user with email %s: %w", email, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by email %s: %w", email, err)
	}
	return &user, nil
}

func (r *GORMUserRepository) Update(ctx context.Context, user *models.User) error {
	res := r.db.WithContext(ctx).
		Model(user).
		Select("email", "password").
		Updates(user)
	if res.Error != nil {
		return fmt.Errorf("failed to update user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("user with ID %d not found for update: %w", user.ID, ErrNotFound)
	}
	return nil
}

func (r *GORMUserRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.User{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("user with ID %d not found for deletion: %w", id, ErrNotFound)
	}
	return nil
}

// FindWithFilters returns one page of users, newest id first unless sorted otherwise.
func (r *GORMUserRepository) FindWithFilters(ctx context.Context, opts models.UserQueryOptions) (*models.PaginatedResult[models.User], error) {
	var (
		users []models.User
		total int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return r.db.WithContext(gctx).
			Model(&models.User{}).
			Scopes(
				userFilters(opts.Filters),
				orderBy(opts.Sort, userSortColumns, "id", true),
				paginate(opts.Pagination),
			).
			Find(&users).Error
	})
	g.Go(func() error {
		var err error
		total, err = r.CountTotal(gctx, opts.Filters)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to find users: %w", err)
	}

	if users == nil {
		users = []models.User{}
	}
	return &models.PaginatedResult[models.User]{
		Data:       users,
		Pagination: models.NewPagination(opts.Pagination, total),
	}, nil
}

func (r *GORMUserRepository) Search(ctx context.Context, query string, fields []string) ([]models.User, error) {
	columns := searchColumns(fields, userSearchColumns, defaultUserSearchColumns)
	if len(columns) == 0 {
		return []models.User{}, nil
	}

	cond, args := containsAny(columns, query)
	users := []models.User{}
	err := r.db.WithContext(ctx).
		Where(cond, args...).
		Scopes(orderBy(nil, userSortColumns, "id", true)).
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	return users, nil
}

func (r *GORMUserRepository) CountTotal(ctx context.Context, filters models.UserFilters) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Scopes(userFilters(filters)).
		Count(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return total, nil
}

func userFilters(f models.UserFilters) scope {
	return func(db *gorm.DB) *gorm.DB {
		if f.Email != nil {
			db = db.Where("email = ?", strings.ToLower(*f.Email))
		}
		if f.Search != nil {
			cond, args := containsAny(defaultUserSearchColumns, *f.Search)
			db = db.Where(cond, args...)
		}
		return db
	}
}
