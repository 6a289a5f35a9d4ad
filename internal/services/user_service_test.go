package services_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"catalog/internal/apperrors"
	"catalog/internal/dto"
	"catalog/internal/events"
	"catalog/internal/logging"
	"catalog/internal/models"
	"catalog/internal/repositories"
	"catalog/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var userNotFound = fmt.Errorf("user: %w", repositories.ErrNotFound)

func newUserService() (*services.UserService, *MockUserRepository, *MockBus) {
	repo := new(MockUserRepository)
	bus := new(MockBus)
	return services.NewUserService(repo, bus, services.WithLogger(logging.Discard())), repo, bus
}

func TestUserService_Create(t *testing.T) {
	svc, repo, bus := newUserService()
	repo.On("GetByEmail", mock.Anything, "ann@example.com").Return(nil, userNotFound).Once()
	repo.On("Create", mock.Anything, &models.User{Email: "ann@example.com", Password: "secret1"}).
		Run(func(args mock.Arguments) { args.Get(1).(*models.User).ID = 4 }).
		Return(nil).Once()
	bus.On("Publish", mock.Anything, events.UserCreated, mock.MatchedBy(func(u *models.User) bool { return u.ID == 4 })).Return(nil).Once()

	user, err := svc.Create(context.Background(), dto.CreateUserInput{Email: " Ann@Example.com ", Password: "secret1"})

	require.NoError(t, err)
	assert.Equal(t, uint(4), user.ID)
	repo.AssertExpectations(t)
	bus.AssertExpectations(t)
}

func TestUserService_Create_Invalid(t *testing.T) {
	svc, repo, _ := newUserService()

	_, err := svc.Create(context.Background(), dto.CreateUserInput{Email: "nope", Password: "123"})

	appErr := requireCode(t, err, apperrors.ErrCodeValidation, http.StatusBadRequest)
	assert.Len(t, appErr.Details, 2)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUserService_Create_DuplicateEmail(t *testing.T) {
	svc, repo, bus := newUserService()
	repo.On("GetByEmail", mock.Anything, "ann@example.com").Return(&models.User{ID: 1, Email: "ann@example.com"}, nil).Once()

	_, err := svc.Create(context.Background(), dto.CreateUserInput{Email: "ann@example.com", Password: "secret1"})

	requireCode(t, err, apperrors.ErrCodeDuplicate, http.StatusUnprocessableEntity)
	bus.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestUserService_Get_NotFound(t *testing.T) {
	svc, repo, _ := newUserService()
	repo.On("GetByID", mock.Anything, uint(3)).Return(nil, userNotFound).Once()

	_, err := svc.Get(context.Background(), 3)

	appErr := requireCode(t, err, apperrors.ErrCodeNotFound, http.StatusNotFound)
	assert.Equal(t, "User with ID 3 not found", appErr.Message)
}

func TestUserService_List(t *testing.T) {
	svc, repo, _ := newUserService()
	repo.On("FindWithFilters", mock.Anything, mock.MatchedBy(func(o models.UserQueryOptions) bool {
		return *o.Filters.Search == "ann" && o.Sort.Field == "email" && o.Sort.Order == models.SortDesc
	})).Return(&models.PaginatedResult[models.User]{Data: []models.User{}}, nil).Once()

	_, err := svc.List(context.Background(), dto.UserListQuery{Search: ptr(" ann "), SortBy: ptr("email"), SortOrder: ptr("DESC")})
	require.NoError(t, err)
	repo.AssertExpectations(t)

	_, err = svc.List(context.Background(), dto.UserListQuery{SortBy: ptr("password")})
	requireCode(t, err, apperrors.ErrCodeValidation, http.StatusBadRequest)
}

func TestUserService_Update(t *testing.T) {
	svc, repo, bus := newUserService()
	repo.On("GetByID", mock.Anything, uint(1)).Return(&models.User{ID: 1, Email: "ann@example.com", Password: "secret1"}, nil).Once()
	repo.On("GetByEmail", mock.Anything, "bob@example.com").Return(nil, userNotFound).Once()
	repo.On("Update", mock.Anything, &models.User{ID: 1, Email: "bob@example.com", Password: "secret1"}).Return(nil).Once()
	bus.On("Publish", mock.Anything, events.UserUpdated, mock.Anything).Return(nil).Once()

	user, err := svc.Update(context.Background(), 1, dto.UpdateUserInput{Email: ptr("BOB@example.com")})

	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", user.Email)
	repo.AssertExpectations(t)
	bus.AssertExpectations(t)
}

func TestUserService_Update_NoChanges(t *testing.T) {
	svc, _, _ := newUserService()

	_, err := svc.Update(context.Background(), 1, dto.UpdateUserInput{})

	appErr := requireCode(t, err, apperrors.ErrCodeValidation, http.StatusBadRequest)
	assert.Equal(t, "atLeastOne", appErr.Details.([]apperrors.FieldError)[0].Constraint)
}

func TestUserService_Update_EmailTaken(t *testing.T) {
	svc, repo, _ := newUserService()
	repo.On("GetByID", mock.Anything, uint(1)).Return(&models.User{ID: 1, Email: "ann@example.com"}, nil).Once()
	repo.On("GetByEmail", mock.Anything, "bob@example.com").Return(&models.User{ID: 2, Email: "bob@example.com"}, nil).Once()

	_, err := svc.Update(context.Background(), 1, dto.UpdateUserInput{Email: ptr("bob@example.com")})

	requireCode(t, err, apperrors.ErrCodeDuplicate, http.StatusUnprocessableEntity)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUserService_Delete(t *testing.T) {
	svc, repo, bus := newUserService()
	repo.On("Delete", mock.Anything, uint(2)).Return(nil).Once()
	bus.On("Publish", mock.Anything, events.UserDeleted, models.UserDeleted{ID: 2}).Return(nil).Once()

	require.NoError(t, svc.Delete(context.Background(), 2))

	repo.On("Delete", mock.Anything, uint(3)).Return(userNotFound).Once()
	requireCode(t, svc.Delete(context.Background(), 3), apperrors.ErrCodeNotFound, http.StatusNotFound)
	bus.AssertExpectations(t)
}

func TestUserService_Search(t *testing.T) {
	svc, repo, _ := newUserService()
	repo.On("Search", mock.Anything, "example", []string(nil)).Return([]models.User{{ID: 1}}, nil).Once()

	users, err := svc.Search(context.Background(), "example", nil)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}
