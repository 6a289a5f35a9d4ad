package dto

import (
	"strings"

	"catalog/internal/models"
)

// CreateUserInput is the payload for creating a user. The password is stored as given.
type CreateUserInput struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=255"`
}

func (in *CreateUserInput) Normalize() {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
}

func (in CreateUserInput) ToModel() *models.User {
	return &models.User{Email: in.Email, Password: in.Password}
}

// UpdateUserInput is a partial user update.
type UpdateUserInput struct {
	Email    *string `json:"email" validate:"omitnil,email,max=255"`
	Password *string `json:"password" validate:"omitnil,min=6,max=255"`
}

func (in *UpdateUserInput) Normalize() {
	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		in.Email = &email
	}
}

func (in UpdateUserInput) HasChanges() bool {
	return in.Email != nil || in.Password != nil
}

func (in UpdateUserInput) Apply(u *models.User) {
	if in.Email != nil {
		u.Email = *in.Email
	}
	if in.Password != nil {
		u.Password = *in.Password
	}
}

// UserListQuery is the raw query shape for listing users.
type UserListQuery struct {
	Email     *string `query:"email" json:"email" validate:"omitnil,max=255"`
	Search    *string `query:"search" json:"search" validate:"omitnil,max=100"`
	SortBy    *string `query:"sortBy" json:"sortBy" validate:"omitnil,oneof=id email createdAt updatedAt"`
	SortOrder *string `query:"sortOrder" json:"sortOrder" validate:"omitnil,oneof=asc desc"`
	Page      *int    `query:"page" json:"page" validate:"omitnil,min=1"`
	Limit     *int    `query:"limit" json:"limit" validate:"omitnil,min=1,max=100"`
	Fields    *string `query:"fields" json:"fields"`
}

func (q *UserListQuery) Normalize() {
	q.Email = lowered(q.Email)
	q.Search = trimmed(q.Search)
	q.SortBy = trimmed(q.SortBy)
	q.SortOrder = lowered(q.SortOrder)
	q.Fields = trimmed(q.Fields)
}
