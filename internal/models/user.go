package models

import "time"

// User represents a user of the catalog API.
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"type:varchar(255);not null;index"`
	Password  string    `json:"-" gorm:"type:varchar(255);not null"` // never serialized
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (User) TableName() string { return "users" }

func (u User) ToMap() map[string]any {
	return map[string]any{
		"id":        u.ID,
		"email":     u.Email,
		"createdAt": u.CreatedAt,
		"updatedAt": u.UpdatedAt,
	}
}

// UserDeleted is the payload published when a user is removed.
type UserDeleted struct {
	ID uint `json:"id"`
}
