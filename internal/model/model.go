package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID          uuid.UUID `db:"id" json:"id"`
	FirstName   string    `db:"first_name" json:"first_name"`
	LastName    string    `db:"last_name" json:"last_name"`
	Email       string    `db:"email" json:"email"`
	PhoneNumber *string   `db:"phone_number" json:"phone_number"`
	Password    string    `db:"password" json:"-"`
	IsActive    bool      `db:"is_active" json:"is_active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

/* Изменяемые поля пользователя: тело POST и PUT запросов */
type UserFields struct {
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	Email       string  `json:"email"`
	PhoneNumber *string `json:"phone_number"`
}

func (user *User) Fields() UserFields {
	return UserFields{
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Email:       user.Email,
		PhoneNumber: user.PhoneNumber,
	}
}

// Replace overwrites every mutable field.
func (user *User) Replace(fields UserFields) {
	user.FirstName = fields.FirstName
	user.LastName = fields.LastName
	user.Email = fields.Email
	user.PhoneNumber = fields.PhoneNumber
}

// Clone returns a copy that does not share the phone number pointer.
func (user User) Clone() User {
	if user.PhoneNumber != nil {
		phone := *user.PhoneNumber
		user.PhoneNumber = &phone
	}
	return user
}
