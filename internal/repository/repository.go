package repository

import (
	"context"

	"github.com/TooLazyToCreate/account-service/internal/model"
	"github.com/google/uuid"
)

/* Ошибки: model.ErrNotFound если строки нет,
 * *model.DuplicateEntryError при нарушении уникальности email или телефона. */
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Store hands out user repositories. Users inside WithTx share one
// transaction which is committed only if fn returns nil.
type Store interface {
	Users() UserRepository
	WithTx(ctx context.Context, fn func(ctx context.Context, users UserRepository) error) error
}
