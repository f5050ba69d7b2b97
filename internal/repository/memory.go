package repository

import (
	"context"
	"slices"
	"sync"

	"github.com/TooLazyToCreate/account-service/internal/model"
	"github.com/google/uuid"
)

/* Хранилище в памяти для разработки без базы и для тестов.
 * Транзакция работает с копией таблицы и подменяет её только при успехе. */
type MemoryStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]model.User
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: make(map[uuid.UUID]model.User)}
}

func (s *MemoryStore) Users() UserRepository {
	return &memoryUsers{store: s}
}

func (s *MemoryStore) WithTx(ctx context.Context, fn func(ctx context.Context, users UserRepository) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	staged := make(map[uuid.UUID]model.User, len(s.users))
	for id, user := range s.users {
		staged[id] = user.Clone()
	}
	if err := fn(ctx, &memoryUsers{rows: staged}); err != nil {
		return err
	}
	s.users = staged
	return nil
}

type memoryUsers struct {
	store *MemoryStore
	rows  map[uuid.UUID]model.User
}

// table runs fn against the staged rows of a transaction or, outside of
// one, against the store under its lock.
func (r *memoryUsers) table(fn func(rows map[uuid.UUID]model.User) error) error {
	if r.store == nil {
		return fn(r.rows)
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return fn(r.store.users)
}

func checkUnique(rows map[uuid.UUID]model.User, user *model.User) error {
	for id, other := range rows {
		if id == user.ID {
			continue
		}
		if other.Email == user.Email {
			return &model.DuplicateEntryError{Field: "email"}
		}
		if user.PhoneNumber != nil && other.PhoneNumber != nil && *other.PhoneNumber == *user.PhoneNumber {
			return &model.DuplicateEntryError{Field: "phone_number"}
		}
	}
	return nil
}

func (r *memoryUsers) Create(_ context.Context, user *model.User) error {
	return r.table(func(rows map[uuid.UUID]model.User) error {
		if _, ok := rows[user.ID]; ok {
			return &model.DuplicateEntryError{Field: "id"}
		}
		if err := checkUnique(rows, user); err != nil {
			return err
		}
		rows[user.ID] = user.Clone()
		return nil
	})
}

func (r *memoryUsers) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	var found model.User
	err := r.table(func(rows map[uuid.UUID]model.User) error {
		user, ok := rows[id]
		if !ok {
			return model.ErrNotFound
		}
		found = user.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &found, nil
}

func (r *memoryUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	var found *model.User
	err := r.table(func(rows map[uuid.UUID]model.User) error {
		for _, user := range rows {
			if user.Email == email {
				clone := user.Clone()
				found = &clone
				return nil
			}
		}
		return model.ErrNotFound
	})
	return found, err
}

func (r *memoryUsers) List(_ context.Context) ([]model.User, error) {
	users := make([]model.User, 0, 10)
	err := r.table(func(rows map[uuid.UUID]model.User) error {
		for _, user := range rows {
			users = append(users, user.Clone())
		}
		return nil
	})
	slices.SortFunc(users, func(a, b model.User) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return slices.Compare(a.ID[:], b.ID[:])
	})
	return users, err
}

func (r *memoryUsers) Update(_ context.Context, user *model.User) error {
	return r.table(func(rows map[uuid.UUID]model.User) error {
		stored, ok := rows[user.ID]
		if !ok {
			return model.ErrNotFound
		}
		if err := checkUnique(rows, user); err != nil {
			return err
		}
		updated := user.Clone()
		updated.Password = stored.Password
		updated.CreatedAt = stored.CreatedAt
		rows[user.ID] = updated
		return nil
	})
}

func (r *memoryUsers) Delete(_ context.Context, id uuid.UUID) error {
	return r.table(func(rows map[uuid.UUID]model.User) error {
		if _, ok := rows[id]; !ok {
			return model.ErrNotFound
		}
		delete(rows, id)
		return nil
	})
}
