package service

import (
	"context"
	"time"

	"github.com/TooLazyToCreate/account-service/config"
	"github.com/TooLazyToCreate/account-service/internal/model"
	"github.com/TooLazyToCreate/account-service/internal/password"
	"github.com/TooLazyToCreate/account-service/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Notifier delivers the temporary password of a freshly created account.
type Notifier interface {
	SendTemporaryPassword(ctx context.Context, user *model.User, password string) error
}

type UserService struct {
	logger   *zap.Logger
	cfg      *config.Config
	store    repository.Store
	notifier Notifier
	now      func() time.Time
}

func NewUserService(logger *zap.Logger, cfg *config.Config, store repository.Store, notifier Notifier) *UserService {
	return &UserService{
		logger:   logger,
		cfg:      cfg,
		store:    store,
		notifier: notifier,
		now:      time.Now,
	}
}

/* Только сам пользователь может читать и изменять свою запись */
func authorize(actor *model.User, id uuid.UUID) error {
	if actor == nil {
		return model.ErrUnauthorized
	}
	if actor.ID != id {
		return model.ErrForbidden
	}
	return nil
}

func (service *UserService) Create(ctx context.Context, fields model.UserFields, actor *model.User) (*model.User, error) {
	if actor == nil {
		return nil, model.ErrUnauthorized
	}
	user, err := service.Register(ctx, fields)
	if err != nil {
		return nil, err
	}
	service.logger.Info("User has been created",
		zap.String("user_id", user.ID.String()),
		zap.String("actor_id", actor.ID.String()))
	return user, nil
}

// Register creates an account without an acting user. It backs Create and
// the bootstrap of the very first account.
func (service *UserService) Register(ctx context.Context, fields model.UserFields) (*model.User, error) {
	fields, err := normalizeFields(fields, service.cfg.PhoneRegion)
	if err != nil {
		return nil, err
	}

	/* Генерируем временный пароль, в базу попадает только bcrypt хэш */
	plain, err := password.Generate(service.cfg.PasswordLength)
	if err != nil {
		return nil, err
	}
	hash, err := password.Hash(plain)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		ID:        uuid.New(),
		Password:  hash,
		IsActive:  true,
		CreatedAt: service.now().UTC(),
	}
	user.Replace(fields)

	err = service.store.WithTx(ctx, func(ctx context.Context, users repository.UserRepository) error {
		return users.Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	/* Ошибка доставки не отменяет создание аккаунта */
	if err = service.notifier.SendTemporaryPassword(ctx, user, plain); err != nil {
		service.logger.Error("Could not deliver temporary password", zap.Error(err),
			zap.String("user_id", user.ID.String()))
	}
	return user, nil
}

func (service *UserService) List(ctx context.Context, actor *model.User) ([]model.User, error) {
	if actor == nil {
		return nil, model.ErrUnauthorized
	}
	return service.store.Users().List(ctx)
}

func (service *UserService) Get(ctx context.Context, id uuid.UUID, actor *model.User) (*model.User, error) {
	if err := authorize(actor, id); err != nil {
		return nil, err
	}
	return service.store.Users().GetByID(ctx, id)
}

func (service *UserService) Update(ctx context.Context, id uuid.UUID, fields model.UserFields, actor *model.User) (*model.User, error) {
	if err := authorize(actor, id); err != nil {
		return nil, err
	}
	return service.modify(ctx, id, func(*model.User) model.UserFields { return fields })
}

func (service *UserService) Patch(ctx context.Context, id uuid.UUID, patch model.UserPatch, actor *model.User) (*model.User, error) {
	if err := authorize(actor, id); err != nil {
		return nil, err
	}
	return service.modify(ctx, id, func(user *model.User) model.UserFields {
		return patch.Apply(user.Fields())
	})
}

// modify loads the user, replaces its mutable fields with the result of next
// and writes it back in one transaction.
func (service *UserService) modify(ctx context.Context, id uuid.UUID, next func(*model.User) model.UserFields) (*model.User, error) {
	var updated *model.User
	err := service.store.WithTx(ctx, func(ctx context.Context, users repository.UserRepository) error {
		user, err := users.GetByID(ctx, id)
		if err != nil {
			return err
		}
		fields, err := normalizeFields(next(user), service.cfg.PhoneRegion)
		if err != nil {
			return err
		}
		user.Replace(fields)
		if err = users.Update(ctx, user); err != nil {
			return err
		}
		updated = user
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (service *UserService) Delete(ctx context.Context, id uuid.UUID, actor *model.User) error {
	if err := authorize(actor, id); err != nil {
		return err
	}
	err := service.store.WithTx(ctx, func(ctx context.Context, users repository.UserRepository) error {
		return users.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	service.logger.Info("User has been deleted", zap.String("user_id", id.String()))
	return nil
}
