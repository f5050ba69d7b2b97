package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/TooLazyToCreate/account-service/internal/model"
	"github.com/TooLazyToCreate/account-service/internal/password"
	"github.com/TooLazyToCreate/account-service/internal/repository"
	"github.com/TooLazyToCreate/account-service/internal/token"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService struct {
	logger *zap.Logger
	codec  *token.Codec
	store  repository.Store
}

func NewAuthService(logger *zap.Logger, codec *token.Codec, store repository.Store) *AuthService {
	return &AuthService{
		logger: logger,
		codec:  codec,
		store:  store,
	}
}

// Authenticate checks the credentials and issues an access token whose
// subject is the user id.
func (service *AuthService) Authenticate(ctx context.Context, email, plain string) (string, error) {
	user, err := service.store.Users().GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, model.ErrNotFound) {
		return "", model.ErrInvalidEmail
	}
	if err != nil {
		return "", err
	}

	if !password.Verify(plain, user.Password) {
		return "", model.ErrInvalidPassword
	}

	accessToken, err := service.codec.Issue(token.Claims{"sub": user.ID.String()}, 0)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	service.logger.Debug("Access token has been issued", zap.String("user_id", user.ID.String()))
	return accessToken, nil
}

/* Проверка токена защищённого запроса:
 * нет токена -> ErrMissingToken; невалидный токен или удалённый пользователь -> ErrUnauthorized;
 * неактивный аккаунт -> ErrInactiveUser. */
func (service *AuthService) Resolve(ctx context.Context, accessToken string) (*model.User, error) {
	if accessToken == "" {
		return nil, model.ErrMissingToken
	}
	claims, err := service.codec.Validate(accessToken)
	if err != nil {
		service.logger.Debug("Token rejected", zap.Error(err))
		return nil, model.ErrUnauthorized
	}
	id, err := uuid.Parse(claims.Subject())
	if err != nil {
		return nil, model.ErrUnauthorized
	}

	user, err := service.store.Users().GetByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return nil, model.ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, model.ErrInactiveUser
	}
	return user, nil
}
