package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/TooLazyToCreate/account-service/internal/model"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserDirectory interface {
	Create(ctx context.Context, fields model.UserFields, actor *model.User) (*model.User, error)
	List(ctx context.Context, actor *model.User) ([]model.User, error)
	Get(ctx context.Context, id uuid.UUID, actor *model.User) (*model.User, error)
	Update(ctx context.Context, id uuid.UUID, fields model.UserFields, actor *model.User) (*model.User, error)
	Patch(ctx context.Context, id uuid.UUID, patch model.UserPatch, actor *model.User) (*model.User, error)
	Delete(ctx context.Context, id uuid.UUID, actor *model.User) error
}

type UserHandler struct {
	logger *zap.Logger
	users  UserDirectory
}

func NewUserHandler(logger *zap.Logger, users UserDirectory) *UserHandler {
	return &UserHandler{
		logger: logger,
		users:  users,
	}
}

const maxBodySize = 1 << 20

func decodeBody(w http.ResponseWriter, r *http.Request, dest any) error {
	/* Лишние поля (например password) игнорируются */
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(dest)
}

func userID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid user id: %w", err)
	}
	return id, nil
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var fields model.UserFields
	if err := decodeBody(w, r, &fields); err != nil {
		badRequest(w, r, h.logger, err)
		return
	}
	user, err := h.users.Create(r.Context(), fields, CurrentUser(r.Context()))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context(), CurrentUser(r.Context()))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := userID(r)
	if err != nil {
		badRequest(w, r, h.logger, err)
		return
	}
	user, err := h.users.Get(r.Context(), id, CurrentUser(r.Context()))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := userID(r)
	if err != nil {
		badRequest(w, r, h.logger, err)
		return
	}
	var fields model.UserFields
	if err = decodeBody(w, r, &fields); err != nil {
		badRequest(w, r, h.logger, err)
		return
	}
	user, err := h.users.Update(r.Context(), id, fields, CurrentUser(r.Context()))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) Patch(w http.ResponseWriter, r *http.Request) {
	id, err := userID(r)
	if err != nil {
		badRequest(w, r, h.logger, err)
		return
	}
	var patch model.UserPatch
	if err = decodeBody(w, r, &patch); err != nil {
		badRequest(w, r, h.logger, err)
		return
	}
	user, err := h.users.Patch(r.Context(), id, patch, CurrentUser(r.Context()))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := userID(r)
	if err != nil {
		badRequest(w, r, h.logger, err)
		return
	}
	if err = h.users.Delete(r.Context(), id, CurrentUser(r.Context())); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeSuccess(w, "User deleted successfully!")
}
