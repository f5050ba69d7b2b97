package handler

import (
	"context"
	"encoding/json"
	"errors"
	"mime"
	"net/http"

	"github.com/TooLazyToCreate/account-service/internal/token"
	"go.uber.org/zap"
)

type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (string, error)
}

type AuthHandler struct {
	logger *zap.Logger
	auth   Authenticator
}

func NewAuthHandler(logger *zap.Logger, auth Authenticator) *AuthHandler {
	return &AuthHandler{
		logger: logger,
		auth:   auth,
	}
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

/* JSON тело или OAuth2 password форма (username = email) */
func readCredentials(w http.ResponseWriter, r *http.Request) (credentials, error) {
	var creds credentials
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxBodySize); err != nil {
			return creds, err
		}
		creds = formCredentials(r)
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return creds, err
		}
		creds = formCredentials(r)
	default:
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			return creds, err
		}
	}

	if creds.Email == "" || creds.Password == "" {
		return creds, errors.New("email and password are required")
	}
	return creds, nil
}

func formCredentials(r *http.Request) credentials {
	creds := credentials{
		Email:    r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	}
	if creds.Email == "" {
		creds.Email = r.PostFormValue("email")
	}
	return creds
}

func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	creds, err := readCredentials(w, r)
	if err != nil {
		badRequest(w, r, h.logger, err)
		return
	}

	accessToken, err := h.auth.Authenticate(r.Context(), creds.Email, creds.Password)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	result, err := token.ToJson(accessToken)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result)
}
