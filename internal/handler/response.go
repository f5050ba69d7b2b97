package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/TooLazyToCreate/account-service/internal/model"
	"go.uber.org/zap"
)

type statusMessage struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	Errors  error  `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeSuccess(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, statusMessage{Status: "success", Message: message})
}

/* Ошибки слоя данных превращаются в код ответа и {status, message} */
func errorResponse(err error) (int, statusMessage) {
	body := statusMessage{Status: "error"}

	var dup *model.DuplicateEntryError
	var validationErr *model.ValidationError
	switch {
	case errors.As(err, &dup):
		body.Message = dup.Error()
		body.Field = dup.Field
		return http.StatusConflict, body
	case errors.As(err, &validationErr):
		body.Message = "Invalid request data!"
		body.Errors = validationErr.Err
		return http.StatusBadRequest, body
	case errors.Is(err, model.ErrMissingToken):
		body.Message = "Missing authentication token!"
		return http.StatusUnauthorized, body
	case errors.Is(err, model.ErrInactiveUser):
		body.Message = "User account is inactive!"
		return http.StatusUnauthorized, body
	case errors.Is(err, model.ErrInvalidEmail):
		body.Message = "Invalid user email!"
		return http.StatusUnauthorized, body
	case errors.Is(err, model.ErrInvalidPassword):
		body.Message = "Invalid user password!"
		return http.StatusUnauthorized, body
	case errors.Is(err, model.ErrUnauthorized):
		body.Message = "Unauthorized access!"
		return http.StatusUnauthorized, body
	case errors.Is(err, model.ErrForbidden):
		body.Message = "You cannot modify another user's data."
		return http.StatusForbidden, body
	case errors.Is(err, model.ErrNotFound):
		body.Message = "User does not exist!"
		return http.StatusNotFound, body
	}
	body.Message = err.Error()
	return http.StatusInternalServerError, body
}

func writeError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	code, body := errorResponse(err)
	if code == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}
	if code == http.StatusInternalServerError {
		logger.Error("Request failed", zap.Error(err),
			zap.String("ip", r.RemoteAddr),
			zap.String("path", r.URL.Path))
	} else {
		logger.Info("Request rejected", zap.Error(err),
			zap.String("ip", r.RemoteAddr),
			zap.String("path", r.URL.Path),
			zap.Int("status", code))
	}
	writeJSON(w, code, body)
}

func badRequest(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	logger.Info("Bad request", zap.Error(err), zap.String("ip", r.RemoteAddr))
	writeJSON(w, http.StatusBadRequest, statusMessage{Status: "error", Message: "Bad request: " + err.Error()})
}
