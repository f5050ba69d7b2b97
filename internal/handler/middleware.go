package handler

import (
	"context"
	"net"
	"net/http"
	"strings"

	"github.com/TooLazyToCreate/account-service/internal/model"
	"go.uber.org/zap"
)

type IdentityResolver interface {
	Resolve(ctx context.Context, accessToken string) (*model.User, error)
}

type ctxKey struct{}

func CurrentUser(ctx context.Context) *model.User {
	user, _ := ctx.Value(ctxKey{}).(*model.User)
	return user
}

func withUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, ctxKey{}, user)
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	scheme, credentials, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(credentials)
}

// Authenticate rejects requests without a valid bearer token of an active
// user and puts the resolved user into the request context.
func Authenticate(logger *zap.Logger, resolver IdentityResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := resolver.Resolve(r.Context(), bearerToken(r))
			if err != nil {
				writeError(w, r, logger, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(withUser(r.Context(), user)))
		})
	}
}

/* После middleware.RealIP в RemoteAddr остаётся ip-адрес без порта */
func stripPort(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
			r.RemoteAddr = host
		}
		next.ServeHTTP(w, r)
	})
}

// recoverer turns a panic into a logged 500 with the usual error body.
func recoverer(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger.Error("Request panicked",
					zap.Any("panic", rec),
					zap.String("ip", r.RemoteAddr),
					zap.String("path", r.URL.Path),
					zap.Stack("stack"))
				writeJSON(w, http.StatusInternalServerError,
					statusMessage{Status: "error", Message: "Internal Server Error"})
			}()
			next.ServeHTTP(w, r)
		})
	}
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger.Debug("Request to "+r.RequestURI,
				zap.String("method", r.Method),
				zap.String("ip", r.RemoteAddr))
			next.ServeHTTP(w, r)
		})
	}
}
