package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/TooLazyToCreate/account-service/config"
	"github.com/TooLazyToCreate/account-service/internal/handler"
	"github.com/TooLazyToCreate/account-service/internal/mailer"
	"github.com/TooLazyToCreate/account-service/internal/model"
	"github.com/TooLazyToCreate/account-service/internal/repository"
	"github.com/TooLazyToCreate/account-service/internal/service"
	"github.com/TooLazyToCreate/account-service/internal/token"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// openStore connects to postgres and applies migrations. In DEV mode without
// DATABASE_URL it falls back to the in-memory store.
func openStore(ctx context.Context, logger *zap.Logger, cfg *config.Config) (repository.Store, func(), error) {
	if cfg.DatabaseUrl == "" {
		if !cfg.IsDev() {
			return nil, nil, errors.New("DATABASE_URL is not set")
		}
		logger.Warn("DATABASE_URL is not set, using in-memory store")
		return repository.NewMemoryStore(), func() {}, nil
	}

	db, err := sqlx.Open("postgres", cfg.DatabaseUrl)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	closeDB := func() {
		if err := db.Close(); err != nil {
			logger.Error("Connection to database was closed with error", zap.Error(err))
		}
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err = db.PingContext(pingCtx); err != nil {
		closeDB()
		return nil, nil, fmt.Errorf("ping database: %w", err)
	}
	logger.Info("Connected to database")

	store := repository.NewPostgresStore(logger, db)
	if err = store.Migrate(ctx); err != nil {
		closeDB()
		return nil, nil, err
	}
	return store, closeDB, nil
}

func newNotifier(logger *zap.Logger, cfg *config.Config) service.Notifier {
	if cfg.SmtpEnabled() {
		return mailer.NewSMTP(logger, cfg.Smtp.Host, cfg.Smtp.Port, cfg.Smtp.Login, cfg.Smtp.Password, cfg.Smtp.Email)
	}
	return mailer.NewLog(logger, cfg.IsDev())
}

func newRouter(ctx context.Context, logger *zap.Logger, cfg *config.Config, store repository.Store, seed *model.UserFields) (http.Handler, error) {
	codec, err := token.NewCodec(cfg.Secret, cfg.Algorithm, cfg.AccessTokenLifetime())
	if err != nil {
		return nil, err
	}
	logger.Info("Token codec is ready",
		zap.String("algorithm", cfg.Algorithm),
		zap.Duration("lifetime", codec.Lifetime()))

	authService := service.NewAuthService(logger, codec, store)
	userService := service.NewUserService(logger, cfg, store, newNotifier(logger, cfg))
	if seed != nil {
		if err = seedUser(ctx, logger, userService, *seed); err != nil {
			return nil, err
		}
	}

	return handler.NewRouter(logger, cfg.IsDev(),
		handler.NewAuthHandler(logger, authService),
		handler.NewUserHandler(logger, userService),
		authService), nil
}

// Run serves the API until ctx is cancelled. A non-nil seed is registered
// before serving unless its email is already taken.
func Run(ctx context.Context, logger *zap.Logger, cfg *config.Config, seed *model.UserFields) error {
	store, closeStore, err := openStore(ctx, logger, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	router, err := newRouter(ctx, logger, cfg, store, seed)
	if err != nil {
		return err
	}
	return serve(ctx, logger, &http.Server{
		Addr:              cfg.Address(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	})
}

/* Сервер останавливается при отмене ctx (SIGINT/SIGTERM в main) */
func serve(ctx context.Context, logger *zap.Logger, server *http.Server) error {
	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Will serve on " + server.Addr)
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

/* Первый аккаунт создаётся без actor, дальше пользователи создаются через API */
func seedUser(ctx context.Context, logger *zap.Logger, users *service.UserService, fields model.UserFields) error {
	user, err := users.Register(ctx, fields)
	var dup *model.DuplicateEntryError
	if errors.As(err, &dup) {
		logger.Info("Seed user already exists", zap.String("field", dup.Field))
		return nil
	}
	if err != nil {
		return fmt.Errorf("seed user: %w", err)
	}
	logger.Info("Seed user has been created", zap.String("user_id", user.ID.String()))
	return nil
}
