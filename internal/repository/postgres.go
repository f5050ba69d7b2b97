package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/TooLazyToCreate/account-service/internal/model"
	"github.com/TooLazyToCreate/account-service/internal/repository/migrations"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

const userColumns = `id, first_name, last_name, email, phone_number, password, is_active, created_at`

/* Имена ограничений из миграции -> поле в ответе клиенту */
var uniqueFields = map[string]string{
	"users_email_key":        "email",
	"users_phone_number_key": "phone_number",
}

const pqUniqueViolation = "23505"

type userRepo struct {
	db     DBTX
	logger *zap.Logger
}

func NewUserRepository(logger *zap.Logger, db DBTX) UserRepository {
	return &userRepo{
		db:     db,
		logger: logger,
	}
}

func (r *userRepo) Create(ctx context.Context, user *model.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		user.ID, user.FirstName, user.LastName, user.Email, user.PhoneNumber,
		user.Password, user.IsActive, user.CreatedAt)
	if err != nil {
		return r.translate(err)
	}
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user := &model.User{}
	err := r.db.GetContext(ctx, user, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	if err != nil {
		return nil, r.translate(err)
	}
	return user, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	user := &model.User{}
	err := r.db.GetContext(ctx, user, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	if err != nil {
		return nil, r.translate(err)
	}
	return user, nil
}

func (r *userRepo) List(ctx context.Context) ([]model.User, error) {
	users := make([]model.User, 0, 10)
	err := r.db.SelectContext(ctx, &users, `SELECT `+userColumns+` FROM users ORDER BY created_at, id`)
	if err != nil {
		return nil, r.translate(err)
	}
	return users, nil
}

func (r *userRepo) Update(ctx context.Context, user *model.User) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE users SET first_name = $2, last_name = $3, email = $4, phone_number = $5, is_active = $6 WHERE id = $1`,
		user.ID, user.FirstName, user.LastName, user.Email, user.PhoneNumber, user.IsActive)
	if err != nil {
		return r.translate(err)
	}
	return expectAffected(result)
}

func (r *userRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return r.translate(err)
	}
	return expectAffected(result)
}

func expectAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *userRepo) translate(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return model.ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
		if field, ok := uniqueFields[pqErr.Constraint]; ok {
			r.logger.Debug("Unique constraint violated", zap.String("constraint", pqErr.Constraint))
			return &model.DuplicateEntryError{Field: field}
		}
	}
	return fmt.Errorf("db error: %w", err)
}

type PostgresStore struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewPostgresStore(logger *zap.Logger, db *sqlx.DB) *PostgresStore {
	return &PostgresStore{
		db:     db,
		logger: logger,
	}
}

func (s *PostgresStore) Users() UserRepository {
	return NewUserRepository(s.logger, s.db)
}

func (s *PostgresStore) WithTx(ctx context.Context, fn func(ctx context.Context, users UserRepository) error) error {
	return withTx(ctx, s.db, nil, func(ctx context.Context, tx DBTX) error {
		return fn(ctx, NewUserRepository(s.logger, tx))
	})
}

var gooseUpContext = goose.UpContext

// Migrate applies the embedded migrations.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(&gooseLogger{s.logger.Sugar()})
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, s.db.DB, "."); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

type gooseLogger struct {
	sugar *zap.SugaredLogger
}

func (l *gooseLogger) Fatalf(format string, v ...any) {
	l.sugar.Fatalf(format, v...)
}

func (l *gooseLogger) Printf(format string, v ...any) {
	l.sugar.Infof(format, v...)
}
