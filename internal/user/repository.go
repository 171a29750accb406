package user

import (
	"context"
	"database/sql"
	"errors"

	"myshop-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, name, email, password string, role Role) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
	// UpdateProfile replaces the attribute map and sets cpf/rg only where
	// they are still NULL.
	UpdateProfile(ctx context.Context, id uint, attrs Attributes, cpf, rg *string) error
	ExistsCPF(ctx context.Context, cpf string, exceptUserID uint) (bool, error)
	ExistsRG(ctx context.Context, rg string, exceptUserID uint) (bool, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const userColumns = `id, name, email, cpf, rg, user_data, password, role, created_at`

func scanUser(row *sql.Row) (*User, error) {
	var u User
	var role string
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.CPF, &u.RG, &u.Profile, &u.Password, &role, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	u.Role = Role(role)
	return &u, nil
}

func (r *repository) Create(ctx context.Context, name, email, password string, role Role) (*User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateUser"),
	)

	row := r.db.QueryRowContext(ctx, `
		INSERT INTO users (name, email, password, role)
		VALUES ($1, $2, $3, $4)
		RETURNING `+userColumns,
		name, email, password, string(role),
	)

	u, err := scanUser(row)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == PgUniqueViolation {
			log.Info("email already registered", zap.String("email", email))
			return nil, ErrEmailExists
		}
		log.Error("db: failed to insert user", zap.String("email", email), zap.Error(err))
		return nil, err
	}

	return u, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)

	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("db: failed to find user by email",
			zap.String("layer", "repository"),
			zap.Error(err),
		)
		return nil, err
	}
	return u, nil
}

func (r *repository) FindByID(ctx context.Context, id uint) (*User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)

	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("db: failed to find user by id",
			zap.String("layer", "repository"),
			zap.Uint("user_id", id),
			zap.Error(err),
		)
		return nil, err
	}
	return u, nil
}

func (r *repository) UpdateProfile(ctx context.Context, id uint, attrs Attributes, cpf, rg *string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "UpdateProfile"),
		zap.Uint("user_id", id),
	)

	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET user_data = $1,
		    cpf = COALESCE(cpf, $2),
		    rg = COALESCE(rg, $3)
		WHERE id = $4
	`, attrs, cpf, rg, id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == PgUniqueViolation {
			switch pqErr.Constraint {
			case constraintCPF:
				return ErrCPFTaken
			case constraintRG:
				return ErrRGTaken
			}
		}
		log.Error("db: failed to update profile", zap.Error(err))
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *repository) ExistsCPF(ctx context.Context, cpf string, exceptUserID uint) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE cpf = $1 AND id <> $2)`, cpf, exceptUserID)
}

func (r *repository) ExistsRG(ctx context.Context, rg string, exceptUserID uint) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE rg = $1 AND id <> $2)`, rg, exceptUserID)
}

func (r *repository) exists(ctx context.Context, query string, value string, exceptUserID uint) (bool, error) {
	var found bool
	if err := r.db.QueryRowContext(ctx, query, value, exceptUserID).Scan(&found); err != nil {
		logger.FromCtx(ctx).Error("db: failed uniqueness lookup",
			zap.String("layer", "repository"),
			zap.Error(err),
		)
		return false, err
	}
	return found, nil
}
