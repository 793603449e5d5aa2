package user

import (
	"context"
	"database/sql"
	"errors"

	"bookstore-be/internal/db"
	"bookstore-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, u *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
	UpdateProfile(ctx context.Context, id uint, params UpdateProfileParams) (*User, error)

	ListActiveCompanies(ctx context.Context) ([]*VendorCompany, error)
	GetActiveCompany(ctx context.Context, id uint) (*VendorCompany, error)

	InvalidateResetTokens(ctx context.Context, userID uint) error
	CreateResetToken(ctx context.Context, t *PasswordResetToken) error
	GetResetToken(ctx context.Context, token string) (*PasswordResetToken, error)
	ConsumeResetToken(ctx context.Context, t *PasswordResetToken, passwordHash string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const selectUser = `
	SELECT
		u.id, u.email, u.password_hash,
		u.first_name, u.last_name, u.phone,
		u.role, u.vendor_company_id, vc.name,
		u.is_active, u.date_joined
	FROM users u
	LEFT JOIN vendor_companies vc ON vc.id = u.vendor_company_id
`

func scanUser(row *sql.Row) (*User, error) {
	var u User
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash,
		&u.FirstName, &u.LastName, &u.Phone,
		&u.Role, &u.VendorCompanyID, &u.VendorCompanyName,
		&u.IsActive, &u.DateJoined,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) Create(ctx context.Context, u *User) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateUser"),
		zap.String("email", u.Email),
	)

	const q = `
		INSERT INTO users (email, password_hash, first_name, last_name, phone, role, vendor_company_id, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, true)
		RETURNING id, is_active, date_joined
	`

	err := r.db.QueryRowContext(ctx, q,
		u.Email, u.PasswordHash, u.FirstName, u.LastName, u.Phone, u.Role, u.VendorCompanyID,
	).Scan(&u.ID, &u.IsActive, &u.DateJoined)

	if db.IsUniqueViolation(err, "users_email_key") {
		log.Info("email already registered")
		return ErrEmailExists
	}
	if err != nil {
		log.Error("insert failed", zap.Error(err))
		return err
	}

	return nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, selectUser+" WHERE u.email = $1", email))
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		logger.FromCtx(ctx).Error("query failed",
			zap.String("layer", "repository"),
			zap.String("method", "FindByEmail"),
			zap.Error(err),
		)
	}
	return u, err
}

func (r *repository) FindByID(ctx context.Context, id uint) (*User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, selectUser+" WHERE u.id = $1", id))
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		logger.FromCtx(ctx).Error("query failed",
			zap.String("layer", "repository"),
			zap.String("method", "FindByID"),
			zap.Uint("user_id", id),
			zap.Error(err),
		)
	}
	return u, err
}

// UpdateProfile keeps existing values for nil params.
func (r *repository) UpdateProfile(ctx context.Context, id uint, params UpdateProfileParams) (*User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "UpdateProfile"),
		zap.Uint("user_id", id),
	)

	const q = `
		UPDATE users
		SET first_name = COALESCE($2, first_name),
			last_name = COALESCE($3, last_name),
			phone = COALESCE($4, phone)
		WHERE id = $1
	`

	res, err := r.db.ExecContext(ctx, q, id, params.FirstName, params.LastName, params.Phone)
	if err != nil {
		log.Error("failed to update profile", zap.Error(err))
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrUserNotFound
	}

	return r.FindByID(ctx, id)
}
