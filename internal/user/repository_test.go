package user

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userColumns = []string{
	"id", "email", "password_hash",
	"first_name", "last_name", "phone",
	"role", "vendor_company_id", "name",
	"is_active", "date_joined",
}

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		now := time.Now()
		mock.ExpectQuery(`INSERT INTO users .* RETURNING id, is_active, date_joined`).
			WithArgs("jan@example.com", "hash", "", "", "", RoleCustomer, nil).
			WillReturnRows(sqlmock.NewRows([]string{"id", "is_active", "date_joined"}).AddRow(7, true, now))

		u := &User{Email: "jan@example.com", PasswordHash: "hash", Role: RoleCustomer}
		err := repo.Create(ctx, u)

		assert.NoError(t, err)
		assert.Equal(t, uint(7), u.ID)
		assert.True(t, u.IsActive)
	})

	t.Run("Duplicate email", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO users`).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})

		err := repo.Create(ctx, &User{Email: "jan@example.com", Role: RoleCustomer})

		assert.ErrorIs(t, err, ErrEmailExists)
	})

	t.Run("Database error", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO users`).WillReturnError(errors.New("boom"))

		err := repo.Create(ctx, &User{Email: "x@example.com"})

		assert.EqualError(t, err, "boom")
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Find(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("By email with company", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM users u LEFT JOIN vendor_companies vc .* WHERE u.email = \$1`).
			WithArgs("anna@example.com").
			WillReturnRows(sqlmock.NewRows(userColumns).AddRow(
				3, "anna@example.com", "hash",
				"Anna", "Nowak", "",
				RoleVendor, 2, "Wydawnictwo Znak",
				true, time.Now(),
			))

		u, err := repo.FindByEmail(ctx, "anna@example.com")

		require.NoError(t, err)
		assert.Equal(t, uint(3), u.ID)
		require.NotNil(t, u.VendorCompanyID)
		assert.Equal(t, uint(2), *u.VendorCompanyID)
		assert.Equal(t, "Wydawnictwo Znak", *u.VendorCompanyName)
	})

	t.Run("By id not found", func(t *testing.T) {
		mock.ExpectQuery(`WHERE u.id = \$1`).
			WithArgs(99).
			WillReturnError(sql.ErrNoRows)

		u, err := repo.FindByID(ctx, 99)

		assert.Nil(t, u)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateProfile(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()
	first := "Jan"

	t.Run("Updates and reloads", func(t *testing.T) {
		mock.ExpectExec(`UPDATE users SET first_name = COALESCE\(\$2, first_name\)`).
			WithArgs(1, first, nil, nil).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`WHERE u.id = \$1`).
			WithArgs(1).
			WillReturnRows(sqlmock.NewRows(userColumns).AddRow(
				1, "jan@example.com", "hash",
				"Jan", "", "",
				RoleCustomer, nil, nil,
				true, time.Now(),
			))

		u, err := repo.UpdateProfile(ctx, 1, UpdateProfileParams{FirstName: &first})

		require.NoError(t, err)
		assert.Equal(t, "Jan", u.FirstName)
		assert.Nil(t, u.VendorCompanyID)
	})

	t.Run("Missing user", func(t *testing.T) {
		mock.ExpectExec(`UPDATE users`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		_, err := repo.UpdateProfile(ctx, 5, UpdateProfileParams{FirstName: &first})

		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Companies(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()
	cols := []string{"id", "name", "access_code", "description", "is_active", "created_at"}

	t.Run("List active", func(t *testing.T) {
		mock.ExpectQuery(`FROM vendor_companies WHERE is_active = true ORDER BY name`).
			WillReturnRows(sqlmock.NewRows(cols).
				AddRow(1, "Znak", "abc", nil, true, time.Now()).
				AddRow(2, "Helion", "def", "IT", true, time.Now()))

		companies, err := repo.ListActiveCompanies(ctx)

		require.NoError(t, err)
		require.Len(t, companies, 2)
		assert.Nil(t, companies[0].Description)
		assert.Equal(t, "IT", *companies[1].Description)
	})

	t.Run("Inactive company", func(t *testing.T) {
		mock.ExpectQuery(`WHERE id = \$1 AND is_active = true`).
			WithArgs(4).
			WillReturnError(sql.ErrNoRows)

		c, err := repo.GetActiveCompany(ctx, 4)

		assert.Nil(t, c)
		assert.ErrorIs(t, err, ErrCompanyUnavailable)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ResetTokens(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()
	token := &PasswordResetToken{ID: 10, UserID: 1}

	t.Run("Malformed token", func(t *testing.T) {
		_, err := repo.GetResetToken(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, ErrInvalidResetToken)
	})

	t.Run("Unknown token", func(t *testing.T) {
		mock.ExpectQuery(`FROM password_reset_tokens WHERE token = \$1`).
			WithArgs(sqlmock.AnyArg()).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetResetToken(ctx, "0b7e4c5e-8f9a-4d7c-9b1e-2f3a4b5c6d7e")
		assert.ErrorIs(t, err, ErrInvalidResetToken)
	})

	t.Run("Consume updates password", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE password_reset_tokens SET is_used = true, used_at = NOW\(\) WHERE id = \$1 AND is_used = false`).
			WithArgs(10).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE users SET password_hash = \$1 WHERE id = \$2`).
			WithArgs("newhash", 1).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		assert.NoError(t, repo.ConsumeResetToken(ctx, token, "newhash"))
	})

	t.Run("Consume already used", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE password_reset_tokens`).
			WithArgs(10).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.ConsumeResetToken(ctx, token, "newhash")
		assert.ErrorIs(t, err, ErrResetTokenUsed)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
