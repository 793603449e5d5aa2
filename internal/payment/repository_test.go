package payment

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_CreateAndGet(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()
	now := time.Now()

	t.Run("Create", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO payments \(order_id, stripe_session_id, amount, status\)`).
			WithArgs(100, "cs_test_1", sqlmock.AnyArg(), "pending").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(1, now, now))

		p := &Payment{OrderID: 100, StripeSessionID: "cs_test_1", Amount: decimal.RequireFromString("79.80"), Status: StatusPending}
		require.NoError(t, repo.Create(ctx, p))
		assert.Equal(t, uint(1), p.ID)
	})

	t.Run("Unknown session", func(t *testing.T) {
		mock.ExpectQuery(`FROM payments WHERE stripe_session_id = \$1`).
			WithArgs("cs_missing").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetBySessionID(ctx, "cs_missing")
		assert.ErrorIs(t, err, ErrPaymentNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_MarkCompleted(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Flips payment and order", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE payments SET status = \$1, updated_at = NOW\(\) WHERE id = \$2 AND status <> \$1`).
			WithArgs("completed", 1).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE orders SET payment_status = 'paid'`).
			WithArgs(100).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		p := &Payment{ID: 1, OrderID: 100, Status: StatusPending}
		changed, err := repo.MarkCompleted(ctx, p)

		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, StatusCompleted, p.Status)
	})

	t.Run("Already completed", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE payments`).
			WithArgs("completed", 1).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		changed, err := repo.MarkCompleted(ctx, &Payment{ID: 1, OrderID: 100})

		require.NoError(t, err)
		assert.False(t, changed)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
