package repository

import (
	"context"
	"errors"

	"petshop-loyalty/internal/domain/loyalty"
	"petshop-loyalty/internal/infra"
	"petshop-loyalty/internal/infra/db"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgErrCodeUniqueViolation     = "23505"
	pgErrCodeForeignKeyViolation = "23503"
)

type AccountRepository struct{}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{}
}

const creditSQL = `
INSERT INTO loyalty_accounts (customer_id, points, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (customer_id)
DO UPDATE SET points = loyalty_accounts.points + EXCLUDED.points, updated_at = now()
RETURNING points`

// Credit is a single upsert-add statement so concurrent credits on the same
// account serialize inside the database, never in application code.
func (r *AccountRepository) Credit(ctx context.Context, dbtx db.DBTX, customerID int64, points int) (int, error) {
	var balance int
	if err := dbtx.QueryRow(ctx, creditSQL, customerID, points).Scan(&balance); err != nil {
		return 0, infra.WrapRepoErr("failed to credit loyalty account", err)
	}
	return balance, nil
}

const debitSQL = `
UPDATE loyalty_accounts
SET points = points - $2, updated_at = now()
WHERE customer_id = $1 AND points >= $2
RETURNING points`

// Debit succeeds only when the balance covers the amount; the condition and
// the subtraction are one statement, so the balance can never go negative.
func (r *AccountRepository) Debit(ctx context.Context, dbtx db.DBTX, customerID int64, points int) (int, error) {
	var balance int
	err := dbtx.QueryRow(ctx, debitSQL, customerID, points).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, infra.WrapRepoErr("insufficient points", err, infra.KindConflict)
		}
		return 0, infra.WrapRepoErr("failed to debit loyalty account", err)
	}
	return balance, nil
}

type PromotionRepository struct{}

func NewPromotionRepository() *PromotionRepository {
	return &PromotionRepository{}
}

const createPromotionSQL = `
INSERT INTO promotion_windows (id, name, start_date, end_date, multiplier)
VALUES ($1, $2, $3, $4, $5)`

func (r *PromotionRepository) Create(ctx context.Context, dbtx db.DBTX, w *loyalty.PromotionWindow) error {
	_, err := dbtx.Exec(ctx, createPromotionSQL, w.ID(), w.Name(), w.StartDate(), w.EndDate(), w.Multiplier())
	if err != nil {
		if isPgErrCode(err, pgErrCodeUniqueViolation) {
			return infra.WrapRepoErr("promotion window already exists", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to create promotion window", err)
	}
	return nil
}

func isPgErrCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}
