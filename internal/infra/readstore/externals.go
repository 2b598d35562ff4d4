package readstore

import (
	"context"
	"errors"

	"petshop-loyalty/internal/infra"
	"petshop-loyalty/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ExternalReadStore reads the customer and product tables owned by the
// catalog/customer-management collaborators. Only the columns the renewal
// engine needs are exposed.
type ExternalReadStore struct {
	db db.DBTX
}

func NewExternalReadStore(dbtx db.DBTX) *ExternalReadStore {
	return &ExternalReadStore{db: dbtx}
}

const findProductNameSQL = `
SELECT name FROM products WHERE id = $1`

func (r *ExternalReadStore) FindProductName(ctx context.Context, id uuid.UUID) (string, error) {
	var name string
	err := r.db.QueryRow(ctx, findProductNameSQL, id).Scan(&name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", infra.WrapRepoErr("product not found", err, infra.KindNotFound)
		}
		return "", infra.WrapRepoErr("failed to find product", err)
	}
	return name, nil
}

const findCustomerAddressSQL = `
SELECT address FROM customers WHERE id = $1`

func (r *ExternalReadStore) FindCustomerAddress(ctx context.Context, customerID int64) (string, error) {
	var address string
	err := r.db.QueryRow(ctx, findCustomerAddressSQL, customerID).Scan(&address)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", infra.WrapRepoErr("customer not found", err, infra.KindNotFound)
		}
		return "", infra.WrapRepoErr("failed to find customer address", err)
	}
	return address, nil
}
