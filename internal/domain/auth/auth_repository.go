package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/citydata/citydata-api/internal/types"
)

var _ Repository = (*PostgresRepository)(nil)

// Repository defines the contract for credential lookups.
type Repository interface {
	// GetActiveCredential returns the customer behind an active, non-expired
	// API key. Returns types.ErrNotFound when no such key exists.
	GetActiveCredential(ctx context.Context, keyID string) (*types.Customer, error)
}

// PostgresRepository runs credential lookups over a database/sql handle.
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const getActiveCredentialQuery = `
	SELECT c.customer_id, c.company_name, c.email, c.subscription_tier, c.monthly_limit, c.created_at
	FROM customers c
	JOIN api_keys ak ON c.customer_id = ak.customer_id
	WHERE ak.key_id = $1
	  AND ak.is_active = TRUE
	  AND (ak.expires_at IS NULL OR ak.expires_at > NOW())
`

func (r *PostgresRepository) GetActiveCredential(ctx context.Context, keyID string) (*types.Customer, error) {
	var c types.Customer
	err := r.db.QueryRowContext(ctx, getActiveCredentialQuery, keyID).Scan(
		&c.CustomerID,
		&c.CompanyName,
		&c.Email,
		&c.SubscriptionTier,
		&c.MonthlyLimit,
		&c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up api key: %w", err)
	}
	return &c, nil
}
