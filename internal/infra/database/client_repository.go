package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/xavierca1/callflex-webhooks/internal/entity"
)

type ClientRepository struct {
	DB *sql.DB
}

func NewClientRepository(db *sql.DB) *ClientRepository {
	return &ClientRepository{DB: db}
}

func (r *ClientRepository) Insert(ctx context.Context, c *entity.ClientRecord) (string, error) {
	query := `
		INSERT INTO clients (
			business_name,
			contact_email,
			prospecting_niche,
			prospecting_location,
			subscription_status,
			monthly_plan
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	var id string
	err := r.DB.QueryRowContext(ctx, query,
		c.BusinessName,
		c.ContactEmail,
		c.ProspectingNiche,
		c.ProspectingLocation,
		string(c.SubscriptionStatus),
		c.MonthlyPlan,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("failed to insert client: %w", err)
	}

	return id, nil
}

func (r *ClientRepository) ActivateByEmail(ctx context.Context, email string) (int64, error) {
	query := `UPDATE clients SET subscription_status = $1 WHERE contact_email = $2`

	res, err := r.DB.ExecContext(ctx, query, string(entity.StatusActive), email)
	if err != nil {
		return 0, fmt.Errorf("failed to activate clients: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n, nil
}

func (r *ClientRepository) Ping(ctx context.Context) error {
	return r.DB.PingContext(ctx)
}
