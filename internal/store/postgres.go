package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"alerts-backend/internal/models"
)

// Postgres is the pgx-backed Store implementation.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres connects a pool for the given DSN.
func NewPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

func (p *Postgres) Ping(ctx context.Context) error {
	if err := p.pool.Ping(ctx); err != nil {
		return fmt.Errorf("database unreachable: %w", err)
	}
	return nil
}

func (p *Postgres) Close() {
	p.pool.Close()
}

// buildAlertWhere translates a Filter into a WHERE clause and args,
// starting at placeholder $1.
func buildAlertWhere(f Filter) (string, []interface{}) {
	var conds []string
	var args []interface{}

	add := func(cond string, arg interface{}) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.ClientID != "" {
		add("client_id = $%d", f.ClientID)
	}
	if f.AlertType != "" {
		add("alert_type = $%d", f.AlertType)
	}
	if f.Severity != "" {
		add("severity = $%d", string(f.Severity))
	}
	if len(f.Statuses) > 0 {
		statuses := make([]string, len(f.Statuses))
		for i, s := range f.Statuses {
			statuses[i] = string(s)
		}
		add("status = ANY($%d)", statuses)
	}
	if !f.CreatedAfter.IsZero() {
		add("created_at >= $%d", f.CreatedAfter)
	}
	if !f.ResolvedAfter.IsZero() {
		add("resolved_at >= $%d", f.ResolvedAfter)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

const alertColumns = `id::text, client_id, client_name, alert_type, severity, title, description,
       source, metadata, status, assigned_to, resolved_by, resolved_at, created_at, updated_at`

func scanAlert(row interface{ Scan(...interface{}) error }) (models.Alert, error) {
	var a models.Alert
	err := row.Scan(
		&a.ID, &a.ClientID, &a.ClientName, &a.AlertType, &a.Severity, &a.Title,
		&a.Description, &a.Source, &a.Metadata, &a.Status, &a.AssignedTo,
		&a.ResolvedBy, &a.ResolvedAt, &a.CreatedAt, &a.UpdatedAt,
	)
	return a, err
}
