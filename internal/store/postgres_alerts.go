package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"alerts-backend/internal/models"
)

func (p *Postgres) CreateAlert(ctx context.Context, alert models.Alert) (string, error) {
	id := uuid.NewString()

	query := `
	INSERT INTO alerts (
		id, client_id, client_name, alert_type, severity, title, description,
		source, metadata, status, created_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	status := alert.Status
	if status == "" {
		status = models.StatusOpen
	}
	_, err := p.pool.Exec(ctx, query,
		id, alert.ClientID, alert.ClientName, alert.AlertType, string(alert.Severity),
		alert.Title, alert.Description, alert.Source, alert.Metadata, string(status),
		alert.CreatedAt, alert.UpdatedAt,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert alert: %w", err)
	}
	return id, nil
}

func (p *Postgres) GetAlert(ctx context.Context, id string) (models.Alert, error) {
	query := `SELECT ` + alertColumns + ` FROM alerts WHERE id::text = $1`
	a, err := scanAlert(p.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Alert{}, ErrNotFound
		}
		return models.Alert{}, fmt.Errorf("failed to get alert %s: %w", id, err)
	}
	return a, nil
}

func (p *Postgres) FindOneAlert(ctx context.Context, f Filter) (models.Alert, error) {
	where, args := buildAlertWhere(f)
	query := `SELECT ` + alertColumns + ` FROM alerts` + where + ` ORDER BY created_at DESC LIMIT 1`
	a, err := scanAlert(p.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Alert{}, ErrNotFound
		}
		return models.Alert{}, fmt.Errorf("failed to find alert: %w", err)
	}
	return a, nil
}

func (p *Postgres) FindAlerts(ctx context.Context, f Filter, limit int) ([]models.Alert, error) {
	where, args := buildAlertWhere(f)
	query := `SELECT ` + alertColumns + ` FROM alerts` + where + ` ORDER BY created_at DESC`
	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to find alerts: %w", err)
	}
	defer rows.Close()

	var alerts []models.Alert
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan alert: %w", err)
		}
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}

func (p *Postgres) UpdateAlert(ctx context.Context, id string, u Update) (bool, error) {
	sets := []string{"updated_at = NOW()"}
	var args []interface{}

	set := func(col string, val interface{}) {
		args = append(args, val)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if u.Status != nil {
		set("status", string(*u.Status))
	}
	if u.AssignedTo != nil {
		set("assigned_to", *u.AssignedTo)
	}
	if u.ResolvedBy != nil {
		set("resolved_by", *u.ResolvedBy)
	}
	if u.ResolvedAt != nil {
		set("resolved_at", *u.ResolvedAt)
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE alerts SET %s WHERE id::text = $%d",
		joinSets(sets), len(args))

	tag, err := p.pool.Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to update alert %s: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (p *Postgres) DeleteAlert(ctx context.Context, id string) (bool, error) {
	tag, err := p.pool.Exec(ctx, `DELETE FROM alerts WHERE id::text = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete alert %s: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (p *Postgres) CountAlerts(ctx context.Context, f Filter) (int, error) {
	where, args := buildAlertWhere(f)
	var count int
	if err := p.pool.QueryRow(ctx, `SELECT COUNT(*) FROM alerts`+where, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count alerts: %w", err)
	}
	return count, nil
}

func (p *Postgres) RecentResolved(ctx context.Context, limit int) ([]models.Alert, error) {
	return p.FindAlerts(ctx, Filter{Statuses: []models.Status{models.StatusResolved}}, limit)
}

func joinSets(sets []string) string {
	out := sets[0]
	for _, s := range sets[1:] {
		out += ", " + s
	}
	return out
}
