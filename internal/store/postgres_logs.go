package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"alerts-backend/internal/models"
)

func (p *Postgres) AppendNotificationLog(ctx context.Context, entry models.NotificationLogEntry) error {
	query := `
	INSERT INTO notification_log (id, alert_id, channel, recipient, status, reason, attempted_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := p.pool.Exec(ctx, query,
		uuid.NewString(), entry.AlertID, entry.Channel, entry.Recipient,
		string(entry.Status), entry.Reason, entry.AttemptedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append notification log: %w", err)
	}
	return nil
}

func (p *Postgres) NotificationLog(ctx context.Context, alertID string, limit int) ([]models.NotificationLogEntry, error) {
	query := `
	SELECT id::text, alert_id, channel, recipient, status, reason, attempted_at
	FROM notification_log`
	var args []interface{}
	if alertID != "" {
		args = append(args, alertID)
		query += " WHERE alert_id = $1"
	}
	query += " ORDER BY attempted_at DESC"
	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get notification log: %w", err)
	}
	defer rows.Close()

	var entries []models.NotificationLogEntry
	for rows.Next() {
		var e models.NotificationLogEntry
		if err := rows.Scan(&e.ID, &e.AlertID, &e.Channel, &e.Recipient, &e.Status, &e.Reason, &e.AttemptedAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification log entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (p *Postgres) AppendSystemLog(ctx context.Context, entry models.SystemLogEntry) error {
	query := `
	INSERT INTO system_log (id, origin, level, message, metadata, timestamp)
	VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := p.pool.Exec(ctx, query,
		uuid.NewString(), entry.Origin, entry.Level, entry.Message, entry.Metadata, entry.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to append system log: %w", err)
	}
	return nil
}

func (p *Postgres) SystemLogs(ctx context.Context, f SystemLogFilter, limit int) ([]models.SystemLogEntry, error) {
	var conds []string
	var args []interface{}
	if f.Level != "" {
		args = append(args, f.Level)
		conds = append(conds, fmt.Sprintf("level = $%d", len(args)))
	}
	if f.Origin != "" {
		args = append(args, f.Origin)
		conds = append(conds, fmt.Sprintf("origin = $%d", len(args)))
	}

	query := `SELECT id::text, origin, level, message, metadata, timestamp FROM system_log`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY timestamp DESC"
	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get system logs: %w", err)
	}
	defer rows.Close()

	var entries []models.SystemLogEntry
	for rows.Next() {
		var e models.SystemLogEntry
		if err := rows.Scan(&e.ID, &e.Origin, &e.Level, &e.Message, &e.Metadata, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan system log entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
