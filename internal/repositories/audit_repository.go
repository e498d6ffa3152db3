package repositories

import (
	"context"
	"encoding/json"
	"strconv"

	"grounds-backend/internal/audit"
	"grounds-backend/internal/metrics"

	"github.com/jackc/pgx/v5/pgxpool"
)

// AuditRepository persists audit entries in the audit_entries table.
// It implements audit.Store. Change sets travel as JSONB.
type AuditRepository struct {
	DB *pgxpool.Pool
}

func NewAuditRepository(db *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{DB: db}
}

func (r *AuditRepository) Insert(ctx context.Context, e *audit.Entry) error {
	changes, err := json.Marshal(e.Changes)
	if err != nil {
		return err
	}
	_, err = r.DB.Exec(ctx,
		`INSERT INTO audit_entries(id, entity_type, entity_id, action, changes, user_id, user_name, created_at)
         VALUES($1, $2, $3, $4, $5, $6, $7, $8)`,
		e.ID, e.EntityType, e.EntityID, e.Action, changes, e.UserID, e.UserName, e.CreatedAt)
	if err == nil {
		metrics.AuditEntriesWritten.WithLabelValues(string(e.Action)).Inc()
	}
	return err
}

func (r *AuditRepository) Query(ctx context.Context, f audit.QueryFilter) ([]*audit.Entry, error) {
	query := `SELECT id, entity_type, entity_id, action, changes, user_id, user_name, created_at
         FROM audit_entries`

	var args []any
	if f.EntityType != "" && f.EntityID != "" {
		query += ` WHERE entity_type=$1 AND entity_id=$2`
		args = append(args, f.EntityType, f.EntityID)
	}
	query += ` ORDER BY created_at DESC, id DESC`
	if f.Limit > 0 {
		query += ` LIMIT $` + strconv.Itoa(len(args)+1)
		args = append(args, f.Limit)
	}

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*audit.Entry
	for rows.Next() {
		var e audit.Entry
		var changes []byte
		err := rows.Scan(&e.ID, &e.EntityType, &e.EntityID, &e.Action, &changes,
			&e.UserID, &e.UserName, &e.CreatedAt)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(changes, &e.Changes); err != nil {
			return nil, err
		}
		entries = append(entries, &e)
	}
	return entries, nil
}
