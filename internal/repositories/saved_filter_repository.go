package repositories

import (
	"context"

	"grounds-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SavedFilterRepository struct {
	DB *pgxpool.Pool
}

func NewSavedFilterRepository(db *pgxpool.Pool) *SavedFilterRepository {
	return &SavedFilterRepository{DB: db}
}

// Save upserts a preset. Saving under an existing name overwrites it.
func (r *SavedFilterRepository) Save(ctx context.Context, f *models.SavedFilter) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO saved_filters(name, scope, config, owner_id)
         VALUES($1, $2, $3, $4)
         ON CONFLICT (owner_id, scope, name)
         DO UPDATE SET config=EXCLUDED.config, updated_at=CURRENT_TIMESTAMP
         RETURNING id, created_at, updated_at`,
		f.Name, f.Scope, f.Config, f.OwnerID,
	).Scan(&f.ID, &f.CreatedAt, &f.UpdatedAt)
}

func (r *SavedFilterRepository) Get(ctx context.Context, id int) (*models.SavedFilter, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, name, scope, config, owner_id, created_at, updated_at
         FROM saved_filters WHERE id=$1`, id)

	var f models.SavedFilter
	err := row.Scan(&f.ID, &f.Name, &f.Scope, &f.Config, &f.OwnerID, &f.CreatedAt, &f.UpdatedAt)
	return &f, err
}

// ListByOwner returns one user's presets for a scope
func (r *SavedFilterRepository) ListByOwner(ctx context.Context, ownerID int, scope string) ([]*models.SavedFilter, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, name, scope, config, owner_id, created_at, updated_at
         FROM saved_filters WHERE owner_id=$1 AND scope=$2 ORDER BY name`, ownerID, scope)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var filters []*models.SavedFilter
	for rows.Next() {
		var f models.SavedFilter
		err := rows.Scan(&f.ID, &f.Name, &f.Scope, &f.Config, &f.OwnerID, &f.CreatedAt, &f.UpdatedAt)
		if err != nil {
			return nil, err
		}
		filters = append(filters, &f)
	}
	return filters, nil
}

// Delete removes a preset, scoped to its owner so users can't delete
// each other's presets
func (r *SavedFilterRepository) Delete(ctx context.Context, id, ownerID int) error {
	tag, err := r.DB.Exec(ctx,
		`DELETE FROM saved_filters WHERE id=$1 AND owner_id=$2`, id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
