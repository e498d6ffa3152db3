package repositories

import (
	"context"

	"grounds-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type TeamRepository struct {
	DB *pgxpool.Pool
}

func NewTeamRepository(db *pgxpool.Pool) *TeamRepository {
	return &TeamRepository{DB: db}
}

func (r *TeamRepository) Create(ctx context.Context, t *models.Team) error {
	if t.Color == "" {
		t.Color = "#2e7d32" // Company green
	}
	return r.DB.QueryRow(ctx,
		`INSERT INTO teams(name, color) VALUES($1, $2)
         RETURNING id, created_at, updated_at`,
		t.Name, t.Color,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

func (r *TeamRepository) Get(ctx context.Context, id int) (*models.Team, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, name, color, created_at, updated_at FROM teams WHERE id=$1`, id)

	var team models.Team
	err := row.Scan(&team.ID, &team.Name, &team.Color, &team.CreatedAt, &team.UpdatedAt)
	return &team, err
}

// List returns all teams
func (r *TeamRepository) List(ctx context.Context) ([]*models.Team, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, name, color, created_at, updated_at FROM teams ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teams []*models.Team
	for rows.Next() {
		var team models.Team
		if err := rows.Scan(&team.ID, &team.Name, &team.Color, &team.CreatedAt, &team.UpdatedAt); err != nil {
			return nil, err
		}
		teams = append(teams, &team)
	}
	return teams, nil
}

// Update updates an existing team
func (r *TeamRepository) Update(ctx context.Context, t *models.Team) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE teams SET name=$1, color=$2, updated_at=CURRENT_TIMESTAMP WHERE id=$3`,
		t.Name, t.Color, t.ID)
	return err
}

// Delete removes a team. Members and projects keep existing, their
// team_id is set NULL by the schema.
func (r *TeamRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM teams WHERE id=$1`, id)
	return err
}
