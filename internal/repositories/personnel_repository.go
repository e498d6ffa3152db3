package repositories

import (
	"context"

	"grounds-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PersonnelRepository struct {
	DB *pgxpool.Pool
}

func NewPersonnelRepository(db *pgxpool.Pool) *PersonnelRepository {
	return &PersonnelRepository{DB: db}
}

const personnelColumns = `pe.id, pe.name, pe.phone, pe.position, pe.team_id, COALESCE(t.name, ''),
	 pe.is_active, pe.is_archived, pe.created_at, pe.updated_at`

func scanPersonnel(row interface{ Scan(...any) error }) (*models.Personnel, error) {
	var p models.Personnel
	err := row.Scan(&p.ID, &p.Name, &p.Phone, &p.Position, &p.TeamID, &p.TeamName,
		&p.IsActive, &p.IsArchived, &p.CreatedAt, &p.UpdatedAt)
	return &p, err
}

func (r *PersonnelRepository) Create(ctx context.Context, p *models.Personnel) error {
	if p.Position == "" {
		p.Position = "jardinier" // Default position
	}
	if !p.IsActive {
		p.IsActive = true // Default to active
	}
	return r.DB.QueryRow(ctx,
		`INSERT INTO personnel(name, phone, position, team_id, is_active)
         VALUES($1, $2, $3, $4, $5)
         RETURNING id, created_at, updated_at`,
		p.Name, p.Phone, p.Position, p.TeamID, p.IsActive,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *PersonnelRepository) Get(ctx context.Context, id int) (*models.Personnel, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+personnelColumns+`
         FROM personnel pe LEFT JOIN teams t ON t.id = pe.team_id
         WHERE pe.id=$1`, id)
	return scanPersonnel(row)
}

// List returns all personnel, optionally including archived ones
func (r *PersonnelRepository) List(ctx context.Context, includeArchived bool) ([]*models.Personnel, error) {
	query := `SELECT ` + personnelColumns + `
         FROM personnel pe LEFT JOIN teams t ON t.id = pe.team_id`
	if !includeArchived {
		query += ` WHERE pe.is_archived=false`
	}
	query += ` ORDER BY pe.name`

	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var people []*models.Personnel
	for rows.Next() {
		p, err := scanPersonnel(rows)
		if err != nil {
			return nil, err
		}
		people = append(people, p)
	}
	return people, nil
}

// ListByTeam returns active, non-archived members of one team
func (r *PersonnelRepository) ListByTeam(ctx context.Context, teamID int) ([]*models.Personnel, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+personnelColumns+`
         FROM personnel pe LEFT JOIN teams t ON t.id = pe.team_id
         WHERE pe.team_id=$1 AND pe.is_active=true AND pe.is_archived=false
         ORDER BY pe.name`, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var people []*models.Personnel
	for rows.Next() {
		p, err := scanPersonnel(rows)
		if err != nil {
			return nil, err
		}
		people = append(people, p)
	}
	return people, nil
}

// Update updates an existing personnel record
func (r *PersonnelRepository) Update(ctx context.Context, p *models.Personnel) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE personnel SET name=$1, phone=$2, position=$3, team_id=$4, is_active=$5,
		     updated_at=CURRENT_TIMESTAMP
         WHERE id=$6`,
		p.Name, p.Phone, p.Position, p.TeamID, p.IsActive, p.ID)
	return err
}

// SetArchived archives or restores a personnel record
func (r *PersonnelRepository) SetArchived(ctx context.Context, id int, archived bool) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE personnel SET is_archived=$1, updated_at=CURRENT_TIMESTAMP WHERE id=$2`,
		archived, id)
	return err
}

// Delete permanently removes a personnel record
func (r *PersonnelRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM personnel WHERE id=$1`, id)
	return err
}
