package repositories

import (
	"context"

	"grounds-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ProjectRepository struct {
	DB *pgxpool.Pool
}

func NewProjectRepository(db *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{DB: db}
}

const projectColumns = `p.id, p.name, p.address, p.client_id, p.team_id, COALESCE(t.name, ''),
	 p.annual_visits, p.visit_duration, p.contract_start, p.contract_end,
	 p.irrigation_on, p.notes, p.is_archived, p.created_at, p.updated_at`

func scanProject(row interface{ Scan(...any) error }) (*models.Project, error) {
	var p models.Project
	err := row.Scan(&p.ID, &p.Name, &p.Address, &p.ClientID, &p.TeamID, &p.TeamName,
		&p.AnnualVisits, &p.VisitDuration, &p.ContractStart, &p.ContractEnd,
		&p.IrrigationOn, &p.Notes, &p.IsArchived, &p.CreatedAt, &p.UpdatedAt)
	return &p, err
}

func (r *ProjectRepository) Create(ctx context.Context, p *models.Project) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO projects(name, address, client_id, team_id, annual_visits, visit_duration,
		     contract_start, contract_end, irrigation_on, notes)
         VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
         RETURNING id, created_at, updated_at`,
		p.Name, p.Address, p.ClientID, p.TeamID, p.AnnualVisits, p.VisitDuration,
		p.ContractStart, p.ContractEnd, p.IrrigationOn, p.Notes,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *ProjectRepository) Get(ctx context.Context, id int) (*models.Project, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+projectColumns+`
         FROM projects p LEFT JOIN teams t ON t.id = p.team_id
         WHERE p.id=$1`, id)
	return scanProject(row)
}

// List returns all projects, optionally including archived ones
func (r *ProjectRepository) List(ctx context.Context, includeArchived bool) ([]*models.Project, error) {
	query := `SELECT ` + projectColumns + `
         FROM projects p LEFT JOIN teams t ON t.id = p.team_id`
	if !includeArchived {
		query += ` WHERE p.is_archived=false`
	}
	query += ` ORDER BY p.name`

	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []*models.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, nil
}

// ListActive returns non-archived projects, the input of the visit schedule
func (r *ProjectRepository) ListActive(ctx context.Context) ([]*models.Project, error) {
	return r.List(ctx, false)
}

// ListByClient returns non-archived projects belonging to a portal client
func (r *ProjectRepository) ListByClient(ctx context.Context, clientID int) ([]*models.Project, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+projectColumns+`
         FROM projects p LEFT JOIN teams t ON t.id = p.team_id
         WHERE p.client_id=$1 AND p.is_archived=false
         ORDER BY p.name`, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []*models.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, nil
}

// Update updates an existing project
func (r *ProjectRepository) Update(ctx context.Context, p *models.Project) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE projects SET name=$1, address=$2, client_id=$3, team_id=$4, annual_visits=$5,
		     visit_duration=$6, contract_start=$7, contract_end=$8, irrigation_on=$9, notes=$10,
		     updated_at=CURRENT_TIMESTAMP
         WHERE id=$11`,
		p.Name, p.Address, p.ClientID, p.TeamID, p.AnnualVisits,
		p.VisitDuration, p.ContractStart, p.ContractEnd, p.IrrigationOn, p.Notes, p.ID)
	return err
}

// SetArchived archives or restores a project
func (r *ProjectRepository) SetArchived(ctx context.Context, id int, archived bool) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE projects SET is_archived=$1, updated_at=CURRENT_TIMESTAMP WHERE id=$2`,
		archived, id)
	return err
}

// Delete permanently removes a project. Work logs keep their copy of the
// site address, the FK is set NULL by the schema.
func (r *ProjectRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM projects WHERE id=$1`, id)
	return err
}
