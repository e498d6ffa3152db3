package repositories

import (
	"context"
	"time"

	"grounds-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type WorkLogRepository struct {
	DB *pgxpool.Pool
}

func NewWorkLogRepository(db *pgxpool.Pool) *WorkLogRepository {
	return &WorkLogRepository{DB: db}
}

const workLogColumns = `w.id, w.project_id, COALESCE(p.name, ''), w.site_address, w.log_date,
	 w.personnel, w.departure, w.arrival, w.end_time, w.break_time, w.total_hours,
	 w.water_consumed, w.tasks, w.notes, w.hourly_rate, w.invoiced, w.signed_by_name,
	 w.is_archived, w.created_by_id, w.created_at, w.updated_at`

func scanWorkLog(row interface{ Scan(...any) error }) (*models.WorkLog, error) {
	var wl models.WorkLog
	err := row.Scan(&wl.ID, &wl.ProjectID, &wl.ProjectName, &wl.SiteAddress, &wl.Date,
		&wl.Personnel, &wl.Departure, &wl.Arrival, &wl.End, &wl.BreakTime, &wl.TotalHours,
		&wl.WaterConsumed, &wl.Tasks, &wl.Notes, &wl.HourlyRate, &wl.Invoiced, &wl.SignedByName,
		&wl.IsArchived, &wl.CreatedByID, &wl.CreatedAt, &wl.UpdatedAt)
	return &wl, err
}

// Create inserts a work log and its consumable lines in one transaction
func (r *WorkLogRepository) Create(ctx context.Context, wl *models.WorkLog) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO work_logs(project_id, site_address, log_date, personnel, departure, arrival,
		     end_time, break_time, total_hours, water_consumed, tasks, notes, hourly_rate,
		     invoiced, signed_by_name, created_by_id)
         VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
         RETURNING id, created_at, updated_at`,
		wl.ProjectID, wl.SiteAddress, wl.Date, wl.Personnel, wl.Departure, wl.Arrival,
		wl.End, wl.BreakTime, wl.TotalHours, wl.WaterConsumed, wl.Tasks, wl.Notes, wl.HourlyRate,
		wl.Invoiced, wl.SignedByName, wl.CreatedByID,
	).Scan(&wl.ID, &wl.CreatedAt, &wl.UpdatedAt)
	if err != nil {
		return err
	}

	if err := insertConsumables(ctx, tx, wl.ID, wl.Consumables); err != nil {
		return err
	}
	for i := range wl.Consumables {
		wl.Consumables[i].WorkLogID = wl.ID
	}

	return tx.Commit(ctx)
}

func insertConsumables(ctx context.Context, tx pgx.Tx, workLogID int, items []models.Consumable) error {
	for _, c := range items {
		_, err := tx.Exec(ctx,
			`INSERT INTO consumables(work_log_id, product, unit, quantity, unit_price, total)
             VALUES($1, $2, $3, $4, $5, $6)`,
			workLogID, c.Product, c.Unit, c.Quantity, c.UnitPrice, c.Total)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *WorkLogRepository) Get(ctx context.Context, id int) (*models.WorkLog, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+workLogColumns+`
         FROM work_logs w LEFT JOIN projects p ON p.id = w.project_id
         WHERE w.id=$1`, id)
	wl, err := scanWorkLog(row)
	if err != nil {
		return nil, err
	}

	wl.Consumables, err = r.listConsumables(ctx, wl.ID)
	return wl, err
}

func (r *WorkLogRepository) listConsumables(ctx context.Context, workLogID int) ([]models.Consumable, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, work_log_id, product, unit, quantity, unit_price, total
         FROM consumables WHERE work_log_id=$1 ORDER BY id`, workLogID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.Consumable
	for rows.Next() {
		var c models.Consumable
		if err := rows.Scan(&c.ID, &c.WorkLogID, &c.Product, &c.Unit, &c.Quantity, &c.UnitPrice, &c.Total); err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, nil
}

// List returns work logs newest first, optionally including archived ones.
// Consumables are not loaded here; list views don't show them.
func (r *WorkLogRepository) List(ctx context.Context, includeArchived bool) ([]*models.WorkLog, error) {
	query := `SELECT ` + workLogColumns + `
         FROM work_logs w LEFT JOIN projects p ON p.id = w.project_id`
	if !includeArchived {
		query += ` WHERE w.is_archived=false`
	}
	query += ` ORDER BY w.log_date DESC, w.id DESC`

	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*models.WorkLog
	for rows.Next() {
		wl, err := scanWorkLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, wl)
	}
	return logs, nil
}

// ListByProject returns non-archived work logs for one project, oldest first
func (r *WorkLogRepository) ListByProject(ctx context.Context, projectID int) ([]*models.WorkLog, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+workLogColumns+`
         FROM work_logs w LEFT JOIN projects p ON p.id = w.project_id
         WHERE w.project_id=$1 AND w.is_archived=false
         ORDER BY w.log_date, w.id`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*models.WorkLog
	for rows.Next() {
		wl, err := scanWorkLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, wl)
	}
	return logs, nil
}

// ListByDateRange returns non-archived work logs between two dates inclusive,
// with consumables loaded. Used by the monthly report generator.
func (r *WorkLogRepository) ListByDateRange(ctx context.Context, from, to time.Time) ([]*models.WorkLog, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+workLogColumns+`
         FROM work_logs w LEFT JOIN projects p ON p.id = w.project_id
         WHERE w.log_date >= $1 AND w.log_date <= $2 AND w.is_archived=false
         ORDER BY w.log_date, w.id`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*models.WorkLog
	for rows.Next() {
		wl, err := scanWorkLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, wl)
	}

	for _, wl := range logs {
		wl.Consumables, err = r.listConsumables(ctx, wl.ID)
		if err != nil {
			return nil, err
		}
	}
	return logs, nil
}

// ListByClient returns work logs on a portal client's projects, newest first
func (r *WorkLogRepository) ListByClient(ctx context.Context, clientID int) ([]*models.WorkLog, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+workLogColumns+`
         FROM work_logs w JOIN projects p ON p.id = w.project_id
         WHERE p.client_id=$1 AND w.is_archived=false
         ORDER BY w.log_date DESC, w.id DESC`, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*models.WorkLog
	for rows.Next() {
		wl, err := scanWorkLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, wl)
	}
	return logs, nil
}

// Update rewrites the work log and replaces its consumable lines
func (r *WorkLogRepository) Update(ctx context.Context, wl *models.WorkLog) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`UPDATE work_logs SET site_address=$1, log_date=$2, personnel=$3, departure=$4,
		     arrival=$5, end_time=$6, break_time=$7, total_hours=$8, water_consumed=$9,
		     tasks=$10, notes=$11, hourly_rate=$12, invoiced=$13, signed_by_name=$14,
		     updated_at=CURRENT_TIMESTAMP
         WHERE id=$15`,
		wl.SiteAddress, wl.Date, wl.Personnel, wl.Departure,
		wl.Arrival, wl.End, wl.BreakTime, wl.TotalHours, wl.WaterConsumed,
		wl.Tasks, wl.Notes, wl.HourlyRate, wl.Invoiced, wl.SignedByName, wl.ID)
	if err != nil {
		return err
	}

	// Replace consumable lines wholesale, the form always submits the full set
	if _, err := tx.Exec(ctx, `DELETE FROM consumables WHERE work_log_id=$1`, wl.ID); err != nil {
		return err
	}
	if err := insertConsumables(ctx, tx, wl.ID, wl.Consumables); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// SetArchived archives or restores a work log
func (r *WorkLogRepository) SetArchived(ctx context.Context, id int, archived bool) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE work_logs SET is_archived=$1, updated_at=CURRENT_TIMESTAMP WHERE id=$2`,
		archived, id)
	return err
}

// Delete permanently removes a work log and its consumables (cascade)
func (r *WorkLogRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM work_logs WHERE id=$1`, id)
	return err
}
