package services

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"grounds-backend/internal/apperrors"
	"grounds-backend/internal/audit"
	"grounds-backend/internal/cache"
	"grounds-backend/internal/filtering"
	"grounds-backend/internal/models"
	"grounds-backend/internal/repositories"
)

const auditEntityWorkLog = "worklog"

type WorkLogService struct {
	Repo        *repositories.WorkLogRepository
	ProjectRepo *repositories.ProjectRepository
	Recorder    *audit.Recorder

	filterMu sync.Mutex
	filter   *filtering.Engine[*models.WorkLog]
}

func NewWorkLogService(repo *repositories.WorkLogRepository, projectRepo *repositories.ProjectRepository, recorder *audit.Recorder) *WorkLogService {
	return &WorkLogService{
		Repo:        repo,
		ProjectRepo: projectRepo,
		Recorder:    recorder,
		filter:      filtering.NewEngine(workLogField),
	}
}

// workLogField resolves the filterable and sortable fields of a work log
func workLogField(wl *models.WorkLog, field string) (any, bool) {
	switch field {
	case "project_name":
		return wl.ProjectName, true
	case "site_address":
		return wl.SiteAddress, true
	case "tasks":
		return wl.Tasks, true
	case "notes":
		return wl.Notes, true
	case "personnel":
		return wl.Personnel, true
	case "date":
		return wl.Date, true
	case "total_hours":
		return wl.TotalHours, true
	case "break_time":
		return wl.BreakTime, true
	case "invoiced":
		return wl.Invoiced, true
	case "is_archived":
		return wl.IsArchived, true
	default:
		return nil, false
	}
}

// FilterWorkLogs loads work logs and runs a filter state over them
func (s *WorkLogService) FilterWorkLogs(ctx context.Context, st filtering.State, includeArchived bool) ([]*models.WorkLog, error) {
	if err := st.Validate(); err != nil {
		return nil, apperrors.Wrap(apperrors.Validation, err.Error(), err)
	}
	logs, err := s.Repo.List(ctx, includeArchived)
	if err != nil {
		return nil, err
	}

	s.filterMu.Lock()
	defer s.filterMu.Unlock()
	return s.filter.Apply(logs, st), nil
}

func parseClock(value string) (time.Duration, error) {
	t, err := time.Parse("15:04", value)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", value)
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

func validateWorkLog(wl *models.WorkLog) error {
	if wl.Date.IsZero() {
		return apperrors.New(apperrors.Validation, "work log date is required")
	}
	if wl.BreakTime < 0 {
		return apperrors.New(apperrors.Validation, "break time cannot be negative")
	}
	for _, v := range []string{wl.Departure, wl.Arrival, wl.End} {
		if v == "" {
			continue // times are optional on blank worksheets
		}
		if _, err := parseClock(v); err != nil {
			return apperrors.Wrap(apperrors.Validation, err.Error(), err)
		}
	}
	return nil
}

// computeTotals fills in derived values: total hours from the arrival/end
// clock times minus break, and consumable line totals. Manually entered
// totals are kept when the clock times are absent.
func computeTotals(wl *models.WorkLog) {
	if wl.Arrival != "" && wl.End != "" {
		arrival, err1 := parseClock(wl.Arrival)
		end, err2 := parseClock(wl.End)
		if err1 == nil && err2 == nil && end > arrival {
			worked := end - arrival
			hours := worked.Hours() - wl.BreakTime
			if hours < 0 {
				hours = 0
			}
			wl.TotalHours = hours
		}
	}

	for i := range wl.Consumables {
		c := &wl.Consumables[i]
		c.Total = c.Quantity * c.UnitPrice
	}
}

// CreateWorkLog creates a work log. A log without a project is a blank
// worksheet; with one, the site address defaults to the project's.
func (s *WorkLogService) CreateWorkLog(ctx context.Context, wl *models.WorkLog, actor audit.Actor) error {
	if err := validateWorkLog(wl); err != nil {
		return err
	}

	if wl.ProjectID != nil {
		project, err := s.ProjectRepo.Get(ctx, *wl.ProjectID)
		if err != nil {
			return apperrors.New(apperrors.Validation, "project not found")
		}
		if wl.SiteAddress == "" {
			wl.SiteAddress = project.Address
		}
	} else if wl.SiteAddress == "" {
		return apperrors.New(apperrors.Validation, "blank worksheets need a site address")
	}

	computeTotals(wl)
	wl.CreatedByID = actor.UserID

	if err := s.Repo.Create(ctx, wl); err != nil {
		return err
	}
	cache.InvalidateWorkLogCaches(ctx)
	return s.Recorder.TrackCreate(ctx, auditEntityWorkLog, strconv.Itoa(wl.ID), wl, actor)
}

func (s *WorkLogService) GetWorkLog(ctx context.Context, id int) (*models.WorkLog, error) {
	return s.Repo.Get(ctx, id)
}

// ListWorkLogs returns work logs newest first
func (s *WorkLogService) ListWorkLogs(ctx context.Context, includeArchived bool) ([]*models.WorkLog, error) {
	return s.Repo.List(ctx, includeArchived)
}

// ListByProject returns a project's work logs oldest first
func (s *WorkLogService) ListByProject(ctx context.Context, projectID int) ([]*models.WorkLog, error) {
	return s.Repo.ListByProject(ctx, projectID)
}

// UpdateWorkLog applies the update and records the per-field diff
func (s *WorkLogService) UpdateWorkLog(ctx context.Context, wl *models.WorkLog, actor audit.Actor) error {
	if err := validateWorkLog(wl); err != nil {
		return err
	}
	before, err := s.Repo.Get(ctx, wl.ID)
	if err != nil {
		return err
	}
	// Project binding is immutable after creation
	wl.ProjectID = before.ProjectID
	wl.CreatedByID = before.CreatedByID

	computeTotals(wl)

	if err := s.Repo.Update(ctx, wl); err != nil {
		return err
	}
	cache.InvalidateWorkLogCaches(ctx)
	return s.Recorder.TrackUpdate(ctx, auditEntityWorkLog, strconv.Itoa(wl.ID), before, wl, actor)
}

// ArchiveWorkLog hides a work log from lists without losing its history
func (s *WorkLogService) ArchiveWorkLog(ctx context.Context, id int, actor audit.Actor) error {
	if err := s.Repo.SetArchived(ctx, id, true); err != nil {
		return err
	}
	cache.InvalidateWorkLogCaches(ctx)
	return s.Recorder.TrackArchive(ctx, auditEntityWorkLog, strconv.Itoa(id), actor)
}

// RestoreWorkLog brings an archived work log back
func (s *WorkLogService) RestoreWorkLog(ctx context.Context, id int, actor audit.Actor) error {
	if err := s.Repo.SetArchived(ctx, id, false); err != nil {
		return err
	}
	cache.InvalidateWorkLogCaches(ctx)
	return s.Recorder.TrackRestore(ctx, auditEntityWorkLog, strconv.Itoa(id), actor)
}

// DeleteWorkLog removes a work log permanently, keeping its final snapshot
// in the audit trail
func (s *WorkLogService) DeleteWorkLog(ctx context.Context, id int, actor audit.Actor) error {
	wl, err := s.Repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	cache.InvalidateWorkLogCaches(ctx)
	return s.Recorder.TrackDelete(ctx, auditEntityWorkLog, strconv.Itoa(id), wl, actor)
}
