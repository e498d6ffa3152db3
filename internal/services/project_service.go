package services

import (
	"context"
	"strconv"
	"sync"

	"grounds-backend/internal/apperrors"
	"grounds-backend/internal/audit"
	"grounds-backend/internal/cache"
	"grounds-backend/internal/filtering"
	"grounds-backend/internal/models"
	"grounds-backend/internal/repositories"
)

const auditEntityProject = "project"

type ProjectService struct {
	Repo     *repositories.ProjectRepository
	Recorder *audit.Recorder

	filterMu sync.Mutex
	filter   *filtering.Engine[*models.Project]
}

func NewProjectService(repo *repositories.ProjectRepository, recorder *audit.Recorder) *ProjectService {
	return &ProjectService{
		Repo:     repo,
		Recorder: recorder,
		filter:   filtering.NewEngine(projectField),
	}
}

// projectField resolves the filterable and sortable fields of a project
func projectField(p *models.Project, field string) (any, bool) {
	switch field {
	case "name":
		return p.Name, true
	case "address":
		return p.Address, true
	case "team_name":
		return p.TeamName, true
	case "notes":
		return p.Notes, true
	case "annual_visits":
		return float64(p.AnnualVisits), true
	case "visit_duration":
		return p.VisitDuration, true
	case "irrigation_on":
		return p.IrrigationOn, true
	case "is_archived":
		return p.IsArchived, true
	case "contract_start":
		if p.ContractStart == nil {
			return nil, false
		}
		return *p.ContractStart, true
	case "contract_end":
		if p.ContractEnd == nil {
			return nil, false
		}
		return *p.ContractEnd, true
	case "created_at":
		return p.CreatedAt, true
	default:
		return nil, false
	}
}

// FilterProjects loads projects and runs a filter state over them
func (s *ProjectService) FilterProjects(ctx context.Context, st filtering.State, includeArchived bool) ([]*models.Project, error) {
	if err := st.Validate(); err != nil {
		return nil, apperrors.Wrap(apperrors.Validation, err.Error(), err)
	}
	projects, err := s.Repo.List(ctx, includeArchived)
	if err != nil {
		return nil, err
	}

	// The engine memoizes per state but is not concurrency safe
	s.filterMu.Lock()
	defer s.filterMu.Unlock()
	return s.filter.Apply(projects, st), nil
}

func validateProject(p *models.Project) error {
	if p.Name == "" {
		return apperrors.New(apperrors.Validation, "project name is required")
	}
	if p.AnnualVisits < 0 {
		return apperrors.New(apperrors.Validation, "annual visits cannot be negative")
	}
	if p.VisitDuration < 0 {
		return apperrors.New(apperrors.Validation, "visit duration cannot be negative")
	}
	if p.ContractStart != nil && p.ContractEnd != nil && p.ContractEnd.Before(*p.ContractStart) {
		return apperrors.New(apperrors.Validation, "contract end cannot precede contract start")
	}
	return nil
}

func (s *ProjectService) CreateProject(ctx context.Context, p *models.Project, actor audit.Actor) error {
	if err := validateProject(p); err != nil {
		return err
	}
	if err := s.Repo.Create(ctx, p); err != nil {
		return err
	}
	cache.InvalidateProjectCaches(ctx)
	return s.Recorder.TrackCreate(ctx, auditEntityProject, strconv.Itoa(p.ID), p, actor)
}

func (s *ProjectService) GetProject(ctx context.Context, id int) (*models.Project, error) {
	return s.Repo.Get(ctx, id)
}

// ListProjects returns projects, optionally including archived ones
func (s *ProjectService) ListProjects(ctx context.Context, includeArchived bool) ([]*models.Project, error) {
	return s.Repo.List(ctx, includeArchived)
}

// UpdateProject applies the update and records the per-field diff
func (s *ProjectService) UpdateProject(ctx context.Context, p *models.Project, actor audit.Actor) error {
	if err := validateProject(p); err != nil {
		return err
	}
	before, err := s.Repo.Get(ctx, p.ID)
	if err != nil {
		return err
	}
	if err := s.Repo.Update(ctx, p); err != nil {
		return err
	}
	cache.InvalidateProjectCaches(ctx)
	return s.Recorder.TrackUpdate(ctx, auditEntityProject, strconv.Itoa(p.ID), before, p, actor)
}

// ArchiveProject hides a project from lists and the schedule without
// losing its history
func (s *ProjectService) ArchiveProject(ctx context.Context, id int, actor audit.Actor) error {
	if err := s.Repo.SetArchived(ctx, id, true); err != nil {
		return err
	}
	cache.InvalidateProjectCaches(ctx)
	return s.Recorder.TrackArchive(ctx, auditEntityProject, strconv.Itoa(id), actor)
}

// RestoreProject brings an archived project back
func (s *ProjectService) RestoreProject(ctx context.Context, id int, actor audit.Actor) error {
	if err := s.Repo.SetArchived(ctx, id, false); err != nil {
		return err
	}
	cache.InvalidateProjectCaches(ctx)
	return s.Recorder.TrackRestore(ctx, auditEntityProject, strconv.Itoa(id), actor)
}

// DeleteProject removes a project permanently, keeping its final snapshot
// in the audit trail
func (s *ProjectService) DeleteProject(ctx context.Context, id int, actor audit.Actor) error {
	p, err := s.Repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	cache.InvalidateProjectCaches(ctx)
	return s.Recorder.TrackDelete(ctx, auditEntityProject, strconv.Itoa(id), p, actor)
}
