package services

import (
	"context"
	"strconv"

	"grounds-backend/internal/apperrors"
	"grounds-backend/internal/audit"
	"grounds-backend/internal/cache"
	"grounds-backend/internal/models"
	"grounds-backend/internal/repositories"
)

const (
	auditEntityPersonnel = "personnel"
	auditEntityTeam      = "team"
)

var validPositions = map[string]bool{
	"chef_equipe": true,
	"jardinier":   true,
	"apprenti":    true,
}

type PersonnelService struct {
	Repo     *repositories.PersonnelRepository
	TeamRepo *repositories.TeamRepository
	Recorder *audit.Recorder
}

func NewPersonnelService(repo *repositories.PersonnelRepository, teamRepo *repositories.TeamRepository, recorder *audit.Recorder) *PersonnelService {
	return &PersonnelService{Repo: repo, TeamRepo: teamRepo, Recorder: recorder}
}

func validatePersonnel(p *models.Personnel) error {
	if p.Name == "" {
		return apperrors.New(apperrors.Validation, "name is required")
	}
	if p.Position != "" && !validPositions[p.Position] {
		return apperrors.New(apperrors.Validation, "unknown position")
	}
	return nil
}

func (s *PersonnelService) CreatePersonnel(ctx context.Context, p *models.Personnel, actor audit.Actor) error {
	if err := validatePersonnel(p); err != nil {
		return err
	}
	if err := s.Repo.Create(ctx, p); err != nil {
		return err
	}
	cache.InvalidatePersonnelCaches(ctx)
	return s.Recorder.TrackCreate(ctx, auditEntityPersonnel, strconv.Itoa(p.ID), p, actor)
}

func (s *PersonnelService) GetPersonnel(ctx context.Context, id int) (*models.Personnel, error) {
	return s.Repo.Get(ctx, id)
}

// ListPersonnel returns staff, optionally including archived records
func (s *PersonnelService) ListPersonnel(ctx context.Context, includeArchived bool) ([]*models.Personnel, error) {
	return s.Repo.List(ctx, includeArchived)
}

// UpdatePersonnel applies the update and records the per-field diff
func (s *PersonnelService) UpdatePersonnel(ctx context.Context, p *models.Personnel, actor audit.Actor) error {
	if err := validatePersonnel(p); err != nil {
		return err
	}
	before, err := s.Repo.Get(ctx, p.ID)
	if err != nil {
		return err
	}
	if err := s.Repo.Update(ctx, p); err != nil {
		return err
	}
	cache.InvalidatePersonnelCaches(ctx)
	return s.Recorder.TrackUpdate(ctx, auditEntityPersonnel, strconv.Itoa(p.ID), before, p, actor)
}

// ArchivePersonnel hides a staff member who left the company
func (s *PersonnelService) ArchivePersonnel(ctx context.Context, id int, actor audit.Actor) error {
	if err := s.Repo.SetArchived(ctx, id, true); err != nil {
		return err
	}
	cache.InvalidatePersonnelCaches(ctx)
	return s.Recorder.TrackArchive(ctx, auditEntityPersonnel, strconv.Itoa(id), actor)
}

// RestorePersonnel brings an archived staff member back
func (s *PersonnelService) RestorePersonnel(ctx context.Context, id int, actor audit.Actor) error {
	if err := s.Repo.SetArchived(ctx, id, false); err != nil {
		return err
	}
	cache.InvalidatePersonnelCaches(ctx)
	return s.Recorder.TrackRestore(ctx, auditEntityPersonnel, strconv.Itoa(id), actor)
}

// DeletePersonnel removes a staff record permanently
func (s *PersonnelService) DeletePersonnel(ctx context.Context, id int, actor audit.Actor) error {
	p, err := s.Repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	cache.InvalidatePersonnelCaches(ctx)
	return s.Recorder.TrackDelete(ctx, auditEntityPersonnel, strconv.Itoa(id), p, actor)
}

// ---- Teams ----

func (s *PersonnelService) CreateTeam(ctx context.Context, t *models.Team, actor audit.Actor) error {
	if t.Name == "" {
		return apperrors.New(apperrors.Validation, "team name is required")
	}
	if err := s.TeamRepo.Create(ctx, t); err != nil {
		return err
	}
	cache.InvalidatePersonnelCaches(ctx)
	return s.Recorder.TrackCreate(ctx, auditEntityTeam, strconv.Itoa(t.ID), t, actor)
}

func (s *PersonnelService) GetTeam(ctx context.Context, id int) (*models.Team, error) {
	return s.TeamRepo.Get(ctx, id)
}

// ListTeams returns all teams
func (s *PersonnelService) ListTeams(ctx context.Context) ([]*models.Team, error) {
	return s.TeamRepo.List(ctx)
}

// TeamMembers returns the active members of one team
func (s *PersonnelService) TeamMembers(ctx context.Context, teamID int) ([]*models.Personnel, error) {
	return s.Repo.ListByTeam(ctx, teamID)
}

// UpdateTeam applies the update and records the per-field diff
func (s *PersonnelService) UpdateTeam(ctx context.Context, t *models.Team, actor audit.Actor) error {
	if t.Name == "" {
		return apperrors.New(apperrors.Validation, "team name is required")
	}
	before, err := s.TeamRepo.Get(ctx, t.ID)
	if err != nil {
		return err
	}
	if err := s.TeamRepo.Update(ctx, t); err != nil {
		return err
	}
	cache.InvalidatePersonnelCaches(ctx)
	return s.Recorder.TrackUpdate(ctx, auditEntityTeam, strconv.Itoa(t.ID), before, t, actor)
}

// DeleteTeam removes a team. Members and projects are detached, not deleted.
func (s *PersonnelService) DeleteTeam(ctx context.Context, id int, actor audit.Actor) error {
	t, err := s.TeamRepo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.TeamRepo.Delete(ctx, id); err != nil {
		return err
	}
	cache.InvalidatePersonnelCaches(ctx)
	return s.Recorder.TrackDelete(ctx, auditEntityTeam, strconv.Itoa(id), t, actor)
}
