package services

import (
	"context"
	"encoding/json"
	"strconv"

	"grounds-backend/internal/apperrors"
	"grounds-backend/internal/audit"
	"grounds-backend/internal/repositories"
)

// AuditService exposes history queries and point-in-time reconstruction
// over the recorder's diff chains.
type AuditService struct {
	Recorder    *audit.Recorder
	ProjectRepo *repositories.ProjectRepository
	WorkLogRepo *repositories.WorkLogRepository
}

func NewAuditService(recorder *audit.Recorder, projectRepo *repositories.ProjectRepository, workLogRepo *repositories.WorkLogRepository) *AuditService {
	return &AuditService{
		Recorder:    recorder,
		ProjectRepo: projectRepo,
		WorkLogRepo: workLogRepo,
	}
}

// GlobalHistory returns the most recent entries across all entities
func (s *AuditService) GlobalHistory(ctx context.Context, limit int) ([]*audit.Entry, error) {
	return s.Recorder.GlobalHistory(ctx, limit)
}

// EntityHistory returns one entity's entries, newest first
func (s *AuditService) EntityHistory(ctx context.Context, entityType, entityID string, limit int) ([]*audit.Entry, error) {
	return s.Recorder.History(ctx, entityType, entityID, limit)
}

// RestoreToEntry reconstructs the state an entity had just before the
// target entry, by replaying the diff chain from the current state. The
// result is returned for review; applying it is a separate edit so the
// restore itself lands in the audit trail.
func (s *AuditService) RestoreToEntry(ctx context.Context, entityType, entityID, targetEntryID string) (map[string]any, error) {
	current, err := s.currentState(ctx, entityType, entityID)
	if err != nil {
		return nil, err
	}

	entries, err := s.Recorder.History(ctx, entityType, entityID, 0)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, apperrors.New(apperrors.Validation, "no history for entity")
	}

	return audit.ReplayTo(current, entries, targetEntryID)
}

// currentState loads the entity's present JSON field map. Only entity
// types with point-in-time restore are listed here.
func (s *AuditService) currentState(ctx context.Context, entityType, entityID string) (map[string]any, error) {
	id, err := strconv.Atoi(entityID)
	if err != nil {
		return nil, apperrors.New(apperrors.Validation, "invalid entity id")
	}

	var entity any
	switch entityType {
	case "project":
		entity, err = s.ProjectRepo.Get(ctx, id)
	case "worklog":
		entity, err = s.WorkLogRepo.Get(ctx, id)
	default:
		return nil, apperrors.New(apperrors.Validation, "restore not supported for entity type " + entityType)
	}
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(entity)
	if err != nil {
		return nil, err
	}
	var state map[string]any
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, err
	}
	return state, nil
}
