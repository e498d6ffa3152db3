package services

import (
	"context"
	"encoding/json"
	"time"

	"grounds-backend/internal/cache"
	"grounds-backend/internal/metrics"
	"grounds-backend/internal/repositories"
	"grounds-backend/internal/schedule"
)

type ScheduleService struct {
	ProjectRepo *repositories.ProjectRepository
}

func NewScheduleService(projectRepo *repositories.ProjectRepository) *ScheduleService {
	return &ScheduleService{ProjectRepo: projectRepo}
}

// MonthSchedule returns the month view for all active projects, optionally
// filtered to one team. The unfiltered view is served from Redis when warm;
// the schedule is deterministic so team filtering happens after the cache.
func (s *ScheduleService) MonthSchedule(ctx context.Context, month, year int, teamID *int) (schedule.MonthView, error) {
	view, err := s.cachedMonthView(ctx, month, year)
	if err != nil {
		return nil, err
	}
	if teamID == nil {
		return view, nil
	}

	filtered := make(schedule.MonthView)
	for day, visits := range view {
		for _, v := range visits {
			if v.TeamID != nil && *v.TeamID == *teamID {
				filtered[day] = append(filtered[day], v)
			}
		}
	}
	return filtered, nil
}

func (s *ScheduleService) cachedMonthView(ctx context.Context, month, year int) (schedule.MonthView, error) {
	if data, ok := cache.GetCachedScheduleMonth(ctx, year, month); ok {
		var view schedule.MonthView
		if err := json.Unmarshal(data, &view); err == nil {
			metrics.ScheduleCacheHits.Inc()
			return view, nil
		}
		// Corrupt payload, fall through and recompute
	}

	projects, err := s.ProjectRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	view, err := schedule.MonthSchedule(projects, month, year)
	if err != nil {
		return nil, err
	}
	metrics.ScheduleComputations.Inc()

	if data, err := json.Marshal(view); err == nil {
		cache.CacheScheduleMonth(ctx, year, month, data)
	}

	// Planners usually look at next month right after this one
	nextMonth, nextYear := month+1, year
	if nextMonth > 12 {
		nextMonth, nextYear = 1, year+1
	}
	cache.PreWarmKey(cache.ScheduleMonthKey(nextYear, nextMonth), func(ctx context.Context) ([]byte, error) {
		return s.PreWarmMonth(ctx, nextMonth, nextYear)
	}, 12*time.Hour)

	return view, nil
}

// YearSchedule returns every active project's full-year visit list
func (s *ScheduleService) YearSchedule(ctx context.Context, year int) (map[int][]schedule.Visit, error) {
	projects, err := s.ProjectRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	out := make(map[int][]schedule.Visit, len(projects))
	for _, p := range projects {
		visits, err := schedule.YearSchedule(p, year)
		if err != nil {
			return nil, err
		}
		if len(visits) > 0 {
			out[p.ID] = visits
		}
	}
	metrics.ScheduleComputations.Inc()
	return out, nil
}

// ProjectYearSchedule returns one project's visit list for a year
func (s *ScheduleService) ProjectYearSchedule(ctx context.Context, projectID, year int) ([]schedule.Visit, error) {
	p, err := s.ProjectRepo.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return schedule.YearSchedule(p, year)
}

// ClientMonthSchedule returns the month view restricted to one portal
// client's projects
func (s *ScheduleService) ClientMonthSchedule(ctx context.Context, clientID, month, year int) (schedule.MonthView, error) {
	projects, err := s.ProjectRepo.ListByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return schedule.MonthSchedule(projects, month, year)
}

// PreWarmMonth produces the cache payload for a month, used by the nightly
// cron job
func (s *ScheduleService) PreWarmMonth(ctx context.Context, month, year int) ([]byte, error) {
	projects, err := s.ProjectRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	view, err := schedule.MonthSchedule(projects, month, year)
	if err != nil {
		return nil, err
	}
	metrics.ScheduleComputations.Inc()
	return json.Marshal(view)
}
