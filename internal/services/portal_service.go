package services

import (
	"context"

	"grounds-backend/internal/models"
	"grounds-backend/internal/repositories"
	"grounds-backend/internal/schedule"
	"grounds-backend/internal/timeutil"
)

// PortalService serves the read-only client portal. Everything here is
// scoped to one client account; nothing mutates.
type PortalService struct {
	ClientRepo  *repositories.ClientAccountRepository
	ProjectRepo *repositories.ProjectRepository
	WorkLogRepo *repositories.WorkLogRepository
	Schedule    *ScheduleService
}

func NewPortalService(
	clientRepo *repositories.ClientAccountRepository,
	projectRepo *repositories.ProjectRepository,
	workLogRepo *repositories.WorkLogRepository,
	scheduleService *ScheduleService,
) *PortalService {
	return &PortalService{
		ClientRepo:  clientRepo,
		ProjectRepo: projectRepo,
		WorkLogRepo: workLogRepo,
		Schedule:    scheduleService,
	}
}

// ProjectSummary is one contract site on the client dashboard
type ProjectSummary struct {
	Project      *models.Project `json:"project"`
	VisitsDone   int             `json:"visits_done"`
	HoursLogged  float64         `json:"hours_logged"`
	NextVisit    string          `json:"next_visit,omitempty"` // YYYY-MM-DD
	VisitsPlaned int             `json:"visits_planned"`
}

// DashboardData is the complete client dashboard payload
type DashboardData struct {
	Client     *models.ClientAccount `json:"client"`
	Projects   []ProjectSummary      `json:"projects"`
	RecentLogs []*models.WorkLog     `json:"recent_logs"`
	TotalHours float64               `json:"total_hours"`
}

// GetDashboardData returns all dashboard data for a portal client
func (s *PortalService) GetDashboardData(ctx context.Context, clientID int) (*DashboardData, error) {
	client, err := s.ClientRepo.Get(ctx, clientID)
	if err != nil {
		return nil, err
	}

	projects, err := s.ProjectRepo.ListByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}

	now := timeutil.Now()
	var summaries []ProjectSummary
	var totalHours float64

	for _, p := range projects {
		logs, err := s.WorkLogRepo.ListByProject(ctx, p.ID)
		if err != nil {
			return nil, err
		}

		var hours float64
		for _, wl := range logs {
			hours += wl.TotalHours
		}
		totalHours += hours

		visits, err := schedule.YearSchedule(p, now.Year())
		if err != nil {
			return nil, err
		}
		next := ""
		for _, v := range visits {
			if v.Date.After(now) {
				next = v.Date.Format(timeutil.DateLayout)
				break
			}
		}

		summaries = append(summaries, ProjectSummary{
			Project:      p,
			VisitsDone:   len(logs),
			HoursLogged:  hours,
			NextVisit:    next,
			VisitsPlaned: len(visits),
		})
	}

	logs, err := s.WorkLogRepo.ListByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if len(logs) > 10 {
		logs = logs[:10]
	}

	return &DashboardData{
		Client:     client,
		Projects:   summaries,
		RecentLogs: logs,
		TotalHours: totalHours,
	}, nil
}

// MonthSchedule returns the client's month view
func (s *PortalService) MonthSchedule(ctx context.Context, clientID, month, year int) (schedule.MonthView, error) {
	return s.Schedule.ClientMonthSchedule(ctx, clientID, month, year)
}

// WorkLogs returns the client's work log history, newest first
func (s *PortalService) WorkLogs(ctx context.Context, clientID int) ([]*models.WorkLog, error) {
	return s.WorkLogRepo.ListByClient(ctx, clientID)
}
