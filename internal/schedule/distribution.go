package schedule

import (
	"fmt"
	"time"

	"grounds-backend/internal/models"
	"grounds-backend/internal/timeutil"
)

// Visit is one scheduled site visit, derived from a project's annual
// target. Never persisted; recomputed from (project, year) on demand.
type Visit struct {
	ProjectID   int       `json:"project_id"`
	ProjectName string    `json:"project_name"`
	Address     string    `json:"address"`
	TeamID      *int      `json:"team_id,omitempty"`
	TeamName    string    `json:"team_name,omitempty"`
	Date        time.Time `json:"date"`
	Sequence    int       `json:"sequence"` // 1-based visit number
	Total       int       `json:"total"`    // Total visits for the year
	Duration    float64   `json:"duration"` // Hours
}

// MonthView maps a date (YYYY-MM-DD) to the visits scheduled that day.
type MonthView map[string][]Visit

const (
	minYear = 1900
	maxYear = 2200
)

func validateYear(year int) error {
	if year < minYear || year > maxYear {
		return fmt.Errorf("year %d out of range [%d, %d]", year, minYear, maxYear)
	}
	return nil
}

// YearSchedule assigns each of the project's annual visits to a working day
// (Mon-Fri) of the year. Deterministic: identical inputs always produce
// identical output.
//
// Visits are spread at even intervals over the working days, nudged forward
// by a third of an interval so the first visit does not land on January 2nd
// and the last leaves slack before year end. When the annual target exceeds
// the number of working days, visits are capped at one per working day and
// the remainder is not scheduled.
func YearSchedule(p *models.Project, year int) ([]Visit, error) {
	if p == nil {
		return nil, fmt.Errorf("project is nil")
	}
	if p.AnnualVisits < 0 {
		return nil, fmt.Errorf("project %d: negative annual visit count %d", p.ID, p.AnnualVisits)
	}
	if err := validateYear(year); err != nil {
		return nil, err
	}
	if p.AnnualVisits == 0 {
		return nil, nil
	}

	workdays := timeutil.WorkingDaysOfYear(year)
	interval := len(workdays) / p.AnnualVisits

	visits := make([]Visit, 0, p.AnnualVisits)
	for i := 0; i < p.AnnualVisits; i++ {
		var pos int
		if interval == 0 {
			// More visits than working days: one visit per day, in order
			pos = i
		} else {
			pos = i*interval + interval/3
		}
		if pos >= len(workdays) {
			continue
		}
		visits = append(visits, Visit{
			ProjectID:   p.ID,
			ProjectName: p.Name,
			Address:     p.Address,
			TeamID:      p.TeamID,
			TeamName:    p.TeamName,
			Date:        workdays[pos],
			Sequence:    i + 1,
			Total:       p.AnnualVisits,
			Duration:    p.VisitDuration,
		})
	}
	return visits, nil
}

// MonthSchedule computes the month view for a set of projects: the exact
// subset of each project's yearly schedule whose date falls within the
// requested month, grouped by day. Archived projects yield no visits.
func MonthSchedule(projects []*models.Project, month, year int) (MonthView, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("month %d out of range [1, 12]", month)
	}
	if err := validateYear(year); err != nil {
		return nil, err
	}

	view := make(MonthView)
	for _, p := range projects {
		if p.IsArchived {
			continue
		}
		visits, err := YearSchedule(p, year)
		if err != nil {
			return nil, err
		}
		for _, v := range visits {
			if int(v.Date.Month()) != month {
				continue
			}
			key := v.Date.Format(timeutil.DateLayout)
			view[key] = append(view[key], v)
		}
	}
	return view, nil
}
