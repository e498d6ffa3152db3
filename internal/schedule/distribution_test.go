package schedule

import (
	"testing"
	"time"

	"grounds-backend/internal/models"
	"grounds-backend/internal/timeutil"
)

func project(id, annualVisits int) *models.Project {
	return &models.Project{
		ID:            id,
		Name:          "Jardins Dupont",
		Address:       "12 rue des Lilas",
		AnnualVisits:  annualVisits,
		VisitDuration: 3.5,
	}
}

func TestYearScheduleVisitCountAndWeekdays(t *testing.T) {
	for _, n := range []int{1, 4, 12, 26, 52, 104} {
		visits, err := YearSchedule(project(1, n), 2025)
		if err != nil {
			t.Fatalf("annualVisits=%d: unexpected error: %v", n, err)
		}
		if len(visits) != n {
			t.Errorf("annualVisits=%d: got %d visits, want %d", n, len(visits), n)
		}

		seen := make(map[string]bool)
		for _, v := range visits {
			wd := v.Date.Weekday()
			if wd == time.Saturday || wd == time.Sunday {
				t.Errorf("annualVisits=%d: visit %d falls on %s", n, v.Sequence, wd)
			}
			key := v.Date.Format(timeutil.DateLayout)
			if seen[key] {
				t.Errorf("annualVisits=%d: duplicate visit day %s", n, key)
			}
			seen[key] = true
		}
	}
}

func TestYearScheduleSequenceNumbers(t *testing.T) {
	visits, err := YearSchedule(project(1, 12), 2025)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range visits {
		if v.Sequence != i+1 {
			t.Errorf("visit %d has sequence %d", i, v.Sequence)
		}
		if v.Total != 12 {
			t.Errorf("visit %d has total %d, want 12", i, v.Total)
		}
	}
}

func TestYearScheduleZeroVisits(t *testing.T) {
	visits, err := YearSchedule(project(1, 0), 2025)
	if err != nil {
		t.Fatalf("annualVisits=0 must not error: %v", err)
	}
	if len(visits) != 0 {
		t.Errorf("annualVisits=0: got %d visits, want 0", len(visits))
	}
}

func TestYearScheduleNegativeVisitsRejected(t *testing.T) {
	if _, err := YearSchedule(project(1, -3), 2025); err == nil {
		t.Error("negative annual visit count must be rejected")
	}
}

func TestYearScheduleMoreVisitsThanWorkingDays(t *testing.T) {
	workdays := len(timeutil.WorkingDaysOfYear(2025))
	visits, err := YearSchedule(project(1, workdays+50), 2025)
	if err != nil {
		t.Fatal(err)
	}
	// Capped at one visit per working day
	if len(visits) != workdays {
		t.Errorf("got %d visits, want %d (one per working day)", len(visits), workdays)
	}
}

func TestYearScheduleDeterministic(t *testing.T) {
	a, err := YearSchedule(project(7, 26), 2026)
	if err != nil {
		t.Fatal(err)
	}
	b, err := YearSchedule(project(7, 26), 2026)
	if err != nil {
		t.Fatal(err)
	}
	if len(a) != len(b) {
		t.Fatalf("length mismatch: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if !a[i].Date.Equal(b[i].Date) || a[i].Sequence != b[i].Sequence {
			t.Errorf("visit %d differs between runs", i)
		}
	}
}

func TestMonthScheduleIsExactSubsetOfYear(t *testing.T) {
	p := project(3, 24)
	yearly, err := YearSchedule(p, 2025)
	if err != nil {
		t.Fatal(err)
	}

	total := 0
	for m := 1; m <= 12; m++ {
		view, err := MonthSchedule([]*models.Project{p}, m, 2025)
		if err != nil {
			t.Fatal(err)
		}
		for key, visits := range view {
			d, err := time.ParseInLocation(timeutil.DateLayout, key, timeutil.Paris)
			if err != nil {
				t.Fatalf("bad day key %q: %v", key, err)
			}
			if int(d.Month()) != m {
				t.Errorf("month %d view contains day %s", m, key)
			}
			total += len(visits)
		}
	}
	if total != len(yearly) {
		t.Errorf("month views sum to %d visits, yearly schedule has %d", total, len(yearly))
	}
}

func TestMonthScheduleTwelveVisitsJune(t *testing.T) {
	// ~52 weeks / 12 visits: roughly one visit every 4.3 weeks, so any
	// given month carries 0 to 2 visit days.
	view, err := MonthSchedule([]*models.Project{project(1, 12)}, 6, 2025)
	if err != nil {
		t.Fatal(err)
	}
	if len(view) > 2 {
		t.Errorf("June has %d visit days, want at most 2", len(view))
	}
}

func TestMonthScheduleSkipsArchivedProjects(t *testing.T) {
	p := project(1, 12)
	p.IsArchived = true
	view, err := MonthSchedule([]*models.Project{p}, 6, 2025)
	if err != nil {
		t.Fatal(err)
	}
	if len(view) != 0 {
		t.Errorf("archived project produced %d visit days", len(view))
	}
}

func TestMonthScheduleValidation(t *testing.T) {
	if _, err := MonthSchedule(nil, 0, 2025); err == nil {
		t.Error("month 0 must be rejected")
	}
	if _, err := MonthSchedule(nil, 13, 2025); err == nil {
		t.Error("month 13 must be rejected")
	}
	if _, err := MonthSchedule(nil, 6, 123); err == nil {
		t.Error("3-digit year must be rejected")
	}
}
