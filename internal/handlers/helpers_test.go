package handlers

import (
	"net/http/httptest"
	"testing"

	"grounds-backend/internal/timeutil"
)

func TestQueryFlag(t *testing.T) {
	cases := []struct {
		url  string
		want bool
	}{
		{"/api/projects?include_archived=true", true},
		{"/api/projects?include_archived=1", true},
		{"/api/projects?include_archived=false", false},
		{"/api/projects?include_archived=", false},
		{"/api/projects", false},
	}
	for _, c := range cases {
		r := httptest.NewRequest("GET", c.url, nil)
		if got := queryFlag(r, "include_archived"); got != c.want {
			t.Errorf("queryFlag(%q) = %v, want %v", c.url, got, c.want)
		}
	}
}

func TestMonthYearParams(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/schedule?month=3&year=2026", nil)
	month, year, err := monthYearParams(r)
	if err != nil {
		t.Fatal(err)
	}
	if month != 3 || year != 2026 {
		t.Errorf("got %d/%d, want 3/2026", month, year)
	}

	// Defaults to the current Paris month
	r = httptest.NewRequest("GET", "/api/schedule", nil)
	month, year, err = monthYearParams(r)
	if err != nil {
		t.Fatal(err)
	}
	now := timeutil.Now()
	if month != int(now.Month()) || year != now.Year() {
		t.Errorf("defaults = %d/%d, want %d/%d", month, year, now.Month(), now.Year())
	}

	for _, bad := range []string{"month=13", "month=0", "month=mars", "year=deux"} {
		r = httptest.NewRequest("GET", "/api/schedule?"+bad, nil)
		if _, _, err := monthYearParams(r); err == nil {
			t.Errorf("%s accepted", bad)
		}
	}
}

func TestReportOptions(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/reports/worklogs/1/pdf", nil)
	opts := reportOptions(r)
	if opts.HideTimes || opts.HideConsumables || opts.HideFinancials || opts.HideNotes {
		t.Errorf("bare URL should include every section, got %+v", opts)
	}

	r = httptest.NewRequest("GET", "/api/reports/worklogs/1/pdf?hide_financials=true&hide_notes=1", nil)
	opts = reportOptions(r)
	if !opts.HideFinancials || !opts.HideNotes {
		t.Errorf("toggles not applied: %+v", opts)
	}
	if opts.HideTimes || opts.HideConsumables {
		t.Errorf("unrelated sections hidden: %+v", opts)
	}
}

func TestSanitizeFilename(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Résidence Les Pins", "Rsidence_Les_Pins"},
		{"Mairie / Centre-ville", "Mairie__Centre-ville"},
		{"***", "projet"},
	}
	for _, c := range cases {
		if got := sanitizeFilename(c.in); got != c.want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
