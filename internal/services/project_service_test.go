package services

import (
	"testing"
	"time"

	"grounds-backend/internal/apperrors"
	"grounds-backend/internal/filtering"
	"grounds-backend/internal/models"
)

func TestValidateProject(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)

	valid := &models.Project{
		Name:          "Residence Les Tilleuls",
		AnnualVisits:  26,
		VisitDuration: 4,
		ContractStart: &start,
		ContractEnd:   &end,
	}
	if err := validateProject(valid); err != nil {
		t.Errorf("valid project rejected: %v", err)
	}

	cases := []struct {
		name string
		p    *models.Project
	}{
		{"empty name", &models.Project{AnnualVisits: 12}},
		{"negative visits", &models.Project{Name: "x", AnnualVisits: -1}},
		{"negative duration", &models.Project{Name: "x", VisitDuration: -2}},
		{"end before start", &models.Project{Name: "x", ContractStart: &end, ContractEnd: &start}},
	}
	for _, c := range cases {
		err := validateProject(c.p)
		if err == nil {
			t.Errorf("%s: accepted", c.name)
			continue
		}
		if apperrors.CategoryOf(err) != apperrors.Validation {
			t.Errorf("%s: category = %s, want validation", c.name, apperrors.CategoryOf(err))
		}
	}
}

func TestProjectFieldResolution(t *testing.T) {
	start := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	p := &models.Project{
		Name:          "Mairie Centre",
		TeamName:      "Equipe Nord",
		AnnualVisits:  26,
		ContractStart: &start,
	}

	if v, ok := projectField(p, "annual_visits"); !ok || v != float64(26) {
		t.Errorf("annual_visits = %v, %v", v, ok)
	}
	if v, ok := projectField(p, "contract_start"); !ok || v != start {
		t.Errorf("contract_start = %v, %v", v, ok)
	}
	if _, ok := projectField(p, "contract_end"); ok {
		t.Error("nil contract_end should resolve as unknown")
	}
	if _, ok := projectField(p, "budget"); ok {
		t.Error("unknown field should not resolve")
	}
}

func TestFilterProjectsByTeamName(t *testing.T) {
	projects := []*models.Project{
		{ID: 1, Name: "Site A", TeamName: "Equipe Nord"},
		{ID: 2, Name: "Site B", TeamName: "Equipe Sud"},
		{ID: 3, Name: "Site C", TeamName: "Equipe Nord"},
	}

	eng := filtering.NewEngine(projectField)
	out := eng.Apply(projects, filtering.State{
		Filters: []filtering.Filter{
			{Field: "team_name", Type: filtering.TypeSelect, Text: "Equipe Nord"},
		},
		Sort: filtering.Sort{Field: "name", Desc: true},
	})

	if len(out) != 2 || out[0].ID != 3 || out[1].ID != 1 {
		t.Errorf("unexpected result: %+v", out)
	}
}
