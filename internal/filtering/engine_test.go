package filtering

import (
	"testing"
	"time"
)

type row struct {
	Name     string
	Team     string
	Hours    float64
	Archived bool
	Date     time.Time
}

func rowField(r row, field string) (any, bool) {
	switch field {
	case "name":
		return r.Name, true
	case "team":
		return r.Team, true
	case "hours":
		return r.Hours, true
	case "archived":
		return r.Archived, true
	case "date":
		return r.Date, true
	default:
		return nil, false
	}
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func sampleRows() []row {
	return []row{
		{Name: "Jardins Dupont", Team: "nord", Hours: 5, Date: day("2025-03-10")},
		{Name: "Martin SARL", Team: "sud", Hours: 8, Date: day("2025-04-02")},
		{Name: "Résidence des Pins", Team: "nord", Hours: 3, Archived: true, Date: day("2025-05-20")},
		{Name: "Mairie de Vence", Team: "est", Hours: 8, Date: day("2025-06-15")},
	}
}

func TestTextFilterCaseInsensitiveSubstring(t *testing.T) {
	e := NewEngine(rowField)
	rows := sampleRows()

	out := e.Apply(rows, State{Filters: []Filter{
		{Field: "name", Type: TypeText, Text: "dupont"},
	}})
	if len(out) != 1 || out[0].Name != "Jardins Dupont" {
		t.Errorf("text filter returned %v", out)
	}
}

func TestMultiSelectEmptySetIsNoOp(t *testing.T) {
	e := NewEngine(rowField)
	rows := sampleRows()

	out := e.Apply(rows, State{Filters: []Filter{
		{Field: "team", Type: TypeMultiSelect, Selected: nil},
	}})
	if len(out) != len(rows) {
		t.Errorf("empty multiSelect dropped rows: got %d, want %d", len(out), len(rows))
	}

	out = e.Apply(rows, State{Filters: []Filter{
		{Field: "team", Type: TypeMultiSelect, Selected: []string{"nord", "est"}},
	}})
	if len(out) != 3 {
		t.Errorf("multiSelect OR semantics: got %d rows, want 3", len(out))
	}
}

func TestFilterOrderIndependent(t *testing.T) {
	rows := sampleRows()
	eight := 8.0
	text := Filter{Field: "name", Type: TypeText, Text: "mar"}
	num := Filter{Field: "hours", Type: TypeNumber, Number: &eight, Op: OpGte}

	a := NewEngine(rowField).Apply(rows, State{Filters: []Filter{text, num}})
	b := NewEngine(rowField).Apply(rows, State{Filters: []Filter{num, text}})

	if len(a) != len(b) {
		t.Fatalf("order-dependent composition: %d vs %d rows", len(a), len(b))
	}
	for i := range a {
		if a[i].Name != b[i].Name {
			t.Errorf("row %d differs: %q vs %q", i, a[i].Name, b[i].Name)
		}
	}
}

func TestDateRangeInclusiveAndUnbounded(t *testing.T) {
	e := NewEngine(rowField)
	rows := sampleRows()

	from := day("2025-04-02")
	to := day("2025-05-20")
	out := e.Apply(rows, State{Filters: []Filter{
		{Field: "date", Type: TypeDateRange, From: &from, To: &to},
	}})
	if len(out) != 2 {
		t.Errorf("inclusive range: got %d rows, want 2", len(out))
	}

	out = e.Apply(rows, State{Filters: []Filter{
		{Field: "date", Type: TypeDateRange, From: &from},
	}})
	if len(out) != 3 {
		t.Errorf("open-ended range: got %d rows, want 3", len(out))
	}
}

func TestUnknownFieldIsNoOp(t *testing.T) {
	e := NewEngine(rowField)
	rows := sampleRows()

	out := e.Apply(rows, State{Filters: []Filter{
		{Field: "no_such_field", Type: TypeSelect, Text: "x"},
	}})
	if len(out) != len(rows) {
		t.Errorf("unknown field dropped rows: got %d, want %d", len(out), len(rows))
	}
}

func TestStableSortPreservesTies(t *testing.T) {
	e := NewEngine(rowField)
	rows := sampleRows()

	out := e.Apply(rows, State{Sort: Sort{Field: "hours", Desc: true}})
	// Martin SARL (8) appears before Mairie de Vence (8): original order kept
	if out[0].Name != "Martin SARL" || out[1].Name != "Mairie de Vence" {
		t.Errorf("tie order broken: %q, %q", out[0].Name, out[1].Name)
	}
	if out[len(out)-1].Hours != 3 {
		t.Errorf("descending sort wrong tail: %v", out[len(out)-1])
	}
}

func TestMemoizationReturnsSameSlice(t *testing.T) {
	e := NewEngine(rowField)
	rows := sampleRows()
	st := State{Filters: []Filter{{Field: "team", Type: TypeSelect, Text: "nord"}}}

	first := e.Apply(rows, st)
	second := e.Apply(rows, st)
	if len(first) == 0 || &first[0] != &second[0] {
		t.Error("repeated Apply with unchanged inputs must hit the cache")
	}

	// New source collection invalidates the cache
	fresh := sampleRows()
	third := e.Apply(fresh, st)
	if len(third) != len(first) {
		t.Errorf("recompute after source change: got %d rows, want %d", len(third), len(first))
	}
	if &third[0] == &first[0] {
		t.Error("cache must be dropped when the source collection changes")
	}
}

func TestPresetsSaveLoadDelete(t *testing.T) {
	e := NewEngine(rowField)
	st := State{Filters: []Filter{{Field: "archived", Type: TypeBoolean, Bool: new(bool)}}}

	e.SavePreset("actifs", st)
	loaded, ok := e.LoadPreset("actifs")
	if !ok || len(loaded.Filters) != 1 {
		t.Fatal("preset not loadable after save")
	}
	if len(e.Active().Filters) != 1 {
		t.Error("loading a preset must replace the active state")
	}

	e.DeletePreset("actifs")
	if _, ok := e.LoadPreset("actifs"); ok {
		t.Error("preset still loadable after delete")
	}
}

func TestValidateRejectsInvertedDateRange(t *testing.T) {
	from := day("2025-06-01")
	to := day("2025-05-01")
	st := State{Filters: []Filter{{Field: "date", Type: TypeDateRange, From: &from, To: &to}}}
	if err := st.Validate(); err == nil {
		t.Error("inverted date range must fail validation")
	}
}
