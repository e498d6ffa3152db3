package services

import (
	"testing"
	"time"

	"grounds-backend/internal/models"
)

func TestParseClock(t *testing.T) {
	cases := []struct {
		in    string
		hours float64
		ok    bool
	}{
		{"08:00", 8, true},
		{"17:30", 17.5, true},
		{"00:00", 0, true},
		{"8h30", 0, false},
		{"25:00", 0, false},
		{"", 0, false},
	}
	for _, c := range cases {
		d, err := parseClock(c.in)
		if c.ok != (err == nil) {
			t.Errorf("parseClock(%q): err=%v, want ok=%v", c.in, err, c.ok)
			continue
		}
		if c.ok && d.Hours() != c.hours {
			t.Errorf("parseClock(%q) = %v hours, want %v", c.in, d.Hours(), c.hours)
		}
	}
}

func TestComputeTotalsFromClockTimes(t *testing.T) {
	wl := &models.WorkLog{
		Arrival:   "08:00",
		End:       "16:30",
		BreakTime: 0.5,
	}
	computeTotals(wl)
	if wl.TotalHours != 8 {
		t.Errorf("TotalHours = %v, want 8", wl.TotalHours)
	}
}

func TestComputeTotalsNeverNegative(t *testing.T) {
	wl := &models.WorkLog{
		Arrival:   "08:00",
		End:       "08:30",
		BreakTime: 2,
	}
	computeTotals(wl)
	if wl.TotalHours != 0 {
		t.Errorf("TotalHours = %v, want 0 when break exceeds worked time", wl.TotalHours)
	}
}

func TestComputeTotalsKeepsManualEntry(t *testing.T) {
	// No clock times: the manually entered total must survive
	wl := &models.WorkLog{TotalHours: 6.5}
	computeTotals(wl)
	if wl.TotalHours != 6.5 {
		t.Errorf("TotalHours = %v, want 6.5", wl.TotalHours)
	}

	// End before arrival is ignored too
	wl = &models.WorkLog{Arrival: "14:00", End: "09:00", TotalHours: 3}
	computeTotals(wl)
	if wl.TotalHours != 3 {
		t.Errorf("TotalHours = %v, want 3 when end precedes arrival", wl.TotalHours)
	}
}

func TestComputeTotalsConsumableLines(t *testing.T) {
	wl := &models.WorkLog{
		Consumables: []models.Consumable{
			{Product: "Gazon rustique", Quantity: 3, UnitPrice: 12.5},
			{Product: "Essence", Quantity: 0, UnitPrice: 1.8},
		},
	}
	computeTotals(wl)
	if wl.Consumables[0].Total != 37.5 {
		t.Errorf("line 0 total = %v, want 37.5", wl.Consumables[0].Total)
	}
	if wl.Consumables[1].Total != 0 {
		t.Errorf("line 1 total = %v, want 0", wl.Consumables[1].Total)
	}
}

func TestValidateWorkLog(t *testing.T) {
	valid := &models.WorkLog{Date: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)}
	if err := validateWorkLog(valid); err != nil {
		t.Errorf("valid log rejected: %v", err)
	}

	if err := validateWorkLog(&models.WorkLog{}); err == nil {
		t.Error("missing date accepted")
	}

	bad := &models.WorkLog{Date: valid.Date, BreakTime: -1}
	if err := validateWorkLog(bad); err == nil {
		t.Error("negative break time accepted")
	}

	badClock := &models.WorkLog{Date: valid.Date, Arrival: "9h00"}
	if err := validateWorkLog(badClock); err == nil {
		t.Error("malformed arrival time accepted")
	}
}

func TestWorkLogFieldResolution(t *testing.T) {
	wl := &models.WorkLog{
		ProjectName: "Parc des Sports",
		Personnel:   []string{"Marc", "Julie"},
		TotalHours:  7.5,
		Invoiced:    true,
	}

	if v, ok := workLogField(wl, "total_hours"); !ok || v != 7.5 {
		t.Errorf("total_hours = %v, %v", v, ok)
	}
	if v, ok := workLogField(wl, "invoiced"); !ok || v != true {
		t.Errorf("invoiced = %v, %v", v, ok)
	}
	if v, ok := workLogField(wl, "personnel"); !ok {
		t.Errorf("personnel did not resolve: %v", v)
	}
	if _, ok := workLogField(wl, "weather"); ok {
		t.Error("unknown field should not resolve")
	}
}
