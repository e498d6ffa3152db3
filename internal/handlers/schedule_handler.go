package handlers

import (
	"net/http"
	"strconv"

	"grounds-backend/internal/services"
	"grounds-backend/internal/timeutil"
	"grounds-backend/pkg/utils"
)

type ScheduleHandler struct {
	Service *services.ScheduleService
}

func NewScheduleHandler(s *services.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{Service: s}
}

// monthYearParams reads ?month= and ?year=, defaulting to the current
// month in Paris time
func monthYearParams(r *http.Request) (int, int, error) {
	now := timeutil.Now()
	month, year := int(now.Month()), now.Year()

	var err error
	if v := r.URL.Query().Get("month"); v != "" {
		if month, err = strconv.Atoi(v); err != nil || month < 1 || month > 12 {
			return 0, 0, strconv.ErrRange
		}
	}
	if v := r.URL.Query().Get("year"); v != "" {
		if year, err = strconv.Atoi(v); err != nil {
			return 0, 0, strconv.ErrRange
		}
	}
	return month, year, nil
}

// GetMonthSchedule returns the computed visit plan for one month,
// optionally filtered to a single team with ?team=
func (h *ScheduleHandler) GetMonthSchedule(w http.ResponseWriter, r *http.Request) {
	month, year, err := monthYearParams(r)
	if err != nil {
		utils.BadRequest(w, "Invalid month or year")
		return
	}

	var teamID *int
	if v := r.URL.Query().Get("team"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			utils.BadRequest(w, "Invalid team id")
			return
		}
		teamID = &id
	}

	view, err := h.Service.MonthSchedule(r.Context(), month, year, teamID)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, view)
}

// GetYearSchedule returns all twelve month plans for ?year= (default
// current year)
func (h *ScheduleHandler) GetYearSchedule(w http.ResponseWriter, r *http.Request) {
	year := timeutil.Now().Year()
	if v := r.URL.Query().Get("year"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			utils.BadRequest(w, "Invalid year")
			return
		}
		year = parsed
	}

	months, err := h.Service.YearSchedule(r.Context(), year)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, months)
}

// GetProjectSchedule returns the planned visits of one project across a
// contract year
func (h *ScheduleHandler) GetProjectSchedule(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.BadRequest(w, "Invalid project id")
		return
	}

	year := timeutil.Now().Year()
	if v := r.URL.Query().Get("year"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			utils.BadRequest(w, "Invalid year")
			return
		}
		year = parsed
	}

	visits, err := h.Service.ProjectYearSchedule(r.Context(), id, year)
	if err != nil {
		utils.Error(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, visits)
}
