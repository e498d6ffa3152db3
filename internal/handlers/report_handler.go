package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"grounds-backend/internal/services"
	"grounds-backend/internal/storage"
	"grounds-backend/internal/timeutil"
	"grounds-backend/pkg/utils"
)

type ReportHandler struct {
	Service  *services.ReportService
	Archiver *storage.ReportArchiver
}

func NewReportHandler(service *services.ReportService, archiver *storage.ReportArchiver) *ReportHandler {
	return &ReportHandler{Service: service, Archiver: archiver}
}

// reportOptions reads the section toggles. Every section prints unless its
// hide_* flag is set, so a bare URL yields the full document.
func reportOptions(r *http.Request) services.ReportOptions {
	return services.ReportOptions{
		HideTimes:       queryFlag(r, "hide_times"),
		HideConsumables: queryFlag(r, "hide_consumables"),
		HideFinancials:  queryFlag(r, "hide_financials"),
		HideNotes:       queryFlag(r, "hide_notes"),
	}
}

func (h *ReportHandler) archive(kind, filename string, data []byte) {
	if h.Archiver != nil && h.Archiver.Enabled() {
		h.Archiver.Archive(kind, filename, data)
	}
}

// GetWorkLogPDF handles GET /api/reports/worklogs/{id}/pdf
func (h *ReportHandler) GetWorkLogPDF(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.BadRequest(w, "Invalid work log id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	wl, err := h.Service.WorkLogRepo.Get(ctx, id)
	if err != nil {
		utils.JSON(w, http.StatusNotFound, map[string]string{"error": "Work log not found"})
		return
	}

	pdfData, err := h.Service.GenerateWorkLogPDF(wl, reportOptions(r))
	if err != nil {
		utils.Error(w, err)
		return
	}

	filename := fmt.Sprintf("fiche_%s_%d.pdf", wl.Date.Format("2006-01-02"), wl.ID)
	h.archive("worklogs", filename, pdfData)
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	w.Write(pdfData)
}

// GetProjectPDF handles GET /api/reports/projects/{id}/pdf
// Query params: year=YYYY (defaults to the current contract year)
func (h *ReportHandler) GetProjectPDF(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		utils.BadRequest(w, "Invalid project id")
		return
	}

	year := timeutil.Now().Year()
	if v := r.URL.Query().Get("year"); v != "" {
		if year, err = strconv.Atoi(v); err != nil {
			utils.BadRequest(w, "Invalid year")
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()

	data, err := h.Service.GetProjectReportData(ctx, id, year)
	if err != nil {
		utils.JSON(w, http.StatusNotFound, map[string]string{"error": "Project not found"})
		return
	}

	pdfData, err := h.Service.GenerateProjectPDF(data, reportOptions(r))
	if err != nil {
		utils.Error(w, err)
		return
	}

	filename := fmt.Sprintf("rapport_%s_%d.pdf", sanitizeFilename(data.Project.Name), year)
	h.archive("projects", filename, pdfData)
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	w.Write(pdfData)
}

// GetBulkWorkLogZip handles GET /api/reports/worklogs/zip
// Returns a ZIP with one PDF per non-archived work log
func (h *ReportHandler) GetBulkWorkLogZip(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 120*time.Second)
	defer cancel()

	pdfs, err := h.Service.GenerateBulkWorkLogPDFs(ctx, reportOptions(r))
	if err != nil {
		utils.Error(w, err)
		return
	}
	if len(pdfs) == 0 {
		utils.JSON(w, http.StatusNotFound, map[string]string{"error": "No work logs to export"})
		return
	}

	zipData, err := h.Service.CreateBulkPDFZip(pdfs)
	if err != nil {
		utils.Error(w, err)
		return
	}

	filename := fmt.Sprintf("fiches_%s.zip", timeutil.Now().Format("2006-01-02"))
	h.archive("bulk", filename, zipData)
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	w.Write(zipData)
}

// GetWorkLogsCSV handles GET /api/reports/worklogs/csv
func (h *ReportHandler) GetWorkLogsCSV(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()

	csvData, err := h.Service.GenerateWorkLogsCSV(ctx)
	if err != nil {
		utils.Error(w, err)
		return
	}

	filename := fmt.Sprintf("fiches_%s.csv", timeutil.Now().Format("2006-01-02"))
	h.archive("csv", filename, csvData)
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	w.Write(csvData)
}

// ListArchived handles GET /api/reports/archive
func (h *ReportHandler) ListArchived(w http.ResponseWriter, r *http.Request) {
	if h.Archiver == nil || !h.Archiver.Enabled() {
		utils.JSON(w, http.StatusOK, map[string]interface{}{"enabled": false, "reports": []string{}})
		return
	}

	kind := r.URL.Query().Get("kind")
	if kind == "" {
		kind = "worklog"
	}

	keys, err := h.Archiver.ListArchived(r.Context(), kind)
	if err != nil {
		utils.Error(w, err)
		return
	}
	if keys == nil {
		keys = []string{}
	}
	utils.JSON(w, http.StatusOK, map[string]interface{}{"enabled": true, "reports": keys})
}

// sanitizeFilename keeps letters, digits, dash and underscore so project
// names are safe inside Content-Disposition
func sanitizeFilename(name string) string {
	out := make([]rune, 0, len(name))
	for _, c := range name {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_':
			out = append(out, c)
		case c == ' ':
			out = append(out, '_')
		}
	}
	if len(out) == 0 {
		return "projet"
	}
	return string(out)
}
