package services

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strings"
	"sync"

	"grounds-backend/internal/metrics"
	"grounds-backend/internal/models"
	"grounds-backend/internal/repositories"
	"grounds-backend/internal/schedule"
	"grounds-backend/internal/timeutil"

	"github.com/jung-kurt/gofpdf/v2"
)

// ReportOptions are the section toggles of a generated report. The zero
// value includes everything.
type ReportOptions struct {
	HideTimes       bool `json:"hide_times"`
	HideConsumables bool `json:"hide_consumables"`
	HideFinancials  bool `json:"hide_financials"`
	HideNotes       bool `json:"hide_notes"`
}

// ProjectReportData holds all data for a project report
type ProjectReportData struct {
	Project    *models.Project
	WorkLogs   []*models.WorkLog
	Visits     []schedule.Visit
	TotalHours float64
	TotalCost  float64
}

// ReportService generates work log and project PDFs
type ReportService struct {
	ProjectRepo *repositories.ProjectRepository
	WorkLogRepo *repositories.WorkLogRepository
	Company     models.CompanyInfo
}

// NewReportService creates a new report service
func NewReportService(projectRepo *repositories.ProjectRepository, workLogRepo *repositories.WorkLogRepository, company models.CompanyInfo) *ReportService {
	return &ReportService{
		ProjectRepo: projectRepo,
		WorkLogRepo: workLogRepo,
		Company:     company,
	}
}

// header draws the company letterhead at the top of a page
func (s *ReportService) header(pdf *gofpdf.Fpdf, title string, width float64) {
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(width, 10, s.Company.Name, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(width, 5, s.Company.Address, "", 1, "C", false, 0, "")
	pdf.CellFormat(width, 5, fmt.Sprintf("%s - %s - SIRET %s", s.Company.Phone, s.Company.Email, s.Company.SIRET), "", 1, "C", false, 0, "")
	pdf.Ln(3)
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(width, 9, title, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(width, 5, fmt.Sprintf("Genere le %s", timeutil.Now().Format("02/01/2006 15:04")), "", 1, "C", false, 0, "")
	pdf.Ln(4)
}

// GetProjectReportData fetches a project with its work log history and
// computed visit schedule for the contract year
func (s *ReportService) GetProjectReportData(ctx context.Context, projectID, year int) (*ProjectReportData, error) {
	project, err := s.ProjectRepo.Get(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("project not found: %w", err)
	}

	logs, err := s.WorkLogRepo.ListByProject(ctx, projectID)
	if err != nil {
		logs = []*models.WorkLog{}
	}

	visits, err := schedule.YearSchedule(project, year)
	if err != nil {
		return nil, err
	}

	var totalHours, totalCost float64
	for _, wl := range logs {
		totalHours += wl.TotalHours
		if wl.HourlyRate != nil {
			totalCost += wl.TotalHours * *wl.HourlyRate
		}
		for _, c := range wl.Consumables {
			totalCost += c.Total
		}
	}

	return &ProjectReportData{
		Project:    project,
		WorkLogs:   logs,
		Visits:     visits,
		TotalHours: totalHours,
		TotalCost:  totalCost,
	}, nil
}

// GenerateWorkLogPDF renders one work log as a "fiche de suivi" PDF
func (s *ReportService) GenerateWorkLogPDF(wl *models.WorkLog, opts ReportOptions) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	title := "Fiche de suivi"
	if wl.ProjectID == nil {
		title = "Fiche d'intervention"
	}
	s.header(pdf, title, 190)

	// Site Info Box
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Intervention", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	site := wl.ProjectName
	if site == "" {
		site = wl.SiteAddress
	}
	pdf.CellFormat(95, 7, fmt.Sprintf("Chantier: %s", site), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Date: %s", wl.Date.Format("02/01/2006")), "RB", 1, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Adresse: %s", wl.SiteAddress), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Equipe: %s", strings.Join(wl.Personnel, ", ")), "RB", 1, "L", false, 0, "")
	pdf.Ln(5)

	// Times
	if !opts.HideTimes {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(190, 8, "Horaires", "1", 1, "L", true, 0, "")

		pdf.SetFont("Arial", "", 11)
		pdf.CellFormat(47, 8, fmt.Sprintf("Depart depot: %s", wl.Departure), "1", 0, "C", false, 0, "")
		pdf.CellFormat(47, 8, fmt.Sprintf("Arrivee: %s", wl.Arrival), "1", 0, "C", false, 0, "")
		pdf.CellFormat(48, 8, fmt.Sprintf("Fin: %s", wl.End), "1", 0, "C", false, 0, "")
		pdf.CellFormat(48, 8, fmt.Sprintf("Pause: %.2f h", wl.BreakTime), "1", 1, "C", false, 0, "")
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(190, 8, fmt.Sprintf("Total: %.2f h", wl.TotalHours), "1", 1, "C", false, 0, "")
		pdf.Ln(5)
	}

	// Tasks
	pdf.SetFont("Arial", "B", 12)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(190, 8, "Travaux realises", "1", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.MultiCell(190, 6, wl.Tasks, "1", "L", false)
	if wl.WaterConsumed != nil {
		pdf.CellFormat(190, 7, fmt.Sprintf("Eau consommee: %.1f m3", *wl.WaterConsumed), "1", 1, "L", false, 0, "")
	}
	pdf.Ln(5)

	// Consumables
	if !opts.HideConsumables && len(wl.Consumables) > 0 {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(190, 8, "Consommables", "1", 1, "L", true, 0, "")

		pdf.SetFont("Arial", "B", 10)
		pdf.SetFillColor(200, 200, 200)
		pdf.CellFormat(70, 7, "Produit", "1", 0, "C", true, 0, "")
		pdf.CellFormat(25, 7, "Unite", "1", 0, "C", true, 0, "")
		pdf.CellFormat(30, 7, "Quantite", "1", 0, "C", true, 0, "")
		pdf.CellFormat(30, 7, "Prix unit.", "1", 0, "C", true, 0, "")
		pdf.CellFormat(35, 7, "Total", "1", 1, "C", true, 0, "")

		pdf.SetFont("Arial", "", 10)
		var consumablesTotal float64
		for _, c := range wl.Consumables {
			product := c.Product
			if len(product) > 35 {
				product = product[:32] + "..."
			}
			pdf.CellFormat(70, 6, product, "1", 0, "L", false, 0, "")
			pdf.CellFormat(25, 6, c.Unit, "1", 0, "C", false, 0, "")
			pdf.CellFormat(30, 6, fmt.Sprintf("%.2f", c.Quantity), "1", 0, "R", false, 0, "")
			pdf.CellFormat(30, 6, fmt.Sprintf("%.2f EUR", c.UnitPrice), "1", 0, "R", false, 0, "")
			pdf.CellFormat(35, 6, fmt.Sprintf("%.2f EUR", c.Total), "1", 1, "R", false, 0, "")
			consumablesTotal += c.Total
		}
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(155, 7, "Total consommables", "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 7, fmt.Sprintf("%.2f EUR", consumablesTotal), "1", 1, "R", false, 0, "")
		pdf.Ln(5)
	}

	// Financials
	if !opts.HideFinancials && wl.HourlyRate != nil {
		pdf.SetFont("Arial", "B", 12)
		pdf.SetFillColor(240, 240, 240)
		pdf.CellFormat(190, 8, "Facturation", "1", 1, "L", true, 0, "")

		pdf.SetFont("Arial", "", 11)
		labor := wl.TotalHours * *wl.HourlyRate
		pdf.CellFormat(95, 8, fmt.Sprintf("Taux horaire: %.2f EUR", *wl.HourlyRate), "1", 0, "C", false, 0, "")
		pdf.CellFormat(95, 8, fmt.Sprintf("Main d'oeuvre: %.2f EUR", labor), "1", 1, "C", false, 0, "")
		status := "A facturer"
		if wl.Invoiced {
			status = "Facture"
		}
		pdf.CellFormat(190, 8, status, "1", 1, "C", false, 0, "")
		pdf.Ln(5)
	}

	// Notes and signature
	if !opts.HideNotes && wl.Notes != "" {
		pdf.SetFont("Arial", "B", 12)
		pdf.SetFillColor(240, 240, 240)
		pdf.CellFormat(190, 8, "Observations", "1", 1, "L", true, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(190, 6, wl.Notes, "1", "L", false)
		pdf.Ln(3)
	}
	if wl.SignedByName != "" {
		pdf.SetFont("Arial", "I", 10)
		pdf.CellFormat(190, 7, fmt.Sprintf("Signe sur site par: %s", wl.SignedByName), "", 1, "R", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	metrics.ReportsGenerated.WithLabelValues("worklog").Inc()
	return buf.Bytes(), nil
}

// GenerateProjectPDF renders a project summary: contract details, the
// year's visit schedule and the work log history
func (s *ReportService) GenerateProjectPDF(data *ProjectReportData, opts ReportOptions) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	s.header(pdf, fmt.Sprintf("Chantier - %s", data.Project.Name), 190)

	// Contract Info Box
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Contrat", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 7, fmt.Sprintf("Adresse: %s", data.Project.Address), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Equipe: %s", data.Project.TeamName), "RB", 1, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Passages annuels: %d", data.Project.AnnualVisits), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Duree par passage: %.1f h", data.Project.VisitDuration), "RB", 1, "L", false, 0, "")
	pdf.Ln(5)

	// Visit schedule
	if len(data.Visits) > 0 {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(190, 8, "Passages prevus", "1", 1, "L", true, 0, "")

		pdf.SetFont("Arial", "B", 10)
		pdf.SetFillColor(200, 200, 200)
		pdf.CellFormat(40, 7, "Passage", "1", 0, "C", true, 0, "")
		pdf.CellFormat(75, 7, "Date", "1", 0, "C", true, 0, "")
		pdf.CellFormat(75, 7, "Duree", "1", 1, "C", true, 0, "")

		pdf.SetFont("Arial", "", 10)
		for _, v := range data.Visits {
			pdf.CellFormat(40, 6, fmt.Sprintf("%d / %d", v.Sequence, v.Total), "1", 0, "C", false, 0, "")
			pdf.CellFormat(75, 6, v.Date.Format("02/01/2006"), "1", 0, "C", false, 0, "")
			pdf.CellFormat(75, 6, fmt.Sprintf("%.1f h", v.Duration), "1", 1, "C", false, 0, "")
		}
		pdf.Ln(5)
	}

	// Work log history
	pdf.SetFont("Arial", "B", 12)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(190, 8, "Interventions realisees", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(30, 7, "Date", "1", 0, "C", true, 0, "")
	pdf.CellFormat(95, 7, "Travaux", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 7, "Heures", "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, 7, "Equipe", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for i, wl := range data.WorkLogs {
		// Alternate row colors
		if i%2 == 0 {
			pdf.SetFillColor(255, 255, 255)
		} else {
			pdf.SetFillColor(245, 245, 245)
		}

		tasks := wl.Tasks
		if len(tasks) > 48 {
			tasks = tasks[:45] + "..."
		}
		crew := strings.Join(wl.Personnel, ", ")
		if len(crew) > 18 {
			crew = crew[:15] + "..."
		}

		pdf.CellFormat(30, 6, wl.Date.Format("02/01/2006"), "1", 0, "C", true, 0, "")
		pdf.CellFormat(95, 6, tasks, "1", 0, "L", true, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%.2f", wl.TotalHours), "1", 0, "R", true, 0, "")
		pdf.CellFormat(35, 6, crew, "1", 1, "L", true, 0, "")
	}
	pdf.Ln(5)

	// Totals
	if !opts.HideFinancials {
		pdf.SetFont("Arial", "B", 12)
		pdf.SetFillColor(240, 240, 240)
		pdf.CellFormat(190, 8, "Totaux", "1", 1, "L", true, 0, "")

		pdf.SetFont("Arial", "", 11)
		pdf.CellFormat(95, 8, fmt.Sprintf("Heures totales: %.2f h", data.TotalHours), "1", 0, "C", false, 0, "")
		pdf.CellFormat(95, 8, fmt.Sprintf("Cout total: %.2f EUR", data.TotalCost), "1", 1, "C", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	metrics.ReportsGenerated.WithLabelValues("project").Inc()
	return buf.Bytes(), nil
}

// GenerateBulkWorkLogPDFs generates PDFs for every non-archived work log
// in parallel
func (s *ReportService) GenerateBulkWorkLogPDFs(ctx context.Context, opts ReportOptions) (map[string][]byte, error) {
	logs, err := s.WorkLogRepo.List(ctx, false)
	if err != nil {
		return nil, err
	}

	type pdfResult struct {
		name string
		data []byte
		err  error
	}

	results := make(chan pdfResult, len(logs))
	jobs := make(chan *models.WorkLog, len(logs))

	// Start 5 workers for PDF generation
	var wg sync.WaitGroup
	numWorkers := 5
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for wl := range jobs {
				// List rows don't carry consumables, load the full log
				full, err := s.WorkLogRepo.Get(ctx, wl.ID)
				if err != nil {
					results <- pdfResult{err: err}
					continue
				}
				pdfData, err := s.GenerateWorkLogPDF(full, opts)
				results <- pdfResult{
					name: fmt.Sprintf("fiche_%s_%d", full.Date.Format("2006-01-02"), full.ID),
					data: pdfData,
					err:  err,
				}
			}
		}()
	}

	// Send jobs
	for _, wl := range logs {
		jobs <- wl
	}
	close(jobs)

	// Wait and close results
	go func() {
		wg.Wait()
		close(results)
	}()

	// Collect PDFs
	pdfs := make(map[string][]byte)
	for r := range results {
		if r.err == nil && r.data != nil {
			pdfs[r.name] = r.data
		}
	}

	return pdfs, nil
}

// CreateBulkPDFZip creates a ZIP file containing the given PDFs
func (s *ReportService) CreateBulkPDFZip(pdfs map[string][]byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for filename, pdfData := range pdfs {
		fw, err := zw.Create(filename + ".pdf")
		if err != nil {
			continue
		}
		fw.Write(pdfData)
	}

	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GenerateWorkLogsCSV exports all non-archived work logs as CSV
func (s *ReportService) GenerateWorkLogsCSV(ctx context.Context) ([]byte, error) {
	logs, err := s.WorkLogRepo.List(ctx, false)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	// Header
	w.Write([]string{
		"#", "Date", "Chantier", "Adresse", "Equipe",
		"Depart", "Arrivee", "Fin", "Pause", "Heures", "Facture",
	})

	// Data rows
	for i, wl := range logs {
		invoiced := "non"
		if wl.Invoiced {
			invoiced = "oui"
		}
		w.Write([]string{
			fmt.Sprintf("%d", i+1),
			wl.Date.Format("02/01/2006"),
			wl.ProjectName,
			wl.SiteAddress,
			strings.Join(wl.Personnel, " / "),
			wl.Departure,
			wl.Arrival,
			wl.End,
			fmt.Sprintf("%.2f", wl.BreakTime),
			fmt.Sprintf("%.2f", wl.TotalHours),
			invoiced,
		})
	}

	w.Flush()
	return buf.Bytes(), nil
}
