package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/example/staffing-reports/internal/application"
	"github.com/example/staffing-reports/internal/shiftanalysis"
)

type reportService interface {
	GenerateReport(ctx context.Context, scheduleID string) (application.ScheduleReport, error)
	AnalyzeWeek(ctx context.Context, params application.AnalyzeWeekParams) (application.ScheduleReport, error)
	RenderWorkbook(ctx context.Context, scheduleID string) (application.WorkbookFile, error)
	PublishReport(ctx context.Context, params application.PublishReportParams) (application.PublishedReport, error)
	GetPublishedReport(ctx context.Context, id string) (application.PublishedReport, error)
}

type ReportHandler struct {
	service   reportService
	responder responder
	logger    *slog.Logger
}

func NewReportHandler(service reportService, logger *slog.Logger) *ReportHandler {
	return &ReportHandler{service: service, responder: newResponder(logger), logger: logger}
}

// Report answers the JSON report of a stored schedule.
func (h *ReportHandler) Report(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	scheduleID, ok := ScheduleIDFromContext(r.Context())
	if !ok || strings.TrimSpace(scheduleID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidScheduleID)
		return
	}

	report, err := h.service.GenerateReport(r.Context(), scheduleID)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, reportResponse{Report: toReportDTO(report)})
}

// Workbook streams the report of a stored schedule as a spreadsheet.
func (h *ReportHandler) Workbook(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	scheduleID, ok := ScheduleIDFromContext(r.Context())
	if !ok || strings.TrimSpace(scheduleID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidScheduleID)
		return
	}

	file, err := h.service.RenderWorkbook(r.Context(), scheduleID)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeFile(r.Context(), w, file.FileName, file.ContentType, file.Content)
}

// Publish renders and stores the workbook of a stored schedule. The body is
// optional and only names the publisher.
func (h *ReportHandler) Publish(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	scheduleID, ok := ScheduleIDFromContext(r.Context())
	if !ok || strings.TrimSpace(scheduleID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidScheduleID)
		return
	}

	var req publishRequest
	if r.Body != nil {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
			return
		}
	}

	published, err := h.service.PublishReport(r.Context(), application.PublishReportParams{
		ScheduleID:  scheduleID,
		PublishedBy: req.PublishedBy,
	})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	dto := toPublishedReportDTO(published)
	w.Header().Set("Location", dto.Path)
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, publishedReportResponse{Report: dto})
}

// Download streams a published workbook.
func (h *ReportHandler) Download(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	reportID, ok := ReportIDFromContext(r.Context())
	if !ok || strings.TrimSpace(reportID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidReportID)
		return
	}

	report, err := h.service.GetPublishedReport(r.Context(), reportID)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeFile(r.Context(), w, report.FileName, report.ContentType, report.Content)
}

// Analyze reports on an inline schedule without storing it.
func (h *ReportHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	report, err := h.service.AnalyzeWeek(r.Context(), req.toParams())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	handlerLogger(r.Context(), h.logger, "ReportHandler", "Analyze", "employees", len(report.Analysis.Employees)).
		DebugContext(r.Context(), "inline schedule analysed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, reportResponse{Report: toReportDTO(report)})
}

type publishRequest struct {
	PublishedBy string `json:"published_by"`
}

type analyzeRequest struct {
	Location  string             `json:"location"`
	Brand     string             `json:"brand"`
	WeekStart string             `json:"week_start"`
	Employees []employeeDTO      `json:"employees"`
	Sales     map[string]float64 `json:"sales"`
}

func (r analyzeRequest) toParams() application.AnalyzeWeekParams {
	return application.AnalyzeWeekParams{
		Location:  r.Location,
		Brand:     r.Brand,
		WeekStart: r.WeekStart,
		Employees: toEmployees(r.Employees),
		Sales:     copySales(r.Sales),
	}
}

type publishedReportResponse struct {
	Report publishedReportDTO `json:"report"`
}

type publishedReportDTO struct {
	ID          string `json:"id"`
	ScheduleID  string `json:"schedule_id"`
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	SizeBytes   int    `json:"size_bytes"`
	CreatedBy   string `json:"created_by"`
	CreatedAt   string `json:"created_at"`
	Path        string `json:"path"`
}

func toPublishedReportDTO(report application.PublishedReport) publishedReportDTO {
	return publishedReportDTO{
		ID:          report.ID,
		ScheduleID:  report.ScheduleID,
		FileName:    report.FileName,
		ContentType: report.ContentType,
		SizeBytes:   len(report.Content),
		CreatedBy:   report.CreatedBy,
		CreatedAt:   formatTimestamp(report.CreatedAt),
		Path:        reportsPrefix + report.ID,
	}
}

type reportResponse struct {
	Report reportDTO `json:"report"`
}

type reportDTO struct {
	ScheduleID        string          `json:"schedule_id,omitempty"`
	Location          string          `json:"location"`
	Brand             string          `json:"brand,omitempty"`
	Taxonomy          string          `json:"taxonomy"`
	WeekStart         string          `json:"week_start,omitempty"`
	ScheduleUpdatedAt string          `json:"schedule_updated_at,omitempty"`
	GeneratedAt       string          `json:"generated_at"`
	Categories        []categoryDTO   `json:"categories"`
	Staffing          []staffingDay   `json:"staffing"`
	Employees         []employeeHours `json:"employees"`
	Summary           summaryDTO      `json:"summary"`
	Diagnostics       []diagnosticDTO `json:"diagnostics"`
}

type categoryDTO struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

type staffingDay struct {
	Day     string           `json:"day"`
	Windows []staffingWindow `json:"windows"`
}

type staffingWindow struct {
	Window string         `json:"window"`
	Label  string         `json:"label"`
	Counts map[string]int `json:"counts"`
	Total  int            `json:"total"`
}

type employeeHours struct {
	ID            string             `json:"id"`
	Name          string             `json:"name"`
	Role          string             `json:"role"`
	PayType       string             `json:"pay_type,omitempty"`
	Category      string             `json:"category"`
	ManagerTier   bool               `json:"manager_tier"`
	GM            bool               `json:"gm"`
	Salaried      bool               `json:"salaried"`
	Shifts        map[string]string  `json:"shifts"`
	DailyHours    map[string]float64 `json:"daily_hours"`
	WeeklyHours   float64            `json:"weekly_hours"`
	OvertimeHours float64            `json:"overtime_hours"`
	LaborCost     float64            `json:"labor_cost"`
}

type summaryDTO struct {
	TotalWeeklyHours     float64            `json:"total_weekly_hours"`
	CategoryHours        map[string]float64 `json:"category_hours"`
	GMHours              float64            `json:"gm_hours"`
	HourlyManagerHours   float64            `json:"hourly_manager_hours"`
	TotalOvertimeHours   float64            `json:"total_overtime_hours"`
	TotalWeeklyLaborCost float64            `json:"total_weekly_labor_cost"`
	EmployeeCount        int                `json:"employee_count"`
	TotalSales           float64            `json:"total_sales"`
	LaborPercent         *float64           `json:"labor_percent"`
	AverageHours         *float64           `json:"average_hours"`
}

type diagnosticDTO struct {
	EmployeeID string `json:"employee_id"`
	Kind       string `json:"kind"`
	Day        string `json:"day,omitempty"`
	Value      string `json:"value,omitempty"`
}

func toReportDTO(report application.ScheduleReport) reportDTO {
	analysis := report.Analysis
	brand := analysis.Brand
	categories := brand.Categories()

	dto := reportDTO{
		ScheduleID:        report.ScheduleID,
		Location:          report.Location,
		Brand:             report.Brand,
		Taxonomy:          brand.String(),
		WeekStart:         report.WeekStart,
		ScheduleUpdatedAt: formatTimestamp(report.ScheduleUpdatedAt),
		GeneratedAt:       formatTimestamp(report.GeneratedAt),
		Categories:        make([]categoryDTO, 0, len(categories)),
		Staffing:          make([]staffingDay, 0, shiftanalysis.DaysPerWeek),
		Employees:         make([]employeeHours, 0, len(analysis.Employees)),
		Diagnostics:       make([]diagnosticDTO, 0, len(analysis.Diagnostics)),
	}

	for _, c := range categories {
		dto.Categories = append(dto.Categories, categoryDTO{Key: string(c), Label: brand.CategoryLabel(c)})
	}

	for _, day := range shiftanalysis.Days() {
		entry := staffingDay{Day: day.Key(), Windows: make([]staffingWindow, 0, shiftanalysis.WindowsPerDay)}
		for _, window := range shiftanalysis.Windows {
			count := analysis.Staffing.Count(day, window.ID)
			counts := make(map[string]int, len(categories))
			for _, c := range categories {
				counts[string(c)] = count[c]
			}
			entry.Windows = append(entry.Windows, staffingWindow{
				Window: window.Key,
				Label:  window.Label,
				Counts: counts,
				Total:  count.Total(),
			})
		}
		dto.Staffing = append(dto.Staffing, entry)
	}

	for _, emp := range analysis.Employees {
		shifts := make(map[string]string, shiftanalysis.DaysPerWeek)
		daily := make(map[string]float64, shiftanalysis.DaysPerWeek)
		for _, day := range shiftanalysis.Days() {
			shifts[day.Key()] = emp.Shifts[day]
			daily[day.Key()] = emp.DailyHours[day]
		}
		dto.Employees = append(dto.Employees, employeeHours{
			ID:            emp.ID,
			Name:          emp.Name,
			Role:          emp.Role,
			PayType:       string(emp.PayType),
			Category:      string(emp.Classification.Category),
			ManagerTier:   emp.Classification.ManagerTier,
			GM:            emp.Classification.GM,
			Salaried:      emp.Classification.Salaried,
			Shifts:        shifts,
			DailyHours:    daily,
			WeeklyHours:   emp.WeeklyHours,
			OvertimeHours: emp.OvertimeHours,
			LaborCost:     emp.LaborCost,
		})
	}

	summary := analysis.Summary
	categoryHours := make(map[string]float64, len(summary.CategoryHours))
	for c, hours := range summary.CategoryHours {
		categoryHours[string(c)] = hours
	}
	dto.Summary = summaryDTO{
		TotalWeeklyHours:     summary.TotalWeeklyHours,
		CategoryHours:        categoryHours,
		GMHours:              summary.GMHours,
		HourlyManagerHours:   summary.HourlyManagerHours,
		TotalOvertimeHours:   summary.TotalOvertimeHours,
		TotalWeeklyLaborCost: summary.TotalWeeklyLaborCost,
		EmployeeCount:        summary.EmployeeCount,
		TotalSales:           analysis.TotalSales,
		LaborPercent:         optionalValue(analysis.LaborPercent, analysis.HasLabor),
		AverageHours:         optionalValue(analysis.AverageHours, analysis.HasAverage),
	}

	for _, d := range analysis.Diagnostics {
		diag := diagnosticDTO{EmployeeID: d.EmployeeID, Kind: string(d.Kind), Value: d.Value}
		if d.HasDay {
			diag.Day = d.Day.Key()
		}
		dto.Diagnostics = append(dto.Diagnostics, diag)
	}
	return dto
}

func optionalValue(value float64, ok bool) *float64 {
	if !ok {
		return nil
	}
	return &value
}
