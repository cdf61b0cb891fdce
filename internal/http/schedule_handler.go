package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/example/staffing-reports/internal/application"
)

// DefaultMaxUploadBytes bounds roster uploads when no limit is configured.
const DefaultMaxUploadBytes int64 = 10 << 20

type scheduleService interface {
	SaveSchedule(ctx context.Context, input application.ScheduleInput) (application.SaveScheduleResult, error)
	ImportSchedule(ctx context.Context, params application.ImportScheduleParams) (application.SaveScheduleResult, error)
	GetSchedule(ctx context.Context, id string) (application.Schedule, error)
	ListSchedules(ctx context.Context, params application.ListSchedulesParams) ([]application.Schedule, error)
	DeleteSchedule(ctx context.Context, id string) error
}

type ScheduleHandler struct {
	service        scheduleService
	responder      responder
	logger         *slog.Logger
	maxUploadBytes int64
}

func NewScheduleHandler(service scheduleService, logger *slog.Logger) *ScheduleHandler {
	return NewScheduleHandlerWithUploadLimit(service, DefaultMaxUploadBytes, logger)
}

// NewScheduleHandlerWithUploadLimit builds a handler that rejects roster
// uploads larger than maxUploadBytes.
func NewScheduleHandlerWithUploadLimit(service scheduleService, maxUploadBytes int64, logger *slog.Logger) *ScheduleHandler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = DefaultMaxUploadBytes
	}
	return &ScheduleHandler{
		service:        service,
		responder:      newResponder(logger),
		logger:         logger,
		maxUploadBytes: maxUploadBytes,
	}
}

// Save stores a weekly schedule, replacing the week already kept for the
// same location. New weeks answer 201, replacements 200.
func (h *ScheduleHandler) Save(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req scheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	result, err := h.service.SaveSchedule(r.Context(), req.toInput())
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.renderSaveResult(r.Context(), w, result)
}

// Import stores a schedule read from an uploaded roster workbook.
func (h *ScheduleHandler) Import(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.responder.writeError(r.Context(), w, http.StatusRequestEntityTooLarge, errUploadTooLarge)
			return
		}
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadMultipartBody)
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	params := application.ImportScheduleParams{
		Location:  r.FormValue("location"),
		Brand:     r.FormValue("brand"),
		WeekStart: r.FormValue("week_start"),
		UpdatedBy: r.FormValue("updated_by"),
	}

	file, header, err := r.FormFile("file")
	switch {
	case errors.Is(err, http.ErrMissingFile):
		// Leave content empty so the service reports the missing file.
	case err != nil:
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadMultipartBody)
		return
	default:
		defer file.Close()
		content, readErr := io.ReadAll(file)
		if readErr != nil {
			h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadMultipartBody)
			return
		}
		params.FileName = header.Filename
		params.Content = content
	}

	handlerLogger(r.Context(), h.logger, "ScheduleHandler", "Import", "file_name", params.FileName, "size_bytes", len(params.Content)).
		DebugContext(r.Context(), "roster received")

	result, err := h.service.ImportSchedule(r.Context(), params)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.renderSaveResult(r.Context(), w, result)
}

func (h *ScheduleHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	scheduleID, ok := ScheduleIDFromContext(r.Context())
	if !ok || strings.TrimSpace(scheduleID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidScheduleID)
		return
	}

	schedule, err := h.service.GetSchedule(r.Context(), scheduleID)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, scheduleResponse{Schedule: toScheduleDTO(schedule)})
}

func (h *ScheduleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	scheduleID, ok := ScheduleIDFromContext(r.Context())
	if !ok || strings.TrimSpace(scheduleID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidScheduleID)
		return
	}

	if err := h.service.DeleteSchedule(r.Context(), scheduleID); err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

func (h *ScheduleHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	schedules, err := h.service.ListSchedules(r.Context(), buildListParams(r.URL.Query()))
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, listSchedulesResponse{Schedules: toScheduleDTOs(schedules)})
}

func (h *ScheduleHandler) renderSaveResult(ctx context.Context, w http.ResponseWriter, result application.SaveScheduleResult) {
	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	h.responder.writeJSON(ctx, w, status, scheduleResponse{
		Schedule: toScheduleDTO(result.Schedule),
		Created:  result.Created,
	})
}

type employeeDTO struct {
	ID      string            `json:"id"`
	Name    string            `json:"name"`
	Role    string            `json:"role"`
	PayType string            `json:"pay_type,omitempty"`
	PayRate *float64          `json:"pay_rate,omitempty"`
	Shifts  map[string]string `json:"shifts"`
}

func (e employeeDTO) toEmployee() application.Employee {
	shifts := make(map[string]string, len(e.Shifts))
	for day, value := range e.Shifts {
		shifts[day] = value
	}
	return application.Employee{
		ID:      e.ID,
		Name:    e.Name,
		Role:    e.Role,
		PayType: e.PayType,
		PayRate: copyRate(e.PayRate),
		Shifts:  shifts,
	}
}

func toEmployees(dtos []employeeDTO) []application.Employee {
	if len(dtos) == 0 {
		return nil
	}
	out := make([]application.Employee, 0, len(dtos))
	for _, dto := range dtos {
		out = append(out, dto.toEmployee())
	}
	return out
}

func toEmployeeDTOs(employees []application.Employee) []employeeDTO {
	out := make([]employeeDTO, 0, len(employees))
	for _, emp := range employees {
		shifts := make(map[string]string, len(emp.Shifts))
		for day, value := range emp.Shifts {
			shifts[day] = value
		}
		out = append(out, employeeDTO{
			ID:      emp.ID,
			Name:    emp.Name,
			Role:    emp.Role,
			PayType: emp.PayType,
			PayRate: copyRate(emp.PayRate),
			Shifts:  shifts,
		})
	}
	return out
}

type scheduleRequest struct {
	Location  string             `json:"location"`
	Brand     string             `json:"brand"`
	WeekStart string             `json:"week_start"`
	Employees []employeeDTO      `json:"employees"`
	Sales     map[string]float64 `json:"sales"`
	UpdatedBy string             `json:"updated_by"`
}

func (r scheduleRequest) toInput() application.ScheduleInput {
	return application.ScheduleInput{
		Location:  r.Location,
		Brand:     r.Brand,
		WeekStart: r.WeekStart,
		Employees: toEmployees(r.Employees),
		Sales:     copySales(r.Sales),
		UpdatedBy: r.UpdatedBy,
	}
}

type scheduleResponse struct {
	Schedule scheduleDTO `json:"schedule"`
	Created  bool        `json:"created,omitempty"`
}

type listSchedulesResponse struct {
	Schedules []scheduleDTO `json:"schedules"`
}

type scheduleDTO struct {
	ID        string             `json:"id"`
	Location  string             `json:"location"`
	Brand     string             `json:"brand,omitempty"`
	WeekStart string             `json:"week_start"`
	Employees []employeeDTO      `json:"employees"`
	Sales     map[string]float64 `json:"sales"`
	UpdatedBy string             `json:"updated_by"`
	CreatedAt string             `json:"created_at"`
	UpdatedAt string             `json:"updated_at"`
}

func toScheduleDTO(schedule application.Schedule) scheduleDTO {
	sales := copySales(schedule.Sales)
	if sales == nil {
		sales = map[string]float64{}
	}
	return scheduleDTO{
		ID:        schedule.ID,
		Location:  schedule.Location,
		Brand:     schedule.Brand,
		WeekStart: schedule.WeekStart,
		Employees: toEmployeeDTOs(schedule.Employees),
		Sales:     sales,
		UpdatedBy: schedule.UpdatedBy,
		CreatedAt: formatTimestamp(schedule.CreatedAt),
		UpdatedAt: formatTimestamp(schedule.UpdatedAt),
	}
}

func toScheduleDTOs(schedules []application.Schedule) []scheduleDTO {
	out := make([]scheduleDTO, 0, len(schedules))
	for _, schedule := range schedules {
		out = append(out, toScheduleDTO(schedule))
	}
	return out
}

func buildListParams(values url.Values) application.ListSchedulesParams {
	return application.ListSchedulesParams{
		Location:  strings.TrimSpace(values.Get("location")),
		WeekStart: strings.TrimSpace(values.Get("week_start")),
		UpdatedBy: strings.TrimSpace(values.Get("updated_by")),
	}
}

func formatTimestamp(ts time.Time) string {
	if ts.IsZero() {
		return ""
	}
	return ts.UTC().Format(time.RFC3339Nano)
}

func copyRate(v *float64) *float64 {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

func copySales(sales map[string]float64) map[string]float64 {
	if sales == nil {
		return nil
	}
	out := make(map[string]float64, len(sales))
	for day, value := range sales {
		out[day] = value
	}
	return out
}
