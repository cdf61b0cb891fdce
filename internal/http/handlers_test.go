package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/example/staffing-reports/internal/application"
	"github.com/example/staffing-reports/internal/shiftanalysis"
)

type scheduleServiceStub struct {
	saveInput    application.ScheduleInput
	saveResult   application.SaveScheduleResult
	saveErr      error
	importParams application.ImportScheduleParams
	importCalled bool
	importResult application.SaveScheduleResult
	importErr    error
	getID        string
	getResult    application.Schedule
	getErr       error
	listParams   application.ListSchedulesParams
	listResult   []application.Schedule
	listErr      error
	deletedID    string
	deleteErr    error
}

func (s *scheduleServiceStub) SaveSchedule(_ context.Context, input application.ScheduleInput) (application.SaveScheduleResult, error) {
	s.saveInput = input
	return s.saveResult, s.saveErr
}

func (s *scheduleServiceStub) ImportSchedule(_ context.Context, params application.ImportScheduleParams) (application.SaveScheduleResult, error) {
	s.importCalled = true
	s.importParams = params
	return s.importResult, s.importErr
}

func (s *scheduleServiceStub) GetSchedule(_ context.Context, id string) (application.Schedule, error) {
	s.getID = id
	return s.getResult, s.getErr
}

func (s *scheduleServiceStub) ListSchedules(_ context.Context, params application.ListSchedulesParams) ([]application.Schedule, error) {
	s.listParams = params
	return s.listResult, s.listErr
}

func (s *scheduleServiceStub) DeleteSchedule(_ context.Context, id string) error {
	s.deletedID = id
	return s.deleteErr
}

type reportServiceStub struct {
	generateID    string
	report        application.ScheduleReport
	reportErr     error
	analyzeParams application.AnalyzeWeekParams
	workbook      application.WorkbookFile
	workbookErr   error
	publishParams application.PublishReportParams
	published     application.PublishedReport
	publishErr    error
	downloadID    string
	downloaded    application.PublishedReport
	downloadErr   error
}

func (s *reportServiceStub) GenerateReport(_ context.Context, scheduleID string) (application.ScheduleReport, error) {
	s.generateID = scheduleID
	return s.report, s.reportErr
}

func (s *reportServiceStub) AnalyzeWeek(_ context.Context, params application.AnalyzeWeekParams) (application.ScheduleReport, error) {
	s.analyzeParams = params
	return s.report, s.reportErr
}

func (s *reportServiceStub) RenderWorkbook(_ context.Context, scheduleID string) (application.WorkbookFile, error) {
	s.generateID = scheduleID
	return s.workbook, s.workbookErr
}

func (s *reportServiceStub) PublishReport(_ context.Context, params application.PublishReportParams) (application.PublishedReport, error) {
	s.publishParams = params
	return s.published, s.publishErr
}

func (s *reportServiceStub) GetPublishedReport(_ context.Context, id string) (application.PublishedReport, error) {
	s.downloadID = id
	return s.downloaded, s.downloadErr
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestRouter(schedules *scheduleServiceStub, reports *reportServiceStub) http.Handler {
	logger := discardLogger()
	cfg := RouterConfig{}
	if schedules != nil {
		cfg.Schedules = NewScheduleHandlerWithUploadLimit(schedules, 1<<20, logger)
	}
	if reports != nil {
		cfg.Reports = NewReportHandler(reports, logger)
	}
	return NewRouter(cfg)
}

func serve(t *testing.T, handler http.Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)
	return recorder
}

func decodeBody[T any](t *testing.T, recorder *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(recorder.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode response %q: %v", recorder.Body.String(), err)
	}
	return out
}

func sampleSchedule() application.Schedule {
	rate := 15.5
	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	return application.Schedule{
		ID:        "sched-1",
		Location:  "Main St",
		WeekStart: "2024-03-04",
		Employees: []application.Employee{{
			ID:      "e1",
			Name:    "Ana",
			Role:    "Crew",
			PayType: "hourly",
			PayRate: &rate,
			Shifts:  map[string]string{"mon": "9-17"},
		}},
		Sales:     map[string]float64{"mon": 400},
		UpdatedBy: "ops",
		CreatedAt: created,
		UpdatedAt: created.Add(time.Hour),
	}
}

func sampleReport() application.ScheduleReport {
	schedule := sampleSchedule()
	rate := 20.0
	week := shiftanalysis.Week{
		Location: schedule.Location,
		Employees: map[string]shiftanalysis.EmployeeWeek{
			"e1": {ID: "e1", Name: "Ana", Role: "Crew", PayType: shiftanalysis.PayHourly, PayRate: &rate, Shifts: map[shiftanalysis.Day]string{shiftanalysis.Monday: "9-17"}},
			"e2": {ID: "e2", Name: "Ben", Role: "Crew", PayType: shiftanalysis.PayHourly, Shifts: map[shiftanalysis.Day]string{shiftanalysis.Tuesday: "late"}},
		},
		Sales: map[shiftanalysis.Day]float64{shiftanalysis.Monday: 400},
	}
	return application.ScheduleReport{
		ScheduleID:        schedule.ID,
		Location:          schedule.Location,
		WeekStart:         schedule.WeekStart,
		ScheduleUpdatedAt: schedule.UpdatedAt,
		GeneratedAt:       schedule.UpdatedAt.Add(time.Minute),
		Analysis:          shiftanalysis.Analyze(week),
	}
}

func TestScheduleHandlers(t *testing.T) {
	t.Parallel()

	t.Run("save answers 201 for new weeks and maps the payload", func(t *testing.T) {
		t.Parallel()

		stub := &scheduleServiceStub{saveResult: application.SaveScheduleResult{Schedule: sampleSchedule(), Created: true}}
		body := `{"location":"Main St","week_start":"2024-03-04","updated_by":"ops",
			"employees":[{"id":"e1","name":"Ana","role":"Crew","pay_type":"hourly","pay_rate":15.5,"shifts":{"mon":"9-17"}}],
			"sales":{"mon":400}}`
		recorder := serve(t, newTestRouter(stub, nil), httptest.NewRequest(http.MethodPost, "/schedules", strings.NewReader(body)))

		if recorder.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", recorder.Code, recorder.Body.String())
		}
		input := stub.saveInput
		if input.Location != "Main St" || input.WeekStart != "2024-03-04" || input.UpdatedBy != "ops" {
			t.Fatalf("unexpected input: %+v", input)
		}
		if len(input.Employees) != 1 || input.Employees[0].PayRate == nil || *input.Employees[0].PayRate != 15.5 {
			t.Fatalf("unexpected employees: %+v", input.Employees)
		}
		if input.Employees[0].Shifts["mon"] != "9-17" || input.Sales["mon"] != 400 {
			t.Fatalf("unexpected shifts or sales: %+v %+v", input.Employees[0].Shifts, input.Sales)
		}

		resp := decodeBody[scheduleResponse](t, recorder)
		if resp.Schedule.ID != "sched-1" || !resp.Created {
			t.Fatalf("unexpected response: %+v", resp)
		}
		if resp.Schedule.CreatedAt != "2024-03-01T09:00:00Z" {
			t.Fatalf("unexpected created_at %q", resp.Schedule.CreatedAt)
		}
	})

	t.Run("save answers 200 when a week is replaced", func(t *testing.T) {
		t.Parallel()

		stub := &scheduleServiceStub{saveResult: application.SaveScheduleResult{Schedule: sampleSchedule()}}
		recorder := serve(t, newTestRouter(stub, nil), httptest.NewRequest(http.MethodPost, "/schedules", strings.NewReader(`{"location":"Main St"}`)))
		if recorder.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", recorder.Code)
		}
	})

	t.Run("malformed JSON is a bad request", func(t *testing.T) {
		t.Parallel()

		recorder := serve(t, newTestRouter(&scheduleServiceStub{}, nil), httptest.NewRequest(http.MethodPost, "/schedules", strings.NewReader("{")))
		if recorder.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", recorder.Code)
		}
		resp := decodeBody[errorResponse](t, recorder)
		if resp.Message != errBadRequestBody.Error() {
			t.Fatalf("unexpected message %q", resp.Message)
		}
	})

	t.Run("service errors map to status codes", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name   string
			err    error
			status int
			code   string
		}{
			{name: "validation", err: &application.ValidationError{FieldErrors: map[string]string{"location": "location is required"}}, status: http.StatusUnprocessableEntity, code: "VALIDATION_FAILED"},
			{name: "conflict", err: application.ErrConflict, status: http.StatusConflict, code: "CONFLICT"},
			{name: "not found", err: application.ErrNotFound, status: http.StatusNotFound},
			{name: "unauthorized", err: application.ErrUnauthorized, status: http.StatusUnauthorized, code: "AUTH_REQUIRED"},
			{name: "unexpected", err: io.ErrUnexpectedEOF, status: http.StatusInternalServerError},
		}

		for _, tc := range tests {
			tc := tc
			t.Run(tc.name, func(t *testing.T) {
				t.Parallel()

				stub := &scheduleServiceStub{saveErr: tc.err}
				recorder := serve(t, newTestRouter(stub, nil), httptest.NewRequest(http.MethodPost, "/schedules", strings.NewReader(`{}`)))
				if recorder.Code != tc.status {
					t.Fatalf("expected %d, got %d", tc.status, recorder.Code)
				}
				resp := decodeBody[errorResponse](t, recorder)
				if resp.ErrorCode != tc.code {
					t.Fatalf("expected code %q, got %q", tc.code, resp.ErrorCode)
				}
				if tc.status == http.StatusUnprocessableEntity && resp.Errors["location"] != "location is required" {
					t.Fatalf("expected field errors, got %+v", resp.Errors)
				}
			})
		}
	})

	t.Run("list passes filters and never returns null", func(t *testing.T) {
		t.Parallel()

		stub := &scheduleServiceStub{}
		recorder := serve(t, newTestRouter(stub, nil), httptest.NewRequest(http.MethodGet, "/schedules?location=Main+St&week_start=2024-03-04&updated_by=ops", nil))
		if recorder.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", recorder.Code)
		}
		want := application.ListSchedulesParams{Location: "Main St", WeekStart: "2024-03-04", UpdatedBy: "ops"}
		if stub.listParams != want {
			t.Fatalf("expected %+v, got %+v", want, stub.listParams)
		}
		if !strings.Contains(recorder.Body.String(), `"schedules":[]`) {
			t.Fatalf("expected empty list, got %s", recorder.Body.String())
		}
	})

	t.Run("get and delete resolve the schedule id", func(t *testing.T) {
		t.Parallel()

		stub := &scheduleServiceStub{getResult: sampleSchedule()}
		router := newTestRouter(stub, nil)

		recorder := serve(t, router, httptest.NewRequest(http.MethodGet, "/schedules/sched-1", nil))
		if recorder.Code != http.StatusOK || stub.getID != "sched-1" {
			t.Fatalf("unexpected get: %d id=%q", recorder.Code, stub.getID)
		}
		resp := decodeBody[scheduleResponse](t, recorder)
		if len(resp.Schedule.Employees) != 1 || resp.Schedule.Employees[0].Shifts["mon"] != "9-17" {
			t.Fatalf("unexpected schedule: %+v", resp.Schedule)
		}

		recorder = serve(t, router, httptest.NewRequest(http.MethodDelete, "/schedules/sched-1", nil))
		if recorder.Code != http.StatusNoContent || stub.deletedID != "sched-1" {
			t.Fatalf("unexpected delete: %d id=%q", recorder.Code, stub.deletedID)
		}
	})

	t.Run("unsupported methods advertise allowed ones", func(t *testing.T) {
		t.Parallel()

		router := newTestRouter(&scheduleServiceStub{}, &reportServiceStub{})
		tests := []struct {
			method string
			path   string
			allow  string
		}{
			{method: http.MethodPut, path: "/schedules", allow: "GET, POST"},
			{method: http.MethodPut, path: "/schedules/sched-1", allow: "GET, DELETE"},
			{method: http.MethodGet, path: "/schedules/import", allow: "POST"},
			{method: http.MethodGet, path: "/schedules/sched-1/publish", allow: "POST"},
			{method: http.MethodPost, path: "/reports/r-1", allow: "GET"},
		}
		for _, tc := range tests {
			recorder := serve(t, router, httptest.NewRequest(tc.method, tc.path, nil))
			if recorder.Code != http.StatusMethodNotAllowed {
				t.Fatalf("%s %s: expected 405, got %d", tc.method, tc.path, recorder.Code)
			}
			if got := recorder.Header().Get("Allow"); got != tc.allow {
				t.Fatalf("%s %s: expected Allow %q, got %q", tc.method, tc.path, tc.allow, got)
			}
		}
	})

	t.Run("unknown schedule paths are not found", func(t *testing.T) {
		t.Parallel()

		router := newTestRouter(&scheduleServiceStub{}, &reportServiceStub{})
		for _, path := range []string{"/schedules/", "/schedules/sched-1/unknown", "/reports/"} {
			recorder := serve(t, router, httptest.NewRequest(http.MethodGet, path, nil))
			if recorder.Code != http.StatusNotFound {
				t.Fatalf("%s: expected 404, got %d", path, recorder.Code)
			}
		}
	})
}

func multipartRequest(t *testing.T, fields map[string]string, fileName string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if fileName != "" {
		part, err := writer.CreateFormFile("file", fileName)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write(content); err != nil {
			t.Fatalf("write file: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/schedules/import", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestImportHandler(t *testing.T) {
	t.Parallel()

	t.Run("passes the uploaded workbook and form values", func(t *testing.T) {
		t.Parallel()

		stub := &scheduleServiceStub{importResult: application.SaveScheduleResult{Schedule: sampleSchedule(), Created: true}}
		req := multipartRequest(t, map[string]string{
			"location":   "Main St",
			"brand":      "Taco",
			"week_start": "2024-03-04",
			"updated_by": "ops",
		}, "roster.xlsx", []byte("PK-content"))

		recorder := serve(t, newTestRouter(stub, nil), req)
		if recorder.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", recorder.Code, recorder.Body.String())
		}
		params := stub.importParams
		if params.FileName != "roster.xlsx" || string(params.Content) != "PK-content" {
			t.Fatalf("unexpected file: %q %q", params.FileName, params.Content)
		}
		if params.Location != "Main St" || params.Brand != "Taco" || params.WeekStart != "2024-03-04" || params.UpdatedBy != "ops" {
			t.Fatalf("unexpected params: %+v", params)
		}
	})

	t.Run("missing file is left to service validation", func(t *testing.T) {
		t.Parallel()

		stub := &scheduleServiceStub{importErr: &application.ValidationError{FieldErrors: map[string]string{"file": "file is required"}}}
		recorder := serve(t, newTestRouter(stub, nil), multipartRequest(t, map[string]string{"location": "Main St"}, "", nil))

		if !stub.importCalled || len(stub.importParams.Content) != 0 {
			t.Fatalf("expected service call without content, got %+v", stub.importParams)
		}
		if recorder.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", recorder.Code)
		}
	})

	t.Run("non multipart body is a bad request", func(t *testing.T) {
		t.Parallel()

		stub := &scheduleServiceStub{}
		req := httptest.NewRequest(http.MethodPost, "/schedules/import", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		recorder := serve(t, newTestRouter(stub, nil), req)
		if recorder.Code != http.StatusBadRequest || stub.importCalled {
			t.Fatalf("expected 400 without service call, got %d", recorder.Code)
		}
	})
}

func TestReportHandlers(t *testing.T) {
	t.Parallel()

	t.Run("report renders staffing summary and diagnostics", func(t *testing.T) {
		t.Parallel()

		stub := &reportServiceStub{report: sampleReport()}
		recorder := serve(t, newTestRouter(nil, stub), httptest.NewRequest(http.MethodGet, "/schedules/sched-1/report", nil))
		if recorder.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", recorder.Code, recorder.Body.String())
		}
		if stub.generateID != "sched-1" {
			t.Fatalf("unexpected schedule id %q", stub.generateID)
		}

		report := decodeBody[reportResponse](t, recorder).Report
		if report.Taxonomy != "Default" || len(report.Categories) != 3 || report.Categories[0].Label != "Mgrs" {
			t.Fatalf("unexpected taxonomy: %s %+v", report.Taxonomy, report.Categories)
		}
		if len(report.Staffing) != 7 || report.Staffing[0].Day != "mon" || len(report.Staffing[0].Windows) != 5 {
			t.Fatalf("unexpected staffing shape: %+v", report.Staffing)
		}
		monday := report.Staffing[0].Windows
		if monday[0].Counts["crew"] != 1 || monday[2].Total != 1 || monday[3].Total != 0 {
			t.Fatalf("unexpected monday counts: %+v", monday)
		}
		if report.Summary.TotalWeeklyHours != 8 || report.Summary.TotalWeeklyLaborCost != 160 {
			t.Fatalf("unexpected summary: %+v", report.Summary)
		}
		if report.Summary.LaborPercent == nil || *report.Summary.LaborPercent != 40 {
			t.Fatalf("expected labor percent 40, got %v", report.Summary.LaborPercent)
		}
		if report.Summary.AverageHours == nil || *report.Summary.AverageHours != 4 {
			t.Fatalf("expected average 4, got %v", report.Summary.AverageHours)
		}

		kinds := map[string]string{}
		for _, d := range report.Diagnostics {
			kinds[d.Kind] = d.Day
		}
		if day, ok := kinds[string(shiftanalysis.DiagnosticUnparseableTime)]; !ok || day != "tue" {
			t.Fatalf("expected unparseable tuesday diagnostic, got %+v", report.Diagnostics)
		}
		if _, ok := kinds[string(shiftanalysis.DiagnosticMissingPayData)]; !ok {
			t.Fatalf("expected missing pay diagnostic, got %+v", report.Diagnostics)
		}
	})

	t.Run("undefined ratios are null", func(t *testing.T) {
		t.Parallel()

		stub := &reportServiceStub{report: application.ScheduleReport{Analysis: shiftanalysis.Analyze(shiftanalysis.Week{})}}
		recorder := serve(t, newTestRouter(nil, stub), httptest.NewRequest(http.MethodGet, "/schedules/s/report", nil))
		body := recorder.Body.String()
		if !strings.Contains(body, `"labor_percent":null`) || !strings.Contains(body, `"average_hours":null`) {
			t.Fatalf("expected null ratios, got %s", body)
		}
	})

	t.Run("workbook is sent as an attachment", func(t *testing.T) {
		t.Parallel()

		stub := &reportServiceStub{workbook: application.WorkbookFile{FileName: "staffing-main-st.xlsx", ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", Content: []byte("PK")}}
		recorder := serve(t, newTestRouter(nil, stub), httptest.NewRequest(http.MethodGet, "/schedules/sched-1/report.xlsx", nil))
		if recorder.Code != http.StatusOK || recorder.Body.String() != "PK" {
			t.Fatalf("unexpected response %d %q", recorder.Code, recorder.Body.String())
		}
		if got := recorder.Header().Get("Content-Disposition"); got != `attachment; filename="staffing-main-st.xlsx"` {
			t.Fatalf("unexpected disposition %q", got)
		}
		if got := recorder.Header().Get("Content-Type"); got != stub.workbook.ContentType {
			t.Fatalf("unexpected content type %q", got)
		}
	})

	t.Run("publish returns the stored report path", func(t *testing.T) {
		t.Parallel()

		stub := &reportServiceStub{published: application.PublishedReport{
			ID:          "rep-1",
			ScheduleID:  "sched-1",
			FileName:    "staffing.xlsx",
			ContentType: "application/octet-stream",
			Content:     []byte("PKPK"),
			CreatedBy:   "ops",
			CreatedAt:   time.Date(2024, 3, 2, 8, 0, 0, 0, time.UTC),
		}}
		router := newTestRouter(nil, stub)

		recorder := serve(t, router, httptest.NewRequest(http.MethodPost, "/schedules/sched-1/publish", strings.NewReader(`{"published_by":"ops"}`)))
		if recorder.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", recorder.Code, recorder.Body.String())
		}
		if stub.publishParams != (application.PublishReportParams{ScheduleID: "sched-1", PublishedBy: "ops"}) {
			t.Fatalf("unexpected params %+v", stub.publishParams)
		}
		resp := decodeBody[publishedReportResponse](t, recorder)
		if resp.Report.Path != "/reports/rep-1" || resp.Report.SizeBytes != 4 {
			t.Fatalf("unexpected report %+v", resp.Report)
		}
		if recorder.Header().Get("Location") != "/reports/rep-1" {
			t.Fatalf("unexpected Location %q", recorder.Header().Get("Location"))
		}

		recorder = serve(t, router, httptest.NewRequest(http.MethodPost, "/schedules/sched-1/publish", nil))
		if recorder.Code != http.StatusCreated {
			t.Fatalf("expected empty body to be accepted, got %d", recorder.Code)
		}
	})

	t.Run("download streams the published workbook", func(t *testing.T) {
		t.Parallel()

		stub := &reportServiceStub{downloaded: application.PublishedReport{ID: "rep-1", FileName: "staffing.xlsx", Content: []byte("PK")}}
		recorder := serve(t, newTestRouter(nil, stub), httptest.NewRequest(http.MethodGet, "/reports/rep-1", nil))
		if recorder.Code != http.StatusOK || stub.downloadID != "rep-1" || recorder.Body.String() != "PK" {
			t.Fatalf("unexpected download %d id=%q", recorder.Code, stub.downloadID)
		}
		if recorder.Header().Get("Content-Type") != "application/octet-stream" {
			t.Fatalf("expected default content type, got %q", recorder.Header().Get("Content-Type"))
		}

		stub.downloadErr = application.ErrNotFound
		recorder = serve(t, newTestRouter(nil, stub), httptest.NewRequest(http.MethodGet, "/reports/missing", nil))
		if recorder.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", recorder.Code)
		}
	})

	t.Run("analyze maps the inline schedule", func(t *testing.T) {
		t.Parallel()

		stub := &reportServiceStub{report: sampleReport()}
		body := `{"location":"ODT Downtown","brand":"Doughnut","employees":[{"id":"b1","name":"Cy","role":"Barista","shifts":{"saturday":"6am-11am"}}],"sales":{"sat":900}}`
		recorder := serve(t, newTestRouter(nil, stub), httptest.NewRequest(http.MethodPost, "/reports/analyze", strings.NewReader(body)))
		if recorder.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", recorder.Code)
		}
		params := stub.analyzeParams
		if params.Location != "ODT Downtown" || params.Brand != "Doughnut" || params.Sales["sat"] != 900 {
			t.Fatalf("unexpected params %+v", params)
		}
		if len(params.Employees) != 1 || params.Employees[0].Shifts["saturday"] != "6am-11am" || params.Employees[0].PayRate != nil {
			t.Fatalf("unexpected employees %+v", params.Employees)
		}
	})
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	recorder := serve(t, NewRouter(RouterConfig{}), httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if recorder.Code != http.StatusOK || !strings.Contains(recorder.Body.String(), `"ok"`) {
		t.Fatalf("unexpected health response %d %s", recorder.Code, recorder.Body.String())
	}
}
