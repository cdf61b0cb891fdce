package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/example/staffing-reports/internal/persistence"
)

// ScheduleRepository captures the persistence interactions needed by the service.
type ScheduleRepository interface {
	UpsertSchedule(ctx context.Context, schedule Schedule) (Schedule, bool, error)
	GetSchedule(ctx context.Context, id string) (Schedule, error)
	ListSchedules(ctx context.Context, params ListSchedulesParams) ([]Schedule, error)
	DeleteSchedule(ctx context.Context, id string) error
}

// RosterReader extracts employees and sales from an uploaded workbook.
type RosterReader interface {
	ReadRoster(fileName string, content []byte) (Roster, error)
}

// ReportInvalidator drops cached reports of a schedule.
type ReportInvalidator interface {
	Invalidate(scheduleID string)
}

// ScheduleService orchestrates validation and persistence for weekly schedules.
type ScheduleService struct {
	schedules   ScheduleRepository
	rosters     RosterReader
	reports     ReportInvalidator
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewScheduleService wires dependencies for schedule operations.
func NewScheduleService(schedules ScheduleRepository, rosters RosterReader, reports ReportInvalidator, idGenerator func() string, now func() time.Time) *ScheduleService {
	return NewScheduleServiceWithLogger(schedules, rosters, reports, idGenerator, now, nil)
}

// NewScheduleServiceWithLogger constructs a schedule service with a specified logger.
func NewScheduleServiceWithLogger(schedules ScheduleRepository, rosters RosterReader, reports ReportInvalidator, idGenerator func() string, now func() time.Time, logger *slog.Logger) *ScheduleService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &ScheduleService{
		schedules:   schedules,
		rosters:     rosters,
		reports:     reports,
		idGenerator: idGenerator,
		now:         now,
		logger:      defaultLogger(logger),
	}
}

func (s *ScheduleService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "ScheduleService", operation, attrs...)
}

// SaveSchedule validates the week and stores it, replacing any schedule kept
// for the same location and week start.
func (s *ScheduleService) SaveSchedule(ctx context.Context, input ScheduleInput) (result SaveScheduleResult, err error) {
	if s == nil {
		err = fmt.Errorf("ScheduleService is nil")
		return
	}

	logger := s.loggerWith(ctx, "SaveSchedule",
		"location", input.Location,
		"week_start", input.WeekStart,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to save schedule", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With(
			"schedule_id", result.Schedule.ID,
			"created", result.Created,
			"employee_count", len(result.Schedule.Employees),
		).InfoContext(ctx, "schedule saved")
	}()

	normalized, vErr := validateScheduleInput(input)
	if vErr.HasErrors() {
		err = vErr
		return
	}
	if s.schedules == nil {
		err = fmt.Errorf("schedule repository not configured")
		return
	}

	now := s.now()
	schedule := Schedule{
		ID:        s.idGenerator(),
		Location:  normalized.Location,
		Brand:     normalized.Brand,
		WeekStart: normalized.WeekStart,
		Employees: normalized.Employees,
		Sales:     normalized.Sales,
		UpdatedBy: normalized.UpdatedBy,
		CreatedAt: now,
		UpdatedAt: now,
	}

	stored, created, repoErr := s.schedules.UpsertSchedule(ctx, schedule)
	if repoErr != nil {
		err = mapRepoError(repoErr)
		return
	}
	if s.reports != nil {
		s.reports.Invalidate(stored.ID)
	}

	result = SaveScheduleResult{Schedule: stored, Created: created}
	return
}

// ImportSchedule reads a roster workbook and saves it as the week's schedule.
func (s *ScheduleService) ImportSchedule(ctx context.Context, params ImportScheduleParams) (result SaveScheduleResult, err error) {
	if s == nil {
		err = fmt.Errorf("ScheduleService is nil")
		return
	}

	logger := s.loggerWith(ctx, "ImportSchedule",
		"file_name", params.FileName,
		"size_bytes", len(params.Content),
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to import roster", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("schedule_id", result.Schedule.ID).InfoContext(ctx, "roster imported")
	}()

	if len(params.Content) == 0 {
		err = newValidationError("file", "file is required")
		return
	}
	if s.rosters == nil {
		err = fmt.Errorf("roster reader not configured")
		return
	}

	roster, readErr := s.rosters.ReadRoster(filepath.Base(params.FileName), params.Content)
	if readErr != nil {
		var vErr *ValidationError
		if errors.As(readErr, &vErr) {
			err = vErr
			return
		}
		err = newValidationError("file", fmt.Sprintf("could not read workbook: %v", readErr))
		return
	}

	result, err = s.SaveSchedule(ctx, ScheduleInput{
		Location:  params.Location,
		Brand:     params.Brand,
		WeekStart: params.WeekStart,
		Employees: roster.Employees,
		Sales:     roster.Sales,
		UpdatedBy: params.UpdatedBy,
	})
	return
}

// GetSchedule returns a stored schedule.
func (s *ScheduleService) GetSchedule(ctx context.Context, id string) (schedule Schedule, err error) {
	if s == nil {
		err = fmt.Errorf("ScheduleService is nil")
		return
	}

	logger := s.loggerWith(ctx, "GetSchedule", "schedule_id", id)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to get schedule", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "schedule retrieved")
	}()

	id = strings.TrimSpace(id)
	if id == "" {
		err = ErrNotFound
		return
	}
	if s.schedules == nil {
		err = fmt.Errorf("schedule repository not configured")
		return
	}

	schedule, err = s.schedules.GetSchedule(ctx, id)
	err = mapRepoError(err)
	return
}

// ListSchedules returns stored schedules with the newest week first.
func (s *ScheduleService) ListSchedules(ctx context.Context, params ListSchedulesParams) (schedules []Schedule, err error) {
	if s == nil {
		err = fmt.Errorf("ScheduleService is nil")
		return
	}

	logger := s.loggerWith(ctx, "ListSchedules",
		"location", params.Location,
		"week_start", params.WeekStart,
		"updated_by", params.UpdatedBy,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to list schedules", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("result_count", len(schedules)).InfoContext(ctx, "schedules listed")
	}()

	params.Location = strings.TrimSpace(params.Location)
	params.WeekStart = strings.TrimSpace(params.WeekStart)
	params.UpdatedBy = strings.TrimSpace(params.UpdatedBy)
	if params.WeekStart != "" {
		if _, parseErr := time.Parse(weekStartLayout, params.WeekStart); parseErr != nil {
			err = newValidationError("week_start", "week_start must be a YYYY-MM-DD date")
			return
		}
	}
	if s.schedules == nil {
		return nil, nil
	}

	schedules, err = s.schedules.ListSchedules(ctx, params)
	err = mapRepoError(err)
	return
}

// DeleteSchedule removes a schedule along with its published reports.
func (s *ScheduleService) DeleteSchedule(ctx context.Context, id string) (err error) {
	if s == nil {
		return fmt.Errorf("ScheduleService is nil")
	}

	logger := s.loggerWith(ctx, "DeleteSchedule", "schedule_id", id)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to delete schedule", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "schedule deleted")
	}()

	id = strings.TrimSpace(id)
	if id == "" {
		return ErrNotFound
	}
	if s.schedules == nil {
		return fmt.Errorf("schedule repository not configured")
	}

	if err = mapRepoError(s.schedules.DeleteSchedule(ctx, id)); err != nil {
		return err
	}
	if s.reports != nil {
		s.reports.Invalidate(id)
	}
	return nil
}

func mapRepoError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, persistence.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, persistence.ErrDuplicate), errors.Is(err, persistence.ErrConstraintViolation):
		return fmt.Errorf("%w: %v", ErrConflict, err)
	}
	return err
}
