package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/example/staffing-reports/internal/persistence"
)

// ScheduleRepository implements persistence.ScheduleRepository using SQLite.
// Employees and sales are stored as JSON documents alongside the indexed
// location and week columns.
type ScheduleRepository struct {
	pool *ConnectionPool
}

// NewScheduleRepository creates a new SQLite schedule repository.
func NewScheduleRepository(pool *ConnectionPool) *ScheduleRepository {
	return &ScheduleRepository{pool: pool}
}

const scheduleColumns = `id, location, brand, week_start, schedule_data, sales_data, updated_by, created_at, updated_at`

// UpsertSchedule inserts the schedule or replaces the row stored for the
// same location and week.
func (r *ScheduleRepository) UpsertSchedule(ctx context.Context, schedule persistence.Schedule) (persistence.Schedule, bool, error) {
	if schedule.ID == "" || schedule.Location == "" || schedule.WeekStart == "" {
		return persistence.Schedule{}, false, persistence.ErrConstraintViolation
	}

	employees, err := json.Marshal(nonNilEmployees(schedule.Employees))
	if err != nil {
		return persistence.Schedule{}, false, fmt.Errorf("encode employees: %w", err)
	}
	sales, err := json.Marshal(nonNilSales(schedule.Sales))
	if err != nil {
		return persistence.Schedule{}, false, fmt.Errorf("encode sales: %w", err)
	}

	var (
		stored  persistence.Schedule
		created bool
	)
	err = r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		var existingID, existingCreated string
		err := tx.QueryRowContext(ctx,
			`SELECT id, created_at FROM schedules WHERE location = ? AND week_start = ?`,
			schedule.Location, schedule.WeekStart,
		).Scan(&existingID, &existingCreated)

		switch {
		case errors.Is(err, sql.ErrNoRows):
			created = true
			_, err = tx.ExecContext(ctx, `
				INSERT INTO schedules (`+scheduleColumns+`)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				schedule.ID,
				schedule.Location,
				schedule.Brand,
				schedule.WeekStart,
				string(employees),
				string(sales),
				schedule.UpdatedBy,
				formatTimestamp(schedule.CreatedAt),
				formatTimestamp(schedule.UpdatedAt),
			)
			if err != nil {
				return mapError(err)
			}
		case err != nil:
			return mapError(err)
		default:
			created = false
			_, err = tx.ExecContext(ctx, `
				UPDATE schedules
				SET brand = ?, schedule_data = ?, sales_data = ?, updated_by = ?, updated_at = ?
				WHERE id = ?`,
				schedule.Brand,
				string(employees),
				string(sales),
				schedule.UpdatedBy,
				formatTimestamp(schedule.UpdatedAt),
				existingID,
			)
			if err != nil {
				return mapError(err)
			}
			schedule.ID = existingID
		}

		got, err := scanSchedule(tx.QueryRowContext(ctx,
			`SELECT `+scheduleColumns+` FROM schedules WHERE id = ?`, schedule.ID))
		if err != nil {
			return err
		}
		stored = got
		return nil
	})
	if err != nil {
		return persistence.Schedule{}, false, err
	}
	return stored, created, nil
}

// GetSchedule retrieves a schedule by ID.
func (r *ScheduleRepository) GetSchedule(ctx context.Context, id string) (persistence.Schedule, error) {
	var schedule persistence.Schedule
	err := r.pool.withRetry(ctx, func() error {
		got, err := scanSchedule(r.pool.db.QueryRowContext(ctx,
			`SELECT `+scheduleColumns+` FROM schedules WHERE id = ?`, id))
		if err != nil {
			return err
		}
		schedule = got
		return nil
	})
	return schedule, err
}

// ListSchedules returns schedules matching the filter, newest week first.
func (r *ScheduleRepository) ListSchedules(ctx context.Context, filter persistence.ScheduleFilter) ([]persistence.Schedule, error) {
	var (
		conditions []string
		args       []any
	)
	if filter.Location != "" {
		conditions = append(conditions, "location = ?")
		args = append(args, filter.Location)
	}
	if filter.WeekStart != "" {
		conditions = append(conditions, "week_start = ?")
		args = append(args, filter.WeekStart)
	}
	if filter.UpdatedBy != "" {
		conditions = append(conditions, "updated_by = ?")
		args = append(args, filter.UpdatedBy)
	}

	query := `SELECT ` + scheduleColumns + ` FROM schedules`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY week_start DESC, created_at DESC, id ASC"

	var schedules []persistence.Schedule
	err := r.pool.withRetry(ctx, func() error {
		schedules = schedules[:0]
		rows, err := r.pool.db.QueryContext(ctx, query, args...)
		if err != nil {
			return mapError(err)
		}
		defer rows.Close()

		for rows.Next() {
			schedule, err := scanSchedule(rows)
			if err != nil {
				return err
			}
			schedules = append(schedules, schedule)
		}
		return mapError(rows.Err())
	})
	if err != nil {
		return nil, err
	}
	return schedules, nil
}

// DeleteSchedule removes a schedule and, through the foreign key, its
// published reports.
func (r *ScheduleRepository) DeleteSchedule(ctx context.Context, id string) error {
	return r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `DELETE FROM schedules WHERE id = ?`, id)
		if err != nil {
			return mapError(err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return mapError(err)
		}
		if affected == 0 {
			return persistence.ErrNotFound
		}
		return nil
	})
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSchedule(row rowScanner) (persistence.Schedule, error) {
	var (
		schedule             persistence.Schedule
		employees, sales     string
		createdAt, updatedAt string
	)
	err := row.Scan(
		&schedule.ID,
		&schedule.Location,
		&schedule.Brand,
		&schedule.WeekStart,
		&employees,
		&sales,
		&schedule.UpdatedBy,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return persistence.Schedule{}, mapError(err)
	}

	if err := json.Unmarshal([]byte(employees), &schedule.Employees); err != nil {
		return persistence.Schedule{}, fmt.Errorf("decode employees of schedule %s: %w", schedule.ID, err)
	}
	if err := json.Unmarshal([]byte(sales), &schedule.Sales); err != nil {
		return persistence.Schedule{}, fmt.Errorf("decode sales of schedule %s: %w", schedule.ID, err)
	}
	if schedule.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return persistence.Schedule{}, err
	}
	if schedule.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return persistence.Schedule{}, err
	}
	return schedule, nil
}

func nonNilEmployees(employees []persistence.Employee) []persistence.Employee {
	if employees == nil {
		return []persistence.Employee{}
	}
	return employees
}

func nonNilSales(sales map[string]float64) map[string]float64 {
	if sales == nil {
		return map[string]float64{}
	}
	return sales
}
