package sqlite

import (
	"context"
	"database/sql"

	"github.com/example/staffing-reports/internal/persistence"
)

// ReportRepository implements persistence.ReportRepository using SQLite.
type ReportRepository struct {
	pool *ConnectionPool
}

// NewReportRepository creates a new SQLite report repository.
func NewReportRepository(pool *ConnectionPool) *ReportRepository {
	return &ReportRepository{pool: pool}
}

const reportColumns = `id, schedule_id, file_name, content_type, content, created_by, created_at`

// CreateReport stores a published workbook. The schedule must exist.
func (r *ReportRepository) CreateReport(ctx context.Context, report persistence.Report) error {
	if report.ID == "" || report.ScheduleID == "" {
		return persistence.ErrConstraintViolation
	}
	return r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO reports (`+reportColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			report.ID,
			report.ScheduleID,
			report.FileName,
			report.ContentType,
			report.Content,
			report.CreatedBy,
			formatTimestamp(report.CreatedAt),
		)
		return mapError(err)
	})
}

// GetReport retrieves a published report with its content.
func (r *ReportRepository) GetReport(ctx context.Context, id string) (persistence.Report, error) {
	var report persistence.Report
	err := r.pool.withRetry(ctx, func() error {
		got, err := scanReport(r.pool.db.QueryRowContext(ctx,
			`SELECT `+reportColumns+` FROM reports WHERE id = ?`, id))
		if err != nil {
			return err
		}
		report = got
		return nil
	})
	return report, err
}

// ListReportsForSchedule returns the reports published for a schedule,
// newest first.
func (r *ReportRepository) ListReportsForSchedule(ctx context.Context, scheduleID string) ([]persistence.Report, error) {
	var reports []persistence.Report
	err := r.pool.withRetry(ctx, func() error {
		reports = reports[:0]
		rows, err := r.pool.db.QueryContext(ctx,
			`SELECT `+reportColumns+` FROM reports WHERE schedule_id = ? ORDER BY created_at DESC, id ASC`, scheduleID)
		if err != nil {
			return mapError(err)
		}
		defer rows.Close()

		for rows.Next() {
			report, err := scanReport(rows)
			if err != nil {
				return err
			}
			reports = append(reports, report)
		}
		return mapError(rows.Err())
	})
	if err != nil {
		return nil, err
	}
	return reports, nil
}

func scanReport(row rowScanner) (persistence.Report, error) {
	var (
		report    persistence.Report
		createdAt string
	)
	if err := row.Scan(
		&report.ID,
		&report.ScheduleID,
		&report.FileName,
		&report.ContentType,
		&report.Content,
		&report.CreatedBy,
		&createdAt,
	); err != nil {
		return persistence.Report{}, mapError(err)
	}
	created, err := parseTimestamp(createdAt)
	if err != nil {
		return persistence.Report{}, err
	}
	report.CreatedAt = created
	return report, nil
}
