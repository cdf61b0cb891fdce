package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/staffing-reports/internal/persistence"
	"github.com/example/staffing-reports/internal/testfixtures"
)

func TestScheduleRepository_UpsertSchedule(t *testing.T) {
	ctx := context.Background()

	t.Run("inserts a new week", func(t *testing.T) {
		harness := testfixtures.NewSQLiteHarness(t)
		fixture := testfixtures.NewScheduleFixture(testfixtures.WithScheduleBrand("Taco"))

		stored, created, err := harness.Schedules.UpsertSchedule(ctx, fixture.Persistence())
		if err != nil {
			t.Fatalf("UpsertSchedule failed: %v", err)
		}
		if !created {
			t.Fatal("expected the schedule to be created")
		}
		if stored.ID != fixture.ID || stored.Brand != "Taco" {
			t.Fatalf("unexpected stored schedule %+v", stored)
		}
		if len(stored.Employees) != len(fixture.Employees) {
			t.Fatalf("expected %d employees, got %d", len(fixture.Employees), len(stored.Employees))
		}
		if stored.Employees[0].Shifts["mon"] != "9-17" || *stored.Employees[0].PayRate != 15 {
			t.Fatalf("employee data did not round trip: %+v", stored.Employees[0])
		}
		if !stored.CreatedAt.Equal(fixture.CreatedAt) {
			t.Fatalf("expected created_at %v, got %v", fixture.CreatedAt, stored.CreatedAt)
		}
	})

	t.Run("replaces the same location and week", func(t *testing.T) {
		harness := testfixtures.NewSQLiteHarness(t)
		original := testfixtures.NewScheduleFixture(testfixtures.WithScheduleLocation("Main St"))
		if _, _, err := harness.Schedules.UpsertSchedule(ctx, original.Persistence()); err != nil {
			t.Fatalf("initial upsert failed: %v", err)
		}

		later := original.UpdatedAt.Add(time.Hour)
		replacement := testfixtures.NewScheduleFixture(
			testfixtures.WithScheduleLocation("Main St"),
			testfixtures.WithScheduleEmployees(testfixtures.NewEmployeeFixture(testfixtures.WithEmployeeRole("Driver"))),
			testfixtures.WithScheduleSales(map[string]float64{"fri": 2500}),
			testfixtures.WithScheduleUpdatedBy("maria"),
			testfixtures.WithScheduleTimestamps(later, later),
		)

		stored, created, err := harness.Schedules.UpsertSchedule(ctx, replacement.Persistence())
		if err != nil {
			t.Fatalf("replacement upsert failed: %v", err)
		}
		if created {
			t.Fatal("expected an update, not a new schedule")
		}
		if stored.ID != original.ID {
			t.Fatalf("expected original ID %s to be kept, got %s", original.ID, stored.ID)
		}
		if !stored.CreatedAt.Equal(original.CreatedAt) || !stored.UpdatedAt.Equal(later) {
			t.Fatalf("unexpected timestamps created=%v updated=%v", stored.CreatedAt, stored.UpdatedAt)
		}
		if len(stored.Employees) != 1 || stored.Employees[0].Role != "Driver" {
			t.Fatalf("expected roster to be replaced, got %+v", stored.Employees)
		}
		if stored.Sales["fri"] != 2500 || len(stored.Sales) != 1 || stored.UpdatedBy != "maria" {
			t.Fatalf("unexpected sales or editor %+v %q", stored.Sales, stored.UpdatedBy)
		}

		all, err := harness.Schedules.ListSchedules(ctx, persistence.ScheduleFilter{})
		if err != nil {
			t.Fatalf("ListSchedules failed: %v", err)
		}
		if len(all) != 1 {
			t.Fatalf("expected a single stored week, got %d", len(all))
		}
	})

	t.Run("nil roster and sales are stored empty", func(t *testing.T) {
		harness := testfixtures.NewSQLiteHarness(t)
		fixture := testfixtures.NewScheduleFixture(testfixtures.WithScheduleEmployees(), testfixtures.WithScheduleSales(nil))
		schedule := fixture.Persistence()
		schedule.Employees = nil
		schedule.Sales = nil

		stored, _, err := harness.Schedules.UpsertSchedule(ctx, schedule)
		if err != nil {
			t.Fatalf("UpsertSchedule failed: %v", err)
		}
		if stored.Employees == nil || len(stored.Employees) != 0 || stored.Sales == nil {
			t.Fatalf("expected empty, non-nil collections, got %+v", stored)
		}
	})

	t.Run("rejects records without keys", func(t *testing.T) {
		harness := testfixtures.NewSQLiteHarness(t)
		schedule := testfixtures.NewScheduleFixture(testfixtures.WithScheduleLocation("")).Persistence()
		if _, _, err := harness.Schedules.UpsertSchedule(ctx, schedule); !errors.Is(err, persistence.ErrConstraintViolation) {
			t.Fatalf("expected ErrConstraintViolation, got %v", err)
		}
	})
}

func TestScheduleRepository_GetSchedule(t *testing.T) {
	ctx := context.Background()
	harness := testfixtures.NewSQLiteHarness(t)

	fixture := testfixtures.NewScheduleFixture()
	if _, _, err := harness.Schedules.UpsertSchedule(ctx, fixture.Persistence()); err != nil {
		t.Fatalf("UpsertSchedule failed: %v", err)
	}

	got, err := harness.Schedules.GetSchedule(ctx, fixture.ID)
	if err != nil {
		t.Fatalf("GetSchedule failed: %v", err)
	}
	if got.Location != fixture.Location || got.WeekStart != fixture.WeekStart {
		t.Fatalf("unexpected schedule %+v", got)
	}

	if _, err := harness.Schedules.GetSchedule(ctx, "missing"); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestScheduleRepository_ListSchedules(t *testing.T) {
	ctx := context.Background()
	harness := testfixtures.NewSQLiteHarness(t)

	fixtures := []testfixtures.ScheduleFixture{
		testfixtures.NewScheduleFixture(testfixtures.WithScheduleLocation("North"), testfixtures.WithScheduleWeekStart("2024-02-26")),
		testfixtures.NewScheduleFixture(testfixtures.WithScheduleLocation("North"), testfixtures.WithScheduleWeekStart("2024-03-04"), testfixtures.WithScheduleUpdatedBy("maria")),
		testfixtures.NewScheduleFixture(testfixtures.WithScheduleLocation("South"), testfixtures.WithScheduleWeekStart("2024-03-04")),
	}
	for _, f := range fixtures {
		if _, _, err := harness.Schedules.UpsertSchedule(ctx, f.Persistence()); err != nil {
			t.Fatalf("UpsertSchedule failed: %v", err)
		}
	}

	tests := []struct {
		name   string
		filter persistence.ScheduleFilter
		want   []string
	}{
		{
			name:   "newest week first then newest created",
			filter: persistence.ScheduleFilter{},
			want:   []string{fixtures[2].ID, fixtures[1].ID, fixtures[0].ID},
		},
		{
			name:   "by location",
			filter: persistence.ScheduleFilter{Location: "North"},
			want:   []string{fixtures[1].ID, fixtures[0].ID},
		},
		{
			name:   "by week",
			filter: persistence.ScheduleFilter{WeekStart: "2024-02-26"},
			want:   []string{fixtures[0].ID},
		},
		{
			name:   "by editor",
			filter: persistence.ScheduleFilter{UpdatedBy: "maria"},
			want:   []string{fixtures[1].ID},
		},
		{
			name:   "no match",
			filter: persistence.ScheduleFilter{Location: "East"},
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := harness.Schedules.ListSchedules(ctx, tt.filter)
			if err != nil {
				t.Fatalf("ListSchedules failed: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d schedules, got %d", len(tt.want), len(got))
			}
			for i, id := range tt.want {
				if got[i].ID != id {
					t.Fatalf("position %d: expected %s, got %s", i, id, got[i].ID)
				}
			}
		})
	}
}

func TestScheduleRepository_DeleteSchedule(t *testing.T) {
	ctx := context.Background()
	harness := testfixtures.NewSQLiteHarness(t)

	fixture := testfixtures.NewScheduleFixture()
	if _, _, err := harness.Schedules.UpsertSchedule(ctx, fixture.Persistence()); err != nil {
		t.Fatalf("UpsertSchedule failed: %v", err)
	}
	report := testfixtures.NewReportFixture(fixture.ID)
	if err := harness.Reports.CreateReport(ctx, report.Persistence()); err != nil {
		t.Fatalf("CreateReport failed: %v", err)
	}

	if err := harness.Schedules.DeleteSchedule(ctx, fixture.ID); err != nil {
		t.Fatalf("DeleteSchedule failed: %v", err)
	}
	if _, err := harness.Schedules.GetSchedule(ctx, fixture.ID); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected schedule to be gone, got %v", err)
	}
	if _, err := harness.Reports.GetReport(ctx, report.ID); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected published report to be removed with its schedule, got %v", err)
	}

	if err := harness.Schedules.DeleteSchedule(ctx, fixture.ID); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}
