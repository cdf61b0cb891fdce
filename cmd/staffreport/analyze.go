package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"

	"github.com/example/staffing-reports/internal/application"
	"github.com/example/staffing-reports/internal/logging"
	"github.com/example/staffing-reports/internal/shiftanalysis"
	"github.com/example/staffing-reports/internal/workbook"
)

var (
	headingColor = color.New(color.FgCyan, color.Bold)
	valueColor   = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
)

func runAnalyze(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	fs.SetOutput(stderr)
	file := fs.String("file", "", "roster workbook (.xlsx or .xls)")
	brand := fs.String("brand", "", "brand label (Taco, Doughnut)")
	location := fs.String("location", "", "location name")
	weekStart := fs.String("week", "", "week start date (YYYY-MM-DD)")
	out := fs.String("out", "", "write the report workbook to this path")
	noColor := fs.Bool("no-color", false, "disable colored output")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(*file) == "" {
		return errors.New("analyze: -file is required")
	}
	if *noColor {
		color.NoColor = true
	}

	content, err := os.ReadFile(*file)
	if err != nil {
		return fmt.Errorf("analyze: %w", err)
	}
	roster, err := workbook.NewReader().ReadRoster(filepath.Base(*file), content)
	if err != nil {
		return fmt.Errorf("analyze: read roster: %w", err)
	}

	service := application.NewReportService(application.ReportServiceDeps{
		Now:    time.Now,
		Logger: logging.New(stderr, slog.LevelError),
	})
	report, err := service.AnalyzeWeek(ctx, application.AnalyzeWeekParams{
		Location:  *location,
		Brand:     *brand,
		WeekStart: *weekStart,
		Employees: roster.Employees,
		Sales:     roster.Sales,
	})
	if err != nil {
		return fmt.Errorf("analyze: %w", err)
	}

	printReport(stdout, report)

	if *out != "" {
		rendered, err := workbook.NewRenderer().RenderReport(report)
		if err != nil {
			return fmt.Errorf("analyze: render workbook: %w", err)
		}
		if err := os.WriteFile(*out, rendered.Content, 0o644); err != nil {
			return fmt.Errorf("analyze: write workbook: %w", err)
		}
		fmt.Fprintf(stdout, "\nWorkbook written to %s\n", *out)
	}
	return nil
}

func printReport(w io.Writer, report application.ScheduleReport) {
	analysis := report.Analysis
	brand := analysis.Brand
	summary := analysis.Summary

	title := report.Location
	if title == "" {
		title = "(no location)"
	}
	headingColor.Fprintf(w, "Staffing report: %s [%s]\n", title, brand)

	printMetric(w, "Employees", fmt.Sprintf("%d", summary.EmployeeCount))
	printMetric(w, "Total weekly hours", formatNumber(summary.TotalWeeklyHours))
	for _, c := range brand.Categories() {
		printMetric(w, brand.CategoryLabel(c)+" hours", formatNumber(summary.CategoryHours[c]))
	}
	printMetric(w, "GM hours", formatNumber(summary.GMHours))
	printMetric(w, "Hourly manager hours", formatNumber(summary.HourlyManagerHours))
	printMetric(w, "Overtime hours", formatNumber(summary.TotalOvertimeHours))
	printMetric(w, "Weekly labor cost", "$"+formatNumber(summary.TotalWeeklyLaborCost))
	printMetric(w, "Total sales", "$"+formatNumber(analysis.TotalSales))
	if analysis.HasLabor {
		printMetric(w, "Labor %", formatNumber(analysis.LaborPercent)+"%")
	} else {
		printMetric(w, "Labor %", "n/a")
	}
	if analysis.HasAverage {
		printMetric(w, "Average hours", formatNumber(analysis.AverageHours))
	}

	fmt.Fprintln(w)
	headingColor.Fprintln(w, "Shift analysis")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	header := []string{"Day", "Window"}
	for _, c := range brand.Categories() {
		header = append(header, brand.CategoryLabel(c))
	}
	header = append(header, "Total")
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, day := range shiftanalysis.Days() {
		for _, window := range shiftanalysis.Windows {
			count := analysis.Staffing.Count(day, window.ID)
			row := []string{day.String(), window.Label}
			for _, c := range brand.Categories() {
				row = append(row, fmt.Sprintf("%d", count[c]))
			}
			row = append(row, fmt.Sprintf("%d", count.Total()))
			fmt.Fprintln(tw, strings.Join(row, "\t"))
		}
	}
	_ = tw.Flush()

	if len(analysis.Diagnostics) == 0 {
		return
	}
	fmt.Fprintln(w)
	warnColor.Fprintf(w, "%d diagnostics\n", len(analysis.Diagnostics))
	for _, d := range analysis.Diagnostics {
		line := fmt.Sprintf("  %s: %s", d.EmployeeID, d.Kind)
		if d.HasDay {
			line += " on " + d.Day.String()
		}
		if d.Value != "" {
			line += fmt.Sprintf(" (%q)", d.Value)
		}
		warnColor.Fprintln(w, line)
	}
}

func printMetric(w io.Writer, label, value string) {
	fmt.Fprintf(w, "  %-22s ", label+":")
	valueColor.Fprintln(w, value)
}

func formatNumber(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
