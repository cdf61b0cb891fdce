package application

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/example/staffing-reports/internal/shiftanalysis"
)

const weekStartLayout = "2006-01-02"

func validateScheduleInput(input ScheduleInput) (ScheduleInput, *ValidationError) {
	vErr := &ValidationError{}

	input.Location = strings.TrimSpace(input.Location)
	input.Brand = strings.TrimSpace(input.Brand)
	input.WeekStart = strings.TrimSpace(input.WeekStart)
	input.UpdatedBy = strings.TrimSpace(input.UpdatedBy)
	if input.UpdatedBy == "" {
		input.UpdatedBy = DefaultUpdatedBy
	}

	if input.Location == "" {
		vErr.add("location", "location is required")
	}
	if input.WeekStart == "" {
		vErr.add("week_start", "week_start is required")
	} else if _, err := time.Parse(weekStartLayout, input.WeekStart); err != nil {
		vErr.add("week_start", "week_start must be a YYYY-MM-DD date")
	}

	employees, empErr := normalizeEmployees(input.Employees)
	vErr.merge(empErr)
	input.Employees = employees

	sales, salesErr := normalizeSales(input.Sales)
	vErr.merge(salesErr)
	input.Sales = sales

	return input, vErr
}

func normalizeEmployees(employees []Employee) ([]Employee, *ValidationError) {
	vErr := &ValidationError{}
	out := make([]Employee, 0, len(employees))
	seen := make(map[string]int, len(employees))

	for i, emp := range employees {
		field := fmt.Sprintf("employees[%d]", i)

		emp.ID = strings.TrimSpace(emp.ID)
		emp.Name = strings.TrimSpace(emp.Name)
		emp.Role = strings.TrimSpace(emp.Role)
		emp.PayType = strings.ToLower(strings.TrimSpace(emp.PayType))

		if emp.ID == "" {
			vErr.add(field+".id", "id is required")
		} else if first, dup := seen[emp.ID]; dup {
			vErr.add(field+".id", fmt.Sprintf("duplicate employee id %q (also employees[%d])", emp.ID, first))
		} else {
			seen[emp.ID] = i
		}

		switch shiftanalysis.PayType(emp.PayType) {
		case "", shiftanalysis.PayHourly, shiftanalysis.PayWeekly, shiftanalysis.PaySalary:
		default:
			vErr.add(field+".pay_type", "pay_type must be hourly, weekly or salary")
		}
		if emp.PayRate != nil && (math.IsNaN(*emp.PayRate) || math.IsInf(*emp.PayRate, 0) || *emp.PayRate < 0) {
			vErr.add(field+".pay_rate", "pay_rate must be a non-negative number")
		}

		shifts := make(map[string]string, len(emp.Shifts))
		for key, value := range emp.Shifts {
			day, ok := shiftanalysis.ParseDay(key)
			if !ok {
				vErr.add(fmt.Sprintf("%s.shifts.%s", field, key), "shift keys must be mon through sun")
				continue
			}
			if _, dup := shifts[day.Key()]; dup {
				vErr.add(fmt.Sprintf("%s.shifts.%s", field, key), "day given more than once")
				continue
			}
			shifts[day.Key()] = strings.TrimSpace(value)
		}
		emp.Shifts = shifts
		emp.PayRate = copyFloatPtr(emp.PayRate)
		out = append(out, emp)
	}
	return out, vErr
}

func normalizeSales(sales map[string]float64) (map[string]float64, *ValidationError) {
	vErr := &ValidationError{}
	out := make(map[string]float64, len(sales))
	for key, value := range sales {
		day, ok := shiftanalysis.ParseDay(key)
		if !ok {
			vErr.add("sales."+key, "sales keys must be mon through sun")
			continue
		}
		if math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
			vErr.add("sales."+key, "sales must be a non-negative number")
			continue
		}
		out[day.Key()] += value
	}
	return out, vErr
}
