package shiftanalysis

import (
	"fmt"
	"strings"
)

// Day is a day of the schedule week, starting on Monday.
type Day int

const (
	Monday Day = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// DaysPerWeek is the number of days in a schedule week.
const DaysPerWeek = 7

var dayKeys = [DaysPerWeek]string{"mon", "tue", "wed", "thu", "fri", "sat", "sun"}

var dayNames = [DaysPerWeek]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// Days lists the days in schedule order.
func Days() [DaysPerWeek]Day {
	return [DaysPerWeek]Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}
}

// Key returns the three letter schedule key ("mon" .. "sun").
func (d Day) Key() string {
	if d < Monday || d > Sunday {
		return fmt.Sprintf("day(%d)", int(d))
	}
	return dayKeys[d]
}

// String returns the full day name.
func (d Day) String() string {
	if d < Monday || d > Sunday {
		return fmt.Sprintf("Day(%d)", int(d))
	}
	return dayNames[d]
}

// ParseDay accepts a schedule key ("mon") or a full day name ("Monday"),
// case insensitively.
func ParseDay(value string) (Day, bool) {
	value = strings.TrimSpace(value)
	for i := range dayKeys {
		if strings.EqualFold(value, dayKeys[i]) || strings.EqualFold(value, dayNames[i]) {
			return Day(i), true
		}
	}
	return 0, false
}

// WindowID identifies one of the fixed daily shift windows.
type WindowID int

const (
	Morning WindowID = iota
	Lunch
	Midday
	Dinner
	Closing
)

// WindowsPerDay is the number of fixed shift windows.
const WindowsPerDay = 5

// Window is a half-open [Start, End) interval in minutes since midnight.
type Window struct {
	ID    WindowID
	Key   string
	Label string
	Start int
	End   int
}

// eveningThreshold is the earliest window start at which an overnight shift
// is extended past midnight for the overlap test.
const eveningThreshold = 16 * 60

// Windows is the fixed staffing window table.
var Windows = [WindowsPerDay]Window{
	{ID: Morning, Key: "morning", Label: "Morning (5am-10am)", Start: 5 * 60, End: 10 * 60},
	{ID: Lunch, Key: "lunch", Label: "Lunch (10am-2pm)", Start: 10 * 60, End: 14 * 60},
	{ID: Midday, Key: "midday", Label: "Midday (2pm-5pm)", Start: 14 * 60, End: 17 * 60},
	{ID: Dinner, Key: "dinner", Label: "Dinner (5pm-9pm)", Start: 17 * 60, End: 21 * 60},
	{ID: Closing, Key: "closing", Label: "Closing (9pm-12am)", Start: 21 * 60, End: 24 * 60},
}

// Overlaps reports whether the shift overlaps the window. Overnight shifts
// are extended by a day only for windows starting at 16:00 or later, so an
// overnight closer counts toward the evening of the day the shift started.
// Shifts entirely before 05:00 overlap no window.
func (r TimeRange) Overlaps(w Window) bool {
	end := r.End
	if r.Overnight() && w.Start >= eveningThreshold {
		end += minutesPerDay
	}
	return end > w.Start && r.Start < w.End
}

// OverlappingWindows returns the windows the shift overlaps in table order.
func OverlappingWindows(r TimeRange) []WindowID {
	var ids []WindowID
	for _, w := range Windows {
		if r.Overlaps(w) {
			ids = append(ids, w.ID)
		}
	}
	return ids
}

// ShiftCount is the headcount per category for one day and window.
type ShiftCount map[Category]int

// Total sums the headcount across categories.
func (c ShiftCount) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

func (c ShiftCount) clone() ShiftCount {
	out := make(ShiftCount, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// StaffingTable holds 7 days x 5 windows of ShiftCount cells. Each report
// owns its table; it is never shared between reports.
type StaffingTable struct {
	brand Brand
	cells [DaysPerWeek][WindowsPerDay]ShiftCount
}

// NewStaffingTable returns a table with every category of the brand zeroed.
func NewStaffingTable(brand Brand) *StaffingTable {
	t := &StaffingTable{brand: brand}
	categories := brand.Categories()
	for d := range t.cells {
		for w := range t.cells[d] {
			cell := make(ShiftCount, len(categories))
			for _, c := range categories {
				cell[c] = 0
			}
			t.cells[d][w] = cell
		}
	}
	return t
}

// Brand returns the taxonomy the table was built for.
func (t *StaffingTable) Brand() Brand {
	return t.brand
}

// Record counts the employee once in every window the shift overlaps on the
// given day and returns those windows. Headcount is per window, not a
// partition of the shift.
func (t *StaffingTable) Record(day Day, r TimeRange, category Category) []WindowID {
	if t == nil || day < Monday || day > Sunday {
		return nil
	}
	ids := OverlappingWindows(r)
	for _, id := range ids {
		t.cells[day][id][category]++
	}
	return ids
}

// Count returns a copy of the cell for the day and window.
func (t *StaffingTable) Count(day Day, window WindowID) ShiftCount {
	if t == nil || day < Monday || day > Sunday || window < Morning || window > Closing {
		return ShiftCount{}
	}
	return t.cells[day][window].clone()
}

// Clone returns an independent copy of the table.
func (t *StaffingTable) Clone() *StaffingTable {
	if t == nil {
		return nil
	}
	out := &StaffingTable{brand: t.brand}
	for d := range t.cells {
		for w := range t.cells[d] {
			out.cells[d][w] = t.cells[d][w].clone()
		}
	}
	return out
}
