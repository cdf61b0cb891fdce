package application

import (
	"time"

	"github.com/maypok86/otter/v2"
)

const (
	defaultReportCacheTTL  = 5 * time.Minute
	defaultReportCacheSize = 256
)

// ReportCache keeps recently generated reports keyed by schedule ID. An entry
// only answers for the schedule revision it was computed from, so a stale
// report is never served even before an invalidation lands.
type ReportCache struct {
	cache *otter.Cache[string, ScheduleReport]
}

// NewReportCache builds a cache holding at most size reports for ttl after
// they were written.
func NewReportCache(ttl time.Duration, size int) *ReportCache {
	if ttl <= 0 {
		ttl = defaultReportCacheTTL
	}
	if size <= 0 {
		size = defaultReportCacheSize
	}
	return &ReportCache{
		cache: otter.Must(&otter.Options[string, ScheduleReport]{
			MaximumSize:      size,
			ExpiryCalculator: otter.ExpiryWriting[string, ScheduleReport](ttl),
		}),
	}
}

// Get returns the cached report for the schedule revision identified by
// updatedAt.
func (c *ReportCache) Get(scheduleID string, updatedAt time.Time) (ScheduleReport, bool) {
	if c == nil || c.cache == nil {
		return ScheduleReport{}, false
	}
	report, ok := c.cache.GetIfPresent(scheduleID)
	if !ok || !report.ScheduleUpdatedAt.Equal(updatedAt) {
		return ScheduleReport{}, false
	}
	return report, true
}

// Store records a generated report.
func (c *ReportCache) Store(report ScheduleReport) {
	if c == nil || c.cache == nil || report.ScheduleID == "" {
		return
	}
	c.cache.Set(report.ScheduleID, report)
}

// Invalidate drops the cached report of a schedule.
func (c *ReportCache) Invalidate(scheduleID string) {
	if c == nil || c.cache == nil {
		return
	}
	c.cache.Invalidate(scheduleID)
}

// Len returns the approximate number of cached reports.
func (c *ReportCache) Len() int {
	if c == nil || c.cache == nil {
		return 0
	}
	return c.cache.EstimatedSize()
}
