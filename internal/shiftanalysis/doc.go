// Package shiftanalysis turns a week of free-text shift assignments into
// staffing headcounts, hour totals, overtime and labor cost.
//
// The package is pure: Analyze takes a Week and returns a Report built from
// freshly allocated accumulators, so independent reports may be computed
// concurrently. Shift text is parsed best-effort; unparseable days contribute
// nothing and are listed in Report.Diagnostics.
//
// Staffing is bucketed into five fixed windows per day (see Windows). The
// role taxonomy depends on the brand, detected once per report by DetectBrand.
package shiftanalysis
