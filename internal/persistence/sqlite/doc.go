// Package sqlite implements the persistence repositories on top of the
// modernc.org/sqlite driver. Schedules keep their roster and sales as JSON
// documents; published report workbooks are stored as blobs.
package sqlite
