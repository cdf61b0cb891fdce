// Package http provides HTTP handlers and middleware for the staffing report API.
//
// The router exposes the following endpoints:
//   - GET /healthz: liveness probe, never behind the API key.
//   - GET /schedules, POST /schedules: list stored weeks (filters: location,
//     week_start, updated_by) or save one. Saving a week already stored for the
//     same location replaces it and answers 200; new weeks answer 201. Payloads
//     use the `scheduleDTO` and `employeeDTO` types in schedule_handler.go.
//   - POST /schedules/import: multipart upload of a roster workbook in the
//     `file` field with `location`, `brand`, `week_start` and `updated_by`
//     form values.
//   - GET /schedules/{id}, DELETE /schedules/{id}: fetch or remove a week.
//   - GET /schedules/{id}/report: JSON staffing report (`reportDTO`).
//   - GET /schedules/{id}/report.xlsx: the report rendered as a workbook.
//   - POST /schedules/{id}/publish: render and store the workbook. The response
//     carries the stored report id and its retrieval path.
//   - GET /reports/{id}: download a published workbook.
//   - POST /reports/analyze: report on an inline schedule without storing it.
//
// When an API key hash is configured every route except /healthz requires the
// X-API-Key header.
package http
