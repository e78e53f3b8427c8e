// Package api provides the HTTP implementation of domain.APIClient used by
// coopdesk to reach the cooperative REST API.
//
// Every request carries:
//   - Accept: application/json
//   - Authorization: Bearer <token>, when the TokenSource has one
//   - X-Tenant-Slug: <slug>, when a tenant is configured
//   - X-Request-ID: a fresh UUID, echoed in logs and errors
//
// Responses are expected to be envelopes of the form
//
//	{ "success": true, "message": "...", "data": ..., "pagination": {...}, "errors": {...} }
//
// Non-2xx statuses and envelopes with "success": false are returned as
// *Error values, which match ErrUnauthorized, ErrForbidden and ErrNotFound
// through errors.Is. File uploads stream multipart/form-data without
// buffering the file in memory.
package api
