// Package admin implements the tenant back-office: member and loan
// approval, CSV bulk uploads, roles and permissions, white-label branding
// and the audit log.
//
// Bulk uploads are checked locally first. The raw file, not the parsed
// rows, is what gets sent; the server's processing is authoritative.
package admin
