// Package bulkupload previews admin CSV uploads before they are sent.
//
// A preview parses the file against the column schema of its kind, keeps
// the first rows for display and reports every problem with the 1-based
// line it was found on (the header is line 1). The preview is advisory: the
// server remains authoritative and always receives the original bytes.
//
// Checks per row:
//   - column count equals the header's
//   - required cells are present
//   - amounts parse and are > 0; principal and interest parse and are >= 0
//   - principal + interest equals total within one kobo/cent
//   - dates are YYYY-MM-DD
//   - member emails look like addresses
package bulkupload
