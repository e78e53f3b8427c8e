// Package render draws the terminal equivalents of the portal's
// presentation primitives: tables, summary cards, status badges and money.
//
// A Printer writes either styled text or, in JSON mode, the raw DTOs so the
// output can be piped into other tools. Colour is decided per writer, so
// redirected output stays plain.
package render
