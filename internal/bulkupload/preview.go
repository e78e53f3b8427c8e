package bulkupload

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"
)

// maxErrors stops a preview from reporting an unbounded list.
const maxErrors = 500

// balanceTolerance is how far principal + interest may drift from total.
const balanceTolerance = 0.01

// LineError is a problem found on one line of the file. Line 0 is used only
// when no line can be named (an empty file, a header without rows). Header
// problems stop row checks and are reported on line 1, the header's line.
type LineError struct {
	Line    int    `json:"line"`
	Column  string `json:"column,omitempty"`
	Message string `json:"message"`
}

func (e LineError) String() string {
	switch {
	case e.Line == 0:
		return e.Message
	case e.Column != "":
		return fmt.Sprintf("line %d, %s: %s", e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

// Row is a parsed data row with its file line.
type Row struct {
	Line   int      `json:"line"`
	Fields []string `json:"fields"`
}

// Preview is the result of checking a file.
type Preview struct {
	Kind      Kind        `json:"kind"`
	Header    []string    `json:"header"`
	Rows      []Row       `json:"rows"`
	TotalRows int         `json:"total_rows"`
	BadRows   int         `json:"bad_rows"`
	Errors    []LineError `json:"errors,omitempty"`
	Truncated bool        `json:"truncated,omitempty"`
}

// Valid reports whether no problem was found.
func (p Preview) Valid() bool { return len(p.Errors) == 0 }

// ValidRows is the number of rows without problems.
func (p Preview) ValidRows() int { return p.TotalRows - p.BadRows }

// Parse checks r against the schema for kind. At most limit rows are kept
// in the preview (all when limit <= 0); every row is validated regardless.
func Parse(kind string, r io.Reader, limit int) (Preview, error) {
	schema, err := Lookup(kind)
	if err != nil {
		return Preview{}, err
	}
	return schema.Parse(r, limit)
}

// Parse checks r against s.
func (s Schema) Parse(r io.Reader, limit int) (Preview, error) {
	p := Preview{Kind: s.Kind}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		p.Errors = append(p.Errors, LineError{Message: "file is empty"})
		return p, nil
	}
	if err != nil {
		return p, fmt.Errorf("read header: %w", err)
	}
	p.Header = normaliseHeader(header)
	if herrs := s.checkHeader(p.Header); len(herrs) > 0 {
		p.Errors = herrs
		return p, nil
	}

	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var pe *csv.ParseError
		if errors.As(err, &pe) {
			p.TotalRows++
			p.BadRows++
			p.addError(LineError{Line: pe.StartLine, Message: pe.Err.Error()})
			if p.Truncated {
				break
			}
			continue
		}
		if err != nil {
			return p, fmt.Errorf("read csv: %w", err)
		}
		if blank(rec) {
			continue
		}

		line, _ := cr.FieldPos(0)
		p.TotalRows++
		if limit <= 0 || len(p.Rows) < limit {
			p.Rows = append(p.Rows, Row{Line: line, Fields: rec})
		}
		if errs := s.checkRow(p.Header, line, rec); len(errs) > 0 {
			p.BadRows++
			for _, e := range errs {
				p.addError(e)
			}
		}
		if p.Truncated {
			break
		}
	}
	if p.TotalRows == 0 && p.Valid() {
		p.Errors = append(p.Errors, LineError{Message: "file has a header but no rows"})
	}
	return p, nil
}

func (p *Preview) addError(e LineError) {
	if len(p.Errors) >= maxErrors {
		p.Truncated = true
		return
	}
	p.Errors = append(p.Errors, e)
}

// blank reports a whitespace-only line, which the csv reader returns as a
// record instead of skipping.
func blank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

func normaliseHeader(h []string) []string {
	out := make([]string, len(h))
	for i, c := range h {
		c = strings.TrimPrefix(c, "\ufeff")
		c = strings.ToLower(strings.TrimSpace(c))
		out[i] = strings.Join(strings.Fields(c), "_")
	}
	return out
}

func (s Schema) checkHeader(header []string) []LineError {
	var errs []LineError
	seen := make(map[string]bool, len(header))
	for _, h := range header {
		if _, ok := s.column(h); !ok {
			errs = append(errs, LineError{Line: 1, Column: h, Message: "unexpected column"})
			continue
		}
		if seen[h] {
			errs = append(errs, LineError{Line: 1, Column: h, Message: "duplicate column"})
		}
		seen[h] = true
	}
	for _, c := range s.Columns {
		if !c.Optional && !seen[c.Name] {
			errs = append(errs, LineError{Line: 1, Column: c.Name, Message: "missing column"})
		}
	}
	if len(errs) > 0 {
		errs = append(errs, LineError{Line: 1, Message: "expected header: " + s.Header()})
	}
	return errs
}

func (s Schema) checkRow(header []string, line int, rec []string) []LineError {
	if len(rec) != len(header) {
		return []LineError{{
			Line:    line,
			Message: fmt.Sprintf("expected %d columns, got %d", len(header), len(rec)),
		}}
	}

	var errs []LineError
	nums := make(map[string]float64, 3)
	for i, name := range header {
		col, _ := s.column(name)
		v := strings.TrimSpace(rec[i])
		if v == "" {
			if !col.Optional {
				errs = append(errs, LineError{Line: line, Column: name, Message: "is required"})
			}
			continue
		}
		switch col.typ {
		case cellEmail:
			if !looksLikeEmail(v) {
				errs = append(errs, LineError{Line: line, Column: name, Message: fmt.Sprintf("%q is not a valid email", v)})
			}
		case cellPositive, cellMoney:
			f, err := parseAmount(v)
			if err != nil {
				errs = append(errs, LineError{Line: line, Column: name, Message: fmt.Sprintf("%q is not a number", v)})
				continue
			}
			if col.typ == cellPositive && f <= 0 {
				errs = append(errs, LineError{Line: line, Column: name, Message: "must be greater than 0"})
				continue
			}
			if col.typ == cellMoney && f < 0 {
				errs = append(errs, LineError{Line: line, Column: name, Message: "must not be negative"})
				continue
			}
			nums[name] = f
		case cellDate:
			if _, err := time.Parse("2006-01-02", v); err != nil {
				errs = append(errs, LineError{Line: line, Column: name, Message: fmt.Sprintf("%q is not a YYYY-MM-DD date", v)})
			}
		}
	}

	if s.Balanced {
		p, okP := nums["principal"]
		i, okI := nums["interest"]
		t, okT := nums["total"]
		if okP && okI && okT && math.Abs(p+i-t) > balanceTolerance {
			errs = append(errs, LineError{
				Line:    line,
				Column:  "total",
				Message: fmt.Sprintf("principal + interest (%.2f) does not equal total (%.2f)", p+i, t),
			})
		}
	}
	return errs
}

func parseAmount(v string) (float64, error) {
	v = strings.ReplaceAll(v, ",", "")
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errors.New("not finite")
	}
	return f, nil
}

func looksLikeEmail(v string) bool {
	at := strings.IndexByte(v, '@')
	return at > 0 && at < len(v)-1 && strings.Count(v, "@") == 1 &&
		strings.Contains(v[at+1:], ".") && !strings.ContainsAny(v, " \t")
}
