package bulkupload

import (
	"fmt"
	"sort"
	"strings"
)

// Kind names an upload type.
type Kind string

const (
	KindMembers            Kind = "members"
	KindContributions      Kind = "contributions"
	KindEquity             Kind = "equity"
	KindLoanRepayments     Kind = "loan_repayments"
	KindMortgageRepayments Kind = "mortgage_repayments"
)

type cellType int

const (
	cellText cellType = iota
	cellEmail
	cellPositive // amount > 0
	cellMoney    // amount >= 0
	cellDate
)

// Column is one expected CSV column.
type Column struct {
	Name     string
	Optional bool
	typ      cellType
}

// Schema describes the columns of one upload kind.
type Schema struct {
	Kind    Kind
	Title   string
	Columns []Column
	// Balanced kinds require principal + interest == total.
	Balanced bool
}

// Header returns the expected header line.
func (s Schema) Header() string {
	names := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		names[i] = c.Name
	}
	return strings.Join(names, ",")
}

// Endpoint is the API path the raw file is uploaded to.
func (s Schema) Endpoint() string {
	return "/api/admin/bulk-upload/" + strings.ReplaceAll(string(s.Kind), "_", "-")
}

func (s Schema) column(name string) (Column, bool) {
	for _, c := range s.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

var schemas = map[Kind]Schema{
	KindMembers: {
		Kind:  KindMembers,
		Title: "Members",
		Columns: []Column{
			{Name: "first_name"},
			{Name: "last_name"},
			{Name: "email", typ: cellEmail},
			{Name: "phone", Optional: true},
			{Name: "staff_id", Optional: true},
		},
	},
	KindContributions: {
		Kind:  KindContributions,
		Title: "Contributions",
		Columns: []Column{
			{Name: "member_id"},
			{Name: "amount", typ: cellPositive},
			{Name: "type"},
			{Name: "date", typ: cellDate},
		},
	},
	KindEquity: {
		Kind:  KindEquity,
		Title: "Equity contributions",
		Columns: []Column{
			{Name: "member_id"},
			{Name: "amount", typ: cellPositive},
			{Name: "date", typ: cellDate},
			{Name: "description", Optional: true},
		},
	},
	KindLoanRepayments: {
		Kind:     KindLoanRepayments,
		Title:    "Loan repayments",
		Balanced: true,
		Columns: []Column{
			{Name: "member_id"},
			{Name: "loan_id"},
			{Name: "principal", typ: cellMoney},
			{Name: "interest", typ: cellMoney},
			{Name: "total", typ: cellPositive},
			{Name: "date", typ: cellDate},
		},
	},
	KindMortgageRepayments: {
		Kind:     KindMortgageRepayments,
		Title:    "Mortgage repayments",
		Balanced: true,
		Columns: []Column{
			{Name: "member_id"},
			{Name: "mortgage_id"},
			{Name: "principal", typ: cellMoney},
			{Name: "interest", typ: cellMoney},
			{Name: "total", typ: cellPositive},
			{Name: "date", typ: cellDate},
		},
	},
}

// Lookup returns the schema for kind. Hyphens are accepted for underscores.
func Lookup(kind string) (Schema, error) {
	k := Kind(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(kind)), "-", "_"))
	s, ok := schemas[k]
	if !ok {
		return Schema{}, fmt.Errorf("unknown upload kind %q (want one of %s)", kind, strings.Join(kindNames(), ", "))
	}
	return s, nil
}

// Kinds lists the supported upload kinds in name order.
func Kinds() []Kind {
	out := make([]Kind, 0, len(schemas))
	for k := range schemas {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func kindNames() []string {
	ks := Kinds()
	out := make([]string, len(ks))
	for i, k := range ks {
		out[i] = string(k)
	}
	return out
}
