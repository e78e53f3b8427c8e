package bulkupload_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coopdesk/internal/bulkupload"
)

func TestParse_ContributionsClean(t *testing.T) {
	in := "Member ID,Amount,Type,Date\n" +
		"M001,5000,monthly,2024-01-31\n" +
		"\n" +
		"M002,\"12,500.50\",special,2024-01-31\n"

	p, err := bulkupload.Parse("contributions", strings.NewReader(in), 0)
	require.NoError(t, err)
	assert.True(t, p.Valid(), "errors: %v", p.Errors)
	assert.Equal(t, []string{"member_id", "amount", "type", "date"}, p.Header)
	assert.Equal(t, 2, p.TotalRows)
	assert.Equal(t, 2, p.ValidRows())
	require.Len(t, p.Rows, 2)
	assert.Equal(t, 2, p.Rows[0].Line)
	assert.Equal(t, 4, p.Rows[1].Line, "blank line still counts towards line numbers")
	assert.Equal(t, "12,500.50", p.Rows[1].Fields[1])
}

func TestParse_SkipsBlankLines(t *testing.T) {
	tests := []struct {
		name  string
		blank string
	}{
		{"spaces", "   "},
		{"tab", "\t"},
		{"crlf spaces", "  \r"},
		{"commas only", " , , ,"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := "member_id,amount,type,date\n" +
				"M001,5000,monthly,2024-01-31\n" +
				tt.blank + "\n" +
				"M002,100,monthly,2024-01-31\n"

			p, err := bulkupload.Parse("contributions", strings.NewReader(in), 0)
			require.NoError(t, err)
			assert.True(t, p.Valid(), "errors: %v", p.Errors)
			assert.Equal(t, 2, p.TotalRows)
			assert.Zero(t, p.BadRows)
			require.Len(t, p.Rows, 2)
			assert.Equal(t, 4, p.Rows[1].Line)
		})
	}
}

func TestParse_OnlyBlankRowsAfterHeader(t *testing.T) {
	p, err := bulkupload.Parse("equity", strings.NewReader("member_id,amount,date\n  \n\t\n"), 0)
	require.NoError(t, err)
	require.Len(t, p.Errors, 1)
	assert.Zero(t, p.Errors[0].Line)
	assert.Equal(t, "file has a header but no rows", p.Errors[0].String())
}

func TestParse_ColumnCountAndAmounts(t *testing.T) {
	in := strings.Join([]string{
		"member_id,amount,type,date",
		"M001,5000,monthly",
		"M002,0,monthly,2024-01-31",
		"M003,-20,monthly,2024-01-31",
		"M004,abc,monthly,2024-01-31",
		"M005,100,monthly,31/01/2024",
		",100,monthly,2024-01-31",
		"M007,100,monthly,2024-01-31",
	}, "\n")

	p, err := bulkupload.Parse("contributions", strings.NewReader(in), 3)
	require.NoError(t, err)
	assert.False(t, p.Valid())
	assert.Equal(t, 7, p.TotalRows)
	assert.Equal(t, 6, p.BadRows)
	assert.Len(t, p.Rows, 3)

	got := make([]string, len(p.Errors))
	for i, e := range p.Errors {
		got[i] = e.String()
	}
	assert.Equal(t, []string{
		"line 2: expected 4 columns, got 3",
		"line 3, amount: must be greater than 0",
		"line 4, amount: must be greater than 0",
		`line 5, amount: "abc" is not a number`,
		`line 6, date: "31/01/2024" is not a YYYY-MM-DD date`,
		"line 7, member_id: is required",
	}, got)
}

func TestParse_RepaymentTotals(t *testing.T) {
	in := "member_id,loan_id,principal,interest,total,date\n" +
		"M001,L1,1000,100,1100,2024-02-01\n" +
		"M002,L2,1000,100,1200,2024-02-01\n" +
		"M003,L3,1000.005,100,1100.01,2024-02-01\n" +
		"M004,L4,1000,-1,999,2024-02-01\n"

	p, err := bulkupload.Parse("loan-repayments", strings.NewReader(in), 0)
	require.NoError(t, err)
	require.Len(t, p.Errors, 2)
	assert.Equal(t, 3, p.Errors[0].Line)
	assert.Equal(t, "total", p.Errors[0].Column)
	assert.Contains(t, p.Errors[0].Message, "principal + interest (1100.00) does not equal total (1200.00)")
	assert.Equal(t, 5, p.Errors[1].Line)
	assert.Equal(t, "interest", p.Errors[1].Column)
}

func TestParse_MembersOptionalColumns(t *testing.T) {
	in := "first_name,last_name,email\n" +
		"Ada,Obi,ada@example.coop\n" +
		"Tunde,Bakare,tunde.example.coop\n"

	p, err := bulkupload.Parse("members", strings.NewReader(in), 0)
	require.NoError(t, err)
	require.Len(t, p.Errors, 1)
	assert.Equal(t, `line 3, email: "tunde.example.coop" is not a valid email`, p.Errors[0].String())
}

func TestParse_HeaderProblems(t *testing.T) {
	in := "member_id,amount,amount,colour\nM1,1,2,red\n"

	p, err := bulkupload.Parse("contributions", strings.NewReader(in), 0)
	require.NoError(t, err)
	assert.Zero(t, p.TotalRows)

	msgs := make([]string, len(p.Errors))
	for i, e := range p.Errors {
		msgs[i] = e.String()
	}
	assert.Equal(t, []string{
		"line 1, amount: duplicate column",
		"line 1, colour: unexpected column",
		"line 1, type: missing column",
		"line 1, date: missing column",
		"line 1: expected header: member_id,amount,type,date",
	}, msgs)
	for _, e := range p.Errors {
		assert.Equal(t, 1, e.Line, "header problems point at the header line")
	}
}

func TestParse_EmptyAndHeaderOnly(t *testing.T) {
	p, err := bulkupload.Parse("equity", strings.NewReader(""), 0)
	require.NoError(t, err)
	require.Len(t, p.Errors, 1)
	assert.Zero(t, p.Errors[0].Line)
	assert.Equal(t, "file is empty", p.Errors[0].String())

	p, err = bulkupload.Parse("equity", strings.NewReader("member_id,amount,date\n"), 0)
	require.NoError(t, err)
	require.Len(t, p.Errors, 1)
	assert.Equal(t, "file has a header but no rows", p.Errors[0].Message)
}

func TestParse_BOMAndQuotedCommas(t *testing.T) {
	in := "\ufeffmember_id,amount,date,description\n" +
		"M1,250,2024-03-01,\"Levy, phase 2\"\n"
	p, err := bulkupload.Parse("equity", strings.NewReader(in), 0)
	require.NoError(t, err)
	assert.True(t, p.Valid(), "errors: %v", p.Errors)
	assert.Equal(t, "Levy, phase 2", p.Rows[0].Fields[3])
}

func TestParse_MalformedQuote(t *testing.T) {
	in := "member_id,amount,type,date\n" +
		"M1,10,mon\"thly,2024-01-01\n" +
		"M2,10,monthly,2024-01-01\n"
	p, err := bulkupload.Parse("contributions", strings.NewReader(in), 0)
	require.NoError(t, err)
	require.NotEmpty(t, p.Errors)
	assert.Equal(t, 2, p.Errors[0].Line)
}

func TestLookup(t *testing.T) {
	s, err := bulkupload.Lookup("Mortgage-Repayments")
	require.NoError(t, err)
	assert.Equal(t, bulkupload.KindMortgageRepayments, s.Kind)
	assert.Equal(t, "/api/admin/bulk-upload/mortgage-repayments", s.Endpoint())

	_, err = bulkupload.Lookup("dividends")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "contributions, equity, loan_repayments, members, mortgage_repayments")
}
