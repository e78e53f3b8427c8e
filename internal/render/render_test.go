package render_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coopdesk/internal/domain"
	"coopdesk/internal/render"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "₦1,250,000.00", render.FormatMoney(1_250_000, "NGN"))
	assert.Equal(t, "-$12.50", render.FormatMoney(-12.5, "USD"))
	assert.Equal(t, "XOF 999.99", render.FormatMoney(999.99, "XOF"))
	assert.Equal(t, "0.10", render.FormatMoney(0.1, ""))
}

func TestBadge_PlainWhenNotATerminal(t *testing.T) {
	p := render.New(&bytes.Buffer{}, "NGN", "table")
	assert.Equal(t, "PARTIALLY PAID", p.Badge("partially_paid"))
	assert.Equal(t, "OVERDUE", p.Badge(" Overdue "))
	assert.Equal(t, "-", p.Badge(""))
}

func TestTable(t *testing.T) {
	var buf bytes.Buffer
	p := render.New(&buf, "NGN", "")
	p.Table([]string{"ID", "Status"}, [][]string{{"7", "active"}, {"8", "pending"}}, "no rows")
	p.Pages(&domain.Pagination{CurrentPage: 1, LastPage: 3, Total: 25})

	out := buf.String()
	for _, want := range []string{"ID", "Status", "active", "pending", "page 1 of 3 (25 total); next: --page 2"} {
		assert.Contains(t, out, want)
	}
}

func TestTable_Empty(t *testing.T) {
	var buf bytes.Buffer
	render.New(&buf, "", "").Table([]string{"ID"}, nil, "No loans yet.")
	assert.Equal(t, "No loans yet.\n", buf.String())
}

func TestCard(t *testing.T) {
	var buf bytes.Buffer
	p := render.New(&buf, "NGN", "table")
	p.Card("Wallet", render.F("Balance", p.Money(5000)), render.F("Status", "active"))
	out := buf.String()
	assert.Contains(t, out, "Wallet")
	assert.Contains(t, out, "₦5,000.00")
	assert.Equal(t, 5, strings.Count(out, "\n"), "border, title, two fields, border")
}

func TestEmit_JSONMode(t *testing.T) {
	var buf bytes.Buffer
	p := render.New(&buf, "NGN", "JSON")
	require.True(t, p.JSONMode())

	called := false
	err := p.Emit(domain.Wallet{ID: "w1", Balance: 10}, func() error { called = true; return nil })
	require.NoError(t, err)
	assert.False(t, called)
	assert.Contains(t, buf.String(), `"balance": 10`)
}
