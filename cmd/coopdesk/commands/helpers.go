package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"coopdesk/internal/domain"
	"coopdesk/internal/util/dateparse"
)

// listFlags binds the paging and filter flags shared by list commands.
func listFlags(cmd *cobra.Command, q *domain.ListQuery) {
	f := cmd.Flags()
	f.IntVar(&q.Page, "page", 0, "page number")
	f.IntVar(&q.PerPage, "per-page", 0, "rows per page")
	f.StringVar(&q.Search, "search", "", "search text")
	f.StringVar(&q.Status, "status", "", "filter by status")
	f.StringVar(&q.From, "from", "", "from date (YYYY-MM-DD)")
	f.StringVar(&q.To, "to", "", "to date (YYYY-MM-DD)")
}

// day shortens API timestamps to a date for tables.
func day(s string) string {
	t, ok := dateparse.Parse(s, time.Local)
	if !ok {
		return s
	}
	return t.In(time.Local).Format("2006-01-02")
}

func itoa(n int) string { return strconv.Itoa(n) }

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// splitIDs parses a comma-separated list of identifiers.
func splitIDs(s string) []domain.ID {
	var ids []domain.ID
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			ids = append(ids, domain.ID(part))
		}
	}
	return ids
}

// prompt reads a line from stdin after printing label.
func prompt(cmd *cobra.Command, label string) (string, error) {
	fmt.Fprint(cmd.ErrOrStderr(), label)
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// promptSecret reads a value without echo when stdin is a terminal.
func promptSecret(cmd *cobra.Command, label string) (string, error) {
	fd := int(os.Stdin.Fd())
	if cmd.InOrStdin() != os.Stdin || !term.IsTerminal(fd) {
		return prompt(cmd, label)
	}
	fmt.Fprint(cmd.ErrOrStderr(), label)
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(cmd.ErrOrStderr())
	if err != nil {
		return "", err
	}
	return string(b), nil
}
