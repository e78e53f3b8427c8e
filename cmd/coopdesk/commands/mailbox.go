package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"coopdesk/internal/domain"
	"coopdesk/internal/render"
	"coopdesk/internal/services/portal"
)

func mailCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "mail", Short: "Internal mailbox"}

	var (
		q      domain.ListQuery
		folder string
	)
	list := &cobra.Command{
		Use:   "list",
		Short: "List inbox or sent messages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			msgs, pg, err := appCtx.Portal.Mail(cmd.Context(), folder, q)
			if err != nil {
				return err
			}
			out := appCtx.Out
			return out.Emit(msgs, func() error {
				rows := make([][]string, 0, len(msgs))
				for _, m := range msgs {
					mark := ""
					if !m.Read {
						mark = "●"
					}
					who := m.From
					if folder == portal.FolderSent {
						who = strings.Join(m.To, ", ")
					}
					rows = append(rows, []string{mark, m.ID.String(), orDash(who), m.Subject, day(m.CreatedAt)})
				}
				out.Table([]string{"", "ID", "From/To", "Subject", "Date"}, rows, "No messages.")
				out.Pages(pg)
				return nil
			})
		},
	}
	listFlags(list, &q)
	list.Flags().StringVar(&folder, "folder", portal.FolderInbox, "inbox or sent")

	read := &cobra.Command{
		Use:   "read <id>",
		Short: "Read a message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := appCtx.Portal.ReadMail(cmd.Context(), domain.ID(args[0]))
			if err != nil {
				return err
			}
			out := appCtx.Out
			return out.Emit(m, func() error {
				out.Card(m.Subject,
					render.F("From", strings.TrimSpace(m.From+" "+angle(m.FromEmail))),
					render.F("To", orDash(strings.Join(m.To, ", "))),
					render.F("Date", day(m.CreatedAt)),
				)
				out.Line("%s", m.Body)
				return nil
			})
		},
	}

	var (
		to      string
		compose domain.ComposeMail
	)
	send := &cobra.Command{
		Use:   "send",
		Short: "Send a message",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			compose.Recipients = splitIDs(to)
			m, err := appCtx.Portal.SendMail(cmd.Context(), compose)
			if err != nil {
				return err
			}
			return appCtx.Out.Emit(m, func() error {
				appCtx.Out.Success("Message sent")
				return nil
			})
		},
	}
	send.Flags().StringVar(&to, "to", "", "comma-separated recipient IDs")
	send.Flags().StringVar(&compose.Subject, "subject", "", "subject")
	send.Flags().StringVar(&compose.Body, "body", "", "message body")
	_ = send.MarkFlagRequired("to")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := appCtx.Portal.DeleteMail(cmd.Context(), domain.ID(args[0])); err != nil {
				return err
			}
			appCtx.Out.Success("Message deleted")
			return nil
		},
	}

	cmd.AddCommand(list, read, send, del)
	return cmd
}

func angle(email string) string {
	if email == "" {
		return ""
	}
	return "<" + email + ">"
}

func activityCmd() *cobra.Command {
	var q domain.ListQuery
	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Your recent account activity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logs, pg, err := appCtx.Portal.Activity(cmd.Context(), q)
			if err != nil {
				return err
			}
			return emitActivity(logs, pg)
		},
	}
	listFlags(cmd, &q)
	return cmd
}

func emitActivity(logs []domain.ActivityLog, pg *domain.Pagination) error {
	out := appCtx.Out
	return out.Emit(logs, func() error {
		rows := make([][]string, 0, len(logs))
		for _, l := range logs {
			rows = append(rows, []string{day(l.CreatedAt), orDash(l.Actor), l.Action, l.Description, orDash(l.IPAddress)})
		}
		out.Table([]string{"Date", "Actor", "Action", "Details", "IP"}, rows, "No activity recorded.")
		out.Pages(pg)
		return nil
	})
}
