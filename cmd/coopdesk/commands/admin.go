package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"coopdesk/internal/bulkupload"
	"coopdesk/internal/domain"
	"coopdesk/internal/render"
)

func adminCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "admin", Short: "Tenant back-office"}
	cmd.AddCommand(
		adminMembersCmd(), adminLoansCmd(), adminBulkCmd(), adminRolesCmd(),
		adminPermissionsCmd(), adminBrandingCmd(), adminActivityCmd(),
	)
	return cmd
}

func adminMembersCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "members", Short: "Member records and approvals"}

	var q domain.ListQuery
	list := &cobra.Command{
		Use:   "list",
		Short: "List members",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ms, pg, err := appCtx.Admin.Members(cmd.Context(), q)
			if err != nil {
				return err
			}
			out := appCtx.Out
			return out.Emit(ms, func() error {
				rows := make([][]string, 0, len(ms))
				for _, m := range ms {
					rows = append(rows, []string{
						m.ID.String(), orDash(m.MemberID), m.FullName(), m.Email, orDash(m.Phone),
						out.Badge(m.Status), day(m.CreatedAt),
					})
				}
				out.Table([]string{"ID", "Member ID", "Name", "Email", "Phone", "Status", "Joined"}, rows, "No members found.")
				out.Pages(pg)
				return nil
			})
		},
	}
	listFlags(list, &q)

	approve := &cobra.Command{
		Use:   "approve <id>",
		Short: "Approve a pending member",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := appCtx.Admin.ApproveMember(cmd.Context(), domain.ID(args[0]))
			if err != nil {
				return err
			}
			return emitMember(m, "approved")
		},
	}

	var reason string
	reject := &cobra.Command{
		Use:   "reject <id>",
		Short: "Reject a pending member",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := appCtx.Admin.RejectMember(cmd.Context(), domain.ID(args[0]), reason)
			if err != nil {
				return err
			}
			return emitMember(m, "rejected")
		},
	}
	reject.Flags().StringVar(&reason, "reason", "", "reason shown to the applicant")
	_ = reject.MarkFlagRequired("reason")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a member",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := appCtx.Admin.DeleteMember(cmd.Context(), domain.ID(args[0])); err != nil {
				return err
			}
			appCtx.Out.Success("Member %s deleted", args[0])
			return nil
		},
	}

	cmd.AddCommand(list, approve, reject, del)
	return cmd
}

func emitMember(m domain.Member, verb string) error {
	return appCtx.Out.Emit(m, func() error {
		appCtx.Out.Success("%s %s (now %s)", m.FullName(), verb, m.Status)
		return nil
	})
}

func adminLoansCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "loans", Short: "Loan applications"}

	var q domain.ListQuery
	list := &cobra.Command{
		Use:   "list",
		Short: "List loan applications",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ls, pg, err := appCtx.Admin.Loans(cmd.Context(), q)
			if err != nil {
				return err
			}
			return emitLoans(ls, pg)
		},
	}
	listFlags(list, &q)

	approve := &cobra.Command{
		Use:   "approve <id>",
		Short: "Approve a loan application",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := appCtx.Admin.ApproveLoan(cmd.Context(), domain.ID(args[0]))
			if err != nil {
				return err
			}
			return appCtx.Out.Emit(l, func() error {
				appCtx.Out.Success("Loan %s approved (now %s)", l.ID, l.Status)
				return nil
			})
		},
	}

	var reason string
	reject := &cobra.Command{
		Use:   "reject <id>",
		Short: "Reject a loan application",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := appCtx.Admin.RejectLoan(cmd.Context(), domain.ID(args[0]), reason)
			if err != nil {
				return err
			}
			return appCtx.Out.Emit(l, func() error {
				appCtx.Out.Success("Loan %s rejected (now %s)", l.ID, l.Status)
				return nil
			})
		},
	}
	reject.Flags().StringVar(&reason, "reason", "", "reason shown to the applicant")
	_ = reject.MarkFlagRequired("reason")

	cmd.AddCommand(list, approve, reject)
	return cmd
}

func adminBulkCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "bulk", Short: "CSV bulk uploads"}

	kinds := &cobra.Command{
		Use:   "kinds",
		Short: "List upload kinds and their headers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := make([][]string, 0)
			for _, k := range bulkupload.Kinds() {
				s, err := bulkupload.Lookup(string(k))
				if err != nil {
					return err
				}
				rows = append(rows, []string{string(k), s.Title, s.Header()})
			}
			appCtx.Out.Table([]string{"Kind", "Title", "Header"}, rows, "")
			return nil
		},
	}

	template := &cobra.Command{
		Use:   "template <kind>",
		Short: "Print the CSV header for a kind",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := bulkupload.Lookup(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), s.Header())
			return nil
		},
	}

	preview := &cobra.Command{
		Use:   "preview <kind> <file.csv>",
		Short: "Check a CSV file locally without uploading it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[1])
			if err != nil {
				return err
			}
			defer f.Close()

			p, err := appCtx.Admin.PreviewBulk(args[0], f)
			if err != nil {
				return err
			}
			return emitPreview(p)
		},
	}

	var force bool
	upload := &cobra.Command{
		Use:   "upload <kind> <file.csv>",
		Short: "Check a CSV file and upload it for processing",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[1])
			if err != nil {
				return err
			}
			defer f.Close()

			res, err := appCtx.Admin.UploadBulk(cmd.Context(), args[0], filepath.Base(args[1]), f, force)
			if err != nil {
				return err
			}
			out := appCtx.Out
			return out.Emit(res, func() error {
				out.Success("Processed %d row(s), %d failed", res.Processed, res.Failed)
				if res.BatchID != "" {
					out.Line("Batch: %s", res.BatchID)
				}
				rows := make([][]string, 0, len(res.Errors))
				for _, e := range res.Errors {
					rows = append(rows, []string{itoa(e.Row), e.Message})
				}
				if len(rows) > 0 {
					out.Table([]string{"Row", "Problem"}, rows, "")
				}
				return nil
			})
		},
	}
	upload.Flags().BoolVar(&force, "force", false, "upload even when the local check finds problems")

	cmd.AddCommand(kinds, template, preview, upload)
	return cmd
}

func emitPreview(p bulkupload.Preview) error {
	out := appCtx.Out
	return out.Emit(p, func() error {
		rows := make([][]string, 0, len(p.Rows))
		for _, r := range p.Rows {
			rows = append(rows, append([]string{itoa(r.Line)}, r.Fields...))
		}
		out.Table(append([]string{"Line"}, p.Header...), rows, "No data rows.")
		if p.Truncated {
			out.Line("Showing %d of %d rows.", len(p.Rows), p.TotalRows)
		}
		if p.Valid() {
			out.Success("%d row(s) ready to upload", p.TotalRows)
			return nil
		}
		out.Warn("%d of %d row(s) have problems", p.BadRows, p.TotalRows)
		for _, e := range p.Errors {
			out.Line("  %s", e)
		}
		return nil
	})
}

func adminRolesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roles",
		Short: "List roles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rs, err := appCtx.Admin.Roles(cmd.Context())
			if err != nil {
				return err
			}
			out := appCtx.Out
			return out.Emit(rs, func() error {
				rows := make([][]string, 0, len(rs))
				for _, r := range rs {
					rows = append(rows, []string{
						r.ID.String(), r.Name, orDash(r.Description), itoa(len(r.Permissions)), itoa(r.Users),
					})
				}
				out.Table([]string{"ID", "Role", "Description", "Permissions", "Users"}, rows, "No roles defined.")
				return nil
			})
		},
	}

	var (
		req   domain.RoleRequest
		perms string
	)
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a role",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range strings.Split(perms, ",") {
				if p = strings.TrimSpace(p); p != "" {
					req.Permissions = append(req.Permissions, p)
				}
			}
			r, err := appCtx.Admin.CreateRole(cmd.Context(), req)
			if err != nil {
				return err
			}
			return appCtx.Out.Emit(r, func() error {
				appCtx.Out.Success("Role %s created with %d permission(s)", r.Name, len(r.Permissions))
				return nil
			})
		},
	}
	create.Flags().StringVar(&req.Name, "name", "", "role name")
	create.Flags().StringVar(&req.Description, "description", "", "description")
	create.Flags().StringVar(&perms, "permissions", "", "comma-separated permission names")
	_ = create.MarkFlagRequired("name")

	var assignReq domain.RoleAssignment
	var userID, roleID string
	assign := &cobra.Command{
		Use:   "assign",
		Short: "Grant a role to a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			assignReq.UserID, assignReq.RoleID = domain.ID(userID), domain.ID(roleID)
			if err := appCtx.Admin.AssignRole(cmd.Context(), assignReq); err != nil {
				return err
			}
			appCtx.Out.Success("Role %s assigned to user %s", roleID, userID)
			return nil
		},
	}
	assign.Flags().StringVar(&userID, "user", "", "user ID")
	assign.Flags().StringVar(&roleID, "role", "", "role ID")

	cmd.AddCommand(create, assign)
	return cmd
}

func adminPermissionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "permissions",
		Short: "List grantable permissions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ps, err := appCtx.Admin.Permissions(cmd.Context())
			if err != nil {
				return err
			}
			out := appCtx.Out
			return out.Emit(ps, func() error {
				rows := make([][]string, 0, len(ps))
				for _, p := range ps {
					rows = append(rows, []string{p.Name, orDash(p.Group)})
				}
				out.Table([]string{"Permission", "Group"}, rows, "No permissions.")
				return nil
			})
		},
	}
}

func adminBrandingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "branding",
		Short: "Show white-label branding",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := appCtx.Admin.Branding(cmd.Context())
			if err != nil {
				return err
			}
			return emitBranding(b)
		},
	}

	set := &cobra.Command{
		Use:   "set",
		Short: "Update branding; unset flags keep their current value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cur, err := appCtx.Admin.Branding(cmd.Context())
			if err != nil {
				return err
			}
			f := cmd.Flags()
			for name, dst := range map[string]*string{
				"company":   &cur.CompanyName,
				"logo":      &cur.LogoURL,
				"favicon":   &cur.FaviconURL,
				"primary":   &cur.PrimaryColor,
				"secondary": &cur.SecondaryColor,
				"accent":    &cur.AccentColor,
				"email":     &cur.SupportEmail,
				"domain":    &cur.CustomDomain,
			} {
				if f.Changed(name) {
					v, _ := f.GetString(name)
					*dst = v
				}
			}
			updated, err := appCtx.Admin.UpdateBranding(cmd.Context(), cur)
			if err != nil {
				return err
			}
			appCtx.Out.Success("Branding saved")
			return emitBranding(updated)
		},
	}
	set.Flags().String("company", "", "company name")
	set.Flags().String("logo", "", "logo URL")
	set.Flags().String("favicon", "", "favicon URL")
	set.Flags().String("primary", "", "primary colour (#rrggbb)")
	set.Flags().String("secondary", "", "secondary colour (#rrggbb)")
	set.Flags().String("accent", "", "accent colour (#rrggbb)")
	set.Flags().String("email", "", "support email")
	set.Flags().String("domain", "", "custom domain")

	cmd.AddCommand(set)
	return cmd
}

func emitBranding(b domain.Branding) error {
	out := appCtx.Out
	return out.Emit(b, func() error {
		out.Card(orDash(b.CompanyName),
			render.F("Primary", out.Swatch(b.PrimaryColor)),
			render.F("Secondary", out.Swatch(b.SecondaryColor)),
			render.F("Accent", out.Swatch(b.AccentColor)),
			render.F("Logo", orDash(b.LogoURL)),
			render.F("Favicon", orDash(b.FaviconURL)),
			render.F("Support", orDash(b.SupportEmail)),
			render.F("Domain", orDash(b.CustomDomain)),
		)
		return nil
	})
}

func adminActivityCmd() *cobra.Command {
	var q domain.ListQuery
	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Tenant audit log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logs, pg, err := appCtx.Admin.ActivityLogs(cmd.Context(), q)
			if err != nil {
				return err
			}
			return emitActivity(logs, pg)
		},
	}
	listFlags(cmd, &q)
	return cmd
}
