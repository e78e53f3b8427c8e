package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"coopdesk/internal/domain"
)

func platformCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "platform", Short: "Super-admin console"}
	cmd.AddCommand(businessesCmd(), subscriptionsCmd(), packagesCmd())
	return cmd
}

func businessesCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "businesses", Short: "Tenants on the platform"}

	var q domain.ListQuery
	list := &cobra.Command{
		Use:   "list",
		Short: "List businesses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bs, pg, err := appCtx.Platform.Businesses(cmd.Context(), q)
			if err != nil {
				return err
			}
			out := appCtx.Out
			return out.Emit(bs, func() error {
				rows := make([][]string, 0, len(bs))
				for _, b := range bs {
					rows = append(rows, []string{
						b.ID.String(), b.Name, b.Slug, b.Email, orDash(b.Package), itoa(b.MembersCount),
						out.Badge(b.Status), day(b.CreatedAt),
					})
				}
				out.Table([]string{"ID", "Business", "Slug", "Contact", "Package", "Members", "Status", "Created"},
					rows, "No businesses yet.")
				out.Pages(pg)
				return nil
			})
		},
	}
	listFlags(list, &q)

	var (
		req       domain.BusinessRequest
		packageID string
	)
	create := &cobra.Command{
		Use:   "create",
		Short: "Register a business",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Package = domain.ID(packageID)
			b, err := appCtx.Platform.CreateBusiness(cmd.Context(), req)
			if err != nil {
				return err
			}
			return appCtx.Out.Emit(b, func() error {
				appCtx.Out.Success("Business %s created (slug %s)", b.Name, b.Slug)
				return nil
			})
		},
	}
	create.Flags().StringVar(&req.Name, "name", "", "business name")
	create.Flags().StringVar(&req.Slug, "slug", "", "tenant slug (lowercase, hyphens)")
	create.Flags().StringVar(&req.Email, "email", "", "contact email")
	create.Flags().StringVar(&packageID, "package", "", "package ID")
	_ = create.MarkFlagRequired("name")
	_ = create.MarkFlagRequired("slug")
	_ = create.MarkFlagRequired("email")

	state := func(use, short string, do func(cmd *cobra.Command, id domain.ID) (domain.Business, error)) *cobra.Command {
		return &cobra.Command{
			Use:   use + " <id>",
			Short: short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				b, err := do(cmd, domain.ID(args[0]))
				if err != nil {
					return err
				}
				return appCtx.Out.Emit(b, func() error {
					appCtx.Out.Success("%s is now %s", b.Name, strings.ToLower(b.Status))
					return nil
				})
			},
		}
	}
	suspend := state("suspend", "Suspend a business", func(cmd *cobra.Command, id domain.ID) (domain.Business, error) {
		return appCtx.Platform.SuspendBusiness(cmd.Context(), id)
	})
	activate := state("activate", "Reactivate a business", func(cmd *cobra.Command, id domain.ID) (domain.Business, error) {
		return appCtx.Platform.ActivateBusiness(cmd.Context(), id)
	})

	cmd.AddCommand(list, create, suspend, activate)
	return cmd
}

func subscriptionsCmd() *cobra.Command {
	var q domain.ListQuery
	cmd := &cobra.Command{
		Use:   "subscriptions",
		Short: "List subscriptions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ss, pg, err := appCtx.Platform.Subscriptions(cmd.Context(), q)
			if err != nil {
				return err
			}
			out := appCtx.Out
			return out.Emit(ss, func() error {
				rows := make([][]string, 0, len(ss))
				for _, s := range ss {
					rows = append(rows, []string{
						s.ID.String(), s.BusinessName, s.Package, out.Money(s.Amount.Float()),
						out.Badge(s.Status), day(s.StartsAt), day(s.EndsAt),
					})
				}
				out.Table([]string{"ID", "Business", "Package", "Amount", "Status", "Starts", "Ends"}, rows, "No subscriptions.")
				out.Pages(pg)
				return nil
			})
		},
	}
	listFlags(cmd, &q)
	return cmd
}

func packagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "packages",
		Short: "List subscription packages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ps, err := appCtx.Platform.Packages(cmd.Context())
			if err != nil {
				return err
			}
			out := appCtx.Out
			return out.Emit(ps, func() error {
				rows := make([][]string, 0, len(ps))
				for _, p := range ps {
					rows = append(rows, []string{
						p.ID.String(), p.Name, out.Money(p.Price.Float()), p.BillingCycle, itoa(p.MaxMembers),
						orDash(strings.Join(p.Features, ", ")),
					})
				}
				out.Table([]string{"ID", "Package", "Price", "Cycle", "Max members", "Features"}, rows, "No packages.")
				return nil
			})
		},
	}
}
