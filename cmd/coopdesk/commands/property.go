package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"coopdesk/internal/domain"
	"coopdesk/internal/funding"
	"coopdesk/internal/render"
)

func propertiesCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "properties", Short: "Property listings and expressions of interest"}

	var q domain.ListQuery
	list := &cobra.Command{
		Use:   "list",
		Short: "List available properties",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ps, pg, err := appCtx.Portal.Properties(cmd.Context(), q)
			if err != nil {
				return err
			}
			out := appCtx.Out
			return out.Emit(ps, func() error {
				rows := make([][]string, 0, len(ps))
				for _, p := range ps {
					rows = append(rows, []string{
						p.ID.String(), p.Title, p.Location, orDash(p.Type), out.Money(p.Price.Float()),
						itoa(p.Units), out.Badge(p.Status),
					})
				}
				out.Table([]string{"ID", "Property", "Location", "Type", "Price", "Units", "Status"}, rows, "No properties listed.")
				out.Pages(pg)
				return nil
			})
		},
	}
	listFlags(list, &q)
	list.Flags().StringVar(&q.Type, "type", "", "property type")

	var req domain.EOIRequest
	interest := &cobra.Command{
		Use:   "interest <property-id>",
		Short: "Express interest in a property",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.PropertyID = domain.ID(args[0])
			eoi, err := appCtx.Portal.ExpressInterest(cmd.Context(), req)
			if err != nil {
				return err
			}
			return appCtx.Out.Emit(eoi, func() error {
				appCtx.Out.Success("Interest recorded for %s (%s)", orDash(eoi.PropertyTitle), eoi.Status)
				return nil
			})
		},
	}
	interest.Flags().StringVar(&req.FundingOption, "funding", "cash", "funding option: cash, mortgage, cooperative or mix")
	interest.Flags().StringVar(&req.Notes, "notes", "", "notes for the cooperative")

	cmd.AddCommand(list, interest)
	return cmd
}

func plansCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "plans", Short: "Property payment plans"}

	var q domain.ListQuery
	list := &cobra.Command{
		Use:   "list",
		Short: "List your payment plans",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ps, pg, err := appCtx.Portal.PaymentPlans(cmd.Context(), q)
			if err != nil {
				return err
			}
			out := appCtx.Out
			return out.Emit(ps, func() error {
				rows := make([][]string, 0, len(ps))
				for _, p := range ps {
					rows = append(rows, []string{
						p.ID.String(), orDash(p.PropertyTitle), p.FundingOption, out.Money(p.TotalAmount.Float()),
						out.Money(p.AmountPaid.Float()), out.Badge(p.Status),
					})
				}
				out.Table([]string{"ID", "Property", "Funding", "Total", "Paid", "Status"}, rows, "No payment plans.")
				out.Pages(pg)
				return nil
			})
		},
	}
	listFlags(list, &q)

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a plan with its mix-funding breakdown",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, allocs, err := appCtx.Portal.PaymentPlan(cmd.Context(), domain.ID(args[0]))
			if err != nil {
				return err
			}
			out := appCtx.Out
			view := struct {
				Plan        domain.PaymentPlan  `json:"plan"`
				Allocations []domain.Allocation `json:"allocations,omitempty"`
			}{plan, allocs}
			return out.Emit(view, func() error {
				out.Card("Payment plan "+plan.ID.String(),
					render.F("Property", orDash(plan.PropertyTitle)),
					render.F("Funding", plan.FundingOption),
					render.F("Total", out.Money(plan.TotalAmount.Float())),
					render.F("Paid", out.Money(plan.AmountPaid.Float())),
					render.F("Status", out.Badge(plan.Status)),
				)
				if len(allocs) == 0 {
					return nil
				}
				rows := make([][]string, 0, len(allocs))
				for _, a := range allocs {
					src := "computed"
					if a.FromServer {
						src = "server"
					}
					rows = append(rows, []string{
						strings.ReplaceAll(a.Method, "_", " "), render.Percent(a.Percentage), out.Money(a.Amount), src,
					})
				}
				out.Table([]string{"Method", "Share", "Amount", "Source"}, rows, "")
				if err := funding.Check(plan); err != nil {
					out.Warn("%s", err)
				}
				if rest := funding.Unallocated(plan, allocs); rest != 0 {
					out.Line("Unallocated: %s", out.Money(rest))
				}
				return nil
			})
		},
	}

	cmd.AddCommand(list, show)
	return cmd
}
