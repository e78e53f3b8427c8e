package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"coopdesk/internal/charges"
	"coopdesk/internal/domain"
	"coopdesk/internal/loans"
	"coopdesk/internal/render"
	"coopdesk/internal/util/dateparse"
)

func dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Member home: wallet, loans, mortgages and charges at a glance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sum, err := appCtx.Portal.Dashboard(cmd.Context())
			if err != nil {
				return err
			}
			out := appCtx.Out
			return out.Emit(sum, func() error {
				out.Cards(
					out.CardString("Wallet", render.F("Balance", out.Money(sum.Wallet.Balance.Float()))),
					out.CardString("Loans",
						render.F("Active", itoa(sum.ActiveLoans)),
						render.F("Outstanding", out.Money(sum.LoanOutstanding))),
					out.CardString("Mortgages",
						render.F("Active", itoa(sum.ActiveMortgages)),
						render.F("Outstanding", out.Money(sum.MortgageOutstanding))),
					out.CardString("Statutory charges",
						render.F("Pending", itoa(sum.PendingCharges)),
						render.F("Overdue", itoa(sum.OverdueCharges)),
						render.F("Due", out.Money(sum.ChargesDue))),
				)
				if sum.OverdueCharges > 0 {
					out.Warn("%d charge(s) overdue: run `coopdesk charges list`", sum.OverdueCharges)
				}
				return nil
			})
		},
	}
}

func walletCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wallet",
		Short: "Wallet balance, transactions and top-ups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := appCtx.Portal.Wallet(cmd.Context())
			if err != nil {
				return err
			}
			out := appCtx.Out
			return out.Emit(w, func() error {
				out.Card("Wallet",
					render.F("Balance", out.Money(w.Balance.Float())),
					render.F("Ledger balance", out.Money(w.LedgerBalance.Float())),
					render.F("Status", out.Badge(orDash(w.Status))),
					render.F("Updated", orDash(day(w.UpdatedAt))),
				)
				return nil
			})
		},
	}

	var q domain.ListQuery
	txns := &cobra.Command{
		Use:   "transactions",
		Short: "List wallet transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, pg, err := appCtx.Portal.WalletTransactions(cmd.Context(), q)
			if err != nil {
				return err
			}
			out := appCtx.Out
			return out.Emit(list, func() error {
				rows := make([][]string, 0, len(list))
				for _, t := range list {
					rows = append(rows, []string{
						t.Reference, t.Type, out.Money(t.Amount.Float()), out.Badge(t.Status), day(t.CreatedAt),
					})
				}
				out.Table([]string{"Reference", "Type", "Amount", "Status", "Date"}, rows, "No transactions yet.")
				out.Pages(pg)
				return nil
			})
		},
	}
	listFlags(txns, &q)
	txns.Flags().StringVar(&q.Type, "type", "", "credit or debit")

	var fund domain.FundWalletRequest
	var amount float64
	fundCmd := &cobra.Command{
		Use:   "fund",
		Short: "Top up the wallet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fund.Amount = domain.Amount(amount)
			res, err := appCtx.Portal.FundWallet(cmd.Context(), fund)
			if err != nil {
				return err
			}
			out := appCtx.Out
			return out.Emit(res, func() error {
				out.Success("Top-up %s started (%s)", res.Reference, res.Status)
				if res.PaymentURL != "" {
					out.Line("Complete the payment at %s", res.PaymentURL)
				}
				return nil
			})
		},
	}
	fundCmd.Flags().Float64Var(&amount, "amount", 0, "amount to add")
	fundCmd.Flags().StringVar(&fund.Method, "method", "card", "payment method (card, transfer, paystack)")
	fundCmd.Flags().StringVar(&fund.Reference, "reference", "", "your own payment reference")
	_ = fundCmd.MarkFlagRequired("amount")

	cmd.AddCommand(txns, fundCmd)
	return cmd
}

func loansCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "loans", Short: "Your loans"}

	var q domain.ListQuery
	list := &cobra.Command{
		Use:   "list",
		Short: "List your loans",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ls, pg, err := appCtx.Portal.Loans(cmd.Context(), q)
			if err != nil {
				return err
			}
			return emitLoans(ls, pg)
		},
	}
	listFlags(list, &q)

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a loan and its repayment schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := appCtx.Portal.Loan(cmd.Context(), domain.ID(args[0]))
			if err != nil {
				return err
			}
			out := appCtx.Out
			return out.Emit(l, func() error {
				out.Card("Loan "+orDash(l.Reference),
					render.F("Product", orDash(l.Product)),
					render.F("Principal", out.Money(l.Principal.Float())),
					render.F("Rate", render.Percent(l.InterestRate)),
					render.F("Tenure", fmt.Sprintf("%d months", l.TenureMonths)),
					render.F("Paid", out.Money(l.AmountPaid.Float())),
					render.F("Outstanding", out.Money(loans.Outstanding(l))),
					render.F("Status", out.Badge(l.Status)),
					render.F("Disbursed", orDash(day(l.DisbursedAt))),
				)
				rows := make([][]string, 0, len(l.Repayments))
				for _, r := range l.Repayments {
					rows = append(rows, []string{
						day(r.DueDate), out.Money(r.Principal.Float()), out.Money(r.Interest.Float()),
						out.Money(r.Total.Float()), out.Badge(r.Status),
					})
				}
				out.Table([]string{"Due", "Principal", "Interest", "Total", "Status"}, rows, "No repayment schedule.")
				return nil
			})
		},
	}

	var req domain.LoanApplication
	var amount float64
	apply := &cobra.Command{
		Use:   "apply",
		Short: "Apply for a loan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Amount = domain.Amount(amount)
			l, err := appCtx.Portal.ApplyLoan(cmd.Context(), req)
			if err != nil {
				return err
			}
			return appCtx.Out.Emit(l, func() error {
				appCtx.Out.Success("Loan application %s submitted (%s)", orDash(l.Reference), l.Status)
				return nil
			})
		},
	}
	apply.Flags().StringVar(&req.Product, "product", "", "loan product")
	apply.Flags().Float64Var(&amount, "amount", 0, "amount requested")
	apply.Flags().IntVar(&req.TenureMonths, "tenure", 12, "tenure in months")
	apply.Flags().StringVar(&req.Purpose, "purpose", "", "purpose of the loan")
	_ = apply.MarkFlagRequired("amount")

	var at string
	quote := &cobra.Command{
		Use:   "quote <id>",
		Short: "Estimate the cost of settling a loan early",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var when time.Time
			if at != "" {
				t, ok := dateparse.Parse(at, time.Local)
				if !ok {
					return fmt.Errorf("--at %q is not a date", at)
				}
				when = t
			}
			q, err := appCtx.Portal.TerminationQuote(cmd.Context(), domain.ID(args[0]), when)
			if err != nil {
				return err
			}
			out := appCtx.Out
			return out.Emit(q, func() error {
				out.Card("Early termination as of "+q.AsOf,
					render.F("Outstanding", out.Money(q.Outstanding)),
					render.F("Interest", fmt.Sprintf("%s (%d days)", out.Money(q.AccruedInterest), q.Days)),
					render.F("Fee", out.Money(q.Fee)),
					render.F("Total", out.Money(q.Total)),
				)
				out.Line("Estimate only; the cooperative confirms the final figure.")
				return nil
			})
		},
	}
	quote.Flags().StringVar(&at, "at", "", "settlement date (default today)")

	cmd.AddCommand(list, show, apply, quote)
	return cmd
}

func emitLoans(ls []domain.Loan, pg *domain.Pagination) error {
	out := appCtx.Out
	return out.Emit(ls, func() error {
		rows := make([][]string, 0, len(ls))
		for _, l := range ls {
			rows = append(rows, []string{
				l.ID.String(), orDash(l.MemberName), orDash(l.Product), out.Money(l.Principal.Float()),
				render.Percent(l.InterestRate), out.Money(loans.Outstanding(l)), out.Badge(l.Status), day(l.CreatedAt),
			})
		}
		out.Table([]string{"ID", "Member", "Product", "Principal", "Rate", "Outstanding", "Status", "Applied"},
			rows, "No loans found.")
		out.Pages(pg)
		return nil
	})
}

func mortgagesCmd() *cobra.Command {
	var q domain.ListQuery
	cmd := &cobra.Command{
		Use:   "mortgages",
		Short: "List your mortgages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ms, pg, err := appCtx.Portal.Mortgages(cmd.Context(), q)
			if err != nil {
				return err
			}
			out := appCtx.Out
			return out.Emit(ms, func() error {
				rows := make([][]string, 0, len(ms))
				for _, m := range ms {
					rows = append(rows, []string{
						m.ID.String(), orDash(m.PropertyTitle), orDash(m.Provider), out.Money(m.Principal.Float()),
						render.Percent(m.InterestRate), out.Money(m.MonthlyPayment.Float()),
						out.Money(m.OutstandingBal.Float()), out.Badge(m.Status),
					})
				}
				out.Table([]string{"ID", "Property", "Provider", "Principal", "Rate", "Monthly", "Outstanding", "Status"},
					rows, "No mortgages found.")
				out.Pages(pg)
				return nil
			})
		},
	}
	listFlags(cmd, &q)
	return cmd
}

func chargesCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "charges", Short: "Statutory charges"}

	var q domain.ListQuery
	list := &cobra.Command{
		Use:   "list",
		Short: "List statutory charges with paid/overdue status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cs, pg, err := appCtx.Portal.Charges(cmd.Context(), q)
			if err != nil {
				return err
			}
			out := appCtx.Out
			return out.Emit(cs, func() error {
				rows := make([][]string, 0, len(cs))
				for _, c := range cs {
					rows = append(rows, []string{
						c.ID.String(), c.Title, out.Money(c.Amount.Float()), out.Money(charges.Outstanding(c)),
						day(c.DueDate), out.Badge(c.Derived),
					})
				}
				out.Table([]string{"ID", "Charge", "Amount", "Outstanding", "Due", "Status"}, rows, "No charges.")
				out.Pages(pg)
				return nil
			})
		},
	}
	listFlags(list, &q)

	var pay domain.ChargePayment
	var amount float64
	payCmd := &cobra.Command{
		Use:   "pay <id>",
		Short: "Pay a statutory charge",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pay.Amount = domain.Amount(amount)
			c, err := appCtx.Portal.PayCharge(cmd.Context(), domain.ID(args[0]), pay)
			if err != nil {
				return err
			}
			out := appCtx.Out
			return out.Emit(c, func() error {
				out.Success("Payment recorded for %s", c.Title)
				out.Line("Status: %s  Outstanding: %s", out.Badge(c.Derived), out.Money(charges.Outstanding(c)))
				return nil
			})
		},
	}
	payCmd.Flags().Float64Var(&amount, "amount", 0, "amount to pay")
	payCmd.Flags().StringVar(&pay.Method, "method", "wallet", "payment method")
	_ = payCmd.MarkFlagRequired("amount")

	cmd.AddCommand(list, payCmd)
	return cmd
}
