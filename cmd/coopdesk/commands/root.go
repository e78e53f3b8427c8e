package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"coopdesk/internal/api"
	"coopdesk/internal/app"
	"coopdesk/internal/config"
	"coopdesk/internal/services/admin"
)

var (
	home       string
	passphrase string
	verbose    bool
	appCtx     *app.App

	apiURL  string
	tenant  string
	timeout string
	output  string
)

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := &cobra.Command{
		Use:           "coopdesk",
		Short:         "Housing cooperative console for members, admins and the platform",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if home == "" {
				dir, err := os.UserHomeDir()
				if err != nil {
					return err
				}
				home = filepath.Join(dir, ".coopdesk")
			}

			a, err := app.New(app.Options{
				Home:       home,
				Passphrase: passphrase,
				Verbose:    verbose,
				Stdout:     cmd.OutOrStdout(),
				Override: func(c *config.Config) {
					flags := cmd.Flags()
					if flags.Changed("api") {
						c.APIURL = apiURL
					}
					if flags.Changed("tenant") {
						c.Tenant = tenant
					}
					if flags.Changed("timeout") {
						c.Timeout = timeout
					}
					if flags.Changed("output") {
						c.Output = output
					}
				},
			})
			if err != nil {
				return err
			}
			appCtx = a
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if appCtx != nil {
				appCtx.Close()
			}
		},
	}

	root.PersistentFlags().StringVar(&home, "home", "", "data dir (default ~/.coopdesk)")
	root.PersistentFlags().StringVarP(&passphrase, "passphrase", "p", "", "passphrase protecting the stored session")
	root.PersistentFlags().StringVar(&apiURL, "api", "", "API base URL (e.g. http://127.0.0.1:8080)")
	root.PersistentFlags().StringVar(&tenant, "tenant", "", "tenant (business) slug")
	root.PersistentFlags().StringVar(&timeout, "timeout", "", "request timeout (e.g. 30s)")
	root.PersistentFlags().StringVarP(&output, "output", "o", "", "output format: table or json")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging to stderr")

	root.AddCommand(
		loginCmd(), logoutCmd(), whoamiCmd(), configCmd(),
		dashboardCmd(), walletCmd(), loansCmd(), mortgagesCmd(), chargesCmd(),
		mailCmd(), activityCmd(), propertiesCmd(), plansCmd(),
		adminCmd(), platformCmd(),
	)

	err := root.ExecuteContext(ctx)
	if err != nil {
		report(root, err)
		if appCtx != nil {
			appCtx.Close()
		}
	}
	return err
}

// report prints err the way the web app would toast it: the server's
// message when there is one, a generic fallback otherwise.
func report(root *cobra.Command, err error) {
	w := root.ErrOrStderr()

	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		if appCtx != nil {
			appCtx.Log.Warn("request failed",
				zap.String("method", apiErr.Method),
				zap.String("path", apiErr.Path),
				zap.Int("status", apiErr.Status),
				zap.String("request_id", apiErr.RequestID),
			)
		}
		fmt.Fprintln(w, "Error:", api.UserMessage(err))
		return
	}

	var pe *admin.PreviewError
	if errors.As(err, &pe) {
		for _, le := range pe.Preview.Errors {
			fmt.Fprintln(w, "  "+le.String())
		}
	}
	fmt.Fprintln(w, "Error:", err)
}
