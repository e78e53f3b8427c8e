package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"coopdesk/internal/config"
	"coopdesk/internal/render"
)

// configCmd works on the file directly so a broken setting can be fixed.
func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change saved settings",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if home != "" {
				return nil
			}
			dir, err := os.UserHomeDir()
			if err != nil {
				return err
			}
			home = filepath.Join(dir, ".coopdesk")
			return nil
		},
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the saved settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(home)
			if err != nil {
				return err
			}
			out := render.New(cmd.OutOrStdout(), cfg.Currency, cfg.Output)
			if output != "" {
				out = render.New(cmd.OutOrStdout(), cfg.Currency, output)
			}
			return out.Emit(cfg, func() error {
				out.Card("Settings ("+filepath.Join(home, config.FileName)+")",
					render.F("api_url", cfg.APIURL),
					render.F("tenant", orDash(cfg.Tenant)),
					render.F("timeout", cfg.Timeout),
					render.F("currency", cfg.Currency),
					render.F("output", cfg.Output),
					render.F("termination_fee_percent", render.Percent(cfg.TerminationFeePercent)),
					render.F("log_file", orDash(cfg.LogFile)),
				)
				return nil
			})
		},
	}

	set := &cobra.Command{
		Use:       "set <key> <value>",
		Short:     "Change one setting",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"api_url", "tenant", "timeout", "currency", "output", "termination_fee_percent", "log_file"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(home)
			if err != nil {
				return err
			}
			key, value := strings.ToLower(args[0]), strings.TrimSpace(args[1])
			switch key {
			case "api_url":
				cfg.APIURL = value
			case "tenant":
				cfg.Tenant = value
			case "timeout":
				cfg.Timeout = value
			case "currency":
				cfg.Currency = strings.ToUpper(value)
			case "output":
				cfg.Output = strings.ToLower(value)
			case "termination_fee_percent":
				f, err := strconv.ParseFloat(value, 64)
				if err != nil {
					return fmt.Errorf("termination_fee_percent: %w", err)
				}
				cfg.TerminationFeePercent = f
			case "log_file":
				cfg.LogFile = value
			default:
				return fmt.Errorf("unknown setting %q", args[0])
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := config.Save(home, cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", key, value)
			return nil
		},
	}

	cmd.AddCommand(show, set)
	return cmd
}
