package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"coopdesk/internal/api"
	"coopdesk/internal/render"
	"coopdesk/internal/store"
)

func loginCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session encrypted under --passphrase",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if passphrase == "" {
				return store.ErrPassphraseRequired
			}
			var err error
			if email == "" {
				if email, err = prompt(cmd, "Email: "); err != nil {
					return err
				}
			}
			if password == "" {
				if password, err = promptSecret(cmd, "Password: "); err != nil {
					return err
				}
			}

			p, err := appCtx.Auth.Login(cmd.Context(), email, password, passphrase)
			if err != nil {
				return err
			}
			return appCtx.Out.Emit(p, func() error {
				appCtx.Out.Success("Signed in as %s (%s)", p.Email, p.Role)
				if p.Business != "" {
					appCtx.Out.Line("Business: %s", p.Business)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email (prompted when empty)")
	cmd.Flags().StringVar(&password, "password", "", "account password (prompted when empty)")
	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Revoke the token and forget the local session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := appCtx.Auth.Logout(cmd.Context(), passphrase); err != nil {
				appCtx.Out.Warn("%s", err)
			}
			appCtx.Out.Success("Signed out")
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	var offline bool
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, ok, err := appCtx.Auth.Profile()
			if err != nil {
				return err
			}
			if offline {
				if !ok {
					return store.ErrNotLoggedIn
				}
				return appCtx.Out.Emit(p, func() error {
					appCtx.Out.Card("Profile",
						render.F("Email", p.Email),
						render.F("Name", p.Name),
						render.F("Role", string(p.Role)),
						render.F("Business", orDash(p.Business)),
						render.F("Tenant", orDash(p.Tenant)),
						render.F("API", p.APIURL),
					)
					return nil
				})
			}

			m, err := appCtx.Auth.Me(cmd.Context())
			if errors.Is(err, api.ErrUnauthorized) {
				return store.ErrNotLoggedIn
			}
			if err != nil {
				return err
			}
			return appCtx.Out.Emit(m, func() error {
				appCtx.Out.Card(m.FullName(),
					render.F("Email", m.Email),
					render.F("Member ID", orDash(m.MemberID)),
					render.F("Role", string(m.Role)),
					render.F("Status", appCtx.Out.Badge(m.Status)),
					render.F("Business", orDash(m.Business)),
					render.F("Tenant", orDash(appCtx.API.Tenant())),
				)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&offline, "offline", false, "show the stored profile without calling the API")
	return cmd
}
