package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"styleswipe/internal/session"
	"styleswipe/internal/store"
)

func newSignInCmd(app *App) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "signin",
		Short: "Create a local identity and register it with the backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				return errors.New("--name is required")
			}
			dir, err := store.ConfigDir()
			if err != nil {
				return err
			}
			log := newCmdLogger(dir)
			defer func() { _ = log.Sync() }()

			s, err := session.SignIn(cmd.Context(), newClient(app, log), name)
			if err != nil {
				return err
			}
			return writeOut(cmd, app, s)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Display name")
	return cmd
}

func newSignOutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "signout",
		Short: "Forget the signed-in session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := session.SignOut(); err != nil {
				return err
			}
			return writeOut(cmd, app, map[string]bool{"signedOut": true})
		},
	}
}

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in session",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := currentSession(app)
			if err != nil {
				return err
			}
			return writeOut(cmd, app, s)
		},
	}
}
