package cli

import (
	"github.com/spf13/cobra"

	"styleswipe/internal/saved"
	"styleswipe/internal/store"
)

func newLikedCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "liked",
		Short: "Saved items and outfits",
	}
	cmd.AddCommand(newLikedListCmd(app))
	cmd.AddCommand(newLikedRemoveCmd(app))
	return cmd
}

func newLikedListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the reconciled saved collection",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := currentSession(app)
			if err != nil {
				return err
			}
			dir, err := store.ConfigDir()
			if err != nil {
				return err
			}
			log := newCmdLogger(dir)
			defer func() { _ = log.Sync() }()

			r := saved.NewReconciler(newClient(app, log), store.OpenExclusions(dir), sess, log)
			col, err := r.Refresh(cmd.Context())
			if err != nil {
				return err
			}
			return writeOut(cmd, app, col)
		},
	}
}

func newLikedRemoveCmd(app *App) *cobra.Command {
	var kindFlag string

	cmd := &cobra.Command{
		Use:   "remove <id>",
		Short: "Hide a saved entry (client-side only; the server keeps the like)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseEntityKind(kindFlag)
			if err != nil {
				return err
			}
			sess, err := currentSession(app)
			if err != nil {
				return err
			}
			dir, err := store.ConfigDir()
			if err != nil {
				return err
			}
			excl := store.OpenExclusions(dir)
			if err := excl.Add(cmd.Context(), sess.UserID, kind, args[0]); err != nil {
				return err
			}
			return writeOut(cmd, app, map[string]string{"removed": args[0], "kind": string(kind)})
		},
	}
	cmd.Flags().StringVar(&kindFlag, "kind", "items", "Entry kind (items|outfits)")
	return cmd
}
