package cli

import (
	"github.com/spf13/cobra"

	"styleswipe/internal/store"
	"styleswipe/internal/trending"
)

func newTrendingCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trending",
		Short: "Trending feed",
	}
	cmd.AddCommand(newTrendingListCmd(app))
	cmd.AddCommand(newTrendingLikeCmd(app))
	return cmd
}

func newTrendingListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the trending feed",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := store.ConfigDir()
			if err != nil {
				return err
			}
			log := newCmdLogger(dir)
			defer func() { _ = log.Sync() }()

			items, err := newClient(app, log).Trending(cmd.Context())
			if err != nil {
				return err
			}
			return writeOut(cmd, app, items)
		},
	}
}

func newTrendingLikeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "like <item-id>",
		Short: "Like a trending item",
		Args:  cobra.ExactArgs(1),
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
			client := newClient(app, log)

			f := trending.NewFeed(client, sess, log)
			if _, err := f.Refresh(cmd.Context()); err != nil {
				return err
			}
			f.Like(args[0])
			f.Wait()
			return writeOut(cmd, app, map[string]string{"liked": args[0]})
		},
	}
}
