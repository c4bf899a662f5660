package cli

import (
	"github.com/spf13/cobra"

	"styleswipe/internal/catalog"
	"styleswipe/internal/deck"
	"styleswipe/internal/model"
	"styleswipe/internal/store"
)

func newPickCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "pick <top|bottom|shoes>",
		Short: "Fetch one recommendation for a slot under the active filter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseSlotKind(args[0])
			if err != nil {
				return err
			}
			dir, err := store.ConfigDir()
			if err != nil {
				return err
			}
			log := newCmdLogger(dir)
			defer func() { _ = log.Sync() }()

			f := activeFilter()
			apparel := model.ApparelKindForSlot(kind)
			ids := catalog.MapCategories(f.Labels(apparel), apparel, f.IsNew)
			cand, err := newClient(app, log).FetchCandidate(cmd.Context(), ids, f.MinPrice, f.MaxPrice)
			if err != nil {
				return err
			}
			return writeOut(cmd, app, cand)
		},
	}
}

func newLikeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "like <top|bottom|shoes>",
		Short: "Fetch a recommendation for a slot and like it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseSlotKind(args[0])
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
			log := newCmdLogger(dir)
			defer func() { _ = log.Sync() }()
			client := newClient(app, log)

			f := activeFilter()
			apparel := model.ApparelKindForSlot(kind)
			ids := catalog.MapCategories(f.Labels(apparel), apparel, f.IsNew)
			cand, err := client.FetchCandidate(cmd.Context(), ids, f.MinPrice, f.MaxPrice)
			if err != nil {
				return err
			}
			if err := client.LikeItem(cmd.Context(), sess.UserID, kind, cand); err != nil {
				return err
			}
			return writeOut(cmd, app, cand)
		},
	}
}

func newOutfitCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "outfit",
		Short: "Fetch a full three-piece outfit and save it",
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

			d := deck.New(client, activeFilter(), log)
			if err := d.Initialize(cmd.Context()); err != nil {
				return err
			}

			// Capture before dispatch; the optimistic advance replaces the
			// displayed candidates immediately.
			out := map[string]model.Candidate{}
			for _, sv := range d.Snapshot() {
				if sv.Current != nil {
					out[string(sv.Kind)] = *sv.Current
				}
			}

			var outErr error
			disp := deck.NewDispatcher(d, client, sess, log, func(n deck.Notice) {
				if n.Kind == deck.NoticeNotReady || n.Kind == deck.NoticeFailed {
					outErr = &noticeError{n}
				}
			})
			disp.CreateOutfit(cmd.Context())
			disp.Wait()
			if outErr != nil {
				return outErr
			}
			return writeOut(cmd, app, out)
		},
	}
}

type noticeError struct{ n deck.Notice }

func (e *noticeError) Error() string { return e.n.Text }
