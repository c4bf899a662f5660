package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"styleswipe/internal/api"
	"styleswipe/internal/format"
	"styleswipe/internal/logging"
	"styleswipe/internal/model"
	"styleswipe/internal/session"
	"styleswipe/internal/store"
	"styleswipe/internal/tui"
)

type App struct {
	BaseURL    string
	UserID     string
	PrettyJSON bool
	Format     string
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "styleswipe",
		Short:        "StyleSwipe fashion discovery client (CLI + TUI)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  styleswipe

  # Sign in first
  styleswipe signin --name "Ada Lovelace"

  # Scriptable commands
  styleswipe pick top
  styleswipe liked list
  styleswipe trending list
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.BaseURL, "api", envOr("STYLESWIPE_API", ""), "Backend base URL (default: production)")
	cmd.PersistentFlags().StringVar(&app.UserID, "user", envOr("STYLESWIPE_USER", ""), "User id (overrides the signed-in session)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("STYLESWIPE_FORMAT", "json"), "Output format (json)")

	cmd.AddCommand(newSignInCmd(app))
	cmd.AddCommand(newSignOutCmd(app))
	cmd.AddCommand(newWhoamiCmd(app))
	cmd.AddCommand(newPickCmd(app))
	cmd.AddCommand(newLikeCmd(app))
	cmd.AddCommand(newOutfitCmd(app))
	cmd.AddCommand(newLikedCmd(app))
	cmd.AddCommand(newTrendingCmd(app))
	cmd.AddCommand(newFilterCmd(app))
	cmd.AddCommand(newCategoriesCmd(app))

	return cmd
}

func runTUI(app *App) error {
	dir, err := store.ConfigDir()
	if err != nil {
		return err
	}
	log := logging.New(dir)
	defer func() { _ = log.Sync() }()

	sess, err := currentSession(app)
	if err != nil {
		return err
	}
	return tui.Run(tui.Deps{
		Dir:     dir,
		Client:  newClient(app, log),
		Session: sess,
		Log:     log,
	})
}

// newCmdLogger builds the file logger for one-shot commands; it degrades to
// Nop when the config dir is unavailable.
func newCmdLogger(dir string) *zap.Logger {
	return logging.New(dir)
}

func newClient(app *App, log *zap.Logger) *api.Client {
	base := app.BaseURL
	if base == "" {
		if cfg, err := store.LoadConfig(); err == nil {
			base = cfg.APIBaseURL
		}
	}
	return api.NewClient(base, log)
}

// currentSession resolves identity: --user override first, then the
// persisted session. The override is an opaque trusted id, same as the
// generated one.
func currentSession(app *App) (model.Session, error) {
	if strings.TrimSpace(app.UserID) != "" {
		return model.Session{UserID: strings.TrimSpace(app.UserID)}, nil
	}
	return session.Current()
}

// activeFilter loads the persisted swipe filter, defaulting to unfiltered.
func activeFilter() model.FilterCriteria {
	cfg, err := store.LoadConfig()
	if err != nil || cfg.Filter == nil {
		return model.FilterCriteria{}
	}
	return *cfg.Filter
}

func parseSlotKind(s string) (model.SlotKind, error) {
	k := model.SlotKind(strings.ToLower(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", fmt.Errorf("unknown slot %q (want top|bottom|shoes)", s)
	}
	return k, nil
}

func parseEntityKind(s string) (store.EntityKind, error) {
	k := store.EntityKind(strings.ToLower(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", fmt.Errorf("unknown kind %q (want items|outfits)", s)
	}
	return k, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}
