package cli

import (
	"github.com/spf13/cobra"

	"styleswipe/internal/catalog"
	"styleswipe/internal/model"
	"styleswipe/internal/store"
)

func newFilterCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Swipe filter criteria",
	}
	cmd.AddCommand(newFilterShowCmd(app))
	cmd.AddCommand(newFilterSetCmd(app))
	cmd.AddCommand(newFilterClearCmd(app))
	return cmd
}

func newFilterShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the active filter",
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeOut(cmd, app, activeFilter())
		},
	}
}

func newFilterSetCmd(app *App) *cobra.Command {
	var f model.FilterCriteria

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Replace the active filter (applied wholesale, like the filter modal)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := store.LoadConfig()
			if err != nil {
				return err
			}
			cfg.Filter = &f
			if err := store.SaveConfig(cfg); err != nil {
				return err
			}
			return writeOut(cmd, app, f)
		},
	}
	cmd.Flags().StringVar(&f.MinPrice, "min", "", "Minimum price (empty = unbounded)")
	cmd.Flags().StringVar(&f.MaxPrice, "max", "", "Maximum price (empty = unbounded)")
	cmd.Flags().StringSliceVar(&f.Tops, "tops", nil, "Top labels (empty = all)")
	cmd.Flags().StringSliceVar(&f.Bottoms, "bottoms", nil, "Bottom labels (empty = all)")
	cmd.Flags().StringSliceVar(&f.Footwear, "footwear", nil, "Footwear labels (empty = all)")
	cmd.Flags().BoolVar(&f.IsNew, "new", false, "Browse the what's-new tree")
	return cmd
}

func newFilterClearCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Reset the filter to unfiltered browsing",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := store.LoadConfig()
			if err != nil {
				return err
			}
			cfg.Filter = nil
			if err := store.SaveConfig(cfg); err != nil {
				return err
			}
			return writeOut(cmd, app, model.FilterCriteria{})
		},
	}
}

func newCategoriesCmd(app *App) *cobra.Command {
	var isNew bool

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List the filter labels per apparel kind",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := map[string][]string{}
			for _, k := range []model.ApparelKind{model.ApparelTops, model.ApparelBottoms, model.ApparelFootwear} {
				out[string(k)] = catalog.Labels(k, isNew)
			}
			return writeOut(cmd, app, out)
		},
	}
	cmd.Flags().BoolVar(&isNew, "new", false, "Show the what's-new tree")
	return cmd
}
