package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/bazaar/internal/cli/formatter"
	"github.com/alexanderramin/bazaar/internal/service"
)

func newSimilarCmd(app *App) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "similar ID",
		Short: "Products like this one in the same category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scored, err := app.Recommend.Similar(cmd.Context(), args[0], limit)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatScored("Similar to "+args[0], scored))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", service.DefaultSimilarLimit, "maximum results")
	return cmd
}

func newBetterCmd(app *App) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "better ID",
		Short: "Similar products with better specs or ratings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scored, err := app.Recommend.Better(cmd.Context(), args[0], limit)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatScored("Better than "+args[0], scored))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", service.DefaultBetterLimit, "maximum results")
	return cmd
}

func newRecommendCmd(app *App) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "recommend [VIEWED_ID...]",
		Short: "Personalized picks from products you viewed",
		Long:  "Recommend suggests products based on the given viewed products. With none,\nit lists the top-rated products.",
		RunE: func(cmd *cobra.Command, args []string) error {
			products, err := app.Recommend.Personalized(cmd.Context(), args, limit)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatProducts(products))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", service.DefaultPersonalizedLimit, "maximum results")
	return cmd
}

func newSearchCmd(app *App) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "search QUERY...",
		Short: "Rank the catalog against a free-text query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			products, err := app.Recommend.Search(cmd.Context(), strings.Join(args, " "), limit)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatProducts(products))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", service.DefaultSearchLimit, "maximum results")
	return cmd
}
