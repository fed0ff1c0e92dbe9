package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/bazaar/internal/catalog"
	"github.com/alexanderramin/bazaar/internal/cli/formatter"
	"github.com/alexanderramin/bazaar/internal/service"
)

func newImportCmd(app *App) *cobra.Command {
	var appendFile bool

	cmd := &cobra.Command{
		Use:   "import [DIR|FILE]",
		Short: "Load amazon_<category>.csv files into the catalog",
		Long: "Import replaces the catalog with every amazon_<category>.csv file in DIR\n" +
			"(default: the configured data directory). Passing a single CSV file with\n" +
			"--append adds its products to the existing catalog instead.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := app.DataDir
			if len(args) == 1 {
				target = args[0]
			}
			if target == "" {
				return fmt.Errorf("no catalog directory given and none configured")
			}

			info, err := os.Stat(target)
			if err != nil {
				return fmt.Errorf("reading %s: %w", target, err)
			}

			var res *service.ImportResult
			switch {
			case info.IsDir() && appendFile:
				return fmt.Errorf("--append takes a single CSV file, not a directory")
			case info.IsDir():
				res, err = app.Import.ImportDir(cmd.Context(), target)
			case appendFile:
				res, err = app.Import.ImportFile(cmd.Context(), target)
			default:
				return fmt.Errorf("%s is a file: pass --append to add it to the catalog", target)
			}
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatImport(res.Import, res.Categories))
			return nil
		},
	}

	cmd.Flags().BoolVar(&appendFile, "append", false, "append a single CSV file instead of replacing the catalog")
	return cmd
}

func newProductsCmd(app *App) *cobra.Command {
	var (
		category  string
		sortBy    string
		limit     int
		asJSON    bool
		minPrice  float64
		maxPrice  float64
		minRating float64
	)

	cmd := &cobra.Command{
		Use:   "products",
		Short: "List catalog products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q := catalog.DefaultQuery()
			q.Category = category
			q.Sort = catalog.Sort(sortBy)
			q.Limit = limit
			if cmd.Flags().Changed("min-price") {
				q.MinPrice = &minPrice
			}
			if cmd.Flags().Changed("max-price") {
				q.MaxPrice = &maxPrice
			}
			if cmd.Flags().Changed("min-rating") {
				q.MinRating = &minRating
			}

			products, err := app.Catalog.List(cmd.Context(), q)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), products)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatProducts(products))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&category, "category", "c", "", "only list this category")
	f.StringVar(&sortBy, "sort", string(catalog.SortRating), "order: price, price_desc, rating or reviews")
	f.IntVarP(&limit, "limit", "n", catalog.DefaultLimit, "maximum products to list")
	f.Float64Var(&minPrice, "min-price", 0, "lowest price to include")
	f.Float64Var(&maxPrice, "max-price", 0, "highest price to include")
	f.Float64Var(&minRating, "min-rating", 0, "lowest rating to include")
	f.BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func newProductCmd(app *App) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "product ID",
		Short: "Show one product and its extracted features",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Catalog.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), p)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProduct(*p))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func newCategoriesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List catalog categories with product counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cats, err := app.Catalog.Categories(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprint(out, formatter.FormatCategories(cats))
			if last, err := app.Catalog.LastImport(cmd.Context()); err == nil && last != nil {
				fmt.Fprintf(out, "\n%s %s (%s)\n", formatter.Dim("last import:"), last.Source, last.ImportedAt.Local().Format("Jan 2, 2006 15:04"))
			}
			return nil
		},
	}
}
