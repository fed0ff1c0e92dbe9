// Package cli is the bazaar command line: catalog browsing, negotiation,
// recommendations, chat and the API server.
package cli

import (
	"context"
	"io"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/bazaar/internal/service"
)

// App holds the services CLI commands run against.
type App struct {
	Catalog     service.CatalogService
	Import      service.ImportService
	Negotiation service.NegotiationService
	Recommend   service.RecommendationService
	Cart        service.CartService
	Chat        service.ChatService

	// DataDir is the default directory for `bazaar import`.
	DataDir string

	// Serve runs the HTTP API until ctx is cancelled. Nil when the binary
	// was wired without a server.
	Serve func(ctx context.Context) error

	// IsInteractive reports whether stdin is a terminal. Nil means never.
	IsInteractive func() bool

	// Prompts collects interactive input. Nil uses huh forms.
	Prompts Prompter
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) prompts() Prompter {
	if a.Prompts != nil {
		return a.Prompts
	}
	return huhPrompter{}
}

// NewRootCmd creates the top-level "bazaar" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "bazaar",
		Short:         "Shopping assistant with price negotiation and recommendations",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newImportCmd(app),
		newProductsCmd(app),
		newProductCmd(app),
		newCategoriesCmd(app),
		newNegotiateCmd(app),
		newSimilarCmd(app),
		newBetterCmd(app),
		newRecommendCmd(app),
		newSearchCmd(app),
		newChatCmd(app),
		newServeCmd(app),
	)

	return root
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}
