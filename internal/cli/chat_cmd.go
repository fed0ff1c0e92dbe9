package cli

import (
	"bufio"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/bazaar/internal/cli/formatter"
)

func newChatCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "chat [QUESTION...]",
		Short: "Talk to the shopping assistant",
		Long: "Chat answers a single question given as arguments. Without arguments it opens\n" +
			"an interactive conversation in a terminal, or answers one question per line\n" +
			"read from stdin otherwise.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if len(args) > 0 {
				stop := func() {}
				if app.interactive() {
					stop = formatter.StartSpinner(cmd.ErrOrStderr(), "thinking…")
				}
				reply := app.Chat.Answer(ctx, strings.Join(args, " "))
				stop()
				fmt.Fprintln(out, formatter.FormatAssistantReply(reply))
				return nil
			}
			if app.interactive() {
				p := tea.NewProgram(newChatModel(ctx, app.Chat),
					tea.WithContext(ctx),
					tea.WithInput(cmd.InOrStdin()),
					tea.WithOutput(out),
				)
				_, err := p.Run()
				return err
			}

			scanner := bufio.NewScanner(cmd.InOrStdin())
			for scanner.Scan() {
				q := strings.TrimSpace(scanner.Text())
				if q == "" {
					continue
				}
				fmt.Fprintln(out, formatter.FormatUserLine(q))
				fmt.Fprintln(out, formatter.FormatAssistantReply(app.Chat.Answer(ctx, q)))
			}
			return scanner.Err()
		},
	}
}
