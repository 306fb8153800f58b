package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/jaevor/go-nanoid"
	"github.com/linksnap/linksnap/internal/client"
	"github.com/linksnap/linksnap/internal/container"
	"github.com/linksnap/linksnap/internal/history"
	"github.com/samber/do"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const randomAliasLength = 8

func main() {
	var cli humacli.CLI

	cli = humacli.New(func(hooks humacli.Hooks, _ *container.Options) {
		// No default action; everything happens in subcommands.
		hooks.OnStart(func() {
			_ = cli.Root().Help()
		})
	})

	root := cli.Root()
	root.Use = "linksnap"
	root.Short = "Shorten URLs and keep a bounded local history"

	root.AddCommand(newShortenCmd(), newHistoryCmd(), newClearCmd())

	cli.Run()
}

// withClient builds the injector, loads history, and hands a ready
// client to fn. Shared by every subcommand.
func withClient(options *container.Options, fn func(ctx context.Context, cl *client.Client)) {
	if options.BaseURL == "" {
		fatal("the shortening service base URL is required (--base-url)")
	}

	injector := container.New(options)
	defer func() { _ = injector.Shutdown() }()

	logger := do.MustInvoke[*zap.Logger](injector)
	defer func() { _ = logger.Sync() }()

	cl := do.MustInvoke[*client.Client](injector)

	ctx := context.Background()
	cl.History().Load(ctx)

	fn(ctx, cl)
}

func newShortenCmd() *cobra.Command {
	var (
		alias       string
		randomAlias bool
		validity    string
		copyResult  bool
		openResult  bool
	)

	cmd := &cobra.Command{
		Use:   "shorten LONG_URL",
		Short: "Shorten a URL and record it in the history",
		Args:  cobra.ExactArgs(1),
		Run: humacli.WithOptions(func(_ *cobra.Command, args []string, options *container.Options) {
			withClient(options, func(ctx context.Context, cl *client.Client) {
				if alias == "" && randomAlias {
					generate, err := nanoid.Standard(randomAliasLength)
					if err != nil {
						fatal(err.Error())
					}
					alias = generate()
				}

				result, err := cl.Submit(ctx, args[0], alias, validity)
				if err != nil {
					fatal(err.Error())
				}

				fmt.Println(result.ShortURL)
				fmt.Printf("expires %s\n", formatExpiry(result.ExpiresAt))

				if copyResult {
					cl.CopyToClipboard(result.ShortURL)
				}
				if openResult {
					cl.OpenInBrowser(result.ShortURL)
				}
			})
		}),
	}

	cmd.Flags().StringVarP(&alias, "alias", "a", "", "custom alias for the short URL")
	cmd.Flags().BoolVar(&randomAlias, "random-alias", false, "request a randomly generated alias")
	cmd.Flags().StringVarP(&validity, "validity", "m", "", "validity window in minutes (default 30)")
	cmd.Flags().BoolVarP(&copyResult, "copy", "c", false, "copy the short URL to the clipboard")
	cmd.Flags().BoolVarP(&openResult, "open", "o", false, "open the short URL in the browser")

	return cmd
}

func newHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List past shortenings, most recent first",
		Args:  cobra.NoArgs,
		Run: humacli.WithOptions(func(_ *cobra.Command, _ []string, options *container.Options) {
			withClient(options, func(_ context.Context, cl *client.Client) {
				entries := cl.History().Entries()
				if len(entries) == 0 {
					fmt.Println("history is empty")

					return
				}

				printEntries(entries)
			})
		}),
	}
}

func newClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear the shortening history",
		Args:  cobra.NoArgs,
		Run: humacli.WithOptions(func(_ *cobra.Command, _ []string, options *container.Options) {
			withClient(options, func(ctx context.Context, cl *client.Client) {
				cl.History().Clear(ctx)
				fmt.Println("history cleared")
			})
		}),
	}
}

func printEntries(entries []history.Entry) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SHORT\tLONG\tEXPIRES")

	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\n", e.ShortURL, e.LongURL, formatExpiry(e.ExpiresAt))
	}

	_ = w.Flush()
}

func formatExpiry(epochMs int64) string {
	return time.UnixMilli(epochMs).Local().Format(time.RFC1123)
}

func fatal(message string) {
	fmt.Fprintln(os.Stderr, message)
	os.Exit(1)
}
