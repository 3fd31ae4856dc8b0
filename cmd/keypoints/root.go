// ABOUTME: Root cobra command wiring the workflow subcommands together
// ABOUTME: Installs signal handling so Ctrl-C cancels in-flight work

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

const version = "1.0.0"

// Exit codes reported by the run command so schedulers can tell which
// workflow step failed.
const (
	exitFetchFailed    = 2
	exitGenerateFailed = 3
	exitPushFailed     = 4
)

// stepError tags a workflow failure with the step that caused it.
type stepError struct {
	step string
	code int
	err  error
}

func (e *stepError) Error() string { return e.step + " step failed: " + e.err.Error() }

func (e *stepError) Unwrap() error { return e.err }

var rootCmd = &cobra.Command{
	Use:   "keypoints",
	Short: "News enrichment pipeline and API",
	Long: `Keypoints fetches category news feeds, enriches each article with
extracted content, key points and imagery, and publishes the results
through JSON documents, Postgres and an HTTP API.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	rootCmd.AddCommand(
		newFetchCommand(),
		newGenerateCommand(),
		newPushCommand(),
		newRunCommand(),
		newServeCommand(),
		newCleanupCommand(),
		newVersionCommand(),
	)
}

// Execute runs the CLI until completion or the first signal.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return rootCmd.ExecuteContext(ctx)
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("keypoints %s\n", version)
		},
	}
}
