// ABOUTME: Workflow subcommands covering the fetch, generate and push steps
// ABOUTME: Steps hand off through JSON documents in the data directory

package main

import (
	"time"

	"github.com/spf13/cobra"
)

func newFetchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "fetch",
		Short: "Fetch category feeds into raw feed documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd.Context(), appOptions{})
			if err != nil {
				return err
			}
			defer app.Close()

			if _, err := app.service.Fetch(app.flagContext(cmd.Context())); err != nil {
				return &stepError{step: "fetch", code: exitFetchFailed, err: err}
			}
			return nil
		},
	}
}

func newGenerateCommand() *cobra.Command {
	var pool int
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Enrich fetched feed documents into result documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd.Context(), appOptions{browser: true, poolSize: pool})
			if err != nil {
				return err
			}
			defer app.Close()

			if _, err := app.service.Generate(app.flagContext(cmd.Context())); err != nil {
				return &stepError{step: "generate", code: exitGenerateFailed, err: err}
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&pool, "pool", 0, "browser session pool size (default from BROWSER_POOL_SIZE)")
	return cmd
}

func newPushCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "push",
		Short: "Upload result documents to the article store",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd.Context(), appOptions{store: true})
			if err != nil {
				return err
			}
			defer app.Close()

			if _, err := app.service.Push(app.flagContext(cmd.Context())); err != nil {
				return &stepError{step: "push", code: exitPushFailed, err: err}
			}
			return nil
		},
	}
}

func newRunCommand() *cobra.Command {
	var pool int
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the fetch, generate and push steps in order",
		Long: `Run executes the full workflow: fetch feeds into raw documents,
enrich them into result documents, then upload the results. The exit
code identifies the first failing step: 2 fetch, 3 generate, 4 push.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd.Context(), appOptions{browser: true, store: true, poolSize: pool})
			if err != nil {
				return err
			}
			defer app.Close()

			ctx := app.flagContext(cmd.Context())
			if _, err := app.service.Fetch(ctx); err != nil {
				return &stepError{step: "fetch", code: exitFetchFailed, err: err}
			}
			if _, err := app.service.Generate(ctx); err != nil {
				return &stepError{step: "generate", code: exitGenerateFailed, err: err}
			}
			if _, err := app.service.Push(ctx); err != nil {
				return &stepError{step: "push", code: exitPushFailed, err: err}
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&pool, "pool", 0, "browser session pool size (default from BROWSER_POOL_SIZE)")
	return cmd
}

func newCleanupCommand() *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Remove old stored articles and stale exchange documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd.Context(), appOptions{store: true})
			if err != nil {
				return err
			}
			defer app.Close()

			retention := days
			if retention <= 0 {
				retention = app.cfg.Storage.RetentionDays
			}
			_, err = app.service.Cleanup(app.flagContext(cmd.Context()), time.Duration(retention)*24*time.Hour)
			return err
		},
	}
	cmd.Flags().IntVar(&days, "days", 0, "retention window in days (default from RETENTION_DAYS)")
	return cmd
}
