// ABOUTME: Serve subcommand running the HTTP API with scheduled refreshes
// ABOUTME: Refresh jobs run on a background worker fed by cron and the API

package main

import (
	"context"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/sundeep8967/keypoints-backend-1/api"
	"github.com/sundeep8967/keypoints-backend-1/api/handlers"
	"github.com/sundeep8967/keypoints-backend-1/core/briefing"
	"github.com/sundeep8967/keypoints-backend-1/core/services"
	"github.com/sundeep8967/keypoints-backend-1/core/workers"
)

const shutdownTimeout = 30 * time.Second

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API and refresh results on a schedule",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	app, err := newApp(cmd.Context(), appOptions{browser: true, store: true})
	if err != nil {
		return err
	}
	defer app.Close()

	worker := workers.NewGenerationWorker(app.deps, app.service, workers.WorkerConfig{
		BaseContext: app.flagContext(context.Background()),
	})
	if err := worker.Start(); err != nil {
		return err
	}
	defer func() { _ = worker.Stop() }()

	scheduler, err := workers.NewScheduler(worker, app.cfg.Server.RefreshSchedule, app.logger)
	if err != nil {
		return err
	}
	scheduler.Start()
	defer scheduler.Stop()

	briefingSvc := briefing.NewService(app.deps, briefing.Config{
		Enabled:         app.cfg.Briefing.Enabled,
		LanguageCode:    app.cfg.Briefing.LanguageCode,
		CredentialsFile: app.cfg.Briefing.CredentialsFile,
	})

	server := api.NewServer(api.Config{
		Port:      serverPort(app.cfg.Server.Port),
		RateLimit: float64(app.cfg.Server.RateLimit),
		RateBurst: app.cfg.Server.RateBurst,
	}, api.Handlers{
		Health:   handlers.NewHealthHandler(version),
		Articles: handlers.NewArticleHandler(app.docs, app.exchange, app.store, nil, app.logger),
		Generate: handlers.NewGenerateHandler(worker, app.logger),
		Accent:   handlers.NewAccentHandler(services.NewAccentService(app.deps), app.store, app.logger),
		Briefing: handlers.NewBriefingHandler(briefingSvc, app.docs, app.exchange, app.logger),
	}, app.flags, app.logger)

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-cmd.Context().Done():
	}

	app.logger.Info("Shutting down", map[string]interface{}{"timeout": shutdownTimeout.String()})

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

// serverPort parses the configured port, letting the API apply its
// default on junk values.
func serverPort(raw string) int {
	port, err := strconv.Atoi(raw)
	if err != nil || port <= 0 {
		return 0
	}
	return port
}
