package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	coreconfig "github.com/nextplot/nextplot-gw/core/config"
	"github.com/nextplot/nextplot-gw/infrastructure/convlog"
	"github.com/nextplot/nextplot-gw/infrastructure/forward"
	infraLine "github.com/nextplot/nextplot-gw/infrastructure/line"
	"github.com/nextplot/nextplot-gw/infrastructure/supabase"
	"github.com/nextplot/nextplot-gw/ui/rest"
	"github.com/nextplot/nextplot-gw/ui/rest/middleware"
	"github.com/nextplot/nextplot-gw/usecase"
	"github.com/nextplot/nextplot-gw/validations"
)

var restCmd = &cobra.Command{
	Use:   "rest",
	Short: "Serve the LINE webhook over http",
	Run:   restServer,
}

func init() {
	rootCmd.AddCommand(restCmd)
}

func restServer(_ *cobra.Command, _ []string) {
	cfg := coreconfig.Global

	// Incomplete credentials keep the server up for debugging; the webhook
	// answers 500 until they are fixed.
	if err := validations.ValidateServiceConfig(cfg); err != nil {
		logrus.Warnf("[REST] Incomplete configuration: %v", err)
	}

	supaClient := supabase.NewClient(cfg.Supabase.URL, cfg.Supabase.AnonKey, cfg.Supabase.ServiceRole)
	lineClient := infraLine.NewClient(cfg.Line.AccessToken)
	convLogger := convlog.NewLogger(cfg.Logging.File, cfg.Logging.Enabled)
	forwarder := forward.NewForwarder(cfg.Forward.URL, cfg.Forward.Timeout)

	persister := usecase.NewRecordService(supaClient, convLogger)
	mediaUsecase := usecase.NewMediaService(lineClient, supaClient, cfg.Supabase.Bucket)
	webhookUsecase := usecase.NewWebhookService(
		mediaUsecase,
		persister,
		lineClient,
		cfg.Line.Allowlist,
		cfg.Logging.File,
	)
	searchUsecase := usecase.NewSearchService()

	if cfg.Supabase.URL != "" {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := supaClient.EnsureBucket(ctx, cfg.Supabase.Bucket, false); err != nil {
				logrus.WithError(err).Warn("[REST] Bucket bootstrap failed")
			}
		}()
	}

	app := fiber.New(fiber.Config{
		AppName:               "NextPlot LINE Gateway",
		Network:               "tcp",
		DisableStartupMessage: false,
	})

	app.Use(requestid.New())
	app.Use(middleware.Recovery())
	if cfg.App.Debug {
		app.Use(logger.New())
	}

	rest.InitRestWebhook(app, webhookUsecase, forwarder, cfg)
	rest.InitRestHealth(app, cfg)
	rest.InitRestSearch(app, searchUsecase)

	// Graceful shutdown handler
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		logrus.Info("[REST] Reception of termination signal, shutting down gracefully...")
		if err := app.Shutdown(); err != nil {
			logrus.Errorf("[REST] Error during Fiber shutdown: %v", err)
		}
	}()

	if err := app.Listen(":" + cfg.App.Port); err != nil {
		logrus.Fatalln("Failed to start: ", err.Error())
	}
}
