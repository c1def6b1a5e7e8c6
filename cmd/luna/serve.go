package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"
	"github.com/terraincognita07/luna/internal/api"
	"github.com/terraincognita07/luna/internal/config"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(options *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRuntime(options, func(rt *appRuntime) error {
				secretKey, err := config.ResolveSecretKey(rt.cfg.SecretKey)
				if err != nil {
					return err
				}
				port, err := config.ResolvePort(rt.cfg.Port)
				if err != nil {
					return err
				}

				handler, err := api.NewHandler(rt.store, secretKey, rt.location, rt.cfg.CookieSecure)
				if err != nil {
					return err
				}
				app := newServerApp(handler)

				sigCtx, stopSignals := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
				defer stopSignals()

				go func() {
					<-sigCtx.Done()
					shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
					defer cancel()
					if err := app.ShutdownWithContext(shutdownCtx); err != nil {
						log.Printf("server shutdown failed: %v", err)
					}
				}()

				log.Printf("Luna listening on http://0.0.0.0:%s (db: %s, tz: %s)", port, rt.cfg.DBPath, rt.location.String())
				return app.Listen(":" + port)
			})
		},
	}
}

func newServerApp(handler *api.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Luna",
		DisableStartupMessage: true,
		BodyLimit:             4 * 1024 * 1024,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	api.RegisterRoutes(app, handler)
	return app
}
