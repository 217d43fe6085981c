package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/devclay92/basic-service/app"
	"github.com/devclay92/basic-service/cmd/flags"
	"github.com/devclay92/basic-service/common"
	"github.com/devclay92/basic-service/controllers"
)

func main() {
	cliApp := &cli.App{
		Name:  "basic-service",
		Usage: "Serve registered controllers over HTTP",
		Flags: flags.ServerFlags,
		Action: func(cCtx *cli.Context) error {
			logger := flags.SetupLogger(cCtx)

			cfg, err := flags.BuildConfig(cCtx)
			if err != nil {
				logger.Error("Failed to build configuration", "err", err)
				return err
			}

			service, err := app.New(cfg, logger)
			if err != nil {
				logger.Error("Failed to create application", "err", err)
				return err
			}

			system := controllers.NewSystemController(common.Version)
			if err := system.Register(service); err != nil {
				logger.Error("Failed to register system controller", "err", err)
				return err
			}

			service.PrepareDocumentation("", "")

			if err := service.Listen(func() {
				logger.Info("Server is ready", "address", service.Addr())
			}); err != nil {
				logger.Error("Failed to start listening", "err", err)
				return err
			}

			// Wait for termination signal
			exit := make(chan os.Signal, 1)
			signal.Notify(exit, os.Interrupt, syscall.SIGTERM)

			logger.Info("Server is running, press Ctrl+C to stop")
			<-exit
			logger.Info("Shutdown signal received")

			if err := service.Close(); err != nil {
				logger.Error("Shutdown failed", "err", err)
				return err
			}
			logger.Info("Server shutdown complete")

			return nil
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
