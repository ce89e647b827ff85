package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/MarshallK03/SRT-Scheduling-Algorithm/internal/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the simulators over HTTP.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("listen") {
			cfg.Listen, _ = cmd.Flags().GetString("listen")
		}

		logger := newLogger(cfg)
		app := api.NewApp(api.NewSchedulerHandlerImpl(logger))

		go func() {
			<-cmd.Context().Done()
			_ = app.Shutdown()
		}()

		logger.Info("listening", slog.String("addr", cfg.Listen))
		return app.Listen(cfg.Listen)
	},
}

func init() {
	serveCmd.Flags().String("listen", ":9095", "address to listen on")
	rootCmd.AddCommand(serveCmd)
}
