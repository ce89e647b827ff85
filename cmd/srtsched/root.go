package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/MarshallK03/SRT-Scheduling-Algorithm/internal/logging"
	"github.com/MarshallK03/SRT-Scheduling-Algorithm/internal/sched"
)

var configPath string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "srtsched",
	Short: "Simulate SJF and SRT CPU scheduling over a fixed process set.",
	Long: `srtsched simulates non-preemptive Shortest Job First and preemptive ` +
		`Shortest Remaining Time scheduling, printing a Gantt chart and ` +
		`per-process turnaround and waiting times.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yml",
		"YAML configuration file, ignored when missing")
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// loadConfig reads .env, the YAML config and SRTSCHED_* variables, in that order.
func loadConfig() (sched.Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return sched.Config{}, err
	}

	cfg, err := sched.Load(configPath)
	if err != nil {
		return cfg, err
	}
	cfg.ApplyEnv()
	return cfg, nil
}

func newLogger(cfg sched.Config) *slog.Logger {
	return logging.BuildLogger(os.Stderr, cfg.LogLevel, cfg.LogJSON)
}
