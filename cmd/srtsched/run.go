package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/MarshallK03/SRT-Scheduling-Algorithm/internal/job"
	"github.com/MarshallK03/SRT-Scheduling-Algorithm/internal/logging"
	"github.com/MarshallK03/SRT-Scheduling-Algorithm/internal/report"
	"github.com/MarshallK03/SRT-Scheduling-Algorithm/internal/sched"
	"github.com/MarshallK03/SRT-Scheduling-Algorithm/internal/trace"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the simulation and print the report.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		overrideFromFlags(cmd, &cfg)
		if err := cfg.Validate(); err != nil {
			return err
		}
		return runSimulations(cmd, cfg, cmd.OutOrStdout())
	},
}

func init() {
	f := runCmd.Flags()
	f.StringP("policy", "p", sched.PolicyAll, "sjf, srt or all")
	f.StringP("workload", "w", "", "process file (.yml or .csv)")
	f.StringP("label", "l", sched.LabelStart, "run segment label: start or arrival")
	f.String("event-log", "", "write status events as CSV to this file")
	f.String("trace-db", "", "store runs in this SQLite database")
	f.String("log-level", "info", "debug, info, warn or error")
	rootCmd.AddCommand(runCmd)
}

// overrideFromFlags applies only the flags given on the command line.
func overrideFromFlags(cmd *cobra.Command, cfg *sched.Config) {
	flags := map[string]*string{
		"policy":    &cfg.Policy,
		"workload":  &cfg.Workload,
		"label":     &cfg.GanttLabel,
		"event-log": &cfg.EventLog,
		"trace-db":  &cfg.TraceDB,
		"log-level": &cfg.LogLevel,
	}
	for name, field := range flags {
		if cmd.Flags().Changed(name) {
			*field, _ = cmd.Flags().GetString(name)
		}
	}
}

func runSimulations(cmd *cobra.Command, cfg sched.Config, out io.Writer) error {
	logger := newLogger(cfg)

	policies, err := cfg.SelectedPolicies()
	if err != nil {
		return err
	}
	specs, err := job.Resolve(cfg)
	if err != nil {
		logger.Error("loading workload", slog.String("workload", cfg.Workload), logging.ErrAttr(err))
		return err
	}

	var events *sched.EventLog
	if cfg.EventLog != "" {
		if events, err = sched.CreateEventLog(cfg.EventLog); err != nil {
			return err
		}
		defer func() {
			if err := events.Close(); err != nil {
				logger.Error("closing event log", logging.ErrAttr(err))
			}
		}()
	}

	var tracer *trace.SQLiteTraceWriter
	if cfg.TraceDB != "" {
		if tracer, err = trace.NewSQLiteTraceWriter(cfg.TraceDB); err != nil {
			return err
		}
		defer tracer.Close()
	}

	for _, p := range policies {
		opts := []sched.Option{sched.WithLogger(logger)}
		if events != nil {
			opts = append(opts, sched.WithHook(events.ForPolicy(p.Name())))
		}

		result, err := sched.Simulate(cmd.Context(), specs, p, opts...)
		if err != nil {
			logger.Error("simulation failed", slog.String("policy", p.Name()), logging.ErrAttr(err))
			return err
		}
		if err := report.Print(out, result, cfg.GanttLabel); err != nil {
			return err
		}

		if tracer != nil {
			runID, err := tracer.Write(result)
			if err != nil {
				return err
			}
			logger.Info("trace stored", slog.String("policy", p.Name()), slog.String("run_id", runID))
		}
	}
	return nil
}
