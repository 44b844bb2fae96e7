package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"github.com/zulandar/starindex/internal/config"
	"go.uber.org/zap"
)

func newScheduleCmd() *cobra.Command {
	var (
		configPath string
		runNow     bool
	)

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Regenerate the index on the configured cron schedule",
		Long:  "Runs a full generation every time the config's schedule expression fires, until interrupted. Overlapping runs are skipped.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runSchedule(ctx, cmd, configPath, runNow)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to starindex config file")
	cmd.Flags().BoolVar(&runNow, "now", false, "run one generation immediately before waiting for the schedule")
	return cmd
}

func runSchedule(ctx context.Context, cmd *cobra.Command, configPath string, runNow bool) error {
	cfg, log, err := loadRun(configPath)
	if err != nil {
		return err
	}
	defer log.Sync()
	if cfg.Schedule == "" {
		return fmt.Errorf("schedule: %s has no schedule expression", configPath)
	}

	out := cmd.OutOrStdout()
	regenerate := func() {
		if err := generateOnce(cmd, cfg, log, nil); err != nil {
			log.Error("scheduled generation failed", zap.Error(err))
		}
	}

	if runNow {
		regenerate()
	}

	cl := cronLogger{log.Sugar()}
	c := cron.New(
		cron.WithParser(config.ScheduleParser),
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)
	id, err := c.AddFunc(cfg.Schedule, regenerate)
	if err != nil {
		return fmt.Errorf("schedule %q: %w", cfg.Schedule, err)
	}
	c.Start()
	fmt.Fprintf(out, "Scheduled %q, next run at %s\n", cfg.Schedule, c.Entry(id).Next.Format("2006-01-02 15:04:05"))

	<-ctx.Done()
	<-c.Stop().Done()
	fmt.Fprintln(out, "Schedule stopped.")
	return nil
}

// cronLogger routes cron's own logging through zap.
type cronLogger struct {
	s *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.s.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.s.Errorw(msg, append(keysAndValues, "error", err)...)
}
