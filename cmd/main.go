package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"doorbell_monitor/internal/config"
	"doorbell_monitor/internal/logger"
	"doorbell_monitor/internal/notifier"
	"doorbell_monitor/internal/service"
	"doorbell_monitor/internal/wyze"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const defaultEnvFile = ".env"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	err := newRootCmd(os.Stdout).ExecuteContext(ctx)
	var reported reportedError
	if err != nil && !errors.As(err, &reported) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	cancel()
	os.Exit(service.ExitCode(err))
}

// newRootCmd builds the one-shot check command. Errors are logged here and
// returned so main can map them to an exit code.
func newRootCmd(out io.Writer) *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:           "doorbell-monitor",
		Short:         "Check a Wyze doorbell battery and email an alert when it is low",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := config.NewViper(envFile)
			if err != nil {
				return failConfig(err)
			}
			if err := bindFlags(cmd, v); err != nil {
				return failConfig(err)
			}
			settings, err := config.Load(v)
			if err != nil {
				return failConfig(err)
			}

			log := logger.Get(settings.LogLevel)
			defer func() { _ = log.Sync() }()

			if err := run(cmd.Context(), settings, out, log); err != nil {
				log.Errorw(err.Error(), "exit_code", service.ExitCode(err))
				return reportedError{err: err}
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&envFile, "env-file", defaultEnvFile, "dotenv file to read before the environment")
	flags.Int("threshold", config.DefaultThreshold, "alert when battery percent is below this value (overrides BATTERY_THRESHOLD)")
	flags.Bool("force-alert", false, "send an alert regardless of battery level (overrides FORCE_ALERT)")
	flags.Bool("explore", false, "print every device and exit (overrides EXPLORE_MODE)")
	return cmd
}

// bindFlags lets explicitly set flags override environment variables.
func bindFlags(cmd *cobra.Command, v *viper.Viper) error {
	bindings := map[string]string{
		"threshold":   config.EnvThreshold,
		"force-alert": config.EnvForceAlert,
		"explore":     config.EnvExploreMode,
	}
	for flag, env := range bindings {
		f := cmd.Flags().Lookup(flag)
		if f == nil || !f.Changed {
			continue
		}
		if err := v.BindPFlag(config.Key(env), f); err != nil {
			return fmt.Errorf("bind flag --%s: %w", flag, err)
		}
	}
	return nil
}

// run wires the production collaborators and performs one check.
func run(ctx context.Context, settings config.Settings, out io.Writer, log *logger.Logger) error {
	dir := wyze.NewClient(settings.Wyze)
	services := service.NewService(dir, out, log)

	newNotifier := func(n config.NotificationSettings, runID string) (service.AlertSender, error) {
		sender, err := notifier.NewResendNotifier(n, runID, log)
		if err != nil {
			return nil, err
		}
		return sender, nil
	}

	return service.NewMonitor(settings, dir, services, newNotifier, log).Run(ctx)
}

// failConfig logs a configuration error before a logger has been configured.
func failConfig(err error) error {
	err = fmt.Errorf("%w: %w", service.ErrConfiguration, err)
	logger.Get(logger.InfoLevel).Errorw(err.Error(), "exit_code", service.ExitCode(err))
	return reportedError{err: err}
}

// reportedError marks an error that has already been logged.
type reportedError struct{ err error }

func (e reportedError) Error() string { return e.err.Error() }
func (e reportedError) Unwrap() error { return e.err }
