package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/gingerrexayers/htree-go/internal/htree/commands"
	"github.com/gingerrexayers/htree-go/internal/htree/config"
	"github.com/gingerrexayers/htree-go/internal/htree/lib"
	"github.com/gingerrexayers/htree-go/internal/htree/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:           "htree",
		Short:         "Fingerprint large files with a parallel hash tree.",
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&cfgFile, config.OptionNameConfig, "", "config file (default is $HOME/.htree.yaml)")
	config.AddFlags(rootCmd.PersistentFlags())

	load := func(cmd *cobra.Command) (*session, error) {
		cfg, err := config.Load(cmd.Flags(), cfgFile)
		if err != nil {
			return nil, err
		}

		metrics := lib.NewMetrics()
		registry := prometheus.NewRegistry()
		registry.MustRegister(metrics.Collectors()...)

		return &session{
			cfg:      cfg,
			logger:   logging.New(cmd.ErrOrStderr(), cfg.Verbose),
			metrics:  metrics,
			registry: registry,
		}, nil
	}

	rootCmd.AddCommand(NewHashCommand(load))
	rootCmd.AddCommand(NewWalkCommand(load))
	rootCmd.AddCommand(NewCompletionCommand())
	return rootCmd
}

// loader resolves the configuration of the running command.
type loader func(cmd *cobra.Command) (*session, error)

// session is what a sub-command runs with: its resolved configuration,
// a logger and the engine metrics shared by every fingerprint it computes.
type session struct {
	cfg      config.Config
	logger   *logrus.Logger
	metrics  *lib.Metrics
	registry *prometheus.Registry
}

func (s *session) hashOptions() commands.HashOptions {
	return commands.HashOptions{
		BlockSize:      s.cfg.BlockSize,
		CoverRemainder: s.cfg.CoverRemainder,
		MaxTasks:       s.cfg.MaxTasks,
		Logger:         s.logger,
		Metrics:        s.metrics,
	}
}

// finish prints the collected metrics when asked to by --metrics or
// --verbose.
func (s *session) finish(cmd *cobra.Command) error {
	if !s.cfg.Metrics && !s.cfg.Verbose {
		return nil
	}
	return commands.WriteMetrics(cmd.ErrOrStderr(), s.registry)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
