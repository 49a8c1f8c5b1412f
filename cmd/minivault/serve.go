package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/zulandar/minivault/internal/config"
	"github.com/zulandar/minivault/internal/interactionlog"
	"github.com/zulandar/minivault/internal/logging"
	"github.com/zulandar/minivault/internal/responder"
	"github.com/zulandar/minivault/internal/server"
)

type serveOpts struct {
	configPath string
	host       string
	port       int
	logFile    string
}

func newServeCmd() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MiniVault API server",
		Long:  "Starts the HTTP API on 0.0.0.0:8000 by default. Each POST /generate call is appended to the interaction log (logs/log.json).",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "path to MiniVault config file (built-in defaults when empty)")
	cmd.Flags().StringVar(&opts.host, "host", config.DefaultHost, "interface to bind")
	cmd.Flags().IntVarP(&opts.port, "port", "p", config.DefaultPort, "port to listen on")
	cmd.Flags().StringVar(&opts.logFile, "log-file", config.DefaultLogPath, "interaction log file (JSON lines)")
	return cmd
}

// resolveConfig layers the config file, MINIVAULT_* variables and explicitly
// set flags, in that order.
func resolveConfig(cmd *cobra.Command, opts serveOpts) (*config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("host") {
		cfg.Server.Host = opts.host
	}
	if flags.Changed("port") {
		cfg.Server.Port = opts.port
	}
	if flags.Changed("log-file") {
		cfg.InteractionLog.Path = opts.logFile
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func runServe(cmd *cobra.Command, opts serveOpts) error {
	cfg, err := resolveConfig(cmd, opts)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Logging, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	writer, err := interactionlog.New(cfg.InteractionLog.Path, interactionlog.WithLogger(logger))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.WithFields(logrus.Fields{
		"addr":            cfg.Server.Addr(),
		"interaction_log": writer.Path(),
	}).Info("starting minivault")

	return server.Start(ctx, server.StartOpts{
		Deps: server.Deps{
			Log:       writer,
			Responder: responder.New(),
			Logger:    logger,
		},
		Host: cfg.Server.Host,
		Port: cfg.Server.Port,
		Out:  cmd.OutOrStdout(),
	})
}
