package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/yigit/coursemanager/internal/bootstrap"
	"github.com/yigit/coursemanager/internal/config"
	"github.com/yigit/coursemanager/internal/console"
	"github.com/yigit/coursemanager/internal/pkg/logger"
)

func main() {
	var (
		configPath string
		noColor    bool
	)

	rootCmd := &cobra.Command{
		Use:           "coursemanager",
		Short:         "Interactive course management console",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if noColor || config.GetEnvAsBool("NO_COLOR", false) {
				color.NoColor = true
			}

			cfg, _, err := bootstrap.LoadConfigAndSetupLogger(configPath)
			if err != nil {
				return err
			}
			// Keep stdout for the menu
			logger.Configure(logger.Config{
				Level:  logger.ParseLevel(cfg.Logging.Level),
				Pretty: cfg.IsPrettyLogging(),
				Output: os.Stderr,
			})
			lgr := logger.Component("console")

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			services, err := bootstrap.SetupStore(ctx, cfg, lgr)
			if err != nil {
				return err
			}
			defer func() {
				if err := services.Store.Close(); err != nil {
					lgr.Error().Err(err).Msg("Failed to close entity store")
				}
			}()

			return console.New(os.Stdin, os.Stdout, services, nil).Run(ctx)
		},
	}
	rootCmd.Flags().StringVarP(&configPath, "config", "c", bootstrap.DefaultConfigPath, "path to the YAML configuration file")
	rootCmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored output")

	if err := rootCmd.Execute(); err != nil {
		logger.Error().Err(err).Msg("Console exited with an error")
		os.Exit(1)
	}
}
