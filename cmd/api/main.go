package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yigit/coursemanager/internal/bootstrap"
	"github.com/yigit/coursemanager/internal/pkg/logger"
	"github.com/yigit/coursemanager/internal/server"
)

// @title Course Manager API
// @version 1.0
// @description Departments, courses, students, enrollments and grading.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:           "coursemanager-api",
		Short:         "Course manager HTTP API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			srv, err := server.NewServer(configPath)
			if err != nil {
				return err
			}
			// Run blocks until shutdown signal
			return srv.Run()
		},
	}
	rootCmd.Flags().StringVarP(&configPath, "config", "c", bootstrap.DefaultConfigPath, "path to the YAML configuration file")

	if err := rootCmd.Execute(); err != nil {
		// Use the default logger setup by the logger package's init
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
