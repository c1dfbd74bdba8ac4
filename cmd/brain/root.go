package main

import (
	"context"
	"fmt"
	"os"

	"ai-brain-be/internal/bootstrap"
	"ai-brain-be/internal/config"
	"ai-brain-be/internal/pkg/logger"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	storageDir string
	core       *bootstrap.Core
)

var rootCmd = &cobra.Command{
	Use:   "brain",
	Short: "Local client for notes and persona chats",
	Long: `brain keeps notes and persona chat sessions on disk and talks to the
configured completion provider. It shares storage and configuration with the
REST server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		if storageDir != "" {
			cfg.Storage.Driver = "file"
			cfg.Storage.FileDir = storageDir
		}

		opened, err := bootstrap.NewCore(context.Background(), cfg, logger.NewIsolatedLogger(cfg.App.LogFilePath))
		if err != nil {
			return fmt.Errorf("initialize brain: %w", err)
		}
		core = opened
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if core == nil {
			return nil
		}
		return core.Close()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&storageDir, "dir", "", "Use file storage in this directory")
}
