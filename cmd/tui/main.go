package main

import (
	"context"
	"fmt"
	"os"

	"profile-directory/config"
	"profile-directory/internal/dataset"
	"profile-directory/internal/delivery/tui"
	"profile-directory/internal/repository/memory"
	"profile-directory/internal/usecase"
	"profile-directory/pkg/logger"
	"profile-directory/pkg/validation"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

type tuiFlags struct {
	dataset string
	search  string
	logFile string
}

func main() {
	var flags tuiFlags

	root := &cobra.Command{
		Use:   "profile-directory",
		Short: "Browse and edit the profile directory in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), flags)
		},
		SilenceUsage: true,
	}

	f := root.Flags()
	f.StringVar(&flags.dataset, "dataset", "", "Profile dataset JSON file (default: bundled dataset, or DATASET_PATH)")
	f.StringVar(&flags.search, "search", "", "Initial search term")
	f.StringVar(&flags.logFile, "log-file", "", "Write JSON logs to this file (default: LOG_FILE)")

	if err := root.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, flags tuiFlags) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if flags.dataset != "" {
		cfg.DatasetPath = flags.dataset
	}
	if flags.logFile != "" {
		cfg.LogFile = flags.logFile
	}

	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()
	logger.InitWriter(logFile)

	profiles, err := dataset.Load(cfg.DatasetPath)
	if err != nil {
		return err
	}
	logger.Log.Info("Dataset loaded", "profiles", len(profiles))

	directoryUC, err := usecase.NewDirectoryUsecase(memory.NewProfileRepository(profiles), validation.New(), usecase.DirectoryOptions{
		AdultAge:        cfg.AdultAge,
		FilterCacheSize: cfg.FilterCacheSize,
	})
	if err != nil {
		return err
	}
	if flags.search != "" {
		if _, err := directoryUC.SetSearch(ctx, flags.search); err != nil {
			return err
		}
	}

	model, err := tui.New(ctx, directoryUC)
	if err != nil {
		return err
	}

	if _, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("run terminal UI: %w", err)
	}
	return nil
}
