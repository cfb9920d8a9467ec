package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/UnknownOlympus/athena/internal/client"
	"github.com/UnknownOlympus/athena/internal/lib/logger/sl"
	"github.com/UnknownOlympus/athena/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

const (
	defaultAPIURL  = "http://localhost:3005"
	defaultTimeout = 10 * time.Second
	logFileMode    = 0o600
)

var (
	apiURL  string
	timeout time.Duration
	logFile string
)

var rootCmd = &cobra.Command{
	Use:   "athena-client",
	Short: "Terminal client for the employee API",
	Long:  `Lists, adds, edits and deletes employee records stored by the athena API server.`,
	Args:  cobra.NoArgs,
	RunE:  runClient,
}

func init() {
	defaultURL := defaultAPIURL
	if fromEnv := os.Getenv("API_BASE_URL"); fromEnv != "" {
		defaultURL = fromEnv
	}

	rootCmd.Flags().StringVar(&apiURL, "api-url", defaultURL, "base URL of the API server (env API_BASE_URL)")
	rootCmd.Flags().DurationVar(&timeout, "timeout", defaultTimeout, "timeout of a single API request")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "write debug logs to this file")
}

func runClient(cmd *cobra.Command, _ []string) error {
	logger, closeLog, err := openLog(logFile)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx := cmd.Context()
	api := client.NewAPIClient(logger, apiURL, timeout)

	logger.InfoContext(ctx, "Starting client", "api_url", apiURL)

	p := tea.NewProgram(ui.New(ctx, api, logger), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err = p.Run(); err != nil {
		return fmt.Errorf("client stopped: %w", err)
	}

	return nil
}

// openLog keeps the terminal free for the UI: logs go to a file or nowhere.
func openLog(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return sl.Discard(), func() {}, nil
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFileMode)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return sl.New(sl.EnvLocal, file), func() { _ = file.Close() }, nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
