package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/kanbankarma/karma/internal/api"
	"github.com/kanbankarma/karma/internal/config"
	"github.com/kanbankarma/karma/internal/logger"
	"github.com/kanbankarma/karma/internal/tui"
)

var (
	serverURL  string
	logLevel   string
	logFile    string
	logConsole bool
)

var rootCmd = &cobra.Command{
	Use:   "karma",
	Short: "Kanban Karma - drag-and-drop task boards in your terminal",
	Long: `Kanban Karma is a kanban task tracker. Tasks live on boards and move
between the todo, in-progress and done columns; everything is stored on the
Kanban Karma server under your account.

Run 'karma' without arguments to launch the interactive board.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			logger.Warn("Failed to load config, using defaults", logger.F("error", err))
			cfg = config.DefaultConfig()
		}

		// Override with CLI flags if provided
		configChanged := false
		if cmd.Flags().Changed("server") {
			cfg.ServerURL = serverURL
			configChanged = true
		}
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel = logLevel
			configChanged = true
		}
		if cmd.Flags().Changed("log-file") {
			cfg.LogFile = logFile
			configChanged = true
		}
		if cmd.Flags().Changed("log-console") {
			cfg.LogConsole = logConsole
			configChanged = true
		}
		if configChanged {
			if err := cfg.Save(); err != nil {
				logger.Warn("Failed to save config", logger.F("error", err))
			}
		}

		logConfig := logger.DefaultConfig()
		logConfig.Level = logger.ParseLevel(cfg.LogLevel)
		logConfig.FilePath = cfg.LogFile
		logConfig.Console = cfg.LogConsole

		if err := logger.Init(logConfig); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		clientCfg = cfg
		logger.Info("Kanban Karma started", logger.F("command", cmd.Name()))
		return nil
	},

	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}
		if !client.LoggedIn() {
			return fmt.Errorf("not logged in, run 'karma auth login' or 'karma auth register' first")
		}
		if client.SessionExpired() {
			return fmt.Errorf("session expired, run 'karma auth login' again")
		}

		logger.Info("Launching kanban TUI")
		m := tui.NewModel(client)
		p := tea.NewProgram(m, tea.WithAltScreen())

		if _, err := p.Run(); err != nil {
			logger.Error("TUI error", logger.F("error", err))
			return fmt.Errorf("failed to run TUI: %w", err)
		}

		logger.Info("TUI exited normally")
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Info("Kanban Karma exiting", logger.F("command", cmd.Name()))
		logger.Close()
	},
}

// clientCfg is the loaded client configuration, set by PersistentPreRunE.
var clientCfg *config.Config

func newAPIClient() (*api.Client, error) {
	cfg := clientCfg
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return api.NewClient(cfg.ServerURL)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "Kanban Karma server URL")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (DEBUG, INFO, WARN, ERROR)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Path to log file")
	rootCmd.PersistentFlags().BoolVar(&logConsole, "log-console", false, "Enable console logging")

	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(taskCmd)
}
