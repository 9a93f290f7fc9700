// Package cli provides the waveview command line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/fh2207/waveview/internal/config"
	"github.com/fh2207/waveview/internal/events"
	"github.com/fh2207/waveview/internal/logging"
	"github.com/fh2207/waveview/internal/store"
	"github.com/fh2207/waveview/internal/tui"
)

var (
	flagConfigFile string
	flagLogLevel   string
	flagLogFormat  string
	flagDatabase   string

	loadedConfig *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "waveview",
	Short: "Waveform viewer with editable point annotations",
	Long: `waveview renders a scrolling waveform in the terminal with point
annotations drawn as draggable markers. Points live in a SQLite database
and can be managed with the points subcommands.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		loadedConfig = cfg

		logging.Init(logging.Config{
			Level:        cfg.Logging.Level,
			Format:       cfg.Logging.Format,
			EnableCaller: cfg.Logging.EnableCaller,
		})
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runView()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigFile, "config", "", "config file (default is $HOME/.config/waveview/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "override logging level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", "override logging format (json, console)")
	rootCmd.PersistentFlags().StringVar(&flagDatabase, "db", "", "override point database path")
}

// Execute runs the root command.
func Execute(version string) error {
	rootCmd.Version = version
	return rootCmd.Execute()
}

func loadConfig() (*config.Config, error) {
	loader := config.NewLoader()
	if flagConfigFile != "" {
		loader.SetConfigFile(flagConfigFile)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, err
	}

	if flagLogLevel != "" {
		cfg.Logging.Level = flagLogLevel
	}
	if flagLogFormat != "" {
		cfg.Logging.Format = flagLogFormat
	}
	if flagDatabase != "" {
		cfg.Database.Path = flagDatabase
	}
	return cfg, nil
}

// runView loads the stored point set and launches the TUI.
func runView() error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("waveview requires a terminal; use the points subcommands for scripting")
	}

	cfg := loadedConfig

	bus := events.NewBus()
	st := store.New(bus)

	repo, err := openRepository(cfg)
	if err != nil {
		return err
	}
	if repo != nil {
		defer repo.Close()
		points, err := repo.Load(cmdContext())
		if err != nil {
			return err
		}
		if len(points) > 0 {
			if err := st.Add(points...); err != nil {
				return fmt.Errorf("failed to load stored points: %w", err)
			}
		}
		logging.Info().Int("points", len(points)).Str("db", cfg.Database.Path).Msg("loaded point set")
	}

	if err := tui.Run(st, bus, tui.Config{
		SecondsPerPixel: cfg.View.SecondsPerPixel,
		WaveColor:       cfg.View.WaveColor,
		Duration:        cfg.View.Duration,
		PointColor:      cfg.Points.Color,
		FontFamily:      cfg.Points.FontFamily,
		FontSize:        cfg.Points.FontSize,
		FontStyle:       cfg.Points.FontStyle,
		EditingEnabled:  cfg.Points.EditingEnabled,
	}); err != nil {
		return fmt.Errorf("tui exited with error: %w", err)
	}

	// Persist edits made during the session.
	if repo != nil {
		if err := repo.SaveAll(cmdContext(), st.All()); err != nil {
			return fmt.Errorf("failed to save points: %w", err)
		}
	}
	return nil
}
