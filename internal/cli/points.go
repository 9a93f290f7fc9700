package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/fh2207/waveview/internal/config"
	"github.com/fh2207/waveview/internal/point"
	"github.com/fh2207/waveview/internal/store"
)

var (
	pointsAddLabel    string
	pointsAddColor    string
	pointsAddEditable bool
)

func init() {
	rootCmd.AddCommand(pointsCmd)
	pointsCmd.AddCommand(pointsListCmd)
	pointsCmd.AddCommand(pointsAddCmd)
	pointsCmd.AddCommand(pointsRemoveCmd)
	pointsCmd.AddCommand(pointsClearCmd)

	pointsAddCmd.Flags().StringVar(&pointsAddLabel, "label", "", "display label for the point")
	pointsAddCmd.Flags().StringVar(&pointsAddColor, "color", "", "marker color override")
	pointsAddCmd.Flags().BoolVar(&pointsAddEditable, "editable", true, "allow retiming the point by dragging")
}

var pointsCmd = &cobra.Command{
	Use:   "points",
	Short: "Manage stored points",
	Long:  "Inspect and edit the stored point set without launching the viewer.",
}

var pointsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored points",
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := mustOpenRepository()
		if err != nil {
			return err
		}
		defer repo.Close()

		points, err := repo.Load(cmdContext())
		if err != nil {
			return err
		}

		if len(points) == 0 {
			fmt.Fprintln(os.Stdout, "No points stored.")
			return nil
		}

		writer := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
		fmt.Fprintln(writer, "ID\tTIME\tEDITABLE\tCOLOR\tLABEL")
		for _, p := range points {
			fmt.Fprintf(writer, "%s\t%s\t%v\t%s\t%s\n",
				p.ID, point.FormatTime(p.Time), p.Editable, p.Color, p.LabelText)
		}
		return writer.Flush()
	},
}

var pointsAddCmd = &cobra.Command{
	Use:   "add <time-seconds>",
	Short: "Add a point",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("invalid time %q: %w", args[0], err)
		}
		if t < 0 {
			return fmt.Errorf("time must be non-negative, got %s", args[0])
		}

		repo, err := mustOpenRepository()
		if err != nil {
			return err
		}
		defer repo.Close()

		p := point.New(t, pointsAddEditable)
		p.Color = pointsAddColor
		p.LabelText = pointsAddLabel

		if err := repo.Save(cmdContext(), p); err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, p.ID)
		return nil
	},
}

var pointsRemoveCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"remove"},
	Short:   "Remove a stored point",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := mustOpenRepository()
		if err != nil {
			return err
		}
		defer repo.Close()

		return repo.Delete(cmdContext(), args[0])
	},
}

var pointsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all stored points",
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := mustOpenRepository()
		if err != nil {
			return err
		}
		defer repo.Close()

		return repo.SaveAll(cmdContext(), nil)
	},
}

// openRepository opens the configured point database, creating its parent
// directory if needed. Returns nil when no database is configured.
func openRepository(cfg *config.Config) (*store.Repository, error) {
	if cfg.Database.Path == "" {
		return nil, nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}
	return store.OpenRepository(cfg.Database.Path)
}

func mustOpenRepository() (*store.Repository, error) {
	repo, err := openRepository(loadedConfig)
	if err != nil {
		return nil, err
	}
	if repo == nil {
		return nil, fmt.Errorf("no point database configured; set database.path or pass --db")
	}
	return repo, nil
}

func cmdContext() context.Context {
	return context.Background()
}
