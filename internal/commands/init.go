package commands

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/closebooks/internal/accounts"
	"github.com/cleared-dev/closebooks/internal/auditlog"
	"github.com/cleared-dev/closebooks/internal/config"
	"github.com/cleared-dev/closebooks/internal/store"
)

func newInitCommand() *cobra.Command {
	var name string
	var entityType string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new books directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(cmd.OutOrStdout(), absDir, name, entityType)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "business name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&entityType, "entity-type", "small_business", "entity type")

	return cmd
}

func runInit(out io.Writer, dir, name, entityType string) error {
	cfgPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return fmt.Errorf("%s already exists", cfgPath)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking config: %w", err)
	}

	for _, d := range []string{"accounts", "logs", "import", filepath.Join("import", "processed")} {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	cfg := config.Default(name, entityType)
	if err := config.Save(cfgPath, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	chart := accounts.NewService(accounts.DefaultChart(entityType))
	if err := chart.Save(dir); err != nil {
		return fmt.Errorf("writing chart of accounts: %w", err)
	}

	st, err := store.Open(cfg.DatabasePath(dir))
	if err != nil {
		return err
	}
	if err := st.Close(); err != nil {
		return fmt.Errorf("closing store: %w", err)
	}

	if err := auditlog.Append(dir, auditlog.NewEntry(auditlog.ActionInit, "Initialize "+name, "")); err != nil {
		return fmt.Errorf("writing audit log: %w", err)
	}

	fmt.Fprintf(out, "Initialized books for %s at %s (%d accounts)\n", name, dir, len(chart.All()))
	return nil
}
