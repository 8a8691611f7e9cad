package commands

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/closebooks/internal/accounts"
	"github.com/cleared-dev/closebooks/internal/applog"
	"github.com/cleared-dev/closebooks/internal/auditlog"
	"github.com/cleared-dev/closebooks/internal/config"
	"github.com/cleared-dev/closebooks/internal/model"
	"github.com/cleared-dev/closebooks/internal/reports"
	"github.com/cleared-dev/closebooks/internal/store"
)

// books is an opened books directory: config, logger, chart and log store.
type books struct {
	dir    string
	cfg    *config.Config
	logger *slog.Logger
	chart  *accounts.Service
	store  *store.Store
}

func openBooks(cmd *cobra.Command, opts *rootOptions) (*books, error) {
	dir, err := filepath.Abs(opts.dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg, err := config.LoadDir(dir)
	if err != nil {
		return nil, err
	}

	logCfg := cfg.Log
	if opts.debug {
		logCfg.Level = "debug"
	}
	logger, err := applog.New(cmd.ErrOrStderr(), logCfg)
	if err != nil {
		return nil, fmt.Errorf("configuring logger: %w", err)
	}

	chart, err := accounts.Load(dir)
	if err != nil {
		return nil, err
	}

	st, err := store.Open(cfg.DatabasePath(dir))
	if err != nil {
		return nil, err
	}

	logger.Debug("opened books", "dir", dir, "accounts", len(chart.All()))
	return &books{dir: dir, cfg: cfg, logger: logger, chart: chart, store: st}, nil
}

func (b *books) Close() error {
	return b.store.Close()
}

// audit appends to the audit log. The change is already committed, so a
// failed write is only logged.
func (b *books) audit(action, details, txnID string) {
	if err := auditlog.Append(b.dir, auditlog.NewEntry(action, details, txnID)); err != nil {
		b.logger.Warn("failed to write audit log", "action", action, "error", err)
	}
}

func (b *books) formatter() (*reports.Formatter, error) {
	return reports.NewFormatter(b.cfg.Reporting.Locale)
}

// reportMonth picks the month label: the flag, then config, then today.
func (b *books) reportMonth(flag string) (string, error) {
	month := flag
	if month == "" {
		month = b.cfg.Reporting.Month
	}
	if month == "" {
		return model.MonthKey(time.Now()), nil
	}
	if _, err := model.ParseMonthKey(month); err != nil {
		return "", err
	}
	return month, nil
}

// parseDate parses a YYYY-MM-DD flag value; empty yields the zero time.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(model.DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return t, nil
}
