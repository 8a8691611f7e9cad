package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/closebooks/internal/auditlog"
	"github.com/cleared-dev/closebooks/internal/importer"
	"github.com/cleared-dev/closebooks/internal/journal"
	"github.com/cleared-dev/closebooks/internal/model"
)

const (
	formatJSON = "json"
	formatCSV  = "csv"
)

func newImportCommand(opts *rootOptions) *cobra.Command {
	var format string
	var lenient bool

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import transactions from a JSON book or journal CSV",
		Long: `Import appends every transaction of a file in one write. A JSON book
also adds its closed months. Transactions are validated against the chart
unless --lenient is given.

Without a file argument, every file waiting in the import/ directory is
imported in name order and moved to import/processed/.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBooks(cmd, opts)
			if err != nil {
				return err
			}
			defer b.Close()

			registry := importer.DefaultRegistry()
			svc := journal.NewService(b.store, b.chart, b.logger)
			out := cmd.OutOrStdout()

			importFile := func(path string) error {
				book, err := registry.ParseFile(path, format)
				if err != nil {
					return err
				}
				n, err := svc.Import(book, lenient)
				if err != nil {
					return fmt.Errorf("importing %s: %w", filepath.Base(path), err)
				}
				b.audit(auditlog.ActionImport, fmt.Sprintf("Imported %d transactions from %s", n, filepath.Base(path)), "")
				fmt.Fprintf(out, "Imported %d transactions from %s\n", n, filepath.Base(path))
				return nil
			}

			if len(args) == 1 {
				return importFile(args[0])
			}

			files, err := registry.Scan(b.dir)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				fmt.Fprintf(out, "No files to import in %s\n", importer.Dir(b.dir))
				return nil
			}
			for _, f := range files {
				if err := importFile(f.Path); err != nil {
					return err
				}
				if err := importer.MarkProcessed(b.dir, f.Name); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "input format, json or csv (default from extension)")
	cmd.Flags().BoolVar(&lenient, "lenient", false, "skip validation and keep records reports would ignore")
	return cmd
}

func newExportCommand(opts *rootOptions) *cobra.Command {
	var format, output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the transaction log as a JSON book or journal CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != formatJSON && format != formatCSV {
				return fmt.Errorf("unknown format %q", format)
			}

			b, err := openBooks(cmd, opts)
			if err != nil {
				return err
			}
			defer b.Close()

			book, err := b.store.Book()
			if err != nil {
				return err
			}

			if output == "" || output == "-" {
				return writeBook(cmd.OutOrStdout(), book, format)
			}

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("creating %s: %w", output, err)
			}
			if err := writeBook(f, book, format); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("closing %s: %w", output, err)
			}
			b.logger.Info("exported transactions", "count", len(book.Transactions), "path", output)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", formatJSON, "output format, json or csv")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}

func writeBook(w io.Writer, book model.Book, format string) error {
	if format == formatCSV {
		return journal.WriteTransactions(w, book.Transactions)
	}
	return journal.WriteBook(w, book)
}
