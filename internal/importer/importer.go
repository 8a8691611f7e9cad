// Package importer reads transaction files into a book and manages the
// import/ inbox of a books directory.
package importer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cleared-dev/closebooks/internal/journal"
	"github.com/cleared-dev/closebooks/internal/model"
)

// Parser converts a transaction file into a Book.
type Parser interface {
	Parse(r io.Reader) (model.Book, error)
	Format() string
}

// Registry holds parsers keyed by format name and file extension.
type Registry struct {
	parsers map[string]Parser
}

// FileInfo describes a file waiting in the import directory.
type FileInfo struct {
	Name string
	Path string
	Size int64
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// ForPath returns the parser matching the file extension, or nil.
func (r *Registry) ForPath(path string) Parser {
	return r.Get(strings.TrimPrefix(filepath.Ext(path), "."))
}

// Formats lists the registered format names.
func (r *Registry) Formats() []string {
	names := make([]string, 0, len(r.parsers))
	for name := range r.parsers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(JSONParser{})
	r.Register(CSVParser{})
	return r
}

// JSONParser reads the {transactions, closedMonths} book blob.
type JSONParser struct{}

// Format returns the parser name.
func (JSONParser) Format() string { return "json" }

// Parse reads a JSON book.
func (JSONParser) Parse(r io.Reader) (model.Book, error) {
	return journal.ReadBook(r)
}

// CSVParser reads the one-row-per-entry journal CSV. It carries no closed months.
type CSVParser struct{}

// Format returns the parser name.
func (CSVParser) Format() string { return "csv" }

// Parse reads a journal CSV.
func (CSVParser) Parse(r io.Reader) (model.Book, error) {
	txns, err := journal.ReadTransactions(r)
	if err != nil {
		return model.Book{}, err
	}
	return model.Book{Transactions: txns}, nil
}

// ParseFile opens path and parses it with format, or by extension when
// format is empty.
func (r *Registry) ParseFile(path, format string) (model.Book, error) {
	var p Parser
	if format == "" {
		p = r.ForPath(path)
	} else {
		p = r.Get(format)
	}
	if p == nil {
		return model.Book{}, fmt.Errorf("no parser for %s (known formats: %s)", path, strings.Join(r.Formats(), ", "))
	}

	f, err := os.Open(path)
	if err != nil {
		return model.Book{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	book, err := p.Parse(f)
	if err != nil {
		return model.Book{}, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	return book, nil
}

// importDir is the subdirectory for files waiting to be imported.
const importDir = "import"

// processedDir is the subdirectory for imported files.
const processedDir = "import/processed"

// Dir returns the import inbox of a books directory.
func Dir(root string) string {
	return filepath.Join(root, importDir)
}

// Scan returns the files in <root>/import/ that the registry can parse,
// sorted by name.
func (r *Registry) Scan(root string) ([]FileInfo, error) {
	dir := Dir(root)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading import dir: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() || r.ForPath(e.Name()) == nil {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, FileInfo{
			Name: e.Name(),
			Path: filepath.Join(dir, e.Name()),
			Size: info.Size(),
		})
	}
	return files, nil
}

// MarkProcessed moves a file from import/ to import/processed/.
func MarkProcessed(root, fileName string) error {
	src := filepath.Join(root, importDir, fileName)
	dstDir := filepath.Join(root, processedDir)

	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return fmt.Errorf("creating processed dir: %w", err)
	}

	dst := filepath.Join(dstDir, fileName)
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("moving %s to processed: %w", fileName, err)
	}
	return nil
}
