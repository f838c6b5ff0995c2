package reader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/vegasq/rowsql/query"
)

// ErrUnsupportedSource is returned for a path whose extension has no reader
var ErrUnsupportedSource = errors.New("unsupported table source")

// Source describes where a table comes from.
type Source struct {
	// Path is a file path or parquet glob pattern. Empty selects the
	// built-in sample table.
	Path string
	// Table names the loaded table. For SQLite it also picks the table to
	// scan. Defaults to the file name without its extension.
	Table string
}

// Loader loads tables from files.
type Loader struct {
	fs  afero.Fs
	log *slog.Logger
}

// NewLoader creates a loader reading from fs. SQLite databases are always
// opened from the operating system's filesystem.
func NewLoader(fs afero.Fs, log *slog.Logger) *Loader {
	if log == nil {
		log = slog.Default()
	}
	return &Loader{fs: fs, log: log}
}

// Load reads the table described by src.
func (l *Loader) Load(ctx context.Context, src Source) (*query.Table, error) {
	if src.Path == "" {
		table := SampleTable()
		if src.Table != "" {
			table.Name = src.Table
		}
		l.log.Debug("using sample table", "table", table.Name)
		return table, nil
	}

	name := src.Table
	if name == "" {
		name = tableName(src.Path)
	}
	if err := query.ValidateTableName(name); err != nil {
		return nil, err
	}

	format := strings.ToLower(filepath.Ext(src.Path))
	l.log.Debug("loading table", "path", src.Path, "format", format, "table", name)

	var (
		rows []query.Row
		err  error
	)
	switch format {
	case ".parquet":
		rows, err = ReadParquet(l.fs, src.Path)
	case ".csv":
		rows, err = l.readFile(src.Path, ReadCSV)
	case ".json", ".jsonl", ".ndjson":
		rows, err = l.readFile(src.Path, ReadJSON)
	case ".db", ".sqlite", ".sqlite3":
		rows, err = ReadSQLite(ctx, src.Path, name)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedSource, src.Path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", src.Path, err)
	}

	l.log.Info("table loaded", "table", name, "rows", len(rows))
	return &query.Table{Name: name, Rows: rows}, nil
}

func (l *Loader) readFile(path string, read func(io.Reader) ([]query.Row, error)) ([]query.Row, error) {
	f, err := l.fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return read(f)
}

// tableName derives a table name from a path: the file name without its
// extension, or the directory name for a glob pattern.
func tableName(path string) string {
	if isGlob(filepath.Base(path)) {
		return filepath.Base(filepath.Dir(path))
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
