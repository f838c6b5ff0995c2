package reader

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/parquet-go/parquet-go"
	"github.com/spf13/afero"

	"github.com/vegasq/rowsql/query"
)

// maxFiles bounds how many files a glob pattern may expand to
const maxFiles = 1000

// Reader reads parquet files and returns rows as string maps.
//
// It maintains both a file handle and a parquet file handle to enable
// proper resource cleanup.
type Reader struct {
	file   afero.File
	pqFile *parquet.File
}

// NewReader opens path on fs and validates it as a parquet file.
//
// Example:
//
//	r, err := reader.NewReader(afero.NewOsFs(), "students.parquet")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
func NewReader(fs afero.Fs, path string) (*Reader, error) {
	file, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	stat, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pqFile, err := parquet.OpenFile(file, stat.Size())
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}

	return &Reader{
		file:   file,
		pqFile: pqFile,
	}, nil
}

// ReadAll reads all rows from the parquet file into memory.
//
// Column values are rendered as text; NULL values leave the column out of
// the row.
func (r *Reader) ReadAll() ([]query.Row, error) {
	rows := make([]query.Row, 0, r.pqFile.NumRows())

	reader := parquet.NewReader(r.pqFile)
	defer func() { _ = reader.Close() }()

	for {
		record := make(map[string]interface{})
		err := reader.Read(&record)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		rows = append(rows, toRow(record))
	}

	return rows, nil
}

// Close releases the underlying file. It is safe to call more than once.
func (r *Reader) Close() error {
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}

// isGlob reports whether path contains glob wildcards
func isGlob(path string) bool {
	return strings.ContainsAny(path, "*?[]")
}

// ReadParquet reads a single parquet file, or every file matching a glob
// pattern. Rows read through a pattern are tagged with a "_file" column
// holding their source path.
func ReadParquet(fs afero.Fs, pattern string) ([]query.Row, error) {
	if !isGlob(pattern) {
		r, err := NewReader(fs, pattern)
		if err != nil {
			return nil, err
		}
		defer func() { _ = r.Close() }()

		return r.ReadAll()
	}

	matches, err := afero.Glob(fs, pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid glob pattern: %w", err)
	}

	if len(matches) == 0 {
		return nil, fmt.Errorf("no files match pattern: %s", pattern)
	}

	if len(matches) > maxFiles {
		return nil, fmt.Errorf("glob pattern matched too many files (%d), maximum is %d", len(matches), maxFiles)
	}

	var allRows []query.Row
	for _, filePath := range matches {
		r, err := NewReader(fs, filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", filePath, err)
		}

		rows, readErr := r.ReadAll()
		closeErr := r.Close()

		if readErr != nil {
			return nil, fmt.Errorf("failed to read rows from %s: %w", filePath, readErr)
		}
		if closeErr != nil {
			return nil, fmt.Errorf("failed to close %s: %w", filePath, closeErr)
		}

		for i := range rows {
			rows[i]["_file"] = filePath
		}

		allRows = append(allRows, rows...)
	}

	return allRows, nil
}
