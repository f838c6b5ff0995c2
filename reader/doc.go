// Package reader loads tables for the query evaluator.
//
// Tables are read fully into memory as rows of text values. Supported
// sources, picked by file extension:
//
//   - .parquet: Apache Parquet, a single file or a glob pattern
//   - .csv: comma-separated values with a header row
//   - .json, .jsonl, .ndjson: JSON Lines or a JSON array of objects
//   - .db, .sqlite, .sqlite3: one table of a SQLite database
//
// # Basic Usage
//
//	loader := reader.NewLoader(afero.NewOsFs(), slog.Default())
//	table, err := loader.Load(ctx, reader.Source{Path: "data/student.parquet"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// The table is named after the file ("student" above) unless Source.Table
// says otherwise. An empty Source.Path yields the built-in student sample
// table.
//
// # Multi-file Operations
//
// A parquet glob pattern reads every matching file into one table:
//
//	table, err := loader.Load(ctx, reader.Source{Path: "data/students/*.parquet"})
//
// Each row then carries a "_file" column with its source path, and the
// table is named after the directory ("students").
//
// # Values
//
// Numbers are rendered in their shortest form, booleans as true/false and
// timestamps in RFC 3339. NULL values leave the column out of the row, so
// `col != 'x'` matches them and `col = 'x'` does not.
//
// The package uses github.com/parquet-go/parquet-go for parquet files and
// github.com/mattn/go-sqlite3 for SQLite databases.
package reader
