package reader

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/vegasq/rowsql/query"
)

// ReadJSON reads JSON objects, either one per line (JSON Lines) or as a
// single top-level array. Numbers keep their literal text.
func ReadJSON(r io.Reader) ([]query.Row, error) {
	br := bufio.NewReader(r)

	first, err := peekNonSpace(br)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return []query.Row{}, nil
		}
		return nil, err
	}

	decoder := json.NewDecoder(br)
	decoder.UseNumber()

	if first == '[' {
		var records []map[string]interface{}
		if err := decoder.Decode(&records); err != nil {
			return nil, fmt.Errorf("failed to decode JSON array: %w", err)
		}
		rows := make([]query.Row, 0, len(records))
		for _, record := range records {
			rows = append(rows, toRow(record))
		}
		return rows, nil
	}

	rows := make([]query.Row, 0)
	for {
		var record map[string]interface{}
		if err := decoder.Decode(&record); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to decode record %d: %w", len(rows)+1, err)
		}
		rows = append(rows, toRow(record))
	}

	return rows, nil
}

// peekNonSpace skips leading whitespace and returns the next byte without
// consuming it.
func peekNonSpace(br *bufio.Reader) (byte, error) {
	for {
		b, err := br.ReadByte()
		if err != nil {
			return 0, err
		}
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		}
		if err := br.UnreadByte(); err != nil {
			return 0, err
		}
		return b, nil
	}
}
