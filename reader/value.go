package reader

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/vegasq/rowsql/query"
)

// stringify renders a decoded column value as row text. It reports false
// for NULL, which leaves the column out of the row.
func stringify(v interface{}) (string, bool) {
	if v == nil {
		return "", false
	}

	switch val := v.(type) {
	case string:
		return val, true
	case []byte:
		return string(val), true
	case json.Number:
		return val.String(), true
	case int, int8, int16, int32, int64:
		return fmt.Sprintf("%d", val), true
	case uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", val), true
	case float32:
		return strconv.FormatFloat(float64(val), 'g', -1, 32), true
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64), true
	case bool:
		return strconv.FormatBool(val), true
	case time.Time:
		return val.Format(time.RFC3339Nano), true
	case *string:
		if val == nil {
			return "", false
		}
		return *val, true
	default:
		// Nested values keep their JSON form
		if bs, err := json.Marshal(val); err == nil {
			return string(bs), true
		}
		return fmt.Sprintf("%v", val), true
	}
}

// toRow converts a decoded record into a Row, dropping NULL columns.
func toRow(record map[string]interface{}) query.Row {
	row := make(query.Row, len(record))
	for k, v := range record {
		if s, ok := stringify(v); ok {
			row[k] = s
		}
	}
	return row
}
