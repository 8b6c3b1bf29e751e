package storage

import (
	"fmt"
	"strconv"
)

// QueryRaw runs an arbitrary read query and returns the column names and every
// row rendered as text. NULL is rendered as "NULL".
func (db *DB) QueryRaw(query string, args ...any) ([]string, [][]string, error) {
	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}

	var out [][]string
	vals := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, err
		}
		row := make([]string, len(cols))
		for i, v := range vals {
			row[i] = rawText(v)
		}
		out = append(out, row)
	}
	return cols, out, rows.Err()
}

func rawText(v any) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(x)
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}
