// Package dbf decodes distributor DBF exports into generic rows.
package dbf

import (
	"fmt"
	"strings"

	"github.com/LindsayBradford/go-dbf/godbf"
)

// Parse reads a DBF file and returns one map per record, keyed by the
// upper-cased field name. Values are trimmed; deleted records are
// skipped by the underlying reader.
func Parse(data []byte) ([]map[string]string, error) {
	table, err := godbf.NewFromByteArray(data, "UTF8")
	if err != nil {
		return nil, fmt.Errorf("decode dbf: %w", err)
	}

	fields := table.FieldNames()
	rows := make([]map[string]string, 0, table.NumberOfRecords())
	for i := 0; i < table.NumberOfRecords(); i++ {
		row := make(map[string]string, len(fields))
		for _, name := range fields {
			value, err := table.FieldValueByName(i, name)
			if err != nil {
				return nil, fmt.Errorf("read field %s of record %d: %w", name, i, err)
			}
			row[strings.ToUpper(name)] = strings.TrimSpace(value)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
