// Package export writes normalized tables to disk. Persistence is a
// collaborator of the normalization core, not part of it; the core's
// contract ends at in-memory tables.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/jonathan/order-normalizer/internal/types"
)

// WriteTables writes one <name>.csv file per table into dir, creating the
// directory if needed. The header row is the table's column union; cells
// missing from a row are written empty.
func WriteTables(dir string, tables map[string]*types.Table) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return &ExportError{
			Message: "failed to create output directory " + dir,
			Cause:   err,
		}
	}

	for name, table := range tables {
		path := filepath.Join(dir, name+".csv")
		if err := writeTable(path, table); err != nil {
			return err
		}
	}

	return nil
}

func writeTable(path string, table *types.Table) error {
	file, err := os.Create(path)
	if err != nil {
		return &ExportError{
			Message: "failed to create file " + path,
			Cause:   err,
		}
	}
	defer func() { _ = file.Close() }()

	writer := csv.NewWriter(file)
	columns := table.Columns()
	if len(columns) == 0 {
		// Nothing to write for an empty table; leave an empty file so the
		// output directory still lists every table.
		return nil
	}

	if err := writer.Write(columns); err != nil {
		return &ExportError{
			Message: "failed to write header for table " + table.Name,
			Cause:   err,
		}
	}

	record := make([]string, len(columns))
	for _, row := range table.Rows {
		for i, column := range columns {
			record[i] = formatCell(row[column])
		}
		if err := writer.Write(record); err != nil {
			return &ExportError{
				Message: "failed to write row for table " + table.Name,
				Cause:   err,
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return &ExportError{
			Message: "failed to flush table " + table.Name,
			Cause:   err,
		}
	}

	return nil
}

// formatCell renders a cell value for CSV output. Composite values (arrays,
// objects that survived flattening inside exploded rows) are JSON-encoded.
func formatCell(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(encoded)
	}
}
