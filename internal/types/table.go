// Package types defines the tabular data model shared by the loader,
// normalizer, and exporter.
package types

import "sort"

// Table names produced by a normalization pass.
const (
	TableOrders           = "orders"
	TablePaymentDetails   = "payment_details"
	TableOrderlines       = "orderlines"
	TableShownAddons      = "shown_addons"
	TableSearchData       = "search_data"
	TableSearchOrders     = "search_orders"
	TableSearchParameters = "search_parameters"
)

// Row maps a column name to a cell value. A cell is a decoded JSON scalar
// (string, float64, bool), nil, or a composite value that survived
// flattening (e.g. an array inside an orderline).
type Row map[string]interface{}

// Table is a named, ordered sequence of rows. Rows are not required to
// share a column set; the table's column universe is the union of keys
// observed across rows.
type Table struct {
	Name string
	Rows []Row
}

// NewTable creates an empty table with the given name.
func NewTable(name string) *Table {
	return &Table{Name: name}
}

// Append adds a row at the end of the table.
func (t *Table) Append(row Row) {
	t.Rows = append(t.Rows, row)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Columns returns the union of column names across all rows. Columns are
// ordered by the row that first contributed them, alphabetically within a
// row, so the result is deterministic even though rows are maps. A row
// missing a column has a nil cell for it.
func (t *Table) Columns() []string {
	var cols []string
	seen := make(map[string]struct{})
	for _, row := range t.Rows {
		keys := make([]string, 0, len(row))
		for key := range row {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			if _, ok := seen[key]; !ok {
				seen[key] = struct{}{}
				cols = append(cols, key)
			}
		}
	}
	return cols
}
