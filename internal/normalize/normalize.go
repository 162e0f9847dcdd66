// Package normalize decomposes loaded order records into seven flat
// relational tables linked by order identifier.
package normalize

import (
	"sort"
	"strings"

	"github.com/jonathan/order-normalizer/internal/types"
)

// nestedKeys are the order substructures relocated to dedicated tables.
// Columns flattened from them never appear in the orders table.
var nestedKeys = []string{"payment_details", "orderlines", "shown_addons", "search_data"}

// ExtractTables runs one normalization pass over the loaded records and
// returns the seven output tables, keyed by table name. Records lacking an
// object-valued "_source" contribute nothing. The pass never fails: a
// missing or wrong-typed substructure degrades to zero rows (or a row with
// fewer fields), never to an error.
func ExtractTables(records []map[string]interface{}) map[string]*types.Table {
	orders := sourceOrders(records)

	// Drop meta_click_info before any table is built so that neither the
	// flattened orders table nor the search_data table sees it.
	for _, order := range orders {
		sanitizeSearchData(order)
	}

	return map[string]*types.Table{
		types.TableOrders:           buildOrders(orders),
		types.TablePaymentDetails:   buildPaymentDetails(orders),
		types.TableOrderlines:       buildOrderlines(orders),
		types.TableShownAddons:      buildShownAddons(orders),
		types.TableSearchData:       buildSearchData(orders),
		types.TableSearchOrders:     buildSearchOrders(orders),
		types.TableSearchParameters: buildSearchParameters(orders),
	}
}

// sourceOrders extracts the "_source" payload object from each record.
func sourceOrders(records []map[string]interface{}) []map[string]interface{} {
	var orders []map[string]interface{}
	for _, record := range records {
		if source, ok := record["_source"].(map[string]interface{}); ok {
			orders = append(orders, source)
		}
	}
	return orders
}

// sanitizeSearchData removes the known-noisy meta_click_info field in place.
func sanitizeSearchData(order map[string]interface{}) {
	if searchData, ok := order["search_data"].(map[string]interface{}); ok {
		delete(searchData, "meta_click_info")
	}
}

// buildOrders flattens each order to dot-joined columns, then drops every
// column that came from one of the extracted substructures. A scalar field
// literally named e.g. "payment_details" flattens to that exact column name
// and is kept; only dotted children are dropped.
func buildOrders(orders []map[string]interface{}) *types.Table {
	table := types.NewTable(types.TableOrders)
	for _, order := range orders {
		row := FlattenRecord(order)
		for column := range row {
			if hasNestedPrefix(column) {
				delete(row, column)
			}
		}
		table.Append(row)
	}
	return table
}

func hasNestedPrefix(column string) bool {
	for _, key := range nestedKeys {
		if strings.HasPrefix(column, key+".") {
			return true
		}
	}
	return false
}

// buildPaymentDetails emits exactly one row per order, with the payment
// fields merged in when payment_details is an object.
func buildPaymentDetails(orders []map[string]interface{}) *types.Table {
	table := types.NewTable(types.TablePaymentDetails)
	for _, order := range orders {
		row := types.Row{"order_id": order["order_id"]}
		if details, ok := order["payment_details"].(map[string]interface{}); ok {
			mergeInto(row, details)
		}
		table.Append(row)
	}
	return table
}

// buildOrderlines explodes the orderlines object into one row per line
// item, keyed by orderline_type. Orders without an object-valued
// orderlines contribute zero rows.
func buildOrderlines(orders []map[string]interface{}) *types.Table {
	table := types.NewTable(types.TableOrderlines)
	for _, order := range orders {
		lines, ok := order["orderlines"].(map[string]interface{})
		if !ok {
			continue
		}
		for _, lineType := range sortedKeys(lines) {
			row := types.Row{
				"order_id":       order["order_id"],
				"orderline_type": lineType,
			}
			if fields, ok := lines[lineType].(map[string]interface{}); ok {
				mergeInto(row, fields)
			}
			table.Append(row)
		}
	}
	return table
}

// buildShownAddons emits one row per order that carries an object-valued
// shown_addons. Unlike payment_details there is no unconditional row.
func buildShownAddons(orders []map[string]interface{}) *types.Table {
	table := types.NewTable(types.TableShownAddons)
	for _, order := range orders {
		addons, ok := order["shown_addons"].(map[string]interface{})
		if !ok {
			continue
		}
		row := types.Row{"order_id": order["order_id"]}
		mergeInto(row, addons)
		table.Append(row)
	}
	return table
}

// buildSearchData emits the non-nested parts of search_data, one row per
// order with an object-valued search_data.
func buildSearchData(orders []map[string]interface{}) *types.Table {
	table := types.NewTable(types.TableSearchData)
	for _, order := range orders {
		searchData, ok := order["search_data"].(map[string]interface{})
		if !ok {
			continue
		}
		row := make(types.Row, len(searchData)+1)
		mergeInto(row, searchData)
		delete(row, "orders")
		delete(row, "search_parameters")
		row["parent_order_id"] = order["order_id"]
		table.Append(row)
	}
	return table
}

// buildSearchOrders explodes search_data.orders into one row per nested
// search order, keyed by search_order_key.
func buildSearchOrders(orders []map[string]interface{}) *types.Table {
	table := types.NewTable(types.TableSearchOrders)
	for _, order := range orders {
		searchData, _ := order["search_data"].(map[string]interface{})
		searchOrders, ok := searchData["orders"].(map[string]interface{})
		if !ok {
			continue
		}
		for _, key := range sortedKeys(searchOrders) {
			row := types.Row{
				"parent_order_id":  order["order_id"],
				"search_order_key": key,
			}
			if fields, ok := searchOrders[key].(map[string]interface{}); ok {
				mergeInto(row, fields)
			}
			table.Append(row)
		}
	}
	return table
}

// buildSearchParameters emits one row per order whose
// search_data.search_parameters is a non-empty object.
func buildSearchParameters(orders []map[string]interface{}) *types.Table {
	table := types.NewTable(types.TableSearchParameters)
	for _, order := range orders {
		searchData, _ := order["search_data"].(map[string]interface{})
		params, ok := searchData["search_parameters"].(map[string]interface{})
		if !ok || len(params) == 0 {
			continue
		}
		row := make(types.Row, len(params)+1)
		mergeInto(row, params)
		row["parent_order_id"] = order["order_id"]
		table.Append(row)
	}
	return table
}

func mergeInto(row types.Row, fields map[string]interface{}) {
	for key, value := range fields {
		row[key] = value
	}
}

// sortedKeys gives exploded rows a stable order; Go maps do not preserve
// the key order of the source JSON.
func sortedKeys(obj map[string]interface{}) []string {
	keys := make([]string, 0, len(obj))
	for key := range obj {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
