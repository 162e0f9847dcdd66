package normalize

import "github.com/jonathan/order-normalizer/internal/types"

// FlattenRecord converts a nested object into a flat row whose column names
// are dot-joined paths, e.g. order["a"]["b"]["c"] becomes column "a.b.c".
// Only nested objects are descended into; arrays and scalars are kept as
// cell values under their current path. An empty nested object contributes
// no columns.
func FlattenRecord(obj map[string]interface{}) types.Row {
	row := make(types.Row, len(obj))
	flattenInto(row, "", obj)
	return row
}

func flattenInto(row types.Row, prefix string, obj map[string]interface{}) {
	for key, value := range obj {
		name := key
		if prefix != "" {
			name = prefix + "." + key
		}
		if nested, ok := value.(map[string]interface{}); ok {
			flattenInto(row, name, nested)
			continue
		}
		row[name] = value
	}
}
