package normalize

import (
	"testing"

	"github.com/jonathan/order-normalizer/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestFlattenRecord_NestedObjects(t *testing.T) {
	row := FlattenRecord(map[string]interface{}{
		"order_id": "A1",
		"customer": map[string]interface{}{
			"address": map[string]interface{}{
				"city": "Oslo",
			},
			"name": "Kim",
		},
	})

	assert.Equal(t, types.Row{
		"order_id":              "A1",
		"customer.address.city": "Oslo",
		"customer.name":         "Kim",
	}, row)
}

func TestFlattenRecord_ArraysAreKeptAsCells(t *testing.T) {
	row := FlattenRecord(map[string]interface{}{
		"tags": []interface{}{"a", "b"},
	})

	assert.Equal(t, []interface{}{"a", "b"}, row["tags"])
}

func TestFlattenRecord_EmptyNestedObjectContributesNoColumns(t *testing.T) {
	row := FlattenRecord(map[string]interface{}{
		"order_id": "A1",
		"empty":    map[string]interface{}{},
	})

	assert.Equal(t, types.Row{"order_id": "A1"}, row)
}

func TestFlattenRecord_NilValuesPreserved(t *testing.T) {
	row := FlattenRecord(map[string]interface{}{
		"order_id": nil,
	})

	assert.Contains(t, row, "order_id")
	assert.Nil(t, row["order_id"])
}
