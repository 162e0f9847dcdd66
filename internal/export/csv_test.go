package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonathan/order-normalizer/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	if len(content) == 0 {
		return nil
	}
	records, err := csv.NewReader(strings.NewReader(string(content))).ReadAll()
	require.NoError(t, err)
	return records
}

func TestWriteTables_WritesOneFilePerTable(t *testing.T) {
	orders := types.NewTable(types.TableOrders)
	orders.Append(types.Row{"order_id": "A1", "region": "EU"})
	orders.Append(types.Row{"order_id": "A2"})

	addons := types.NewTable(types.TableShownAddons)

	dir := filepath.Join(t.TempDir(), "tables")
	err := WriteTables(dir, map[string]*types.Table{
		types.TableOrders:      orders,
		types.TableShownAddons: addons,
	})
	require.NoError(t, err)

	records := readCSV(t, filepath.Join(dir, "orders.csv"))
	require.Len(t, records, 3)
	assert.Equal(t, []string{"order_id", "region"}, records[0])
	assert.Equal(t, []string{"A1", "EU"}, records[1])
	// Missing cells are written empty
	assert.Equal(t, []string{"A2", ""}, records[2])

	// Empty tables still produce a file, with no content
	assert.Empty(t, readCSV(t, filepath.Join(dir, "shown_addons.csv")))
}

func TestWriteTables_CreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "tables")
	err := WriteTables(dir, map[string]*types.Table{})
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestWriteTables_UnwritableDir(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	err := WriteTables(file, map[string]*types.Table{})
	require.Error(t, err)

	exportErr, ok := err.(*ExportError)
	require.True(t, ok, "error should be ExportError type")
	assert.Contains(t, exportErr.Error(), "failed to create output directory")
}

func TestFormatCell_ScalarRendering(t *testing.T) {
	assert.Equal(t, "", formatCell(nil))
	assert.Equal(t, "shoes", formatCell("shoes"))
	assert.Equal(t, "true", formatCell(true))
	assert.Equal(t, "42", formatCell(float64(42)))
	assert.Equal(t, "1.5", formatCell(1.5))
}

func TestFormatCell_CompositeValuesAreJSONEncoded(t *testing.T) {
	assert.Equal(t, `["a","b"]`, formatCell([]interface{}{"a", "b"}))
	assert.Equal(t, `{"k":1}`, formatCell(map[string]interface{}{"k": float64(1)}))
}
