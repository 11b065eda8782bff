package tabular

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"playlitics/adapters/synthetic"
	"playlitics/domain/games"
)

func TestWriteCSV_RoundTrip(t *testing.T) {
	cfg := synthetic.DefaultGeneratorConfig().WithSeed(42)
	cfg.Rows = 50
	original, err := synthetic.NewGenerator(cfg).Generate()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, original))

	reloaded, err := LoadTable("export.csv", buf.Bytes())
	require.NoError(t, err)

	assert.Equal(t, original.Columns, reloaded.Columns)
	require.Equal(t, original.Len(), reloaded.Len())
	for i := range original.Records {
		assert.Equal(t, original.Records[i], reloaded.Records[i], "record %d", i)
	}
}

func TestWriteCSV_PartialColumns(t *testing.T) {
	table, err := loadCSV(t, "genre,price\nAction,19.99\n")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, table))

	assert.Equal(t, "genre,price\nAction,19.99\n", buf.String())
}

func TestWriteCSV_MissingCellsExportEmpty(t *testing.T) {
	table, err := loadCSV(t, "genre,price\nAction,\n")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, table))
	assert.Equal(t, "genre,price\nAction,\n", buf.String())

	// A second round trip keeps the cell missing
	reloaded, err := LoadTable("again.csv", buf.Bytes())
	require.NoError(t, err)
	_, ok := reloaded.Records[0].Numeric(games.ColPrice)
	assert.False(t, ok)
}

func TestWriteJSON_MissingCellsAreNull(t *testing.T) {
	table, err := loadCSV(t, "genre,price\nAction,\nRPG,59.99\n")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, table))

	var rows []map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rows))
	require.Len(t, rows, 2)

	assert.Equal(t, "Action", rows[0]["genre"])
	assert.Nil(t, rows[0]["price"])
	assert.Equal(t, 59.99, rows[1]["price"])
}
