package tabular

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"

	"playlitics/domain/games"
)

// WriteCSV writes a canonical table as CSV with one header row. Only the
// columns present in the table are written, so a reload through MapSchema
// reproduces the same table.
func WriteCSV(w io.Writer, t games.Table) error {
	writer := csv.NewWriter(w)

	header := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = string(c)
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	row := make([]string, len(t.Columns))
	for _, rec := range t.Records {
		for i, c := range t.Columns {
			row[i] = FormatCell(rec, c)
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteJSON writes a canonical table as a JSON array of records.
func WriteJSON(w io.Writer, t games.Table) error {
	rows := make([]map[string]interface{}, 0, len(t.Records))
	for _, rec := range t.Records {
		row := make(map[string]interface{}, len(t.Columns))
		for _, c := range t.Columns {
			row[string(c)] = jsonCell(rec, c)
		}
		rows = append(rows, row)
	}

	enc := json.NewEncoder(w)
	return enc.Encode(rows)
}

// FormatCell renders one record field as display text. Missing cells become empty
// strings, which the loader coerces back to missing.
func FormatCell(rec games.Record, c games.Column) string {
	switch c {
	case games.ColGameID:
		if rec.GameID == 0 {
			return ""
		}
		return strconv.Itoa(rec.GameID)
	case games.ColReleaseYear:
		if rec.ReleaseYear == 0 {
			return ""
		}
		return strconv.Itoa(rec.ReleaseYear)
	case games.ColIsMultiplayer:
		return strconv.FormatBool(rec.IsMultiplayer)
	}
	if c.IsNumeric() {
		v, ok := rec.Numeric(c)
		if !ok {
			return ""
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	v, _ := rec.Category(c)
	return v
}

// jsonCell renders one record field for JSON, mapping missing cells to null.
func jsonCell(rec games.Record, c games.Column) interface{} {
	switch c {
	case games.ColGameID:
		if rec.GameID == 0 {
			return nil
		}
		return rec.GameID
	case games.ColReleaseYear:
		if rec.ReleaseYear == 0 {
			return nil
		}
		return rec.ReleaseYear
	case games.ColIsMultiplayer:
		return rec.IsMultiplayer
	}
	if c.IsNumeric() {
		v, ok := rec.Numeric(c)
		if !ok || math.IsNaN(v) {
			return nil
		}
		return v
	}
	v, ok := rec.Category(c)
	if !ok {
		return nil
	}
	return v
}
