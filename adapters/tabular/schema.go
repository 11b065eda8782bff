package tabular

import (
	"math"
	"strings"

	"playlitics/domain/core"
	"playlitics/domain/games"
)

// columnAliases maps common foreign header names onto the canonical schema.
// Headers are compared lower-cased and trimmed; a header that already equals
// a canonical column name always maps to itself.
var columnAliases = map[string]games.Column{
	"metacritic":  games.ColMetascore,
	"userscore":   games.ColUserScore,
	"user score":  games.ColUserScore,
	"hours":       games.ColHoursPlayed,
	"owners":      games.ColOwnersMillions,
	"multiplayer": games.ColIsMultiplayer,
	"year":        games.ColReleaseYear,
	"name":        games.ColTitle,
	"id":          games.ColGameID,
}

// CanonicalColumn resolves a raw header to its canonical column.
func CanonicalColumn(header string) (games.Column, bool) {
	key := strings.ToLower(strings.TrimSpace(header))
	for _, c := range games.CanonicalColumns {
		if key == string(c) {
			return c, true
		}
	}
	if c, ok := columnAliases[key]; ok {
		return c, true
	}
	return "", false
}

// SchemaMapper normalizes a RawTable onto the canonical games schema
type SchemaMapper struct {
	coercer *CellCoercer
}

// NewSchemaMapper creates a mapper with the default coercion policy
func NewSchemaMapper() *SchemaMapper {
	return &SchemaMapper{coercer: NewCellCoercer(DefaultCoercionConfig())}
}

// NewSchemaMapperWithConfig creates a mapper with an explicit coercion policy
func NewSchemaMapperWithConfig(config CoercionConfig) *SchemaMapper {
	return &SchemaMapper{coercer: NewCellCoercer(config)}
}

// MapSchema converts a raw table into a canonical games table.
//
// Known header aliases are renamed, unmapped extra columns are dropped
// silently, and absent canonical columns stay absent (the table records
// which columns survived). When no canonical column can be recognized at
// all the data cannot be about games and core.ErrSchemaUnrecognized is
// returned. When two headers map to the same canonical column the first
// one wins.
func (m *SchemaMapper) MapSchema(raw *RawTable) (games.Table, error) {
	if raw == nil || len(raw.Headers) == 0 {
		return games.Table{}, core.NewSchemaError(nil)
	}

	headerFor := make(map[games.Column]string, len(raw.Headers))
	for _, header := range raw.Headers {
		col, ok := CanonicalColumn(header)
		if !ok {
			continue // unrecognized extra column, dropped
		}
		if _, taken := headerFor[col]; !taken {
			headerFor[col] = header
		}
	}
	if len(headerFor) == 0 {
		return games.Table{}, core.NewSchemaError(raw.Headers)
	}

	columns := make([]games.Column, 0, len(headerFor))
	for col := range headerFor {
		columns = append(columns, col)
	}

	records := make([]games.Record, 0, len(raw.Rows))
	for _, row := range raw.Rows {
		records = append(records, m.mapRow(row, headerFor))
	}

	return games.NewTable(records, columns), nil
}

func (m *SchemaMapper) mapRow(row RawRow, headerFor map[games.Column]string) games.Record {
	cell := func(col games.Column) (string, bool) {
		header, ok := headerFor[col]
		if !ok {
			return "", false
		}
		return row[header], true
	}

	// Absent numeric columns read as missing even if a caller skips the
	// Table.Has check.
	rec := games.Record{
		Price:          math.NaN(),
		Metascore:      math.NaN(),
		UserScore:      math.NaN(),
		HoursPlayed:    math.NaN(),
		OwnersMillions: math.NaN(),
	}
	if v, ok := cell(games.ColGameID); ok {
		rec.GameID = m.coercer.Int(v)
	}
	if v, ok := cell(games.ColTitle); ok {
		rec.Title = strings.TrimSpace(v)
	}
	if v, ok := cell(games.ColGenre); ok {
		rec.Genre = strings.TrimSpace(v)
	}
	if v, ok := cell(games.ColPlatform); ok {
		rec.Platform = strings.TrimSpace(v)
	}
	if v, ok := cell(games.ColReleaseYear); ok {
		rec.ReleaseYear = m.coercer.Year(v)
	}
	if v, ok := cell(games.ColPrice); ok {
		rec.Price = m.coercer.Numeric(games.ColPrice, v)
	}
	if v, ok := cell(games.ColMetascore); ok {
		rec.Metascore = m.coercer.Numeric(games.ColMetascore, v)
	}
	if v, ok := cell(games.ColUserScore); ok {
		rec.UserScore = m.coercer.Numeric(games.ColUserScore, v)
	}
	if v, ok := cell(games.ColHoursPlayed); ok {
		rec.HoursPlayed = m.coercer.Numeric(games.ColHoursPlayed, v)
	}
	if v, ok := cell(games.ColOwnersMillions); ok {
		rec.OwnersMillions = m.coercer.Numeric(games.ColOwnersMillions, v)
	}
	if v, ok := cell(games.ColIsMultiplayer); ok {
		rec.IsMultiplayer = m.coercer.Bool(v)
	}
	return rec
}

// LoadTable is the one-call path from an uploaded file to a canonical table.
func LoadTable(filename string, data []byte) (games.Table, error) {
	raw, err := ReadUpload(filename, data)
	if err != nil {
		return games.Table{}, err
	}
	return NewSchemaMapper().MapSchema(raw)
}
