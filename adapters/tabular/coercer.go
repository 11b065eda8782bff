package tabular

import (
	"math"
	"strconv"
	"strings"

	"playlitics/domain/games"
)

// CoercionConfig defines the cell coercion rules. The policy is fixed and
// documented: a cell that cannot be parsed becomes missing, a parsed value
// outside the column's documented range is clamped to that range, and a bad
// cell never causes its row to be dropped.
type CoercionConfig struct {
	ClampScores    bool `json:"clamp_scores"`    // Clamp metascore/user_score into their documented ranges
	ClampNegatives bool `json:"clamp_negatives"` // Raise negative price/hours/owners to zero
}

// DefaultCoercionConfig returns the documented default policy
func DefaultCoercionConfig() CoercionConfig {
	return CoercionConfig{
		ClampScores:    true,
		ClampNegatives: true,
	}
}

// CellCoercer converts raw string cells into typed record fields
type CellCoercer struct {
	config CoercionConfig
}

// NewCellCoercer creates a coercer with the given config
func NewCellCoercer(config CoercionConfig) *CellCoercer {
	return &CellCoercer{config: config}
}

// Numeric parses a numeric cell for the given column. Missing or
// unparsable cells yield NaN; out-of-range values are clamped.
func (c *CellCoercer) Numeric(col games.Column, raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return math.NaN()
	}
	// Tolerate currency prefixes and thousands separators
	raw = strings.TrimPrefix(raw, "$")
	raw = strings.ReplaceAll(raw, ",", "")

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return math.NaN()
	}
	return c.clampNumeric(col, v)
}

// Year parses a release-year cell. Zero marks a missing year.
func (c *CellCoercer) Year(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	year := int(v)
	if year < 0 {
		return 0
	}
	return year
}

// Int parses an integer identifier cell. Zero marks a missing value.
func (c *CellCoercer) Int(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return int(v)
}

// Bool parses a boolean cell, accepting the usual spellings.
// Unrecognized values fall back to false.
func (c *CellCoercer) Bool(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "t", "1", "yes", "y":
		return true
	}
	return false
}

func (c *CellCoercer) clampNumeric(col games.Column, v float64) float64 {
	if c.config.ClampScores {
		switch col {
		case games.ColMetascore:
			return clamp(v, 0, 100)
		case games.ColUserScore:
			return clamp(v, 0, 10)
		}
	}
	if c.config.ClampNegatives && v < 0 {
		switch col {
		case games.ColPrice, games.ColHoursPlayed, games.ColOwnersMillions:
			return 0
		}
	}
	return v
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
