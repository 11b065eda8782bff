package tabular

// RawRow represents a row of raw tabular data as string key-value pairs
type RawRow map[string]string

// RawTable represents an uploaded dataset before schema mapping
type RawTable struct {
	Headers []string // Column headers as found in the source
	Rows    []RawRow // Data rows keyed by header
}
