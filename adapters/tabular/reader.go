package tabular

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"playlitics/domain/core"

	"github.com/xuri/excelize/v2"
)

// DataReader handles reading CSV and Excel files into a RawTable
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// NewDataReader creates a new data reader that handles both CSV and Excel files
func NewDataReader(filePath string) *DataReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "csv"
	if ext == ".xlsx" || ext == ".xls" {
		fileType = "xlsx"
	}
	return &DataReader{filePath: filePath, fileType: fileType}
}

// ReadData reads the file into a raw header + string-cell table
func (r *DataReader) ReadData() (*RawTable, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
	}

	f, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s file: %w", r.fileType, err)
	}
	defer f.Close()

	switch r.fileType {
	case "csv":
		return ReadCSV(f)
	case "xlsx":
		return ReadXLSX(f)
	default:
		return nil, fmt.Errorf("%w: %s", core.ErrUnsupportedFormat, r.fileType)
	}
}

// ReadUpload reads an uploaded file's bytes, choosing the parser from the
// original filename's extension.
func ReadUpload(filename string, data []byte) (*RawTable, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".xlsx", ".xls":
		return ReadXLSX(bytes.NewReader(data))
	case ".csv", "":
		return ReadCSV(bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("%w: %s", core.ErrUnsupportedFormat, ext)
	}
}

// ReadCSV reads CSV data into a RawTable
func ReadCSV(r io.Reader) (*RawTable, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // tolerate ragged rows
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV data: %w", err)
	}
	if len(rows) < 2 {
		return nil, core.ErrEmptyFile
	}
	return processRows(rows), nil
}

// ReadXLSX reads the first sheet of an Excel workbook into a RawTable
func ReadXLSX(r io.Reader) (*RawTable, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel data: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, core.ErrEmptyFile
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(rows) < 2 {
		return nil, core.ErrEmptyFile
	}
	return processRows(rows), nil
}

// processRows converts raw string rows into RawTable format
func processRows(rows [][]string) *RawTable {
	headerRow := rows[0]
	headers := make([]string, len(headerRow))
	for i, header := range headerRow {
		headers[i] = strings.TrimSpace(header)
	}

	var dataRows []RawRow
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		rowData := make(RawRow)
		for j, cell := range row {
			if j < len(headers) {
				rowData[headers[j]] = strings.TrimSpace(cell)
			}
		}
		dataRows = append(dataRows, rowData)
	}

	return &RawTable{Headers: headers, Rows: dataRows}
}
