package timeseries

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// CSVOptions holds options for column-layout CSV loading, where each row
// carries one observation.
type CSVOptions struct {
	ValueColumn string // Column name for values (default: last column)
	DateColumn  string // Column name for dates (optional)
	DateFormat  string // Date format (default: "2006-01-02")
	HasHeader   bool   // Whether CSV has header row (default: true)
	Delimiter   rune   // Field delimiter (default: ',')
	SkipRows    int    // Number of rows to skip at start
}

// DefaultCSVOptions returns default options for column-layout CSV loading.
func DefaultCSVOptions() *CSVOptions {
	return &CSVOptions{
		DateFormat: "2006-01-02",
		HasHeader:  true,
		Delimiter:  ',',
	}
}

// WideCSVOptions holds options for wide-layout CSV loading, where each row
// is one whole series and columns at ValueOffset and beyond hold the
// time-ordered observations. This is the layout used by cumulative
// daily-case exports: a few identifying columns followed by one column
// per day.
type WideCSVOptions struct {
	ValueOffset int    // Index of the first observation column (default: 4)
	KeyColumn   int    // Column used to select a row (default: 0)
	KeyValue    string // Row to select; empty selects the first data row
	DateFormat  string // Format of header date cells (default: "1/2/06")
	Delimiter   rune   // Field delimiter (default: ',')
}

// DefaultWideCSVOptions returns default options for wide-layout CSV loading.
func DefaultWideCSVOptions() *WideCSVOptions {
	return &WideCSVOptions{
		ValueOffset: 4,
		DateFormat:  "1/2/06",
		Delimiter:   ',',
	}
}

// LoadCSV loads a column-layout time series from a CSV file.
func LoadCSV(filename string, opts *CSVOptions) (*Series, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return LoadCSVFromReader(file, opts)
}

// LoadCSVFromReader loads a column-layout time series from an io.Reader.
func LoadCSVFromReader(r io.Reader, opts *CSVOptions) (*Series, error) {
	if opts == nil {
		opts = DefaultCSVOptions()
	}

	reader := csv.NewReader(r)
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	reader.TrimLeadingSpace = true

	for i := 0; i < opts.SkipRows; i++ {
		if _, err := reader.Read(); err != nil {
			return nil, err
		}
	}

	valueIdx, dateIdx := -1, -1
	if opts.HasHeader {
		header, err := reader.Read()
		if err != nil {
			return nil, err
		}
		for i, h := range header {
			h = strings.TrimSpace(strings.Trim(h, "\""))
			switch {
			case opts.ValueColumn != "" && h == opts.ValueColumn:
				valueIdx = i
			case opts.ValueColumn == "" && (h == "y" || h == "value" || h == "Value"):
				valueIdx = i
			case opts.DateColumn != "" && h == opts.DateColumn:
				dateIdx = i
			case h == "ds" || h == "date" || h == "Date":
				if dateIdx == -1 {
					dateIdx = i
				}
			}
		}
		if valueIdx == -1 {
			if opts.ValueColumn != "" {
				return nil, fmt.Errorf("value column %q not found in header", opts.ValueColumn)
			}
			// Default to last column
			valueIdx = len(header) - 1
		}
	} else {
		dateIdx = 0
		valueIdx = 1
	}

	var values []float64
	var timestamps []time.Time

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if valueIdx >= len(record) {
			continue
		}

		valStr := strings.TrimSpace(strings.Trim(record[valueIdx], "\""))
		if valStr == "" || valStr == "NA" || valStr == "NaN" || valStr == "null" {
			continue
		}
		val, err := strconv.ParseFloat(valStr, 64)
		if err != nil {
			continue // Skip invalid values
		}
		values = append(values, val)

		if dateIdx >= 0 && dateIdx < len(record) {
			dateStr := strings.TrimSpace(strings.Trim(record[dateIdx], "\""))
			if ts, err := time.Parse(opts.DateFormat, dateStr); err == nil {
				timestamps = append(timestamps, ts)
			}
		}
	}

	if len(values) == 0 {
		return nil, errors.New("no valid data found in CSV")
	}

	if len(timestamps) == len(values) {
		return &Series{
			Timestamps: timestamps,
			Values:     values,
			Name:       opts.ValueColumn,
		}, nil
	}
	return New(values), nil
}

// LoadCSVColumn loads a specific column from a CSV file as a series.
func LoadCSVColumn(filename string, column string) (*Series, error) {
	opts := DefaultCSVOptions()
	opts.ValueColumn = column
	return LoadCSV(filename, opts)
}

// LoadCSVWide loads a wide-layout time series from a CSV file.
func LoadCSVWide(filename string, opts *WideCSVOptions) (*Series, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return LoadCSVWideFromReader(file, opts)
}

// LoadCSVWideFromReader loads a wide-layout time series from an io.Reader.
// Observation cells that are blank or non-numeric are rejected: a gap in a
// cumulative count means the row is corrupt, not missing.
func LoadCSVWideFromReader(r io.Reader, opts *WideCSVOptions) (*Series, error) {
	if opts == nil {
		opts = DefaultWideCSVOptions()
	}
	if opts.ValueOffset < 0 {
		return nil, errors.New("value offset must be non-negative")
	}

	reader := csv.NewReader(r)
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, err
	}
	if opts.ValueOffset >= len(header) {
		return nil, fmt.Errorf("value offset %d is outside the %d-column header", opts.ValueOffset, len(header))
	}

	// Header cells past the offset are the observation dates.
	var timestamps []time.Time
	datesOK := true
	for _, cell := range header[opts.ValueOffset:] {
		ts, err := time.Parse(opts.DateFormat, strings.TrimSpace(cell))
		if err != nil {
			datesOK = false
			break
		}
		timestamps = append(timestamps, ts)
	}

	row, err := findWideRow(reader, opts)
	if err != nil {
		return nil, err
	}
	if opts.ValueOffset >= len(row) {
		return nil, errors.New("selected row has no observation columns")
	}

	values := make([]float64, 0, len(row)-opts.ValueOffset)
	for i, cell := range row[opts.ValueOffset:] {
		cell = strings.TrimSpace(cell)
		if cell == "" {
			return nil, fmt.Errorf("blank observation at column %d", opts.ValueOffset+i)
		}
		val, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, fmt.Errorf("non-numeric observation at column %d: %q", opts.ValueOffset+i, cell)
		}
		values = append(values, val)
	}
	if len(values) == 0 {
		return nil, errors.New("no observations found in row")
	}

	name := ""
	if opts.KeyColumn < len(row) {
		name = strings.TrimSpace(row[opts.KeyColumn])
	}

	if datesOK && len(timestamps) == len(values) {
		return &Series{Timestamps: timestamps, Values: values, Name: name}, nil
	}
	s := New(values)
	s.Name = name
	return s, nil
}

// findWideRow returns the first data row, or the row whose key column
// matches the configured key value.
func findWideRow(reader *csv.Reader, opts *WideCSVOptions) ([]string, error) {
	for {
		record, err := reader.Read()
		if err == io.EOF {
			if opts.KeyValue != "" {
				return nil, fmt.Errorf("no row with key %q found", opts.KeyValue)
			}
			return nil, errors.New("no data rows found in CSV")
		}
		if err != nil {
			return nil, err
		}
		if opts.KeyValue == "" {
			return record, nil
		}
		if opts.KeyColumn < len(record) &&
			strings.TrimSpace(record[opts.KeyColumn]) == opts.KeyValue {
			return record, nil
		}
	}
}

// SaveCSV saves a time series to a CSV file in column layout.
func SaveCSV(series *Series, filename string, includeIndex bool) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	defer writer.Flush()

	if includeIndex && len(series.Timestamps) == len(series.Values) {
		writer.WriteString("ds,y\n")
	} else if includeIndex {
		writer.WriteString("index,y\n")
	} else {
		writer.WriteString("y\n")
	}

	for i, v := range series.Values {
		if includeIndex {
			if len(series.Timestamps) == len(series.Values) {
				writer.WriteString(series.Timestamps[i].Format("2006-01-02"))
			} else {
				writer.WriteString(strconv.Itoa(i + 1))
			}
			writer.WriteString(",")
		}
		writer.WriteString(strconv.FormatFloat(v, 'f', -1, 64))
		writer.WriteString("\n")
	}

	return nil
}
