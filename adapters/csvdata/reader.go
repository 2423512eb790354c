package csvdata

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"tradenet/domain/core"
)

// Table is one delimited reference file, fully read into memory.
type Table struct {
	Name    string
	Headers []string
	Rows    [][]string

	index map[string]int
}

// ReadTable reads a CSV file and verifies the required columns exist. Any
// failure here is a DataLoadError: the caller must treat it as fatal since
// the application must not start on partial reference data.
func ReadTable(path string, required ...string) (*Table, error) {
	name := filepath.Base(path)

	f, err := os.Open(path)
	if err != nil {
		return nil, core.NewDataLoadError(name, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, core.NewDataLoadError(name, err)
	}
	if len(records) == 0 {
		return nil, core.NewDataLoadError(name, fmt.Errorf("file is empty"))
	}

	t := &Table{
		Name:    name,
		Headers: records[0],
		Rows:    records[1:],
		index:   make(map[string]int, len(records[0])),
	}
	for i, h := range t.Headers {
		t.index[strings.TrimSpace(h)] = i
	}

	for _, col := range required {
		if _, ok := t.index[col]; !ok {
			return nil, core.NewMissingColumnError(name, col)
		}
	}
	return t, nil
}

// Value returns a cell by column name.
func (t *Table) Value(row []string, col string) string {
	i, ok := t.index[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// Float parses a cell as float64.
func (t *Table) Float(row []string, col string) (float64, error) {
	raw := t.Value(row, col)
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, core.NewDataLoadError(t.Name, fmt.Errorf("column %s: bad float %q", col, raw))
	}
	return v, nil
}

// Int parses a cell as int. Rank columns are sometimes serialized as
// floats ("3.0") by the offline pipeline, so that form is accepted too.
func (t *Table) Int(row []string, col string) (int, error) {
	raw := t.Value(row, col)
	if v, err := strconv.Atoi(raw); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, core.NewDataLoadError(t.Name, fmt.Errorf("column %s: bad int %q", col, raw))
	}
	return int(f), nil
}
