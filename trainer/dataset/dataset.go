/*
 *     Copyright 2026 The Mltrack Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package dataset

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
	"golang.org/x/exp/slices"
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/mltrack/mltrack/internal/mterrors"
)

// ColumnKind is the kind of a feature column.
type ColumnKind int

const (
	// Numeric columns hold floats.
	Numeric ColumnKind = iota

	// Categorical columns hold free-form strings.
	Categorical
)

// String returns the name of kind.
func (k ColumnKind) String() string {
	if k == Numeric {
		return "numeric"
	}

	return "categorical"
}

// MissingMarkers are the cell values treated as missing.
var MissingMarkers = []string{"", "NA", "N/A", "NaN", "nan", "null", "NULL", "None"}

// IsMissing reports whether a cell holds a missing value.
func IsMissing(cell string) bool {
	return slices.Contains(MissingMarkers, strings.TrimSpace(cell))
}

// Column is a named feature column with its raw cells.
type Column struct {
	Name  string
	Kind  ColumnKind
	Cells []string
}

// Float returns the numeric value of row and whether it is present.
func (c *Column) Float(row int) (float64, bool) {
	cell := c.Cells[row]
	if IsMissing(cell) {
		return 0, false
	}

	f, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil {
		return 0, false
	}

	return f, true
}

// Table is a feature table with its label column.
type Table struct {
	Path        string
	LabelColumn string
	Columns     []*Column
	Labels      []string
}

// Rows returns the number of rows.
func (t *Table) Rows() int {
	return len(t.Labels)
}

// Classes returns the distinct labels sorted.
func (t *Table) Classes() []string {
	return sets.NewString(t.Labels...).List()
}

// Subset returns a table holding the given rows in order. Column kinds are kept.
func (t *Table) Subset(rows []int) *Table {
	sub := &Table{
		Path:        t.Path,
		LabelColumn: t.LabelColumn,
		Columns:     make([]*Column, len(t.Columns)),
		Labels:      make([]string, len(rows)),
	}

	for i, c := range t.Columns {
		cells := make([]string, len(rows))
		for j, r := range rows {
			cells[j] = c.Cells[r]
		}
		sub.Columns[i] = &Column{Name: c.Name, Kind: c.Kind, Cells: cells}
	}

	for j, r := range rows {
		sub.Labels[j] = t.Labels[r]
	}

	return sub
}

// Load reads the csv file at path and separates the label column.
func Load(path, labelColumn string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, mterrors.NewDataError(path, err, "open dataset")
	}
	defer f.Close()

	return Read(f, path, labelColumn)
}

// Read reads a csv table from r, path is only used in errors.
func Read(r io.Reader, path, labelColumn string) (*Table, error) {
	records, err := gocsv.DefaultCSVReader(r).ReadAll()
	if err != nil {
		return nil, mterrors.NewDataError(path, err, "parse csv")
	}

	if len(records) == 0 {
		return nil, mterrors.NewDataError(path, mterrors.ErrEmptyDataset, "no header")
	}

	header := records[0]
	labelIndex := -1
	for i, name := range header {
		if strings.TrimSpace(name) == labelColumn {
			labelIndex = i
			break
		}
	}

	if labelIndex < 0 {
		return nil, mterrors.NewDataError(path, mterrors.ErrLabelColumnNotFound, "label column %q", labelColumn)
	}

	t := &Table{
		Path:        path,
		LabelColumn: labelColumn,
		Labels:      make([]string, 0, len(records)-1),
	}

	var columns []*Column
	for i, name := range header {
		if i == labelIndex {
			continue
		}
		columns = append(columns, &Column{Name: strings.TrimSpace(name), Cells: make([]string, 0, len(records)-1)})
	}

	for n, record := range records[1:] {
		label := strings.TrimSpace(record[labelIndex])
		if IsMissing(label) {
			return nil, mterrors.NewDataError(path, nil, "missing label at row %d", n+1)
		}
		t.Labels = append(t.Labels, label)

		j := 0
		for i, cell := range record {
			if i == labelIndex {
				continue
			}
			columns[j].Cells = append(columns[j].Cells, cell)
			j++
		}
	}

	for _, c := range columns {
		c.Kind = inferKind(c.Cells)
	}
	t.Columns = columns

	return t, nil
}

// inferKind returns Numeric when every present cell parses as float.
func inferKind(cells []string) ColumnKind {
	for _, cell := range cells {
		if IsMissing(cell) {
			continue
		}

		if _, err := strconv.ParseFloat(strings.TrimSpace(cell), 64); err != nil {
			return Categorical
		}
	}

	return Numeric
}

// String returns a short description of the table.
func (t *Table) String() string {
	var numeric, categorical int
	for _, c := range t.Columns {
		if c.Kind == Numeric {
			numeric++
		} else {
			categorical++
		}
	}

	return fmt.Sprintf("%d rows, %d numeric and %d categorical features, %d classes",
		t.Rows(), numeric, categorical, len(t.Classes()))
}
