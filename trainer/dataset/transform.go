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
	"errors"
	"fmt"

	"github.com/montanaflynn/stats"
	"github.com/sjwhitworth/golearn/base"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/mltrack/mltrack/internal/mterrors"
)

// categorySeparator joins a categorical column and its value into an indicator feature name.
const categorySeparator = "="

// NumericFeature is a fitted numeric column, imputed by median then standardized.
type NumericFeature struct {
	Name   string  `json:"name"`
	Median float64 `json:"median"`
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
}

// CategoricalFeature is a fitted categorical column, imputed by mode then one-hot encoded.
type CategoricalFeature struct {
	Name       string   `json:"name"`
	Mode       string   `json:"mode"`
	Categories []string `json:"categories"`
}

// ColumnTransformer turns a table into a float grid the classifier consumes.
type ColumnTransformer struct {
	LabelColumn string               `json:"label_column"`
	Numeric     []NumericFeature     `json:"numeric"`
	Categorical []CategoricalFeature `json:"categorical"`
	Classes     []string             `json:"classes"`
	Fitted      bool                 `json:"fitted"`
}

// NewColumnTransformer returns an unfitted transformer.
func NewColumnTransformer() *ColumnTransformer {
	return &ColumnTransformer{}
}

// Fit learns imputation, scaling and encoding parameters from t.
func (ct *ColumnTransformer) Fit(t *Table) error {
	if t.Rows() == 0 {
		return mterrors.NewDataError(t.Path, mterrors.ErrEmptyDataset, "fit transform")
	}

	ct.LabelColumn = t.LabelColumn
	ct.Numeric = nil
	ct.Categorical = nil
	for _, c := range t.Columns {
		if c.Kind == Numeric {
			ct.Numeric = append(ct.Numeric, fitNumeric(c))
			continue
		}

		ct.Categorical = append(ct.Categorical, fitCategorical(c))
	}

	ct.Classes = t.Classes()
	ct.Fitted = true
	return nil
}

func fitNumeric(c *Column) NumericFeature {
	present := make(stats.Float64Data, 0, len(c.Cells))
	for i := range c.Cells {
		if f, ok := c.Float(i); ok {
			present = append(present, f)
		}
	}

	f := NumericFeature{Name: c.Name, Std: 1}
	if len(present) == 0 {
		return f
	}

	f.Median, _ = stats.Median(present) // nolint: errcheck

	imputed := make(stats.Float64Data, len(c.Cells))
	for i := range c.Cells {
		v, ok := c.Float(i)
		if !ok {
			v = f.Median
		}
		imputed[i] = v
	}

	f.Mean, _ = stats.Mean(imputed)                      // nolint: errcheck
	std, _ := stats.StandardDeviationPopulation(imputed) // nolint: errcheck
	if std > 0 {
		f.Std = std
	}

	return f
}

func fitCategorical(c *Column) CategoricalFeature {
	counts := make(map[string]int)
	for _, cell := range c.Cells {
		if IsMissing(cell) {
			continue
		}
		counts[cell]++
	}

	f := CategoricalFeature{Name: c.Name}
	for value, n := range counts {
		if n > counts[f.Mode] || (n == counts[f.Mode] && value < f.Mode) {
			f.Mode = value
		}
	}

	// Imputed cells take the mode, so it is a category even when every cell is missing.
	if _, ok := counts[f.Mode]; !ok {
		counts[f.Mode] = 0
	}

	f.Categories = maps.Keys(counts)
	slices.Sort(f.Categories)
	return f
}

// FeatureNames returns the output feature names, numeric columns first.
func (ct *ColumnTransformer) FeatureNames() []string {
	var names []string
	for _, f := range ct.Numeric {
		names = append(names, f.Name)
	}

	for _, f := range ct.Categorical {
		for _, value := range f.Categories {
			names = append(names, f.Name+categorySeparator+value)
		}
	}

	return names
}

// Transform applies the fitted parameters to t. Categories unseen during fit
// produce all-zero indicators.
func (ct *ColumnTransformer) Transform(t *Table) (base.FixedDataGrid, error) {
	if !ct.Fitted {
		return nil, errors.New("transform is not fitted")
	}

	columns := make(map[string]*Column, len(t.Columns))
	for _, c := range t.Columns {
		columns[c.Name] = c
	}

	inst := base.NewDenseInstances()
	names := ct.FeatureNames()
	specs := make([]base.AttributeSpec, len(names))
	for i, name := range names {
		specs[i] = inst.AddAttribute(base.NewFloatAttribute(name))
	}

	classAttr := base.NewCategoricalAttribute()
	classAttr.SetName(ct.LabelColumn)
	for _, class := range ct.Classes {
		classAttr.GetSysValFromString(class)
	}
	classSpec := inst.AddAttribute(classAttr)
	if err := inst.AddClassAttribute(classAttr); err != nil {
		return nil, err
	}

	rows := t.Rows()
	if err := inst.Extend(rows); err != nil {
		return nil, err
	}

	k := 0
	for _, f := range ct.Numeric {
		c, ok := columns[f.Name]
		if !ok {
			return nil, mterrors.NewDataError(t.Path, nil, "missing feature column %q", f.Name)
		}

		for row := 0; row < rows; row++ {
			v, ok := c.Float(row)
			if !ok {
				v = f.Median
			}
			inst.Set(specs[k], row, base.PackFloatToBytes((v-f.Mean)/f.Std))
		}
		k++
	}

	for _, f := range ct.Categorical {
		c, ok := columns[f.Name]
		if !ok {
			return nil, mterrors.NewDataError(t.Path, nil, "missing feature column %q", f.Name)
		}

		index := make(map[string]int, len(f.Categories))
		for i, value := range f.Categories {
			index[value] = i
		}

		for row := 0; row < rows; row++ {
			value := c.Cells[row]
			if IsMissing(value) {
				value = f.Mode
			}

			hit, seen := index[value]
			for i := range f.Categories {
				v := 0.0
				if seen && i == hit {
					v = 1
				}
				inst.Set(specs[k+i], row, base.PackFloatToBytes(v))
			}
		}
		k += len(f.Categories)
	}

	for row := 0; row < rows; row++ {
		inst.Set(classSpec, row, classAttr.GetSysValFromString(t.Labels[row]))
	}

	return inst, nil
}

// String returns a short description of the fitted transform.
func (ct *ColumnTransformer) String() string {
	return fmt.Sprintf("%d numeric, %d categorical columns, %d features, %d classes",
		len(ct.Numeric), len(ct.Categorical), len(ct.FeatureNames()), len(ct.Classes))
}
