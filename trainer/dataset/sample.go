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
	_ "embed"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gocarina/gocsv"
)

const (
	// SampleSynthetic is a three class dataset of five numeric features.
	SampleSynthetic = "synthetic"

	// SampleMixed is a three class dataset of numeric and categorical features.
	SampleMixed = "mixed"

	// SampleIris is Fisher's iris measurements, always written in full.
	SampleIris = "iris"

	// sampleMissingRate is the share of missing cells in the first two numeric features.
	sampleMissingRate = 0.1
)

//go:embed iris.csv
var irisCSV []byte

// OptionalFloat is a float cell that may be missing.
type OptionalFloat struct {
	Value float64
	Valid bool
}

// MarshalCSV writes missing cells as empty strings.
func (f OptionalFloat) MarshalCSV() (string, error) {
	if !f.Valid {
		return "", nil
	}

	return strconv.FormatFloat(f.Value, 'f', 6, 64), nil
}

type syntheticRow struct {
	Feature0 OptionalFloat `csv:"feature_0"`
	Feature1 OptionalFloat `csv:"feature_1"`
	Feature2 float64       `csv:"feature_2"`
	Feature3 float64       `csv:"feature_3"`
	Feature4 float64       `csv:"feature_4"`
	Label    string        `csv:"label"`
}

type mixedRow struct {
	Age    OptionalFloat `csv:"age"`
	Income OptionalFloat `csv:"income"`
	Color  string        `csv:"color"`
	Size   string        `csv:"size"`
	Label  string        `csv:"label"`
}

var syntheticCenters = [][]float64{
	{-2, -1, 0, 1, 0.5},
	{0, 2, -1, -1, 0},
	{2, 0, 1.5, 0, -0.5},
}

var (
	mixedColors = [][]string{{"red", "red", "blue"}, {"green", "blue", "blue"}, {"green", "green", "red"}}
	mixedSizes  = [][]string{{"S", "M"}, {"M", "L"}, {"L", "XL"}}
)

// WriteSample writes a sample dataset of the given kind to w. The iris
// dataset ignores rows and seed.
func WriteSample(w io.Writer, kind string, rows int, seed int64) error {
	rng := rand.New(rand.NewSource(seed))

	switch kind {
	case SampleSynthetic:
		records := make([]*syntheticRow, rows)
		for i := range records {
			class := i % len(syntheticCenters)
			c := syntheticCenters[class]
			records[i] = &syntheticRow{
				Feature0: optional(rng, c[0]+rng.NormFloat64()),
				Feature1: optional(rng, c[1]+rng.NormFloat64()),
				Feature2: c[2] + rng.NormFloat64(),
				Feature3: c[3] + rng.NormFloat64(),
				Feature4: c[4] + rng.NormFloat64(),
				Label:    fmt.Sprintf("class_%d", class),
			}
		}
		return gocsv.Marshal(records, w)
	case SampleMixed:
		records := make([]*mixedRow, rows)
		for i := range records {
			class := i % 3
			records[i] = &mixedRow{
				Age:    optional(rng, 30+10*float64(class)+5*rng.NormFloat64()),
				Income: optional(rng, 40000+15000*float64(class)+8000*rng.NormFloat64()),
				Color:  mixedColors[class][rng.Intn(len(mixedColors[class]))],
				Size:   mixedSizes[class][rng.Intn(len(mixedSizes[class]))],
				Label:  fmt.Sprintf("segment_%c", 'a'+class),
			}
		}
		return gocsv.Marshal(records, w)
	case SampleIris:
		_, err := w.Write(irisCSV)
		return err
	default:
		return fmt.Errorf("unknown sample dataset %q", kind)
	}
}

// CreateSample writes a sample dataset to path, parent directories are created.
func CreateSample(path, kind string, rows int, seed int64) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := WriteSample(f, kind, rows, seed); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

func optional(rng *rand.Rand, v float64) OptionalFloat {
	if rng.Float64() < sampleMissingRate {
		return OptionalFloat{}
	}

	return OptionalFloat{Value: v, Valid: true}
}
