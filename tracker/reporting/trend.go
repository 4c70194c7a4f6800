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

package reporting

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/mltrack/mltrack/pkg/experiment"
)

const (
	trendWidth  = 8 * vg.Inch
	trendHeight = 4 * vg.Inch
)

// WriteTrend plots metric over the runs in order. Runs without a numeric
// value are left out, an empty path is returned when no run qualifies.
func (r *reporter) WriteTrend(runs []*experiment.Run, metric string) (string, error) {
	var (
		points plotter.XYs
		labels []string
	)
	for _, run := range runs {
		v, ok := run.Metrics.Number(metric)
		if !ok {
			continue
		}

		points = append(points, plotter.XY{X: float64(len(points)), Y: v})
		labels = append(labels, run.ID)
	}

	if len(points) == 0 {
		return "", nil
	}

	if err := os.MkdirAll(r.outputDir, 0755); err != nil {
		return "", err
	}

	p, err := plot.New()
	if err != nil {
		return "", err
	}

	p.Title.Text = fmt.Sprintf("%s over runs", metric)
	p.X.Label.Text = "run"
	p.Y.Label.Text = metric
	p.NominalX(labels...)

	line, scatter, err := plotter.NewLinePoints(points)
	if err != nil {
		return "", err
	}
	p.Add(line, scatter, plotter.NewGrid())

	name := TrendFileName(metric)
	path := filepath.Join(r.outputDir, name)
	if err := p.Save(trendWidth, trendHeight, path); err != nil {
		return "", err
	}

	r.written(name)
	return path, nil
}

// TrendFileName returns the file name of the trend chart of metric,
// path separators in the metric name are replaced.
func TrendFileName(metric string) string {
	return strings.NewReplacer("/", "_", `\`, "_").Replace(metric) + TrendFileSuffix
}
