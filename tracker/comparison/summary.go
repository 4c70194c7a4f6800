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

package comparison

import (
	"encoding/json"

	"github.com/montanaflynn/stats"
	"golang.org/x/exp/maps"
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/mltrack/mltrack/pkg/experiment"
)

// averagePlaces is the rounding of summary averages.
const averagePlaces = 4

// MetricSummary aggregates one metric over the runs reporting it.
type MetricSummary struct {
	// Count is the number of runs with a numeric value.
	Count int

	// Average is the mean rounded to four decimals.
	Average float64

	// Min is the smallest value.
	Min experiment.Value

	// Max is the largest value.
	Max experiment.Value

	// BestRunID is the run selected by SelectBest.
	BestRunID string

	// BestValue is the value of the best run.
	BestValue experiment.Value
}

// Summary aggregates a run collection.
type Summary struct {
	// Count is the number of runs.
	Count int

	// Metrics holds the metrics numeric across every run reporting them.
	Metrics map[string]*MetricSummary
}

// Summarize aggregates every metric whose reported values are all numeric, null values
// are ignored. A metric with a non numeric value in any run, or no numeric value at all, is omitted.
func Summarize(runs []*experiment.Run) *Summary {
	s := &Summary{
		Count:   len(runs),
		Metrics: make(map[string]*MetricSummary),
	}

	for _, name := range metricNames(runs) {
		if m := summarizeMetric(runs, name); m != nil {
			s.Metrics[name] = m
		}
	}

	return s
}

func summarizeMetric(runs []*experiment.Run, name string) *MetricSummary {
	var (
		values             stats.Float64Data
		minValue, maxValue experiment.Value
	)
	for _, run := range runs {
		v, ok := run.Metrics.Get(name)
		if !ok || v.IsAbsent() {
			continue
		}

		n, ok := v.Number()
		if !ok {
			return nil
		}

		if len(values) == 0 {
			minValue, maxValue = v, v
		}

		if lo, _ := minValue.Number(); n < lo {
			minValue = v
		}

		if hi, _ := maxValue.Number(); n > hi {
			maxValue = v
		}

		values = append(values, n)
	}

	if len(values) == 0 {
		return nil
	}

	best, err := SelectBest(runs, name)
	if err != nil {
		return nil
	}

	mean, _ := stats.Mean(values)                  // nolint: errcheck
	average, _ := stats.Round(mean, averagePlaces) // nolint: errcheck
	return &MetricSummary{
		Count:     len(values),
		Average:   average,
		Min:       minValue,
		Max:       maxValue,
		BestRunID: best.ID,
		BestValue: best.Metrics[name],
	}
}

func metricNames(runs []*experiment.Run) []string {
	names := sets.NewString()
	for _, run := range runs {
		names.Insert(maps.Keys(run.Metrics)...)
	}

	return names.List()
}

type bestRun struct {
	RunID string           `json:"run_id"`
	Value experiment.Value `json:"value"`
}

// MarshalJSON encodes s in the flat layout n, avg_<m>, min_<m>, max_<m> and best_<m>.
func (s *Summary) MarshalJSON() ([]byte, error) {
	flat := map[string]any{"n": s.Count}
	for name, m := range s.Metrics {
		flat["avg_"+name] = experiment.Float(m.Average)
		flat["min_"+name] = m.Min
		flat["max_"+name] = m.Max
		flat["best_"+name] = bestRun{RunID: m.BestRunID, Value: m.BestValue}
	}

	return json.Marshal(flat)
}
