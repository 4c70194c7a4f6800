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
	"fmt"

	"github.com/mltrack/mltrack/internal/mterrors"
	"github.com/mltrack/mltrack/pkg/experiment"
)

// SelectBest returns the run with the maximum numeric value of metric,
// ties resolve to the earliest run id. Runs with a null value or without
// the metric do not qualify, a text or other non numeric value anywhere
// fails the selection.
func SelectBest(runs []*experiment.Run, metric string) (*experiment.Run, error) {
	if len(runs) == 0 {
		return nil, mterrors.NewSelectionError(metric, "no runs")
	}

	var (
		best      *experiment.Run
		bestValue float64
	)
	for _, run := range runs {
		v, ok := run.Metrics.Get(metric)
		if !ok {
			continue
		}

		if !v.IsNumber() && !v.IsAbsent() {
			return nil, mterrors.NewSelectionError(metric, fmt.Sprintf("run %s holds non numeric value %q", run.ID, v.String()))
		}

		n, ok := v.Number()
		if !ok {
			continue
		}

		if best == nil || n > bestValue || (n == bestValue && run.ID < best.ID) {
			best, bestValue = run, n
		}
	}

	if best == nil {
		return nil, mterrors.NewSelectionError(metric, "no run has a numeric value")
	}

	return best, nil
}

// Delta is the change of one metric between two runs.
type Delta struct {
	// Absolute is right minus left.
	Absolute float64 `json:"absolute"`

	// Relative is Absolute divided by left, nil when left is zero.
	Relative *float64 `json:"relative"`
}

// Comparison is the pairwise diff of two runs.
type Comparison struct {
	Left   *experiment.Run  `json:"left"`
	Right  *experiment.Run  `json:"right"`
	Deltas map[string]Delta `json:"differences"`
}

// Diff compares every metric numeric in both runs, other metrics are omitted.
func Diff(left, right *experiment.Run) *Comparison {
	c := &Comparison{
		Left:   left,
		Right:  right,
		Deltas: make(map[string]Delta),
	}

	for _, name := range left.Metrics.Names() {
		l, ok := left.Metrics.Number(name)
		if !ok {
			continue
		}

		r, ok := right.Metrics.Number(name)
		if !ok {
			continue
		}

		c.Deltas[name] = NewDelta(l, r)
	}

	return c
}

// NewDelta returns the delta from left to right.
func NewDelta(left, right float64) Delta {
	d := Delta{Absolute: right - left}
	if left != 0 {
		relative := (right - left) / left
		d.Relative = &relative
	}

	return d
}

// Improvement is a pair of consecutive runs where the later run scored higher.
type Improvement struct {
	Earlier *experiment.Run
	Later   *experiment.Run
}

// FindImprovements scans consecutive runs in order and returns the pairs whose
// metric increased. Pairs missing a numeric value are ignored.
func FindImprovements(runs []*experiment.Run, metric string) []Improvement {
	var improvements []Improvement
	for i := 1; i < len(runs); i++ {
		earlier, ok := runs[i-1].Metrics.Number(metric)
		if !ok {
			continue
		}

		later, ok := runs[i].Metrics.Number(metric)
		if !ok {
			continue
		}

		if later > earlier {
			improvements = append(improvements, Improvement{Earlier: runs[i-1], Later: runs[i]})
		}
	}

	return improvements
}
