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

package experiment

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Well known metric names.
const (
	MetricAccuracy     = "accuracy"
	MetricF1Macro      = "f1_macro"
	MetricNVal         = "n_val"
	MetricNTrain       = "n_train"
	MetricTrainSeconds = "train_seconds"
)

// Metrics maps metric names to tagged values. Keys order is irrelevant,
// json encoding sorts them.
type Metrics map[string]Value

// Get returns the value of name and whether the key is present.
func (m Metrics) Get(name string) (Value, bool) {
	v, ok := m[name]
	return v, ok
}

// Number returns the numeric value of name and whether it is present and numeric.
func (m Metrics) Number(name string) (float64, bool) {
	v, ok := m[name]
	if !ok {
		return 0, false
	}

	return v.Number()
}

// Names returns metric names in lexical order.
func (m Metrics) Names() []string {
	names := maps.Keys(m)
	slices.Sort(names)
	return names
}

// Merge returns a copy of m overlaid with other.
func (m Metrics) Merge(other Metrics) Metrics {
	merged := make(Metrics, len(m)+len(other))
	for k, v := range m {
		merged[k] = v
	}

	for k, v := range other {
		merged[k] = v
	}

	return merged
}

// Without returns a copy of m without the given names.
func (m Metrics) Without(names ...string) Metrics {
	out := make(Metrics, len(m))
	for k, v := range m {
		out[k] = v
	}

	for _, name := range names {
		delete(out, name)
	}

	return out
}
