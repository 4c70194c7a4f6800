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
	"math"
	"math/rand"

	"golang.org/x/exp/slices"

	"github.com/mltrack/mltrack/internal/mterrors"
)

// ValidationSize returns the number of validation rows for n rows,
// ceil(n * fraction) clamped to [1, n-1].
func ValidationSize(n int, fraction float64) int {
	size := int(math.Ceil(float64(n) * fraction))
	if size < 1 {
		size = 1
	}

	if size > n-1 {
		size = n - 1
	}

	return size
}

// Split partitions t into train and validation tables. The split is stratified on
// the label when there is more than one class, each class contributes its proportional
// share with remainders assigned by largest fraction. The permutation is seeded by seed.
func Split(t *Table, fraction float64, seed int64) (*Table, *Table, error) {
	n := t.Rows()
	if n == 0 {
		return nil, nil, mterrors.NewDataError(t.Path, mterrors.ErrEmptyDataset, "split")
	}

	if n < 2 {
		return nil, nil, mterrors.NewDataError(t.Path, nil, "split requires at least 2 rows, got %d", n)
	}

	rng := rand.New(rand.NewSource(seed))
	size := ValidationSize(n, fraction)

	var trainRows, valRows []int
	classes := t.Classes()
	if len(classes) > 1 {
		trainRows, valRows = stratifiedSplit(t, classes, size, rng)
	} else {
		perm := rng.Perm(n)
		valRows = append(valRows, perm[:size]...)
		trainRows = append(trainRows, perm[size:]...)
	}

	slices.Sort(trainRows)
	slices.Sort(valRows)
	return t.Subset(trainRows), t.Subset(valRows), nil
}

func stratifiedSplit(t *Table, classes []string, size int, rng *rand.Rand) ([]int, []int) {
	groups := make(map[string][]int, len(classes))
	for i, l := range t.Labels {
		groups[l] = append(groups[l], i)
	}

	n := t.Rows()
	type share struct {
		class     string
		count     int
		remainder float64
	}

	shares := make([]share, len(classes))
	allocated := 0
	for i, c := range classes {
		exact := float64(size) * float64(len(groups[c])) / float64(n)
		count := int(math.Floor(exact))
		shares[i] = share{class: c, count: count, remainder: exact - float64(count)}
		allocated += count
	}

	order := make([]int, len(shares))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) bool {
		return shares[a].remainder > shares[b].remainder
	})

	for _, i := range order {
		if allocated >= size {
			break
		}

		if shares[i].count < len(groups[shares[i].class]) {
			shares[i].count++
			allocated++
		}
	}

	var trainRows, valRows []int
	for _, s := range shares {
		rows := groups[s.class]
		rng.Shuffle(len(rows), func(a, b int) { rows[a], rows[b] = rows[b], rows[a] })
		valRows = append(valRows, rows[:s.count]...)
		trainRows = append(trainRows, rows[s.count:]...)
	}

	return trainRows, valRows
}
