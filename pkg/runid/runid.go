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

//go:generate mockgen -destination mocks/clock_mock.go -source runid.go -package mocks

package runid

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	// Prefix is the prefix of every run directory name.
	Prefix = "run_"

	// timeLayout is the second resolution part of a run id.
	timeLayout = "20060102_150405"

	// suffixLength is the length of the disambiguating suffix.
	suffixLength = 8
)

var (
	runIDRegexp       = regexp.MustCompile(`^run_(\d{8}_\d{6})_(\d{9})_([0-9a-f]{8})$`)
	legacyRunIDRegexp = regexp.MustCompile(`^run_(\d{8}_\d{6})$`)
)

// RunID identifies a run, sorting run ids lexically sorts them by creation time.
type RunID string

// String returns the run id as string.
func (id RunID) String() string {
	return string(id)
}

// Time returns the creation time encoded in the run id.
func (id RunID) Time() (time.Time, error) {
	if m := runIDRegexp.FindStringSubmatch(string(id)); m != nil {
		t, err := time.ParseInLocation(timeLayout, m[1], time.UTC)
		if err != nil {
			return time.Time{}, err
		}

		nsec, err := strconv.Atoi(m[2])
		if err != nil {
			return time.Time{}, err
		}

		return t.Add(time.Duration(nsec)), nil
	}

	if m := legacyRunIDRegexp.FindStringSubmatch(string(id)); m != nil {
		return time.ParseInLocation(timeLayout, m[1], time.UTC)
	}

	return time.Time{}, fmt.Errorf("invalid run id %q", string(id))
}

// Legacy reports whether id uses the second resolution format without suffix.
func (id RunID) Legacy() bool {
	return legacyRunIDRegexp.MatchString(string(id))
}

// Parse validates s as run id.
func Parse(s string) (RunID, error) {
	if !runIDRegexp.MatchString(s) && !legacyRunIDRegexp.MatchString(s) {
		return "", fmt.Errorf("invalid run id %q", s)
	}

	return RunID(s), nil
}

// IsRunDirName reports whether name looks like a run directory.
func IsRunDirName(name string) bool {
	return strings.HasPrefix(name, Prefix)
}

// Format returns the run id of t with the given suffix.
func Format(t time.Time, suffix string) RunID {
	t = t.UTC()
	return RunID(fmt.Sprintf("%s%s_%09d_%s", Prefix, t.Format(timeLayout), t.Nanosecond(), suffix))
}

// Clock is the source of the current time.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

type realClock struct{}

// RealClock returns the wall clock.
func RealClock() Clock {
	return realClock{}
}

// Now returns time.Now.
func (realClock) Now() time.Time {
	return time.Now()
}

// Generator is the interface used for allocating run ids.
type Generator interface {
	// Next returns a new run id, greater than any id returned before.
	Next() RunID
}

type generator struct {
	clock  Clock
	suffix func() string
	mu     sync.Mutex
	last   time.Time
}

// Option is a functional option for configuring the generator.
type Option func(g *generator)

// WithClock sets the clock of the generator.
func WithClock(clock Clock) Option {
	return func(g *generator) {
		g.clock = clock
	}
}

// WithSuffix sets the suffix source of the generator.
func WithSuffix(suffix func() string) Option {
	return func(g *generator) {
		g.suffix = suffix
	}
}

// NewGenerator returns a new Generator instance.
func NewGenerator(options ...Option) Generator {
	g := &generator{
		clock:  RealClock(),
		suffix: randomSuffix,
	}

	for _, opt := range options {
		opt(g)
	}

	return g
}

// Next returns a new run id, when the clock does not advance
// the previous time is bumped by one nanosecond.
func (g *generator) Next() RunID {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.clock.Now().UTC().Round(0)
	if !now.After(g.last) {
		now = g.last.Add(time.Nanosecond)
	}
	g.last = now

	return Format(now, g.suffix())
}

func randomSuffix() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:suffixLength]
}
