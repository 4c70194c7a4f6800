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

package tracker

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/mltrack/mltrack/internal/mterrors"
	logger "github.com/mltrack/mltrack/internal/mtlog"
	"github.com/mltrack/mltrack/pkg/environment"
	"github.com/mltrack/mltrack/pkg/experiment"
	"github.com/mltrack/mltrack/pkg/mtpath"
	"github.com/mltrack/mltrack/pkg/runid"
	"github.com/mltrack/mltrack/tracker/comparison"
	"github.com/mltrack/mltrack/tracker/reporting"
	"github.com/mltrack/mltrack/tracker/repository"
	"github.com/mltrack/mltrack/tracker/reproducibility"
	"github.com/mltrack/mltrack/trainer/config"
	"github.com/mltrack/mltrack/trainer/metrics"
	"github.com/mltrack/mltrack/trainer/storage"
)

type Tracker struct {
	// Tracker configuration.
	config *config.Config

	// Storage interface.
	storage storage.Storage

	// Repository interface.
	repository repository.Repository

	// Reporter interface.
	reporter reporting.Reporter
}

// Option is a functional option for configuring the tracker.
type Option func(t *Tracker)

// WithRepository sets the repository of the tracker.
func WithRepository(repository repository.Repository) Option {
	return func(t *Tracker) {
		t.repository = repository
	}
}

// WithReporter sets the reporter of the tracker.
func WithReporter(reporter reporting.Reporter) Option {
	return func(t *Tracker) {
		t.reporter = reporter
	}
}

func New(cfg *config.Config, d mtpath.Mtpath, options ...Option) *Tracker {
	t := &Tracker{config: cfg}

	// Initialize storage.
	t.storage = storage.New(d.ArtifactsDir())

	// Initialize repository.
	t.repository = repository.New(t.storage)

	// Initialize reporter.
	t.reporter = reporting.New(d.ReportsDir())

	for _, opt := range options {
		opt(t)
	}

	return t
}

// CompareResult is the outcome of comparing the runs of the artifact root.
type CompareResult struct {
	// Runs are the loaded runs sorted by run id.
	Runs []*experiment.Run

	// Best is the best run by the compare metric.
	Best *experiment.Run

	// Reports are the written report paths.
	Reports []string
}

// Compare loads every run, selects the best one and writes the reports.
// It returns ErrNoRuns without writing reports when there is no valid run.
func (t *Tracker) Compare(ctx context.Context) (*CompareResult, error) {
	runs, err := t.repository.Load()
	if err != nil {
		return nil, err
	}

	if len(runs) == 0 {
		return nil, mterrors.ErrNoRuns
	}

	metric := t.config.Compare.Metric
	best, err := comparison.SelectBest(runs, metric)
	if err != nil {
		return nil, err
	}
	logger.CompareLogger.With("runID", best.ID).Infof("best run by %s: %s", metric, best.Metrics[metric])

	result := &CompareResult{Runs: runs, Best: best}
	paths, err := t.reporter.WriteSummary(runs, metric)
	if err != nil {
		return nil, err
	}
	result.Reports = append(result.Reports, paths...)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if t.config.Compare.Dashboard {
		path, err := t.reporter.WriteDashboard(runs, t.config.Compare.RecentRuns)
		if err != nil {
			return nil, err
		}
		result.Reports = append(result.Reports, path)
	}

	if t.config.Compare.Plot {
		path, err := t.reporter.WriteTrend(runs, metric)
		if err != nil {
			return nil, err
		}

		if path != "" {
			result.Reports = append(result.Reports, path)
		}
	}

	return result, nil
}

// Score grades the given run directories, every run directory of the artifact root when none is given.
func (t *Tracker) Score(ctx context.Context, runDirs ...string) ([]*reproducibility.Score, error) {
	if len(runDirs) == 0 {
		names, err := t.storage.List()
		if err != nil {
			return nil, err
		}

		for _, name := range names {
			runDirs = append(runDirs, t.storage.RunDir(runid.RunID(name)))
		}
	}

	return reproducibility.CheckAll(ctx, runDirs, t.config.Compare.ScoreConcurrency)
}

// Package writes the reproducibility package of runDir to outputDir.
func (t *Tracker) Package(runDir, outputDir string, includeModel bool) error {
	if _, err := t.repository.LoadOne(runDir); err != nil {
		logger.CompareLogger.With("runDir", runDir).Warnf("packaging incomplete run: %s", err.Error())
	}

	return reproducibility.CreatePackage(runDir, outputDir, reproducibility.PackageOptions{
		IncludeModel: includeModel,
		Dependencies: environment.CaptureDependencies(),
	})
}

// ExperimentInput holds the free text sections of an experiment report.
type ExperimentInput struct {
	Goal           string
	Interpretation string
	Lesson         string
	NextExperiment string
	Caveat         string
}

// Report writes the experiment report comparing the variant run to the baseline run.
func (t *Tracker) Report(baselineDir, variantDir string, input ExperimentInput, name string) (string, error) {
	baseline, err := t.repository.LoadOne(baselineDir)
	if err != nil {
		return "", fmt.Errorf("load baseline %s: %w", filepath.Base(baselineDir), err)
	}

	variant, err := t.repository.LoadOne(variantDir)
	if err != nil {
		return "", fmt.Errorf("load variant %s: %w", filepath.Base(variantDir), err)
	}

	return t.reporter.WriteExperimentReport(&reporting.ExperimentReport{
		Goal:           input.Goal,
		Baseline:       baseline,
		Variant:        variant,
		Interpretation: input.Interpretation,
		Lesson:         input.Lesson,
		NextExperiment: input.NextExperiment,
		Caveat:         input.Caveat,
	}, name)
}

// Reporter returns the reporter of the tracker.
func (t *Tracker) Reporter() reporting.Reporter {
	return t.reporter
}

func (t *Tracker) Stop() {
	// Flush metrics to the textfile.
	if t.config.Metrics.Textfile == "" {
		return
	}

	if err := metrics.WriteToTextfile(t.config.Metrics.Textfile); err != nil {
		logger.Errorf("write metrics textfile failed %s", err.Error())
	}
}
