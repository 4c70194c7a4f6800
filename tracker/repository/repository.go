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

//go:generate mockgen -destination mocks/repository_mock.go -source repository.go -package mocks

package repository

import (
	"fmt"
	"path/filepath"

	"github.com/hashicorp/go-multierror"

	logger "github.com/mltrack/mltrack/internal/mtlog"
	"github.com/mltrack/mltrack/pkg/experiment"
	"github.com/mltrack/mltrack/pkg/runid"
	"github.com/mltrack/mltrack/trainer/metrics"
	"github.com/mltrack/mltrack/trainer/storage"
)

// Result is the outcome of scanning a run root.
type Result struct {
	// Runs are the valid runs sorted by run id.
	Runs []*experiment.Run

	// Skipped holds one error per invalid run directory.
	Skipped *multierror.Error
}

// Repository is the interface used for loading runs.
type Repository interface {
	// Scan loads every run directory of the root, invalid runs are skipped and reported.
	Scan() (*Result, error)

	// Load returns the valid runs of the root sorted by run id.
	Load() ([]*experiment.Run, error)

	// LoadOne loads a single run directory.
	LoadOne(string) (*experiment.Run, error)
}

type repository struct {
	storage storage.Storage
}

// New returns a new Repository over the run directories of storage.
func New(storage storage.Storage) Repository {
	return &repository{storage: storage}
}

// Load returns the valid runs under root sorted by run id.
func Load(root string) ([]*experiment.Run, error) {
	return New(storage.New(root)).Load()
}

// Scan loads every run directory of the root. One malformed run never aborts the others.
func (r *repository) Scan() (*Result, error) {
	names, err := r.storage.List()
	if err != nil {
		return nil, fmt.Errorf("list runs of %s: %w", r.storage.BaseDir(), err)
	}

	result := &Result{}
	for _, name := range names {
		id, err := runid.Parse(name)
		if err != nil {
			logger.CompareLogger.Warnf("run directory %s does not carry a run id, ranked by name", name)
			id = runid.RunID(name)
		} else if id.Legacy() {
			logger.CompareLogger.Debugf("run directory %s uses the second resolution run id", name)
		}

		dir := r.storage.RunDir(id)
		run, err := r.LoadOne(dir)
		if err != nil {
			logger.CompareLogger.With("runDir", dir).Warnf("skip run: %s", err.Error())
			metrics.RunsSkippedCount.Inc()
			result.Skipped = multierror.Append(result.Skipped, err)
			continue
		}

		metrics.RunsLoadedCount.Inc()
		result.Runs = append(result.Runs, run)
	}

	logger.CompareLogger.Infof("loaded %d runs from %s, skipped %d", len(result.Runs), r.storage.BaseDir(), len(result.Skipped.WrappedErrors()))
	return result, nil
}

// Load returns the valid runs of the root sorted by run id.
func (r *repository) Load() ([]*experiment.Run, error) {
	result, err := r.Scan()
	if err != nil {
		return nil, err
	}

	return result.Runs, nil
}

// LoadOne loads config.json and metrics.json of dir and checks the optional artifacts.
func (r *repository) LoadOne(dir string) (*experiment.Run, error) {
	return LoadOne(dir)
}

// LoadOne loads a single run directory.
func LoadOne(dir string) (*experiment.Run, error) {
	cfg, err := storage.ReadConfig(dir)
	if err != nil {
		return nil, err
	}

	m, err := storage.ReadMetrics(dir)
	if err != nil {
		return nil, err
	}

	return &experiment.Run{
		ID:                    filepath.Base(dir),
		Config:                cfg,
		Metrics:               m,
		Dir:                   dir,
		ModelArtifactPresent:  storage.Exists(dir, storage.ModelFileName),
		ReportArtifactPresent: storage.Exists(dir, storage.ReportFileName),
	}, nil
}
