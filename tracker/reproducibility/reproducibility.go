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

package reproducibility

import (
	"context"
	"os"
	"path/filepath"

	"github.com/docker/go-units"
	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	logger "github.com/mltrack/mltrack/internal/mtlog"
	"github.com/mltrack/mltrack/pkg/environment"
	"github.com/mltrack/mltrack/pkg/experiment"
	"github.com/mltrack/mltrack/trainer/metrics"
	"github.com/mltrack/mltrack/trainer/storage"
)

const (
	// Config artifact weight.
	configWeight = 25

	// Metrics artifact weight.
	metricsWeight = 25

	// Model artifact weight.
	modelWeight = 25

	// Dependency manifest weight.
	requirementsWeight = 15

	// Config validity weight.
	configValidWeight = 5

	// Environment match weight.
	environmentWeight = 5
)

// MaxScore is the score of a complete run.
const MaxScore = configWeight + metricsWeight + modelWeight + requirementsWeight + configValidWeight + environmentWeight

// Score grades the completeness of a run directory.
type Score struct {
	RunDir             string `json:"-"`
	HasConfig          bool   `json:"has_config"`
	HasMetrics         bool   `json:"has_metrics"`
	HasModel           bool   `json:"has_model"`
	HasRequirements    bool   `json:"has_requirements"`
	ConfigValid        bool   `json:"config_valid"`
	EnvironmentMatches bool   `json:"environment_matches"`
	OverallScore       int    `json:"overall_score"`

	// ModelSize is the size of the model artifact in bytes.
	ModelSize int64 `json:"-"`
}

// HumanModelSize returns the model size in human readable form.
func (s *Score) HumanModelSize() string {
	if !s.HasModel {
		return "-"
	}

	return units.HumanSize(float64(s.ModelSize))
}

// Check inspects the artifacts of runDir and computes the weighted score.
// It never fails, unreadable artifacts zero their component.
func Check(runDir string) *Score {
	s := &Score{
		RunDir:          runDir,
		HasConfig:       storage.Exists(runDir, storage.ConfigFileName),
		HasMetrics:      storage.Exists(runDir, storage.MetricsFileName),
		HasModel:        storage.Exists(runDir, storage.ModelFileName),
		HasRequirements: storage.Exists(runDir, storage.RequirementsFileName),
	}

	if s.HasConfig {
		s.ConfigValid = calculateConfigValid(runDir)
	}

	if s.HasRequirements {
		s.EnvironmentMatches = calculateEnvironmentMatches(runDir)
	}

	if s.HasModel {
		if info, err := os.Stat(filepath.Join(runDir, storage.ModelFileName)); err == nil {
			s.ModelSize = info.Size()
		}
	}

	s.OverallScore = weigh(s.HasConfig, configWeight) +
		weigh(s.HasMetrics, metricsWeight) +
		weigh(s.HasModel, modelWeight) +
		weigh(s.HasRequirements, requirementsWeight) +
		weigh(s.ConfigValid, configValidWeight) +
		weigh(s.EnvironmentMatches, environmentWeight)

	metrics.ReproducibilityScore.Observe(float64(s.OverallScore))
	return s
}

func weigh(ok bool, weight int) int {
	if ok {
		return weight
	}

	return 0
}

// calculateConfigValid reports whether config.json holds every required field.
func calculateConfigValid(runDir string) bool {
	fields, err := storage.ReadConfigFields(runDir)
	if err != nil {
		logger.WithRunDir(runDir).Debugf("read config failed: %s", err.Error())
		return false
	}

	for _, field := range experiment.RequiredConfigFields {
		if _, ok := fields[field]; !ok {
			return false
		}
	}

	return true
}

// calculateEnvironmentMatches reports whether the manifest mentions a key module.
func calculateEnvironmentMatches(runDir string) bool {
	data, err := os.ReadFile(filepath.Join(runDir, storage.RequirementsFileName))
	if err != nil {
		logger.WithRunDir(runDir).Debugf("read requirements failed: %s", err.Error())
		return false
	}

	return environment.MentionsKeyModule(string(data))
}

// CheckAll scores run directories concurrently, at most concurrency at a time.
// Results keep the order of runDirs.
func CheckAll(ctx context.Context, runDirs []string, concurrency int) ([]*Score, error) {
	if concurrency < 1 {
		concurrency = 1
	}

	scores := make([]*Score, len(runDirs))
	complete := atomic.NewInt64(0)
	sem := semaphore.NewWeighted(int64(concurrency))
	eg, egCtx := errgroup.WithContext(ctx)
	for i, runDir := range runDirs {
		if err := sem.Acquire(egCtx, 1); err != nil {
			break
		}

		i, runDir := i, runDir
		eg.Go(func() error {
			defer sem.Release(1)
			scores[i] = Check(runDir)
			if scores[i].OverallScore == MaxScore {
				complete.Inc()
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger.CompareLogger.Infof("scored %d runs, %d complete", len(scores), complete.Load())
	return scores, nil
}
