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

package storage

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mltrack/mltrack/internal/mterrors"
	"github.com/mltrack/mltrack/pkg/experiment"
	"github.com/mltrack/mltrack/pkg/runid"
)

var (
	mockRunID = runid.RunID("run_20260101_120000_000000000_0a1b2c3d")

	mockConfig = experiment.TrainConfig{
		InputPath:          "data/sample.csv",
		LabelColumn:        "label",
		ValidationFraction: 0.2,
		RandomSeed:         42,
		MaxIterations:      200,
	}

	mockMetrics = experiment.Metrics{
		experiment.MetricAccuracy:     experiment.Float(0.9),
		experiment.MetricF1Macro:      experiment.Absent(),
		experiment.MetricNVal:         experiment.Int(20),
		experiment.MetricNTrain:       experiment.Int(80),
		experiment.MetricTrainSeconds: experiment.Float(0.01),
	}
)

func TestStorage_New(t *testing.T) {
	tests := []struct {
		name    string
		baseDir string
		expect  func(t *testing.T, s Storage)
	}{
		{
			name:    "new storage",
			baseDir: os.TempDir(),
			expect: func(t *testing.T, s Storage) {
				assert := assert.New(t)
				assert.Equal(reflect.TypeOf(s).Elem().Name(), "storage")
				assert.Equal(os.TempDir(), s.BaseDir())
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.expect(t, New(tc.baseDir))
		})
	}
}

func TestStorage_Create(t *testing.T) {
	tests := []struct {
		name   string
		bundle *Bundle
		mock   func(t *testing.T, s Storage)
		expect func(t *testing.T, s Storage, runDir string, err error)
	}{
		{
			name: "create full bundle",
			bundle: &Bundle{
				Config:       mockConfig,
				Metrics:      mockMetrics,
				Report:       []byte("report"),
				Model:        []byte("{}"),
				Requirements: []byte("github.com/gocarina/gocsv v0.0.0\n"),
				Metadata:     map[string]string{"platform": "linux"},
			},
			mock: func(t *testing.T, s Storage) {},
			expect: func(t *testing.T, s Storage, runDir string, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Equal(s.RunDir(mockRunID), runDir)
				for _, name := range []string{ConfigFileName, MetricsFileName, ReportFileName, ModelFileName, RequirementsFileName, MetadataFileName} {
					assert.True(Exists(runDir, name), name)
				}

				data, err := os.ReadFile(filepath.Join(runDir, ConfigFileName))
				assert.NoError(err)
				assert.Equal(`{
  "input_path": "data/sample.csv",
  "label_column": "label",
  "max_iterations": 200,
  "random_seed": 42,
  "validation_fraction": 0.2
}
`, string(data))

				cfg, err := ReadConfig(runDir)
				assert.NoError(err)
				assert.Equal(mockConfig, cfg)

				metrics, err := ReadMetrics(runDir)
				assert.NoError(err)
				assert.Equal(mockMetrics, metrics)

				names, err := s.List()
				assert.NoError(err)
				assert.Equal([]string{mockRunID.String()}, names)
			},
		},
		{
			name:   "optional artifacts are skipped",
			bundle: &Bundle{Config: mockConfig, Metrics: mockMetrics},
			mock:   func(t *testing.T, s Storage) {},
			expect: func(t *testing.T, s Storage, runDir string, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.True(Exists(runDir, ConfigFileName))
				assert.True(Exists(runDir, MetricsFileName))
				assert.False(Exists(runDir, ReportFileName))
				assert.False(Exists(runDir, ModelFileName))
				assert.False(Exists(runDir, MetadataFileName))
			},
		},
		{
			name:   "run directory exists",
			bundle: &Bundle{Config: mockConfig, Metrics: mockMetrics},
			mock: func(t *testing.T, s Storage) {
				require.NoError(t, os.MkdirAll(s.RunDir(mockRunID), 0755))
			},
			expect: func(t *testing.T, s Storage, runDir string, err error) {
				assert := assert.New(t)
				assert.True(errors.Is(err, mterrors.ErrRunExists))
				assert.NoDirExists(filepath.Join(s.BaseDir(), StagingPrefix+mockRunID.String()))
			},
		},
		{
			name: "failed write leaves no directory behind",
			bundle: &Bundle{
				Config:  mockConfig,
				Metrics: experiment.Metrics{"bad": experiment.Float(math.NaN())},
			},
			mock: func(t *testing.T, s Storage) {},
			expect: func(t *testing.T, s Storage, runDir string, err error) {
				assert := assert.New(t)
				assert.Error(err)
				assert.Empty(runDir)
				entries, err := os.ReadDir(s.BaseDir())
				assert.NoError(err)
				for _, e := range entries {
					assert.False(IsStaging(e.Name()))
					assert.NotEqual(mockRunID.String(), e.Name())
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := New(filepath.Join(t.TempDir(), "artifacts"))
			tc.mock(t, s)
			runDir, err := s.Create(mockRunID, tc.bundle)
			tc.expect(t, s, runDir, err)
		})
	}
}

func TestStorage_CreateSweepsStaleStaging(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()
	s := New(dir)

	stale := filepath.Join(dir, StagingPrefix+"run_20260101_000000")
	fresh := filepath.Join(dir, StagingPrefix+"run_20260101_000001")
	require.NoError(t, os.Mkdir(stale, 0755))
	require.NoError(t, os.Mkdir(fresh, 0755))
	old := time.Now().Add(-2 * StaleStagingAge)
	require.NoError(t, os.Chtimes(stale, old, old))

	runDir, err := s.Create(mockRunID, &Bundle{Config: mockConfig, Metrics: mockMetrics})
	assert.NoError(err)
	assert.DirExists(runDir)
	assert.NoDirExists(stale)
	assert.DirExists(fresh)
}

func TestStorage_List(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()
	s := New(dir)
	for _, name := range []string{"run_20260102_000000", "run_20260101_000000", StagingPrefix + "run_20260103_000000", "reports"} {
		assert.NoError(os.Mkdir(filepath.Join(dir, name), 0755))
	}
	assert.NoError(os.WriteFile(filepath.Join(dir, "run_file"), nil, 0644))

	names, err := s.List()
	assert.NoError(err)
	assert.Equal([]string{"run_20260101_000000", "run_20260102_000000"}, names)

	_, err = New(filepath.Join(dir, "missing")).List()
	assert.Error(err)
}

func TestReadArtifacts(t *testing.T) {
	tests := []struct {
		name   string
		mock   func(t *testing.T, runDir string)
		expect func(t *testing.T, runDir string)
	}{
		{
			name: "missing config",
			mock: func(t *testing.T, runDir string) {},
			expect: func(t *testing.T, runDir string) {
				assert := assert.New(t)
				_, err := ReadConfig(runDir)
				assert.True(mterrors.IsMissingArtifactError(err))
				_, err = ReadMetrics(runDir)
				assert.True(mterrors.IsMissingArtifactError(err))
			},
		},
		{
			name: "malformed json",
			mock: func(t *testing.T, runDir string) {
				require.NoError(t, os.WriteFile(filepath.Join(runDir, ConfigFileName), []byte("{"), 0644))
				require.NoError(t, os.WriteFile(filepath.Join(runDir, MetricsFileName), []byte(`{"accuracy": true}`), 0644))
			},
			expect: func(t *testing.T, runDir string) {
				assert := assert.New(t)
				_, err := ReadConfig(runDir)
				assert.True(mterrors.IsConfigError(err))
				_, err = ReadMetrics(runDir)
				assert.True(mterrors.IsConfigError(err))
			},
		},
		{
			name: "null metrics",
			mock: func(t *testing.T, runDir string) {
				require.NoError(t, os.WriteFile(filepath.Join(runDir, MetricsFileName), []byte("null"), 0644))
			},
			expect: func(t *testing.T, runDir string) {
				assert := assert.New(t)
				_, err := ReadMetrics(runDir)
				assert.True(mterrors.IsConfigError(err))
			},
		},
		{
			name: "raw config fields",
			mock: func(t *testing.T, runDir string) {
				require.NoError(t, os.WriteFile(filepath.Join(runDir, ConfigFileName), []byte(`{"input_path": "a.csv", "extra": 1}`), 0644))
			},
			expect: func(t *testing.T, runDir string) {
				assert := assert.New(t)
				fields, err := ReadConfigFields(runDir)
				assert.NoError(err)
				assert.Equal(map[string]any{"input_path": "a.csv", "extra": float64(1)}, fields)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			runDir := t.TempDir()
			tc.mock(t, runDir)
			tc.expect(t, runDir)
		})
	}
}
