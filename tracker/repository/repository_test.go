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

package repository

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mltrack/mltrack/internal/mterrors"
	"github.com/mltrack/mltrack/pkg/experiment"
	"github.com/mltrack/mltrack/pkg/runid"
	"github.com/mltrack/mltrack/trainer/storage"
	storagemocks "github.com/mltrack/mltrack/trainer/storage/mocks"
)

var mockConfig = experiment.TrainConfig{
	InputPath:          "data/sample.csv",
	LabelColumn:        "label",
	ValidationFraction: 0.2,
	RandomSeed:         42,
	MaxIterations:      200,
}

func createRun(t *testing.T, s storage.Storage, id string, accuracy float64, model bool) string {
	bundle := &storage.Bundle{
		Config: mockConfig,
		Metrics: experiment.Metrics{
			experiment.MetricAccuracy: experiment.Float(accuracy),
			experiment.MetricNVal:     experiment.Int(30),
		},
		Report: []byte("report\n"),
	}
	if model {
		bundle.Model = []byte("{}")
	}

	dir, err := s.Create(runid.RunID(id), bundle)
	require.NoError(t, err)
	return dir
}

func TestRepository_New(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()
	assert.Equal(t, reflect.TypeOf(New(storagemocks.NewMockStorage(ctl))).Elem().Name(), "repository")
}

func TestRepository_Scan(t *testing.T) {
	tests := []struct {
		name   string
		mock   func(t *testing.T, s storage.Storage)
		expect func(t *testing.T, result *Result, err error)
	}{
		{
			name: "runs sorted by run id",
			mock: func(t *testing.T, s storage.Storage) {
				createRun(t, s, "run_20260101_000003", 0.85, true)
				createRun(t, s, "run_20260101_000001", 0.80, false)
				createRun(t, s, "run_20260101_000002", 0.90, true)
			},
			expect: func(t *testing.T, result *Result, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Nil(result.Skipped)
				assert.Len(result.Runs, 3)
				var ids []string
				for _, run := range result.Runs {
					ids = append(ids, run.ID)
					assert.Equal(filepath.Base(run.Dir), run.ID)
					assert.Equal(mockConfig, run.Config)
					assert.True(run.ReportArtifactPresent)
				}
				assert.Equal([]string{"run_20260101_000001", "run_20260101_000002", "run_20260101_000003"}, ids)
				assert.False(result.Runs[0].ModelArtifactPresent)
				assert.True(result.Runs[1].ModelArtifactPresent)
				assert.Equal(experiment.Float(0.9), result.Runs[1].Metrics[experiment.MetricAccuracy])
			},
		},
		{
			name: "run without metrics is skipped",
			mock: func(t *testing.T, s storage.Storage) {
				createRun(t, s, "run_20260101_000001", 0.80, true)
				dir := createRun(t, s, "run_20260101_000002", 0.90, true)
				require.NoError(t, os.Remove(filepath.Join(dir, storage.MetricsFileName)))
				createRun(t, s, "run_20260101_000003", 0.85, true)
			},
			expect: func(t *testing.T, result *Result, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Len(result.Runs, 2)
				assert.Equal("run_20260101_000001", result.Runs[0].ID)
				assert.Equal("run_20260101_000003", result.Runs[1].ID)
				assert.Len(result.Skipped.WrappedErrors(), 1)
				var missing *mterrors.MissingArtifactError
				assert.True(errors.As(result.Skipped.WrappedErrors()[0], &missing))
				assert.Equal(storage.MetricsFileName, missing.File)
			},
		},
		{
			name: "malformed config is skipped",
			mock: func(t *testing.T, s storage.Storage) {
				dir := createRun(t, s, "run_20260101_000001", 0.80, true)
				require.NoError(t, os.WriteFile(filepath.Join(dir, storage.ConfigFileName), []byte("{"), 0644))
				createRun(t, s, "run_20260101_000002", 0.90, true)
			},
			expect: func(t *testing.T, result *Result, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Len(result.Runs, 1)
				assert.True(mterrors.IsConfigError(result.Skipped.WrappedErrors()[0]))
			},
		},
		{
			name: "bool and object metrics keep the run",
			mock: func(t *testing.T, s storage.Storage) {
				first := createRun(t, s, "run_20260101_000001", 0.95, true)
				require.NoError(t, os.WriteFile(filepath.Join(first, storage.MetricsFileName), []byte(`{"accuracy":0.95,"converged":true}`), 0644))
				second := createRun(t, s, "run_20260101_000002", 0.97, true)
				require.NoError(t, os.WriteFile(filepath.Join(second, storage.MetricsFileName), []byte(`{"accuracy":0.97,"per_class":{"a":1}}`), 0644))
			},
			expect: func(t *testing.T, result *Result, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Nil(result.Skipped)
				assert.Len(result.Runs, 2)
				assert.Equal(experiment.KindOther, result.Runs[0].Metrics["converged"].Kind())
				assert.Equal("true", result.Runs[0].Metrics["converged"].String())
				assert.Equal(`{"a":1}`, result.Runs[1].Metrics["per_class"].String())
				assert.Equal(experiment.Float(0.97), result.Runs[1].Metrics[experiment.MetricAccuracy])
			},
		},
		{
			name: "run directory without run id is still loaded",
			mock: func(t *testing.T, s storage.Storage) {
				createRun(t, s, "run_manual", 0.70, false)
				createRun(t, s, "run_20260101_000001_000000000_0a1b2c3d", 0.80, true)
			},
			expect: func(t *testing.T, result *Result, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Nil(result.Skipped)
				assert.Len(result.Runs, 2)
				assert.Equal("run_20260101_000001_000000000_0a1b2c3d", result.Runs[0].ID)
				assert.Equal("run_manual", result.Runs[1].ID)
			},
		},
		{
			name: "unrelated and staging directories are ignored",
			mock: func(t *testing.T, s storage.Storage) {
				createRun(t, s, "run_20260101_000001", 0.80, true)
				require.NoError(t, os.Mkdir(filepath.Join(s.BaseDir(), "reports"), 0755))
				require.NoError(t, os.Mkdir(filepath.Join(s.BaseDir(), storage.StagingPrefix+"run_20260101_000002"), 0755))
			},
			expect: func(t *testing.T, result *Result, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Len(result.Runs, 1)
				assert.Nil(result.Skipped)
			},
		},
		{
			name: "empty root",
			mock: func(t *testing.T, s storage.Storage) {
				require.NoError(t, os.MkdirAll(s.BaseDir(), 0755))
			},
			expect: func(t *testing.T, result *Result, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Empty(result.Runs)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := storage.New(filepath.Join(t.TempDir(), "artifacts"))
			tc.mock(t, s)
			result, err := New(s).Scan()
			tc.expect(t, result, err)
		})
	}
}

func TestRepository_ScanListFailed(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	s := storagemocks.NewMockStorage(ctl)
	s.EXPECT().List().Return(nil, os.ErrPermission).Times(1)
	s.EXPECT().BaseDir().Return("/artifacts").AnyTimes()

	runs, err := New(s).Load()
	assert := assert.New(t)
	assert.Nil(runs)
	assert.True(errors.Is(err, os.ErrPermission))
}

func TestLoad(t *testing.T) {
	assert := assert.New(t)
	root := t.TempDir()
	s := storage.New(root)
	createRun(t, s, "run_20260101_000002", 0.9, true)
	createRun(t, s, "run_20260101_000001", 0.8, true)

	runs, err := Load(root)
	assert.NoError(err)
	assert.Len(runs, 2)
	assert.Equal("run_20260101_000001", runs[0].ID)

	_, err = Load(filepath.Join(root, "missing"))
	assert.Error(err)
}

func TestLoadOne(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()
	_, err := LoadOne(dir)
	assert.True(mterrors.IsMissingArtifactError(err))

	require.NoError(t, storage.WriteJSON(filepath.Join(dir, storage.ConfigFileName), mockConfig))
	_, err = LoadOne(dir)
	assert.True(mterrors.IsMissingArtifactError(err))

	require.NoError(t, os.WriteFile(filepath.Join(dir, storage.MetricsFileName), []byte(`{"accuracy": 0.5, "note": "baseline"}`), 0644))
	run, err := LoadOne(dir)
	assert.NoError(err)
	assert.Equal(filepath.Base(dir), run.ID)
	assert.Equal(experiment.Text("baseline"), run.Metrics["note"])
	assert.False(run.ModelArtifactPresent)
	assert.False(run.ReportArtifactPresent)
}
