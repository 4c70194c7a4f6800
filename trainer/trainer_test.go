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

package trainer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mltrack/mltrack/pkg/experiment"
	"github.com/mltrack/mltrack/pkg/mtpath"
	"github.com/mltrack/mltrack/trainer/config"
	"github.com/mltrack/mltrack/trainer/dataset"
	trainingmocks "github.com/mltrack/mltrack/trainer/training/mocks"
)

func newPath(t *testing.T) mtpath.Mtpath {
	home := t.TempDir()
	d, err := mtpath.New(
		mtpath.WithWorkHome(home),
		mtpath.WithLogDir(filepath.Join(home, "logs")),
		mtpath.WithArtifactsDir(filepath.Join(home, "artifacts")),
	)
	require.NoError(t, err)
	return d
}

func TestTrainer_Train(t *testing.T) {
	tests := []struct {
		name   string
		config func(t *testing.T) *config.Config
		mock   func(m *trainingmocks.MockTrainingMockRecorder)
		expect func(t *testing.T, cfg *config.Config, run *experiment.Run, err error)
	}{
		{
			name: "create sample before training",
			config: func(t *testing.T) *config.Config {
				cfg := config.New()
				cfg.Train.CreateSample = dataset.SampleMixed
				cfg.Train.Input = filepath.Join(t.TempDir(), "data", "mixed.csv")
				require.NoError(t, cfg.Convert())
				return cfg
			},
			mock: func(m *trainingmocks.MockTrainingMockRecorder) {
				m.Train(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, cfg experiment.TrainConfig) (*experiment.Run, error) {
					return &experiment.Run{ID: "run_20260101_000000", Config: cfg}, nil
				}).Times(1)
			},
			expect: func(t *testing.T, cfg *config.Config, run *experiment.Run, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.FileExists(cfg.Train.Input)
				assert.Equal(cfg.RunConfig(), run.Config)
				assert.Equal(config.DefaultSampleLabelColumn, run.Config.LabelColumn)
			},
		},
		{
			name: "training failed",
			config: func(t *testing.T) *config.Config {
				cfg := config.New()
				cfg.Train.Input = "data.csv"
				cfg.Train.LabelColumn = "label"
				return cfg
			},
			mock: func(m *trainingmocks.MockTrainingMockRecorder) {
				m.Train(gomock.Any(), gomock.Any()).Return(nil, errors.New("foo")).Times(1)
			},
			expect: func(t *testing.T, cfg *config.Config, run *experiment.Run, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "foo")
				assert.Nil(run)
			},
		},
		{
			name: "unknown sample kind",
			config: func(t *testing.T) *config.Config {
				cfg := config.New()
				cfg.Train.CreateSample = "images"
				cfg.Train.Input = filepath.Join(t.TempDir(), "images.csv")
				return cfg
			},
			mock: func(m *trainingmocks.MockTrainingMockRecorder) {},
			expect: func(t *testing.T, cfg *config.Config, run *experiment.Run, err error) {
				assert.Error(t, err)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctl := gomock.NewController(t)
			defer ctl.Finish()
			training := trainingmocks.NewMockTraining(ctl)
			tc.mock(training.EXPECT())

			cfg := tc.config(t)
			trainer, err := New(cfg, newPath(t), WithTraining(training))
			require.NoError(t, err)
			run, err := trainer.Train(context.Background())
			tc.expect(t, cfg, run, err)
		})
	}
}

func TestTrainer_TrainEndToEnd(t *testing.T) {
	assert := assert.New(t)
	cfg := config.New()
	cfg.Train.CreateSample = dataset.SampleSynthetic
	cfg.Train.Input = filepath.Join(t.TempDir(), "synthetic.csv")
	cfg.Train.MaxIterations = 50
	cfg.Metrics.Textfile = filepath.Join(t.TempDir(), "mltrack.prom")
	require.NoError(t, cfg.Convert())

	d := newPath(t)
	trainer, err := New(cfg, d)
	require.NoError(t, err)

	run, err := trainer.Train(context.Background())
	require.NoError(t, err)
	assert.Equal(filepath.Join(d.ArtifactsDir(), run.ID), run.Dir)

	names, err := trainer.Storage().List()
	assert.NoError(err)
	assert.Equal([]string{run.ID}, names)

	trainer.Stop()
	data, err := os.ReadFile(cfg.Metrics.Textfile)
	assert.NoError(err)
	assert.Contains(string(data), "mltrack_trainer_training_finished_total")
}

func TestTrainer_TrainIris(t *testing.T) {
	assert := assert.New(t)
	cfg := config.New()
	cfg.Train.CreateSample = dataset.SampleIris
	cfg.Train.Input = filepath.Join(t.TempDir(), "iris.csv")
	require.NoError(t, cfg.Convert())
	require.NoError(t, cfg.Validate())

	trainer, err := New(cfg, newPath(t))
	require.NoError(t, err)

	run, err := trainer.Train(context.Background())
	require.NoError(t, err)
	nVal, ok := run.Metrics.Number(experiment.MetricNVal)
	assert.True(ok)
	nTrain, ok := run.Metrics.Number(experiment.MetricNTrain)
	assert.True(ok)
	assert.Equal(150.0, nVal+nTrain)
	assert.True(run.Metrics[experiment.MetricF1Macro].IsNumber())
}
