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

	logger "github.com/mltrack/mltrack/internal/mtlog"
	"github.com/mltrack/mltrack/pkg/experiment"
	"github.com/mltrack/mltrack/pkg/mtpath"
	"github.com/mltrack/mltrack/trainer/config"
	"github.com/mltrack/mltrack/trainer/dataset"
	"github.com/mltrack/mltrack/trainer/metrics"
	"github.com/mltrack/mltrack/trainer/storage"
	"github.com/mltrack/mltrack/trainer/training"
)

type Trainer struct {
	// Trainer configuration.
	config *config.Config

	// Storage interface.
	storage storage.Storage

	// Training interface.
	training training.Training
}

// Option is a functional option for configuring the trainer.
type Option func(t *Trainer)

// WithTraining sets the training of the trainer.
func WithTraining(training training.Training) Option {
	return func(t *Trainer) {
		t.training = training
	}
}

func New(cfg *config.Config, d mtpath.Mtpath, options ...Option) (*Trainer, error) {
	t := &Trainer{config: cfg}

	// Initialize storage.
	t.storage = storage.New(d.ArtifactsDir())

	// Initialize training.
	t.training = training.New(t.storage, training.WithLearningRate(cfg.Train.LearningRate))

	for _, opt := range options {
		opt(t)
	}

	return t, nil
}

// Train generates the sample dataset when configured, then trains one run.
func (t *Trainer) Train(ctx context.Context) (*experiment.Run, error) {
	train := t.config.Train
	if train.CreateSample != "" {
		if err := dataset.CreateSample(train.Input, train.CreateSample, train.SampleRows, train.RandomSeed); err != nil {
			return nil, err
		}
		logger.TrainLogger.Infof("created %s sample dataset at %s", train.CreateSample, train.Input)
	}

	return t.training.Train(ctx, t.config.RunConfig())
}

// Storage returns the artifact storage of the trainer.
func (t *Trainer) Storage() storage.Storage {
	return t.storage
}

func (t *Trainer) Stop() {
	// Flush metrics to the textfile.
	if t.config.Metrics.Textfile == "" {
		return
	}

	if err := metrics.WriteToTextfile(t.config.Metrics.Textfile); err != nil {
		logger.Errorf("write metrics textfile failed %s", err.Error())
	} else {
		logger.Infof("metrics written to %s", t.config.Metrics.Textfile)
	}
}
