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

package training

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	logger "github.com/mltrack/mltrack/internal/mtlog"
	"github.com/mltrack/mltrack/pkg/environment"
	"github.com/mltrack/mltrack/pkg/experiment"
	"github.com/mltrack/mltrack/pkg/runid"
	"github.com/mltrack/mltrack/trainer/dataset"
	"github.com/mltrack/mltrack/trainer/metrics"
	"github.com/mltrack/mltrack/trainer/models"
	"github.com/mltrack/mltrack/trainer/storage"
)

//go:generate mockgen -destination mocks/training_mock.go -source training.go -package mocks

// Training defines the interface to train a classification run.
type Training interface {
	// Train runs load, split, transform, fit, evaluate and persist,
	// it publishes exactly one new run when it succeeds.
	Train(context.Context, experiment.TrainConfig) (*experiment.Run, error)
}

// training implements Training interface.
type training struct {
	// Storage interface.
	storage storage.Storage

	// Clock measures the fit duration.
	clock runid.Clock

	// Generator allocates run ids.
	ids runid.Generator

	// Collector describes the training environment.
	collector MetadataCollector

	// Transformer factory.
	newTransformer func() Transformer

	// Classifier factory.
	newClassifier func(experiment.TrainConfig) Classifier
}

// Option is a functional option for configuring the training.
type Option func(t *training)

// WithClock sets the clock of the training.
func WithClock(clock runid.Clock) Option {
	return func(t *training) {
		t.clock = clock
	}
}

// WithGenerator sets the run id generator of the training.
func WithGenerator(ids runid.Generator) Option {
	return func(t *training) {
		t.ids = ids
	}
}

// WithMetadataCollector sets the environment collector of the training.
func WithMetadataCollector(collector MetadataCollector) Option {
	return func(t *training) {
		t.collector = collector
	}
}

// WithTransformer sets the transformer factory of the training.
func WithTransformer(newTransformer func() Transformer) Option {
	return func(t *training) {
		t.newTransformer = newTransformer
	}
}

// WithClassifier sets the classifier factory of the training.
func WithClassifier(newClassifier func(experiment.TrainConfig) Classifier) Option {
	return func(t *training) {
		t.newClassifier = newClassifier
	}
}

// WithLearningRate trains the default logistic regression with learningRate.
func WithLearningRate(learningRate float64) Option {
	return func(t *training) {
		t.newClassifier = logisticRegression(learningRate)
	}
}

// New returns a new Training.
func New(storage storage.Storage, options ...Option) Training {
	t := &training{
		storage:        storage,
		clock:          runid.RealClock(),
		collector:      environment.NewCollector(),
		newTransformer: func() Transformer { return dataset.NewColumnTransformer() },
		newClassifier:  logisticRegression(models.DefaultLearningRate),
	}

	for _, opt := range options {
		opt(t)
	}

	if t.ids == nil {
		t.ids = runid.NewGenerator(runid.WithClock(t.clock))
	}

	return t
}

func logisticRegression(learningRate float64) func(experiment.TrainConfig) Classifier {
	return func(cfg experiment.TrainConfig) Classifier {
		return models.NewLogisticRegression(learningRate, cfg.MaxIterations, cfg.RandomSeed)
	}
}

// Train runs the pipeline for cfg.
func (t *training) Train(ctx context.Context, cfg experiment.TrainConfig) (*experiment.Run, error) {
	metrics.TrainStartedCount.Inc()
	log := logger.WithInput(cfg.InputPath, cfg.LabelColumn)

	if err := cfg.Validate(); err != nil {
		return nil, fail(StageConfig, err)
	}

	// Load.
	if err := checkpoint(ctx, StageLoad); err != nil {
		return nil, err
	}
	table, err := dataset.Load(cfg.InputPath, cfg.LabelColumn)
	if err != nil {
		return nil, fail(StageLoad, err)
	}
	log.Infof("loaded %s", table)

	// Split.
	if err := checkpoint(ctx, StageSplit); err != nil {
		return nil, err
	}
	trainTable, valTable, err := dataset.Split(table, cfg.ValidationFraction, cfg.RandomSeed)
	if err != nil {
		return nil, fail(StageSplit, err)
	}
	log.Debugf("split into %d train and %d validation rows", trainTable.Rows(), valTable.Rows())

	// Build transform.
	if err := checkpoint(ctx, StageTransform); err != nil {
		return nil, err
	}
	transformer := t.newTransformer()
	if err := transformer.Fit(trainTable); err != nil {
		return nil, fail(StageTransform, err)
	}

	trainGrid, err := transformer.Transform(trainTable)
	if err != nil {
		return nil, fail(StageTransform, err)
	}

	valGrid, err := transformer.Transform(valTable)
	if err != nil {
		return nil, fail(StageTransform, err)
	}

	// Fit.
	if err := checkpoint(ctx, StageFit); err != nil {
		return nil, err
	}
	classifier := t.newClassifier(cfg)
	start := t.clock.Now()
	if err := classifier.Fit(trainGrid); err != nil {
		return nil, fail(StageFit, err)
	}
	trainSeconds := t.clock.Now().Sub(start).Seconds()
	metrics.FitDuration.Observe(trainSeconds)
	log.Infof("fitted %v in %.3fs", classifier, trainSeconds)

	// Evaluate.
	if err := checkpoint(ctx, StageEvaluate); err != nil {
		return nil, err
	}
	predictions, err := classifier.Predict(valGrid)
	if err != nil {
		return nil, fail(StageEvaluate, err)
	}

	eval, err := Evaluate(valGrid, predictions)
	if err != nil {
		return nil, fail(StageEvaluate, err)
	}

	runMetrics := experiment.Metrics{
		experiment.MetricAccuracy:     experiment.Float(eval.Accuracy),
		experiment.MetricF1Macro:      eval.F1Macro,
		experiment.MetricNVal:         experiment.Int(int64(eval.NVal)),
		experiment.MetricNTrain:       experiment.Int(int64(trainTable.Rows())),
		experiment.MetricTrainSeconds: experiment.Float(trainSeconds),
	}

	// Persist.
	if err := checkpoint(ctx, StagePersist); err != nil {
		return nil, err
	}
	bundle, err := t.bundle(cfg, runMetrics, eval.Report, &Model{Transform: transformer, Classifier: classifier})
	if err != nil {
		return nil, fail(StagePersist, err)
	}

	id := t.ids.Next()
	runDir, err := t.storage.Create(id, bundle)
	if err != nil {
		return nil, fail(StagePersist, err)
	}

	metrics.TrainFinishedCount.Inc()
	metrics.ValidationAccuracy.Set(eval.Accuracy)
	log.With("runID", id.String()).Infof("accuracy %.4f, f1_macro %s", eval.Accuracy, eval.F1Macro)

	return &experiment.Run{
		ID:                    id.String(),
		Config:                cfg,
		Metrics:               runMetrics,
		Dir:                   runDir,
		ModelArtifactPresent:  true,
		ReportArtifactPresent: true,
	}, nil
}

func (t *training) bundle(cfg experiment.TrainConfig, m experiment.Metrics, report string, model *Model) (*storage.Bundle, error) {
	modelData, err := json.Marshal(model)
	if err != nil {
		return nil, err
	}

	var requirements bytes.Buffer
	if err := environment.WriteRequirements(&requirements, t.collector.Dependencies()); err != nil {
		return nil, err
	}

	return &storage.Bundle{
		Config:       cfg,
		Metrics:      m,
		Report:       []byte(report),
		Model:        modelData,
		Requirements: requirements.Bytes(),
		Metadata:     t.collector.Collect(cfg, t.clock.Now()),
	}, nil
}

func checkpoint(ctx context.Context, stage string) error {
	if err := ctx.Err(); err != nil {
		return fail(stage, err)
	}

	return nil
}

func fail(stage string, err error) error {
	metrics.TrainFailureCount.WithLabelValues(stage).Inc()
	logger.TrainLogger.Errorf("training failed at %s: %s", stage, err.Error())
	return fmt.Errorf("%s: %w", stage, err)
}

// loadModel decodes the fitted pipeline of a run directory.
func loadModel(runDir string) (*dataset.ColumnTransformer, *models.LogisticRegression, error) {
	data, err := os.ReadFile(filepath.Join(runDir, storage.ModelFileName))
	if err != nil {
		return nil, nil, err
	}

	var raw struct {
		Transform  json.RawMessage `json:"transform"`
		Classifier json.RawMessage `json:"classifier"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, nil, err
	}

	transformer := dataset.NewColumnTransformer()
	if err := json.Unmarshal(raw.Transform, transformer); err != nil {
		return nil, nil, err
	}

	classifier := &models.LogisticRegression{}
	if err := json.Unmarshal(raw.Classifier, classifier); err != nil {
		return nil, nil, err
	}

	return transformer, classifier, nil
}
