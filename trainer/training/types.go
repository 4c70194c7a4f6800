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
	"time"

	"github.com/sjwhitworth/golearn/base"

	"github.com/mltrack/mltrack/pkg/environment"
	"github.com/mltrack/mltrack/pkg/experiment"
	"github.com/mltrack/mltrack/trainer/dataset"
)

// Pipeline stages, used as the stage label of failure metrics.
const (
	StageConfig    = "config"
	StageLoad      = "load"
	StageSplit     = "split"
	StageTransform = "transform"
	StageFit       = "fit"
	StageEvaluate  = "evaluate"
	StagePersist   = "persist"
)

// Transformer turns a table into the feature grid consumed by a classifier.
type Transformer interface {
	// Fit learns the transform parameters from the training table.
	Fit(*dataset.Table) error

	// Transform applies the fitted parameters.
	Transform(*dataset.Table) (base.FixedDataGrid, error)
}

// Classifier predicts the class attribute of a feature grid.
type Classifier interface {
	// Fit trains the classifier.
	Fit(base.FixedDataGrid) error

	// Predict returns a grid holding the predicted class of every row.
	Predict(base.FixedDataGrid) (base.FixedDataGrid, error)
}

// MetadataCollector describes the environment a run is trained in.
type MetadataCollector interface {
	// Collect returns the run metadata of cfg at now.
	Collect(experiment.TrainConfig, time.Time) *environment.RunMetadata

	// Dependencies returns the dependency manifest.
	Dependencies() []environment.Dependency
}

// Model is the serialized fitted pipeline.
type Model struct {
	Transform  Transformer `json:"transform"`
	Classifier Classifier  `json:"classifier"`
}
