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

package experiment

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/mltrack/mltrack/internal/mterrors"
)

// Required config.json fields of a reproducible run.
var RequiredConfigFields = []string{"input_path", "label_column", "random_seed", "max_iterations"}

// TrainConfig fully determines a training run together with the input file content.
type TrainConfig struct {
	// InputPath is the csv file to train on.
	InputPath string `json:"input_path" mapstructure:"input_path" validate:"required"`

	// LabelColumn is the column holding the class label.
	LabelColumn string `json:"label_column" mapstructure:"label_column" validate:"required"`

	// ValidationFraction is the share of rows held out for evaluation.
	ValidationFraction float64 `json:"validation_fraction" mapstructure:"validation_fraction" validate:"gt=0,lt=1"`

	// RandomSeed seeds the split and the classifier.
	RandomSeed int64 `json:"random_seed" mapstructure:"random_seed"`

	// MaxIterations caps the classifier iteration budget.
	MaxIterations int `json:"max_iterations" mapstructure:"max_iterations" validate:"gt=0"`
}

var validate = validator.New()

// Validate checks the config constraints.
func (cfg TrainConfig) Validate() error {
	if err := validate.Struct(cfg); err != nil {
		return mterrors.NewConfigError("", err)
	}

	return nil
}

// String returns the command line equivalent of cfg.
func (cfg TrainConfig) String() string {
	return fmt.Sprintf("mltrack train --input %s --label-column %s --validation-fraction %g --seed %d --max-iterations %d",
		cfg.InputPath, cfg.LabelColumn, cfg.ValidationFraction, cfg.RandomSeed, cfg.MaxIterations)
}

// Run is a loaded artifact bundle.
type Run struct {
	// ID is the run id, it equals the base name of Dir.
	ID string `json:"run_id"`

	// Config is the training config of the run.
	Config TrainConfig `json:"config"`

	// Metrics is the evaluation result of the run.
	Metrics Metrics `json:"metrics"`

	// Dir is the run directory.
	Dir string `json:"-"`

	// ModelArtifactPresent reports whether the model artifact exists.
	ModelArtifactPresent bool `json:"-"`

	// ReportArtifactPresent reports whether the validation report exists.
	ReportArtifactPresent bool `json:"-"`
}
