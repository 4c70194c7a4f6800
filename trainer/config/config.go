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

package config

import (
	"errors"
	"path/filepath"

	"golang.org/x/exp/slices"

	"github.com/mltrack/mltrack/cmd/dependency/base"
	"github.com/mltrack/mltrack/pkg/experiment"
	"github.com/mltrack/mltrack/pkg/mtpath"
)

type Config struct {
	// Base options.
	base.Options `yaml:",inline" mapstructure:",squash"`

	// Artifacts configuration.
	Artifacts ArtifactsConfig `yaml:"artifacts" mapstructure:"artifacts"`

	// Log configuration.
	Log LogConfig `yaml:"log" mapstructure:"log"`

	// Train configuration.
	Train TrainConfig `yaml:"train" mapstructure:"train"`

	// Compare configuration.
	Compare CompareConfig `yaml:"compare" mapstructure:"compare"`

	// Metrics configuration.
	Metrics MetricsConfig `yaml:"metrics" mapstructure:"metrics"`
}

type ArtifactsConfig struct {
	// Dir is the root of run directories.
	Dir string `yaml:"dir" mapstructure:"dir"`
}

type LogConfig struct {
	// Dir is the log directory.
	Dir string `yaml:"dir" mapstructure:"dir"`

	// Maximum size in megabytes of log files before rotation (default: 300)
	MaxSize int `yaml:"maxSize" mapstructure:"maxSize"`

	// Maximum number of days to retain old log files (default: 7)
	MaxAge int `yaml:"maxAge" mapstructure:"maxAge"`

	// Maximum number of old log files to keep (default: 50)
	MaxBackups int `yaml:"maxBackups" mapstructure:"maxBackups"`
}

type TrainConfig struct {
	// Input is the csv file to train on.
	Input string `yaml:"input" mapstructure:"input"`

	// LabelColumn is the column holding the class label.
	LabelColumn string `yaml:"labelColumn" mapstructure:"labelColumn"`

	// ValidationFraction is the share of rows held out for evaluation.
	ValidationFraction float64 `yaml:"validationFraction" mapstructure:"validationFraction"`

	// RandomSeed seeds the split and the classifier.
	RandomSeed int64 `yaml:"randomSeed" mapstructure:"randomSeed"`

	// MaxIterations caps the classifier iterations.
	MaxIterations int `yaml:"maxIterations" mapstructure:"maxIterations"`

	// LearningRate is the gradient descent step of the classifier.
	LearningRate float64 `yaml:"learningRate" mapstructure:"learningRate"`

	// CreateSample generates a sample dataset at Input before training, synthetic, mixed or iris.
	CreateSample string `yaml:"createSample" mapstructure:"createSample"`

	// SampleRows is the number of rows of generated datasets.
	SampleRows int `yaml:"sampleRows" mapstructure:"sampleRows"`
}

type CompareConfig struct {
	// OutputDir is the directory reports are written to.
	OutputDir string `yaml:"outputDir" mapstructure:"outputDir"`

	// Metric is the metric runs are ranked by.
	Metric string `yaml:"metric" mapstructure:"metric"`

	// Dashboard enables dashboard.md.
	Dashboard bool `yaml:"dashboard" mapstructure:"dashboard"`

	// Plot enables the metric trend chart.
	Plot bool `yaml:"plot" mapstructure:"plot"`

	// RecentRuns is the number of runs listed on the dashboard.
	RecentRuns int `yaml:"recentRuns" mapstructure:"recentRuns"`

	// ScoreConcurrency is the number of run directories scored in parallel.
	ScoreConcurrency int `yaml:"scoreConcurrency" mapstructure:"scoreConcurrency"`
}

type MetricsConfig struct {
	// Textfile is the prometheus textfile metrics are written to when a command exits.
	Textfile string `yaml:"textfile" mapstructure:"textfile"`
}

// New default configuration.
func New() *Config {
	return &Config{
		Artifacts: ArtifactsConfig{
			Dir: mtpath.DefaultArtifactsDir,
		},
		Log: LogConfig{
			MaxSize:    DefaultLogRotateMaxSize,
			MaxAge:     DefaultLogRotateMaxAge,
			MaxBackups: DefaultLogRotateMaxBackups,
		},
		Train: TrainConfig{
			ValidationFraction: DefaultValidationFraction,
			RandomSeed:         DefaultRandomSeed,
			MaxIterations:      DefaultMaxIterations,
			LearningRate:       DefaultLearningRate,
			SampleRows:         DefaultSampleRows,
		},
		Compare: CompareConfig{
			OutputDir:        mtpath.DefaultReportsDir,
			Metric:           DefaultCompareMetric,
			RecentRuns:       DefaultDashboardRecentRuns,
			ScoreConcurrency: DefaultScoreConcurrency,
		},
	}
}

// Validate config parameters.
func (cfg *Config) Validate() error {
	if cfg.Artifacts.Dir == "" {
		return errors.New("artifacts requires parameter dir")
	}

	if cfg.Train.ValidationFraction <= 0 || cfg.Train.ValidationFraction >= 1 {
		return errors.New("train requires parameter validationFraction in (0, 1)")
	}

	if cfg.Train.MaxIterations <= 0 {
		return errors.New("train requires parameter maxIterations")
	}

	if cfg.Train.LearningRate <= 0 {
		return errors.New("train requires parameter learningRate")
	}

	if cfg.Train.CreateSample != "" {
		if !slices.Contains(SampleKinds, cfg.Train.CreateSample) {
			return errors.New("train requires parameter createSample to be synthetic, mixed or iris")
		}

		if cfg.Train.SampleRows < 2 {
			return errors.New("train requires parameter sampleRows")
		}
	}

	if cfg.Compare.Metric == "" {
		return errors.New("compare requires parameter metric")
	}

	if cfg.Compare.OutputDir == "" {
		return errors.New("compare requires parameter outputDir")
	}

	if cfg.Compare.RecentRuns <= 0 {
		return errors.New("compare requires parameter recentRuns")
	}

	if cfg.Compare.ScoreConcurrency <= 0 {
		return errors.New("compare requires parameter scoreConcurrency")
	}

	return nil
}

// Convert fills derived parameters.
func (cfg *Config) Convert() error {
	if cfg.Log.Dir == "" {
		cfg.Log.Dir = mtpath.DefaultLogDir
	}

	if cfg.Train.CreateSample != "" {
		if cfg.Train.Input == "" {
			cfg.Train.Input = filepath.Join("data", cfg.Train.CreateSample+".csv")
		}

		if cfg.Train.LabelColumn == "" {
			cfg.Train.LabelColumn = DefaultSampleLabelColumn
		}
	}

	return nil
}

// RunConfig returns the run config of the train section.
func (cfg *Config) RunConfig() experiment.TrainConfig {
	return experiment.TrainConfig{
		InputPath:          cfg.Train.Input,
		LabelColumn:        cfg.Train.LabelColumn,
		ValidationFraction: cfg.Train.ValidationFraction,
		RandomSeed:         cfg.Train.RandomSeed,
		MaxIterations:      cfg.Train.MaxIterations,
	}
}
