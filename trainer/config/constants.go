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
	"github.com/mltrack/mltrack/pkg/experiment"
)

const (
	// DefaultValidationFraction is default share of rows held out for evaluation.
	DefaultValidationFraction = 0.2

	// DefaultRandomSeed is default seed of the split and the classifier.
	DefaultRandomSeed = 42

	// DefaultMaxIterations is default iteration cap of the classifier.
	DefaultMaxIterations = 200

	// DefaultLearningRate is default gradient descent step of the classifier.
	DefaultLearningRate = 0.1
)

const (
	// DefaultLogRotateMaxSize is default maximum size in megabytes of log files before rotation.
	DefaultLogRotateMaxSize = 300

	// DefaultLogRotateMaxAge is default maximum number of days to retain old log files.
	DefaultLogRotateMaxAge = 7

	// DefaultLogRotateMaxBackups is default maximum number of old log files to keep.
	DefaultLogRotateMaxBackups = 50
)

const (
	// DefaultCompareMetric is default metric runs are ranked by.
	DefaultCompareMetric = experiment.MetricAccuracy

	// DefaultDashboardRecentRuns is default number of runs listed on the dashboard.
	DefaultDashboardRecentRuns = 5

	// DefaultScoreConcurrency is default number of run directories scored in parallel.
	DefaultScoreConcurrency = 4
)

// SampleKinds are the accepted values of train.createSample.
var SampleKinds = []string{SampleSynthetic, SampleMixed, SampleIris}

const (
	// SampleSynthetic generates numeric features only.
	SampleSynthetic = "synthetic"

	// SampleMixed generates numeric and categorical features.
	SampleMixed = "mixed"

	// SampleIris writes the embedded iris dataset.
	SampleIris = "iris"

	// DefaultSampleRows is default number of rows of generated datasets.
	DefaultSampleRows = 200

	// DefaultSampleLabelColumn is the label column of generated datasets.
	DefaultSampleLabelColumn = "label"
)
