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

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/mltrack/mltrack/version"
)

const (
	// Namespace is the namespace of every mltrack metric.
	Namespace = "mltrack"

	// TrainerSubsystem is the subsystem of training metrics.
	TrainerSubsystem = "trainer"

	// TrackerSubsystem is the subsystem of run tracking metrics.
	TrackerSubsystem = "tracker"
)

// Registry holds every mltrack metric.
var Registry = prometheus.NewRegistry()

// Variables declared for metrics.
var (
	TrainStartedCount = promauto.With(Registry).NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Subsystem: TrainerSubsystem,
		Name:      "training_started_total",
		Help:      "Counter of the number of the training started.",
	})

	TrainFailureCount = promauto.With(Registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Subsystem: TrainerSubsystem,
		Name:      "training_failure_total",
		Help:      "Counter of the number of failed training by stage.",
	}, []string{"stage"})

	TrainFinishedCount = promauto.With(Registry).NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Subsystem: TrainerSubsystem,
		Name:      "training_finished_total",
		Help:      "Counter of the number of the training finished.",
	})

	FitDuration = promauto.With(Registry).NewHistogram(prometheus.HistogramOpts{
		Namespace: Namespace,
		Subsystem: TrainerSubsystem,
		Name:      "fit_duration_seconds",
		Help:      "Histogram of the classifier fit duration.",
		Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
	})

	ValidationAccuracy = promauto.With(Registry).NewGauge(prometheus.GaugeOpts{
		Namespace: Namespace,
		Subsystem: TrainerSubsystem,
		Name:      "validation_accuracy",
		Help:      "Validation accuracy of the last finished training.",
	})

	RunsLoadedCount = promauto.With(Registry).NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Subsystem: TrackerSubsystem,
		Name:      "runs_loaded_total",
		Help:      "Counter of the number of runs loaded from disk.",
	})

	RunsSkippedCount = promauto.With(Registry).NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Subsystem: TrackerSubsystem,
		Name:      "runs_skipped_total",
		Help:      "Counter of the number of invalid runs skipped while loading.",
	})

	ReproducibilityScore = promauto.With(Registry).NewHistogram(prometheus.HistogramOpts{
		Namespace: Namespace,
		Subsystem: TrackerSubsystem,
		Name:      "reproducibility_score",
		Help:      "Histogram of computed reproducibility scores.",
		Buckets:   prometheus.LinearBuckets(0, 10, 11),
	})

	ReportsWrittenCount = promauto.With(Registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Subsystem: TrackerSubsystem,
		Name:      "reports_written_total",
		Help:      "Counter of the number of reports written by report file.",
	}, []string{"report"})

	VersionGauge = promauto.With(Registry).NewGaugeVec(prometheus.GaugeOpts{
		Namespace: Namespace,
		Name:      "version",
		Help:      "Version info of the binary.",
	}, []string{"major", "minor", "git_version", "git_commit", "platform", "build_time", "go_version"})
)

// WriteToTextfile writes every metric to filename in the text exposition format,
// for the node exporter textfile collector.
func WriteToTextfile(filename string) error {
	VersionGauge.WithLabelValues(version.Major, version.Minor, version.GitVersion, version.GitCommit, version.Platform, version.BuildTime, version.GoVersion).Set(1)
	return prometheus.WriteToTextfile(filename, Registry)
}
