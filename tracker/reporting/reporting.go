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

//go:generate mockgen -destination mocks/reporting_mock.go -source reporting.go -package mocks

package reporting

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/docker/go-units"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	logger "github.com/mltrack/mltrack/internal/mtlog"
	"github.com/mltrack/mltrack/pkg/experiment"
	"github.com/mltrack/mltrack/pkg/runid"
	"github.com/mltrack/mltrack/tracker/comparison"
	"github.com/mltrack/mltrack/trainer/metrics"
	"github.com/mltrack/mltrack/trainer/storage"
)

const (
	// ComparisonReportFileName is the file name of the markdown comparison report.
	ComparisonReportFileName = "comparison_report.md"

	// SummaryFileName is the file name of the serialized summary statistics.
	SummaryFileName = "summary.json"

	// RunsFileName is the file name of the run list.
	RunsFileName = "runs.json"

	// DashboardFileName is the file name of the dashboard.
	DashboardFileName = "dashboard.md"

	// TrendFileSuffix follows the metric name in the file name of a trend chart.
	TrendFileSuffix = "_trend.png"

	// ExperimentReportFileName is the default file name of the experiment report.
	ExperimentReportFileName = "experiment_report.md"

	// DefaultRecentRuns is the number of runs listed on the dashboard.
	DefaultRecentRuns = 5

	// trainedLayout formats run creation times on the dashboard.
	trainedLayout = "2006-01-02 15:04:05 UTC"
)

// notAvailable is rendered for metrics a run does not report.
const notAvailable = "N/A"

// dashboardMetrics are the metrics whose best run is shown on the dashboard.
var dashboardMetrics = []string{experiment.MetricAccuracy, experiment.MetricF1Macro}

var (
	comparisonReport = template.Must(template.New("comparison").Parse(comparisonReportTemplate))
	dashboard        = template.Must(template.New("dashboard").Parse(dashboardTemplate))
	experimentReport = template.Must(template.New("experiment").Funcs(template.FuncMap{"delta": formatDelta}).Parse(experimentReportTemplate))
)

// Reporter is the interface used for writing reports.
type Reporter interface {
	// WriteSummary writes comparison_report.md, summary.json and runs.json,
	// it returns the written paths.
	WriteSummary(runs []*experiment.Run, metric string) ([]string, error)

	// WriteDashboard writes dashboard.md listing the recent runs newest first.
	WriteDashboard(runs []*experiment.Run, recent int) (string, error)

	// WriteTrend writes the metric trend chart.
	WriteTrend(runs []*experiment.Run, metric string) (string, error)

	// WriteExperimentReport writes the baseline versus variant report to name.
	WriteExperimentReport(report *ExperimentReport, name string) (string, error)

	// OutputDir returns the directory reports are written to.
	OutputDir() string
}

type reporter struct {
	outputDir string
}

// New returns a new Reporter writing to outputDir.
func New(outputDir string) Reporter {
	return &reporter{outputDir: outputDir}
}

// OutputDir returns the directory reports are written to.
func (r *reporter) OutputDir() string {
	return r.outputDir
}

type metricView struct {
	Name      string
	Average   experiment.Value
	BestValue experiment.Value
	BestRunID string
}

func metricViews(summary *comparison.Summary, names []string) []metricView {
	var views []metricView
	for _, name := range names {
		m, ok := summary.Metrics[name]
		if !ok {
			continue
		}

		views = append(views, metricView{
			Name:      name,
			Average:   experiment.Float(m.Average),
			BestValue: m.BestValue,
			BestRunID: m.BestRunID,
		})
	}

	return views
}

func summaryNames(summary *comparison.Summary) []string {
	names := maps.Keys(summary.Metrics)
	slices.Sort(names)
	return names
}

// WriteSummary writes comparison_report.md, summary.json and runs.json.
func (r *reporter) WriteSummary(runs []*experiment.Run, metric string) ([]string, error) {
	if err := os.MkdirAll(r.outputDir, 0755); err != nil {
		return nil, err
	}

	summary := comparison.Summarize(runs)
	data := struct {
		Summary      *comparison.Summary
		Metrics      []metricView
		Metric       string
		Best         *experiment.Run
		Runs         []*experiment.Run
		Improvements []comparison.Improvement
	}{
		Summary:      summary,
		Metrics:      metricViews(summary, summaryNames(summary)),
		Metric:       metric,
		Runs:         runs,
		Improvements: comparison.FindImprovements(runs, metric),
	}

	if best, err := comparison.SelectBest(runs, metric); err == nil {
		data.Best = best
	}

	var paths []string
	path, err := r.render(comparisonReport, ComparisonReportFileName, data)
	if err != nil {
		return nil, err
	}
	paths = append(paths, path)

	for _, f := range []struct {
		name string
		v    any
	}{
		{SummaryFileName, summary},
		{RunsFileName, nonNil(runs)},
	} {
		path := filepath.Join(r.outputDir, f.name)
		if err := storage.WriteJSON(path, f.v); err != nil {
			return nil, err
		}

		r.written(f.name)
		paths = append(paths, path)
	}

	return paths, nil
}

func nonNil(runs []*experiment.Run) []*experiment.Run {
	if runs == nil {
		return []*experiment.Run{}
	}

	return runs
}

type recentRun struct {
	ID        string
	Accuracy  string
	F1        string
	ModelSize string
	Trained   string
}

// WriteDashboard writes dashboard.md.
func (r *reporter) WriteDashboard(runs []*experiment.Run, recent int) (string, error) {
	if err := os.MkdirAll(r.outputDir, 0755); err != nil {
		return "", err
	}

	if recent <= 0 {
		recent = DefaultRecentRuns
	}

	start := 0
	if len(runs) > recent {
		start = len(runs) - recent
	}

	var views []recentRun
	for i := len(runs) - 1; i >= start; i-- {
		run := runs[i]
		views = append(views, recentRun{
			ID:        run.ID,
			Accuracy:  formatMetric(run.Metrics, experiment.MetricAccuracy),
			F1:        formatMetric(run.Metrics, experiment.MetricF1Macro),
			ModelSize: modelSize(run),
			Trained:   trainedAt(run),
		})
	}

	summary := comparison.Summarize(runs)
	return r.render(dashboard, DashboardFileName, struct {
		Count  int
		Best   []metricView
		Recent []recentRun
	}{
		Count:  summary.Count,
		Best:   metricViews(summary, dashboardMetrics),
		Recent: views,
	})
}

// trainedAt formats the creation time encoded in the run id, runs named
// without a run id have none.
func trainedAt(run *experiment.Run) string {
	t, err := runid.RunID(run.ID).Time()
	if err != nil {
		return ""
	}

	return t.Format(trainedLayout)
}

func formatMetric(m experiment.Metrics, name string) string {
	v, ok := m.Get(name)
	if !ok {
		return notAvailable
	}

	return v.String()
}

func modelSize(run *experiment.Run) string {
	if !run.ModelArtifactPresent || run.Dir == "" {
		return notAvailable
	}

	info, err := os.Stat(filepath.Join(run.Dir, storage.ModelFileName))
	if err != nil {
		return notAvailable
	}

	return units.HumanSize(float64(info.Size()))
}

// ExperimentReport is a structured baseline versus variant comparison.
type ExperimentReport struct {
	// Goal is what the variant tried to improve.
	Goal string

	// Baseline is the reference run.
	Baseline *experiment.Run

	// Variant is the changed run.
	Variant *experiment.Run

	// Interpretation explains why the metrics changed.
	Interpretation string

	// Lesson is one failure and what was learned from it.
	Lesson string

	// NextExperiment is the follow up idea.
	NextExperiment string

	// Caveat is an optional limitation of the result.
	Caveat string
}

type deltaView struct {
	Name  string
	Delta comparison.Delta
}

// WriteExperimentReport writes the experiment report to name under the output directory.
func (r *reporter) WriteExperimentReport(report *ExperimentReport, name string) (string, error) {
	if report.Baseline == nil || report.Variant == nil {
		return "", fmt.Errorf("experiment report requires baseline and variant runs")
	}

	if err := os.MkdirAll(r.outputDir, 0755); err != nil {
		return "", err
	}

	if name == "" {
		name = ExperimentReportFileName
	}

	diff := comparison.Diff(report.Baseline, report.Variant)
	var deltas []deltaView
	for _, metric := range report.Baseline.Metrics.Names() {
		if d, ok := diff.Deltas[metric]; ok {
			deltas = append(deltas, deltaView{Name: metric, Delta: d})
		}
	}

	return r.render(experimentReport, name, struct {
		*ExperimentReport
		Deltas []deltaView
	}{
		ExperimentReport: report,
		Deltas:           deltas,
	})
}

// formatDelta renders the absolute delta with sign and the relative change in percent when defined.
func formatDelta(d comparison.Delta) string {
	if d.Relative == nil {
		return fmt.Sprintf("%+.4f", d.Absolute)
	}

	return fmt.Sprintf("%+.4f (%+.1f%%)", d.Absolute, *d.Relative*100)
}

func (r *reporter) render(tmpl *template.Template, name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	path := filepath.Join(r.outputDir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return "", err
	}

	r.written(name)
	return path, nil
}

func (r *reporter) written(name string) {
	metrics.ReportsWrittenCount.WithLabelValues(name).Inc()
	logger.CompareLogger.Debugf("report %s written to %s", name, r.outputDir)
}
