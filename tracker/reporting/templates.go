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

package reporting

const comparisonReportTemplate = `# ML Experiment Comparison Report

**Total runs analyzed:** {{ .Summary.Count }}

## Summary Statistics

{{ range .Metrics -}}
- **Average {{ .Name }}:** {{ .Average }}
- **Best {{ .Name }}:** {{ .BestValue }} (run: {{ .BestRunID }})
{{ end }}
{{- if .Best }}
## Best Run by {{ .Metric }}

**{{ .Best.ID }}** with {{ .Metric }} {{ index .Best.Metrics .Metric }}
{{ end }}
## Individual Runs
{{ range $run := .Runs }}
### {{ $run.ID }}

**Configuration:**
- input_path: {{ $run.Config.InputPath }}
- label_column: {{ $run.Config.LabelColumn }}
- max_iterations: {{ $run.Config.MaxIterations }}
- random_seed: {{ $run.Config.RandomSeed }}
- validation_fraction: {{ $run.Config.ValidationFraction }}

**Metrics:**
{{ range $name := $run.Metrics.Names -}}
- {{ $name }}: {{ index $run.Metrics $name }}
{{ end -}}
{{ end }}
{{- if .Improvements }}
## Improvements Over Time

{{ range .Improvements -}}
- **{{ .Earlier.ID }}** → **{{ .Later.ID }}**: {{ $.Metric }} {{ index .Earlier.Metrics $.Metric }} → {{ index .Later.Metrics $.Metric }}
{{ end -}}
{{ end -}}
`

const dashboardTemplate = `# ML Training Dashboard

**Total Runs:** {{ .Count }}

{{ range .Best -}}
**Best {{ .Name }}:** {{ .BestValue }} (run: {{ .BestRunID }})
{{ end }}
## Recent Runs

{{ range .Recent -}}
- **{{ .ID }}**: accuracy={{ .Accuracy }}, f1={{ .F1 }}, model={{ .ModelSize }}{{ with .Trained }}, trained={{ . }}{{ end }}
{{ end -}}
`

const experimentReportTemplate = `# Experiment Report

## Goal
{{ .Goal }}

## Baseline
**Run ID:** {{ .Baseline.ID }}
**Command:** {{ .Baseline.Config }}

**Metrics:**
{{ range $name := .Baseline.Metrics.Names -}}
- {{ $name }}: {{ index $.Baseline.Metrics $name }}
{{ end }}
## Variant
**Run ID:** {{ .Variant.ID }}
**Command:** {{ .Variant.Config }}

**Metrics:**
{{ range $name := .Variant.Metrics.Names -}}
- {{ $name }}: {{ index $.Variant.Metrics $name }}
{{ end }}
## What Changed and Why
{{ .Interpretation }}

## Differences

{{ range .Deltas -}}
- **{{ .Name }}:** {{ .Delta | delta }}
{{ end }}
## One Failure + Lesson
{{ .Lesson }}

## Next Experiment
{{ .NextExperiment }}
{{ if .Caveat }}
## Risk / Caveat
{{ .Caveat }}
{{ end }}
---

*Report generated using artifacts from:*
- Baseline: {{ .Baseline.ID }}
- Variant: {{ .Variant.ID }}
`
