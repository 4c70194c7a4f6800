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

package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mltrack/mltrack/tracker"
	"github.com/mltrack/mltrack/tracker/reporting"
)

var experiment tracker.ExperimentInput

var reportCmd = &cobra.Command{
	Use:   "report <baseline-run-dir> <variant-run-dir>",
	Short: "write an experiment report comparing a variant run to a baseline run",
	Long: `report writes a markdown experiment report with the goal, both runs with their commands
and metrics, the metric differences and the interpretation of the change.`,
	Args:              cobra.ExactArgs(2),
	DisableAutoGenTag: true,
	SilenceUsage:      true,
	RunE: func(cmd *cobra.Command, args []string) error {
		output, err := cmd.Flags().GetString("output")
		if err != nil {
			return err
		}

		if output == "" {
			output = filepath.Join(cfg.Compare.OutputDir, reporting.ExperimentReportFileName)
		}

		t := tracker.New(cfg, d, tracker.WithReporter(reporting.New(filepath.Dir(output))))
		defer t.Stop()

		path, err := t.Report(args[0], args[1], experiment, filepath.Base(output))
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
		return nil
	},
}

func init() {
	flags := reportCmd.Flags()
	flags.StringP("output", "o", "", "the report file, default is experiment_report.md in the compare output directory")
	flags.StringVar(&experiment.Goal, "goal", "", "what the variant tried to improve")
	flags.StringVar(&experiment.Interpretation, "interpretation", "", "why the metrics changed")
	flags.StringVar(&experiment.Lesson, "lesson", "", "one failure and what was learned from it")
	flags.StringVar(&experiment.NextExperiment, "next", "", "the follow up experiment")
	flags.StringVar(&experiment.Caveat, "caveat", "", "an optional limitation of the result")
}
