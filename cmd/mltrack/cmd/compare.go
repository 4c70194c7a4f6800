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
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mltrack/mltrack/cmd/dependency"
	"github.com/mltrack/mltrack/internal/mterrors"
	"github.com/mltrack/mltrack/tracker"
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "compare the runs of an artifact root",
	Long: `compare loads every run of the artifact root, selects the best run by a metric and writes
comparison_report.md, summary.json and runs.json, optionally dashboard.md and the metric trend chart.`,
	Args:              cobra.NoArgs,
	DisableAutoGenTag: true,
	SilenceUsage:      true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := dependency.SetupQuitSignalHandler(context.Background())
		defer cancel()

		t := tracker.New(cfg, d)
		defer t.Stop()

		out := cmd.OutOrStdout()
		result, err := t.Compare(ctx)
		if errors.Is(err, mterrors.ErrNoRuns) {
			fmt.Fprintln(out, err.Error())
			return nil
		}

		if err != nil {
			return err
		}

		metric := cfg.Compare.Metric
		fmt.Fprintf(out, "runs: %d\n", len(result.Runs))
		fmt.Fprintf(out, "best by %s: %s (%s)\n", metric, result.Best.ID, result.Best.Metrics[metric])
		for _, path := range result.Reports {
			fmt.Fprintf(out, "wrote %s\n", path)
		}

		return nil
	},
}

func init() {
	flags := compareCmd.Flags()
	flags.String("artifacts-dir", cfg.Artifacts.Dir, "the root of run directories")
	flags.String("output-dir", cfg.Compare.OutputDir, "the directory reports are written to")
	flags.String("metric", cfg.Compare.Metric, "the metric runs are ranked by")
	flags.Bool("dashboard", cfg.Compare.Dashboard, "write dashboard.md")
	flags.Bool("plot", cfg.Compare.Plot, "write the metric trend chart")
	flags.Int("recent-runs", cfg.Compare.RecentRuns, "the number of runs listed on the dashboard")

	dependency.BindFlag(flags, "artifacts-dir", "artifacts.dir")
	dependency.BindFlag(flags, "output-dir", "compare.outputDir")
	dependency.BindFlag(flags, "metric", "compare.metric")
	dependency.BindFlag(flags, "dashboard", "compare.dashboard")
	dependency.BindFlag(flags, "plot", "compare.plot")
	dependency.BindFlag(flags, "recent-runs", "compare.recentRuns")
}
