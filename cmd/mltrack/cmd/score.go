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
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mltrack/mltrack/cmd/dependency"
	"github.com/mltrack/mltrack/tracker"
	"github.com/mltrack/mltrack/tracker/reproducibility"
)

var scoreCmd = &cobra.Command{
	Use:   "score [run-dir...]",
	Short: "grade the reproducibility of runs",
	Long: `score inspects the artifacts of run directories and grades their completeness out of 100,
--all grades every run of the artifact root.`,
	DisableAutoGenTag: true,
	SilenceUsage:      true,
	RunE: func(cmd *cobra.Command, args []string) error {
		all, err := cmd.Flags().GetBool("all")
		if err != nil {
			return err
		}

		if all == (len(args) > 0) {
			return errors.New("score requires run directories or --all")
		}

		asJSON, err := cmd.Flags().GetBool("json")
		if err != nil {
			return err
		}

		ctx, cancel := dependency.SetupQuitSignalHandler(context.Background())
		defer cancel()

		t := tracker.New(cfg, d)
		defer t.Stop()

		scores, err := t.Score(ctx, args...)
		if err != nil {
			return err
		}

		if asJSON {
			return printScoresJSON(cmd, scores)
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "RUN\tCONFIG\tMETRICS\tMODEL\tREQUIREMENTS\tCONFIG VALID\tENVIRONMENT\tMODEL SIZE\tSCORE")
		for _, s := range scores {
			fmt.Fprintf(w, "%s\t%t\t%t\t%t\t%t\t%t\t%t\t%s\t%d/%d\n", filepath.Base(s.RunDir),
				s.HasConfig, s.HasMetrics, s.HasModel, s.HasRequirements, s.ConfigValid, s.EnvironmentMatches,
				s.HumanModelSize(), s.OverallScore, reproducibility.MaxScore)
		}

		return w.Flush()
	},
}

func printScoresJSON(cmd *cobra.Command, scores []*reproducibility.Score) error {
	out := make(map[string]*reproducibility.Score, len(scores))
	for _, s := range scores {
		out[filepath.Base(s.RunDir)] = s
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func init() {
	flags := scoreCmd.Flags()
	flags.Bool("all", false, "grade every run of the artifact root")
	flags.Bool("json", false, "print the scores as json keyed by run id")
	flags.String("artifacts-dir", cfg.Artifacts.Dir, "the root of run directories")
	flags.Int("concurrency", cfg.Compare.ScoreConcurrency, "the number of run directories graded in parallel")

	dependency.BindFlag(flags, "artifacts-dir", "artifacts.dir")
	dependency.BindFlag(flags, "concurrency", "compare.scoreConcurrency")
}
