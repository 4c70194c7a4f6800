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
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mltrack/mltrack/cmd/dependency"
	"github.com/mltrack/mltrack/trainer"
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "train a classifier and persist the run",
	Long: `train loads the input csv, holds out a stratified validation split, fits the transform
and a logistic regression classifier, evaluates it and persists the run under the artifact root.`,
	Args:              cobra.NoArgs,
	DisableAutoGenTag: true,
	SilenceUsage:      true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := dependency.SetupQuitSignalHandler(context.Background())
		defer cancel()

		t, err := trainer.New(cfg, d)
		if err != nil {
			return err
		}
		defer t.Stop()

		run, err := t.Train(ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "run: %s\n", run.ID)
		fmt.Fprintf(out, "dir: %s\n", run.Dir)
		for _, name := range run.Metrics.Names() {
			fmt.Fprintf(out, "%s: %s\n", name, run.Metrics[name])
		}

		return nil
	},
}

func init() {
	flags := trainCmd.Flags()
	flags.String("input", cfg.Train.Input, "the csv file to train on")
	flags.String("label-column", cfg.Train.LabelColumn, "the column holding the class label")
	flags.Float64("validation-fraction", cfg.Train.ValidationFraction, "the share of rows held out for evaluation")
	flags.Int64("seed", cfg.Train.RandomSeed, "the seed of the split and the classifier")
	flags.Int("max-iterations", cfg.Train.MaxIterations, "the iteration cap of the classifier")
	flags.Float64("learning-rate", cfg.Train.LearningRate, "the gradient descent step of the classifier")
	flags.String("artifacts-dir", cfg.Artifacts.Dir, "the root of run directories")
	flags.String("create-sample", cfg.Train.CreateSample, "generate a sample dataset at the input path before training, synthetic, mixed or iris")
	flags.Int("sample-rows", cfg.Train.SampleRows, "the number of rows of the generated sample dataset")

	dependency.BindFlag(flags, "input", "train.input")
	dependency.BindFlag(flags, "label-column", "train.labelColumn")
	dependency.BindFlag(flags, "validation-fraction", "train.validationFraction")
	dependency.BindFlag(flags, "seed", "train.randomSeed")
	dependency.BindFlag(flags, "max-iterations", "train.maxIterations")
	dependency.BindFlag(flags, "learning-rate", "train.learningRate")
	dependency.BindFlag(flags, "artifacts-dir", "artifacts.dir")
	dependency.BindFlag(flags, "create-sample", "train.createSample")
	dependency.BindFlag(flags, "sample-rows", "train.sampleRows")
}
