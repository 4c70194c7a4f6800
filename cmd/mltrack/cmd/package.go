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
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mltrack/mltrack/tracker"
)

var packageCmd = &cobra.Command{
	Use:   "package <run-dir>",
	Short: "build the reproducibility package of a run",
	Long: `package copies the artifacts of a run to the output directory, regenerates requirements.txt
from the running binary and writes a README with the steps to reproduce the run.`,
	Args:              cobra.ExactArgs(1),
	DisableAutoGenTag: true,
	SilenceUsage:      true,
	RunE: func(cmd *cobra.Command, args []string) error {
		output, err := cmd.Flags().GetString("output")
		if err != nil {
			return err
		}

		if output == "" {
			return errors.New("package requires parameter output")
		}

		includeModel, err := cmd.Flags().GetBool("include-model")
		if err != nil {
			return err
		}

		t := tracker.New(cfg, d)
		defer t.Stop()

		if err := t.Package(args[0], output, includeModel); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "package written to %s\n", output)
		return nil
	},
}

func init() {
	flags := packageCmd.Flags()
	flags.StringP("output", "o", "", "the directory the package is written to")
	flags.Bool("include-model", false, "copy the model artifact into the package")
}
