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
	"os"

	"github.com/spf13/cobra"

	"github.com/mltrack/mltrack/cmd/dependency"
	logger "github.com/mltrack/mltrack/internal/mtlog"
	"github.com/mltrack/mltrack/pkg/mtpath"
	"github.com/mltrack/mltrack/trainer/config"
	"github.com/mltrack/mltrack/version"
)

var (
	// cfg is the default config, initialized before any init function reads it.
	cfg = config.New()

	// d is the path layout of the executing command.
	d mtpath.Mtpath
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "mltrack",
	Short: "train classifiers and track experiment runs",
	Long: `mltrack trains a classifier on a tabular csv file, persists every run as an immutable
directory of artifacts and compares, scores and packages the runs of an artifact root.`,
	Args:              cobra.NoArgs,
	DisableAutoGenTag: true,
	SilenceUsage:      true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Load config.
		if err := dependency.InitConfig(cmd, cfg); err != nil {
			return err
		}

		// Convert config.
		if err := cfg.Convert(); err != nil {
			return err
		}

		// Validate config.
		if err := cfg.Validate(); err != nil {
			return err
		}

		// Initialize mtpath.
		var err error
		d, err = initMtpath(cfg)
		if err != nil {
			return err
		}

		// Initialize logger.
		rotateConfig := logger.LogRotateConfig{
			MaxSize:    cfg.Log.MaxSize,
			MaxAge:     cfg.Log.MaxAge,
			MaxBackups: cfg.Log.MaxBackups,
		}
		if err := logger.Init(cfg.Verbose, cfg.Console, d.LogDir(), rotateConfig); err != nil {
			return fmt.Errorf("init mltrack logger: %w", err)
		}

		logger.Debugf("version: %s", version.Version())
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

func init() {
	// Initialize command and config.
	dependency.InitCommandAndConfig(rootCmd)

	rootCmd.AddCommand(trainCmd, compareCmd, scoreCmd, packageCmd, reportCmd)
}

func initMtpath(cfg *config.Config) (mtpath.Mtpath, error) {
	options := []mtpath.Option{
		mtpath.WithArtifactsDir(cfg.Artifacts.Dir),
		mtpath.WithReportsDir(cfg.Compare.OutputDir),
	}

	if cfg.Log.Dir != "" {
		options = append(options, mtpath.WithLogDir(cfg.Log.Dir))
	}

	return mtpath.New(options...)
}
