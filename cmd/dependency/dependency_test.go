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

package dependency

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Console bool `yaml:"console" mapstructure:"console"`
	Train   struct {
		Input        string  `yaml:"input" mapstructure:"input"`
		LabelColumn  string  `yaml:"labelColumn" mapstructure:"labelColumn"`
		RandomSeed   int64   `yaml:"randomSeed" mapstructure:"randomSeed"`
		Fraction     float64 `yaml:"validationFraction" mapstructure:"validationFraction"`
		CreateSample string  `yaml:"createSample" mapstructure:"createSample"`
	} `yaml:"train" mapstructure:"train"`
}

func newCommand(cfg *testConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:  "mltrack",
		Args: cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return InitConfig(cmd, cfg)
		},
		RunE: func(cmd *cobra.Command, args []string) error { return nil },
	}
	InitCommandAndConfig(cmd)

	flags := cmd.Flags()
	flags.String("input", cfg.Train.Input, "")
	flags.Int64("seed", cfg.Train.RandomSeed, "")
	BindFlag(flags, "input", "train.input")
	BindFlag(flags, "seed", "train.randomSeed")
	return cmd
}

func TestInitConfig(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "mltrack.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte(`
train:
  input: data/file.csv
  labelColumn: species
  randomSeed: 7
`), 0644))

	tests := []struct {
		name   string
		args   []string
		env    map[string]string
		expect func(t *testing.T, cfg *testConfig, err error)
	}{
		{
			name: "defaults without config file",
			args: []string{},
			expect: func(t *testing.T, cfg *testConfig, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Equal("data.csv", cfg.Train.Input)
				assert.Equal(int64(42), cfg.Train.RandomSeed)
				assert.Equal(0.2, cfg.Train.Fraction)
			},
		},
		{
			name: "config file overrides defaults",
			args: []string{"--config", configFile},
			expect: func(t *testing.T, cfg *testConfig, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Equal("data/file.csv", cfg.Train.Input)
				assert.Equal("species", cfg.Train.LabelColumn)
				assert.Equal(int64(7), cfg.Train.RandomSeed)
				assert.Equal(0.2, cfg.Train.Fraction)
			},
		},
		{
			name: "environment overrides config file",
			args: []string{"--config", configFile},
			env:  map[string]string{"MLTRACK_TRAIN_LABELCOLUMN": "class", "MLTRACK_TRAIN_CREATESAMPLE": "mixed"},
			expect: func(t *testing.T, cfg *testConfig, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Equal("class", cfg.Train.LabelColumn)
				assert.Equal("mixed", cfg.Train.CreateSample)
			},
		},
		{
			name: "flags override config file",
			args: []string{"--config", configFile, "--input", "flag.csv", "--seed", "9", "--console"},
			expect: func(t *testing.T, cfg *testConfig, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Equal("flag.csv", cfg.Train.Input)
				assert.Equal(int64(9), cfg.Train.RandomSeed)
				assert.Equal("species", cfg.Train.LabelColumn)
				assert.True(cfg.Console)
			},
		},
		{
			name: "missing config file",
			args: []string{"--config", filepath.Join(t.TempDir(), "missing.yaml")},
			expect: func(t *testing.T, cfg *testConfig, err error) {
				assert.Error(t, err)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			DefaultConfigFile = filepath.Join(t.TempDir(), "absent.yaml")
			cfg := &testConfig{}
			cfg.Train.Input = "data.csv"
			cfg.Train.RandomSeed = 42
			cfg.Train.Fraction = 0.2

			cmd := newCommand(cfg)
			cmd.SetArgs(tc.args)
			cmd.SilenceErrors = true
			cmd.SilenceUsage = true
			tc.expect(t, cfg, cmd.Execute())
		})
	}
}
