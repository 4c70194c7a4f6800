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
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	logger "github.com/mltrack/mltrack/internal/mtlog"
	"github.com/mltrack/mltrack/pkg/mtpath"
)

const (
	// EnvPrefix is the environment prefix of config keys, MLTRACK_TRAIN_INPUT sets train.input.
	EnvPrefix = "mltrack"

	// configKeyAnnotation maps a flag to its config key.
	configKeyAnnotation = "mltrack_config_key"
)

// DefaultConfigFile is read when no --config flag is given and the file exists.
var DefaultConfigFile = filepath.Join(mtpath.DefaultWorkHome, "mltrack.yaml")

// InitCommandAndConfig adds the global flags and the version command to the root command.
func InitCommandAndConfig(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.String("config", "", fmt.Sprintf("the path of configuration file with yaml extension name, default is %s", DefaultConfigFile))
	flags.Bool("console", false, "whether logger output records to the stdout")
	flags.Bool("verbose", false, "whether logger use debug level")
	flags.String("log-dir", "", "the log directory, default is "+mtpath.DefaultLogDir)
	flags.String("metrics-textfile", "", "the prometheus textfile metrics are written to on exit")

	BindFlag(flags, "console", "console")
	BindFlag(flags, "verbose", "verbose")
	BindFlag(flags, "log-dir", "log.dir")
	BindFlag(flags, "metrics-textfile", "metrics.textfile")

	cmd.AddCommand(VersionCmd)
}

// BindFlag marks flag name of flags as the command line source of config key.
func BindFlag(flags *pflag.FlagSet, name, key string) {
	if err := flags.SetAnnotation(name, configKeyAnnotation, []string{key}); err != nil {
		panic(err)
	}
}

// InitConfig loads cfg from the config file, MLTRACK_ environment variables
// and the bound flags of the executing command, in increasing precedence.
func InitConfig(cmd *cobra.Command, cfg any) error {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var bindErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		keys := f.Annotations[configKeyAnnotation]
		if len(keys) == 0 {
			return
		}

		// Unchanged flags must not override values of the config file.
		if !f.Changed {
			return
		}

		if err := v.BindPFlag(keys[0], f); err != nil {
			bindErr = err
		}
	})
	if bindErr != nil {
		return bindErr
	}

	configFile, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", configFile, err)
		}
	} else if _, err := os.Stat(DefaultConfigFile); err == nil {
		v.SetConfigFile(DefaultConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", DefaultConfigFile, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}

	if err := bindEnvs(v, cfg); err != nil {
		return err
	}

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("cannot unmarshal config: %w", err)
	}

	if used := v.ConfigFileUsed(); used != "" {
		logger.Debugf("using config file %s", used)
	}

	return nil
}

// bindEnvs registers every key of cfg so that AutomaticEnv applies to keys
// absent from the config file.
func bindEnvs(v *viper.Viper, cfg any) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return err
	}

	defaults := viper.New()
	if err := defaults.MergeConfigMap(m); err != nil {
		return err
	}

	for _, key := range defaults.AllKeys() {
		if err := v.BindEnv(key); err != nil {
			return err
		}
		v.SetDefault(key, defaults.Get(key))
	}

	return nil
}

// SetupQuitSignalHandler returns a context canceled on SIGINT or SIGTERM.
func SetupQuitSignalHandler(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
}
