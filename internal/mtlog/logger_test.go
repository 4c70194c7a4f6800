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

package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestLogger_Init(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
		console bool
		expect  func(t *testing.T, dir string)
	}{
		{
			name:    "console logger",
			console: true,
			expect: func(t *testing.T, dir string) {
				assert := assert.New(t)
				assert.False(IsDebug())
				entries, err := os.ReadDir(dir)
				assert.NoError(err)
				assert.Len(entries, 0)
			},
		},
		{
			name:    "verbose console logger",
			console: true,
			verbose: true,
			expect: func(t *testing.T, dir string) {
				assert := assert.New(t)
				assert.True(IsDebug())
			},
		},
		{
			name: "file logger",
			expect: func(t *testing.T, dir string) {
				assert := assert.New(t)
				WithRun("run_20260101_000000").Infof("persisted %d artifacts", 4)
				Sync()

				data, err := os.ReadFile(filepath.Join(dir, CoreLogFileName))
				assert.NoError(err)
				assert.Contains(string(data), "persisted 4 artifacts")
				assert.Contains(string(data), `"runID":"run_20260101_000000"`)
				assert.FileExists(filepath.Join(dir, TrainLogFileName))
				assert.FileExists(filepath.Join(dir, CompareLogFileName))
			},
		},
		{
			name: "file logger routes train and compare entries",
			expect: func(t *testing.T, dir string) {
				assert := assert.New(t)
				WithInput("data/iris.csv", "label").Infof("loaded %d rows", 150)
				CompareLogger.With("runDir", "artifacts/run_1").Warn("skip run")
				Sync()

				train, err := os.ReadFile(filepath.Join(dir, TrainLogFileName))
				assert.NoError(err)
				assert.Contains(string(train), "loaded 150 rows")
				assert.Contains(string(train), `"inputPath":"data/iris.csv"`)
				assert.NotContains(string(train), "skip run")

				compare, err := os.ReadFile(filepath.Join(dir, CompareLogFileName))
				assert.NoError(err)
				assert.Contains(string(compare), "skip run")
				assert.NotContains(string(compare), "loaded 150 rows")

				core, err := os.ReadFile(filepath.Join(dir, CoreLogFileName))
				assert.NoError(err)
				assert.NotContains(string(core), "loaded 150 rows")
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, Init(tc.verbose, tc.console, dir, LogRotateConfig{}))
			TrainLogger.Info("touch")
			CompareLogger.Info("touch")
			Sync()
			tc.expect(t, dir)
		})
	}
}

func TestLogger_SetLevel(t *testing.T) {
	assert := assert.New(t)
	assert.NoError(Init(false, true, t.TempDir(), LogRotateConfig{}))
	assert.False(IsDebug())

	SetLevel(zapcore.DebugLevel)
	assert.True(IsDebug())
	assert.True(With("k", "v").IsDebug())

	SetLevel(zapcore.InfoLevel)
	assert.False(IsDebug())
}
