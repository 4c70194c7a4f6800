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

package environment

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mltrack/mltrack/pkg/experiment"
)

func TestCaptureDependencies(t *testing.T) {
	tests := []struct {
		name   string
		read   buildInfoReader
		expect func(t *testing.T, deps []Dependency)
	}{
		{
			name: "build info unavailable",
			read: func() (*debug.BuildInfo, bool) { return nil, false },
			expect: func(t *testing.T, deps []Dependency) {
				assert := assert.New(t)
				assert.Len(deps, len(KeyModules))
				for i, d := range deps {
					assert.Equal(KeyModules[i], d.Path)
					assert.Equal(unknownVersion, d.Version)
				}
			},
		},
		{
			name: "sorted with replacements applied",
			read: func() (*debug.BuildInfo, bool) {
				return &debug.BuildInfo{
					Deps: []*debug.Module{
						{Path: "go.uber.org/zap", Version: "v1.21.0"},
						{Path: "github.com/gocarina/gocsv", Version: "v0.0.1", Replace: &debug.Module{Path: "github.com/fork/gocsv", Version: "v0.0.2"}},
						{Path: "github.com/montanaflynn/stats", Version: "v0.6.6"},
					},
				}, true
			},
			expect: func(t *testing.T, deps []Dependency) {
				assert := assert.New(t)
				assert.Equal([]Dependency{
					{Path: "github.com/fork/gocsv", Version: "v0.0.2"},
					{Path: "github.com/montanaflynn/stats", Version: "v0.6.6"},
					{Path: "go.uber.org/zap", Version: "v1.21.0"},
				}, deps)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.expect(t, captureDependencies(tc.read))
		})
	}
}

func TestRequirements(t *testing.T) {
	assert := assert.New(t)
	deps := []Dependency{
		{Path: "github.com/gocarina/gocsv", Version: "v0.0.0-20220531201732-5f969b02b902"},
		{Path: "github.com/sjwhitworth/golearn", Version: "v0.0.0-20211014193759-a8b69c276cd8"},
	}

	var buf bytes.Buffer
	assert.NoError(WriteRequirements(&buf, deps))
	assert.Equal("github.com/gocarina/gocsv v0.0.0-20220531201732-5f969b02b902\ngithub.com/sjwhitworth/golearn v0.0.0-20211014193759-a8b69c276cd8\n", buf.String())
	assert.True(MentionsKeyModule(buf.String()))

	parsed, err := ParseRequirements(strings.NewReader("# header\n\n" + buf.String() + "example.com/bare\n"))
	assert.NoError(err)
	assert.Equal(append(deps, Dependency{Path: "example.com/bare"}), parsed)
}

func TestValidate(t *testing.T) {
	assert := assert.New(t)
	result := Validate([]Dependency{{Path: "github.com/gocarina/gocsv", Version: "v1"}})
	assert.Equal(map[string]ModuleStatus{
		"github.com/gocarina/gocsv":      {Status: StatusInstalled, Version: "v1"},
		"github.com/sjwhitworth/golearn": {Status: StatusMissing},
		"github.com/montanaflynn/stats":  {Status: StatusMissing},
	}, result)
	assert.False(MentionsKeyModule("numpy==1.0\npandas==2.0\n"))
}

func TestCollector_Collect(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()
	input := filepath.Join(dir, "data.csv")
	assert.NoError(os.WriteFile(input, []byte("a,label\n1,x\n"), 0644))

	cfg := experiment.TrainConfig{InputPath: input, LabelColumn: "label", ValidationFraction: 0.2, RandomSeed: 1, MaxIterations: 10}
	c := &Collector{RepoDir: dir, Deps: fallbackDependencies()}
	now := time.Date(2026, 1, 2, 3, 4, 5, 6000, time.UTC)

	md := c.Collect(cfg, now)
	assert.Equal(cfg, md.Config)
	assert.Equal("2026-01-02T03:04:05.000006Z", md.Timestamp)
	assert.Equal(NotAvailable, md.GitRevision)
	assert.True(strings.HasPrefix(md.InputDigest, "sha256:"))
	assert.NotEmpty(md.Platform)
	assert.NotEmpty(md.GoVersion)
	assert.Equal(StatusInstalled, md.Environment["github.com/gocarina/gocsv"].Status)

	cfg.InputPath = filepath.Join(dir, "missing.csv")
	assert.Equal(NotAvailable, c.Collect(cfg, now).InputDigest)
}
