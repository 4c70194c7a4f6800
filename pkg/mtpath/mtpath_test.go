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

package mtpath

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		options func(dir string) []Option
		expect  func(t *testing.T, dir string, d Mtpath, err error)
	}{
		{
			name: "new mtpath failed",
			options: func(dir string) []Option {
				return []Option{WithWorkHome(dir), WithLogDir(""), WithArtifactsDir("")}
			},
			expect: func(t *testing.T, dir string, d Mtpath, err error) {
				assert := assert.New(t)
				assert.Error(err)
				assert.Nil(d)
			},
		},
		{
			name: "new mtpath",
			options: func(dir string) []Option {
				return []Option{
					WithWorkHome(dir),
					WithLogDir(filepath.Join(dir, "logs")),
					WithArtifactsDir(filepath.Join(dir, "artifacts")),
				}
			},
			expect: func(t *testing.T, dir string, d Mtpath, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Equal(dir, d.WorkHome())
				assert.DirExists(d.LogDir())
				assert.DirExists(d.ArtifactsDir())
				assert.Equal(DefaultReportsDir, d.ReportsDir())
				assert.Equal(DefaultDirMode, d.DirMode())
			},
		},
		{
			name: "new mtpath by reportsDir",
			options: func(dir string) []Option {
				return []Option{
					WithWorkHome(dir),
					WithLogDir(filepath.Join(dir, "logs")),
					WithArtifactsDir(filepath.Join(dir, "artifacts")),
					WithReportsDir(filepath.Join(dir, "reports")),
				}
			},
			expect: func(t *testing.T, dir string, d Mtpath, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Equal(filepath.Join(dir, "reports"), d.ReportsDir())
				assert.NoDirExists(d.ReportsDir())
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			d, err := New(tc.options(dir)...)
			tc.expect(t, dir, d, err)
		})
	}
}

func TestNew_ReadOnlyArtifactsDir(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root bypasses permission checks")
	}

	assert := assert.New(t)
	dir := t.TempDir()
	artifactsDir := filepath.Join(dir, "artifacts")
	assert.NoError(os.MkdirAll(artifactsDir, 0555))
	t.Cleanup(func() { os.Chmod(artifactsDir, 0755) })

	d, err := New(WithWorkHome(dir), WithLogDir(filepath.Join(dir, "logs")), WithArtifactsDir(artifactsDir))
	assert.ErrorContains(err, "is not writable")
	assert.Nil(d)
}
