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
	"bufio"
	"fmt"
	"io"
	"runtime/debug"
	"strings"

	"golang.org/x/exp/slices"
)

const (
	// StatusInstalled marks a key module linked into the binary.
	StatusInstalled = "installed"

	// StatusMissing marks a key module absent from the binary.
	StatusMissing = "missing"

	// unknownVersion is the version of fallback dependencies.
	unknownVersion = "unknown"
)

// KeyModules are the modules a training run depends on.
var KeyModules = []string{
	"github.com/sjwhitworth/golearn",
	"github.com/gocarina/gocsv",
	"github.com/montanaflynn/stats",
}

// Dependency is a module linked into the running binary.
type Dependency struct {
	Path    string
	Version string
}

// String returns the manifest line of the dependency.
func (d Dependency) String() string {
	return fmt.Sprintf("%s %s", d.Path, d.Version)
}

// ModuleStatus is the validation result of a key module.
type ModuleStatus struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

type buildInfoReader func() (*debug.BuildInfo, bool)

// CaptureDependencies returns the modules of the running binary sorted by path,
// the key modules with unknown versions when build info is unavailable.
func CaptureDependencies() []Dependency {
	return captureDependencies(debug.ReadBuildInfo)
}

func captureDependencies(read buildInfoReader) []Dependency {
	info, ok := read()
	if !ok || len(info.Deps) == 0 {
		return fallbackDependencies()
	}

	deps := make([]Dependency, 0, len(info.Deps))
	for _, m := range info.Deps {
		if m.Replace != nil {
			m = m.Replace
		}
		deps = append(deps, Dependency{Path: m.Path, Version: m.Version})
	}

	slices.SortFunc(deps, func(a, b Dependency) bool { return a.Path < b.Path })
	return deps
}

func fallbackDependencies() []Dependency {
	deps := make([]Dependency, 0, len(KeyModules))
	for _, path := range KeyModules {
		deps = append(deps, Dependency{Path: path, Version: unknownVersion})
	}

	return deps
}

// WriteRequirements writes one "path version" line per dependency.
func WriteRequirements(w io.Writer, deps []Dependency) error {
	bw := bufio.NewWriter(w)
	for _, d := range deps {
		if _, err := fmt.Fprintln(bw, d.String()); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// ParseRequirements reads dependencies back from a manifest, blank and comment lines are skipped.
func ParseRequirements(r io.Reader) ([]Dependency, error) {
	var deps []Dependency
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		d := Dependency{Path: fields[0]}
		if len(fields) > 1 {
			d.Version = fields[1]
		}
		deps = append(deps, d)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return deps, nil
}

// Validate reports for every key module whether it is part of deps.
func Validate(deps []Dependency) map[string]ModuleStatus {
	versions := make(map[string]string, len(deps))
	for _, d := range deps {
		versions[d.Path] = d.Version
	}

	result := make(map[string]ModuleStatus, len(KeyModules))
	for _, path := range KeyModules {
		version, ok := versions[path]
		if !ok {
			result[path] = ModuleStatus{Status: StatusMissing}
			continue
		}

		result[path] = ModuleStatus{Status: StatusInstalled, Version: version}
	}

	return result
}

// MentionsKeyModule reports whether manifest text names at least one key module.
func MentionsKeyModule(manifest string) bool {
	for _, path := range KeyModules {
		if strings.Contains(manifest, path) {
			return true
		}
	}

	return false
}
