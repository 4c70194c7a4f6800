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
	"fmt"
	"runtime"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/shirou/gopsutil/v3/host"

	logger "github.com/mltrack/mltrack/internal/mtlog"
	"github.com/mltrack/mltrack/pkg/digest"
	"github.com/mltrack/mltrack/pkg/experiment"
)

// NotAvailable is recorded for metadata that could not be collected.
const NotAvailable = "not_available"

// TimestampLayout is the layout of metadata timestamps.
const TimestampLayout = "2006-01-02T15:04:05.000000Z07:00"

// RunMetadata describes the environment a run was trained in.
type RunMetadata struct {
	Config      experiment.TrainConfig  `json:"config"`
	Platform    string                  `json:"platform"`
	GoVersion   string                  `json:"go_version"`
	Timestamp   string                  `json:"timestamp"`
	GitRevision string                  `json:"git_revision"`
	InputDigest string                  `json:"input_digest"`
	Environment map[string]ModuleStatus `json:"environment_validation,omitempty"`
}

// Collector gathers run metadata.
type Collector struct {
	// RepoDir is the directory searched upwards for a git repository.
	RepoDir string

	// Deps are the dependencies validated into the environment map.
	Deps []Dependency
}

// NewCollector returns a collector over the working directory and the binary's dependencies.
func NewCollector() *Collector {
	return &Collector{
		RepoDir: ".",
		Deps:    CaptureDependencies(),
	}
}

// Collect returns the metadata of a run trained with cfg at now. Collection never fails,
// fields that cannot be determined are set to NotAvailable.
func (c *Collector) Collect(cfg experiment.TrainConfig, now time.Time) *RunMetadata {
	return &RunMetadata{
		Config:      cfg,
		Platform:    Platform(),
		GoVersion:   runtime.Version(),
		Timestamp:   now.Format(TimestampLayout),
		GitRevision: Revision(c.RepoDir),
		InputDigest: inputDigest(cfg.InputPath),
		Environment: Validate(c.Deps),
	}
}

// Dependencies returns the dependencies written to the run manifest.
func (c *Collector) Dependencies() []Dependency {
	return c.Deps
}

// Platform returns a description of the host operating system.
func Platform() string {
	info, err := host.Info()
	if err != nil {
		logger.Debugf("read host info failed: %s", err.Error())
		return fmt.Sprintf("%s-%s", runtime.GOOS, runtime.GOARCH)
	}

	return fmt.Sprintf("%s-%s-%s-%s", info.OS, info.Platform, info.PlatformVersion, runtime.GOARCH)
}

// Revision returns the HEAD commit hash of the repository containing dir.
func Revision(dir string) string {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return NotAvailable
	}

	head, err := repo.Head()
	if err != nil {
		return NotAvailable
	}

	return head.Hash().String()
}

func inputDigest(path string) string {
	d, err := digest.HashFile(path)
	if err != nil {
		return NotAvailable
	}

	return d.String()
}
