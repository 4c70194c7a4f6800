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
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sys/unix"
)

var (
	// DefaultWorkHome is the default home of mltrack state.
	DefaultWorkHome = defaultWorkHome()

	// DefaultWorkHomeMode is the default mode of the work home.
	DefaultWorkHomeMode = os.FileMode(0700)

	// DefaultLogDir is the default log directory.
	DefaultLogDir = filepath.Join(DefaultWorkHome, "logs")

	// DefaultArtifactsDir is the default root of run directories.
	DefaultArtifactsDir = "artifacts"

	// DefaultReportsDir is the default output directory of reports.
	DefaultReportsDir = "reports"

	// DefaultDirMode is the mode of created directories.
	DefaultDirMode = os.FileMode(0755)
)

func defaultWorkHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".mltrack"
	}

	return filepath.Join(home, ".mltrack")
}

// Mtpath is the interface used for init project path.
type Mtpath interface {
	WorkHome() string
	LogDir() string
	ArtifactsDir() string
	ReportsDir() string
	DirMode() fs.FileMode
}

type mtpath struct {
	workHome     string
	workHomeMode fs.FileMode
	logDir       string
	artifactsDir string
	reportsDir   string
	dirMode      fs.FileMode
}

// Option is a functional option for configuring the mtpath.
type Option func(d *mtpath)

// WithWorkHome set the workhome directory.
func WithWorkHome(dir string) Option {
	return func(d *mtpath) {
		d.workHome = dir
	}
}

// WithLogDir set the log directory.
func WithLogDir(dir string) Option {
	return func(d *mtpath) {
		d.logDir = dir
	}
}

// WithArtifactsDir set the artifacts directory.
func WithArtifactsDir(dir string) Option {
	return func(d *mtpath) {
		d.artifactsDir = dir
	}
}

// WithReportsDir set the reports directory.
func WithReportsDir(dir string) Option {
	return func(d *mtpath) {
		d.reportsDir = dir
	}
}

// New returns a new mtpath interface, the work home, log and artifacts
// directories are created and the artifacts directory must be writable.
// The reports directory is created on demand by the reporter.
func New(options ...Option) (Mtpath, error) {
	d := &mtpath{
		workHome:     DefaultWorkHome,
		workHomeMode: DefaultWorkHomeMode,
		logDir:       DefaultLogDir,
		artifactsDir: DefaultArtifactsDir,
		reportsDir:   DefaultReportsDir,
		dirMode:      DefaultDirMode,
	}

	for _, opt := range options {
		opt(d)
	}

	var errs *multierror.Error
	if err := os.MkdirAll(d.workHome, d.workHomeMode); err != nil {
		errs = multierror.Append(errs, err)
	}

	if err := os.MkdirAll(d.logDir, fs.FileMode(0700)); err != nil {
		errs = multierror.Append(errs, err)
	}

	if err := os.MkdirAll(d.artifactsDir, d.dirMode); err != nil {
		errs = multierror.Append(errs, err)
	} else if err := unix.Access(d.artifactsDir, unix.W_OK); err != nil {
		errs = multierror.Append(errs, fmt.Errorf("artifacts directory %s is not writable: %w", d.artifactsDir, err))
	}

	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}

	return d, nil
}

func (d *mtpath) WorkHome() string {
	return d.workHome
}

func (d *mtpath) LogDir() string {
	return d.logDir
}

func (d *mtpath) ArtifactsDir() string {
	return d.artifactsDir
}

func (d *mtpath) ReportsDir() string {
	return d.reportsDir
}

func (d *mtpath) DirMode() fs.FileMode {
	return d.dirMode
}
