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

//go:generate mockgen -destination mocks/storage_mock.go -source storage.go -package mocks

package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/mitchellh/mapstructure"
	"golang.org/x/exp/slices"

	"github.com/mltrack/mltrack/internal/mterrors"
	logger "github.com/mltrack/mltrack/internal/mtlog"
	"github.com/mltrack/mltrack/pkg/experiment"
	"github.com/mltrack/mltrack/pkg/runid"
)

const (
	// ConfigFileName is the file name of the run config.
	ConfigFileName = "config.json"

	// MetricsFileName is the file name of the run metrics.
	MetricsFileName = "metrics.json"

	// ReportFileName is the file name of the validation report.
	ReportFileName = "val_report.txt"

	// ModelFileName is the file name of the serialized pipeline.
	ModelFileName = "model.json"

	// RequirementsFileName is the file name of the dependency manifest.
	RequirementsFileName = "requirements.txt"

	// MetadataFileName is the file name of the run metadata.
	MetadataFileName = "run_metadata.json"

	// LockFileName is the lock held while a run directory is published.
	LockFileName = ".mltrack.lock"

	// StagingPrefix is the prefix of run directories being written.
	StagingPrefix = ".staging-"

	// StaleStagingAge is the age after which an unpublished staging directory
	// is considered abandoned by a crashed run and removed.
	StaleStagingAge = time.Hour
)

const (
	dirMode  = fs.FileMode(0755)
	fileMode = fs.FileMode(0644)
)

// Bundle is the artifact bundle of a run. Nil optional artifacts are not written.
type Bundle struct {
	Config       experiment.TrainConfig
	Metrics      experiment.Metrics
	Report       []byte
	Model        []byte
	Requirements []byte
	Metadata     any
}

// Storage is the interface used for storage.
type Storage interface {
	// Create publishes the bundle as the run directory of id, it returns the run directory.
	// Artifacts are written to a staging directory which is renamed once complete.
	Create(runid.RunID, *Bundle) (string, error)

	// RunDir returns the run directory of id.
	RunDir(runid.RunID) string

	// BaseDir returns the root of run directories.
	BaseDir() string

	// List returns the names of run directories in the root, sorted.
	List() ([]string, error)
}

type storage struct {
	baseDir string
}

// New returns a new Storage instance.
func New(baseDir string) Storage {
	return &storage{baseDir: baseDir}
}

// Create publishes the bundle as the run directory of id.
func (s *storage) Create(id runid.RunID, bundle *Bundle) (string, error) {
	log := logger.WithRun(id.String())
	if err := os.MkdirAll(s.baseDir, dirMode); err != nil {
		return "", err
	}

	staging := filepath.Join(s.baseDir, StagingPrefix+id.String())
	if err := os.Mkdir(staging, dirMode); err != nil {
		return "", err
	}

	if err := writeBundle(staging, bundle); err != nil {
		log.Errorf("write artifacts failed: %s", err.Error())
		if err := os.RemoveAll(staging); err != nil {
			log.Warnf("remove staging directory failed: %s", err.Error())
		}

		return "", err
	}

	lock := flock.New(filepath.Join(s.baseDir, LockFileName))
	if err := lock.Lock(); err != nil {
		os.RemoveAll(staging)
		return "", err
	}
	defer lock.Unlock()

	s.sweepStaging(staging, time.Now().Add(-StaleStagingAge))

	runDir := s.RunDir(id)
	if _, err := os.Stat(runDir); err == nil {
		os.RemoveAll(staging)
		return "", fmt.Errorf("%s: %w", runDir, mterrors.ErrRunExists)
	}

	if err := os.Rename(staging, runDir); err != nil {
		os.RemoveAll(staging)
		return "", err
	}

	log.Infof("run persisted to %s", runDir)
	return runDir, nil
}

func writeBundle(dir string, bundle *Bundle) error {
	config, err := configMap(bundle.Config)
	if err != nil {
		return err
	}

	if err := WriteJSON(filepath.Join(dir, ConfigFileName), config); err != nil {
		return err
	}

	if err := WriteJSON(filepath.Join(dir, MetricsFileName), bundle.Metrics); err != nil {
		return err
	}

	files := []struct {
		name string
		data []byte
	}{
		{ReportFileName, bundle.Report},
		{ModelFileName, bundle.Model},
		{RequirementsFileName, bundle.Requirements},
	}
	for _, f := range files {
		if f.data == nil {
			continue
		}

		if err := os.WriteFile(filepath.Join(dir, f.name), f.data, fileMode); err != nil {
			return err
		}
	}

	if bundle.Metadata != nil {
		if err := WriteJSON(filepath.Join(dir, MetadataFileName), bundle.Metadata); err != nil {
			return err
		}
	}

	return nil
}

// configMap flattens cfg into a map so keys are encoded sorted.
func configMap(cfg experiment.TrainConfig) (map[string]any, error) {
	m := make(map[string]any)
	if err := mapstructure.Decode(cfg, &m); err != nil {
		return nil, err
	}

	return m, nil
}

// WriteJSON writes v indented by two spaces with a trailing newline.
func WriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, append(data, '\n'), fileMode)
}

// RunDir returns the run directory of id.
func (s *storage) RunDir(id runid.RunID) string {
	return filepath.Join(s.baseDir, id.String())
}

// BaseDir returns the root of run directories.
func (s *storage) BaseDir() string {
	return s.baseDir
}

// List returns the names of run directories in the root, sorted.
func (s *storage) List() ([]string, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() && runid.IsRunDirName(e.Name()) {
			names = append(names, e.Name())
		}
	}

	slices.Sort(names)
	return names, nil
}

// sweepStaging removes staging directories other than keep last modified before deadline.
// It runs under the publish lock.
func (s *storage) sweepStaging(keep string, deadline time.Time) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		logger.Warnf("read %s failed: %s", s.baseDir, err.Error())
		return
	}

	for _, e := range entries {
		if !e.IsDir() || !IsStaging(e.Name()) {
			continue
		}

		path := filepath.Join(s.baseDir, e.Name())
		if path == keep {
			continue
		}

		info, err := e.Info()
		if err != nil || !info.ModTime().Before(deadline) {
			continue
		}

		if err := os.RemoveAll(path); err != nil {
			logger.Warnf("remove stale staging directory %s failed: %s", path, err.Error())
			continue
		}
		logger.Infof("removed stale staging directory %s", path)
	}
}

// ReadConfig reads config.json of a run directory.
func ReadConfig(runDir string) (experiment.TrainConfig, error) {
	var cfg experiment.TrainConfig
	if err := readJSON(runDir, ConfigFileName, &cfg); err != nil {
		return experiment.TrainConfig{}, err
	}

	return cfg, nil
}

// ReadMetrics reads metrics.json of a run directory.
func ReadMetrics(runDir string) (experiment.Metrics, error) {
	var metrics experiment.Metrics
	if err := readJSON(runDir, MetricsFileName, &metrics); err != nil {
		return nil, err
	}

	if metrics == nil {
		return nil, mterrors.NewConfigError(filepath.Join(runDir, MetricsFileName), errors.New("metrics must be an object"))
	}

	return metrics, nil
}

// ReadConfigFields returns the raw top level keys of config.json.
func ReadConfigFields(runDir string) (map[string]any, error) {
	var fields map[string]any
	if err := readJSON(runDir, ConfigFileName, &fields); err != nil {
		return nil, err
	}

	return fields, nil
}

func readJSON(runDir, name string, v any) error {
	path := filepath.Join(runDir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return mterrors.NewMissingArtifactError(runDir, name)
		}

		return err
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(v); err != nil {
		return mterrors.NewConfigError(path, err)
	}

	return nil
}

// Exists reports whether the artifact name is a regular file of the run directory.
func Exists(runDir, name string) bool {
	info, err := os.Stat(filepath.Join(runDir, name))
	return err == nil && info.Mode().IsRegular()
}

// IsStaging reports whether name is an unpublished run directory.
func IsStaging(name string) bool {
	return strings.HasPrefix(name, StagingPrefix)
}
