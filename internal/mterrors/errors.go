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

package mterrors

import (
	"errors"
	"fmt"
)

// common errors
var (
	ErrLabelColumnNotFound = errors.New("label column not found")
	ErrEmptyDataset        = errors.New("empty dataset")
	ErrNoRuns              = errors.New("no runs found")
	ErrRunExists           = errors.New("run directory already exists")
)

// DataError reports a malformed or incompatible input table.
type DataError struct {
	Path   string
	Reason string
	Err    error
}

func (e *DataError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("data error: %s: %s: %v", e.Path, e.Reason, e.Err)
	}

	return fmt.Sprintf("data error: %s: %s", e.Path, e.Reason)
}

func (e *DataError) Unwrap() error {
	return e.Err
}

func NewDataError(path string, err error, format string, a ...any) *DataError {
	return &DataError{
		Path:   path,
		Reason: fmt.Sprintf(format, a...),
		Err:    err,
	}
}

// MissingArtifactError reports a required run file that is absent.
type MissingArtifactError struct {
	RunDir string
	File   string
}

func (e *MissingArtifactError) Error() string {
	return fmt.Sprintf("missing artifact %s in %s", e.File, e.RunDir)
}

func NewMissingArtifactError(runDir, file string) *MissingArtifactError {
	return &MissingArtifactError{
		RunDir: runDir,
		File:   file,
	}
}

// SelectionError reports a metric that cannot be used to rank runs.
type SelectionError struct {
	Metric string
	Reason string
}

func (e *SelectionError) Error() string {
	return fmt.Sprintf("cannot select by metric %q: %s", e.Metric, e.Reason)
}

func NewSelectionError(metric, reason string) *SelectionError {
	return &SelectionError{
		Metric: metric,
		Reason: reason,
	}
}

// ConfigError reports malformed configuration content or a malformed json
// artifact, Path names the offending file.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("invalid config: %v", e.Err)
	}

	return fmt.Sprintf("invalid %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

func NewConfigError(path string, err error) *ConfigError {
	return &ConfigError{
		Path: path,
		Err:  err,
	}
}

func IsDataError(err error) bool {
	var e *DataError
	return errors.As(err, &e)
}

func IsMissingArtifactError(err error) bool {
	var e *MissingArtifactError
	return errors.As(err, &e)
}

func IsSelectionError(err error) bool {
	var e *SelectionError
	return errors.As(err, &e)
}

func IsConfigError(err error) bool {
	var e *ConfigError
	return errors.As(err, &e)
}
