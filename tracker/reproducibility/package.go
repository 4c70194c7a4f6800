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

package reproducibility

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"

	logger "github.com/mltrack/mltrack/internal/mtlog"
	"github.com/mltrack/mltrack/pkg/digest"
	"github.com/mltrack/mltrack/pkg/environment"
	"github.com/mltrack/mltrack/trainer/storage"
)

// ReadmeFileName is the file name of the package instructions.
const ReadmeFileName = "README.md"

// PackageOptions configures a reproducibility package.
type PackageOptions struct {
	// IncludeModel copies the model artifact.
	IncludeModel bool

	// Dependencies are written to the package manifest.
	Dependencies []environment.Dependency
}

// CreatePackage copies the artifacts of runDir into outputDir together with a fresh
// dependency manifest and a README. Every existing artifact is copied, copy failures
// are collected and returned after the package is written.
func CreatePackage(runDir, outputDir string, opts PackageOptions) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return err
	}

	names := []string{storage.ConfigFileName, storage.MetricsFileName, storage.ReportFileName, storage.MetadataFileName}
	if opts.IncludeModel {
		names = append(names, storage.ModelFileName)
	}

	var errs *multierror.Error
	var copied []string
	checksums := make(map[string]string)
	for _, name := range names {
		src := filepath.Join(runDir, name)
		if _, err := os.Stat(src); os.IsNotExist(err) {
			continue
		}

		if err := copyFile(src, filepath.Join(outputDir, name)); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("copy %s: %w", name, err))
			continue
		}
		copied = append(copied, name)
		if d, err := digest.HashFile(filepath.Join(outputDir, name)); err == nil {
			checksums[name] = d.String()
		}
	}

	var requirements bytes.Buffer
	if err := environment.WriteRequirements(&requirements, opts.Dependencies); err != nil {
		errs = multierror.Append(errs, err)
	} else if err := os.WriteFile(filepath.Join(outputDir, storage.RequirementsFileName), requirements.Bytes(), 0644); err != nil {
		errs = multierror.Append(errs, err)
	} else {
		checksums[storage.RequirementsFileName] = digest.SHA256FromBytes(requirements.Bytes()).String()
	}

	if err := os.WriteFile(filepath.Join(outputDir, ReadmeFileName), []byte(Readme(runDir, copied, checksums)), 0644); err != nil {
		errs = multierror.Append(errs, err)
	}

	logger.CompareLogger.With("runDir", runDir).Infof("package written to %s with %s", outputDir, strings.Join(copied, ", "))
	return errs.ErrorOrNil()
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}

	return out.Close()
}

var fileDescriptions = map[string]string{
	storage.ConfigFileName:   "Training configuration",
	storage.MetricsFileName:  "Results and metrics",
	storage.ReportFileName:   "Detailed validation report",
	storage.MetadataFileName: "Environment the run was trained in",
	storage.ModelFileName:    "Fitted transform and classifier",
}

// Readme renders the package instructions. The reproduction command is read
// from config.json of runDir when it is valid.
func Readme(runDir string, files []string, checksums map[string]string) string {
	var b strings.Builder
	b.WriteString("# ML Experiment Reproducibility Package\n\n")
	b.WriteString("This package contains the artifacts needed to reproduce an ML experiment.\n\n")

	b.WriteString("## Files\n\n")
	for _, name := range files {
		fmt.Fprintf(&b, "- `%s` - %s\n", name, fileDescriptions[name])
	}
	fmt.Fprintf(&b, "- `%s` - Go module dependencies\n\n", storage.RequirementsFileName)

	b.WriteString("## Reproduction Steps\n\n")
	b.WriteString("1. Build the same module versions listed in `requirements.txt`:\n")
	b.WriteString("   ```bash\n   go install github.com/mltrack/mltrack/cmd/mltrack@latest\n   ```\n\n")
	b.WriteString("2. Run the experiment:\n   ```bash\n")
	if cfg, err := storage.ReadConfig(runDir); err == nil {
		fmt.Fprintf(&b, "   %s\n", cfg.String())
	} else {
		b.WriteString("   # Extract the command from config.json and run\n")
	}
	b.WriteString("   ```\n\n")

	b.WriteString("## Expected Results\n\n")
	b.WriteString("Refer to `metrics.json` for the expected performance metrics.\n\n")

	if len(checksums) > 0 {
		b.WriteString("## Checksums\n\n")
		for _, name := range append(files, storage.RequirementsFileName) {
			if d, ok := checksums[name]; ok {
				fmt.Fprintf(&b, "- `%s` %s\n", name, d)
			}
		}
		b.WriteString("\n")
	}

	b.WriteString("## Notes\n\n")
	b.WriteString("- Metrics other than `train_seconds` are identical for the same config and input file.\n")
	b.WriteString("- Ensure the same data file is used as specified in `config.json`, `run_metadata.json` records its digest.\n")
	b.WriteString("- The random seed is controlled via the config.\n")
	return b.String()
}
