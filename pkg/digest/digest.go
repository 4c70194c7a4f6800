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

package digest

import (
	"bufio"
	"os"

	"github.com/opencontainers/go-digest"
)

// readBufferSize is the buffer size used when hashing files.
const readBufferSize = 4 << 20

// SHA256FromBytes returns the canonical digest of data.
func SHA256FromBytes(data []byte) digest.Digest {
	return digest.Canonical.FromBytes(data)
}

// HashFile returns the canonical digest of a regular file.
func HashFile(path string) (digest.Digest, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}

	if !info.Mode().IsRegular() {
		return "", &os.PathError{Op: "hash", Path: path, Err: os.ErrInvalid}
	}

	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	return digest.Canonical.FromReader(bufio.NewReaderSize(f, readBufferSize))
}
