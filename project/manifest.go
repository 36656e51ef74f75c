// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package project reads a loom.toml manifest and discovers the set of
// source files it describes, the two pieces of bookkeeping a driver
// needs before it can hand any files to source.Manager.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// ErrInvalidManifest is wrapped into every error Load returns because
// the manifest file is missing, unreadable, or fails to parse as TOML.
var ErrInvalidManifest = errors.New("project: invalid manifest")

// Manifest is the decoded contents of a loom.toml file.
type Manifest struct {
	Package PackageSection `toml:"package"`
	Source  SourceSection  `toml:"source"`
}

// PackageSection is the `[package]` table.
type PackageSection struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

// SourceSection is the `[source]` table: the root directory to scan for
// `*.loom` files and the glob patterns to exclude from that scan.
type SourceSection struct {
	Root    string   `toml:"root"`
	Exclude []string `toml:"exclude"`
}

// Load reads and parses the manifest at manifestPath. A relative
// SourceSection.Root is resolved relative to the manifest's own
// directory, not the process's working directory, so a manifest stays
// meaningful regardless of where loomc is invoked from.
func Load(manifestPath string) (*Manifest, error) {
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("%w: read %q: %v", ErrInvalidManifest, manifestPath, err)
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: parse %q: %v", ErrInvalidManifest, manifestPath, err)
	}

	if m.Source.Root == "" {
		m.Source.Root = "."
	}
	if !filepath.IsAbs(m.Source.Root) {
		m.Source.Root = filepath.Join(filepath.Dir(manifestPath), m.Source.Root)
	}
	return &m, nil
}
