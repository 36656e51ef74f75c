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

package project

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// DiscoverSources walks root and returns every `*.loom` file whose path
// relative to root does not match one of excludeGlobs. The result is
// sorted lexically by relative path so that source.Manager.LoadAll sees
// a stable, platform-independent file order.
func DiscoverSources(root string, excludeGlobs []string) ([]string, error) {
	var found []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if filepath.Ext(path) != ".loom" {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("project: relativize %q under %q: %w", path, root, err)
		}
		rel = filepath.ToSlash(rel)

		for _, pattern := range excludeGlobs {
			matched, err := doublestar.Match(pattern, rel)
			if err != nil {
				return fmt.Errorf("project: invalid exclude pattern %q: %w", pattern, err)
			}
			if matched {
				return nil
			}
		}

		found = append(found, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(found)
	return found, nil
}
