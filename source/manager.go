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

package source

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"
)

// MaxFileSize is the largest source file the Manager will load, per the
// front end's hard input-size ceiling.
const MaxFileSize = 1 << 30 // 1 GiB

// ErrFileTooLarge is returned by LoadFile/LoadAll when a file exceeds
// MaxFileSize.
var ErrFileTooLarge = errors.New("source: file exceeds 1 GiB limit")

// Manager is an ordered collection of [File]s indexed by dense [FileID].
//
// A Manager is safe for concurrent use: multiple parsers may load or read
// from it concurrently, each owning its own parser and diagnostic context
// while sharing this one (immutable once loaded) manager, per the
// single-owner-per-file, shared-manager concurrency model.
type Manager struct {
	mu      sync.RWMutex
	files   []*File
	byPath  map[string]FileID
}

// NewManager creates an empty Manager.
func NewManager() *Manager {
	return &Manager{byPath: make(map[string]FileID)}
}

func canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("source: canonicalize %q: %w", path, err)
	}
	return filepath.Clean(abs), nil
}

// LoadFile loads the file at path, canonicalizing its path first.
//
// If the same canonical path has already been loaded, the existing FileID
// is returned and the file is not re-read.
func (m *Manager) LoadFile(path string) (FileID, error) {
	canon, err := canonicalize(path)
	if err != nil {
		return 0, err
	}

	m.mu.RLock()
	if id, ok := m.byPath[canon]; ok {
		m.mu.RUnlock()
		return id, nil
	}
	m.mu.RUnlock()

	info, err := os.Stat(canon)
	if err != nil {
		return 0, fmt.Errorf("source: stat %q: %w", canon, err)
	}
	if info.Size() > MaxFileSize {
		return 0, fmt.Errorf("%w: %q is %d bytes", ErrFileTooLarge, canon, info.Size())
	}

	data, err := os.ReadFile(canon)
	if err != nil {
		return 0, fmt.Errorf("source: read %q: %w", canon, err)
	}

	return m.insert(canon, data)
}

func (m *Manager) insert(canon string, data []byte) (FileID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Another goroutine may have raced us to load the same path.
	if id, ok := m.byPath[canon]; ok {
		return id, nil
	}

	id := FileID(len(m.files) + 1) // 0 is reserved as "no file"
	f := NewFile(id, canon, data)
	m.files = append(m.files, f)
	m.byPath[canon] = id
	return id, nil
}

// LoadAll loads many files concurrently (bounded by GOMAXPROCS via
// errgroup), then assigns FileIDs in a second, sequential pass so that
// ID assignment is deterministic and depends only on the order of paths,
// never on which goroutine finishes reading first.
func (m *Manager) LoadAll(paths []string) ([]FileID, error) {
	type loaded struct {
		canon string
		data  []byte
	}
	results := make([]loaded, len(paths))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			canon, err := canonicalize(p)
			if err != nil {
				return err
			}

			m.mu.RLock()
			_, already := m.byPath[canon]
			m.mu.RUnlock()
			if already {
				results[i] = loaded{canon: canon}
				return nil
			}

			info, err := os.Stat(canon)
			if err != nil {
				return fmt.Errorf("source: stat %q: %w", canon, err)
			}
			if info.Size() > MaxFileSize {
				return fmt.Errorf("%w: %q is %d bytes", ErrFileTooLarge, canon, info.Size())
			}
			data, err := os.ReadFile(canon)
			if err != nil {
				return fmt.Errorf("source: read %q: %w", canon, err)
			}
			results[i] = loaded{canon: canon, data: data}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ids := make([]FileID, len(paths))
	for i, r := range results {
		id, err := m.insert(r.canon, r.data)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	return ids, nil
}

// UpdateFile replaces the text of an already-loaded file in place,
// preserving its FileID, recomputing the line-start table. This supports
// editor-style incremental reparsing.
func (m *Manager) UpdateFile(id FileID, newText []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := int(id) - 1
	if idx < 0 || idx >= len(m.files) {
		return fmt.Errorf("source: unknown FileID %d", id)
	}
	old := m.files[idx]
	m.files[idx] = NewFile(id, old.path, newText)
	return nil
}

// Watch recursively watches root for writes to already-loaded files and
// calls onChange with each file's new FileID after UpdateFile has
// applied the new text, supporting the editor-style update-in-place
// workflow. Watch blocks until ctx-equivalent stop channel is closed or
// the watcher errors; callers that only want `loomc check --watch`
// should run it in its own goroutine and stop it by closing stop.
func (m *Manager) Watch(root string, stop <-chan struct{}, onChange func(FileID)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("source: create watcher: %w", err)
	}
	defer w.Close()

	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.Add(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("source: watch %q: %w", root, err)
	}

	for {
		select {
		case <-stop:
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			canon, err := canonicalize(ev.Name)
			if err != nil {
				continue
			}
			m.mu.RLock()
			id, known := m.byPath[canon]
			m.mu.RUnlock()
			if !known {
				continue
			}
			data, err := os.ReadFile(canon)
			if err != nil {
				continue
			}
			if err := m.UpdateFile(id, data); err != nil {
				continue
			}
			onChange(id)
		case werr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("source: watcher error: %w", werr)
		}
	}
}

// File returns the File for id, or nil if id is not known to this
// Manager.
func (m *Manager) File(id FileID) *File {
	m.mu.RLock()
	defer m.mu.RUnlock()

	idx := int(id) - 1
	if idx < 0 || idx >= len(m.files) {
		return nil
	}
	return m.files[idx]
}

// Len returns the number of files currently loaded.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.files)
}
