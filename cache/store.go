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

// Package cache persists the diagnostics produced by the last parse of
// each source file, keyed by content hash, so a driver can skip
// reparsing a file that hasn't changed since it was last checked. It
// never holds onto a Module or any arena-allocated AST node: only the
// serialized diagnostic text survives a parse, which keeps the cache
// valid across process restarts without tying it to any in-memory
// representation.
package cache

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Entry is one cached parse result for a single source file.
type Entry struct {
	Path        string `gorm:"primaryKey"`
	ContentHash uint64 `gorm:"index"`
	Diagnostics string // JSON-encoded []string, each a formatted diagnostic line
	CheckedAt   time.Time
}

// Store wraps a gorm.DB over a sqlite file, scoped entirely to Entry
// records.
type Store struct {
	db *gorm.DB
}

// Open opens (creating if necessary) the sqlite database at dbPath and
// ensures the Entry table exists.
func Open(dbPath string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("cache: open %q: %w", dbPath, err)
	}
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, fmt.Errorf("cache: migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// HashContent fingerprints file content for Lookup/Put's ContentHash
// field.
func HashContent(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// Lookup returns the cached diagnostic lines for path if present and
// its stored content hash still matches want, else (nil, false).
func (s *Store) Lookup(path string, want uint64) ([]string, bool) {
	var e Entry
	if err := s.db.First(&e, "path = ?", path).Error; err != nil {
		return nil, false
	}
	if e.ContentHash != want {
		return nil, false
	}
	var lines []string
	if err := json.Unmarshal([]byte(e.Diagnostics), &lines); err != nil {
		return nil, false
	}
	return lines, true
}

// Put records the diagnostics produced by the most recent parse of
// path, replacing any prior entry.
func (s *Store) Put(path string, contentHash uint64, diagnostics []string) error {
	encoded, err := json.Marshal(diagnostics)
	if err != nil {
		return fmt.Errorf("cache: encode diagnostics for %q: %w", path, err)
	}
	entry := Entry{
		Path:        path,
		ContentHash: contentHash,
		Diagnostics: string(encoded),
		CheckedAt:   time.Now(),
	}
	return s.db.Save(&entry).Error
}

// Invalidate drops the cached entry for path, used when the manifest or
// an excluded-glob set changes in a way that could alter how path is
// parsed even though its own content hash is unchanged.
func (s *Store) Invalidate(path string) error {
	return s.db.Delete(&Entry{}, "path = ?", path).Error
}

// Close releases the underlying sqlite connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
