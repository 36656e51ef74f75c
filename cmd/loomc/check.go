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

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/loom-lang/loomc/cache"
	"github.com/loom-lang/loomc/diag"
	"github.com/loom-lang/loomc/internal/intern"
	"github.com/loom-lang/loomc/parser"
	"github.com/loom-lang/loomc/project"
	"github.com/loom-lang/loomc/source"
)

var (
	watchFlag   bool
	manifestArg string
)

var cmdCheck = &cobra.Command{
	Use:   "check [paths...]",
	Short: "parse sources and report diagnostics",
	RunE:  runCheck,
}

func init() {
	cmdCheck.Flags().BoolVar(&watchFlag, "watch", false, "re-check on source change")
	cmdCheck.Flags().StringVar(&manifestArg, "manifest", "loom.toml", "path to the project manifest")
}

func runCheck(cmd *cobra.Command, args []string) error {
	runID := uuid.New()

	paths, root, err := resolvePaths(args)
	if err != nil {
		return err
	}

	store, err := cache.Open(filepath.Join(os.TempDir(), "loomc-cache.db"))
	if err != nil {
		return fmt.Errorf("loomc[%s]: %w", runID, err)
	}
	defer store.Close()

	files := source.NewManager()
	interns := &intern.Table{}

	errCount, err := checkOnce(files, interns, store, paths)
	if err != nil {
		return fmt.Errorf("loomc[%s]: %w", runID, err)
	}

	if !watchFlag {
		if errCount > 0 {
			os.Exit(1)
		}
		return nil
	}

	stop := make(chan struct{})
	defer close(stop)
	return files.Watch(root, stop, func(id source.FileID) {
		f := files.File(id)
		if f == nil {
			return
		}
		runCheckFile(f, files, interns, store)
	})
}

// resolvePaths expands the CLI's positional arguments into a concrete
// file list and a watch root: explicit paths are used as given, an
// empty argument list falls back to loom.toml's source discovery.
func resolvePaths(args []string) (paths []string, root string, err error) {
	if len(args) > 0 {
		return args, filepath.Dir(args[0]), nil
	}

	manifest, err := project.Load(manifestArg)
	if err != nil {
		return nil, "", err
	}
	discovered, err := project.DiscoverSources(manifest.Source.Root, manifest.Source.Exclude)
	if err != nil {
		return nil, "", err
	}
	return discovered, manifest.Source.Root, nil
}

// checkOnce loads and checks every path once, returning the total
// diagnostic error count across all of them.
func checkOnce(files *source.Manager, interns *intern.Table, store *cache.Store, paths []string) (int, error) {
	ids, err := files.LoadAll(paths)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, id := range ids {
		f := files.File(id)
		total += runCheckFile(f, files, interns, store)
	}
	return total, nil
}

// runCheckFile checks a single already-loaded file, consulting and
// then refreshing its cache entry, and prints its diagnostics. It
// returns the file's diagnostic error count.
func runCheckFile(f *source.File, files *source.Manager, interns *intern.Table, store *cache.Store) int {
	hash := cache.HashContent(f.Text())
	if lines, hit := store.Lookup(f.Path(), hash); hit {
		errCount := 0
		for _, line := range lines {
			fmt.Println(line)
			if strings.Contains(line, ": error: ") {
				errCount++
			}
		}
		return errCount
	}

	diags := diag.NewContext()
	p := parser.New(f, diags, interns)
	p.ParseModule()

	lines := diags.FormatAll(files)
	for i, line := range lines {
		fmt.Println(line)
		printSnippet(diags.Diagnostics()[i], files)
	}
	if err := store.Put(f.Path(), hash, lines); err != nil {
		fmt.Fprintf(os.Stderr, "loomc: cache write for %s failed: %v (size %s)\n",
			f.Path(), err, humanize.IBytes(uint64(f.Len())))
	}
	return diags.ErrorCount()
}
