// Copyright © 2025 Tilecast contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: appindex/discover.go
// Summary: Installed application discovery from XDG data dirs and
// configured index directories.

package appindex

import (
	"bufio"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"tilecast/action"
	"tilecast/config"
)

// DataDirs returns the XDG application directories to scan.
func DataDirs() []string {
	var dirs []string

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		if home, err := os.UserHomeDir(); err == nil {
			dataHome = filepath.Join(home, ".local", "share")
		}
	}
	if dataHome != "" {
		dirs = append(dirs, filepath.Join(dataHome, "applications"))
	}

	dataDirs := os.Getenv("XDG_DATA_DIRS")
	if dataDirs == "" {
		dataDirs = "/usr/local/share:/usr/share"
	}
	for _, dir := range strings.Split(dataDirs, ":") {
		if dir == "" {
			continue
		}
		dirs = append(dirs, filepath.Join(dir, "applications"))
	}
	return dirs
}

// Discover scans the XDG application dirs and the configured
// index_dirs and returns every launchable entry found.
func Discover(cfg *config.Config) []Entry {
	var entries []Entry

	for _, dir := range DataDirs() {
		entries = append(entries, scanDesktopDir(dir)...)
	}

	patterns, errs := cfg.Patterns()
	for _, err := range errs {
		log.Printf("AppIndex: bad index_dirs entry: %v", err)
	}
	for _, p := range patterns {
		entries = append(entries, scanExecutables(p)...)
	}
	return entries
}

func scanDesktopDir(dir string) []Entry {
	items, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var entries []Entry
	for _, item := range items {
		if item.IsDir() || !strings.HasSuffix(item.Name(), ".desktop") {
			continue
		}
		entry, ok := parseDesktopFile(filepath.Join(dir, item.Name()))
		if ok {
			entries = append(entries, entry)
		}
	}
	return entries
}

// parseDesktopFile extracts Name/Exec/Comment from the [Desktop Entry]
// group. Hidden and NoDisplay entries are skipped.
func parseDesktopFile(path string) (Entry, bool) {
	f, err := os.Open(path)
	if err != nil {
		return Entry{}, false
	}
	defer f.Close()

	var name, execLine, comment string
	terminal := false
	inEntry := false

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "[") {
			inEntry = line == "[Desktop Entry]"
			continue
		}
		if !inEntry {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		switch key {
		case "Name":
			if name == "" {
				name = value
			}
		case "Exec":
			execLine = value
		case "Comment":
			comment = value
		case "Terminal":
			terminal = value == "true"
		case "NoDisplay", "Hidden":
			if value == "true" {
				return Entry{}, false
			}
		}
	}

	if name == "" || execLine == "" {
		return Entry{}, false
	}
	if comment == "" {
		comment = "Application"
	}
	return Entry{
		Name:       name,
		SearchName: strings.ToLower(name),
		Desc:       comment,
		Action:     action.OpenApp{Exec: stripFieldCodes(execLine), Terminal: terminal},
	}, true
}

// stripFieldCodes removes desktop-spec placeholders (%f, %U, ...) from
// an Exec line.
func stripFieldCodes(execLine string) string {
	fields := strings.Fields(execLine)
	kept := fields[:0]
	for _, f := range fields {
		if len(f) == 2 && f[0] == '%' {
			continue
		}
		kept = append(kept, f)
	}
	return strings.Join(kept, " ")
}

// scanExecutables walks a configured pattern collecting executables up
// to the pattern's depth. Glob metacharacters in the path expand first.
func scanExecutables(p config.Pattern) []Entry {
	roots := []string{p.Path}
	if strings.ContainsAny(p.Path, "*?[") {
		matches, err := filepath.Glob(p.Path)
		if err != nil || len(matches) == 0 {
			return nil
		}
		roots = matches
	}

	var entries []Entry
	for _, root := range roots {
		entries = append(entries, walkExecutables(root, p.MaxDepth)...)
	}
	return entries
}

func walkExecutables(root string, maxDepth int) []Entry {
	var entries []Entry

	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			rel, rerr := filepath.Rel(root, path)
			if rerr == nil && rel != "." && strings.Count(rel, string(filepath.Separator))+1 > maxDepth-1 {
				return filepath.SkipDir
			}
			return nil
		}

		info, ierr := d.Info()
		if ierr != nil || info.Mode()&0o111 == 0 || !info.Mode().IsRegular() {
			return nil
		}

		name := d.Name()
		entries = append(entries, Entry{
			Name:       name,
			SearchName: strings.ToLower(name),
			Desc:       "Application",
			Action:     action.OpenApp{Exec: path},
		})
		return nil
	})
	return entries
}
