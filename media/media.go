// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package media stores uploaded images in a local directory and serves
// listings and random picks from it.
package media

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var (
	ErrEmpty           = errors.New("no images available")
	ErrInvalidFilename = errors.New("invalid filename")
)

var imageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
}

// Library is a flat directory of image files.
type Library struct {
	dir string
}

func NewLibrary(dir string) *Library {
	return &Library{dir: dir}
}

func (l *Library) Dir() string {
	return l.dir
}

// Save writes r under the sanitized form of name and returns the stored name.
// An existing file with the same name is replaced.
func (l *Library) Save(name string, r io.Reader) (string, int64, error) {
	clean := SecureFilename(name)
	if clean == "" {
		return "", 0, fmt.Errorf("%q: %w", name, ErrInvalidFilename)
	}

	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return "", 0, fmt.Errorf("create upload dir: %w", err)
	}

	tmp, err := os.CreateTemp(l.dir, ".upload-*")
	if err != nil {
		return "", 0, fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	n, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		return "", 0, fmt.Errorf("write upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", 0, fmt.Errorf("close upload: %w", err)
	}

	if err := os.Rename(tmp.Name(), filepath.Join(l.dir, clean)); err != nil {
		return "", 0, fmt.Errorf("store upload: %w", err)
	}
	return clean, n, nil
}

// List returns the image file names in the library, sorted.
// A missing directory is an empty library.
func (l *Library) List() ([]string, error) {
	entries, err := os.ReadDir(l.dir)
	if errors.Is(err, os.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read upload dir: %w", err)
	}

	names := []string{}
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if imageExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Random returns one image name chosen uniformly, or ErrEmpty.
func (l *Library) Random() (string, error) {
	names, err := l.List()
	if err != nil {
		return "", err
	}
	if len(names) == 0 {
		return "", ErrEmpty
	}
	return names[rand.IntN(len(names))], nil
}

// SecureFilename reduces name to a safe base name: ASCII letters, digits,
// dots, dashes and underscores, with spaces turned into underscores and no
// leading dots. It returns "" when nothing usable remains.
func SecureFilename(name string) string {
	// Treat both separators as path breaks regardless of platform
	name = strings.ReplaceAll(name, "\\", "/")
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}

	var b strings.Builder
	for _, r := range strings.Join(strings.Fields(name), "_") {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.', r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	return strings.Trim(b.String(), "._")
}
