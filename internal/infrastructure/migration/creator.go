package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const upHeader = "-- Migration: %s\n-- Created: %s\n\n"
const downHeader = "-- Migration: %s (rollback)\n-- Created: %s\n\n"

// File is a created up/down migration pair
type File struct {
	Version  string
	UpPath   string
	DownPath string
}

// Create writes an empty up/down migration pair with a sortable timestamp
// version.
func Create(migrationsDir, name string) (*File, error) {
	if err := os.MkdirAll(migrationsDir, 0o755); err != nil {
		return nil, fmt.Errorf("create migrations directory: %w", err)
	}

	now := time.Now()
	version := now.Format("20060102150405")
	base := version + "_" + sanitizeName(name)

	f := &File{
		Version:  version,
		UpPath:   filepath.Join(migrationsDir, base+".up.sql"),
		DownPath: filepath.Join(migrationsDir, base+".down.sql"),
	}

	stamp := now.Format(time.RFC3339)
	if err := os.WriteFile(f.UpPath, []byte(fmt.Sprintf(upHeader, name, stamp)), 0o644); err != nil {
		return nil, fmt.Errorf("write up migration: %w", err)
	}
	if err := os.WriteFile(f.DownPath, []byte(fmt.Sprintf(downHeader, name, stamp)), 0o644); err != nil {
		_ = os.Remove(f.UpPath)
		return nil, fmt.Errorf("write down migration: %w", err)
	}
	return f, nil
}

// List returns the base names of the migration pairs in a directory
func List(migrationsDir string) ([]string, error) {
	entries, err := os.ReadDir(migrationsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("read migrations directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if base, ok := strings.CutSuffix(entry.Name(), ".up.sql"); ok {
			names = append(names, base)
		}
	}
	return names, nil
}

// sanitizeName lowercases a migration name and squashes separators into
// single underscores.
func sanitizeName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			s := b.String()
			if len(s) > 0 && s[len(s)-1] != '_' {
				b.WriteByte('_')
			}
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}
