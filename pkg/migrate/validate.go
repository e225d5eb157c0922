package migrate

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var sqlFileRe = regexp.MustCompile(`^(\d{14})_[a-z0-9_]+\.sql$`)

// ValidateDir checks migration filenames, version uniqueness and goose annotations.
func ValidateDir(dir string) error {
	if dir == "" {
		return fmt.Errorf("dir is required")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read dir %q: %w", dir, err)
	}

	seen := map[string]string{}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		name := e.Name()

		m := sqlFileRe.FindStringSubmatch(name)
		if m == nil {
			return fmt.Errorf("invalid migration filename %q (expected YYYYMMDDHHMMSS_name.sql)", name)
		}
		if prev, ok := seen[m[1]]; ok {
			return fmt.Errorf("duplicate migration version %s in %q and %q", m[1], prev, name)
		}
		seen[m[1]] = name

		b, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return fmt.Errorf("read file %q: %w", name, err)
		}
		if err := checkAnnotations(name, string(b)); err != nil {
			return err
		}
	}
	return nil
}

func checkAnnotations(name, txt string) error {
	up := strings.Index(txt, "-- +goose Up")
	down := strings.Index(txt, "-- +goose Down")
	switch {
	case up < 0:
		return fmt.Errorf("migration %q missing \"-- +goose Up\"", name)
	case down < 0:
		return fmt.Errorf("migration %q missing \"-- +goose Down\"", name)
	case down < up:
		return fmt.Errorf("migration %q declares Down before Up", name)
	}
	if strings.Count(txt, "-- +goose StatementBegin") != strings.Count(txt, "-- +goose StatementEnd") {
		return fmt.Errorf("migration %q has unbalanced StatementBegin/StatementEnd", name)
	}
	return nil
}
