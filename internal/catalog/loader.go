// Package catalog loads and validates the static question catalog.
package catalog

import (
	_ "embed"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed data/sample.yaml
var sample []byte

// document is the on-disk envelope; the catalog sits under "data".
type document struct {
	Data Catalog `yaml:"data"`
}

// Sample returns the catalog bundled with the binary.
func Sample() (*Catalog, error) {
	c, err := Parse(sample)
	if err != nil {
		return nil, fmt.Errorf("loading bundled catalog: %w", err)
	}
	return c, nil
}

// Load reads a catalog from a YAML or JSON file, or from a directory holding
// one file per topic plus an optional header file.
func Load(path string) (*Catalog, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}

	var c *Catalog
	if info.IsDir() {
		c, err = loadDir(path)
	} else {
		var data []byte
		data, err = os.ReadFile(path)
		if err == nil {
			c, err = Parse(data)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("loading catalog %s: %w", path, err)
	}

	slog.Info("catalog loaded",
		"path", path,
		"topics", len(c.Topics),
		"questions", c.QuestionCount(),
	)
	return c, nil
}

// Parse decodes and validates a single catalog document. Validation failures
// are returned as *ValidationError.
func Parse(data []byte) (*Catalog, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}
	if err := checkSchema(raw); err != nil {
		return nil, err
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}
	return finish(&doc.Data)
}

type sourceFile struct {
	path   string
	header bool
	data   []byte
	raw    any
}

func loadDir(root string) (*Catalog, error) {
	var files []sourceFile
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isCatalogFile(path) {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		var raw any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("decoding %s: %w", path, err)
		}

		base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		files = append(files, sourceFile{
			path:   path,
			header: base == "header",
			data:   data,
			raw:    raw,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Assemble the same envelope a single-file catalog has so one schema
	// covers both layouts.
	content := []any{}
	envelope := map[string]any{}
	for _, f := range files {
		if f.header {
			envelope["header"] = f.raw
			continue
		}
		content = append(content, f.raw)
	}
	envelope["content"] = content
	if err := checkSchema(map[string]any{"data": envelope}); err != nil {
		return nil, err
	}

	c := &Catalog{}
	for _, f := range files {
		if f.header {
			if err := yaml.Unmarshal(f.data, &c.Header); err != nil {
				return nil, fmt.Errorf("decoding %s: %w", f.path, err)
			}
			continue
		}
		var t Topic
		if err := yaml.Unmarshal(f.data, &t); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", f.path, err)
		}
		c.Topics = append(c.Topics, t)
	}
	return finish(c)
}

func checkSchema(raw any) error {
	problems, err := schemaProblems(raw)
	if err != nil {
		return err
	}
	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

func finish(c *Catalog) (*Catalog, error) {
	if problems := structProblems(c); len(problems) > 0 {
		return nil, &ValidationError{Problems: problems}
	}
	c.buildIndex()
	return c, nil
}

func isCatalogFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return true
	}
	return false
}
