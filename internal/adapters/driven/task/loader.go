// Package task reads run task files from disk.
//
// Task files are JSON by default. Files ending in .yaml or .yml are
// decoded as YAML with the same field names.
package task

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/personarank/internal/core/domain"
	"github.com/custodia-labs/personarank/internal/core/ports/driven"
)

// Ensure Loader implements the interface.
var _ driven.TaskLoader = (*Loader)(nil)

// taskFile mirrors the on-disk layout. Unknown fields are ignored.
type taskFile struct {
	Persona struct {
		Role string `json:"role" yaml:"role"`
	} `json:"persona" yaml:"persona"`

	JobToBeDone struct {
		Task string `json:"task" yaml:"task"`
	} `json:"job_to_be_done" yaml:"job_to_be_done"`

	Documents []struct {
		Filename string `json:"filename" yaml:"filename"`
		Title    string `json:"title" yaml:"title"`
	} `json:"documents" yaml:"documents"`
}

// Loader loads and validates task files.
type Loader struct{}

// NewLoader creates a task file loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads the task at path and validates it. Every failure wraps
// domain.ErrInvalidConfig.
func (l *Loader) Load(ctx context.Context, path string) (*domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read task file: %w", domain.ErrInvalidConfig, err)
	}

	var raw taskFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &raw)
	default:
		err = json.NewDecoder(bytes.NewReader(data)).Decode(&raw)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %w", domain.ErrInvalidConfig, filepath.Base(path), err)
	}

	t := &domain.Task{
		Persona:     strings.TrimSpace(raw.Persona.Role),
		JobToBeDone: strings.TrimSpace(raw.JobToBeDone.Task),
		Documents:   make([]domain.DocumentRef, 0, len(raw.Documents)),
	}
	for _, d := range raw.Documents {
		t.Documents = append(t.Documents, domain.DocumentRef{
			Filename: strings.TrimSpace(d.Filename),
			Title:    d.Title,
		})
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Discover returns the first *.json file in dir in lexical order.
func (l *Loader) Discover(dir string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return "", fmt.Errorf("%w: scan %s: %w", domain.ErrInvalidConfig, dir, err)
	}

	files := matches[:0]
	for _, m := range matches {
		if info, err := os.Stat(m); err == nil && info.Mode().IsRegular() {
			files = append(files, m)
		}
	}
	if len(files) == 0 {
		return "", fmt.Errorf("%w: no task file (*.json) in %s", domain.ErrInvalidConfig, dir)
	}

	sort.Strings(files)
	return files[0], nil
}
