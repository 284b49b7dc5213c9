package domain

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Task describes the user intent and the documents to rank for one run.
type Task struct {
	// Persona is the role the reader plays (persona.role).
	Persona string

	// JobToBeDone is the task the persona needs to accomplish.
	JobToBeDone string

	// Documents lists the input documents in configured order.
	Documents []DocumentRef
}

// DocumentRef points at one input document.
type DocumentRef struct {
	// Filename is the document identifier as listed in the task.
	Filename string

	// Title is an optional display title from the task file.
	Title string

	// Path is the resolved location on disk. Empty until resolved.
	Path string
}

// Validate checks the required fields. It returns an error wrapping
// ErrInvalidConfig describing the first missing field.
func (t *Task) Validate() error {
	if t == nil {
		return fmt.Errorf("%w: task is nil", ErrInvalidConfig)
	}
	if strings.TrimSpace(t.Persona) == "" {
		return fmt.Errorf("%w: persona.role is required", ErrInvalidConfig)
	}
	if strings.TrimSpace(t.JobToBeDone) == "" {
		return fmt.Errorf("%w: job_to_be_done.task is required", ErrInvalidConfig)
	}
	if len(t.Documents) == 0 {
		return fmt.Errorf("%w: no documents listed", ErrInvalidConfig)
	}
	for i, d := range t.Documents {
		if strings.TrimSpace(d.Filename) == "" {
			return fmt.Errorf("%w: documents[%d].filename is required", ErrInvalidConfig, i)
		}
		if !filepath.IsLocal(d.Filename) {
			return fmt.Errorf("%w: documents[%d].filename %q must stay inside the input directory",
				ErrInvalidConfig, i, d.Filename)
		}
	}
	return nil
}

// Query builds the ranking query string for this task.
func (t *Task) Query() string {
	return BuildQuery(t.Persona, t.JobToBeDone)
}

// Filenames returns the document identifiers in configured order.
func (t *Task) Filenames() []string {
	names := make([]string, len(t.Documents))
	for i, d := range t.Documents {
		names[i] = d.Filename
	}
	return names
}

// BuildQuery combines persona and task into the single query string
// that is embedded once per run.
func BuildQuery(persona, task string) string {
	return fmt.Sprintf("Persona: %s. Task: %s", persona, task)
}
