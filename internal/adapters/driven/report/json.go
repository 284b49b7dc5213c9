// Package report serialises run reports as JSON files.
package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/custodia-labs/personarank/internal/core/domain"
	"github.com/custodia-labs/personarank/internal/core/ports/driven"
)

// Ensure JSONStore implements the interfaces.
var (
	_ driven.ReportWriter = (*JSONStore)(nil)
	_ driven.ReportReader = (*JSONStore)(nil)
)

// DefaultFilename is the report name used when only an output directory is known.
const DefaultFilename = "challenge1b_output.json"

// Output is the on-disk report record.
type Output struct {
	Metadata           Metadata           `json:"metadata"`
	ExtractedSections  []ExtractedSection `json:"extracted_sections"`
	SubSectionAnalysis []SubSection       `json:"sub_section_analysis"`
}

// Metadata describes the run inputs.
type Metadata struct {
	InputDocuments      []string `json:"input_documents"`
	Persona             string   `json:"persona"`
	JobToBeDone         string   `json:"job_to_be_done"`
	ProcessingTimestamp string   `json:"processing_timestamp"`
}

// ExtractedSection is one ranked section entry.
type ExtractedSection struct {
	Document       string `json:"document"`
	PageNumber     int    `json:"page_number"`
	SectionTitle   string `json:"section_title"`
	ImportanceRank int    `json:"importance_rank"`
}

// SubSection is one refined text entry with its score.
type SubSection struct {
	Document       string  `json:"document"`
	PageNumber     int     `json:"page_number"`
	RefinedText    string  `json:"refined_text"`
	RelevanceScore float64 `json:"relevance_score"`
}

// FromDomain converts a run report to its output record. Empty lists
// become empty arrays, never null.
func FromDomain(r *domain.RunReport) Output {
	out := Output{
		Metadata: Metadata{
			InputDocuments:      append([]string{}, r.InputDocuments...),
			Persona:             r.Persona,
			JobToBeDone:         r.JobToBeDone,
			ProcessingTimestamp: r.ProcessedAt.Format(domain.TimestampLayout),
		},
		ExtractedSections:  make([]ExtractedSection, 0, len(r.Sections)),
		SubSectionAnalysis: make([]SubSection, 0, len(r.Analysis)),
	}
	for _, s := range r.Sections {
		out.ExtractedSections = append(out.ExtractedSections, ExtractedSection{
			Document:       s.Document,
			PageNumber:     s.PageNumber,
			SectionTitle:   s.SectionTitle,
			ImportanceRank: s.Rank,
		})
	}
	for _, a := range r.Analysis {
		out.SubSectionAnalysis = append(out.SubSectionAnalysis, SubSection{
			Document:       a.Document,
			PageNumber:     a.PageNumber,
			RefinedText:    a.RefinedText,
			RelevanceScore: a.Score,
		})
	}
	return out
}

// ToDomain converts an output record back to a run report. Fields the
// record does not carry (run ID, model, warnings) are left empty.
func (o Output) ToDomain() (*domain.RunReport, error) {
	r := &domain.RunReport{
		InputDocuments: append([]string{}, o.Metadata.InputDocuments...),
		Persona:        o.Metadata.Persona,
		JobToBeDone:    o.Metadata.JobToBeDone,
		Sections:       make([]domain.ExtractedSection, 0, len(o.ExtractedSections)),
		Analysis:       make([]domain.SubsectionAnalysis, 0, len(o.SubSectionAnalysis)),
	}

	if o.Metadata.ProcessingTimestamp != "" {
		ts, err := time.ParseInLocation(domain.TimestampLayout, o.Metadata.ProcessingTimestamp, time.Local)
		if err != nil {
			return nil, fmt.Errorf("%w: processing_timestamp: %w", domain.ErrInvalidInput, err)
		}
		r.ProcessedAt = ts
	}

	for _, s := range o.ExtractedSections {
		r.Sections = append(r.Sections, domain.ExtractedSection{
			Document:     s.Document,
			PageNumber:   s.PageNumber,
			SectionTitle: s.SectionTitle,
			Rank:         s.ImportanceRank,
		})
	}
	for _, a := range o.SubSectionAnalysis {
		r.Analysis = append(r.Analysis, domain.SubsectionAnalysis{
			Document:    a.Document,
			PageNumber:  a.PageNumber,
			RefinedText: a.RefinedText,
			Score:       a.RelevanceScore,
		})
	}
	return r, nil
}

// Encode writes report to w as indented JSON without HTML escaping.
func Encode(w io.Writer, report *domain.RunReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(FromDomain(report)); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

// JSONStore writes and reads reports as JSON files.
type JSONStore struct{}

// NewJSONStore creates a JSON report store.
func NewJSONStore() *JSONStore {
	return &JSONStore{}
}

// Write serialises report to path, creating parent directories.
func (s *JSONStore) Write(ctx context.Context, report *domain.RunReport, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if report == nil {
		return fmt.Errorf("%w: nil report", domain.ErrInvalidInput)
	}

	var buf bytes.Buffer
	if err := Encode(&buf, report); err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// Read parses the report at path.
func (s *JSONStore) Read(ctx context.Context, path string) (*domain.RunReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}

	var out Output
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("%w: parse report %s: %w", domain.ErrInvalidInput, filepath.Base(path), err)
	}
	return out.ToDomain()
}
