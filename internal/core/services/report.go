package services

import (
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/personarank/internal/core/domain"
)

// ReportInput carries everything the assembler needs for one run.
type ReportInput struct {
	// Documents are the configured document identifiers, in order.
	Documents []string

	Persona     string
	JobToBeDone string

	// Model names the embedding model used for scoring.
	Model string

	// Result is the ranker output. Nil means nothing was ranked.
	Result *domain.RankResult

	// Warnings are all recoverable problems from the run.
	Warnings []domain.Warning
}

// ReportAssembler shapes ranked results and run metadata into a RunReport.
// It stamps the capture time but never reorders or filters entries.
type ReportAssembler struct {
	now   func() time.Time
	newID func() string
}

// NewReportAssembler creates an assembler using the system clock and
// random run IDs.
func NewReportAssembler() *ReportAssembler {
	return &ReportAssembler{
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// WithClock returns a copy of the assembler that reads time from now.
func (a *ReportAssembler) WithClock(now func() time.Time) *ReportAssembler {
	c := *a
	c.now = now
	return &c
}

// WithIDs returns a copy of the assembler that draws run IDs from newID.
func (a *ReportAssembler) WithIDs(newID func() string) *ReportAssembler {
	c := *a
	c.newID = newID
	return &c
}

// Assemble builds the report. Input slices are copied so the report
// shares no backing arrays with the caller.
func (a *ReportAssembler) Assemble(in ReportInput) *domain.RunReport {
	documents := make([]string, len(in.Documents))
	for i, d := range in.Documents {
		documents[i] = filepath.Base(d)
	}

	report := &domain.RunReport{
		RunID:          a.newID(),
		InputDocuments: documents,
		Persona:        in.Persona,
		JobToBeDone:    in.JobToBeDone,
		ProcessedAt:    a.now(),
		Model:          in.Model,
		Sections:       []domain.ExtractedSection{},
		Analysis:       []domain.SubsectionAnalysis{},
		Warnings:       append([]domain.Warning(nil), in.Warnings...),
	}

	if in.Result != nil {
		report.Sections = append(report.Sections, in.Result.Sections...)
		report.Analysis = append(report.Analysis, in.Result.Analysis...)
	}

	return report
}
