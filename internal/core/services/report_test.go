package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/personarank/internal/core/domain"
)

var fixedTime = time.Date(2025, 7, 10, 15, 31, 22, 632389000, time.Local)

func fixedAssembler() *ReportAssembler {
	return NewReportAssembler().
		WithClock(func() time.Time { return fixedTime }).
		WithIDs(func() string { return "run-1" })
}

func TestReportAssembler_Assemble(t *testing.T) {
	result := &domain.RankResult{
		Sections: []domain.ExtractedSection{
			{Document: "b.pdf", PageNumber: 2, SectionTitle: "Page 2, Block 1", Rank: 1},
			{Document: "a.pdf", PageNumber: 1, SectionTitle: "Page 1, Block 3", Rank: 2},
		},
		Analysis: []domain.SubsectionAnalysis{
			{Document: "b.pdf", PageNumber: 2, RefinedText: "second doc text", Score: 0.8},
			{Document: "a.pdf", PageNumber: 1, RefinedText: "first doc text", Score: 0.4},
		},
	}
	warnings := []domain.Warning{{Kind: domain.WarningDocument, Subject: "c.pdf"}}

	report := fixedAssembler().Assemble(ReportInput{
		Documents:   []string{"a.pdf", "nested/b.pdf", "c.pdf"},
		Persona:     "Travel Planner",
		JobToBeDone: "Plan a trip",
		Model:       "all-minilm",
		Result:      result,
		Warnings:    warnings,
	})

	require.NotNil(t, report)
	assert.Equal(t, "run-1", report.RunID)
	assert.Equal(t, fixedTime, report.ProcessedAt)
	assert.Equal(t, []string{"a.pdf", "b.pdf", "c.pdf"}, report.InputDocuments)
	assert.Equal(t, "Travel Planner", report.Persona)
	assert.Equal(t, "Plan a trip", report.JobToBeDone)
	assert.Equal(t, "all-minilm", report.Model)
	assert.Equal(t, result.Sections, report.Sections, "order is preserved")
	assert.Equal(t, result.Analysis, report.Analysis)
	assert.Equal(t, warnings, report.Warnings)
}

func TestReportAssembler_Assemble_CopiesInputs(t *testing.T) {
	docs := []string{"a.pdf"}
	result := &domain.RankResult{
		Sections: []domain.ExtractedSection{{Document: "a.pdf", Rank: 1}},
		Analysis: []domain.SubsectionAnalysis{{Document: "a.pdf", Score: 0.5}},
	}

	report := fixedAssembler().Assemble(ReportInput{Documents: docs, Result: result})

	docs[0] = "changed.pdf"
	result.Sections[0].Rank = 9
	result.Analysis[0].Score = 0

	assert.Equal(t, "a.pdf", report.InputDocuments[0])
	assert.Equal(t, 1, report.Sections[0].Rank)
	assert.InDelta(t, 0.5, report.Analysis[0].Score, 1e-9)
}

func TestReportAssembler_Assemble_Empty(t *testing.T) {
	report := fixedAssembler().Assemble(ReportInput{
		Documents: []string{"a.pdf"},
		Persona:   "p",
	})

	assert.NotNil(t, report.Sections)
	assert.NotNil(t, report.Analysis)
	assert.Empty(t, report.Sections)
	assert.Empty(t, report.Analysis)
}

func TestNewReportAssembler_UsesRealClockAndIDs(t *testing.T) {
	a := NewReportAssembler()
	before := time.Now()

	first := a.Assemble(ReportInput{})
	second := a.Assemble(ReportInput{})

	assert.False(t, first.ProcessedAt.Before(before))
	assert.NotEmpty(t, first.RunID)
	assert.NotEqual(t, first.RunID, second.RunID)
}

func TestReportAssembler_WithClockDoesNotMutate(t *testing.T) {
	base := NewReportAssembler()
	_ = base.WithClock(func() time.Time { return fixedTime })

	report := base.Assemble(ReportInput{})
	assert.NotEqual(t, fixedTime, report.ProcessedAt)
}
