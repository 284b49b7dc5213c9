package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/personarank/internal/core/domain"
	"github.com/custodia-labs/personarank/internal/core/ports/driving"
)

// RankInput is the input schema for the rank_documents tool.
type RankInput struct {
	Persona     string   `json:"persona" jsonschema:"the role of the reader, e.g. Travel Planner"`
	JobToBeDone string   `json:"job_to_be_done" jsonschema:"the task the persona needs to accomplish"`
	Documents   []string `json:"documents" jsonschema:"document file names or paths in configured order"`
	DocumentDir string   `json:"document_dir,omitempty" jsonschema:"directory that relative document names resolve under"`
	OutputPath  string   `json:"output_path,omitempty" jsonschema:"also write the JSON report to this path"`
	Limit       int      `json:"limit,omitempty" jsonschema:"maximum number of sections to return (default all)"`
}

// RankOutput is the output schema for the rank_documents tool.
type RankOutput struct {
	Metadata           MetadataOutput   `json:"metadata"`
	ExtractedSections  []SectionOutput  `json:"extracted_sections"`
	SubSectionAnalysis []AnalysisOutput `json:"sub_section_analysis"`
	Warnings           []string         `json:"warnings,omitempty"`
}

// MetadataOutput describes the run inputs.
type MetadataOutput struct {
	InputDocuments      []string `json:"input_documents"`
	Persona             string   `json:"persona"`
	JobToBeDone         string   `json:"job_to_be_done"`
	ProcessingTimestamp string   `json:"processing_timestamp"`
	Model               string   `json:"model,omitempty"`
}

// SectionOutput is one ranked section.
type SectionOutput struct {
	Document       string `json:"document"`
	PageNumber     int    `json:"page_number"`
	SectionTitle   string `json:"section_title"`
	ImportanceRank int    `json:"importance_rank"`
}

// AnalysisOutput is the full text and score of one ranked section.
type AnalysisOutput struct {
	Document       string  `json:"document"`
	PageNumber     int     `json:"page_number"`
	RefinedText    string  `json:"refined_text"`
	RelevanceScore float64 `json:"relevance_score"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name: "rank_documents",
		Description: "Rank the text sections of local documents by relevance to a persona " +
			"and the job they need done. Returns sections above the relevance threshold, best first.",
	}, s.handleRank)
}

// handleRank handles the rank_documents tool invocation.
func (s *Server) handleRank(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RankInput,
) (*mcp.CallToolResult, RankOutput, error) {
	task := &domain.Task{
		Persona:     input.Persona,
		JobToBeDone: input.JobToBeDone,
		Documents:   make([]domain.DocumentRef, len(input.Documents)),
	}
	for i, name := range input.Documents {
		task.Documents[i] = domain.DocumentRef{Filename: name}
	}

	dir := input.DocumentDir
	if dir == "" {
		dir = s.documentDir
	}

	report, err := s.ports.Pipeline.Run(ctx, driving.RunRequest{
		Task:        task,
		DocumentDir: dir,
		OutputPath:  input.OutputPath,
	})
	if err != nil {
		return nil, RankOutput{}, fmt.Errorf("rank documents: %w", err)
	}

	s.setLastReport(report)
	return nil, toOutput(report, input.Limit), nil
}

// toOutput converts a report to the tool output, keeping at most limit
// sections when limit is positive.
func toOutput(r *domain.RunReport, limit int) RankOutput {
	n := len(r.Sections)
	if limit > 0 && limit < n {
		n = limit
	}

	out := RankOutput{
		Metadata: MetadataOutput{
			InputDocuments:      append([]string{}, r.InputDocuments...),
			Persona:             r.Persona,
			JobToBeDone:         r.JobToBeDone,
			ProcessingTimestamp: r.ProcessedAt.Format(domain.TimestampLayout),
			Model:               r.Model,
		},
		ExtractedSections:  make([]SectionOutput, n),
		SubSectionAnalysis: make([]AnalysisOutput, n),
	}

	for i := 0; i < n; i++ {
		sec, an := r.Sections[i], r.Analysis[i]
		out.ExtractedSections[i] = SectionOutput{
			Document:       sec.Document,
			PageNumber:     sec.PageNumber,
			SectionTitle:   sec.SectionTitle,
			ImportanceRank: sec.Rank,
		}
		out.SubSectionAnalysis[i] = AnalysisOutput{
			Document:       an.Document,
			PageNumber:     an.PageNumber,
			RefinedText:    an.RefinedText,
			RelevanceScore: an.Score,
		}
	}

	for _, w := range r.Warnings {
		out.Warnings = append(out.Warnings, w.String())
	}
	return out
}
