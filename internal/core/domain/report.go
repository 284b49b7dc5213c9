package domain

import "time"

// RelevanceThreshold is the fixed cutoff a score must exceed for a chunk
// to appear in the report. The comparison is strict.
const RelevanceThreshold = 0.2

// TimestampLayout formats a report's processing time: local time with
// microsecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000000"

// ScoredChunk pairs a chunk with its cosine similarity to the query.
type ScoredChunk struct {
	Chunk TextChunk

	// Score is the cosine similarity in [-1, 1].
	Score float64

	// Rank is the 1-based position after sorting. Zero until ranked.
	Rank int

	// Order is the chunk's position in gathering order, used to break
	// exact score ties (earlier wins).
	Order int
}

// PassesThreshold reports whether the score strictly exceeds RelevanceThreshold.
func (s ScoredChunk) PassesThreshold() bool {
	return s.Score > RelevanceThreshold
}

// ExtractedSection is the provenance-and-rank view of a ranked chunk.
type ExtractedSection struct {
	Document     string
	PageNumber   int
	SectionTitle string
	Rank         int
}

// SubsectionAnalysis is the full-text-and-score view of a ranked chunk.
type SubsectionAnalysis struct {
	Document    string
	PageNumber  int
	RefinedText string
	Score       float64
}

// RankResult is the ranker's output: the surviving chunks in
// score-descending order and the two derived views over them.
type RankResult struct {
	// Ranked holds every chunk that passed the threshold, in rank order.
	Ranked []ScoredChunk

	// Sections and Analysis are parallel to Ranked.
	Sections []ExtractedSection
	Analysis []SubsectionAnalysis

	// Scored is the total number of chunks that received a score.
	Scored int

	// Warnings collects recoverable problems met while ranking.
	Warnings []Warning
}

// WarningKind classifies a recoverable problem.
type WarningKind string

// Recoverable warning kinds.
const (
	// WarningDocument marks a document that could not be read.
	WarningDocument WarningKind = "document"

	// WarningEmbedding marks a chunk that could not be embedded.
	WarningEmbedding WarningKind = "embedding"
)

// Warning records a recoverable problem that omitted items from the report.
type Warning struct {
	Kind WarningKind

	// Subject names the affected document or chunk.
	Subject string

	// Err is the underlying cause.
	Err error
}

// String returns a one-line description of the warning.
func (w Warning) String() string {
	if w.Err == nil {
		return string(w.Kind) + ": " + w.Subject
	}
	return string(w.Kind) + ": " + w.Subject + ": " + w.Err.Error()
}

// RunReport is the final artifact of one pipeline run.
// It is never mutated after assembly.
type RunReport struct {
	// RunID uniquely identifies the run.
	RunID string

	// InputDocuments lists document identifiers in configured order.
	InputDocuments []string

	Persona     string
	JobToBeDone string

	// ProcessedAt is the capture time stamped by the assembler.
	ProcessedAt time.Time

	// Model names the embedding model that produced the scores.
	Model string

	// Sections and Analysis are parallel, score-descending, and contain
	// exactly the chunks that passed the threshold.
	Sections []ExtractedSection
	Analysis []SubsectionAnalysis

	// Warnings are recoverable problems. They are not serialised.
	Warnings []Warning
}
