package report

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/personarank/internal/core/domain"
)

func sampleReport() *domain.RunReport {
	return &domain.RunReport{
		RunID:          "run-1",
		InputDocuments: []string{"a.pdf", "b.pdf"},
		Persona:        "Travel Planner",
		JobToBeDone:    "Plan a trip for <10> friends & family",
		ProcessedAt:    time.Date(2025, 7, 10, 15, 31, 22, 632389000, time.Local),
		Model:          "all-minilm",
		Sections: []domain.ExtractedSection{
			{Document: "a.pdf", PageNumber: 2, SectionTitle: "Côte d'Azur beaches", Rank: 1},
			{Document: "b.pdf", PageNumber: 1, SectionTitle: "Nightlife", Rank: 2},
		},
		Analysis: []domain.SubsectionAnalysis{
			{Document: "a.pdf", PageNumber: 2, RefinedText: "Côte d'Azur beaches are great", Score: 0.9},
			{Document: "b.pdf", PageNumber: 1, RefinedText: "Nightlife in Nice", Score: 0.5},
		},
	}
}

func TestEncode_Format(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, sampleReport()))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "{\n    \"metadata\": {\n        \"input_documents\": ["))
	assert.Contains(t, out, `"processing_timestamp": "2025-07-10T15:31:22.632389"`)
	assert.Contains(t, out, "Côte d'Azur")
	assert.Contains(t, out, "<10> friends & family")
	assert.Contains(t, out, `"importance_rank": 1`)
	assert.Contains(t, out, `"relevance_score": 0.9`)
	assert.NotContains(t, out, "run-1")
}

func TestEncode_EmptyListsAreArrays(t *testing.T) {
	r := &domain.RunReport{Persona: "p", JobToBeDone: "j"}

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, r))

	var generic map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &generic))
	assert.Equal(t, []any{}, generic["extracted_sections"])
	assert.Equal(t, []any{}, generic["sub_section_analysis"])
	assert.Equal(t, []any{}, generic["metadata"].(map[string]any)["input_documents"])
}

func TestJSONStore_WriteRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "nested", DefaultFilename)
	store := NewJSONStore()
	original := sampleReport()

	require.NoError(t, store.Write(context.Background(), original, path))

	got, err := store.Read(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, original.InputDocuments, got.InputDocuments)
	assert.Equal(t, original.Persona, got.Persona)
	assert.Equal(t, original.JobToBeDone, got.JobToBeDone)
	assert.True(t, original.ProcessedAt.Equal(got.ProcessedAt))
	assert.Equal(t, original.Sections, got.Sections)
	assert.Equal(t, original.Analysis, got.Analysis)
	assert.Empty(t, got.RunID)
}

func TestJSONStore_Write_NilReport(t *testing.T) {
	err := NewJSONStore().Write(context.Background(), nil, filepath.Join(t.TempDir(), "x.json"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestJSONStore_Write_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	path := filepath.Join(t.TempDir(), "x.json")
	err := NewJSONStore().Write(ctx, sampleReport(), path)

	assert.ErrorIs(t, err, context.Canceled)
	assert.NoFileExists(t, path)
}

func TestJSONStore_Read_Errors(t *testing.T) {
	dir := t.TempDir()
	store := NewJSONStore()

	_, err := store.Read(context.Background(), filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0o600))
	_, err = store.Read(context.Background(), bad)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	badTime := filepath.Join(dir, "time.json")
	require.NoError(t, os.WriteFile(badTime, []byte(`{"metadata": {"processing_timestamp": "yesterday"}}`), 0o600))
	_, err = store.Read(context.Background(), badTime)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
