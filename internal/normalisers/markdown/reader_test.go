package markdown

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	r := New()
	require.NotNil(t, r)
	assert.Equal(t, []string{".md", ".markdown"}, r.SupportedExtensions())
	assert.Contains(t, r.SupportedMIMETypes(), "text/markdown")
	assert.Equal(t, 50, r.Priority())
}

func TestReader_Open_HeadingsAreOwnBlocks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "guide.md")
	content := "# Things to Do\nVisit the **old town** and see [the harbour](https://example.com).\n\n" +
		"## Food\n- Try the *bouillabaisse*\n- Book ahead\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	doc, err := New().Open(context.Background(), path)
	require.NoError(t, err)
	defer doc.Close()

	require.Equal(t, 1, doc.NumPages())
	blocks, err := doc.Blocks(1)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Things to Do",
		"Visit the old town and see the harbour.",
		"Food",
		"Try the bouillabaisse\nBook ahead",
	}, blocks)
}

func TestReader_Open_MissingFile(t *testing.T) {
	_, err := New().Open(context.Background(), filepath.Join(t.TempDir(), "missing.md"))
	assert.Error(t, err)
}

func TestStripMarkdown(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"code block", "before\n\n```go\nfmt.Println()\n```\n\nafter", "before\n\nafter"},
		{"inline code", "run `make` now", "run  now"},
		{"image", "look ![alt](img.png) here", "look  here"},
		{"blockquote", "> quoted", "quoted"},
		{"numbered list", "1. first\n2. second", "first\nsecond"},
		{"horizontal rule", "above\n\n---\n\nbelow", "above\n\nbelow"},
		{"bold", "a **strong** word and __another__ one", "a strong word and another one"},
		{"italic", "an *emphasised* and _slanted_ word", "an emphasised and slanted word"},
		{"adjacent italics", "*one* *two*", "one two"},
		{"snake case kept", "set max_retry_count_for_http_client_pool high", "set max_retry_count_for_http_client_pool high"},
		{"arithmetic kept", "3 * 4 = 12 and 2*3*4 = 24", "3 * 4 = 12 and 2*3*4 = 24"},
		{"starred list item", "* _first_ item", "first item"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, stripMarkdown(tt.input))
		})
	}
}

func TestStripMarkdown_KeepsTokenCount(t *testing.T) {
	input := "Tune max_retry_count_for_http_client_pool before load, since 3 * 4 = 12 retries is the ceiling."

	out := stripMarkdown(input)

	assert.Equal(t, input, out)
	assert.Equal(t, len(strings.Fields(input)), len(strings.Fields(out)))
}
