// Package markdown reads Markdown files as pages of plain text blocks.
package markdown

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/custodia-labs/personarank/internal/core/ports/driven"
	"github.com/custodia-labs/personarank/internal/normalisers/plaintext"
)

// Ensure Reader implements the interface.
var _ driven.PageReader = (*Reader)(nil)

var (
	codeBlock     = regexp.MustCompile("(?s)```[^`]*```")
	inlineCode    = regexp.MustCompile("`[^`]+`")
	images        = regexp.MustCompile(`!\[[^\]]*\]\([^)]+\)`)
	links         = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	headingLine   = regexp.MustCompile(`(?m)^(#{1,6}\s+.*)$`)
	headings      = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	blockquote    = regexp.MustCompile(`(?m)^>\s*`)
	horizontal    = regexp.MustCompile(`(?m)^[-*_]{3,}\s*$`)
	listMarkers   = regexp.MustCompile(`(?m)^[ \t]*[-*+][ \t]+`)
	numberedList  = regexp.MustCompile(`(?m)^[ \t]*\d+\.[ \t]+`)
	multiNewlines = regexp.MustCompile(`\n{3,}`)

	// Emphasis delimiters must hug non-space text and sit outside words,
	// so snake_case identifiers and arithmetic like "3 * 4" survive.
	strongStar = regexp.MustCompile(`\*\*(\S(?:[^*\n]*\S)?)\*\*`)
	strongLine = regexp.MustCompile(`(^|\W)__(\S(?:[^_\n]*\S)?)__(\W|$)`)
	emStar     = regexp.MustCompile(`(^|[^\w*])\*(\S(?:[^*\n]*\S)?)\*([^\w*]|$)`)
	emLine     = regexp.MustCompile(`(^|\W)_(\S(?:[^_\n]*\S)?)_(\W|$)`)
)

// Reader handles Markdown documents.
type Reader struct{}

// New creates a new Markdown reader.
func New() *Reader {
	return &Reader{}
}

// SupportedExtensions returns the file extensions this reader handles.
func (r *Reader) SupportedExtensions() []string {
	return []string{".md", ".markdown"}
}

// SupportedMIMETypes returns the MIME types this reader handles.
func (r *Reader) SupportedMIMETypes() []string {
	return []string{"text/markdown", "text/x-markdown"}
}

// Priority returns the selection priority.
func (r *Reader) Priority() int {
	return 50 // Format-specific reader, higher than plaintext
}

// Open reads the file and reduces it to plain text. Every heading becomes
// a block of its own so section titles stay separate from their bodies.
func (r *Reader) Open(ctx context.Context, path string) (driven.PagedDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read markdown file: %w", err)
	}

	return plaintext.NewDocument(stripMarkdown(string(content))), nil
}

// stripMarkdown removes common markdown formatting, leaving paragraphs
// separated by blank lines.
func stripMarkdown(content string) string {
	content = strings.ReplaceAll(content, "\r\n", "\n")

	content = codeBlock.ReplaceAllString(content, "")
	content = inlineCode.ReplaceAllString(content, "")
	content = images.ReplaceAllString(content, "")
	content = links.ReplaceAllString(content, "$1")

	content = headingLine.ReplaceAllString(content, "\n$1\n")
	content = headings.ReplaceAllString(content, "")

	content = blockquote.ReplaceAllString(content, "")
	content = horizontal.ReplaceAllString(content, "")
	content = listMarkers.ReplaceAllString(content, "")
	content = numberedList.ReplaceAllString(content, "")

	content = stripEmphasis(content)

	content = multiNewlines.ReplaceAllString(content, "\n\n")

	return strings.TrimSpace(content)
}

// stripEmphasis drops bold and italic delimiters, keeping the text they
// wrap. Adjacent spans share a boundary character, so each pattern is
// applied until the text stops changing.
func stripEmphasis(content string) string {
	content = replaceUntilStable(strongStar, content, "$1")
	for _, re := range []*regexp.Regexp{strongLine, emStar, emLine} {
		content = replaceUntilStable(re, content, "${1}${2}${3}")
	}
	return content
}

func replaceUntilStable(re *regexp.Regexp, content, repl string) string {
	for {
		next := re.ReplaceAllString(content, repl)
		if next == content {
			return content
		}
		content = next
	}
}
