// Package pdf reads PDF documents as pages of text blocks.
package pdf

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"

	"github.com/custodia-labs/personarank/internal/core/ports/driven"
)

// Ensure Reader implements the interface.
var _ driven.PageReader = (*Reader)(nil)

// blockGapFactor is how many typical line spacings must separate two
// rows before they are treated as different blocks.
const blockGapFactor = 1.5

// Reader opens PDF files.
type Reader struct{}

// New creates a new PDF reader.
func New() *Reader {
	return &Reader{}
}

// SupportedExtensions returns the file extensions this reader handles.
func (r *Reader) SupportedExtensions() []string {
	return []string{".pdf"}
}

// SupportedMIMETypes returns the MIME types this reader handles.
func (r *Reader) SupportedMIMETypes() []string {
	return []string{"application/pdf"}
}

// Priority returns the selection priority.
func (r *Reader) Priority() int {
	return 50 // Format-specific reader
}

// Open parses the PDF cross-reference table and returns a document
// whose pages are decoded on demand.
func (r *Reader) Open(ctx context.Context, path string) (doc driven.PagedDocument, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// The parser panics on some malformed files.
	defer func() {
		if rec := recover(); rec != nil {
			doc = nil
			err = fmt.Errorf("malformed PDF %s: %v", path, rec)
		}
	}()

	file, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}

	return &document{file: file, reader: reader}, nil
}

// document is an opened PDF.
type document struct {
	file   *os.File
	reader *pdf.Reader
}

// NumPages returns the page count from the document catalogue.
func (d *document) NumPages() int {
	return d.reader.NumPage()
}

// Blocks returns the text blocks of page in top-to-bottom order.
func (d *document) Blocks(page int) (blocks []string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			blocks = nil
			err = fmt.Errorf("decode page %d: %v", page, rec)
		}
	}()

	p := d.reader.Page(page)
	if p.V.IsNull() {
		return nil, nil
	}

	rows, err := p.GetTextByRow()
	if err != nil {
		return nil, fmt.Errorf("decode page %d: %w", page, err)
	}

	lines := make([]line, 0, len(rows))
	for _, row := range rows {
		frags := make([]fragment, 0, len(row.Content))
		for _, t := range row.Content {
			if t.S == "" {
				continue
			}
			frags = append(frags, fragment{X: t.X, Text: t.S})
		}
		text := joinFragments(frags)
		if strings.TrimSpace(text) == "" {
			continue
		}
		lines = append(lines, line{Y: float64(row.Position), Text: text})
	}

	return groupLines(lines), nil
}

// Close releases the underlying file.
func (d *document) Close() error {
	return d.file.Close()
}

// fragment is one run of text drawn at a horizontal position.
type fragment struct {
	X    float64
	Text string
}

// line is the text of one row at a vertical position.
// Y increases from the bottom of the page to the top.
type line struct {
	Y    float64
	Text string
}

// joinFragments rebuilds a row of text from its drawn fragments, which
// arrive sorted left to right. Word-level fragments are joined with a
// single space. Glyph-level fragments (every fragment one rune long)
// are concatenated, with a space wherever the horizontal advance is
// noticeably wider than usual.
func joinFragments(frags []fragment) string {
	if len(frags) == 0 {
		return ""
	}

	glyphs := true
	for _, f := range frags {
		if utf8.RuneCountInString(f.Text) != 1 {
			glyphs = false
			break
		}
	}

	var b strings.Builder
	if !glyphs {
		for i, f := range frags {
			if i > 0 && !endsWithSpace(frags[i-1].Text) && !startsWithSpace(f.Text) {
				b.WriteByte(' ')
			}
			b.WriteString(f.Text)
		}
		return b.String()
	}

	advances := make([]float64, 0, len(frags)-1)
	for i := 1; i < len(frags); i++ {
		advances = append(advances, frags[i].X-frags[i-1].X)
	}
	typical := median(advances)

	b.WriteString(frags[0].Text)
	for i := 1; i < len(frags); i++ {
		if typical > 0 && frags[i].X-frags[i-1].X > typical*1.8 && !startsWithSpace(frags[i].Text) {
			b.WriteByte(' ')
		}
		b.WriteString(frags[i].Text)
	}
	return b.String()
}

// groupLines splits lines, ordered top to bottom, into blocks wherever
// the vertical gap to the previous line exceeds blockGapFactor times the
// typical line spacing on the page.
func groupLines(lines []line) []string {
	if len(lines) == 0 {
		return nil
	}

	gaps := make([]float64, 0, len(lines)-1)
	for i := 1; i < len(lines); i++ {
		gaps = append(gaps, lines[i-1].Y-lines[i].Y)
	}
	typical := median(gaps)

	var (
		blocks  []string
		current []string
	)
	for i, l := range lines {
		if i > 0 && typical > 0 && lines[i-1].Y-l.Y > typical*blockGapFactor {
			blocks = append(blocks, strings.Join(current, "\n"))
			current = nil
		}
		current = append(current, l.Text)
	}
	return append(blocks, strings.Join(current, "\n"))
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	return sorted[len(sorted)/2]
}

func endsWithSpace(s string) bool {
	return s != "" && strings.TrimRight(s, " \t") != s
}

func startsWithSpace(s string) bool {
	return s != "" && strings.TrimLeft(s, " \t") != s
}
