package domain

import (
	"fmt"
	"strings"
)

// MinChunkTokens is the token count a block must exceed to become a chunk.
// Blocks with this many whitespace-delimited tokens or fewer are discarded.
const MinChunkTokens = 10

// Location is the structural position of a chunk within its document.
// Both coordinates are 1-based.
type Location struct {
	// Page is the page number.
	Page int

	// Block is the block index within the page, counting every block
	// including those discarded for being too short.
	Block int
}

// Label returns the human-readable provenance string.
func (l Location) Label() string {
	return fmt.Sprintf("Page %d, Block %d", l.Page, l.Block)
}

// Less orders locations by page, then block.
func (l Location) Less(other Location) bool {
	if l.Page != other.Page {
		return l.Page < other.Page
	}
	return l.Block < other.Block
}

// TextChunk is a unit of rankable content extracted from a document.
// Its identity is fully determined by DocumentID and Location.
type TextChunk struct {
	// DocumentID identifies the source document (its filename).
	DocumentID string

	// Location is the chunk's position within the document.
	Location Location

	// Text is the trimmed block text.
	Text string
}

// Label returns the provenance label, e.g. "Page 2, Block 5".
func (c TextChunk) Label() string {
	return c.Location.Label()
}

// Key returns a stable identifier built from document and location.
func (c TextChunk) Key() string {
	return fmt.Sprintf("%s#p%d.b%d", c.DocumentID, c.Location.Page, c.Location.Block)
}

// TokenCount returns the number of whitespace-delimited tokens in text.
func TokenCount(text string) int {
	return len(strings.Fields(text))
}

// IsRankable reports whether text has enough tokens to be a chunk.
func IsRankable(text string) bool {
	return TokenCount(text) > MinChunkTokens
}
