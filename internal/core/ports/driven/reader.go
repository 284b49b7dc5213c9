package driven

import "context"

// PageReader opens documents of a particular format as pages of text blocks.
// Each reader handles specific extensions and MIME types (e.g., PDF, plain text).
type PageReader interface {
	// SupportedExtensions returns the lower-case file extensions handled, with dot.
	SupportedExtensions() []string

	// SupportedMIMETypes returns the MIME types this reader handles.
	SupportedMIMETypes() []string

	// Priority returns the selection priority (higher = preferred).
	// Format-specific readers should return 50-89.
	// Fallback readers should return 1-9.
	Priority() int

	// Open prepares the document at path for reading.
	Open(ctx context.Context, path string) (PagedDocument, error)
}

// PagedDocument is an opened document exposed as ordered pages of blocks.
type PagedDocument interface {
	// NumPages returns the number of pages.
	NumPages() int

	// Blocks returns the raw text blocks of a 1-based page in reading order.
	// Blocks are not trimmed or filtered.
	Blocks(page int) ([]string, error)

	// Close releases the underlying file.
	Close() error
}
