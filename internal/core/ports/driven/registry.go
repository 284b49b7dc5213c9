package driven

import "context"

// ReaderRegistry selects the appropriate page reader for a document.
// It maintains a priority-ordered list of readers and dispatches
// based on file extension.
type ReaderRegistry interface {
	// Open opens the document at path with the best matching reader.
	Open(ctx context.Context, path string) (PagedDocument, error)

	// Register adds a reader to the registry.
	Register(reader PageReader)

	// SupportedExtensions returns all extensions that can be read.
	SupportedExtensions() []string
}
