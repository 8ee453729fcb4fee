// Package docsource extracts plain text from uploaded documents.
package docsource

import (
	"context"
	"errors"
	"fmt"
)

// TextSource produces the raw text of a stored document.
type TextSource interface {
	// Extract returns the document's text. Missing, corrupt or textless
	// documents fail with *ErrDocumentUnreadable.
	Extract(ctx context.Context, path string) (string, error)
}

// ErrNoText indicates the document parsed but contained no text.
var ErrNoText = errors.New("document contains no text")

// ErrDocumentUnreadable indicates the document at Path could not be read
// as text.
type ErrDocumentUnreadable struct {
	Path string
	Err  error
}

func (e *ErrDocumentUnreadable) Error() string {
	return fmt.Sprintf("unreadable document %s: %v", e.Path, e.Err)
}

func (e *ErrDocumentUnreadable) Unwrap() error { return e.Err }
