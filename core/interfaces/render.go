// ABOUTME: Narrow rendering capability consumed by the extraction pipeline
// ABOUTME: Keeps extraction logic independent of the concrete browser engine

package interfaces

import "context"

// Element is a handle to one matched DOM element.
type Element interface {
	// Attr returns the value of the named attribute, empty when absent
	Attr(name string) string

	// Text returns the element's visible text content
	Text() string
}

// Page is an opaque handle to a navigated, loaded document. A Page is
// owned by the pipeline for the duration of one article's processing
// and is never shared across articles or persisted.
type Page interface {
	// URL returns the current resolved document URL
	URL() string

	// Title returns the raw document title
	Title() string

	// QueryAll returns every element matching the CSS selector
	QueryAll(selector string) []Element

	// Text returns the raw visible page text
	Text() string

	// HTML returns the page's HTML snapshot
	HTML() string
}

// Session is a scoped renderer resource. An article is bound to exactly
// one session for its full lifetime; sessions are released on every
// exit path.
type Session interface {
	// Navigate loads the URL and returns a handle to the document.
	// Navigation is bounded by the context deadline.
	Navigate(ctx context.Context, url string) (Page, error)

	// Close releases the session's resources
	Close() error
}

// Renderer creates renderer sessions.
type Renderer interface {
	// NewSession opens a fresh session
	NewSession(ctx context.Context) (Session, error)

	// Close shuts the renderer down, closing any remaining sessions
	Close() error
}

// SessionPool owns a fixed set of sessions for pooled execution.
// Acquire blocks until a session is free or the context is done;
// every acquired session must be returned with Release.
type SessionPool interface {
	Acquire(ctx context.Context) (Session, error)
	Release(s Session)
	Close() error
}
