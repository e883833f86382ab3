// Package pipeline turns rendered invoice Markdown into a styled HTML document.
//
// The stages are Markdown to HTML via goldmark (GFM tables, hard wraps,
// syntax-highlighted fenced code) and CSS injection into the document head.
// PDF generation is handled by the root package using headless Chrome.
package pipeline
