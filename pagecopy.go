// Package pagecopy extracts the rendered content of a documentation page,
// converts it to portable Markdown-flavoured text and hands it to the user
// for copying, viewing or forwarding to an external assistant.
//
// This package contains domain types, interfaces and the pure tree
// converter, following Ben Johnson's Standard Package Layout.
// Implementations live in subdirectories named after their primary
// dependency (e.g., goquery/, rod/, gemini/). The widget/ package wires
// extraction, attachment and navigation tracking into a single event loop.
package pagecopy
