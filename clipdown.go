// Package clipdown converts web pages to Markdown for note-taking.
// The core is a rule-based HTML to Markdown engine that preserves
// tables, nested and task lists, math notation, footnotes, callouts
// and embeds, and rewrites relative URLs against the source page.
// Around it sit extractors that isolate main content, fetchers for
// plain and script-rendered pages, and storage for clipped notes.
//
// This package contains domain types and interfaces following Ben
// Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., sqlite/,
// trafilatura/, rod/).
package clipdown
