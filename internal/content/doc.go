// Package content models the corpus a classification pass runs over.
//
// An Item is one post or page with per-language Metadata. Items are loaded
// from Markdown files whose name may carry a language suffix
// (about.de.md is the German translation of about.md). The corpus is a
// read-only snapshot: nothing downstream mutates it.
package content
