// Package taxonomy defines the closed set of taxonomy kinds (tags, categories,
// date archives, authors, sections and page folders) and the rules each kind
// applies when items are classified and when classification pages are placed
// in the output tree.
//
// A Registry built from the site configuration holds the enabled definitions
// in a fixed order. Output paths are produced in two steps: a Definition
// returns raw segments plus an IndexMode, and a PathBuilder turns them into
// the final language-prefixed file path.
package taxonomy
