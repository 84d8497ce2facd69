// Package hierarchy implements hierarchical classification names and the
// trees built from them.
//
// A hierarchical classification is a string such as "programming/go" whose
// components are separated by '/'. A literal slash or backslash inside a
// component is escaped as "\/" or "\\". Parse and Join convert between the
// two forms and are exact inverses:
//
//	parts, _ := hierarchy.Parse(`a\/b/c`) // ["a/b", "c"]
//	hierarchy.Join(parts)                 // `a\/b/c`
//
// Trees are stored as an arena: nodes live in one slice owned by the Tree and
// refer to their parent and children by index. This keeps ancestor walks O(1)
// per step without reference cycles, and lets Clone produce filtered copies
// without touching the canonical tree.
package hierarchy
