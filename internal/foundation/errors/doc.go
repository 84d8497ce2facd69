// Package errors provides the classified error primitives used across taxogen.
//
// Every failure the classification pipeline can produce is an author or
// configuration mistake rather than a transient condition, so all domain
// errors are built fatal and never retried. The category tells callers which
// kind of mistake was made:
//   - CategoryConfig: conflicting taxonomy or site settings (ConfigurationError)
//   - CategoryClassification: an item maps to several classifications where only one is allowed
//   - CategoryPathCollision: two classifications resolve to the same output path
//   - CategoryEscapeSyntax: a malformed hierarchical classification string
//
// Example usage:
//
//	err := errors.PathCollisionError("classifications are too similar").
//		WithContext(errors.KeyTaxonomy, "tag").
//		WithContext(errors.KeyLanguage, "en").
//		WithContext(errors.KeyClassifications, []string{"Dogs", "dogs"}).
//		Build()
package errors
