package logfields

import (
	"errors"
	"log/slog"
	"testing"
)

// TestHelperKeyNames verifies string-based helper key/value stability.
func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		name    string
		attrKey string
		attrVal string
		attr    slog.Attr
	}{
		{"PassID", KeyPassID, "p1", PassID("p1")},
		{"Phase", KeyPhase, "classify", Phase("classify")},
		{"Taxonomy", KeyTaxonomy, "tag", Taxonomy("tag")},
		{"Classification", KeyClassification, "a/b", Classification("a/b")},
		{"Language", KeyLanguage, "en", Language("en")},
		{"Path", KeyPath, "tags/dogs", Path("tags/dogs")},
		{"Task", KeyTask, "render_taxonomies:x", Task("render_taxonomies:x")},
		{"TaskKind", KeyTaskKind, "rss", TaskKind("rss")},
		{"Item", KeyItem, "posts/a.md", Item("posts/a.md")},
		{"Error", KeyError, "boom", Error(errors.New("boom"))},
		{"NilError", KeyError, "", Error(nil)},
	}

	for _, tc := range cases {
		if tc.attr.Key != tc.attrKey {
			// Key drift would break log ingestion schemas.
			t.Fatalf("%s: expected key %s, got %s", tc.name, tc.attrKey, tc.attr.Key)
		}
		if got := tc.attr.Value.String(); got != tc.attrVal {
			t.Fatalf("%s: expected value %s, got %v", tc.name, tc.attrVal, got)
		}
	}
}

func TestNumericHelpers(t *testing.T) {
	if got := Count(3).Value.Int64(); got != 3 {
		t.Fatalf("expected 3, got %d", got)
	}
	if got := DurationMS(1.5).Value.Float64(); got != 1.5 {
		t.Fatalf("expected 1.5, got %f", got)
	}
}
