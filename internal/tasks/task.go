// Package tasks turns allocated classifications into render task
// descriptors for an external incremental runner.
//
// Every task carries value snapshots of its render context and a
// fingerprint over everything that influences the output, so that a runner
// can skip tasks whose fingerprint is unchanged since the last build.
package tasks

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"git.home.luguber.info/inful/taxogen/internal/foundation/errors"
	"git.home.luguber.info/inful/taxogen/internal/hierarchy"
	"git.home.luguber.info/inful/taxogen/internal/taxonomy"
)

// Basename groups every task emitted by the generator.
const Basename = "render_taxonomies"

// renderPosts is the runner task that compiles post fragments.
const renderPosts = "render_posts"

// Kind is the type of page or feed a task produces.
type Kind string

const (
	KindOverview      Kind = "overview"
	KindList          Kind = "list"
	KindIndex         Kind = "index"
	KindSubcategories Kind = "subcategories"
	KindRSS           Kind = "rss"
	KindAtom          Kind = "atom"
)

// Task describes one unit of rendering work.
type Task struct {
	Name           string   `json:"name" yaml:"name"`
	Basename       string   `json:"basename" yaml:"basename"`
	Kind           Kind     `json:"kind" yaml:"kind"`
	Taxonomy       string   `json:"taxonomy" yaml:"taxonomy"`
	Classification string   `json:"classification" yaml:"classification"`
	Lang           string   `json:"lang" yaml:"lang"`
	Page           int      `json:"page" yaml:"page"`
	FileDep        []string `json:"file_dep,omitempty" yaml:"file_dep,omitempty"`
	Targets        []string `json:"targets" yaml:"targets"`
	TaskDep        []string `json:"task_dep,omitempty" yaml:"task_dep,omitempty"`
	Actions        []Action `json:"actions" yaml:"actions"`
	// Uptodate is the fingerprint the runner compares with its last build.
	Uptodate string `json:"uptodate" yaml:"uptodate"`
	Clean    bool   `json:"clean" yaml:"clean"`
}

// FullName is the runner-wide unique task name.
func (t *Task) FullName() string { return t.Basename + ":" + t.Name }

// PostRef is the snapshot of a post shown on a page or in a feed.
type PostRef struct {
	ID     string    `json:"id" yaml:"id"`
	Title  string    `json:"title" yaml:"title"`
	Link   string    `json:"link" yaml:"link"`
	Date   time.Time `json:"date" yaml:"date"`
	Source string    `json:"source" yaml:"source"`
}

// ClassificationLink is one entry of an overview list.
type ClassificationLink struct {
	Name string `json:"name" yaml:"name"`
	Link string `json:"link" yaml:"link"`
}

// CountedLink is a ClassificationLink with its number of visible posts.
type CountedLink struct {
	Name  string `json:"name" yaml:"name"`
	Link  string `json:"link" yaml:"link"`
	Count int    `json:"count" yaml:"count"`
}

// HierarchyEntry is one node of a flattened overview hierarchy.
type HierarchyEntry struct {
	Name               string                  `json:"name" yaml:"name"`
	Classification     string                  `json:"classification" yaml:"classification"`
	Path               []string                `json:"path" yaml:"path"`
	Link               string                  `json:"link" yaml:"link"`
	IndentLevels       []hierarchy.IndentLevel `json:"indent_levels" yaml:"indent_levels"`
	IndentChangeBefore int                     `json:"indent_change_before" yaml:"indent_change_before"`
	IndentChangeAfter  int                     `json:"indent_change_after" yaml:"indent_change_after"`
	Counts             *HierarchyEntryCounts   `json:"counts,omitempty" yaml:"counts,omitempty"`
}

// HierarchyEntryCounts are the child and post counts of a hierarchy entry.
type HierarchyEntryCounts struct {
	Children int `json:"children" yaml:"children"`
	Posts    int `json:"posts" yaml:"posts"`
}

// Variant is a link to the same classification in another language.
type Variant struct {
	Lang           string `json:"lang" yaml:"lang"`
	Classification string `json:"classification" yaml:"classification"`
	Name           string `json:"name" yaml:"name"`
	Link           string `json:"link" yaml:"link"`
}

type fingerprintInput struct {
	Name           string          `json:"name"`
	Kind           Kind            `json:"kind"`
	Taxonomy       string          `json:"taxonomy"`
	Classification string          `json:"classification"`
	Lang           string          `json:"lang"`
	Page           int             `json:"page"`
	Targets        []string        `json:"targets"`
	Actions        []Action        `json:"actions"`
	Settings       taxonomy.Values `json:"settings"`
}

// fingerprint hashes the canonical JSON encoding of everything that
// influences the task's output. Map keys are encoded in sorted order.
func fingerprint(t *Task, settings taxonomy.Values) (string, error) {
	data, err := json.Marshal(fingerprintInput{
		Name:           t.Name,
		Kind:           t.Kind,
		Taxonomy:       t.Taxonomy,
		Classification: t.Classification,
		Lang:           t.Lang,
		Page:           t.Page,
		Targets:        t.Targets,
		Actions:        t.Actions,
		Settings:       settings,
	})
	if err != nil {
		return "", errors.WrapError(err, errors.CategoryInternal, "failed to encode task fingerprint").
			WithContext(errors.KeyTaxonomy, t.Taxonomy).
			WithContext(errors.KeyClassification, t.Classification).
			WithContext(errors.KeyLanguage, t.Lang).
			Build()
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
