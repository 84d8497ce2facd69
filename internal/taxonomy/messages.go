package taxonomy

import (
	"strconv"
	"strings"
	"time"
)

// Message keys used by the built-in taxonomies.
const (
	MsgArchive           = "Archive"
	MsgPostsForYear      = "Posts for year %s"
	MsgPostsForMonth     = "Posts for {month_year}"
	MsgPostsForDay       = "Posts for {month_day_year}"
	MsgPostsAbout        = "Posts about %s"
	MsgPostsBy           = "Posts by %s"
	MsgTags              = "Tags"
	MsgCategories        = "Categories"
	MsgTagsAndCategories = "Tags and Categories"
	MsgAuthors           = "Authors"
)

var defaultMessages = map[string]string{
	MsgArchive:           "Archive",
	MsgPostsForYear:      "Posts for year %s",
	MsgPostsForMonth:     "Posts for {month_year}",
	MsgPostsForDay:       "Posts for {month_day_year}",
	MsgPostsAbout:        "Posts about %s",
	MsgPostsBy:           "Posts by %s",
	MsgTags:              "Tags",
	MsgCategories:        "Categories",
	MsgTagsAndCategories: "Tags and Categories",
	MsgAuthors:           "Authors",
}

// Messages is the per-language message catalog. Keys missing for a language
// fall back to the built-in English text, and unknown keys to themselves.
type Messages struct {
	overrides map[string]map[string]string
}

// NewMessages wraps configured overrides (language -> key -> text).
func NewMessages(overrides map[string]map[string]string) *Messages {
	return &Messages{overrides: overrides}
}

// Get returns the text for key in lang.
func (m *Messages) Get(lang, key string) string {
	if m != nil {
		if v, ok := m.overrides[lang][key]; ok {
			return v
		}
	}
	if v, ok := defaultMessages[key]; ok {
		return v
	}
	return key
}

// Format substitutes %s in the message for key with arg.
func (m *Messages) Format(lang, key, arg string) string {
	return strings.Replace(m.Get(lang, key), "%s", arg, 1)
}

// MonthName returns the localized month name. English names are the
// catalog keys.
func (m *Messages) MonthName(lang string, month time.Month) string {
	return m.Get(lang, month.String())
}

// FormatDate expands {month}, {month_year} and {month_day_year}
// placeholders in the message for key.
func (m *Messages) FormatDate(lang, key string, d time.Time) string {
	month := m.MonthName(lang, d.Month())
	year := strconv.Itoa(d.Year())
	r := strings.NewReplacer(
		"{month_day_year}", month+" "+strconv.Itoa(d.Day())+", "+year,
		"{month_year}", month+" "+year,
		"{month}", month,
	)
	return r.Replace(m.Get(lang, key))
}
