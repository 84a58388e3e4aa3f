// Package directory derives the filtered, sorted projection of the mentor directory.
package directory

import (
	"fmt"
	"slices"
	"strings"

	"mentorlink-cli/internal/model"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type SortKey int

const (
	SortNone SortKey = iota
	SortName
	SortTechStack
)

func ParseSortKey(s string) (SortKey, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return SortNone, nil
	case "name":
		return SortName, nil
	case "tech_stack", "tech-stack", "techstack":
		return SortTechStack, nil
	default:
		return SortNone, fmt.Errorf("unknown sort key: %q (want none|name|tech_stack)", s)
	}
}

func (k SortKey) String() string {
	switch k {
	case SortName:
		return "name"
	case SortTechStack:
		return "tech_stack"
	default:
		return "none"
	}
}

func (k SortKey) Label() string {
	switch k {
	case SortName:
		return "이름순"
	case SortTechStack:
		return "기술스택순"
	default:
		return "정렬 없음"
	}
}

// Next cycles none → name → tech_stack → none.
func (k SortKey) Next() SortKey {
	switch k {
	case SortNone:
		return SortName
	case SortName:
		return SortTechStack
	default:
		return SortNone
	}
}

// ParseLocale falls back to Korean for empty or unknown tags.
func ParseLocale(s string) language.Tag {
	s = strings.TrimSpace(s)
	if s == "" {
		return language.Korean
	}
	tag, err := language.Parse(s)
	if err != nil {
		return language.Korean
	}
	return tag
}

// Matches reports whether m passes filter: a case-insensitive substring of Name or TechStack.
func Matches(m model.Mentor, filter string) bool {
	if filter == "" {
		return true
	}
	f := strings.ToLower(filter)
	return strings.Contains(strings.ToLower(m.Name), f) ||
		strings.Contains(strings.ToLower(m.TechStack), f)
}

// Compare returns a locale-aware string comparison. The returned func is not safe for
// concurrent use.
func Compare(tag language.Tag) func(a, b string) int {
	c := collate.New(tag)
	return c.CompareString
}

func sortAttr(k SortKey, m model.Mentor) string {
	if k == SortTechStack {
		return m.TechStack
	}
	return m.Name
}

// Derive filters and sorts source into a new slice. source is never modified.
func Derive(source []model.Mentor, filter string, key SortKey, tag language.Tag) []model.Mentor {
	out := make([]model.Mentor, 0, len(source))
	for _, m := range source {
		if Matches(m, filter) {
			out = append(out, m)
		}
	}
	if key == SortNone || len(out) < 2 {
		return out
	}
	cmp := Compare(tag)
	slices.SortStableFunc(out, func(a, b model.Mentor) int {
		return cmp(sortAttr(key, a), sortAttr(key, b))
	})
	return out
}
