package directory

import (
	"math/rand"
	"reflect"
	"slices"
	"testing"

	"mentorlink-cli/internal/model"

	"golang.org/x/text/language"
)

var words = []string{"Go", "go", "Rust", "React, Vite", "Python, FastAPI", "", "김민수", "이영희", "박지성", "golang", "Gopher", "Zig"}

func randomMentors(r *rand.Rand, n int) []model.Mentor {
	out := make([]model.Mentor, n)
	for i := range out {
		out[i] = model.Mentor{
			Email:     "m" + string(rune('a'+i%26)) + "@x.com",
			Name:      words[r.Intn(len(words))],
			TechStack: words[r.Intn(len(words))],
		}
	}
	return out
}

func TestDerive_Scenario_FilterIsCaseInsensitive(t *testing.T) {
	src := []model.Mentor{
		{Email: "a@x.com", Name: "Alice", TechStack: "Go"},
		{Email: "b@x.com", Name: "Bob", TechStack: "Rust"},
	}
	got := Derive(src, "go", SortNone, language.Korean)
	if len(got) != 1 || got[0].Email != "a@x.com" {
		t.Fatalf("expected only the Go entry, got %+v", got)
	}
}

func TestDerive_Properties(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	filters := []string{"", "go", "GO", "r", "fast", "김", "zzz"}
	keys := []SortKey{SortNone, SortName, SortTechStack}
	cmp := Compare(language.Korean)

	for round := 0; round < 50; round++ {
		src := randomMentors(r, r.Intn(20))
		before := slices.Clone(src)
		for _, f := range filters {
			for _, k := range keys {
				got := Derive(src, f, k, language.Korean)

				if len(got) > len(src) {
					t.Fatalf("derived longer than source")
				}
				for _, m := range got {
					if !Matches(m, f) {
						t.Fatalf("entry %+v does not match filter %q", m, f)
					}
				}
				if k != SortNone {
					for i := 1; i < len(got); i++ {
						if cmp(sortAttr(k, got[i-1]), sortAttr(k, got[i])) > 0 {
							t.Fatalf("not sorted by %s at %d: %q > %q", k, i, sortAttr(k, got[i-1]), sortAttr(k, got[i]))
						}
					}
				}
				again := Derive(got, f, k, language.Korean)
				if !reflect.DeepEqual(again, got) {
					t.Fatalf("derive not idempotent for filter %q sort %s", f, k)
				}
			}
		}
		if !reflect.DeepEqual(src, before) {
			t.Fatalf("source was mutated")
		}
	}
}

func TestDerive_SortNonePreservesOrder(t *testing.T) {
	src := []model.Mentor{
		{Email: "3", Name: "c"},
		{Email: "1", Name: "a"},
		{Email: "2", Name: "b"},
	}
	got := Derive(src, "", SortNone, language.Korean)
	if !reflect.DeepEqual(got, src) {
		t.Fatalf("expected source order, got %+v", got)
	}
	got[0].Name = "changed"
	if src[0].Name != "c" {
		t.Fatalf("derive must return a new slice")
	}
}

func TestDerive_StableAndMissingAttributeSortsFirst(t *testing.T) {
	src := []model.Mentor{
		{Email: "1", Name: "다", TechStack: "Go"},
		{Email: "2", Name: "가", TechStack: ""},
		{Email: "3", Name: "나", TechStack: "Go"},
	}
	byName := Derive(src, "", SortName, language.Korean)
	if names := []string{byName[0].Name, byName[1].Name, byName[2].Name}; !reflect.DeepEqual(names, []string{"가", "나", "다"}) {
		t.Fatalf("unexpected name order: %v", names)
	}
	byTech := Derive(src, "", SortTechStack, language.Korean)
	if ids := []string{byTech[0].Email, byTech[1].Email, byTech[2].Email}; !reflect.DeepEqual(ids, []string{"2", "1", "3"}) {
		t.Fatalf("expected empty first then stable Go entries, got %v", ids)
	}
}

func TestDerive_EmptyAttributeNeverMatchesNonEmptyFilter(t *testing.T) {
	src := []model.Mentor{{Email: "1", Name: "Ann", TechStack: ""}}
	if got := Derive(src, "go", SortNone, language.Korean); len(got) != 0 {
		t.Fatalf("expected no match, got %+v", got)
	}
}

func TestParseSortKey(t *testing.T) {
	for in, want := range map[string]SortKey{"": SortNone, "none": SortNone, "name": SortName, "tech_stack": SortTechStack, "Tech-Stack": SortTechStack} {
		got, err := ParseSortKey(in)
		if err != nil || got != want {
			t.Fatalf("ParseSortKey(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseSortKey("age"); err == nil {
		t.Fatalf("expected error for unknown key")
	}
	if SortNone.Next() != SortName || SortName.Next() != SortTechStack || SortTechStack.Next() != SortNone {
		t.Fatalf("unexpected sort cycle")
	}
}

func TestView_RecomputesOnEveryInputChange(t *testing.T) {
	v := NewView(ParseLocale("ko"))
	v.SetSource([]model.Mentor{
		{Email: "b", Name: "Bob", TechStack: "Rust"},
		{Email: "a", Name: "Alice", TechStack: "Go"},
	})
	if v.Len() != 2 {
		t.Fatalf("expected 2 items, got %d", v.Len())
	}
	v.SetSort(SortName)
	if v.Items()[0].Email != "a" {
		t.Fatalf("expected Alice first after sort")
	}
	v.SetFilter("rust")
	if v.Len() != 1 || v.Items()[0].Email != "b" {
		t.Fatalf("expected only Bob after filter, got %+v", v.Items())
	}
	v.SetSource([]model.Mentor{{Email: "c", Name: "Carol", TechStack: "Rust, Go"}})
	if v.Len() != 1 || v.Items()[0].Email != "c" {
		t.Fatalf("expected refreshed source to be re-derived, got %+v", v.Items())
	}
}
