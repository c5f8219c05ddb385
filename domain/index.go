package domain

import (
	"sort"
	"strings"
)

// An Entry records where an entity was declared.
type Entry struct {
	Name     string // fully qualified name
	Category Category
	Doc      string // name of the document the entity was declared in
	Anchor   string // anchor id within the document
}

// An Index is a per-build registry of every documented entity. It is
// not safe for concurrent use: parallel builds give each worker its own
// Index and combine them with Merge once all documents are processed.
type Index struct {
	data map[Category]map[string]Entry
}

func NewIndex() *Index {
	return &Index{data: make(map[Category]map[string]Entry, len(categories))}
}

// Register records an entry under its category, overwriting any
// previous record of the same name. Name uniqueness is a content
// invariant, not enforced here.
func (x *Index) Register(e Entry) {
	m, ok := x.data[e.Category]
	if !ok {
		m = make(map[string]Entry)
		x.data[e.Category] = m
	}
	m[e.Name] = e
}

// ClearDoc removes every entry declared in the named document, across
// all categories. A document about to be rebuilt is cleared first so
// its entries are replaced wholesale.
func (x *Index) ClearDoc(doc string) {
	for _, m := range x.data {
		for name, e := range m {
			if e.Doc == doc {
				delete(m, name)
			}
		}
	}
}

// Resolve finds the entry for a fully qualified name. Resolution is
// category-agnostic: every category is scanned in a fixed order and the
// first exact match wins, so a name shared across categories resolves
// deterministically. A miss is not an error; callers render the
// reference as plain text.
func (x *Index) Resolve(name string) (Entry, bool) {
	for _, cat := range categories {
		if e, ok := x.data[cat][name]; ok {
			return e, true
		}
	}
	return Entry{}, false
}

// Entries returns every registered entry, ordered by category and then
// by name.
func (x *Index) Entries() []Entry {
	var entries []Entry
	for _, cat := range categories {
		m := x.data[cat]
		names := make([]string, 0, len(m))
		for name := range m {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			entries = append(entries, m[name])
		}
	}
	return entries
}

// An IndexGroup is one key's worth of index page entries.
type IndexGroup struct {
	Key     string // lowercase first character of the member names
	Entries []Entry
}

// Groups arranges the registered entries for an alphabetic index page:
// grouped by the lowercase first character of the name, groups sorted
// by key, entries within a group sorted by name. Child categories are
// left out so a field never collides with its type in the listing; they
// stay resolvable through Resolve.
func (x *Index) Groups() []IndexGroup {
	byKey := make(map[string][]Entry)
	for _, cat := range categories {
		if cat.IsChild() {
			continue
		}
		for _, e := range x.data[cat] {
			if e.Name == "" {
				continue
			}
			key := strings.ToLower(e.Name[:1])
			byKey[key] = append(byKey[key], e)
		}
	}

	keys := make([]string, 0, len(byKey))
	for key := range byKey {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	groups := make([]IndexGroup, 0, len(keys))
	for _, key := range keys {
		entries := byKey[key]
		sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
		groups = append(groups, IndexGroup{Key: key, Entries: entries})
	}
	return groups
}

// A Conflict reports two builds of the same (category, name) with
// differing records, found while merging worker indexes.
type Conflict struct {
	Category Category
	Name     string
	Doc      string // document whose record was kept
	Other    string // document whose record was discarded
}

// Merge folds another index into x. When both sides hold a record for
// the same (category, name) and the records differ, the record already
// in x wins and the pair is reported as a conflict; otherwise the
// incoming record is adopted. Conflicts never abort a build.
func (x *Index) Merge(other *Index) (conflicts []Conflict) {
	for _, cat := range categories {
		src := other.data[cat]
		if len(src) == 0 {
			continue
		}
		names := make([]string, 0, len(src))
		for name := range src {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			in := src[name]
			if have, ok := x.data[cat][name]; ok && have != in {
				conflicts = append(conflicts, Conflict{
					Category: cat,
					Name:     name,
					Doc:      have.Doc,
					Other:    in.Doc,
				})
				continue
			}
			x.Register(in)
		}
	}
	return conflicts
}
