package dict

import (
	"bytes"
	"slices"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// CatchAll is the bucket key for entries whose primary text does not start
// with an ASCII letter.
const CatchAll = "#"

// Group is a run of entries sharing a bucket key.
type Group struct {
	Letter  string  `json:"letter"`
	Entries []Entry `json:"entries"`
}

// GroupByLetter sorts entries by primary text using English collation and
// splits them into groups keyed by the upper-cased first letter.
func GroupByLetter(entries []Entry) []Group {
	return GroupByLetterIn(language.English, entries)
}

// GroupByLetterIn is GroupByLetter with an explicit collation language.
//
// Groups appear in the order their key is first met in the sorted walk, and
// a new group starts whenever the key differs from the previous entry's, so
// non-adjacent runs of the same key are never merged.
func GroupByLetterIn(tag language.Tag, entries []Entry) []Group {
	var groups []Group
	for _, e := range SortByPrimary(tag, entries) {
		key := BucketKey(e.Primary)
		if len(groups) == 0 || groups[len(groups)-1].Letter != key {
			groups = append(groups, Group{Letter: key})
		}
		g := &groups[len(groups)-1]
		g.Entries = append(g.Entries, e)
	}
	return groups
}

// SortByPrimary returns a copy of entries ordered by primary text at base
// collation strength: case, diacritics and width are ignored, so "é" sorts
// next to "e". Entries that compare equal keep their input order.
func SortByPrimary(tag language.Tag, entries []Entry) []Entry {
	c := collate.New(tag, collate.IgnoreCase, collate.IgnoreDiacritics, collate.IgnoreWidth)

	type keyed struct {
		key   []byte
		entry Entry
	}
	var buf collate.Buffer
	ks := make([]keyed, len(entries))
	for i, e := range entries {
		ks[i] = keyed{key: c.KeyFromString(&buf, e.Primary), entry: e}
	}
	slices.SortStableFunc(ks, func(a, b keyed) int {
		return bytes.Compare(a.key, b.key)
	})

	out := make([]Entry, len(ks))
	for i, k := range ks {
		out[i] = k.entry
	}
	return out
}

// BucketKey returns the upper-cased first rune of s when it is an ASCII
// letter, and CatchAll otherwise (digits, punctuation, accented letters,
// empty strings).
func BucketKey(s string) string {
	r, _ := utf8.DecodeRuneInString(s)
	r = unicode.ToUpper(r)
	if r >= 'A' && r <= 'Z' {
		return string(r)
	}
	return CatchAll
}
