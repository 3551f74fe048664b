package dict

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func letters(groups []Group) []string {
	out := make([]string, len(groups))
	for i, g := range groups {
		out[i] = g.Letter
	}
	return out
}

func TestGroupByLetter_DigitsFirst(t *testing.T) {
	entries := []Entry{
		entry("z", "Zebra", "zebra", ""),
		entry("a", "apple", "poma", ""),
		entry("1", "1fish", "1peix", ""),
	}
	groups := GroupByLetter(entries)

	require.Equal(t, []string{"#", "A", "Z"}, letters(groups))
	for _, g := range groups {
		assert.Len(t, g.Entries, 1)
	}
	assert.Equal(t, "1", groups[0].Entries[0].ID)
	assert.Equal(t, "a", groups[1].Entries[0].ID)
	assert.Equal(t, "z", groups[2].Entries[0].ID)
}

func TestGroupByLetter_Exhaustive(t *testing.T) {
	entries := sampleEntries()
	entries = append(entries,
		entry("x1", "éclair", "x", ""),
		entry("x2", "", "x", ""),
		entry("x3", "¿qué?", "x", ""),
		entry("x4", "apple", "x", ""),
	)
	groups := GroupByLetter(entries)

	seen := make(map[string]int)
	total := 0
	for _, g := range groups {
		require.NotEmpty(t, g.Entries)
		for _, e := range g.Entries {
			seen[e.ID]++
			total++
			assert.Equal(t, g.Letter, BucketKey(e.Primary))
		}
	}
	assert.Equal(t, len(entries), total)
	for _, e := range entries {
		assert.Equal(t, 1, seen[e.ID], "entry %s", e.ID)
	}
}

func TestGroupByLetter_CaseInsensitiveOrder(t *testing.T) {
	entries := []Entry{
		entry("3", "cherry", "x", ""),
		entry("2", "Banana", "x", ""),
		entry("1", "apple", "x", ""),
		entry("4", "Avocado", "x", ""),
	}
	groups := GroupByLetter(entries)
	require.Equal(t, []string{"A", "B", "C"}, letters(groups))
	assert.Equal(t, []string{"1", "4"}, ids(groups[0].Entries))
}

func TestGroupByLetter_AdjacentRunsOnly(t *testing.T) {
	// "éclair" collates among the E words but its key is the catch-all, so
	// it splits the E run instead of joining a leading # group.
	entries := []Entry{
		entry("e1", "eagle", "x", ""),
		entry("e2", "éclair", "x", ""),
		entry("e3", "egg", "x", ""),
	}
	groups := GroupByLetter(entries)
	assert.Equal(t, []string{"E", "#", "E"}, letters(groups))
}

func TestGroupByLetter_DoesNotMutateInput(t *testing.T) {
	entries := sampleEntries()
	before := ids(entries)
	GroupByLetter(entries)
	assert.Equal(t, before, ids(entries))
}

func TestSortByPrimary_BaseStrength(t *testing.T) {
	entries := []Entry{
		entry("f", "fa", "x", ""),
		entry("e2", "Ed", "x", ""),
		entry("e1", "éa", "x", ""),
		entry("d", "dz", "x", ""),
	}
	got := SortByPrimary(language.English, entries)
	assert.Equal(t, []string{"d", "e1", "e2", "f"}, ids(got))
}

func TestSortByPrimary_EqualKeysStable(t *testing.T) {
	entries := []Entry{
		entry("2", "Apple", "x", ""),
		entry("1", "apple", "x", ""),
		entry("3", "APPLE", "x", ""),
	}
	assert.Equal(t, []string{"2", "1", "3"}, ids(SortByPrimary(language.English, entries)))
}

func TestGroupByLetterIn_EnglishDefault(t *testing.T) {
	entries := sampleEntries()
	assert.Equal(t, GroupByLetter(entries), GroupByLetterIn(language.English, entries))
}

func TestBucketKey(t *testing.T) {
	cases := map[string]string{
		"apple":  "A",
		"Zebra":  "Z",
		"1fish":  "#",
		"":       "#",
		"¡hola!": "#",
		"éclair": "#",
		" space": "#",
	}
	for in, want := range cases {
		assert.Equal(t, want, BucketKey(in), "BucketKey(%q)", in)
	}
}

func TestGroupByLetter_Deterministic(t *testing.T) {
	entries := sampleEntries()
	first := GroupByLetter(entries)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, GroupByLetter(entries))
	}
}
