package dict

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(id, primary, secondary, notes string) Entry {
	return Entry{ID: id, Primary: primary, Secondary: secondary, Notes: notes}
}

func ids(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

// sampleEntries mirrors a small real dictionary.
func sampleEntries() []Entry {
	return []Entry{
		entry("e1", "hello", "hola", "casual greeting"),
		entry("e2", "Pokie Pokie", "Navallà", "Critica dura para alguien"),
		entry("e3", "Lemonade of the little paper", "Llimonà de paperet", "Un boost per rotar"),
		entry("e4", "A catted", "Un tallat", "un café con leche"),
		entry("e5", "Bull on fire", "Bou embolat", ""),
		entry("e6", "The twins", "Els bessons", "de les cames"),
		entry("e7", "Enchanted", "Encantat", ""),
		entry("e8", "Too much for the pumpkin", "Massa per a la carabassa", "Demasiado para esto"),
	}
}

func isSubsequence(q, t string) bool {
	qr := []rune(strings.ToLower(q))
	qi := 0
	for _, r := range strings.ToLower(t) {
		if qi < len(qr) && r == qr[qi] {
			qi++
		}
	}
	return qi == len(qr)
}

func TestMatch_EmptyQuery(t *testing.T) {
	ok, score := Match("", "anything")
	assert.True(t, ok)
	assert.Zero(t, score)
}

func TestMatch_CaseInsensitive(t *testing.T) {
	ok, _ := Match("HOLA", "hola")
	assert.True(t, ok)

	ok, _ = Match("straße", "STRASSE")
	assert.True(t, ok, "full case folding maps ß to ss")

	ok, _ = Match("và", "NAVALLÀ")
	assert.True(t, ok)
}

func TestMatch_SubsequenceNotSubstring(t *testing.T) {
	ok, _ := Match("hla", "hola")
	assert.True(t, ok)

	ok, _ = Match("ah", "hola")
	assert.False(t, ok, "out-of-order runes must not match")
}

func TestMatch_ExactScore(t *testing.T) {
	// h: 1+0+2, o: 1+1+2, l: 1+2+2, a: 1+3+2
	ok, score := Match("hola", "hola")
	require.True(t, ok)
	assert.Equal(t, 18, score)
}

func TestMatch_ScoreMonotonicUnderContiguity(t *testing.T) {
	_, contiguous := Match("abc", "xxabcxx")
	_, scattered := Match("abc", "xaxbxcx")
	assert.Greater(t, contiguous, scattered)
}

func TestMatch_PrefixBonus(t *testing.T) {
	ok1, prefix := Match("ab", "abx")
	ok2, shifted := Match("ab", "xab")
	require.True(t, ok1)
	require.True(t, ok2)
	assert.Greater(t, prefix, shifted)
}

func TestMatch_EmptyTarget(t *testing.T) {
	ok, score := Match("a", "")
	assert.False(t, ok)
	assert.Zero(t, score)
}

func TestMatch_RunesNotBytes(t *testing.T) {
	// Position bonus counts runes: "à" at index 0 matches query index 0.
	_, accented := Match("àb", "àb")
	_, plain := Match("ab", "ab")
	assert.Equal(t, plain, accented)
}

func TestSearch_IdentityOnBlankQuery(t *testing.T) {
	entries := sampleEntries()
	for _, q := range []string{"", " ", "\t\n", " "} {
		got := Search(q, entries)
		assert.Equal(t, entries, got, "query %q", q)
	}
}

func TestSearch_BlankQueryDoesNotAlias(t *testing.T) {
	entries := sampleEntries()
	got := Search("", entries)
	got[0].Primary = "changed"
	assert.Equal(t, "hello", entries[0].Primary)
}

func TestSearch_EmptyInput(t *testing.T) {
	assert.Empty(t, Search("abc", nil))
	assert.Empty(t, Search("", nil))
	assert.Empty(t, GroupByLetter(nil))
}

func TestSearch_MatchViaSecondary(t *testing.T) {
	entries := []Entry{entry("1", "hello", "hola", "")}
	got := Rank("hola", entries)
	require.Len(t, got, 1)
	assert.Equal(t, FieldSecondary, got[0].Field)

	_, exact := Match("hola", "hola")
	assert.Equal(t, exact, got[0].Score, "exact full-string match is the maximal score")
}

func TestSearch_NoMatch(t *testing.T) {
	entries := []Entry{entry("1", "hello", "hola", "")}
	got := Search("xyz", entries)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSearch_SoundnessAndCompleteness(t *testing.T) {
	entries := sampleEntries()
	queries := []string{"h", "ho", "la", "pp", "ent", "cat", "ELS", "à", "bou", "zz", "the", "per", "a a", "Demasiado"}

	for _, q := range queries {
		got := Search(q, entries)
		returned := make(map[string]bool)
		for _, e := range got {
			returned[e.ID] = true
			assert.True(t,
				isSubsequence(q, e.Primary) || isSubsequence(q, e.Secondary) || isSubsequence(q, e.Notes),
				"query %q returned %s without a matching field", q, e.ID)
		}
		for _, e := range entries {
			want := isSubsequence(q, e.Primary) || isSubsequence(q, e.Secondary) || isSubsequence(q, e.Notes)
			assert.Equal(t, want, returned[e.ID], "query %q entry %s", q, e.ID)
		}
	}
}

func TestSearch_OrderedByScore(t *testing.T) {
	entries := []Entry{
		entry("scattered", "h-o-l-a", "x", ""),
		entry("prefix", "hola amic", "x", ""),
		entry("middle", "xxhola", "x", ""),
	}
	got := Rank("hola", entries)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"prefix", "middle", "scattered"}, []string{got[0].Entry.ID, got[1].Entry.ID, got[2].Entry.ID})
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Score, got[i].Score)
	}
}

func TestSearch_TiesKeepInputOrder(t *testing.T) {
	entries := []Entry{
		entry("c", "cat", "x", ""),
		entry("a", "cat", "y", ""),
		entry("b", "cat", "z", ""),
	}
	assert.Equal(t, []string{"c", "a", "b"}, ids(Search("cat", entries)))

	reversed := []Entry{entries[2], entries[1], entries[0]}
	assert.Equal(t, []string{"b", "a", "c"}, ids(Search("cat", reversed)))
}

func TestSearch_Deterministic(t *testing.T) {
	entries := sampleEntries()
	first := Search("a", entries)
	for i := 0; i < 10; i++ {
		assert.Equal(t, ids(first), ids(Search("a", entries)))
	}
}

func TestSearch_DoesNotMutateInput(t *testing.T) {
	entries := sampleEntries()
	before := ids(entries)
	Search("e", entries)
	assert.Equal(t, before, ids(entries))
}

func TestRank_BestScoreIncludesUnmatchedFields(t *testing.T) {
	// "holaz" is not a subsequence of the primary, but the partial run there
	// scores higher than the scattered full match in the notes.
	e := entry("1", "hola", "x", "h_o_l_a_z")
	hits := Rank("holaz", []Entry{e})
	require.Len(t, hits, 1)

	_, primary := Match("holaz", e.Primary)
	_, notes := Match("holaz", e.Notes)
	require.Greater(t, primary, notes)
	assert.Equal(t, primary, hits[0].Score)
	assert.Equal(t, FieldNotes, hits[0].Field)
}

func TestRank_BlankQuery(t *testing.T) {
	entries := sampleEntries()
	hits := Rank("  ", entries)
	require.Len(t, hits, len(entries))
	for i, h := range hits {
		assert.Equal(t, entries[i].ID, h.Entry.ID)
		assert.Zero(t, h.Score)
	}
}

func TestSearch_ConcurrentCalls(t *testing.T) {
	entries := sampleEntries()
	want := ids(Search("ta", entries))

	done := make(chan []string)
	for i := 0; i < 8; i++ {
		go func() { done <- ids(Search("ta", entries)) }()
	}
	for i := 0; i < 8; i++ {
		assert.Equal(t, want, <-done)
	}
}

func BenchmarkSearch(b *testing.B) {
	entries := make([]Entry, 0, 1000)
	for i := 0; i < 125; i++ {
		entries = append(entries, sampleEntries()...)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Search("carabassa", entries)
	}
}
