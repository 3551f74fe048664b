package dict

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

// prefixBonus is added when a query rune matches at the same index in the
// target, which favours targets that start the way the query does.
const prefixBonus = 2

// Hit is a ranked search result.
type Hit struct {
	Entry Entry `json:"entry"`
	// Score is the best score across all three fields.
	Score int `json:"score"`
	// Field is the highest-scoring field that fully matched the query.
	Field Field `json:"field"`
}

// Match checks whether all runes of query appear in target in order,
// comparing case-folded text. Returns whether it matched and a relevance
// score. An empty query matches everything with a score of 0.
//
// Scoring rewards:
//   - consecutive matches (each match adds 1 plus the current run length)
//   - matches at the same position as in the query (+2)
func Match(query, target string) (bool, int) {
	fold := cases.Fold()
	return match([]rune(fold.String(query)), []rune(fold.String(target)))
}

func match(q, t []rune) (bool, int) {
	qi := 0
	score := 0
	consecutive := 0

	for ti := 0; ti < len(t) && qi < len(q); ti++ {
		if t[ti] != q[qi] {
			consecutive = 0
			continue
		}
		score += 1 + consecutive
		if ti == qi {
			score += prefixBonus
		}
		consecutive++
		qi++
	}

	return qi == len(q), score
}

// Search filters entries down to those where query is an in-order
// subsequence of the primary, secondary or notes text, best score first.
//
// A blank query returns all entries in their original order. Entries with
// equal scores keep their original relative order, so the result is fully
// determined by (query, entries).
func Search(query string, entries []Entry) []Entry {
	if isBlank(query) {
		return slices.Clone(entries)
	}
	hits := Rank(query, entries)
	out := make([]Entry, len(hits))
	for i, h := range hits {
		out[i] = h.Entry
	}
	return out
}

// Rank is Search with the scores attached. A blank query yields every entry
// with a zero score, in input order.
func Rank(query string, entries []Entry) []Hit {
	if isBlank(query) {
		hits := make([]Hit, len(entries))
		for i, e := range entries {
			hits[i] = Hit{Entry: e}
		}
		return hits
	}

	fold := cases.Fold()
	q := []rune(fold.String(query))

	hits := make([]Hit, 0, len(entries))
	for _, e := range entries {
		best := 0
		matched := false
		var field Field
		fieldScore := -1
		for _, f := range searchFields {
			ok, score := match(q, []rune(fold.String(e.Value(f))))
			// The rank key is the best score of any field, matched or not.
			best = max(best, score)
			if ok && score > fieldScore {
				matched = true
				field = f
				fieldScore = score
			}
		}
		if matched {
			hits = append(hits, Hit{Entry: e, Score: best, Field: field})
		}
	}

	slices.SortStableFunc(hits, func(a, b Hit) int {
		return cmp.Compare(b.Score, a.Score)
	})
	return hits
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
