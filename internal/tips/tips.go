// Package tips rotates short hints shown on the lexi dashboard.
package tips

import "time"

var all = []string{
	"`lexi find` to search as you type, accents optional.",
	"`lexi search tallat --scores` to see why each result matched.",
	"`lexi show <id>` renders notes as markdown, so **bold** and lists work.",
	"`lexi edit <id> --notes \"...\"` to add context without retyping the phrase.",
	"`lexi say <id>` to hear both sides read aloud.",
	"`lexi list --ids` to see the short ids other commands accept.",
	"`lexi list --json` to pipe the grouped dictionary into jq.",
	"`lexi export --encrypt backup.age` for a passphrase-protected backup.",
	"`lexi import dictionary.json` also reads files with \"en\"/\"es\" keys.",
	"`lexi serve` to share the dictionary; friends can send suggestions.",
	"`lexi suggest list` to review what friends sent in.",
	"`lexi config set languages.collation es` to sort the listing like a Spanish dictionary.",
	"`lexi config set speech.rate 0.8` to slow the voice down.",
	"Any unique start of an id works: `lexi rm 3f2a` is enough.",
}

// All returns all tips in the pool.
func All() []string {
	return all
}

// Daily returns the tip for t's day. It changes at most once a day.
func Daily(t time.Time) string {
	return all[t.YearDay()%len(all)]
}
