package keymap

import "github.com/sahilm/fuzzy"

// Find returns the mappings whose description or command fuzzily matches
// query, best match first. An empty query returns the whole table.
func (t Table) Find(query string) Table {
	if query == "" {
		return append(Table{}, t...)
	}
	matches := fuzzy.FindFrom(query, searchSource(t))
	out := make(Table, 0, len(matches))
	for _, m := range matches {
		out = append(out, t[m.Index])
	}
	return out
}

type searchSource Table

func (s searchSource) String(i int) string {
	return string(s[i].Key) + " " + s[i].Description + " " + s[i].Command
}

func (s searchSource) Len() int { return len(s) }
