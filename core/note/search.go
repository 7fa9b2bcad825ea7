package note

import (
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode/utf8"
)

// Field match weights: title > tag > content. Declared here rather than
// implied by check order so the ranking is a stated, testable policy.
const (
	titleWeight   = 3.0
	tagWeight     = 2.0
	contentWeight = 1.0

	snippetLen = 80
)

var markupRegex = regexp.MustCompile(`<[^>]*>`)

type (
	// SearchFilters narrows the candidate set before scoring.
	// All provided fields are ANDed together; an absent field means
	// "no constraint".
	SearchFilters struct {
		Folders      []string  `json:"folder_ids,omitempty" query:"folder_id"`
		Tags         []string  `json:"tags,omitempty" query:"tag"`
		DateFrom     time.Time `json:"date_from,omitempty" query:"date_from"`
		DateTo       time.Time `json:"date_to,omitempty" query:"date_to"`
		WordCountMin *int      `json:"word_count_min,omitempty" query:"word_count_min"`
		WordCountMax *int      `json:"word_count_max,omitempty" query:"word_count_max"`
		HasSeqtaRefs *bool     `json:"has_seqta_references,omitempty" query:"has_seqta_references"`
	}

	// Match records one field's contribution to a result.
	Match struct {
		Field    string `json:"field"` // title | tags | content
		Snippet  string `json:"snippet"`
		Position int    `json:"position"` // character offset of the first hit
	}

	// SearchResult is ephemeral: recomputed per query, never persisted.
	SearchResult struct {
		Note    Note    `json:"note"`
		Score   float64 `json:"score"`
		Matches []Match `json:"matches"`
	}
)

func (f *SearchFilters) IsEmpty() bool {
	return f.Folders == nil && f.Tags == nil && f.DateFrom.IsZero() && f.DateTo.IsZero() &&
		f.WordCountMin == nil && f.WordCountMax == nil && f.HasSeqtaRefs == nil
}

func (f *SearchFilters) matches(n *Note) bool {
	if f.Folders != nil {
		var inAny bool
		for _, folder := range f.Folders {
			if n.InFolder(folder) {
				inAny = true
				break
			}
		}
		if !inAny {
			return false
		}
	}
	if f.Tags != nil {
		var hasAny bool
		for _, tag := range f.Tags {
			if n.HasTag(tag) {
				hasAny = true
				break
			}
		}
		if !hasAny {
			return false
		}
	}
	if !f.DateFrom.IsZero() && n.UpdatedAt.Before(f.DateFrom) {
		return false
	}
	if !f.DateTo.IsZero() && n.UpdatedAt.After(f.DateTo) {
		return false
	}
	if f.WordCountMin != nil && n.Metadata.WordCount < *f.WordCountMin {
		return false
	}
	if f.WordCountMax != nil && n.Metadata.WordCount > *f.WordCountMax {
		return false
	}
	if f.HasSeqtaRefs != nil && *f.HasSeqtaRefs != (len(n.SeqtaReferences) > 0) {
		return false
	}
	return true
}

// Search filters notes, then scores the query (case-insensitive) against
// title, tags and markup-stripped content. Notes with zero field matches are
// excluded for a non-empty query; an empty query returns every filtered note
// with a uniform score ("browse all"). Results order by score descending,
// ties broken by most-recently-updated first.
func Search(notes []Note, query string, filters SearchFilters) []SearchResult {
	query = strings.ToLower(strings.TrimSpace(query))

	results := make([]SearchResult, 0, len(notes))
	for i := range notes {
		n := notes[i]
		if !filters.matches(&n) {
			continue
		}
		if query == "" {
			results = append(results, SearchResult{Note: n, Score: 1})
			continue
		}
		if res, ok := score(n, query); ok {
			results = append(results, res)
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Note.UpdatedAt.After(results[j].Note.UpdatedAt)
	})
	return results
}

func score(n Note, query string) (SearchResult, bool) {
	res := SearchResult{Note: n}

	if count, pos := countMatches(n.Title, query); count > 0 {
		res.Score += titleWeight * float64(count)
		res.Matches = append(res.Matches, Match{Field: "title", Snippet: snippet(n.Title, pos), Position: pos})
	}

	var tagCount, tagPos int
	tagSnippet := ""
	for _, tag := range n.Tags {
		count, pos := countMatches(tag, query)
		if count > 0 && tagSnippet == "" {
			tagSnippet, tagPos = tag, pos
		}
		tagCount += count
	}
	if tagCount > 0 {
		res.Score += tagWeight * float64(tagCount)
		res.Matches = append(res.Matches, Match{Field: "tags", Snippet: tagSnippet, Position: tagPos})
	}

	if text := stripMarkup(n.Content); text != "" {
		if count, pos := countMatches(text, query); count > 0 {
			res.Score += contentWeight * float64(count)
			res.Matches = append(res.Matches, Match{Field: "content", Snippet: snippet(text, pos), Position: pos})
		}
	}

	if res.Score == 0 {
		return SearchResult{}, false
	}
	return res, true
}

func countMatches(s, query string) (count, pos int) {
	lowered := strings.ToLower(s)
	count = strings.Count(lowered, query)
	pos = strings.Index(lowered, query)
	return count, pos
}

// stripMarkup drops tags and collapses whitespace, leaving plain text.
func stripMarkup(s string) string {
	return strings.Join(strings.Fields(markupRegex.ReplaceAllString(s, " ")), " ")
}

// snippet returns at most snippetLen bytes centered on pos, never splitting a
// multi-byte rune at either edge.
func snippet(s string, pos int) string {
	if len(s) <= snippetLen {
		return s
	}
	start := pos - snippetLen/2
	if start < 0 {
		start = 0
	}
	end := start + snippetLen
	if end > len(s) {
		end = len(s)
		start = end - snippetLen
	}
	for start < end && !utf8.RuneStart(s[start]) {
		start++
	}
	for end > start && end < len(s) && !utf8.RuneStart(s[end]) {
		end--
	}
	return s[start:end]
}
