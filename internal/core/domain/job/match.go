package job

import (
	"sort"
	"strings"
	"unicode"
)

// stopWords filters common English words that add noise to keyword matching.
var stopWords = map[string]bool{
	"and": true, "the": true, "for": true, "with": true, "you": true,
	"are": true, "have": true, "will": true, "this": true, "that": true,
	"from": true, "our": true, "your": true, "their": true, "they": true,
	"work": true, "team": true, "role": true, "job": true, "join": true,
	"about": true, "which": true, "what": true, "who": true, "how": true,
	"can": true, "not": true, "but": true, "all": true, "also": true,
	"more": true, "than": true, "into": true, "has": true, "its": true,
	"was": true, "were": true, "been": true, "each": true, "new": true,
	"use": true, "using": true, "used": true, "well": true, "high": true,
	"good": true, "able": true, "get": true, "set": true, "such": true,
}

// ExtractKeywords tokenizes text into a lowercase keyword set, skipping stop
// words and words shorter than 3 runes unless they carry a tech symbol ("c#").
// Extract once per CV and reuse for batch job scoring. Tech suffixes like
// "c++", "c#" and "node.js" survive tokenization because + # . are treated as
// word characters.
func ExtractKeywords(text string) map[string]bool {
	kw := make(map[string]bool)
	var word strings.Builder
	flush := func() {
		w := word.String()
		word.Reset()
		w = strings.TrimRight(w, ".")
		if stopWords[w] {
			return
		}
		if len([]rune(w)) >= 3 || (len([]rune(w)) == 2 && strings.ContainsAny(w, "+#")) {
			kw[w] = true
		}
	}
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#' || r == '.' {
			word.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()
	return kw
}

// ScoreMatch computes a Jaccard keyword overlap score (0-100, one decimal)
// between pre-extracted CV keywords and a job's text, with the keywords
// present in both (matching) and the top job keywords absent from the CV
// (missing, capped at 20).
func ScoreMatch(cvKeywords map[string]bool, jobText string) (score float64, matching, missing []string) {
	jobKeywords := ExtractKeywords(jobText)

	inter := 0
	for kw := range cvKeywords {
		if jobKeywords[kw] {
			inter++
			matching = append(matching, kw)
		}
	}
	for kw := range jobKeywords {
		if !cvKeywords[kw] {
			missing = append(missing, kw)
		}
	}

	union := len(cvKeywords) + len(jobKeywords) - inter
	if union > 0 {
		raw := float64(inter) / float64(union) * 100
		score = float64(int(raw*10+0.5)) / 10
	}

	sort.Strings(matching)
	sort.Strings(missing)
	if len(missing) > 20 {
		missing = missing[:20]
	}
	return score, matching, missing
}
