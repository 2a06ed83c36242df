// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package profile

import (
	"regexp"
	"strings"
)

// stopWords are dropped during keyword extraction.
var stopWords = map[string]bool{
	"a": true, "an": true, "the": true, "of": true, "in": true, "on": true,
	"at": true, "to": true, "for": true, "and": true, "or": true,
	"is": true, "are": true, "was": true, "were": true, "be": true,
	"been": true, "being": true, "with": true, "from": true,
	"by": true, "as": true, "it": true, "its": true, "this": true,
	"that": true, "these": true, "those": true, "we": true,
	"our": true, "us": true, "their": true, "they": true, "them": true,
	"which": true, "what": true, "how": true, "when": true,
	"where": true, "who": true, "will": true, "can": true, "may": true,
	"using": true, "via": true, "between": true,
	"into": true, "through": true, "during": true, "before": true,
	"after": true, "above": true, "below": true,
	"up": true, "down": true, "new": true, "first": true, "two": true,
	"three": true, "one": true, "based": true,
	"study": true, "analysis": true, "results": true, "data": true,
	"model": true, "method": true, "approach": true,
	"paper": true, "show": true, "find": true, "also": true, "than": true,
	"more": true, "most": true, "not": true, "no": true,
	"but": true, "if": true, "about": true, "each": true, "all": true,
	"both": true, "do": true, "does": true, "did": true,
	"has": true, "have": true, "had": true, "such": true, "only": true,
	"very": true, "just": true, "over": true, "under": true,
	"then": true, "so": true, "well": true, "here": true, "there": true,
	"some": true, "any": true, "other": true,
}

var wordPattern = regexp.MustCompile(`[a-zA-Z][a-zA-Z0-9\-]+`)

// ExtractKeywords tokenizes text into lowercase keywords, dropping stop
// words and tokens of one or two characters. Repeated words are returned
// once per occurrence so callers can weight by frequency.
func ExtractKeywords(text string) []string {
	var keywords []string
	for _, w := range wordPattern.FindAllString(strings.ToLower(text), -1) {
		if len(w) > 2 && !stopWords[w] {
			keywords = append(keywords, w)
		}
	}
	return keywords
}
