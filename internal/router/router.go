// Package router classifies a (query, category) pair into one of the
// three handler routes using an ordered list of deterministic rules.
package router

import (
	"strings"

	"newsgenie/internal/news"
)

type Route string

const (
	RouteNews   Route = "news"
	RouteSearch Route = "search"
	RouteQA     Route = "qa"
)

// Decision is the outcome of routing a single request. Category is
// only set for news routes.
type Decision struct {
	Route    Route
	Category string
}

var (
	searchWords      = []string{"search", "find", "lookup", "browse"}
	questionWords    = []string{"who", "what", "when", "where", "why", "how"}
	auxiliaryWords   = []string{"is", "are", "can", "could", "will", "would", "should", "do", "does", "did"}
	instructionWords = []string{"tell", "explain", "describe", "define"}
)

type rule struct {
	name  string
	apply func(q, category string, words map[string]bool) (Decision, bool)
}

// Rules are evaluated in order; first match wins. The final search
// fallback lives in Decide itself.
var rules = []rule{
	{
		name: "search keyword",
		apply: func(q, category string, words map[string]bool) (Decision, bool) {
			if containsAny(words, searchWords) {
				return Decision{Route: RouteSearch}, true
			}
			return Decision{}, false
		},
	},
	{
		name: "question pattern",
		apply: func(q, category string, words map[string]bool) (Decision, bool) {
			if containsAny(words, questionWords) && containsAny(words, auxiliaryWords) {
				return Decision{Route: RouteQA}, true
			}
			if containsAny(words, instructionWords) {
				return Decision{Route: RouteQA}, true
			}
			return Decision{}, false
		},
	},
	{
		name: "explicit category",
		apply: func(q, category string, words map[string]bool) (Decision, bool) {
			if category != "" && news.ValidCategory(category) {
				return Decision{Route: RouteNews, Category: category}, true
			}
			return Decision{}, false
		},
	},
	{
		// Plain substring match: "unsportsmanlike" resolves to sports.
		// Accepted behavior, not corrected.
		name: "category in query",
		apply: func(q, category string, words map[string]bool) (Decision, bool) {
			for _, c := range news.Categories {
				if strings.Contains(q, c) {
					return Decision{Route: RouteNews, Category: c}, true
				}
			}
			return Decision{}, false
		},
	},
}

// Decide routes a request. It always resolves: unmatched queries fall
// through to web search.
func Decide(query, category string) Decision {
	q := strings.ToLower(query)
	category = strings.ToLower(strings.TrimSpace(category))
	words := tokenize(q)

	for _, r := range rules {
		if d, ok := r.apply(q, category, words); ok {
			return d
		}
	}
	return Decision{Route: RouteSearch}
}

func tokenize(q string) map[string]bool {
	words := make(map[string]bool)
	for _, w := range strings.FieldsFunc(q, func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9' || r == '\'')
	}) {
		words[w] = true
	}
	return words
}

func containsAny(words map[string]bool, candidates []string) bool {
	for _, c := range candidates {
		if words[c] {
			return true
		}
	}
	return false
}
