package search

import (
	"context"
	"fmt"
	"log"
)

// Result tags search data with its origin, mirroring the news source.
type Result struct {
	Results  []SearchResult
	Fallback bool
}

// Source wraps the Tavily client with a deterministic mock fallback.
// A nil client means unconfigured: every request serves mock data.
type Source struct {
	client *Client
}

func NewSource(client *Client) *Source {
	return &Source{client: client}
}

// Search returns up to MaxResults results for the query, substituting
// mock results on any failure. It never fails.
func (s *Source) Search(ctx context.Context, query string) Result {
	if s.client == nil || s.client.apiKey == "" {
		return Result{Results: mockResults(query), Fallback: true}
	}

	results, err := s.client.Search(ctx, query, MaxResults)
	if err != nil {
		log.Printf("tavily search failed: %v", err)
		return Result{Results: mockResults(query), Fallback: true}
	}
	if len(results) == 0 {
		return Result{Results: mockResults(query), Fallback: true}
	}
	if len(results) > MaxResults {
		results = results[:MaxResults]
	}
	return Result{Results: results}
}

func mockResults(query string) []SearchResult {
	out := make([]SearchResult, 0, MaxResults)
	for i := 0; i < MaxResults; i++ {
		out = append(out, SearchResult{
			Title:   fmt.Sprintf("Mock result for %s - %d", query, i+1),
			Content: fmt.Sprintf("Placeholder search content for %q.", query),
		})
	}
	return out
}
