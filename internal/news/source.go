package news

import (
	"context"
	"fmt"
	"log"
	"strings"
)

// Result tags headline data with its origin so callers can tell live
// articles from substituted mocks without inspecting errors.
type Result struct {
	Articles []Article
	Fallback bool
}

// Source wraps the NewsAPI client with a deterministic mock fallback.
// A nil client means unconfigured: every request serves mock data.
type Source struct {
	client *Client
}

func NewSource(client *Client) *Source {
	return &Source{client: client}
}

// Headlines returns up to MaxArticles articles for the category,
// substituting mock articles on any failure. It never fails.
func (s *Source) Headlines(ctx context.Context, category string) Result {
	category = strings.ToLower(strings.TrimSpace(category))

	if s.client == nil || s.client.apiKey == "" {
		return Result{Articles: mockArticles(category), Fallback: true}
	}
	if !ValidCategory(category) {
		log.Printf("unknown news category %q, serving mock headlines", category)
		return Result{Articles: mockArticles(category), Fallback: true}
	}

	articles, err := s.client.TopHeadlines(ctx, category, MaxArticles)
	if err != nil {
		log.Printf("newsapi fetch failed: %v", err)
		return Result{Articles: mockArticles(category), Fallback: true}
	}
	if len(articles) == 0 {
		return Result{Articles: mockArticles(category), Fallback: true}
	}
	if len(articles) > MaxArticles {
		articles = articles[:MaxArticles]
	}
	return Result{Articles: articles}
}

func mockArticles(category string) []Article {
	out := make([]Article, 0, MaxArticles)
	for i := 0; i < MaxArticles; i++ {
		out = append(out, Article{
			Title:      fmt.Sprintf("Sample %s Headline %d", TitleCase(category), i+1),
			SourceName: "NewsGenie",
		})
	}
	return out
}

// TitleCase uppercases the first letter only; good enough for the
// fixed ASCII category names.
func TitleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
