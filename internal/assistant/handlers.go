package assistant

import (
	"context"
	"fmt"
	"strings"

	"newsgenie/internal/llm"
	"newsgenie/internal/news"
)

const snippetLen = 200

// handleNews formats top headlines for a category. The news source
// owns the mock fallback, so this never fails.
func (a *Assistant) handleNews(ctx context.Context, category string) (string, meta) {
	res := a.news.Headlines(ctx, category)

	var b strings.Builder
	fmt.Fprintf(&b, "Top %s headlines:\n", news.TitleCase(category))
	for _, art := range res.Articles {
		fmt.Fprintf(&b, "\n- %s (%s)", art.Title, art.SourceName)
	}
	return b.String(), meta{fallback: res.Fallback}
}

// handleSearch formats web search results for a query, truncating
// snippets. The search source owns the mock fallback.
func (a *Assistant) handleSearch(ctx context.Context, query string) (string, meta) {
	res := a.search.Search(ctx, query)

	var b strings.Builder
	fmt.Fprintf(&b, "Search results for %q:\n", query)
	for _, r := range res.Results {
		snippet := truncate(strings.TrimSpace(r.Content), snippetLen)
		if snippet == "" {
			fmt.Fprintf(&b, "\n- %s", r.Title)
			continue
		}
		fmt.Fprintf(&b, "\n- %s — %s", r.Title, snippet)
	}
	return b.String(), meta{fallback: res.Fallback}
}

// handleQA answers free-form questions through the completion client.
// Any failure yields a marked fallback string, never an error.
func (a *Assistant) handleQA(ctx context.Context, query, category string) (string, meta) {
	prompt := query
	if category != "" {
		prompt = fmt.Sprintf("In the context of %s, %s", category, query)
	}

	var messages []llm.Message
	if a.systemPrompt != "" {
		messages = append(messages, llm.Message{Role: "system", Content: a.systemPrompt})
	}
	messages = append(messages, llm.Message{Role: "user", Content: prompt})

	resp, err := a.llm.Generate(ctx, messages)
	if err != nil {
		errText := truncate(err.Error(), errTruncLen)
		text := fmt.Sprintf("(Fallback) Could not answer right now: %s. Your question: %q", errText, query)
		return text, meta{fallback: true, errText: errText}
	}
	return resp.Content, meta{model: resp.Model, tokens: resp.TotalTokens}
}

// Headlines exposes the news handler's formatting for digests and
// tools that bypass routing.
func (a *Assistant) Headlines(ctx context.Context, category string) string {
	text, _ := a.handleNews(ctx, category)
	return text
}

// SearchResults exposes the search handler's formatting for tools
// that bypass routing.
func (a *Assistant) SearchResults(ctx context.Context, query string) string {
	text, _ := a.handleSearch(ctx, query)
	return text
}
