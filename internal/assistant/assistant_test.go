package assistant

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"newsgenie/internal/llm"
	"newsgenie/internal/news"
	"newsgenie/internal/search"
	"newsgenie/internal/session"
)

type fakeLLM struct {
	resp       llm.Response
	err        error
	lastPrompt string
}

func (f *fakeLLM) Generate(ctx context.Context, msgs []llm.Message) (llm.Response, error) {
	if len(msgs) > 0 {
		f.lastPrompt = msgs[len(msgs)-1].Content
	}
	return f.resp, f.err
}

type failingStore struct{}

func (failingStore) Save(session.Interaction) error { return errors.New("disk full") }
func (failingStore) History(string, int) ([]session.Interaction, error) {
	return nil, errors.New("disk full")
}
func (failingStore) Clear(string) error { return errors.New("disk full") }
func (failingStore) Close() error       { return nil }

func newTestAssistant(t *testing.T, fl *fakeLLM) (*Assistant, *session.SQLiteStore) {
	t.Helper()
	store, err := session.Open(filepath.Join(t.TempDir(), "sessions.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	// nil clients: sources serve deterministic mocks
	a := New(news.NewSource(nil), search.NewSource(nil), fl, store, nil, "")
	return a, store
}

func TestProcess_QARoute(t *testing.T) {
	fl := &fakeLLM{resp: llm.Response{Content: "Inflation is a rise in prices.", Model: "test-model", TotalTokens: 12}}
	a, store := newTestAssistant(t, fl)

	resp := a.Process(context.Background(), "what is inflation", "s1", "")
	if resp != "Inflation is a rise in prices." {
		t.Fatalf("unexpected response: %q", resp)
	}

	got, err := store.History("s1", 1)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("interaction not persisted")
	}
	in := got[0]
	if in.Route != "qa" || in.Query != "what is inflation" || in.Response != resp {
		t.Fatalf("persisted interaction wrong: %+v", in)
	}
	if in.Fallback || in.Model != "test-model" || in.TotalTokens != 12 {
		t.Fatalf("metadata wrong: %+v", in)
	}
}

func TestProcess_QAWithCategoryContext(t *testing.T) {
	fl := &fakeLLM{resp: llm.Response{Content: "ok"}}
	a, _ := newTestAssistant(t, fl)

	a.Process(context.Background(), "what is a hat trick", "s1", "sports")
	if !strings.HasPrefix(fl.lastPrompt, "In the context of sports, ") {
		t.Fatalf("category context not prefixed: %q", fl.lastPrompt)
	}
	if !strings.Contains(fl.lastPrompt, "what is a hat trick") {
		t.Fatalf("original question lost: %q", fl.lastPrompt)
	}
}

func TestProcess_QAFallbackOnLLMFailure(t *testing.T) {
	fl := &fakeLLM{err: errors.New("connection refused")}
	a, store := newTestAssistant(t, fl)

	resp := a.Process(context.Background(), "explain entropy", "s1", "")
	if !strings.Contains(resp, "(Fallback)") {
		t.Fatalf("fallback not marked: %q", resp)
	}
	if !strings.Contains(resp, "connection refused") || !strings.Contains(resp, "explain entropy") {
		t.Fatalf("fallback must embed error and query: %q", resp)
	}

	got, _ := store.History("s1", 1)
	if len(got) != 1 || !got[0].Fallback || got[0].Error == "" {
		t.Fatalf("fallback interaction not persisted correctly: %+v", got)
	}
}

func TestProcess_NewsRouteWithCategoryOnly(t *testing.T) {
	a, store := newTestAssistant(t, &fakeLLM{})

	resp := a.Process(context.Background(), "", "s1", "technology")
	if !strings.Contains(resp, "Technology") {
		t.Fatalf("response should name the category: %q", resp)
	}
	if !strings.Contains(resp, "Sample Technology Headline 1") {
		t.Fatalf("mock headlines missing: %q", resp)
	}
	if n := strings.Count(resp, "\n- "); n > news.MaxArticles {
		t.Fatalf("more than %d entries: %q", news.MaxArticles, resp)
	}

	got, _ := store.History("s1", 1)
	if len(got) != 1 || got[0].Route != "news" || got[0].Category != "technology" {
		t.Fatalf("news interaction persisted wrong: %+v", got)
	}
	if !got[0].Fallback {
		t.Fatalf("mock headlines should be tagged as fallback")
	}
}

func TestProcess_SearchRoute(t *testing.T) {
	a, store := newTestAssistant(t, &fakeLLM{})

	resp := a.Process(context.Background(), "find cheap flights", "s1", "")
	if !strings.Contains(resp, "Search results for") {
		t.Fatalf("search response not titled: %q", resp)
	}
	if !strings.Contains(resp, "Mock result for find cheap flights - 1") {
		t.Fatalf("mock results missing: %q", resp)
	}

	got, _ := store.History("s1", 1)
	if len(got) != 1 || got[0].Route != "search" {
		t.Fatalf("search interaction persisted wrong: %+v", got)
	}
}

func TestProcess_PersistenceFailureDoesNotBlockResponse(t *testing.T) {
	fl := &fakeLLM{resp: llm.Response{Content: "still here"}}
	a := New(news.NewSource(nil), search.NewSource(nil), fl, failingStore{}, nil, "")

	resp := a.Process(context.Background(), "what is love", "s1", "")
	if resp != "still here" {
		t.Fatalf("response must survive store failure: %q", resp)
	}
}

func TestProcess_SystemPromptIncluded(t *testing.T) {
	fl := &fakeLLM{resp: llm.Response{Content: "ok"}}
	store, err := session.Open(filepath.Join(t.TempDir(), "sessions.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	a := New(news.NewSource(nil), search.NewSource(nil), fl, store, nil, "be brief")
	a.Process(context.Background(), "what is love", "s1", "")
	// The fake records the last (user) message; the question must be intact.
	if fl.lastPrompt != "what is love" {
		t.Fatalf("user prompt altered: %q", fl.lastPrompt)
	}
}

func TestClearSession(t *testing.T) {
	a, _ := newTestAssistant(t, &fakeLLM{resp: llm.Response{Content: "ok"}})

	a.Process(context.Background(), "what is inflation", "s1", "")
	if err := a.ClearSession("s1"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	got, err := a.History("s1", 10)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("history not cleared: %+v", got)
	}
}
