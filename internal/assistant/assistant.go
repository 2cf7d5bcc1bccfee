// Package assistant wires the router, the three handlers and the
// session store into the request pipeline.
package assistant

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"newsgenie/internal/llm"
	"newsgenie/internal/news"
	"newsgenie/internal/router"
	"newsgenie/internal/search"
	"newsgenie/internal/session"
	"newsgenie/internal/storage"
)

// HistoryDisplayLimit caps how many past interactions front ends show.
const HistoryDisplayLimit = 20

const errTruncLen = 200

type Assistant struct {
	news         *news.Source
	search       *search.Source
	llm          llm.Client
	store        session.Store
	rec          storage.Recorder // optional audit log, may be nil
	systemPrompt string
}

func New(newsSrc *news.Source, searchSrc *search.Source, llmClient llm.Client, store session.Store, rec storage.Recorder, systemPrompt string) *Assistant {
	return &Assistant{
		news:         newsSrc,
		search:       searchSrc,
		llm:          llmClient,
		store:        store,
		rec:          rec,
		systemPrompt: systemPrompt,
	}
}

// meta carries response provenance into the persisted interaction.
type meta struct {
	fallback bool
	model    string
	tokens   int
	errText  string
}

// Process routes one request, dispatches it and persists the outcome.
// It always returns a response string; adapter failures surface as
// marked fallback text and persistence failures are logged only.
func (a *Assistant) Process(ctx context.Context, query, sessionID, category string) string {
	started := time.Now()
	category = strings.ToLower(strings.TrimSpace(category))
	decision := router.Decide(query, category)
	log.Printf("routing session=%s route=%s category=%q query=%q", sessionID, decision.Route, decision.Category, query)

	text, m := a.dispatch(ctx, decision, query, category)

	savedCategory := decision.Category
	if savedCategory == "" {
		savedCategory = category
	}
	in := session.Interaction{
		Timestamp:   started,
		SessionID:   sessionID,
		Query:       query,
		Category:    savedCategory,
		Route:       string(decision.Route),
		Response:    text,
		Fallback:    m.fallback,
		Model:       m.model,
		TotalTokens: m.tokens,
		Error:       m.errText,
	}
	if err := a.store.Save(in); err != nil {
		log.Printf("failed to save interaction for session %s: %v", sessionID, err)
	}
	if a.rec != nil {
		ev := storage.Event{
			Timestamp: started,
			SessionID: sessionID,
			Query:     query,
			Category:  savedCategory,
			Route:     string(decision.Route),
			Response:  text,
			Fallback:  m.fallback,
		}
		if err := a.rec.AppendInteraction(ev); err != nil {
			log.Printf("failed to append audit event: %v", err)
		}
	}

	return text
}

// dispatch runs the handler for the decided route. Handler panics are
// contained here and turned into a generic error response. category is
// the caller's request category; it gives QA answers context even when
// routing did not resolve one.
func (a *Assistant) dispatch(ctx context.Context, decision router.Decision, query, category string) (text string, m meta) {
	defer func() {
		if r := recover(); r != nil {
			m.fallback = true
			m.errText = truncate(fmt.Sprintf("%v", r), errTruncLen)
			text = fmt.Sprintf("Error processing request: %s (query: %q)", m.errText, query)
			log.Printf("contained panic while handling %q: %v", query, r)
		}
	}()

	switch decision.Route {
	case router.RouteNews:
		return a.handleNews(ctx, decision.Category)
	case router.RouteQA:
		return a.handleQA(ctx, query, category)
	default:
		return a.handleSearch(ctx, query)
	}
}

// History returns up to limit most recent interactions, newest first.
func (a *Assistant) History(sessionID string, limit int) ([]session.Interaction, error) {
	return a.store.History(sessionID, limit)
}

// ClearSession removes all interactions for the session.
func (a *Assistant) ClearSession(sessionID string) error {
	return a.store.Clear(sessionID)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
