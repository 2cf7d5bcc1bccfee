package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFileRecorder_AppendAndLoad(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "interactions.jsonl")
	rec, err := NewFileRecorder(p)
	if err != nil {
		t.Fatalf("init recorder: %v", err)
	}

	ev1 := Event{Timestamp: time.Unix(1, 0).UTC(), SessionID: "s1", Query: "hi", Route: "qa", Response: "hello"}
	ev2 := Event{Timestamp: time.Unix(2, 0).UTC(), SessionID: "s2", Query: "", Category: "sports", Route: "news", Response: "headlines", Fallback: true}
	if err := rec.AppendInteraction(ev1); err != nil {
		t.Fatalf("append1: %v", err)
	}
	if err := rec.AppendInteraction(ev2); err != nil {
		t.Fatalf("append2: %v", err)
	}

	events, err := rec.LoadInteractions()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("want 2, got %d", len(events))
	}
	if events[0].SessionID != "s1" || events[1].SessionID != "s2" {
		t.Fatalf("order mismatch: %+v", events)
	}
	if events[1].Route != "news" || !events[1].Fallback {
		t.Fatalf("fields lost: %+v", events[1])
	}

	// ensure file exists and non-empty
	st, err := os.Stat(p)
	if err != nil || st.Size() == 0 {
		t.Fatalf("file not written")
	}
}

func TestFileRecorder_SkipsCorruptLines(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "interactions.jsonl")
	rec, err := NewFileRecorder(p)
	if err != nil {
		t.Fatalf("init recorder: %v", err)
	}
	if err := rec.AppendInteraction(Event{SessionID: "s1", Query: "q", Route: "search", Response: "r"}); err != nil {
		t.Fatalf("append: %v", err)
	}
	f, err := os.OpenFile(p, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	f.WriteString("not json\n")
	f.Close()
	if err := rec.AppendInteraction(Event{SessionID: "s2", Query: "q2", Route: "qa", Response: "r2"}); err != nil {
		t.Fatalf("append: %v", err)
	}

	events, err := rec.LoadInteractions()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("corrupt line should be skipped, got %d events", len(events))
	}
}
