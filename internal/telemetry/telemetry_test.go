package telemetry

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestEmitAndReadBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")
	e, err := NewEmitter(path)
	if err != nil {
		t.Fatalf("NewEmitter: %v", err)
	}

	events := []Event{
		{Timestamp: time.Now(), Kind: KindSearchStart, Data: map[string]any{"world": "w"}},
		{Timestamp: time.Now(), Kind: KindSearchDone, RunID: "r1", Data: map[string]any{"steps": 3}},
	}
	for _, evt := range events {
		if err := e.Emit(evt); err != nil {
			t.Fatalf("Emit: %v", err)
		}
	}
	if err := e.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	var got []Event
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var evt Event
		if err := json.Unmarshal(scanner.Bytes(), &evt); err != nil {
			t.Fatalf("unmarshal line: %v", err)
		}
		got = append(got, evt)
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("scan: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("got %d events, want 2", len(got))
	}
	if got[0].Kind != KindSearchStart || got[1].Kind != KindSearchDone {
		t.Errorf("kinds = %q, %q", got[0].Kind, got[1].Kind)
	}
	if got[1].RunID != "r1" {
		t.Errorf("run id = %q", got[1].RunID)
	}
}

func TestEmitterAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")

	for i := 0; i < 2; i++ {
		e, err := NewEmitter(path)
		if err != nil {
			t.Fatalf("NewEmitter: %v", err)
		}
		if err := e.Emit(Event{Timestamp: time.Now(), Kind: KindFrame}); err != nil {
			t.Fatalf("Emit: %v", err)
		}
		if err := e.Close(); err != nil {
			t.Fatalf("Close: %v", err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	lines := 0
	for _, b := range data {
		if b == '\n' {
			lines++
		}
	}
	if lines != 2 {
		t.Errorf("got %d lines, want 2 (append mode)", lines)
	}
}

func TestNilEmitterIsNoOp(t *testing.T) {
	var e *Emitter
	if err := e.Emit(Event{Kind: KindFrame}); err != nil {
		t.Errorf("nil Emit = %v, want nil", err)
	}
	if err := e.Close(); err != nil {
		t.Errorf("nil Close = %v, want nil", err)
	}
}
