package pipeline

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/transudeck/transudeck/internal/chunker"
	"github.com/transudeck/transudeck/internal/config"
	"github.com/transudeck/transudeck/internal/genai"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig(queueSize int) config.Config {
	return config.Config{
		WorkerCount:         1,
		MaxQueueSize:        queueSize,
		DefaultChunkSize:    1500,
		DefaultChunkOverlap: 200,
		JobTTL:              time.Hour,
	}
}

func newTestWorker(clients ClientSource) *Worker {
	return NewWorker(clients, testLogger(), chunker.DefaultConfig(), false)
}

func TestWorkerProcess_MarkdownToDrafts(t *testing.T) {
	w := newTestWorker(func() *genai.Client { return nil })

	job := NewJob("doc.md", "", ImportOptions{})
	job.SetFileData([]byte("# Guide\n\nIntro.\n\n## Setup\n\nInstall it.\n\n## Usage\n\nRun it.\n"))

	w.Process(context.Background(), job)

	snap := job.Snapshot()
	if snap.Status != StatusCompleted {
		t.Fatalf("expected completed, got %q (errors: %v)", snap.Status, snap.Progress.Errors)
	}
	if len(snap.Drafts) == 0 {
		t.Fatal("expected drafts")
	}
	if job.ContentHash == "" {
		t.Error("expected content hash to be set")
	}
	// The single h1 becomes one slide carrying its subsections.
	if snap.Drafts[0].Title != "Guide" {
		t.Errorf("expected draft title %q, got %q", "Guide", snap.Drafts[0].Title)
	}
	if !strings.Contains(snap.Drafts[0].Content, "### Setup") || !strings.Contains(snap.Drafts[0].Content, "### Usage") {
		t.Errorf("expected subsection headings in draft content, got %q", snap.Drafts[0].Content)
	}
}

func TestWorkerProcess_TitleOverride(t *testing.T) {
	w := newTestWorker(func() *genai.Client { return nil })

	job := NewJob("notes.txt", "Quarterly Review", ImportOptions{})
	job.SetFileData([]byte("First point.\n\nSecond point.\n"))

	w.Process(context.Background(), job)

	snap := job.Snapshot()
	if snap.Status != StatusCompleted {
		t.Fatalf("expected completed, got %q (errors: %v)", snap.Status, snap.Progress.Errors)
	}
	if len(snap.Drafts) != 2 {
		t.Fatalf("expected 2 drafts (one per paragraph), got %d", len(snap.Drafts))
	}
}

func TestWorkerProcess_UnsupportedFormat(t *testing.T) {
	w := newTestWorker(func() *genai.Client { return nil })

	job := NewJob("image.png", "", ImportOptions{})
	job.SetFileData([]byte{0x89, 0x50})

	w.Process(context.Background(), job)

	if job.Snapshot().Status != StatusFailed {
		t.Errorf("expected failed for unsupported format, got %q", job.Snapshot().Status)
	}
}

func TestWorkerProcess_EmptyDocument(t *testing.T) {
	w := newTestWorker(func() *genai.Client { return nil })

	job := NewJob("empty.txt", "", ImportOptions{})
	job.SetFileData([]byte("   \n\n  "))

	w.Process(context.Background(), job)

	snap := job.Snapshot()
	if snap.Status != StatusFailed {
		t.Errorf("expected failed for empty document, got %q", snap.Status)
	}
	if len(snap.Progress.Errors) == 0 {
		t.Error("expected an error to be recorded")
	}
}

func TestWorkerProcess_SummarizeWithoutClientFails(t *testing.T) {
	w := newTestWorker(func() *genai.Client { return nil })

	job := NewJob("doc.md", "", ImportOptions{Summarize: true})
	job.SetFileData([]byte("# Doc\n\nSome text.\n"))

	w.Process(context.Background(), job)

	snap := job.Snapshot()
	if snap.Status != StatusFailed {
		t.Fatalf("expected failed, got %q", snap.Status)
	}
	if len(snap.Progress.Errors) == 0 || !strings.Contains(snap.Progress.Errors[0], "no GenAI provider") {
		t.Errorf("expected provider error, got %v", snap.Progress.Errors)
	}
}

func TestWorkerProcess_SummarizePath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": "## Summary\n\n- point one\n\n---\n\n## More\n\n- point two"}},
			},
		})
	}))
	defer srv.Close()

	client := genai.NewClient(srv.URL+"/v1", "key", nil)
	defer client.Close()

	w := newTestWorker(func() *genai.Client { return client })

	job := NewJob("doc.md", "", ImportOptions{Summarize: true, NumSlides: 2, Model: "claude-3-5-sonnet"})
	job.SetFileData([]byte("# Doc\n\nA long body of text to summarize.\n"))

	w.Process(context.Background(), job)

	snap := job.Snapshot()
	if snap.Status != StatusCompleted {
		t.Fatalf("expected completed, got %q (errors: %v)", snap.Status, snap.Progress.Errors)
	}
	if len(snap.Drafts) != 2 {
		t.Fatalf("expected 2 drafts from summary, got %d", len(snap.Drafts))
	}
	if snap.Drafts[0].Title != "Summary" || snap.Drafts[1].Title != "More" {
		t.Errorf("unexpected draft titles: %+v", snap.Drafts)
	}
	if snap.Progress.TotalChunks != 1 || snap.Progress.ChunksProcessed != 1 {
		t.Errorf("unexpected chunk progress: %+v", snap.Progress)
	}
}

func TestOrchestratorSubmitQueueFull(t *testing.T) {
	o := NewOrchestrator(testConfig(1), func() *genai.Client { return nil }, testLogger())

	// Workers are not started, so the single queue slot fills immediately.
	first := NewJob("a.txt", "", ImportOptions{})
	if err := o.Submit(first); err != nil {
		t.Fatalf("first submit should fit: %v", err)
	}
	second := NewJob("b.txt", "", ImportOptions{})
	if err := o.Submit(second); err == nil {
		t.Fatal("expected queue full error")
	}
	if second.Snapshot().Status != StatusFailed {
		t.Error("expected rejected job marked failed")
	}
	if o.GetJob(first.ID) == nil {
		t.Error("expected submitted job to be retrievable")
	}
	if o.QueueDepth() != 1 {
		t.Errorf("expected queue depth 1, got %d", o.QueueDepth())
	}
}

func TestOrchestratorSubmitAfterStop(t *testing.T) {
	o := NewOrchestrator(testConfig(4), func() *genai.Client { return nil }, testLogger())
	o.Start(context.Background())
	o.Stop()

	job := NewJob("late.md", "", ImportOptions{})
	if err := o.Submit(job); err == nil {
		t.Fatal("expected submit to fail after stop")
	}
	if job.Snapshot().Status != StatusFailed {
		t.Error("expected rejected job marked failed")
	}

	// A second Stop must be a no-op, not a double close.
	o.Stop()
}
