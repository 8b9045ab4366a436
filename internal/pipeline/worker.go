package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/transudeck/transudeck/internal/chunker"
	"github.com/transudeck/transudeck/internal/genai"
	"github.com/transudeck/transudeck/internal/importer"
	"github.com/transudeck/transudeck/internal/markdown"
)

// ClientSource yields the current GenAI client, or nil when the provider is
// not configured. Credentials can change at runtime, so workers resolve the
// client per job instead of holding one.
type ClientSource func() *genai.Client

// Worker processes a single import job.
type Worker struct {
	clients     ClientSource
	log         *slog.Logger
	chunkCfg    chunker.Config
	pdfFallback bool
}

func NewWorker(clients ClientSource, log *slog.Logger, chunkCfg chunker.Config, pdfFallback bool) *Worker {
	return &Worker{
		clients:     clients,
		log:         log,
		chunkCfg:    chunkCfg,
		pdfFallback: pdfFallback,
	}
}

// Process runs the full import pipeline for a job: parse the upload into an
// outline, draft slides from it, and optionally summarize via the LLM.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "filename", job.Filename)

	// Phase 1: Parse
	job.SetStatus(StatusParsing, "parsing")
	p, err := importer.ForFile(job.Filename)
	if err != nil {
		log.Error("unsupported format", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "parsing")
		return
	}
	if pdfParser, ok := p.(*importer.PDFParser); ok {
		pdfParser.FallbackPdftotext = w.pdfFallback
	}

	o, err := p.Parse(bytes.NewReader(job.FileData()), job.Filename)
	if err != nil {
		log.Error("parse failed", "error", err)
		job.AddError(fmt.Sprintf("parse: %s", err))
		job.SetStatus(StatusFailed, "parsing")
		return
	}
	if job.Title != "" {
		o.Title = job.Title
	}

	text := o.Text()
	job.SetContentHash(ContentHashHex([]byte(text)))
	if strings.TrimSpace(text) == "" {
		log.Warn("no extractable content")
		job.AddError("no extractable content")
		job.SetStatus(StatusFailed, "parsing")
		return
	}

	// Phase 2: Draft slides from the outline.
	job.SetStatus(StatusDrafting, "drafting")
	md := o.Markdown()

	// Phase 3 (optional): Summarize through the LLM.
	if job.Options.Summarize {
		client := w.clients()
		if client == nil {
			job.AddError("summarize requested but no GenAI provider configured")
			job.SetStatus(StatusFailed, "summarizing")
			return
		}

		job.SetStatus(StatusSummarizing, "summarizing")
		summary, err := w.summarize(ctx, client, job, text, log)
		if err != nil {
			log.Error("summarize failed", "error", err)
			job.AddError(err.Error())
			job.SetStatus(StatusFailed, "summarizing")
			return
		}
		md = summary
	}

	drafts := markdown.SplitToDrafts(md)
	if len(drafts) == 0 {
		job.AddError("no slides produced")
		job.SetStatus(StatusFailed, "drafting")
		return
	}

	job.SetDrafts(drafts)
	job.SetStatus(StatusCompleted, "done")
	log.Info("import complete", "drafts", len(drafts))
}

// summarize runs the document text through the LLM, chunking it when it
// exceeds the model input budget. Each chunk becomes at least one slide;
// the requested slide count applies when the text fits in a single call.
func (w *Worker) summarize(ctx context.Context, client *genai.Client, job *Job, text string, log *slog.Logger) (string, error) {
	// Inline markers inflate the token estimate and add noise to the
	// prompt, so the LLM sees plain text.
	chunks := chunker.Split(markdown.StripFormatting(text), w.chunkCfg)
	job.SetTotalChunks(len(chunks))
	if len(chunks) == 0 {
		return "", fmt.Errorf("no summarizable content")
	}

	opts := genai.SummarizeOptions{
		NumSlides:  job.Options.NumSlides,
		TargetLang: job.Options.TargetLang,
	}

	var parts []string
	for i, chunk := range chunks {
		chunkOpts := opts
		if len(chunks) > 1 {
			// One slide per chunk keeps the requested total roughly intact.
			chunkOpts.NumSlides = 1
		}

		summary, err := w.summarizeWithRetry(ctx, client, chunk, job.Options.Model, chunkOpts, log)
		job.IncrChunksProcessed()
		if err != nil {
			return "", fmt.Errorf("chunk %d: %w", i, err)
		}
		parts = append(parts, summary)
	}

	return strings.Join(parts, "\n\n---\n\n"), nil
}

func (w *Worker) summarizeWithRetry(ctx context.Context, client *genai.Client, text, model string, opts genai.SummarizeOptions, log *slog.Logger) (string, error) {
	var lastErr error
	for attempt := 0; attempt < MaxRetries; attempt++ {
		var out string
		out, lastErr = client.Summarize(ctx, text, model, opts)
		if lastErr == nil || !IsRetryable(lastErr) {
			return out, lastErr
		}
		log.Warn("retryable summarize error", "attempt", attempt, "error", lastErr)
		select {
		case <-time.After(Backoff(attempt)):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return "", lastErr
}
