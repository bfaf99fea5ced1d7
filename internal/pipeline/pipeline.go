package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/calscribe/calscribe/internal/calendar"
	"github.com/calscribe/calscribe/internal/llm"
	"github.com/calscribe/calscribe/internal/logging"
	"github.com/calscribe/calscribe/internal/model"
	"github.com/calscribe/calscribe/internal/prompt"
	"github.com/calscribe/calscribe/internal/transcript"
)

// CalendarService is the calendar surface the pipeline needs: context
// fetching for the prompt plus the sync operations. *calendar.Client
// implements it.
type CalendarService interface {
	calendar.API
	FetchContext(now time.Time) (calendar.Context, error)
}

// Pipeline wires the extraction stages together. Calendar may be nil, in
// which case the run has no context and syncs in dry-run mode.
type Pipeline struct {
	Extractor llm.Extractor
	Calendar  CalendarService
	Owner     string
	DryRun    bool
	Logger    *slog.Logger
}

// Result is everything one pipeline run produced.
type Result struct {
	Transcript      *transcript.Result      `json:"-"`
	Warnings        []string                `json:"warnings,omitempty"`
	CalendarContext calendar.Context        `json:"-"`
	Extraction      *model.ExtractionResult `json:"extraction"`
	Events          []model.ValidatedEvent  `json:"events"`
	Sync            calendar.SyncResult     `json:"sync"`
	Duration        time.Duration           `json:"duration"`
}

// Run executes the pipeline on raw transcript text. now anchors relative
// time resolution and the calendar context window.
func (p *Pipeline) Run(ctx context.Context, transcriptText string, now time.Time) (*Result, error) {
	log := logging.WithOperation(p.logger(), "pipeline")
	started := time.Now()

	parsed := transcript.Parse(transcriptText, "")
	if len(parsed.Utterances) == 0 {
		return nil, fmt.Errorf("transcript contains no utterances")
	}

	result := &Result{Transcript: parsed}
	for _, w := range parsed.Warnings {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("line %d: %s", w.LineNumber, w.Message))
	}

	if p.Calendar != nil {
		cc, err := p.Calendar.FetchContext(now)
		if err != nil {
			// The extraction still works without context, it just
			// loses update/delete references.
			log.Warn("calendar context unavailable", logging.Err(err))
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("calendar context unavailable: %v", err))
		} else {
			result.CalendarContext = cc
		}
	}

	extraction, err := p.Extractor.ExtractEvents(ctx, llm.ExtractRequest{
		Transcript:      prompt.FormatTranscript(parsed.Utterances),
		Owner:           p.Owner,
		Now:             now,
		CalendarContext: result.CalendarContext.EventsText,
	})
	if err != nil {
		return nil, fmt.Errorf("extraction failed: %w", err)
	}
	result.Extraction = extraction

	events, errs := model.ValidateAll(extraction.Events)
	for _, verr := range errs {
		log.Warn("event failed validation", logging.Err(verr))
		result.Warnings = append(result.Warnings, verr.Error())
	}
	result.Events = events

	dryRun := p.DryRun || p.Calendar == nil
	result.Sync = calendar.SyncEvents(ctx, p.Calendar, events, result.CalendarContext.IDMap, dryRun)

	result.Duration = time.Since(started)
	log.Info("pipeline complete",
		slog.Int("utterances", len(parsed.Utterances)),
		slog.Int("extracted", len(extraction.Events)),
		slog.Int("validated", len(events)),
		slog.Bool("dry_run", dryRun),
		logging.Duration(result.Duration))

	return result, nil
}

// RunFile executes the pipeline on a transcript file.
func (p *Pipeline) RunFile(ctx context.Context, path string, now time.Time) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read transcript: %w", err)
	}
	return p.Run(ctx, string(data), now)
}

func (p *Pipeline) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.Default()
}
