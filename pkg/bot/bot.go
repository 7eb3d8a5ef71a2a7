package bot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/arxivtools/paperbot/pkg/activity"
	"github.com/arxivtools/paperbot/pkg/airtable"
	"github.com/arxivtools/paperbot/pkg/arxiv"
	"github.com/arxivtools/paperbot/pkg/config"
	"github.com/arxivtools/paperbot/pkg/export"
	"github.com/arxivtools/paperbot/pkg/server/store"
)

// Triggers recorded with each fetch run.
const (
	TriggerSchedule = "schedule"
	TriggerAPI      = "api"
	TriggerCLI      = "cli"
)

var (
	// ErrNoKeywords is returned when the configuration has no search keywords
	ErrNoKeywords = errors.New("no keywords configured")

	// ErrRunInProgress is returned by Trigger while a fetch pass is running
	ErrRunInProgress = errors.New("a fetch run is already in progress")
)

// Result summarizes one fetch pass.
type Result struct {
	RunID   uint
	Found   int
	Saved   int
	Skipped int
}

// Bot queries arXiv for papers matching the configured keywords and
// stores the ones it hasn't seen before.
type Bot struct {
	papers   store.PapersStore
	runs     store.RunsStore
	client   *arxiv.Client
	airtable *airtable.Client
	csvPath  string

	// runMu serializes fetch passes
	runMu sync.Mutex
}

// New creates a bot. A nil client gets the default arXiv client.
func New(papers store.PapersStore, runs store.RunsStore, client *arxiv.Client) *Bot {
	if client == nil {
		client = arxiv.NewClient()
	}
	return &Bot{
		papers: papers,
		runs:   runs,
		client: client,
	}
}

// SetAirtable attaches an Airtable mirror. Saved papers are pushed there
// best-effort, the database copy stays authoritative.
func (b *Bot) SetAirtable(client *airtable.Client) {
	b.airtable = client
}

// SetCSVFallback appends saved papers to the CSV at path whenever no
// Airtable mirror is attached.
func (b *Bot) SetCSVFallback(path string) {
	b.csvPath = path
}

// RunOnce performs a single fetch pass, waiting for any in-flight pass
// to finish first.
func (b *Bot) RunOnce(ctx context.Context, trigger string) (*Result, error) {
	b.runMu.Lock()
	defer b.runMu.Unlock()
	return b.runOnce(ctx, trigger)
}

// Trigger starts a fetch pass in the background.
// Returns ErrRunInProgress if one is already running.
func (b *Bot) Trigger(ctx context.Context, trigger string) error {
	if !b.runMu.TryLock() {
		return ErrRunInProgress
	}

	go func() {
		defer b.runMu.Unlock()
		if _, err := b.runOnce(ctx, trigger); err != nil {
			log.Printf("triggered fetch run failed: %v", err)
		}
	}()
	return nil
}

// Run fetches on the configured poll interval until ctx is cancelled.
// Errors from individual passes are logged and the loop keeps going.
func (b *Bot) Run(ctx context.Context) error {
	for {
		if _, err := b.RunOnce(ctx, TriggerSchedule); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Printf("fetch run failed: %v", err)
		}

		interval := config.Get().PollInterval()
		log.Printf("sleeping for %s, next run around %s",
			interval, time.Now().Add(interval).Format("2006-01-02 15:04:05"))

		timer := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			if !timer.Stop() {
				<-timer.C
			}
			return ctx.Err()
		case <-timer.C:
		}
	}
}

func (b *Bot) runOnce(ctx context.Context, trigger string) (*Result, error) {
	cfg := config.Get()
	if len(cfg.Keywords) == 0 {
		return nil, ErrNoKeywords
	}
	keywordList := strings.Join(cfg.Keywords, ", ")

	run, err := b.runs.StartRun(keywordList, trigger)
	if err != nil {
		return nil, fmt.Errorf("failed to record fetch run: %w", err)
	}

	timer := prometheus.NewTimer(prometheus.ObserverFunc(fetchDuration.Set))
	defer timer.ObserveDuration()

	log.Printf("searching arXiv for %q (max results: %d)", keywordList, cfg.MaxResults)

	feed, err := b.client.Search(ctx, arxiv.Query{
		SearchQuery: arxiv.BuildQuery(cfg.Keywords),
		MaxResults:  cfg.MaxResults,
		SortBy:      arxiv.SortBySubmittedDate,
		SortOrder:   arxiv.SortOrderDescending,
	})
	if err != nil {
		b.finishRun(run.ID, &Result{RunID: run.ID}, err, keywordList, trigger)
		return nil, err
	}

	result := &Result{RunID: run.ID, Found: len(feed.Entries)}
	log.Printf("found %d potential new papers", result.Found)

	for _, entry := range feed.Entries {
		if ctx.Err() != nil {
			b.finishRun(run.ID, result, ctx.Err(), keywordList, trigger)
			return result, ctx.Err()
		}

		saved, err := b.savePaper(ctx, entry)
		switch {
		case err != nil:
			log.Printf("failed to save paper %s: %v", entry.ShortID(), err)
		case saved:
			result.Saved++
		default:
			result.Skipped++
		}
	}

	b.finishRun(run.ID, result, nil, keywordList, trigger)
	log.Printf("logged %d new papers in this run", result.Saved)
	return result, nil
}

func (b *Bot) savePaper(ctx context.Context, entry arxiv.Entry) (bool, error) {
	paper := &store.Paper{
		Title:     entry.Title,
		Authors:   strings.Join(entry.Authors, ", "),
		Summary:   entry.Summary,
		Published: entry.Published,
		ArxivURL:  entry.ID,
		PDFURL:    entry.PDFURL,
		ArxivID:   entry.ShortID(),
	}

	err := b.papers.SavePaper(paper)
	switch {
	case errors.Is(err, store.ErrPaperExists):
		papersSkipped.Inc()
		activity.Log(activity.PaperEvent{ArxivID: paper.ArxivID, Title: paper.Title, Duplicate: true})
		return false, nil
	case err != nil:
		return false, err
	}

	papersSaved.Inc()
	activity.Log(activity.PaperEvent{ArxivID: paper.ArxivID, Title: paper.Title})

	if b.airtable != nil {
		b.mirrorToAirtable(ctx, paper)
	} else if b.csvPath != "" {
		b.appendToCSV(paper)
	}
	return true, nil
}

// mirrorToAirtable pushes a saved paper to Airtable. Failures are logged
// and otherwise ignored.
func (b *Bot) mirrorToAirtable(ctx context.Context, paper *store.Paper) {
	exists, err := b.airtable.RecordExists(ctx, "ArXiv ID", paper.ArxivID)
	if err != nil {
		log.Printf("airtable check failed for %s: %v", paper.ArxivID, err)
		return
	}
	if exists {
		return
	}

	fields := map[string]any{
		"Title":          paper.Title,
		"Authors":        paper.Authors,
		"Published Date": paper.Published.Format("2006-01-02 15:04:05"),
		"Summary":        paper.Summary,
		"ArXiv URL":      paper.ArxivURL,
		"PDF URL":        paper.PDFURL,
		"ArXiv ID":       paper.ArxivID,
		"Timestamp":      time.Now().Format(time.RFC3339),
	}
	if _, err := b.airtable.CreateRecord(ctx, fields); err != nil {
		log.Printf("airtable create failed for %s: %v", paper.ArxivID, err)
	}
}

func (b *Bot) appendToCSV(paper *store.Paper) {
	if _, err := export.Append(b.csvPath, []store.Paper{*paper}); err != nil {
		log.Printf("csv fallback failed for %s: %v", paper.ArxivID, err)
	}
}

func (b *Bot) finishRun(id uint, result *Result, runErr error, keywords, trigger string) {
	if err := b.runs.FinishRun(id, result.Found, result.Saved, result.Skipped, runErr); err != nil {
		log.Printf("failed to finish fetch run %d: %v", id, err)
	}

	event := activity.RunEvent{
		RunID:    id,
		Keywords: keywords,
		Found:    result.Found,
		Saved:    result.Saved,
		Skipped:  result.Skipped,
		Trigger:  trigger,
		Success:  runErr == nil,
	}
	if runErr != nil {
		event.ErrorMessage = runErr.Error()
		fetchRuns.WithLabelValues("failed").Inc()
	} else {
		fetchRuns.WithLabelValues("completed").Inc()
	}
	activity.Log(event)
}
