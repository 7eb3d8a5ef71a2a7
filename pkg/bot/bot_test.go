package bot_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arxivtools/paperbot/pkg/airtable"
	"github.com/arxivtools/paperbot/pkg/arxiv"
	"github.com/arxivtools/paperbot/pkg/bot"
	"github.com/arxivtools/paperbot/pkg/config"
	"github.com/arxivtools/paperbot/pkg/model"
	"github.com/arxivtools/paperbot/pkg/server/store"
)

const testFeed = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom" xmlns:opensearch="http://a9.com/-/spec/opensearch/1.1/">
  <opensearch:totalResults>2</opensearch:totalResults>
  <entry>
    <id>http://arxiv.org/abs/2408.01234v1</id>
    <title>Retrieval-Augmented Generation for Large Language Models</title>
    <summary>A survey of RAG techniques.</summary>
    <published>2024-08-01T09:30:00Z</published>
    <updated>2024-08-01T09:30:00Z</updated>
    <author><name>Yunfan Gao</name></author>
    <author><name>Yun Xiong</name></author>
    <link href="http://arxiv.org/abs/2408.01234v1" rel="alternate" type="text/html"/>
    <link title="pdf" href="http://arxiv.org/pdf/2408.01234v1" rel="related" type="application/pdf"/>
  </entry>
  <entry>
    <id>http://arxiv.org/abs/2408.05678v2</id>
    <title>Planning with Language Agents</title>
    <summary>Agents that plan.</summary>
    <published>2024-08-03T14:00:00Z</published>
    <updated>2024-08-03T14:00:00Z</updated>
    <author><name>Ada Lovelace</name></author>
    <link title="pdf" href="http://arxiv.org/pdf/2408.05678v2" rel="related" type="application/pdf"/>
  </entry>
</feed>`

// fakePapers is an in-memory PapersStore.
type fakePapers struct {
	mu     sync.Mutex
	papers []store.Paper
	nextID uint
}

func (f *fakePapers) SavePaper(p *store.Paper) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, existing := range f.papers {
		if existing.ArxivID == p.ArxivID || existing.ArxivURL == p.ArxivURL {
			return store.ErrPaperExists
		}
	}

	f.nextID++
	p.ID = f.nextID
	p.CreatedAt = time.Now()
	f.papers = append(f.papers, *p)
	return nil
}

func (f *fakePapers) ListPapers(search string, limit, offset int) ([]store.Paper, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	papers := make([]store.Paper, 0, len(f.papers))
	for _, p := range f.papers {
		if search != "" && !strings.Contains(strings.ToLower(p.Title+p.Authors+p.Summary), strings.ToLower(search)) {
			continue
		}
		papers = append(papers, p)
	}
	sort.Slice(papers, func(i, j int) bool { return papers[i].Published.After(papers[j].Published) })
	if offset > len(papers) {
		offset = len(papers)
	}
	papers = papers[offset:]
	if limit > 0 && len(papers) > limit {
		papers = papers[:limit]
	}
	return papers, nil
}

func (f *fakePapers) FetchPaper(arxivID string) (*store.Paper, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.papers {
		if f.papers[i].ArxivID == arxivID {
			paper := f.papers[i]
			return &paper, nil
		}
	}
	return nil, store.ErrPaperNotFound
}

func (f *fakePapers) CountPapers(search string) (int64, error) {
	papers, err := f.ListPapers(search, 0, 0)
	if err != nil {
		return 0, err
	}
	return int64(len(papers)), nil
}

// fakeRuns is an in-memory RunsStore.
type fakeRuns struct {
	mu   sync.Mutex
	runs []store.FetchRun
}

func (f *fakeRuns) StartRun(keywords, trigger string) (*store.FetchRun, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	run := store.FetchRun{
		ID:        uint(len(f.runs) + 1),
		Keywords:  keywords,
		Trigger:   trigger,
		Status:    model.RunStatusRunning,
		StartedAt: time.Now(),
	}
	f.runs = append(f.runs, run)
	return &run, nil
}

func (f *fakeRuns) FinishRun(id uint, found, saved, skipped int, runErr error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.runs {
		if f.runs[i].ID != id {
			continue
		}
		now := time.Now()
		f.runs[i].Found = found
		f.runs[i].Saved = saved
		f.runs[i].Skipped = skipped
		f.runs[i].FinishedAt = &now
		if runErr != nil {
			f.runs[i].Status = model.RunStatusFailed
			f.runs[i].Error = runErr.Error()
		} else {
			f.runs[i].Status = model.RunStatusCompleted
		}
		return nil
	}
	return store.ErrRunNotFound
}

func (f *fakeRuns) ListRuns(limit int) ([]store.FetchRun, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	runs := make([]store.FetchRun, len(f.runs))
	copy(runs, f.runs)
	sort.Slice(runs, func(i, j int) bool { return runs[i].StartedAt.After(runs[j].StartedAt) })
	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

func (f *fakeRuns) LastRun() (*store.FetchRun, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.runs) == 0 {
		return nil, store.ErrRunNotFound
	}
	run := f.runs[len(f.runs)-1]
	return &run, nil
}

func setupConfig(t *testing.T, keywords string) {
	t.Helper()
	t.Setenv("PAPERBOT_CONFIG_PATH", t.TempDir())
	t.Setenv("PAPERBOT_KEYWORDS", keywords)
	require.NoError(t, config.Reload())
}

func arxivClient(t *testing.T, handler http.HandlerFunc) *arxiv.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := arxiv.NewClientWithRetry(1, time.Millisecond)
	client.BaseURL = server.URL
	return client
}

func TestRunOnce(t *testing.T) {
	setupConfig(t, "RAG, agents")

	client := arxivClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "all:RAG OR all:agents", r.URL.Query().Get("search_query"))
		fmt.Fprint(w, testFeed)
	})

	papers := &fakePapers{}
	runs := &fakeRuns{}
	b := bot.New(papers, runs, client)

	result, err := b.RunOnce(context.Background(), bot.TriggerCLI)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Found)
	assert.Equal(t, 2, result.Saved)
	assert.Equal(t, 0, result.Skipped)

	count, err := papers.CountPapers("")
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	saved, err := papers.FetchPaper("2408.01234v1")
	require.NoError(t, err)
	assert.Equal(t, "Retrieval-Augmented Generation for Large Language Models", saved.Title)
	assert.Equal(t, "Yunfan Gao, Yun Xiong", saved.Authors)
	assert.Equal(t, "http://arxiv.org/pdf/2408.01234v1", saved.PDFURL)

	run, err := runs.LastRun()
	require.NoError(t, err)
	assert.Equal(t, model.RunStatusCompleted, run.Status)
	assert.Equal(t, bot.TriggerCLI, run.Trigger)
	assert.Equal(t, 2, run.Found)
	assert.Equal(t, 2, run.Saved)
	assert.NotNil(t, run.FinishedAt)
}

func TestRunOnceSkipsDuplicates(t *testing.T) {
	setupConfig(t, "RAG")

	client := arxivClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, testFeed)
	})

	papers := &fakePapers{}
	require.NoError(t, papers.SavePaper(&store.Paper{
		Title:    "Retrieval-Augmented Generation for Large Language Models",
		ArxivURL: "http://arxiv.org/abs/2408.01234v1",
		ArxivID:  "2408.01234v1",
	}))

	b := bot.New(papers, &fakeRuns{}, client)

	result, err := b.RunOnce(context.Background(), bot.TriggerCLI)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Found)
	assert.Equal(t, 1, result.Saved)
	assert.Equal(t, 1, result.Skipped)
}

func TestRunOnceNoKeywords(t *testing.T) {
	setupConfig(t, "")

	runs := &fakeRuns{}
	b := bot.New(&fakePapers{}, runs, arxiv.NewClient())

	_, err := b.RunOnce(context.Background(), bot.TriggerCLI)
	assert.ErrorIs(t, err, bot.ErrNoKeywords)

	_, err = runs.LastRun()
	assert.ErrorIs(t, err, store.ErrRunNotFound)
}

func TestRunOnceSearchError(t *testing.T) {
	setupConfig(t, "RAG")

	client := arxivClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})

	runs := &fakeRuns{}
	b := bot.New(&fakePapers{}, runs, client)

	_, err := b.RunOnce(context.Background(), bot.TriggerCLI)
	require.Error(t, err)

	run, err := runs.LastRun()
	require.NoError(t, err)
	assert.Equal(t, model.RunStatusFailed, run.Status)
	assert.Contains(t, run.Error, "400")
}

func TestRunOnceMirrorsToAirtable(t *testing.T) {
	setupConfig(t, "RAG")

	client := arxivClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, testFeed)
	})

	var mu sync.Mutex
	var created int
	airtableServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		switch r.Method {
		case http.MethodGet:
			fmt.Fprint(w, `{"records": []}`)
		case http.MethodPost:
			created++
			fmt.Fprint(w, `{"id": "rec123", "fields": {}}`)
		}
	}))
	defer airtableServer.Close()

	mirror, err := airtable.NewClient("tok", "appBase", "Papers")
	require.NoError(t, err)
	mirror.BaseURL = airtableServer.URL
	mirror.SetRetry(1, time.Millisecond)

	b := bot.New(&fakePapers{}, &fakeRuns{}, client)
	b.SetAirtable(mirror)

	result, err := b.RunOnce(context.Background(), bot.TriggerCLI)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Saved)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 2, created)
}

func TestRunOnceFallsBackToCSV(t *testing.T) {
	setupConfig(t, "RAG")

	client := arxivClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, testFeed)
	})

	path := filepath.Join(t.TempDir(), "logged_papers.csv")
	b := bot.New(&fakePapers{}, &fakeRuns{}, client)
	b.SetCSVFallback(path)

	result, err := b.RunOnce(context.Background(), bot.TriggerCLI)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Saved)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "Title,Authors"))
	assert.Contains(t, lines[1], "Retrieval-Augmented Generation for Large Language Models")
	assert.Contains(t, lines[2], "Planning with Language Agents")

	// A second run finds only duplicates, so the file must not grow.
	result, err = b.RunOnce(context.Background(), bot.TriggerCLI)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Saved)

	again, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, data, again)
}

func TestTriggerWhileRunning(t *testing.T) {
	setupConfig(t, "RAG")

	release := make(chan struct{})
	client := arxivClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-release
		fmt.Fprint(w, testFeed)
	})

	runs := &fakeRuns{}
	b := bot.New(&fakePapers{}, runs, client)

	require.NoError(t, b.Trigger(context.Background(), bot.TriggerAPI))
	assert.ErrorIs(t, b.Trigger(context.Background(), bot.TriggerAPI), bot.ErrRunInProgress)

	close(release)

	assert.Eventually(t, func() bool {
		run, err := runs.LastRun()
		return err == nil && run.Status == model.RunStatusCompleted
	}, 2*time.Second, 10*time.Millisecond)
}

func TestWatchConfigReloads(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PAPERBOT_CONFIG_PATH", dir)
	t.Setenv("PAPERBOT_KEYWORDS", "")

	path := filepath.Join(dir, config.ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("keywords: [RAG]\n"), 0o644))
	require.NoError(t, config.Reload())
	require.Equal(t, []string{"RAG"}, config.Get().Keywords)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- bot.WatchConfig(ctx, path) }()

	// Give the watcher a moment to register before writing
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("keywords: [RAG, agents]\n"), 0o644))

	assert.Eventually(t, func() bool {
		return len(config.Get().Keywords) == 2
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.True(t, errors.Is(err, context.Canceled))
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatchConfigPicksUpLateFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PAPERBOT_CONFIG_PATH", dir)
	t.Setenv("PAPERBOT_KEYWORDS", "")
	require.NoError(t, config.Reload())
	require.Empty(t, config.Get().Keywords)

	// The config file does not exist yet when the watch starts
	path := filepath.Join(dir, config.ConfigFileName)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = bot.WatchConfig(ctx, path) }()

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("keywords: [world models]\n"), 0o644))

	assert.Eventually(t, func() bool {
		return len(config.Get().Keywords) == 1
	}, 2*time.Second, 10*time.Millisecond)
}
