package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PAPERBOT_CONFIG_PATH", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Empty(t, cfg.Keywords)
	assert.Equal(t, 10, cfg.MaxResults)
	assert.Equal(t, 4.0, cfg.PollIntervalHours)
	assert.Equal(t, "logged_papers.csv", cfg.ExportPath)
	assert.True(t, cfg.AirtableEnabled)
	assert.Equal(t, "arXiv Paper Digest", cfg.DigestTitle)
	assert.Equal(t, "default", cfg.Source("keywords"))
	assert.Equal(t, "default", cfg.Source("max_results"))
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PAPERBOT_CONFIG_PATH", dir)

	content := `keywords:
  - RAG
  - agents
max_results: 25
poll_interval_hours: 0.5
airtable_enabled: false
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"RAG", "agents"}, cfg.Keywords)
	assert.Equal(t, 25, cfg.MaxResults)
	assert.Equal(t, 0.5, cfg.PollIntervalHours)
	assert.False(t, cfg.AirtableEnabled)
	assert.Equal(t, "file", cfg.Source("keywords"))
	assert.Equal(t, "file", cfg.Source("max_results"))
	assert.Equal(t, "file", cfg.Source("airtable_enabled"))
	assert.Equal(t, "default", cfg.Source("export_path"))
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PAPERBOT_CONFIG_PATH", dir)
	t.Setenv("PAPERBOT_KEYWORDS", "diffusion, world models")
	t.Setenv("PAPERBOT_MAX_RESULTS", "50")

	content := "keywords: [RAG]\nmax_results: 25\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"diffusion", "world models"}, cfg.Keywords)
	assert.Equal(t, 50, cfg.MaxResults)
	assert.Equal(t, "environment", cfg.Source("keywords"))
	assert.Equal(t, "environment", cfg.Source("max_results"))
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PAPERBOT_CONFIG_PATH", dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("keywords: ["), 0o644))

	_, err := Load()
	assert.Error(t, err)
}

func TestSetKeywordsPersists(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PAPERBOT_CONFIG_PATH", dir)

	content := "keywords: [RAG]\nmax_results: 25\n"
	path := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	require.NoError(t, cfg.SetKeywords([]string{" agents ", "", "world models"}))
	assert.Equal(t, []string{"agents", "world models"}, cfg.Keywords)

	// Other keys in the file survive the rewrite
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var onDisk map[string]any
	require.NoError(t, yaml.Unmarshal(data, &onDisk))
	assert.Equal(t, 25, onDisk["max_results"])
	assert.ElementsMatch(t, []any{"agents", "world models"}, onDisk["keywords"])

	// A fresh Load picks up the new keywords
	reloaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"agents", "world models"}, reloaded.Keywords)
}

func TestSetKeywordsCreatesFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PAPERBOT_CONFIG_PATH", filepath.Join(dir, "nested"))

	cfg, err := Load()
	require.NoError(t, err)

	require.NoError(t, cfg.SetKeywords([]string{"RAG"}))

	_, err = os.Stat(cfg.ConfigFilePath())
	assert.NoError(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*BotConfig)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(c *BotConfig) {},
		},
		{
			name:    "zero max_results",
			mutate:  func(c *BotConfig) { c.MaxResults = 0 },
			wantErr: "max_results",
		},
		{
			name:    "max_results over API page limit",
			mutate:  func(c *BotConfig) { c.MaxResults = MaxResultsLimit + 1 },
			wantErr: "max_results",
		},
		{
			name:    "negative poll interval",
			mutate:  func(c *BotConfig) { c.PollIntervalHours = -1 },
			wantErr: "poll_interval_hours",
		},
		{
			name:    "blank keyword",
			mutate:  func(c *BotConfig) { c.Keywords = []string{"RAG", "  "} },
			wantErr: "empty entries",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := newDefault()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestPollInterval(t *testing.T) {
	cfg := newDefault()
	cfg.PollIntervalHours = 0.5

	assert.Equal(t, "30m0s", cfg.PollInterval().String())
}

func TestFormatText(t *testing.T) {
	t.Setenv("PAPERBOT_CONFIG_PATH", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	out := cfg.FormatText()
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "SOURCE")
	assert.Contains(t, out, "max_results")
	assert.Contains(t, out, "(not set)") // keywords default to empty
}

func TestFormatJSON(t *testing.T) {
	t.Setenv("PAPERBOT_CONFIG_PATH", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	out, err := cfg.FormatJSON()
	require.NoError(t, err)
	assert.Contains(t, out, `"config_file"`)
	assert.Contains(t, out, `"poll_interval_hours"`)
}

func TestSplitAndTrim(t *testing.T) {
	got := splitAndTrim(" RAG , , world models,agents ")
	assert.Equal(t, []string{"RAG", "world models", "agents"}, got)
}

func TestReloadSwapsGlobal(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PAPERBOT_CONFIG_PATH", dir)

	require.NoError(t, Reload())
	first := Get()
	assert.Empty(t, first.Keywords)

	content := "keywords: [RAG]\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0o644))

	require.NoError(t, Reload())
	assert.Equal(t, []string{"RAG"}, Get().Keywords)
	assert.True(t, strings.HasSuffix(Get().ConfigFilePath(), ConfigFileName))
}
