package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "/etc/paperbot"
	ConfigFileName    = "paperbot.yml"
)

// MaxResultsLimit is the most entries the arXiv API returns in a single page.
const MaxResultsLimit = 2000

// BotConfig holds all paper bot configuration settings
type BotConfig struct {
	// Keywords is the list of search terms for the arXiv query
	Keywords []string `yaml:"keywords" json:"keywords"`

	// MaxResults is the maximum number of papers fetched per run
	MaxResults int `yaml:"max_results" json:"max_results"`

	// PollIntervalHours is the sleep between fetch runs, in hours
	PollIntervalHours float64 `yaml:"poll_interval_hours" json:"poll_interval_hours"`

	// ExportPath is the default CSV export destination
	ExportPath string `yaml:"export_path" json:"export_path"`

	// AirtableEnabled mirrors saved papers to Airtable when credentials are set
	AirtableEnabled bool `yaml:"airtable_enabled" json:"airtable_enabled"`

	// DigestTitle is the heading used for generated Markdown digests
	DigestTitle string `yaml:"digest_title" json:"digest_title"`

	// sources records which layer won for each attribute
	sources map[string]string

	// configFilePath is the yaml file this config was read from
	configFilePath string
}

// Attribute is one row of configuration show output
type Attribute struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

// Process-wide config, guarded by configMu
var (
	globalConfig *BotConfig
	configMu     sync.RWMutex
)

// Get hands back the process-wide configuration, loading it on first use
func Get() *BotConfig {
	configMu.RLock()
	if globalConfig != nil {
		configMu.RUnlock()
		return globalConfig
	}
	configMu.RUnlock()

	configMu.Lock()
	defer configMu.Unlock()

	if globalConfig == nil {
		cfg, err := Load()
		if err != nil {
			// unreadable config, run on defaults
			globalConfig = newDefault()
		} else {
			globalConfig = cfg
		}
	}
	return globalConfig
}

// Reload re-reads file and environment and swaps the process-wide config
func Reload() error {
	cfg, err := Load()
	if err != nil {
		return err
	}

	configMu.Lock()
	globalConfig = cfg
	configMu.Unlock()
	return nil
}

// newDefault carries the built-in defaults
func newDefault() *BotConfig {
	return &BotConfig{
		Keywords:          []string{},
		MaxResults:        10,
		PollIntervalHours: 4,
		ExportPath:        "logged_papers.csv",
		AirtableEnabled:   true,
		DigestTitle:       "arXiv Paper Digest",
		sources:           make(map[string]string),
	}
}

// fileValues mirrors the config file with pointer fields so absent keys
// can be told apart from zero values.
type fileValues struct {
	Keywords          []string `yaml:"keywords"`
	MaxResults        *int     `yaml:"max_results"`
	PollIntervalHours *float64 `yaml:"poll_interval_hours"`
	ExportPath        *string  `yaml:"export_path"`
	AirtableEnabled   *bool    `yaml:"airtable_enabled"`
	DigestTitle       *string  `yaml:"digest_title"`
}

// Load builds a config from three layers: built-in defaults, then the
// yaml file, then PAPERBOT_* environment overrides.
func Load() (*BotConfig, error) {
	config := newDefault()

	for _, name := range attributeNames() {
		config.sources[name] = "default"
	}

	configPath := os.Getenv("PAPERBOT_CONFIG_PATH")
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	config.configFilePath = filepath.Join(configPath, ConfigFileName)

	// A missing file is fine, defaults and env still apply
	if data, err := os.ReadFile(config.configFilePath); err == nil {
		var fileConfig fileValues
		if err := yaml.Unmarshal(data, &fileConfig); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", config.configFilePath, err)
		}
		config.applyFileConfig(&fileConfig)
	}

	config.applyEnvConfig()

	return config, nil
}

func attributeNames() []string {
	return []string{
		"keywords", "max_results", "poll_interval_hours", "export_path",
		"airtable_enabled", "digest_title",
	}
}

func (c *BotConfig) applyFileConfig(file *fileValues) {
	if len(file.Keywords) > 0 {
		c.Keywords = file.Keywords
		c.sources["keywords"] = "file"
	}
	if file.MaxResults != nil {
		c.MaxResults = *file.MaxResults
		c.sources["max_results"] = "file"
	}
	if file.PollIntervalHours != nil {
		c.PollIntervalHours = *file.PollIntervalHours
		c.sources["poll_interval_hours"] = "file"
	}
	if file.ExportPath != nil {
		c.ExportPath = *file.ExportPath
		c.sources["export_path"] = "file"
	}
	if file.AirtableEnabled != nil {
		c.AirtableEnabled = *file.AirtableEnabled
		c.sources["airtable_enabled"] = "file"
	}
	if file.DigestTitle != nil {
		c.DigestTitle = *file.DigestTitle
		c.sources["digest_title"] = "file"
	}
}

func (c *BotConfig) applyEnvConfig() {
	if val := os.Getenv("PAPERBOT_KEYWORDS"); val != "" {
		c.Keywords = splitAndTrim(val)
		c.sources["keywords"] = "environment"
	}
	if val := os.Getenv("PAPERBOT_MAX_RESULTS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.MaxResults = i
			c.sources["max_results"] = "environment"
		}
	}
	if val := os.Getenv("PAPERBOT_POLL_INTERVAL_HOURS"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			c.PollIntervalHours = f
			c.sources["poll_interval_hours"] = "environment"
		}
	}
	if val := os.Getenv("PAPERBOT_EXPORT_PATH"); val != "" {
		c.ExportPath = val
		c.sources["export_path"] = "environment"
	}
	if val := os.Getenv("PAPERBOT_AIRTABLE_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			c.AirtableEnabled = b
			c.sources["airtable_enabled"] = "environment"
		}
	}
	if val := os.Getenv("PAPERBOT_DIGEST_TITLE"); val != "" {
		c.DigestTitle = val
		c.sources["digest_title"] = "environment"
	}
}

// ConfigFilePath returns the yaml file location this config came from
func (c *BotConfig) ConfigFilePath() string {
	return c.configFilePath
}

// Source names the layer that set an attribute: default, file, or environment
func (c *BotConfig) Source(name string) string {
	if c.sources == nil {
		return "default"
	}
	if s, ok := c.sources[name]; ok {
		return s
	}
	return "default"
}

// PollInterval returns the sleep between fetch runs as a duration
func (c *BotConfig) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalHours * float64(time.Hour))
}

// SetKeywords updates the keywords and persists them to the config file.
// Other keys already present in the file are preserved.
func (c *BotConfig) SetKeywords(keywords []string) error {
	cleaned := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if kw = strings.TrimSpace(kw); kw != "" {
			cleaned = append(cleaned, kw)
		}
	}

	// Read the existing file into a generic map so unknown keys survive
	fileConfig := map[string]any{}
	if data, err := os.ReadFile(c.configFilePath); err == nil {
		if err := yaml.Unmarshal(data, &fileConfig); err != nil {
			return fmt.Errorf("failed to parse config file %s: %w", c.configFilePath, err)
		}
	}
	fileConfig["keywords"] = cleaned

	data, err := yaml.Marshal(fileConfig)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if dir := filepath.Dir(c.configFilePath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	if err := os.WriteFile(c.configFilePath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", c.configFilePath, err)
	}

	configMu.Lock()
	c.Keywords = cleaned
	if c.sources != nil {
		c.sources["keywords"] = "file"
	}
	configMu.Unlock()
	return nil
}

// Validate rejects values the fetcher cannot run with
func (c *BotConfig) Validate() error {
	if c.MaxResults < 1 {
		return fmt.Errorf("max_results must be at least 1, got %d", c.MaxResults)
	}
	if c.MaxResults > MaxResultsLimit {
		return fmt.Errorf("max_results must be at most %d, got %d", MaxResultsLimit, c.MaxResults)
	}
	if c.PollIntervalHours <= 0 {
		return fmt.Errorf("poll_interval_hours must be positive, got %v", c.PollIntervalHours)
	}
	for _, kw := range c.Keywords {
		if strings.TrimSpace(kw) == "" {
			return fmt.Errorf("keywords must not contain empty entries")
		}
	}
	return nil
}

// Attributes lists every attribute with its effective value and source
func (c *BotConfig) Attributes() []Attribute {
	return []Attribute{
		{Name: "keywords", Value: strings.Join(c.Keywords, ","), Source: c.Source("keywords")},
		{Name: "max_results", Value: strconv.Itoa(c.MaxResults), Source: c.Source("max_results")},
		{Name: "poll_interval_hours", Value: strconv.FormatFloat(c.PollIntervalHours, 'f', -1, 64), Source: c.Source("poll_interval_hours")},
		{Name: "export_path", Value: c.ExportPath, Source: c.Source("export_path")},
		{Name: "airtable_enabled", Value: strconv.FormatBool(c.AirtableEnabled), Source: c.Source("airtable_enabled")},
		{Name: "digest_title", Value: c.DigestTitle, Source: c.Source("digest_title")},
	}
}

// FormatText renders the attribute table shown by configuration show
func (c *BotConfig) FormatText() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Config file: %s\n\n", c.configFilePath)
	fmt.Fprintf(&sb, "%-22s %-32s %s\n", "NAME", "VALUE", "SOURCE")
	fmt.Fprintf(&sb, "%-22s %-32s %s\n", "----", "-----", "------")

	for _, attr := range c.Attributes() {
		value := attr.Value
		if value == "" {
			value = "(not set)"
		}
		fmt.Fprintf(&sb, "%-22s %-32s %s\n", attr.Name, value, attr.Source)
	}
	return sb.String()
}

// FormatJSON renders the same attribute listing as JSON
func (c *BotConfig) FormatJSON() (string, error) {
	data, err := json.MarshalIndent(map[string]any{
		"config_file": c.configFilePath,
		"attributes":  c.Attributes(),
	}, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func splitAndTrim(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
