package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cucumber/godog"

	"github.com/arxivtools/paperbot/pkg/server/middleware"
)

// StepsContext holds state shared between step definitions
type StepsContext struct {
	tc           *TestContext
	response     *http.Response
	responseBody []byte
	authToken    string
}

// NewStepsContext creates a new steps context
func NewStepsContext(tc *TestContext) *StepsContext {
	return &StepsContext{tc: tc}
}

// RegisterSteps registers all step definitions
func (s *StepsContext) RegisterSteps(sc *godog.ScenarioContext) {
	// Scenarios share one StepsContext, so drop per-scenario state here
	sc.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		s.response = nil
		s.responseBody = nil
		s.authToken = ""
		return ctx, nil
	})

	// Background steps
	sc.Step(`^a paper bot server is running$`, s.aPaperBotServerIsRunning)
	sc.Step(`^no papers are stored$`, s.noPapersAreStored)
	sc.Step(`^no fetch runs are recorded$`, s.noFetchRunsAreRecorded)
	sc.Step(`^a stored paper "([^"]*)" titled "([^"]*)"$`, s.aStoredPaper)
	sc.Step(`^a completed fetch run for "([^"]*)" finding (\d+) papers$`, s.aCompletedFetchRun)
	sc.Step(`^the keywords are cleared$`, s.theKeywordsAreCleared)

	// Authentication steps
	sc.Step(`^I am authenticated$`, s.iAmAuthenticated)
	sc.Step(`^I am not authenticated$`, s.iAmNotAuthenticated)
	sc.Step(`^I use a token signed with the wrong secret$`, s.iUseATokenSignedWithTheWrongSecret)
	sc.Step(`^I use an expired token$`, s.iUseAnExpiredToken)
	sc.Step(`^I use a malformed token$`, s.iUseAMalformedToken)

	// Request steps
	sc.Step(`^I GET "([^"]*)"$`, s.iGET)
	sc.Step(`^I GET "([^"]*)" accepting HTML$`, s.iGETAcceptingHTML)
	sc.Step(`^I POST to "([^"]*)"$`, s.iPOSTTo)
	sc.Step(`^I PUT the keywords "([^"]*)"$`, s.iPUTTheKeywords)
	sc.Step(`^I submit the keywords form "([^"]*)"$`, s.iSubmitTheKeywordsForm)

	// Response steps
	sc.Step(`^the response status should be (\d+)$`, s.theResponseStatusShouldBe)
	sc.Step(`^the response should contain "([^"]*)"$`, s.theResponseShouldContain)
	sc.Step(`^the response should not contain "([^"]*)"$`, s.theResponseShouldNotContain)
	sc.Step(`^the content type should contain "([^"]*)"$`, s.theContentTypeShouldContain)
	sc.Step(`^the response header "([^"]*)" should be "([^"]*)"$`, s.theResponseHeaderShouldBe)
	sc.Step(`^the configured keywords should be "([^"]*)"$`, s.theConfiguredKeywordsShouldBe)
	sc.Step(`^the paper count should be (\d+)$`, s.thePaperCountShouldBe)
}

// Background steps

func (s *StepsContext) aPaperBotServerIsRunning() error {
	// Server is already running via TestContext
	return nil
}

func (s *StepsContext) noPapersAreStored() error {
	return s.tc.DB.Exec(`DELETE FROM papers`).Error
}

func (s *StepsContext) noFetchRunsAreRecorded() error {
	return s.tc.DB.Exec(`DELETE FROM fetch_runs`).Error
}

func (s *StepsContext) aStoredPaper(arxivID, title string) error {
	return s.tc.DB.Exec(`
		INSERT INTO papers (title, authors, summary, published, arxiv_url, pdf_url, arxiv_id)
		VALUES (?, 'Ada Lovelace, Alan Turing', 'An abstract for testing.', now(), ?, ?, ?)
		ON CONFLICT DO NOTHING
	`, title, "http://arxiv.org/abs/"+arxivID, "http://arxiv.org/pdf/"+arxivID, arxivID).Error
}

func (s *StepsContext) aCompletedFetchRun(keywords string, found int) error {
	return s.tc.DB.Exec(`
		INSERT INTO fetch_runs (keywords, "trigger", found, saved, skipped, status, started_at, finished_at)
		VALUES (?, 'api', ?, ?, 0, 'completed', now(), now())
	`, keywords, found, found).Error
}

// theKeywordsAreCleared empties the server's keyword list through the API, so
// later fetch triggers finish without ever reaching the arXiv client.
func (s *StepsContext) theKeywordsAreCleared() error {
	token, err := middleware.GenerateToken(APISecret, "godog-setup", time.Minute)
	if err != nil {
		return err
	}

	req, err := http.NewRequest("PUT", s.tc.ServerURL+"/keywords", strings.NewReader(`{"keywords":[]}`))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := s.tc.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("failed to clear keywords: %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

// Authentication steps

func (s *StepsContext) iAmAuthenticated() error {
	token, err := middleware.GenerateToken(APISecret, "godog", time.Hour)
	if err != nil {
		return err
	}
	s.authToken = token
	return nil
}

func (s *StepsContext) iAmNotAuthenticated() error {
	s.authToken = ""
	return nil
}

// Request steps

func (s *StepsContext) doRequest(req *http.Request) error {
	if s.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+s.authToken)
	}

	var err error
	s.response, err = s.tc.HTTPClient.Do(req)
	if err != nil {
		return err
	}

	s.responseBody, err = io.ReadAll(s.response.Body)
	_ = s.response.Body.Close()
	return err
}

func (s *StepsContext) iGET(path string) error {
	req, err := http.NewRequest("GET", s.tc.ServerURL+path, nil)
	if err != nil {
		return err
	}
	return s.doRequest(req)
}

func (s *StepsContext) iGETAcceptingHTML(path string) error {
	req, err := http.NewRequest("GET", s.tc.ServerURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "text/html")
	return s.doRequest(req)
}

func (s *StepsContext) iPOSTTo(path string) error {
	req, err := http.NewRequest("POST", s.tc.ServerURL+path, nil)
	if err != nil {
		return err
	}
	return s.doRequest(req)
}

func (s *StepsContext) iPUTTheKeywords(keywords string) error {
	payload, err := json.Marshal(map[string][]string{
		"keywords": splitKeywords(keywords),
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequest("PUT", s.tc.ServerURL+"/keywords", strings.NewReader(string(payload)))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return s.doRequest(req)
}

func (s *StepsContext) iSubmitTheKeywordsForm(keywords string) error {
	form := url.Values{"keywords": {keywords}}

	req, err := http.NewRequest("POST", s.tc.ServerURL+"/keywords", strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return s.doRequest(req)
}

// Response steps

func (s *StepsContext) theResponseStatusShouldBe(expectedStatus int) error {
	if s.response.StatusCode != expectedStatus {
		return fmt.Errorf("expected status %d, got %d: %s", expectedStatus, s.response.StatusCode, string(s.responseBody))
	}
	return nil
}

func (s *StepsContext) theResponseShouldContain(expected string) error {
	if !strings.Contains(string(s.responseBody), expected) {
		return fmt.Errorf("expected body to contain %q, got: %s", expected, string(s.responseBody))
	}
	return nil
}

func (s *StepsContext) theResponseShouldNotContain(unexpected string) error {
	if strings.Contains(string(s.responseBody), unexpected) {
		return fmt.Errorf("expected body to not contain %q, got: %s", unexpected, string(s.responseBody))
	}
	return nil
}

func (s *StepsContext) theContentTypeShouldContain(expected string) error {
	contentType := s.response.Header.Get("Content-Type")
	if !strings.Contains(contentType, expected) {
		return fmt.Errorf("expected content type to contain %q, got %q", expected, contentType)
	}
	return nil
}

func (s *StepsContext) theResponseHeaderShouldBe(header, expected string) error {
	actual := s.response.Header.Get(header)
	if actual != expected {
		return fmt.Errorf("expected header %s to be %q, got %q", header, expected, actual)
	}
	return nil
}

func (s *StepsContext) theConfiguredKeywordsShouldBe(expected string) error {
	req, err := http.NewRequest("GET", s.tc.ServerURL+"/keywords", nil)
	if err != nil {
		return err
	}
	if err := s.doRequest(req); err != nil {
		return err
	}

	var body struct {
		Keywords []string `json:"keywords"`
	}
	if err := json.Unmarshal(s.responseBody, &body); err != nil {
		return fmt.Errorf("failed to parse keywords response: %w", err)
	}

	actual := strings.Join(body.Keywords, ", ")
	if actual != expected {
		return fmt.Errorf("expected keywords %q, got %q", expected, actual)
	}
	return nil
}

func (s *StepsContext) thePaperCountShouldBe(expected int) error {
	var body struct {
		Count int64 `json:"count"`
	}
	if err := json.Unmarshal(s.responseBody, &body); err != nil {
		return fmt.Errorf("failed to parse count response: %w", err)
	}
	if body.Count != int64(expected) {
		return fmt.Errorf("expected count %d, got %d", expected, body.Count)
	}
	return nil
}

func splitKeywords(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
