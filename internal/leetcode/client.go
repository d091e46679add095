package leetcode

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"leetfolio/internal"
	"leetfolio/internal/config"
)

// Client performs the structured submissionDetails query against the LeetCode
// GraphQL endpoint, authenticated by the ambient session cookie. Exactly one
// attempt per call: a failed request is reported, never repeated here.
type Client struct {
	cfg        config.Config
	httpClient *http.Client
	limiter    *rate.Limiter
}

// SubmissionDetails is the raw extraction tuple. No normalization happens
// here; title stripping and language mapping are the orchestrator's job.
type SubmissionDetails struct {
	Code      string
	Lang      string
	Title     string
	TitleSlug string
}

const submissionQuery = `query submissionDetails($submissionId: Int!) {
  submissionDetails(submissionId: $submissionId) {
    code
    lang { name }
    question { title titleSlug }
  }
}`

type gqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type gqlResponse struct {
	Data struct {
		SubmissionDetails *struct {
			Code string `json:"code"`
			Lang struct {
				Name string `json:"name"`
			} `json:"lang"`
			Question struct {
				Title     string `json:"title"`
				TitleSlug string `json:"titleSlug"`
			} `json:"question"`
		} `json:"submissionDetails"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

func NewClient(cfg config.Config) *Client {
	rps := cfg.RateLimitRPS
	if rps <= 0 {
		rps = 1
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: time.Duration(cfg.RequestTimeout) * time.Millisecond},
		limiter:    rate.NewLimiter(rate.Limit(rps), rps),
	}
}

func (c *Client) SubmissionDetails(ctx context.Context, submissionID string) (*SubmissionDetails, error) {
	id, err := strconv.Atoi(submissionID)
	if err != nil {
		return nil, internal.Failf(internal.KindInvalidInput, "submission id %q is not numeric", submissionID)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, internal.Failf(internal.KindNetworkError, "request cancelled: %v", err)
	}

	payload, _ := json.Marshal(gqlRequest{
		Query:     submissionQuery,
		Variables: map[string]any{"submissionId": id},
	})

	endpoint := strings.TrimRight(c.cfg.LeetCodeBaseURL, "/") + "/graphql"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, internal.Failf(internal.KindNetworkError, "build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set("Referer", endpoint)
	if c.cfg.CSRFToken != "" {
		req.Header.Set("X-CSRFToken", c.cfg.CSRFToken)
	}
	c.attachSession(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, internal.Failf(internal.KindNetworkError, "submission request failed: %v", err)
	}
	body, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return nil, internal.Failf(internal.KindNetworkError, "read response: %v", readErr)
	}

	if kind, ok := statusFailure(resp.StatusCode); ok {
		return nil, internal.Failf(kind, "submission query returned status %d", resp.StatusCode)
	}

	var decoded gqlResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, internal.Failf(internal.KindUpstreamError, "malformed response body: %v", err)
	}
	if len(decoded.Errors) > 0 {
		msgs := make([]string, 0, len(decoded.Errors))
		for _, e := range decoded.Errors {
			msgs = append(msgs, e.Message)
		}
		return nil, internal.Failf(internal.KindUpstreamError, "upstream errors: %s", strings.Join(msgs, "; "))
	}

	details := decoded.Data.SubmissionDetails
	if details == nil {
		return nil, internal.Failf(internal.KindMissingField, "response missing submissionDetails")
	}
	if details.Code == "" {
		return nil, internal.Failf(internal.KindMissingField, "response missing code")
	}
	if details.Question.Title == "" {
		return nil, internal.Failf(internal.KindMissingField, "response missing title")
	}
	if details.Lang.Name == "" {
		return nil, internal.Failf(internal.KindMissingField, "response missing lang")
	}

	return &SubmissionDetails{
		Code:      details.Code,
		Lang:      details.Lang.Name,
		Title:     details.Question.Title,
		TitleSlug: details.Question.TitleSlug,
	}, nil
}

func (c *Client) attachSession(req *http.Request) {
	if c.cfg.SessionCookie != "" {
		req.AddCookie(&http.Cookie{Name: "LEETCODE_SESSION", Value: c.cfg.SessionCookie})
	}
	if c.cfg.CSRFToken != "" {
		req.AddCookie(&http.Cookie{Name: "csrftoken", Value: c.cfg.CSRFToken})
	}
}

func statusFailure(status int) (internal.FailureKind, bool) {
	switch {
	case status >= 200 && status < 300:
		return "", false
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return internal.KindAuthRequired, true
	case status == http.StatusNotFound:
		return internal.KindNotFound, true
	case status == http.StatusTooManyRequests:
		return internal.KindRateLimited, true
	case status >= 500:
		return internal.KindUpstreamUnavailable, true
	default:
		return internal.KindUpstreamError, true
	}
}
