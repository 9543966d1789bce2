// Package report fetches fight listings from the combat-log
// analytics service and converts them into pull entries.
package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/raidmarks/backend/internal/models"
)

var (
	// ErrInvalidURL reports a report URL without a usable report ID.
	ErrInvalidURL = errors.New("invalid report url")
	// ErrRemote reports a network or service failure.
	ErrRemote = errors.New("remote report service failed")
	// ErrEmptyReport reports a fight listing with no fights at all.
	ErrEmptyReport = errors.New("report contains no fights")
)

// Client talks to the combat-log service's report endpoint. The API
// key is fixed per deployment.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient constructs a report client. An empty timeout defaults to
// 25 seconds.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 25 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ExtractReportID pulls the report identifier out of a user-supplied
// report URL: the path segment following "reports/".
func ExtractReportID(rawURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i, seg := range segments {
		if seg == "reports" && i+1 < len(segments) && segments[i+1] != "" {
			return segments[i+1], nil
		}
	}
	return "", fmt.Errorf("%w: no report id in %q", ErrInvalidURL, rawURL)
}

// FetchReport retrieves the fight listing for a report ID. A non-2xx
// response or a report-level error field maps to ErrRemote, an empty
// fight list to ErrEmptyReport. One request, no retries.
func (c *Client) FetchReport(ctx context.Context, reportID string) (*models.Report, error) {
	u := fmt.Sprintf("%s/report/fights/%s?api_key=%s", c.baseURL, url.PathEscape(reportID), url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemote, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemote, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemote, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status=%d body=%s", ErrRemote, resp.StatusCode, preview(string(body), 200))
	}

	var rep models.Report
	if err := json.Unmarshal(body, &rep); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemote, err)
	}
	if rep.Error != "" {
		return nil, fmt.Errorf("%w: %s", ErrRemote, rep.Error)
	}
	if len(rep.Fights) == 0 {
		return nil, ErrEmptyReport
	}

	return &rep, nil
}

// FetchPulls resolves a report URL end to end: ID extraction, fetch,
// fight conversion.
func (c *Client) FetchPulls(ctx context.Context, reportURL string) ([]models.PullEntry, error) {
	id, err := ExtractReportID(reportURL)
	if err != nil {
		return nil, err
	}
	rep, err := c.FetchReport(ctx, id)
	if err != nil {
		return nil, err
	}
	return ConvertFights(rep), nil
}

func preview(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
