package signupcheck

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/mergington/activities/pkg/logger"
)

// Client talks to the activity API.
type Client struct {
	http    *http.Client
	baseURL string
}

// NewClient creates a client for the service at cfg.BaseURL.
func NewClient(cfg *Config) *Client {
	return &Client{
		http:    &http.Client{Timeout: cfg.Timeout},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
	}
}

func (c *Client) do(ctx context.Context, method, target string) (*http.Response, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+target, http.NoBody)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close response body", logger.Error(err))
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp, nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return resp, body, nil
}

// Health calls GET /healthz and expects 200.
func (c *Client) Health(ctx context.Context) error {
	resp, _, err := c.do(ctx, http.MethodGet, "/healthz")
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: healthz returned %d", ErrUnexpectedStatus, resp.StatusCode)
	}
	return nil
}

// Activities calls GET /activities.
func (c *Client) Activities(ctx context.Context) (map[string]ActivityDetails, error) {
	resp, body, err := c.do(ctx, http.MethodGet, "/activities")
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: activities returned %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	var activities map[string]ActivityDetails
	if err := json.Unmarshal(body, &activities); err != nil {
		return nil, fmt.Errorf("failed to decode activities: %w", err)
	}
	return activities, nil
}

// Activity returns the listing entry for name.
func (c *Client) Activity(ctx context.Context, name string) (ActivityDetails, error) {
	activities, err := c.Activities(ctx)
	if err != nil {
		return ActivityDetails{}, err
	}
	details, ok := activities[name]
	if !ok {
		return ActivityDetails{}, fmt.Errorf("%w: %q", ErrActivityMissing, name)
	}
	return details, nil
}

// Roster posts a signup or unregister for email and returns the status
// code with the decoded body.
func (c *Client) Roster(ctx context.Context, action, name, email string) (int, RosterResponse, error) {
	target := "/activities/" + url.PathEscape(name) + "/" + action + "?" + url.Values{"email": {email}}.Encode()

	resp, body, err := c.do(ctx, http.MethodPost, target)
	if err != nil {
		return 0, RosterResponse{}, err
	}

	var out RosterResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return resp.StatusCode, RosterResponse{}, fmt.Errorf("failed to decode %s response: %w", action, err)
	}
	return resp.StatusCode, out, nil
}

// submitRoster runs action for every email on a worker pool and returns the
// number of 200 and non-200 outcomes.
func submitRoster(ctx context.Context, cfg *Config, client *Client, action string, emails []string) (succeeded, failed int) {
	logger.Get().Info(ctx, "submitting roster changes",
		logger.String("action", action),
		logger.Int("students", len(emails)),
		logger.Int("workers", cfg.Workers))

	var ok, bad int64
	emailChan := make(chan string, cfg.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	for i := 0; i < cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for email := range emailChan {
				status, body, err := client.Roster(ctx, action, cfg.Activity, email)
				if err != nil || status != http.StatusOK {
					atomic.AddInt64(&bad, 1)
					logger.Get().Debug(ctx, "roster change failed",
						logger.String("action", action),
						logger.String("email", email),
						logger.Int("status", status),
						logger.String("detail", body.Detail),
						logger.Any("error", err))
					continue
				}
				atomic.AddInt64(&ok, 1)
				if cfg.Verbose {
					logger.Get().Debug(ctx, body.Message)
				}
			}
		}()
	}

	go func() {
		defer close(emailChan)
		for _, email := range emails {
			select {
			case <-ctx.Done():
				return
			case emailChan <- email:
			}
		}
	}()

	wg.Wait()
	return int(atomic.LoadInt64(&ok)), int(atomic.LoadInt64(&bad))
}
