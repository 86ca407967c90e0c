package theirstack

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	apiURL    = "https://api.theirstack.com"
	userAgent = "job-matcher (+https://github.com/job-matcher)"
	// Max page size accepted by the search endpoint.
	perPage = 100

	defaultRequestsPerSecond = 2
	defaultMaxRetries        = 3
)

type Client struct {
	// ctx used only for http requests right now
	ctx        context.Context
	token      string
	logger     *zap.Logger
	limiter    *rate.Limiter
	maxRetries int
	HTTPClient *http.Client
	UserAgent  string
	APIURL     string
}

func New(ctx context.Context, logger *zap.Logger, token string) *Client {
	return &Client{
		ctx:    ctx,
		token:  token,
		APIURL: apiURL,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		limiter:    rate.NewLimiter(rate.Limit(defaultRequestsPerSecond), 1),
		maxRetries: defaultMaxRetries,
		logger:     logger,
		UserAgent:  userAgent,
	}
}

// SetRateLimit overrides the client-side request rate.
func (c *Client) SetRateLimit(requestsPerSecond float64) {
	if requestsPerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), 1)
	}
}

// SetMaxRetries overrides how many times transient failures are retried.
func (c *Client) SetMaxRetries(retries int) {
	if retries >= 0 {
		c.maxRetries = retries
	}
}

func (c *Client) Search(params *SearchParams) (*Jobs, error) {
	return c.search(params)
}

// Ping verifies connectivity and credentials with a minimal query. The
// search endpoint requires at least one filter, so the probe asks for a
// single listing from the last 30 days.
func (c *Client) Ping() error {
	body := map[string]any{
		"posted_at_max_age_days": 30,
		"limit":                  1,
		"page":                   0,
	}

	_, err := c.postSearchPage(body)
	return err
}
