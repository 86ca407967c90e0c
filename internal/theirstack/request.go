package theirstack

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/job-matcher/internal/utils"
	"go.uber.org/zap"
)

const (
	searchPath      = "/jobs/search"
	contentType     = "application/json"
	contentEncoding = "gzip, deflate, br"
)

type SearchResponse struct {
	Metadata struct {
		TotalResults int `json:"total_results"`
	} `json:"metadata"`
	Data []Item `json:"data"`
}

type Item interface{}

// PostItems sends paged POST requests to the search endpoint until limit
// items are collected or the API runs out of pages.
func (c *Client) PostItems(body map[string]any, limit int) ([]Item, error) {
	var items []Item

	if limit <= 0 || limit > perPage {
		body["limit"] = perPage
	} else {
		body["limit"] = limit
	}

	page := 0
	for {
		body["page"] = page

		response, err := c.postSearchPage(body)
		if err != nil {
			return nil, err
		}

		c.logger.Debug("got response from TheirStack",
			zap.Int("page", page),
			zap.Int("items", len(response.Data)),
			zap.Int("total_results", response.Metadata.TotalResults),
		)

		items = append(items, response.Data...)

		if len(response.Data) == 0 {
			break
		}
		if limit > 0 && len(items) >= limit {
			items = items[:limit]
			break
		}
		if response.Metadata.TotalResults > 0 && len(items) >= response.Metadata.TotalResults {
			break
		}

		page++
	}

	return items, nil
}

func (c *Client) postSearchPage(body map[string]any) (*SearchResponse, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal search body: %w", err)
	}

	url := fmt.Sprintf("%s%s", c.APIURL, searchPath)

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(attempt) * 2 * time.Second
			c.logger.Debug("retrying request",
				zap.Int("attempt", attempt),
				zap.Duration("backoff", backoff),
			)
			if err := utils.WaitFor(c.ctx, backoff); err != nil {
				return nil, err
			}
		}

		if c.limiter != nil {
			if err := c.limiter.Wait(c.ctx); err != nil {
				return nil, err
			}
		}

		req, err := http.NewRequestWithContext(c.ctx, http.MethodPost, url, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req = c.setHeaders(req)
		req.Header.Set("Content-Type", contentType)

		c.logger.Debug("make request", zap.String("url", req.URL.String()))

		resp, err := c.HTTPClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			resp.Body.Close()
			lastErr = fmt.Errorf("rate limited: %s", resp.Status)
			continue
		}

		return parseSearchResponse(resp)
	}

	return nil, fmt.Errorf("all %d attempts failed: %w", c.maxRetries+1, lastErr)
}

func parseSearchResponse(resp *http.Response) (*SearchResponse, error) {
	defer resp.Body.Close()

	var body io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gzipReader, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, err
		}
		defer gzipReader.Close()
		body = gzipReader
	}

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(body, 2048))
		return nil, fmt.Errorf("bad status: %s: %s", resp.Status, bytes.TrimSpace(data))
	}

	var response *SearchResponse
	if err := json.NewDecoder(body).Decode(&response); err != nil {
		return nil, err
	}

	// A literal null body decodes without error but leaves the result nil.
	if response == nil {
		return nil, fmt.Errorf("empty response from %s", searchPath)
	}

	return response, nil
}

func (c *Client) setHeaders(req *http.Request) *http.Request {
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.token))
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept-Encoding", contentEncoding)

	return req
}
