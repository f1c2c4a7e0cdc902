// Package rest holds the resty setup shared by the HTTP adapters.
package rest

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

type Config struct {
	BaseURL string
	Timeout time.Duration
	Debug   bool
}

// NewClient builds a JSON client. Requests are issued once; failures are
// reported to the caller instead of retried.
func NewClient(cfg Config) *resty.Client {
	c := resty.New().
		SetTimeout(cfg.Timeout).
		SetRetryCount(0).
		SetHeader("Accept", "application/json")
	if cfg.BaseURL != "" {
		c.SetBaseURL(cfg.BaseURL)
	}
	if cfg.Debug {
		c.SetDebug(true)
	}
	return c
}

// StatusError is a non-2xx response.
type StatusError struct {
	Endpoint string
	Code     int
	Body     string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: status %d", e.Endpoint, e.Code)
	}
	return fmt.Sprintf("%s: status %d: %s", e.Endpoint, e.Code, e.Body)
}

const maxErrBody = 200

// GetJSON issues a GET and decodes the body into out regardless of the
// response content type.
func GetJSON(ctx context.Context, c *resty.Client, path string, params map[string]string, out any) error {
	resp, err := c.R().
		SetContext(ctx).
		SetQueryParams(params).
		ForceContentType("application/json").
		SetResult(out).
		Get(path)
	if err != nil {
		return errors.Wrapf(err, "GET %s", path)
	}
	if resp.IsError() {
		body := resp.String()
		if len(body) > maxErrBody {
			body = body[:maxErrBody]
		}
		return &StatusError{Endpoint: path, Code: resp.StatusCode(), Body: body}
	}
	return nil
}
