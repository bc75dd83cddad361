package marvel

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"comics-etl/core/failure"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Page is one response of a paged collection endpoint.
type Page struct {
	Kind   Kind
	Offset int
	Limit  int
	// Total is the size of the whole collection as reported by the server.
	Total int
	Count int
	// Results holds the records untouched so they can be persisted verbatim.
	Results []json.RawMessage
}

type listResponse struct {
	Status string `json:"status"`
	Data   *struct {
		Offset  int               `json:"offset"`
		Limit   int               `json:"limit"`
		Total   *int              `json:"total"`
		Count   int               `json:"count"`
		Results []json.RawMessage `json:"results"`
	} `json:"data"`
}

// Client calls the catalog API.
type Client struct {
	http       *resty.Client
	publicKey  string
	privateKey string
	now        func() time.Time
}

// NewClient creates a client for the given configuration. The logger may be nil.
func NewClient(cfg Config, logger *zap.Logger) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}

	client := resty.New()
	client.SetBaseURL(cfg.BaseURL)
	client.SetTimeout(time.Duration(timeout) * time.Second)
	client.SetHeader("Accept", "application/json")

	if logger != nil {
		client.OnAfterResponse(func(_ *resty.Client, res *resty.Response) error {
			logger.Debug("API response",
				zap.String("url", res.Request.URL),
				zap.Int("status", res.StatusCode()),
				zap.Duration("elapsed", res.Time()),
			)
			return nil
		})
	}

	return &Client{
		http:       client,
		publicKey:  cfg.PublicKey,
		privateKey: cfg.PrivateKey,
		now:        time.Now,
	}, nil
}

// ListPage fetches a single page of the collection starting at offset.
func (c *Client) ListPage(ctx context.Context, kind Kind, offset, limit int) (*Page, error) {
	op := "list " + string(kind)
	ts := Timestamp(c.now())

	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"ts":     ts,
			"apikey": c.publicKey,
			"hash":   Sign(ts, c.publicKey, c.privateKey),
			"limit":  strconv.Itoa(limit),
			"offset": strconv.Itoa(offset),
		}).
		Get(kind.Endpoint())
	if err != nil {
		return nil, failure.New(failure.KindNetwork, op, err).WithPath(kind.Endpoint())
	}

	if res.IsError() {
		return nil, failure.Errorf(failure.KindNetwork, op, "status %d: %s", res.StatusCode(), res.String()).WithPath(kind.Endpoint())
	}

	var body listResponse
	if err := json.Unmarshal(res.Body(), &body); err != nil {
		return nil, failure.New(failure.KindParse, op, fmt.Errorf("decode response: %w", err)).WithPath(kind.Endpoint())
	}

	if body.Data == nil {
		return nil, failure.New(failure.KindShape, op, errors.New("response has no data object")).WithPath(kind.Endpoint())
	}
	if body.Data.Total == nil {
		return nil, failure.New(failure.KindShape, op, errors.New("response has no data.total")).WithPath(kind.Endpoint())
	}

	return &Page{
		Kind:    kind,
		Offset:  offset,
		Limit:   limit,
		Total:   *body.Data.Total,
		Count:   body.Data.Count,
		Results: body.Data.Results,
	}, nil
}
