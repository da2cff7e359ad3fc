// Package explorer implements the paginated transaction-listing client for
// the upstream explorer API.
package explorer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/ratelimit"
	"go.uber.org/zap"

	"github.com/rodcoppi/ls-lisktransactions-sub002/internal/model"
	"github.com/rodcoppi/ls-lisktransactions-sub002/pkg/safe"
)

// ErrMalformedResponse marks payloads that do not match the expected API
// shape. Callers abort the update cycle without mutating persisted state.
var ErrMalformedResponse = errors.New("malformed explorer response")

const (
	defaultPageLimit   = 100
	defaultHTTPTimeout = 30 * time.Second
	defaultRPS         = 10
)

type (
	// Metrics records outcomes of explorer API calls.
	Metrics interface {
		ObserveFetchPage(err error, items int, started time.Time)
	}

	// Page is one batch of the paginated transaction listing. NextCursor is
	// empty when the upstream reports no further page.
	Page struct {
		Items      []model.Transaction
		NextCursor string
	}
)

// Client fetches transaction pages sequentially. Each page's cursor depends
// on the previous response, so no parallel fan-out is permitted.
type Client struct {
	baseURL    string
	pageLimit  int
	httpClient *http.Client
	rl         ratelimit.Limiter
	metrics    Metrics
	logger     *zap.Logger
}

// Opts configures a Client.
type Opts struct {
	BaseURL     string
	PageLimit   int
	RPS         int
	HTTPTimeout time.Duration
	HTTPClient  *http.Client
}

// NewClient builds an explorer Client.
func NewClient(opts Opts, metrics Metrics, logger *zap.Logger) (*Client, error) {
	if opts.BaseURL == "" {
		return nil, errors.New("explorer base url is required")
	}
	if metrics == nil {
		return nil, errors.New("explorer metrics is required")
	}
	if opts.PageLimit <= 0 {
		opts.PageLimit = defaultPageLimit
	}
	if opts.RPS <= 0 {
		opts.RPS = defaultRPS
	}
	if opts.HTTPTimeout <= 0 {
		opts.HTTPTimeout = defaultHTTPTimeout
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.HTTPTimeout}
	}
	return &Client{
		baseURL:    opts.BaseURL,
		pageLimit:  opts.PageLimit,
		httpClient: httpClient,
		rl:         ratelimit.New(opts.RPS),
		metrics:    metrics,
		logger:     logger,
	}, nil
}

type txDTO struct {
	Hash        string `json:"hash"`
	BlockNumber int64  `json:"blockNumber"`
	Index       int64  `json:"index"`
	Timestamp   string `json:"timestamp"`
	Method      string `json:"method"`
	Fee         string `json:"fee"`
}

type pageDTO struct {
	Items      []txDTO `json:"items"`
	NextCursor string  `json:"nextCursor"`
}

// FetchPage retrieves one batch of transactions. An empty cursor requests the
// newest page; fromBlock, when non-zero, asks the upstream to exclude blocks
// at or below it.
func (c *Client) FetchPage(ctx context.Context, cursor string, fromBlock uint64) (page Page, err error) {
	started := time.Now()
	defer func() {
		c.metrics.ObserveFetchPage(err, len(page.Items), started)
	}()

	c.rl.Take()

	req, err := c.newRequest(ctx, cursor, fromBlock)
	if err != nil {
		return Page{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Page{}, fmt.Errorf("fetch transactions page: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return Page{}, fmt.Errorf("fetch transactions page: unexpected status %d", resp.StatusCode)
	}

	var dto pageDTO
	if err := json.NewDecoder(resp.Body).Decode(&dto); err != nil {
		return Page{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	items := make([]model.Transaction, 0, len(dto.Items))
	for _, raw := range dto.Items {
		tx, err := convertTransaction(raw)
		if err != nil {
			return Page{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
		items = append(items, tx)
	}

	return Page{Items: items, NextCursor: dto.NextCursor}, nil
}

func (c *Client) newRequest(ctx context.Context, cursor string, fromBlock uint64) (*http.Request, error) {
	u, err := url.Parse(c.baseURL + "/transactions")
	if err != nil {
		return nil, fmt.Errorf("parse explorer url: %w", err)
	}
	q := u.Query()
	q.Set("limit", strconv.Itoa(c.pageLimit))
	if cursor != "" {
		q.Set("cursor", cursor)
	}
	if fromBlock > 0 {
		q.Set("fromBlock", strconv.FormatUint(fromBlock, 10))
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build explorer request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func convertTransaction(raw txDTO) (model.Transaction, error) {
	if raw.Hash == "" {
		return model.Transaction{}, errors.New("transaction hash is empty")
	}
	blockNumber, err := safe.Uint64(raw.BlockNumber)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("tx %s block number: %w", raw.Hash, err)
	}
	index, err := safe.Uint32(raw.Index)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("tx %s index: %w", raw.Hash, err)
	}
	ts, err := time.Parse(time.RFC3339, raw.Timestamp)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("tx %s timestamp: %w", raw.Hash, err)
	}
	var fee uint64
	if raw.Fee != "" {
		fee, err = strconv.ParseUint(raw.Fee, 10, 64)
		if err != nil {
			return model.Transaction{}, fmt.Errorf("tx %s fee: %w", raw.Hash, err)
		}
	}
	return model.Transaction{
		Hash:        raw.Hash,
		BlockNumber: blockNumber,
		Index:       index,
		Timestamp:   ts.UTC(),
		Method:      raw.Method,
		Fee:         fee,
	}, nil
}
