package dataset

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/aip-heidelberg/codeeval/internal/bop"
)

// pageSize is the rows-per-request limit of the datasets-server API.
const pageSize = 100

// HubClient downloads dataset rows from the Hugging Face datasets-server
// REST API.
type HubClient struct {
	BaseURL string
	HTTP    *http.Client

	log *zap.Logger
}

// NewHubClient creates a hub client for the given API base URL.
func NewHubClient(baseURL string, logger *zap.Logger) *HubClient {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &HubClient{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 60 * time.Second},
		log:     logger.Named("hub"),
	}
}

type rowsResponse struct {
	Rows []struct {
		Row map[string]any `json:"row"`
	} `json:"rows"`
	NumRowsTotal int `json:"num_rows_total"`
}

// Fetch downloads every row of the dataset's split and shapes them into a
// bag with the registered schema. Unknown upstream columns are dropped.
func (c *HubClient) Fetch(ctx context.Context, info Info) (*bop.Bag, error) {
	split := info.Split
	if split == "" {
		// The upstream datasets library defaults to the train split.
		split = "train"
	}

	bag := bop.New(info.Schema)
	offset := 0

	for {
		page, err := c.fetchPage(ctx, info.HubID, split, offset)
		if err != nil {
			return nil, err
		}

		for _, row := range page.Rows {
			if err := bag.Append(bop.Record(row.Row)); err != nil {
				return nil, fmt.Errorf("dataset %s row %d: %w", info.Name, bag.Len(), err)
			}
		}

		c.log.Debug("fetched page",
			zap.String("dataset", info.Name),
			zap.Int("offset", offset),
			zap.Int("rows", len(page.Rows)),
			zap.Int("total", page.NumRowsTotal))

		offset += len(page.Rows)

		if offset >= page.NumRowsTotal || len(page.Rows) == 0 {
			break
		}
	}

	c.log.Info("dataset downloaded", zap.String("dataset", info.Name), zap.Int("rows", bag.Len()))

	return bag, nil
}

func (c *HubClient) fetchPage(ctx context.Context, hubID, split string, offset int) (*rowsResponse, error) {
	q := url.Values{}
	q.Set("dataset", hubID)
	q.Set("config", "default")
	q.Set("split", split)
	q.Set("offset", fmt.Sprint(offset))
	q.Set("length", fmt.Sprint(pageSize))

	endpoint := fmt.Sprintf("%s/rows?%s", c.BaseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building hub request: %w", err)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", hubID, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))

		return nil, fmt.Errorf("hub returned %s for %s: %s", resp.Status, hubID, string(body))
	}

	var page rowsResponse
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("decoding hub response: %w", err)
	}

	return &page, nil
}
