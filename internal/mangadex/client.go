package mangadex

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/orhun/manga-tui/internal/config"
	"github.com/orhun/manga-tui/internal/debuglog"
	"github.com/orhun/manga-tui/internal/validation"
)

// maxCoverBytes bounds how much image data a single cover download may
// carry before the body read is cut off.
const maxCoverBytes = 8 << 20

// Client talks to a MangaDex-compatible content API.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	coverBaseURL string
	userAgent    string
	searchLimit  int
}

// NewClient validates the configured endpoints and builds a client.
func NewClient(cfg *config.Config) (*Client, error) {
	v := validation.NewPermissiveBaseURLValidator()

	baseURL, err := v.ValidateAndNormalize(cfg.API.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("api base URL: %w", err)
	}

	coverBaseURL, err := v.ValidateAndNormalize(cfg.API.CoverBaseURL)
	if err != nil {
		return nil, fmt.Errorf("cover base URL: %w", err)
	}

	limit := cfg.API.SearchLimit
	if limit <= 0 {
		limit = 10
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.API.HTTPTimeout,
		},
		baseURL:      baseURL,
		coverBaseURL: coverBaseURL,
		userAgent:    cfg.API.UserAgent,
		searchLimit:  limit,
	}, nil
}

// SearchManga queries the API for the given title. The outcome is tagged:
// a transport or API failure is reported as Failed, a well-formed response
// with zero items as Empty.
func (c *Client) SearchManga(ctx context.Context, query string) SearchOutcome {
	params := url.Values{}
	params.Set("title", query)
	params.Set("limit", strconv.Itoa(c.searchLimit))
	params.Add("includes[]", "cover_art")

	endpoint := c.baseURL + "/manga?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return FailedOutcome(fmt.Errorf("creating search request: %w", err))
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return FailedOutcome(fmt.Errorf("searching manga: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return FailedOutcome(fmt.Errorf("HTTP error: %d", resp.StatusCode))
	}

	var parsed SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return FailedOutcome(fmt.Errorf("decoding search response: %w", err))
	}

	debuglog.Debugf("search %q returned %d items", query, len(parsed.Data))

	if len(parsed.Data) == 0 {
		return EmptyOutcome()
	}
	return OkOutcome(&parsed)
}

// GetCoverBytes downloads the raw cover image for a manga.
func (c *Client) GetCoverBytes(ctx context.Context, mangaID, fileName string) ([]byte, error) {
	endpoint := fmt.Sprintf("%s/%s/%s", c.coverBaseURL, url.PathEscape(mangaID), url.PathEscape(fileName))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating cover request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching cover: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("HTTP error: %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxCoverBytes))
	if err != nil {
		return nil, fmt.Errorf("reading cover body: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty cover body")
	}

	return data, nil
}
