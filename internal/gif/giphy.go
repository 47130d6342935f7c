package gif

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://api.giphy.com/v1/gifs"

// Result is one GIF search hit in the shape the board client consumes.
type Result struct {
	ID         string `json:"id"`
	URL        string `json:"url"`
	Title      string `json:"title"`
	PreviewURL string `json:"previewUrl"`
}

// Client searches the Giphy API. A zero API key is allowed; Search then
// returns no results so the rest of the app keeps working without GIFs.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// NewClientWithBaseURL is used by tests to point at a fake server.
func NewClientWithBaseURL(apiKey, baseURL string) *Client {
	c := NewClient(apiKey)
	c.baseURL = baseURL
	return c
}

type giphyImage struct {
	URL string `json:"url"`
}

type giphyItem struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Images struct {
		FixedHeight      giphyImage `json:"fixed_height"`
		FixedHeightSmall giphyImage `json:"fixed_height_small"`
	} `json:"images"`
}

type giphyResponse struct {
	Data []giphyItem `json:"data"`
}

func (c *Client) Search(ctx context.Context, query string, limit int) ([]Result, error) {
	if c.apiKey == "" {
		return []Result{}, nil
	}
	if limit <= 0 {
		limit = 12
	}

	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("q", query)
	params.Set("limit", fmt.Sprintf("%d", limit))
	params.Set("rating", "g")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("giphy search failed: status %d", resp.StatusCode)
	}

	var body giphyResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(body.Data))
	for _, item := range body.Data {
		results = append(results, Result{
			ID:         item.ID,
			URL:        item.Images.FixedHeight.URL,
			Title:      item.Title,
			PreviewURL: item.Images.FixedHeightSmall.URL,
		})
	}
	return results, nil
}
