// Package client is a Go client for the kudos board API. It keeps a
// local mirror of server state that is always replaced from server
// responses, never merged field by field.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Board mirrors the server's board representation.
type Board struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Author      string    `json:"author"`
	Image       string    `json:"image"`
	Upvotes     int       `json:"upvotes"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Cards       []Card    `json:"cards"`
}

// Card mirrors the server's card representation.
type Card struct {
	ID        uint       `json:"id"`
	BoardID   uint       `json:"boardId"`
	Message   string     `json:"message"`
	Author    string     `json:"author"`
	Image     *string    `json:"image"`
	Upvotes   int        `json:"upvotes"`
	Pinned    bool       `json:"pinned"`
	PinnedAt  *time.Time `json:"pinnedAt"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// GifResult is one hit from the GIF search proxy.
type GifResult struct {
	ID         string `json:"id"`
	URL        string `json:"url"`
	Title      string `json:"title"`
	PreviewURL string `json:"previewUrl"`
}

type BoardInput struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category"`
	Author      string `json:"author"`
	Image       string `json:"image,omitempty"`
}

type CardInput struct {
	Message string  `json:"message"`
	Author  string  `json:"author"`
	Image   *string `json:"image,omitempty"`
}

// APIError carries the server's error envelope for a non-2xx response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status %d: %s", e.StatusCode, e.Message)
}

// NotFound reports whether the error is a 404 from the API.
func NotFound(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.StatusCode == http.StatusNotFound
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type boardEnvelope struct {
	Message string `json:"message"`
	Board   Board  `json:"board"`
}

type cardEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Card    Card   `json:"card"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var envelope struct {
			Error string `json:"error"`
		}
		message := resp.Status
		if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil && envelope.Error != "" {
			message = envelope.Error
		}
		return &APIError{StatusCode: resp.StatusCode, Message: message}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) ListBoards(ctx context.Context) ([]Board, error) {
	var boards []Board
	if err := c.do(ctx, http.MethodGet, "/api/boards", nil, &boards); err != nil {
		return nil, err
	}
	return boards, nil
}

func (c *Client) GetBoard(ctx context.Context, id uint) (*Board, error) {
	var board Board
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/boards/%d", id), nil, &board); err != nil {
		return nil, err
	}
	return &board, nil
}

func (c *Client) CreateBoard(ctx context.Context, in BoardInput) (*Board, error) {
	var board Board
	if err := c.do(ctx, http.MethodPost, "/api/boards", in, &board); err != nil {
		return nil, err
	}
	return &board, nil
}

func (c *Client) UpdateBoard(ctx context.Context, id uint, in BoardInput) (*Board, error) {
	var board Board
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/boards/%d", id), in, &board); err != nil {
		return nil, err
	}
	return &board, nil
}

func (c *Client) DeleteBoard(ctx context.Context, id uint) (*Board, error) {
	var envelope boardEnvelope
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/boards/%d", id), nil, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Board, nil
}

func (c *Client) UpvoteBoard(ctx context.Context, id uint) (*Board, error) {
	var envelope boardEnvelope
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/boards/%d/upvote", id), nil, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Board, nil
}

func (c *Client) ListCards(ctx context.Context, boardID uint) ([]Card, error) {
	var cards []Card
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/boards/%d/cards", boardID), nil, &cards); err != nil {
		return nil, err
	}
	return cards, nil
}

func (c *Client) CreateCard(ctx context.Context, boardID uint, in CardInput) (*Card, error) {
	var card Card
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/boards/%d/cards", boardID), in, &card); err != nil {
		return nil, err
	}
	return &card, nil
}

func (c *Client) GetCard(ctx context.Context, id uint) (*Card, error) {
	var card Card
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/cards/%d", id), nil, &card); err != nil {
		return nil, err
	}
	return &card, nil
}

func (c *Client) UpdateCard(ctx context.Context, id uint, in CardInput) (*Card, error) {
	var card Card
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/cards/%d", id), in, &card); err != nil {
		return nil, err
	}
	return &card, nil
}

func (c *Client) DeleteCard(ctx context.Context, id uint) (*Card, error) {
	var envelope cardEnvelope
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/cards/%d", id), nil, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Card, nil
}

func (c *Client) UpvoteCard(ctx context.Context, id uint) (*Card, error) {
	var envelope cardEnvelope
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/cards/%d/upvote", id), nil, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Card, nil
}

func (c *Client) PinCard(ctx context.Context, id uint) (*Card, error) {
	var envelope cardEnvelope
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/cards/%d/pin", id), nil, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Card, nil
}

func (c *Client) UnpinCard(ctx context.Context, id uint) (*Card, error) {
	var envelope cardEnvelope
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/cards/%d/unpin", id), nil, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Card, nil
}

func (c *Client) SearchGifs(ctx context.Context, query string, limit int) ([]GifResult, error) {
	params := url.Values{}
	params.Set("q", query)
	if limit > 0 {
		params.Set("limit", fmt.Sprintf("%d", limit))
	}

	var results []GifResult
	if err := c.do(ctx, http.MethodGet, "/api/gifs/search?"+params.Encode(), nil, &results); err != nil {
		return nil, err
	}
	return results, nil
}
