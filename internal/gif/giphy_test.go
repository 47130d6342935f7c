package gif_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"kudosboard/internal/gif"

	"github.com/stretchr/testify/assert"
)

const fakeGiphyBody = `{
	"data": [
		{
			"id": "abc123",
			"title": "Celebration",
			"images": {
				"fixed_height": {"url": "https://media.giphy.com/abc123/full.gif"},
				"fixed_height_small": {"url": "https://media.giphy.com/abc123/small.gif"}
			}
		}
	]
}`

func TestSearch_MapsResults(t *testing.T) {
	// Arrange
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		assert.Equal(t, "celebration", r.URL.Query().Get("q"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		assert.Equal(t, "g", r.URL.Query().Get("rating"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(fakeGiphyBody))
	}))
	defer srv.Close()

	client := gif.NewClientWithBaseURL("test-key", srv.URL)

	// Act
	results, err := client.Search(context.Background(), "celebration", 5)

	// Assert
	assert.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, "abc123", results[0].ID)
	assert.Equal(t, "https://media.giphy.com/abc123/full.gif", results[0].URL)
	assert.Equal(t, "Celebration", results[0].Title)
	assert.Equal(t, "https://media.giphy.com/abc123/small.gif", results[0].PreviewURL)
}

func TestSearch_NoAPIKeyReturnsEmpty(t *testing.T) {
	// Arrange: no request should ever reach the server
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("unexpected request to provider")
	}))
	defer srv.Close()

	client := gif.NewClientWithBaseURL("", srv.URL)

	// Act
	results, err := client.Search(context.Background(), "celebration", 5)

	// Assert
	assert.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearch_ProviderError(t *testing.T) {
	// Arrange
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := gif.NewClientWithBaseURL("test-key", srv.URL)

	// Act
	results, err := client.Search(context.Background(), "celebration", 5)

	// Assert
	assert.Error(t, err)
	assert.Nil(t, results)
}

func TestSearch_DefaultLimit(t *testing.T) {
	// Arrange
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "12", r.URL.Query().Get("limit"))
		w.Write([]byte(`{"data": []}`))
	}))
	defer srv.Close()

	client := gif.NewClientWithBaseURL("test-key", srv.URL)

	// Act
	results, err := client.Search(context.Background(), "thanks", 0)

	// Assert
	assert.NoError(t, err)
	assert.Empty(t, results)
}
