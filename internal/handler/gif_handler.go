package handler

import (
	"context"
	"net/http"
	"strconv"

	"kudosboard/internal/gif"

	"github.com/gin-gonic/gin"
)

// GifSearcher is the outbound GIF provider surface.
type GifSearcher interface {
	Search(ctx context.Context, query string, limit int) ([]gif.Result, error)
}

type GifHandler struct {
	searcher GifSearcher
}

func NewGifHandler(searcher GifSearcher) *GifHandler {
	return &GifHandler{searcher: searcher}
}

func (h *GifHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Search query is required"})
		return
	}

	limit := 12
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	results, err := h.searcher.Search(c.Request.Context(), query, limit)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "GIF search failed"})
		return
	}

	c.JSON(http.StatusOK, results)
}
