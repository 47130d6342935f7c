package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"kudosboard/internal/model"
	"kudosboard/internal/repository"

	"github.com/gin-gonic/gin"
)

// CardRepository is the card storage surface the handlers need.
type CardRepository interface {
	Create(ctx context.Context, card *model.Card) error
	GetByID(ctx context.Context, id uint) (*model.Card, error)
	GetByBoardID(ctx context.Context, boardID uint) ([]model.Card, error)
	Update(ctx context.Context, card *model.Card) error
	Delete(ctx context.Context, id uint) error
	Upvote(ctx context.Context, id uint) (*model.Card, error)
	SetPinned(ctx context.Context, id uint, pinned bool) (*model.Card, error)
}

type CardHandler struct {
	cardRepo  CardRepository
	boardRepo BoardRepository
}

func NewCardHandler(cardRepo CardRepository, boardRepo BoardRepository) *CardHandler {
	return &CardHandler{
		cardRepo:  cardRepo,
		boardRepo: boardRepo,
	}
}

type CardRequest struct {
	Message string  `json:"message"`
	Author  string  `json:"author"`
	Image   *string `json:"image"`
}

func (req *CardRequest) validate() string {
	req.Message = strings.TrimSpace(req.Message)
	req.Author = strings.TrimSpace(req.Author)
	if req.Image != nil {
		trimmed := strings.TrimSpace(*req.Image)
		req.Image = &trimmed
	}

	if req.Message == "" {
		return "Message must be a non-empty string"
	}
	if req.Author == "" {
		return "Author must be a non-empty string"
	}
	return ""
}

// GetByBoardID lists a board's cards newest first. The board must exist.
func (h *CardHandler) GetByBoardID(c *gin.Context) {
	boardID, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID"})
		return
	}

	if _, err := h.boardRepo.GetByID(c.Request.Context(), boardID); err != nil {
		if errors.Is(err, repository.ErrBoardNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Board not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch board"})
		return
	}

	cards, err := h.cardRepo.GetByBoardID(c.Request.Context(), boardID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cards"})
		return
	}

	c.JSON(http.StatusOK, cards)
}

func (h *CardHandler) Create(c *gin.Context) {
	boardID, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID"})
		return
	}

	var req CardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if msg := req.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	if _, err := h.boardRepo.GetByID(c.Request.Context(), boardID); err != nil {
		if errors.Is(err, repository.ErrBoardNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Board not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch board"})
		return
	}

	image := req.Image
	if image != nil && *image == "" {
		image = nil
	}

	card := &model.Card{
		BoardID: boardID,
		Message: req.Message,
		Author:  req.Author,
		Image:   image,
	}

	if err := h.cardRepo.Create(c.Request.Context(), card); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create card"})
		return
	}

	c.JSON(http.StatusCreated, card)
}

func (h *CardHandler) GetByID(c *gin.Context) {
	cardID, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid card ID"})
		return
	}

	card, err := h.cardRepo.GetByID(c.Request.Context(), cardID)
	if err != nil {
		if errors.Is(err, repository.ErrCardNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Card not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch card"})
		return
	}

	c.JSON(http.StatusOK, card)
}

// fetchCard resolves a card for mutation. When the route carries a board
// id the card must belong to that board; a mismatch reads the same as a
// missing card so the wrong board learns nothing.
func (h *CardHandler) fetchCard(c *gin.Context, cardParam string, scopedToBoard bool) (*model.Card, bool) {
	var boardID uint
	if scopedToBoard {
		var ok bool
		boardID, ok = parseID(c, "id")
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID"})
			return nil, false
		}
	}

	cardID, ok := parseID(c, cardParam)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid card ID"})
		return nil, false
	}

	card, err := h.cardRepo.GetByID(c.Request.Context(), cardID)
	if err != nil {
		if errors.Is(err, repository.ErrCardNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Card not found"})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch card"})
		return nil, false
	}

	if scopedToBoard && card.BoardID != boardID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Card not found"})
		return nil, false
	}

	return card, true
}

func (h *CardHandler) update(c *gin.Context, cardParam string, scopedToBoard bool) {
	var req CardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if msg := req.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	card, ok := h.fetchCard(c, cardParam, scopedToBoard)
	if !ok {
		return
	}

	card.Message = req.Message
	card.Author = req.Author
	// An absent image field leaves the stored image alone; an explicit
	// empty string clears it.
	if req.Image != nil {
		if *req.Image == "" {
			card.Image = nil
		} else {
			card.Image = req.Image
		}
	}

	if err := h.cardRepo.Update(c.Request.Context(), card); err != nil {
		if errors.Is(err, repository.ErrCardNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Card not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update card"})
		return
	}

	c.JSON(http.StatusOK, card)
}

func (h *CardHandler) delete(c *gin.Context, cardParam string, scopedToBoard bool) {
	card, ok := h.fetchCard(c, cardParam, scopedToBoard)
	if !ok {
		return
	}

	if err := h.cardRepo.Delete(c.Request.Context(), card.ID); err != nil {
		if errors.Is(err, repository.ErrCardNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Card not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete card"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Card deleted successfully",
		"card":    card,
	})
}

func (h *CardHandler) upvote(c *gin.Context, cardParam string, scopedToBoard bool) {
	card, ok := h.fetchCard(c, cardParam, scopedToBoard)
	if !ok {
		return
	}

	card, err := h.cardRepo.Upvote(c.Request.Context(), card.ID)
	if err != nil {
		if errors.Is(err, repository.ErrCardNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Card not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upvote card"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Card upvoted successfully",
		"card":    card,
	})
}

func (h *CardHandler) Update(c *gin.Context) { h.update(c, "id", false) }
func (h *CardHandler) Delete(c *gin.Context) { h.delete(c, "id", false) }
func (h *CardHandler) Upvote(c *gin.Context) { h.upvote(c, "id", false) }

func (h *CardHandler) UpdateOnBoard(c *gin.Context) { h.update(c, "cardId", true) }
func (h *CardHandler) DeleteOnBoard(c *gin.Context) { h.delete(c, "cardId", true) }
func (h *CardHandler) UpvoteOnBoard(c *gin.Context) { h.upvote(c, "cardId", true) }

func (h *CardHandler) setPinned(c *gin.Context, pinned bool, verb string) {
	cardID, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid card ID"})
		return
	}

	card, err := h.cardRepo.SetPinned(c.Request.Context(), cardID, pinned)
	if err != nil {
		if errors.Is(err, repository.ErrCardNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Card not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + verb + " card"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Card " + verb + "ned successfully",
		"card":    card,
	})
}

func (h *CardHandler) Pin(c *gin.Context)   { h.setPinned(c, true, "pin") }
func (h *CardHandler) Unpin(c *gin.Context) { h.setPinned(c, false, "unpin") }
