package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"kudosboard/internal/model"
	"kudosboard/internal/repository"

	"github.com/gin-gonic/gin"
)

// BoardRepository is the board storage surface the handlers need.
type BoardRepository interface {
	Create(ctx context.Context, board *model.Board) error
	GetAll(ctx context.Context) ([]model.Board, error)
	GetByID(ctx context.Context, id uint) (*model.Board, error)
	Update(ctx context.Context, board *model.Board) error
	Delete(ctx context.Context, id uint) (*model.Board, error)
	Upvote(ctx context.Context, id uint) (*model.Board, error)
}

type BoardHandler struct {
	boardRepo BoardRepository
}

func NewBoardHandler(boardRepo BoardRepository) *BoardHandler {
	return &BoardHandler{boardRepo: boardRepo}
}

type BoardRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Author      string `json:"author"`
	Image       string `json:"image"`
}

// validate trims every field and enforces the required set: title,
// category and author must be non-empty; description and image default
// to "". Returns the message for the first failing field.
func (req *BoardRequest) validate() string {
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	req.Category = strings.TrimSpace(req.Category)
	req.Author = strings.TrimSpace(req.Author)
	req.Image = strings.TrimSpace(req.Image)

	if req.Title == "" {
		return "Title must be a non-empty string"
	}
	if req.Category == "" {
		return "Category must be a non-empty string"
	}
	if req.Author == "" {
		return "Author must be a non-empty string"
	}
	return ""
}

func parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

func (h *BoardHandler) GetAll(c *gin.Context) {
	boards, err := h.boardRepo.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch boards"})
		return
	}
	c.JSON(http.StatusOK, boards)
}

func (h *BoardHandler) GetByID(c *gin.Context) {
	boardID, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID"})
		return
	}

	board, err := h.boardRepo.GetByID(c.Request.Context(), boardID)
	if err != nil {
		if errors.Is(err, repository.ErrBoardNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Board not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch board"})
		return
	}

	c.JSON(http.StatusOK, board)
}

func (h *BoardHandler) Create(c *gin.Context) {
	var req BoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if msg := req.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	board := &model.Board{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Author:      req.Author,
		Image:       req.Image,
	}

	if err := h.boardRepo.Create(c.Request.Context(), board); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create board"})
		return
	}

	// A fresh board owns no cards yet; render an empty list, not null.
	board.Cards = make([]model.Card, 0)

	c.JSON(http.StatusCreated, board)
}

func (h *BoardHandler) Update(c *gin.Context) {
	boardID, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID"})
		return
	}

	var req BoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if msg := req.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	board, err := h.boardRepo.GetByID(c.Request.Context(), boardID)
	if err != nil {
		if errors.Is(err, repository.ErrBoardNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Board not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch board"})
		return
	}

	board.Title = req.Title
	board.Description = req.Description
	board.Category = req.Category
	board.Author = req.Author
	board.Image = req.Image

	if err := h.boardRepo.Update(c.Request.Context(), board); err != nil {
		if errors.Is(err, repository.ErrBoardNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Board not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update board"})
		return
	}

	c.JSON(http.StatusOK, board)
}

func (h *BoardHandler) Delete(c *gin.Context) {
	boardID, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID"})
		return
	}

	board, err := h.boardRepo.Delete(c.Request.Context(), boardID)
	if err != nil {
		if errors.Is(err, repository.ErrBoardNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Board not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete board"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Board deleted successfully",
		"board":   board,
	})
}

func (h *BoardHandler) Upvote(c *gin.Context) {
	boardID, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID"})
		return
	}

	board, err := h.boardRepo.Upvote(c.Request.Context(), boardID)
	if err != nil {
		if errors.Is(err, repository.ErrBoardNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Board not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upvote board"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Board upvoted successfully",
		"board":   board,
	})
}
