package client

import (
	"context"
	"strings"
	"sync"
	"time"
)

// Filter selects a view over the cached board collection.
type Filter int

const (
	FilterAll Filter = iota
	// FilterRecent keeps boards created within the last 7 days.
	FilterRecent
)

const recentWindow = 7 * 24 * time.Hour

// BoardStore mirrors the board collection. Every read serves from the
// cache; every write goes to the server and the cache is updated from
// the server's returned representation.
type BoardStore struct {
	api *Client

	mu     sync.RWMutex
	boards []Board
}

func NewBoardStore(api *Client) *BoardStore {
	return &BoardStore{api: api}
}

// Refresh replaces the cached collection with the server's.
func (s *BoardStore) Refresh(ctx context.Context) error {
	boards, err := s.api.ListBoards(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.boards = boards
	s.mu.Unlock()
	return nil
}

// Boards returns a copy of the cached collection.
func (s *BoardStore) Boards() []Board {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Board, len(s.boards))
	copy(out, s.boards)
	return out
}

// Search returns boards whose title, category or author contains the
// query, case-insensitively. It never re-fetches.
func (s *BoardStore) Search(query string) []Board {
	query = strings.ToLower(strings.TrimSpace(query))

	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]Board, 0)
	for _, b := range s.boards {
		if query == "" ||
			strings.Contains(strings.ToLower(b.Title), query) ||
			strings.Contains(strings.ToLower(b.Category), query) ||
			strings.Contains(strings.ToLower(b.Author), query) {
			matched = append(matched, b)
		}
	}
	return matched
}

// Filtered applies a filter predicate to the cached collection.
func (s *BoardStore) Filtered(f Filter) []Board {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if f == FilterAll {
		out := make([]Board, len(s.boards))
		copy(out, s.boards)
		return out
	}

	cutoff := time.Now().Add(-recentWindow)
	matched := make([]Board, 0)
	for _, b := range s.boards {
		if b.CreatedAt.After(cutoff) {
			matched = append(matched, b)
		}
	}
	return matched
}

// GroupByCategory buckets the cached boards by their category label.
func (s *BoardStore) GroupByCategory() map[string][]Board {
	s.mu.RLock()
	defer s.mu.RUnlock()

	groups := make(map[string][]Board)
	for _, b := range s.boards {
		groups[b.Category] = append(groups[b.Category], b)
	}
	return groups
}

// Create posts a new board and inserts the server's version at the
// front of the cache, matching the newest-first listing order.
func (s *BoardStore) Create(ctx context.Context, in BoardInput) (*Board, error) {
	board, err := s.api.CreateBoard(ctx, in)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.boards = append([]Board{*board}, s.boards...)
	s.mu.Unlock()
	return board, nil
}

// Update replaces the cached entry with the server's version.
func (s *BoardStore) Update(ctx context.Context, id uint, in BoardInput) (*Board, error) {
	board, err := s.api.UpdateBoard(ctx, id, in)
	if err != nil {
		return nil, err
	}
	s.replace(*board)
	return board, nil
}

// Delete removes the board from the cache once the server confirms.
func (s *BoardStore) Delete(ctx context.Context, id uint) error {
	if _, err := s.api.DeleteBoard(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, b := range s.boards {
		if b.ID == id {
			s.boards = append(s.boards[:i], s.boards[i+1:]...)
			break
		}
	}
	return nil
}

// Upvote applies the server's refreshed board to the cache.
func (s *BoardStore) Upvote(ctx context.Context, id uint) (*Board, error) {
	board, err := s.api.UpvoteBoard(ctx, id)
	if err != nil {
		return nil, err
	}
	s.replace(*board)
	return board, nil
}

func (s *BoardStore) replace(board Board) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, b := range s.boards {
		if b.ID == board.ID {
			s.boards[i] = board
			return
		}
	}
}
