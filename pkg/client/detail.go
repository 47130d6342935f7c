package client

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrOperationInFlight is returned when a card already has an
// outstanding upvote/pin operation.
var ErrOperationInFlight = errors.New("operation already in flight for this card")

// BoardDetail mirrors a single board. Load replaces the mirror with the
// server's representation; Poll re-fetches on an interval to pick up
// out-of-band changes without disturbing the rendered state on failure.
type BoardDetail struct {
	api     *Client
	boardID uint
	guard   *InflightGuard

	mu    sync.RWMutex
	board *Board

	// OnError receives background poll failures. The mirror keeps its
	// last-known-good state when a poll fails.
	OnError func(error)
}

func NewBoardDetail(api *Client, boardID uint) *BoardDetail {
	return &BoardDetail{
		api:     api,
		boardID: boardID,
		guard:   NewInflightGuard(),
	}
}

// Load fetches the board and replaces the mirror.
func (d *BoardDetail) Load(ctx context.Context) error {
	board, err := d.api.GetBoard(ctx, d.boardID)
	if err != nil {
		return err
	}

	d.mu.Lock()
	d.board = board
	d.mu.Unlock()
	return nil
}

// Board returns a copy of the mirrored board, and false before the
// first successful Load.
func (d *BoardDetail) Board() (Board, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.board == nil {
		return Board{}, false
	}
	out := *d.board
	out.Cards = make([]Card, len(d.board.Cards))
	copy(out.Cards, d.board.Cards)
	return out, true
}

// Poll re-fetches the board on the given interval until ctx is
// cancelled. Failures go to OnError and polling continues.
func (d *BoardDetail) Poll(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := d.Load(ctx); err != nil {
				if ctx.Err() != nil {
					return
				}
				if d.OnError != nil {
					d.OnError(err)
				}
			}
		}
	}
}

// Busy reports whether a card has an operation outstanding; views use
// it to disable the triggering control.
func (d *BoardDetail) Busy(cardID uint) bool {
	return d.guard.Active(cardID)
}

// UpvoteCard submits one upvote and applies the server's refreshed
// card. A second call for the same card while one is outstanding
// returns ErrOperationInFlight.
func (d *BoardDetail) UpvoteCard(ctx context.Context, cardID uint) (*Card, error) {
	return d.guarded(cardID, func() (*Card, error) {
		return d.api.UpvoteCard(ctx, cardID)
	})
}

// PinCard pins the card and applies the server's version.
func (d *BoardDetail) PinCard(ctx context.Context, cardID uint) (*Card, error) {
	return d.guarded(cardID, func() (*Card, error) {
		return d.api.PinCard(ctx, cardID)
	})
}

// UnpinCard unpins the card and applies the server's version.
func (d *BoardDetail) UnpinCard(ctx context.Context, cardID uint) (*Card, error) {
	return d.guarded(cardID, func() (*Card, error) {
		return d.api.UnpinCard(ctx, cardID)
	})
}

func (d *BoardDetail) guarded(cardID uint, op func() (*Card, error)) (*Card, error) {
	if !d.guard.Begin(cardID) {
		return nil, ErrOperationInFlight
	}
	defer d.guard.End(cardID)

	card, err := op()
	if err != nil {
		return nil, err
	}
	d.applyCard(*card)
	return card, nil
}

// AddCard creates a card on the board and prepends the server's
// version to the mirror.
func (d *BoardDetail) AddCard(ctx context.Context, in CardInput) (*Card, error) {
	card, err := d.api.CreateCard(ctx, d.boardID, in)
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	if d.board != nil {
		d.board.Cards = append([]Card{*card}, d.board.Cards...)
	}
	d.mu.Unlock()
	return card, nil
}

// UpdateCard applies the server's version of an edited card.
func (d *BoardDetail) UpdateCard(ctx context.Context, cardID uint, in CardInput) (*Card, error) {
	card, err := d.api.UpdateCard(ctx, cardID, in)
	if err != nil {
		return nil, err
	}
	d.applyCard(*card)
	return card, nil
}

// DeleteCard removes the card from the mirror once the server confirms.
func (d *BoardDetail) DeleteCard(ctx context.Context, cardID uint) error {
	if _, err := d.api.DeleteCard(ctx, cardID); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.board == nil {
		return nil
	}
	for i, card := range d.board.Cards {
		if card.ID == cardID {
			d.board.Cards = append(d.board.Cards[:i], d.board.Cards[i+1:]...)
			break
		}
	}
	return nil
}

func (d *BoardDetail) applyCard(card Card) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.board == nil {
		return
	}
	for i, existing := range d.board.Cards {
		if existing.ID == card.ID {
			d.board.Cards[i] = card
			return
		}
	}
}
