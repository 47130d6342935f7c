package repository

import (
	"context"
	"errors"

	"kudosboard/internal/model"

	"gorm.io/gorm"
)

// cardListOrder puts pinned cards first, most recently pinned leading,
// and orders the unpinned remainder newest first.
const cardListOrder = "pinned DESC, pinned_at DESC, created_at DESC"

type BoardRepository struct {
	db *gorm.DB
}

func NewBoardRepository(db *gorm.DB) *BoardRepository {
	return &BoardRepository{db: db}
}

func (r *BoardRepository) Create(ctx context.Context, board *model.Board) error {
	return r.db.WithContext(ctx).Create(board).Error
}

// GetAll returns every board, newest first, each with its cards.
func (r *BoardRepository) GetAll(ctx context.Context) ([]model.Board, error) {
	boards := make([]model.Board, 0)
	err := r.db.WithContext(ctx).
		Preload("Cards").
		Order("created_at DESC").
		Find(&boards).Error
	return boards, err
}

// GetByID returns one board with its cards in pinned-then-recency order.
func (r *BoardRepository) GetByID(ctx context.Context, id uint) (*model.Board, error) {
	var board model.Board
	err := r.db.WithContext(ctx).
		Preload("Cards", func(db *gorm.DB) *gorm.DB {
			return db.Order(cardListOrder)
		}).
		First(&board, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBoardNotFound
		}
		return nil, err
	}
	return &board, nil
}

// Update persists the board's own columns. Cards are skipped so a board
// carrying preloaded cards does not re-upsert them on every save.
func (r *BoardRepository) Update(ctx context.Context, board *model.Board) error {
	result := r.db.WithContext(ctx).Omit("Cards").Save(board)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBoardNotFound
	}
	return nil
}

// Delete removes a board and all of its cards in one transaction and
// returns the deleted board with the cards it used to own.
func (r *BoardRepository) Delete(ctx context.Context, id uint) (*model.Board, error) {
	var board model.Board
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Cards", func(db *gorm.DB) *gorm.DB {
			return db.Order(cardListOrder)
		}).First(&board, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBoardNotFound
			}
			return err
		}

		if err := tx.Where("board_id = ?", id).Delete(&model.Card{}).Error; err != nil {
			return err
		}

		return tx.Delete(&model.Board{}, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &board, nil
}

// Upvote increments the counter atomically in the database so concurrent
// upvotes are never lost, then returns the refreshed board.
func (r *BoardRepository) Upvote(ctx context.Context, id uint) (*model.Board, error) {
	result := r.db.WithContext(ctx).Model(&model.Board{}).
		Where("id = ?", id).
		Update("upvotes", gorm.Expr("upvotes + 1"))
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrBoardNotFound
	}
	return r.GetByID(ctx, id)
}
