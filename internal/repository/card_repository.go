package repository

import (
	"context"
	"errors"
	"time"

	"kudosboard/internal/model"

	"gorm.io/gorm"
)

type CardRepository struct {
	db *gorm.DB
}

func NewCardRepository(db *gorm.DB) *CardRepository {
	return &CardRepository{db: db}
}

// Create adds a new card to the database
func (r *CardRepository) Create(ctx context.Context, card *model.Card) error {
	return r.db.WithContext(ctx).Create(card).Error
}

// GetByID retrieves a card by its ID
func (r *CardRepository) GetByID(ctx context.Context, id uint) (*model.Card, error) {
	var card model.Card
	result := r.db.WithContext(ctx).First(&card, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, result.Error
	}
	return &card, nil
}

// GetByBoardID retrieves all cards on a board, newest first
func (r *CardRepository) GetByBoardID(ctx context.Context, boardID uint) ([]model.Card, error) {
	cards := make([]model.Card, 0)
	result := r.db.WithContext(ctx).
		Where("board_id = ?", boardID).
		Order("created_at DESC").
		Find(&cards)
	if result.Error != nil {
		return nil, result.Error
	}
	return cards, nil
}

// Update updates an existing card
func (r *CardRepository) Update(ctx context.Context, card *model.Card) error {
	result := r.db.WithContext(ctx).Save(card)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCardNotFound
	}
	return nil
}

// Delete removes a card by its ID
func (r *CardRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&model.Card{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCardNotFound
	}
	return nil
}

// Upvote increments the counter atomically in the database, then returns
// the refreshed card.
func (r *CardRepository) Upvote(ctx context.Context, id uint) (*model.Card, error) {
	result := r.db.WithContext(ctx).Model(&model.Card{}).
		Where("id = ?", id).
		Update("upvotes", gorm.Expr("upvotes + 1"))
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrCardNotFound
	}
	return r.GetByID(ctx, id)
}

// SetPinned pins or unpins a card. Pinning stamps pinned_at with the
// current time, so re-pinning an already pinned card advances it.
func (r *CardRepository) SetPinned(ctx context.Context, id uint, pinned bool) (*model.Card, error) {
	updates := map[string]interface{}{
		"pinned":    pinned,
		"pinned_at": nil,
	}
	if pinned {
		updates["pinned_at"] = time.Now()
	}

	result := r.db.WithContext(ctx).Model(&model.Card{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrCardNotFound
	}
	return r.GetByID(ctx, id)
}
