package repos

import (
  "context"
  "errors"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/interface8/Prompt-8/internal/logger"
  "github.com/interface8/Prompt-8/internal/types"
)

type CartItemRepo interface {
  Create(ctx context.Context, tx *gorm.DB, items []*types.CartItem) ([]*types.CartItem, error)
  GetByCartAndPrompt(ctx context.Context, tx *gorm.DB, cartID, promptID uuid.UUID) (*types.CartItem, error)
  GetDetailedByID(ctx context.Context, tx *gorm.DB, itemID uuid.UUID) (*types.CartItem, error)
  DeleteByCartAndPrompts(ctx context.Context, tx *gorm.DB, cartID uuid.UUID, promptIDs []uuid.UUID) error
}

type cartItemRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewCartItemRepo(db *gorm.DB, baseLog *logger.Logger) CartItemRepo {
  repoLog := baseLog.With("repo", "CartItemRepo")
  return &cartItemRepo{db: db, log: repoLog}
}

func (ir *cartItemRepo) Create(ctx context.Context, tx *gorm.DB, items []*types.CartItem) ([]*types.CartItem, error) {
  transaction := tx
  if transaction == nil {
    transaction = ir.db
  }

  if len(items) == 0 {
    return []*types.CartItem{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&items).Error; err != nil {
    return nil, err
  }
  return items, nil
}

// GetByCartAndPrompt returns (nil, nil) when no matching item exists.
func (ir *cartItemRepo) GetByCartAndPrompt(ctx context.Context, tx *gorm.DB, cartID, promptID uuid.UUID) (*types.CartItem, error) {
  transaction := tx
  if transaction == nil {
    transaction = ir.db
  }

  var result types.CartItem
  err := transaction.WithContext(ctx).
    Where("cart_id = ? AND prompt_id = ?", cartID, promptID).
    First(&result).Error
  if errors.Is(err, gorm.ErrRecordNotFound) {
    return nil, nil
  }
  if err != nil {
    return nil, err
  }
  return &result, nil
}

func (ir *cartItemRepo) GetDetailedByID(ctx context.Context, tx *gorm.DB, itemID uuid.UUID) (*types.CartItem, error) {
  transaction := tx
  if transaction == nil {
    transaction = ir.db
  }

  var result types.CartItem
  err := transaction.WithContext(ctx).
    Preload("Prompt.User", func(db *gorm.DB) *gorm.DB { return db.Select(publicUserFields) }).
    Where("id = ?", itemID).
    First(&result).Error
  if err != nil {
    return nil, err
  }
  return &result, nil
}

func (ir *cartItemRepo) DeleteByCartAndPrompts(ctx context.Context, tx *gorm.DB, cartID uuid.UUID, promptIDs []uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = ir.db
  }

  if len(promptIDs) == 0 {
    return nil
  }

  return transaction.WithContext(ctx).
    Where("cart_id = ? AND prompt_id IN ?", cartID, promptIDs).
    Delete(&types.CartItem{}).Error
}
