package repos

import (
  "context"
  "errors"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/interface8/Prompt-8/internal/logger"
  "github.com/interface8/Prompt-8/internal/types"
)

type CartRepo interface {
  Create(ctx context.Context, tx *gorm.DB, carts []*types.Cart) ([]*types.Cart, error)
  GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.Cart, error)
  GetWithItems(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.Cart, error)
}

type cartRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewCartRepo(db *gorm.DB, baseLog *logger.Logger) CartRepo {
  repoLog := baseLog.With("repo", "CartRepo")
  return &cartRepo{db: db, log: repoLog}
}

func (cr *cartRepo) Create(ctx context.Context, tx *gorm.DB, carts []*types.Cart) ([]*types.Cart, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }

  if len(carts) == 0 {
    return []*types.Cart{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&carts).Error; err != nil {
    return nil, err
  }
  return carts, nil
}

// GetByUserID returns (nil, nil) when the user has no cart yet.
func (cr *cartRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.Cart, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }

  var result types.Cart
  err := transaction.WithContext(ctx).
    Where("user_id = ?", userID).
    First(&result).Error
  if errors.Is(err, gorm.ErrRecordNotFound) {
    return nil, nil
  }
  if err != nil {
    return nil, err
  }
  return &result, nil
}

func (cr *cartRepo) GetWithItems(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.Cart, error) {
  transaction := tx
  if transaction == nil {
    transaction = cr.db
  }

  var result types.Cart
  err := transaction.WithContext(ctx).
    Preload("Items.Prompt.User", func(db *gorm.DB) *gorm.DB { return db.Select(publicUserFields) }).
    Preload("Items.Prompt.Parameters", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
    Preload("Items.Prompt.Models").
    Where("user_id = ?", userID).
    First(&result).Error
  if errors.Is(err, gorm.ErrRecordNotFound) {
    return nil, nil
  }
  if err != nil {
    return nil, err
  }
  return &result, nil
}
