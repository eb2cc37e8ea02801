package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/interface8/Prompt-8/internal/logger"
  "github.com/interface8/Prompt-8/internal/types"
)

type PurchaseRepo interface {
  Create(ctx context.Context, tx *gorm.DB, purchases []*types.Purchase) ([]*types.Purchase, error)
  GetByUserAndPrompts(ctx context.Context, tx *gorm.DB, userID uuid.UUID, promptIDs []uuid.UUID) ([]*types.Purchase, error)
  ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Purchase, error)
}

type purchaseRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewPurchaseRepo(db *gorm.DB, baseLog *logger.Logger) PurchaseRepo {
  repoLog := baseLog.With("repo", "PurchaseRepo")
  return &purchaseRepo{db: db, log: repoLog}
}

func (pr *purchaseRepo) Create(ctx context.Context, tx *gorm.DB, purchases []*types.Purchase) ([]*types.Purchase, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  if len(purchases) == 0 {
    return []*types.Purchase{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&purchases).Error; err != nil {
    return nil, err
  }
  return purchases, nil
}

func (pr *purchaseRepo) GetByUserAndPrompts(ctx context.Context, tx *gorm.DB, userID uuid.UUID, promptIDs []uuid.UUID) ([]*types.Purchase, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  var results []*types.Purchase
  if len(promptIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("user_id = ? AND prompt_id IN ?", userID, promptIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (pr *purchaseRepo) ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Purchase, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  var results []*types.Purchase
  if err := transaction.WithContext(ctx).
    Preload("Prompt.User", func(db *gorm.DB) *gorm.DB { return db.Select(publicUserFields) }).
    Preload("Prompt.Parameters", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
    Preload("Prompt.Models").
    Where("user_id = ?", userID).
    Order("created_at DESC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}
