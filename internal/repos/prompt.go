package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/interface8/Prompt-8/internal/logger"
  "github.com/interface8/Prompt-8/internal/types"
)

// publicUserFields limits the joined owner row to its public shape.
var publicUserFields = []string{"id", "name", "image", "verified"}

type PromptRepo interface {
  Create(ctx context.Context, tx *gorm.DB, prompts []*types.Prompt) ([]*types.Prompt, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, promptIDs []uuid.UUID) ([]*types.Prompt, error)
  GetDetailedByID(ctx context.Context, tx *gorm.DB, promptID uuid.UUID) (*types.Prompt, error)
  GetDetailedBySlug(ctx context.Context, tx *gorm.DB, slug string) (*types.Prompt, error)
  SlugExists(ctx context.Context, tx *gorm.DB, slug string) (bool, error)
  ListPublic(ctx context.Context, tx *gorm.DB) ([]*types.Prompt, error)
  IncrementPurchaseCount(ctx context.Context, tx *gorm.DB, promptID uuid.UUID) error
  IncrementLikeCount(ctx context.Context, tx *gorm.DB, promptID uuid.UUID, delta int) error
}

type promptRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewPromptRepo(db *gorm.DB, baseLog *logger.Logger) PromptRepo {
  repoLog := baseLog.With("repo", "PromptRepo")
  return &promptRepo{db: db, log: repoLog}
}

func (pr *promptRepo) Create(ctx context.Context, tx *gorm.DB, prompts []*types.Prompt) ([]*types.Prompt, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  if len(prompts) == 0 {
    return []*types.Prompt{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&prompts).Error; err != nil {
    return nil, err
  }
  return prompts, nil
}

func (pr *promptRepo) GetByIDs(ctx context.Context, tx *gorm.DB, promptIDs []uuid.UUID) ([]*types.Prompt, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  var results []*types.Prompt
  if len(promptIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("id IN ?", promptIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (pr *promptRepo) GetDetailedByID(ctx context.Context, tx *gorm.DB, promptID uuid.UUID) (*types.Prompt, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  var result types.Prompt
  err := pr.detailed(transaction.WithContext(ctx)).
    Where("id = ?", promptID).
    First(&result).Error
  if err != nil {
    return nil, err
  }
  return &result, nil
}

func (pr *promptRepo) GetDetailedBySlug(ctx context.Context, tx *gorm.DB, slug string) (*types.Prompt, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  var result types.Prompt
  err := pr.detailed(transaction.WithContext(ctx)).
    Where("slug = ?", slug).
    First(&result).Error
  if err != nil {
    return nil, err
  }
  return &result, nil
}

func (pr *promptRepo) SlugExists(ctx context.Context, tx *gorm.DB, slug string) (bool, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.Prompt{}).
    Where("slug = ?", slug).
    Count(&count).Error; err != nil {
    return false, err
  }
  return count > 0, nil
}

func (pr *promptRepo) ListPublic(ctx context.Context, tx *gorm.DB) ([]*types.Prompt, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  var results []*types.Prompt
  if err := pr.detailed(transaction.WithContext(ctx)).
    Where("is_private = ?", false).
    Order("created_at DESC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (pr *promptRepo) IncrementPurchaseCount(ctx context.Context, tx *gorm.DB, promptID uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  return transaction.WithContext(ctx).
    Model(&types.Prompt{}).
    Where("id = ?", promptID).
    UpdateColumn("purchase_count", gorm.Expr("purchase_count + ?", 1)).Error
}

func (pr *promptRepo) IncrementLikeCount(ctx context.Context, tx *gorm.DB, promptID uuid.UUID, delta int) error {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  return transaction.WithContext(ctx).
    Model(&types.Prompt{}).
    Where("id = ?", promptID).
    UpdateColumn("like_count", gorm.Expr("like_count + ?", delta)).Error
}

func (pr *promptRepo) detailed(q *gorm.DB) *gorm.DB {
  return q.
    Preload("User", func(db *gorm.DB) *gorm.DB { return db.Select(publicUserFields) }).
    Preload("Parameters", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
    Preload("Models")
}
