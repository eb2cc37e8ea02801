package repos

import (
  "context"
  "gorm.io/gorm"
  "github.com/interface8/Prompt-8/internal/logger"
  "github.com/interface8/Prompt-8/internal/types"
)

type PromptTypeRepo interface {
  Create(ctx context.Context, tx *gorm.DB, promptTypes []*types.PromptType) ([]*types.PromptType, error)
  GetByNames(ctx context.Context, tx *gorm.DB, names []string) ([]*types.PromptType, error)
  ListRoots(ctx context.Context, tx *gorm.DB) ([]*types.PromptType, error)
}

type promptTypeRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewPromptTypeRepo(db *gorm.DB, baseLog *logger.Logger) PromptTypeRepo {
  repoLog := baseLog.With("repo", "PromptTypeRepo")
  return &promptTypeRepo{db: db, log: repoLog}
}

func (tr *promptTypeRepo) Create(ctx context.Context, tx *gorm.DB, promptTypes []*types.PromptType) ([]*types.PromptType, error) {
  transaction := tx
  if transaction == nil {
    transaction = tr.db
  }

  if len(promptTypes) == 0 {
    return []*types.PromptType{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&promptTypes).Error; err != nil {
    return nil, err
  }
  return promptTypes, nil
}

func (tr *promptTypeRepo) GetByNames(ctx context.Context, tx *gorm.DB, names []string) ([]*types.PromptType, error) {
  transaction := tx
  if transaction == nil {
    transaction = tr.db
  }

  var results []*types.PromptType
  if len(names) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("name IN ?", names).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

// ListRoots returns top-level categories with two levels of children, matching
// the depth of the seeded category tree.
func (tr *promptTypeRepo) ListRoots(ctx context.Context, tx *gorm.DB) ([]*types.PromptType, error) {
  transaction := tx
  if transaction == nil {
    transaction = tr.db
  }

  var results []*types.PromptType
  if err := transaction.WithContext(ctx).
    Preload("Children.Children").
    Where("parent_id IS NULL").
    Order("name ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}
