package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/interface8/Prompt-8/internal/logger"
  "github.com/interface8/Prompt-8/internal/types"
)

type ParameterRepo interface {
  Create(ctx context.Context, tx *gorm.DB, params []*types.Parameter) ([]*types.Parameter, error)
  GetByPromptIDs(ctx context.Context, tx *gorm.DB, promptIDs []uuid.UUID) ([]*types.Parameter, error)
}

type parameterRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewParameterRepo(db *gorm.DB, baseLog *logger.Logger) ParameterRepo {
  repoLog := baseLog.With("repo", "ParameterRepo")
  return &parameterRepo{db: db, log: repoLog}
}

func (pr *parameterRepo) Create(ctx context.Context, tx *gorm.DB, params []*types.Parameter) ([]*types.Parameter, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  if len(params) == 0 {
    return []*types.Parameter{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&params).Error; err != nil {
    return nil, err
  }
  return params, nil
}

func (pr *parameterRepo) GetByPromptIDs(ctx context.Context, tx *gorm.DB, promptIDs []uuid.UUID) ([]*types.Parameter, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  var results []*types.Parameter
  if len(promptIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("prompt_id IN ?", promptIDs).
    Order("position ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}
