package repos

import (
  "context"
  "gorm.io/gorm"
  "github.com/interface8/Prompt-8/internal/logger"
  "github.com/interface8/Prompt-8/internal/types"
)

type ModelRecRepo interface {
  Create(ctx context.Context, tx *gorm.DB, models []*types.ModelRec) ([]*types.ModelRec, error)
}

type modelRecRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewModelRecRepo(db *gorm.DB, baseLog *logger.Logger) ModelRecRepo {
  repoLog := baseLog.With("repo", "ModelRecRepo")
  return &modelRecRepo{db: db, log: repoLog}
}

func (mr *modelRecRepo) Create(ctx context.Context, tx *gorm.DB, models []*types.ModelRec) ([]*types.ModelRec, error) {
  transaction := tx
  if transaction == nil {
    transaction = mr.db
  }

  if len(models) == 0 {
    return []*types.ModelRec{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&models).Error; err != nil {
    return nil, err
  }
  return models, nil
}
