package repos

import (
  "context"
  "errors"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/interface8/Prompt-8/internal/logger"
  "github.com/interface8/Prompt-8/internal/types"
)

type LikeRepo interface {
  Create(ctx context.Context, tx *gorm.DB, likes []*types.Like) ([]*types.Like, error)
  GetByUserAndPrompt(ctx context.Context, tx *gorm.DB, userID, promptID uuid.UUID) (*types.Like, error)
  DeleteByIDs(ctx context.Context, tx *gorm.DB, likeIDs []uuid.UUID) error
}

type likeRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewLikeRepo(db *gorm.DB, baseLog *logger.Logger) LikeRepo {
  repoLog := baseLog.With("repo", "LikeRepo")
  return &likeRepo{db: db, log: repoLog}
}

func (lr *likeRepo) Create(ctx context.Context, tx *gorm.DB, likes []*types.Like) ([]*types.Like, error) {
  transaction := tx
  if transaction == nil {
    transaction = lr.db
  }

  if len(likes) == 0 {
    return []*types.Like{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&likes).Error; err != nil {
    return nil, err
  }
  return likes, nil
}

// GetByUserAndPrompt returns (nil, nil) when the user has not liked the prompt.
func (lr *likeRepo) GetByUserAndPrompt(ctx context.Context, tx *gorm.DB, userID, promptID uuid.UUID) (*types.Like, error) {
  transaction := tx
  if transaction == nil {
    transaction = lr.db
  }

  var result types.Like
  err := transaction.WithContext(ctx).
    Where("user_id = ? AND prompt_id = ?", userID, promptID).
    First(&result).Error
  if errors.Is(err, gorm.ErrRecordNotFound) {
    return nil, nil
  }
  if err != nil {
    return nil, err
  }
  return &result, nil
}

func (lr *likeRepo) DeleteByIDs(ctx context.Context, tx *gorm.DB, likeIDs []uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = lr.db
  }

  if len(likeIDs) == 0 {
    return nil
  }

  return transaction.WithContext(ctx).
    Where("id IN ?", likeIDs).
    Delete(&types.Like{}).Error
}
