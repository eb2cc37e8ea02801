package services

import (
  "context"
  "errors"
  "fmt"
  "gorm.io/gorm"
  "github.com/google/uuid"
  "github.com/interface8/Prompt-8/internal/apierr"
  "github.com/interface8/Prompt-8/internal/logger"
  "github.com/interface8/Prompt-8/internal/repos"
  "github.com/interface8/Prompt-8/internal/types"
)

type LikeService interface {
  Toggle(ctx context.Context, promptID uuid.UUID) (bool, error)
  IsLiked(ctx context.Context, promptID uuid.UUID) (bool, error)
}

type likeService struct {
  db           *gorm.DB
  log          *logger.Logger
  userRepo     repos.UserRepo
  promptRepo   repos.PromptRepo
  likeRepo     repos.LikeRepo
}

func NewLikeService(
  db *gorm.DB,
  log *logger.Logger,
  userRepo repos.UserRepo,
  promptRepo repos.PromptRepo,
  likeRepo repos.LikeRepo,
) LikeService {
  serviceLog := log.With("service", "LikeService")
  return &likeService{
    db:           db,
    log:          serviceLog,
    userRepo:     userRepo,
    promptRepo:   promptRepo,
    likeRepo:     likeRepo,
  }
}

// Toggle flips the like state. The like row and the prompt's like_count move
// in the same transaction so they cannot diverge.
func (ls *likeService) Toggle(ctx context.Context, promptID uuid.UUID) (bool, error) {
  user, uErr := currentUser(ctx, ls.userRepo)
  if uErr != nil {
    return false, uErr
  }

  prompts, pErr := ls.promptRepo.GetByIDs(ctx, nil, []uuid.UUID{promptID})
  if pErr != nil {
    return false, apierr.Internal(fmt.Errorf("Failed to fetch prompt: %w", pErr))
  }
  if len(prompts) == 0 {
    return false, apierr.NotFound(fmt.Errorf("Prompt not found"))
  }

  var liked bool
  err := ls.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    existing, eErr := ls.likeRepo.GetByUserAndPrompt(ctx, tx, user.ID, promptID)
    if eErr != nil {
      return fmt.Errorf("Failed to check like: %w", eErr)
    }
    if existing != nil {
      if dErr := ls.likeRepo.DeleteByIDs(ctx, tx, []uuid.UUID{existing.ID}); dErr != nil {
        return fmt.Errorf("Failed to delete like: %w", dErr)
      }
      if icErr := ls.promptRepo.IncrementLikeCount(ctx, tx, promptID, -1); icErr != nil {
        return fmt.Errorf("Failed to decrement like count: %w", icErr)
      }
      liked = false
      return nil
    }

    like := &types.Like{ID: uuid.New(), UserID: user.ID, PromptID: promptID}
    if _, cErr := ls.likeRepo.Create(ctx, tx, []*types.Like{like}); cErr != nil {
      // Composite unique (user_id, prompt_id) catches a concurrent like.
      if errors.Is(cErr, gorm.ErrDuplicatedKey) {
        return apierr.Conflict(fmt.Errorf("Already liked"))
      }
      return fmt.Errorf("Failed to record like: %w", cErr)
    }
    if icErr := ls.promptRepo.IncrementLikeCount(ctx, tx, promptID, 1); icErr != nil {
      return fmt.Errorf("Failed to increment like count: %w", icErr)
    }
    liked = true
    return nil
  })
  if err != nil {
    var ae *apierr.Error
    if errors.As(err, &ae) {
      return false, ae
    }
    return false, apierr.Internal(err)
  }
  return liked, nil
}

func (ls *likeService) IsLiked(ctx context.Context, promptID uuid.UUID) (bool, error) {
  user, uErr := currentUser(ctx, ls.userRepo)
  if uErr != nil {
    return false, uErr
  }

  like, lErr := ls.likeRepo.GetByUserAndPrompt(ctx, nil, user.ID, promptID)
  if lErr != nil {
    return false, apierr.Internal(fmt.Errorf("Failed to check like: %w", lErr))
  }
  return like != nil, nil
}
