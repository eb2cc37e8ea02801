package services

import (
  "context"
  "gorm.io/gorm"
  "github.com/interface8/Prompt-8/internal/logger"
  "github.com/interface8/Prompt-8/internal/repos"
  "github.com/interface8/Prompt-8/internal/types"
)

type UserService interface {
  GetMe(ctx context.Context) (*types.User, error)
}

type userService struct {
  db         *gorm.DB
  log        *logger.Logger
  userRepo   repos.UserRepo
}

func NewUserService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo) UserService {
  serviceLog := log.With("service", "UserService")
  return &userService{db: db, log: serviceLog, userRepo: userRepo}
}

func (us *userService) GetMe(ctx context.Context) (*types.User, error) {
  return currentUser(ctx, us.userRepo)
}
