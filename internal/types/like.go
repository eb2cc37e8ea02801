package types

import (
  "time"
  "github.com/google/uuid"
)

type Like struct {
  ID          uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
  UserID      uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_like_user_prompt;column:user_id" json:"user_id"`
  User        *User       `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
  PromptID    uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_like_user_prompt;column:prompt_id" json:"prompt_id"`
  Prompt      *Prompt     `gorm:"constraint:OnDelete:CASCADE;foreignKey:PromptID;references:ID" json:"prompt,omitempty"`
  CreatedAt   time.Time   `gorm:"not null" json:"created_at"`
}

func (Like) TableName() string {
  return "like"
}
