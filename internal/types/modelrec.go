package types

import (
  "time"
  "github.com/google/uuid"
)

// ModelRec is an AI model recommendation attached to a prompt.
type ModelRec struct {
  ID            uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
  PromptID      uuid.UUID   `gorm:"type:uuid;not null;index;column:prompt_id" json:"prompt_id"`
  Prompt        *Prompt     `gorm:"constraint:OnDelete:CASCADE;foreignKey:PromptID;references:ID" json:"prompt,omitempty"`
  Name          string      `gorm:"not null;column:name" json:"name"`
  Provider      string      `gorm:"not null;column:provider" json:"provider"`
  Efficiency    int         `gorm:"not null;default:85;column:efficiency" json:"efficiency"`
  Recommended   bool        `gorm:"not null;default:false;column:recommended" json:"recommended"`
  CreatedAt     time.Time   `gorm:"not null" json:"created_at"`
}

func (ModelRec) TableName() string {
  return "model_rec"
}
