package types

import (
  "time"
  "github.com/google/uuid"
)

// PromptType is a category node; ParentID forms the category tree.
type PromptType struct {
  ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
  Name        string         `gorm:"uniqueIndex;not null;column:name" json:"name"`
  ParentID    *uuid.UUID     `gorm:"type:uuid;index;column:parent_id" json:"parent_id,omitempty"`
  Parent      *PromptType    `gorm:"foreignKey:ParentID;references:ID" json:"parent,omitempty"`
  Children    []PromptType   `gorm:"foreignKey:ParentID;references:ID" json:"children,omitempty"`
  CreatedAt   time.Time      `gorm:"not null" json:"created_at"`
}

func (PromptType) TableName() string {
  return "prompt_type"
}
