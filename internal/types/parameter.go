package types

import (
  "time"
  "github.com/google/uuid"
  "gorm.io/datatypes"
)

const (
  ParamText     = "TEXT"
  ParamNumber   = "NUMBER"
  ParamSelect   = "SELECT"
  ParamTextarea = "TEXTAREA"
)

type Parameter struct {
  ID            uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
  PromptID      uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_parameter_prompt_name;column:prompt_id" json:"prompt_id"`
  Prompt        *Prompt          `gorm:"constraint:OnDelete:CASCADE;foreignKey:PromptID;references:ID" json:"prompt,omitempty"`
  Name          string           `gorm:"not null;uniqueIndex:idx_parameter_prompt_name;column:name" json:"name"`
  Type          string           `gorm:"not null;default:TEXT;column:type" json:"type"`
  Description   string           `gorm:"column:description" json:"description"`
  Required      bool             `gorm:"not null;default:true;column:required" json:"required"`
  Placeholder   string           `gorm:"column:placeholder" json:"placeholder,omitempty"`
  Options       datatypes.JSON   `gorm:"column:options;type:jsonb" json:"options"` // []string, SELECT only
  Position      int              `gorm:"not null;default:0;column:position" json:"position"`
  CreatedAt     time.Time        `gorm:"not null" json:"created_at"`
}

func (Parameter) TableName() string {
  return "parameter"
}
