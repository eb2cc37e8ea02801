package types

import (
  "time"
  "github.com/google/uuid"
  "gorm.io/datatypes"
)

const (
  SkillBeginner     = "BEGINNER"
  SkillIntermediate = "INTERMEDIATE"
  SkillAdvanced     = "ADVANCED"

  PromptStatusPendingReview = "PENDING_REVIEW"
  PromptStatusPublished     = "PUBLISHED"
)

type Prompt struct {
  ID              uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
  UserID          uuid.UUID        `gorm:"type:uuid;not null;index;column:user_id" json:"user_id"`
  User            *User            `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
  TypeID          *uuid.UUID       `gorm:"type:uuid;index;column:type_id" json:"type_id,omitempty"`
  Type            *PromptType      `gorm:"constraint:OnDelete:SET NULL;foreignKey:TypeID;references:ID" json:"type,omitempty"`
  Title           string           `gorm:"not null;column:title" json:"title"`
  Slug            string           `gorm:"uniqueIndex;not null;column:slug" json:"slug"`
  Description     string           `gorm:"column:description" json:"description"`
  Template        string           `gorm:"not null;column:template" json:"template"`
  Domain          string           `gorm:"not null;column:domain" json:"domain"`
  Category        string           `gorm:"column:category" json:"category"`
  SkillLevel      string           `gorm:"not null;default:BEGINNER;column:skill_level" json:"skill_level"`
  Price           float64          `gorm:"not null;default:0;column:price" json:"price"`
  Currency        string           `gorm:"not null;default:USD;column:currency" json:"currency"`
  License         string           `gorm:"column:license" json:"license"`
  Tags            datatypes.JSON   `gorm:"column:tags;type:jsonb" json:"tags"` // []string
  SampleOutput    string           `gorm:"column:sample_output" json:"sample_output,omitempty"`
  Status          string           `gorm:"not null;default:PENDING_REVIEW;column:status" json:"status"`
  Featured        bool             `gorm:"not null;default:false;column:featured" json:"featured"`
  IsPrivate       bool             `gorm:"not null;default:false;column:is_private" json:"is_private"`
  IsSellable      bool             `gorm:"not null;default:false;column:is_sellable" json:"is_sellable"`
  PurchaseCount   int              `gorm:"not null;default:0;column:purchase_count" json:"purchase_count"`
  LikeCount       int              `gorm:"not null;default:0;column:like_count" json:"like_count"`
  Parameters      []Parameter      `gorm:"foreignKey:PromptID;references:ID" json:"parameters,omitempty"`
  Models          []ModelRec       `gorm:"foreignKey:PromptID;references:ID" json:"models,omitempty"`
  CreatedAt       time.Time        `gorm:"not null" json:"created_at"`
  UpdatedAt       time.Time        `gorm:"not null" json:"updated_at"`
}

func (Prompt) TableName() string {
  return "prompt"
}
