package types

import (
  "time"
  "github.com/google/uuid"
)

type Cart struct {
  ID          uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
  UserID      uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex;column:user_id" json:"user_id"`
  User        *User        `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
  Items       []CartItem   `gorm:"foreignKey:CartID;references:ID" json:"items"`
  CreatedAt   time.Time    `gorm:"not null" json:"created_at"`
  UpdatedAt   time.Time    `gorm:"not null" json:"updated_at"`
}

func (Cart) TableName() string {
  return "cart"
}

type CartItem struct {
  ID          uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
  CartID      uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_cart_item_cart_prompt;column:cart_id" json:"cart_id"`
  Cart        *Cart       `gorm:"constraint:OnDelete:CASCADE;foreignKey:CartID;references:ID" json:"cart,omitempty"`
  PromptID    uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_cart_item_cart_prompt;column:prompt_id" json:"prompt_id"`
  Prompt      *Prompt     `gorm:"constraint:OnDelete:CASCADE;foreignKey:PromptID;references:ID" json:"prompt,omitempty"`
  CreatedAt   time.Time   `gorm:"not null" json:"created_at"`
}

func (CartItem) TableName() string {
  return "cart_item"
}
