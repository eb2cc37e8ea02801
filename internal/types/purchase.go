package types

import (
  "time"
  "github.com/google/uuid"
)

const PaymentStatusCompleted = "COMPLETED"

type Purchase struct {
  ID              uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
  UserID          uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_purchase_user_prompt;column:user_id" json:"user_id"`
  User            *User       `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
  PromptID        uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_purchase_user_prompt;column:prompt_id" json:"prompt_id"`
  Prompt          *Prompt     `gorm:"constraint:OnDelete:CASCADE;foreignKey:PromptID;references:ID" json:"prompt,omitempty"`
  Amount          float64     `gorm:"not null;column:amount" json:"amount"`
  Currency        string      `gorm:"not null;default:USD;column:currency" json:"currency"`
  PaymentMethod   string      `gorm:"not null;column:payment_method" json:"payment_method"`
  PaymentStatus   string      `gorm:"not null;column:payment_status" json:"payment_status"`
  TransactionID   string      `gorm:"not null;column:transaction_id" json:"transaction_id"`
  CreatedAt       time.Time   `gorm:"not null" json:"created_at"`
}

func (Purchase) TableName() string {
  return "purchase"
}
