package types

import (
  "time"
  "github.com/google/uuid"
)

const (
  RoleUser    = "USER"
  RoleCreator = "CREATOR"
  RoleAdmin   = "ADMIN"
)

type User struct {
  ID              uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
  Email           string      `gorm:"uniqueIndex;not null;column:email" json:"email"`
  Password        string      `gorm:"not null;column:password" json:"-"`
  Name            string      `gorm:"not null;column:name" json:"name"`
  Image           string      `gorm:"column:image" json:"image"`
  Bio             string      `gorm:"column:bio" json:"bio,omitempty"`
  Role            string      `gorm:"not null;default:USER;column:role" json:"role"`
  Verified        bool        `gorm:"not null;default:false;column:verified" json:"verified"`
  TotalEarnings   float64     `gorm:"not null;default:0;column:total_earnings" json:"total_earnings"`
  CreatedAt       time.Time   `gorm:"not null" json:"created_at"`
  UpdatedAt       time.Time   `gorm:"not null" json:"updated_at"`
}

func (User) TableName() string {
  return "user"
}
