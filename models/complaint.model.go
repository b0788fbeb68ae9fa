package models

import "gorm.io/gorm"

type Complaint struct {
	gorm.Model
	UserID      uint   `json:"user_id" gorm:"not null;index"`
	User        User   `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Category    string `json:"category" gorm:"not null"`
	Description string `json:"description" gorm:"not null"`
	Priority    string `json:"priority" gorm:"default:'medium'"` // low, medium, high
	Status      string `json:"status" gorm:"default:'pending'"`  // pending, in_progress, resolved
}
