package models

import "time"

type User struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"unique;not null" json:"email"`
	Phone     string    `json:"phone"`
	Name      string    `json:"name"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	Orders    []Order   `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"orders,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
