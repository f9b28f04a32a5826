package models

import (
	"time"
)

// Subscriber is a newsletter signup.
type Subscriber struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Email string `gorm:"unique;not null;size:100" json:"email"`

	CreatedAt time.Time `json:"created_at"`
}
